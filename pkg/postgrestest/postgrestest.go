// Package postgrestest starts a disposable postgres container for repository tests
package postgrestest

import (
	"context"
	"fmt"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"github.com/goto/signoff/internal/store"
	"github.com/goto/signoff/internal/store/postgres"
	"github.com/goto/signoff/pkg/log"
)

const (
	pgUser     = "test_user"
	pgPassword = "test_pass"
	pgName     = "test_db"
)

// NewTestStore runs postgres in docker, waits for it and applies every migration
func NewTestStore(logger log.Logger) (*postgres.Store, *dockertest.Pool, *dockertest.Resource, error) {
	ctx := context.Background()

	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not create dockertest pool: %w", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "13",
		Env: []string{
			"POSTGRES_PASSWORD=" + pgPassword,
			"POSTGRES_USER=" + pgUser,
			"POSTGRES_DB=" + pgName,
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not start resource: %w", err)
	}

	cfg := &store.Config{
		Host:     "localhost",
		User:     pgUser,
		Password: pgPassword,
		Name:     pgName,
		Port:     resource.GetPort("5432/tcp"),
		SslMode:  "disable",
		LogLevel: "silent",
	}
	logger.Info(ctx, "connecting to test postgres", "port", cfg.Port)

	if err := resource.Expire(120); err != nil {
		return nil, nil, nil, err
	}

	pool.MaxWait = 60 * time.Second
	var st *postgres.Store
	if err := pool.Retry(func() error {
		st, err = postgres.NewStore(cfg)
		if err != nil {
			return err
		}
		sqlDB, err := st.DB().DB()
		if err != nil {
			return err
		}
		return sqlDB.Ping()
	}); err != nil {
		return nil, nil, nil, fmt.Errorf("could not connect to docker: %w", err)
	}

	if err := st.Migrate(); err != nil {
		return nil, nil, nil, fmt.Errorf("migrating test store: %w", err)
	}

	return st, pool, resource, nil
}

func PurgeTestDocker(pool *dockertest.Pool, resource *dockertest.Resource) error {
	if err := pool.Purge(resource); err != nil {
		return fmt.Errorf("could not purge resource: %w", err)
	}
	return nil
}

// Setup empties every table so suites start from a clean database
func Setup(st *postgres.Store) error {
	return st.DB().Exec(`TRUNCATE TABLE approval_request_approvers, approval_requests, policies, documents,
		comments, groups, role_assignments, currency_rates, audit_logs`).Error
}
