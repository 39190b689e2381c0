package audit

import (
	"context"
	"fmt"

	saltaudit "github.com/goto/salt/audit"
)

type AuditLogger interface {
	Log(ctx context.Context, action string, data interface{}) error
}

// Repository persists audit entries
type Repository interface {
	Init(context.Context) error
	Insert(context.Context, *saltaudit.Log) error
}

// New prepares repo and returns an audit logger tagging every entry with the application name.
// The actor of an entry is read from the context, see saltaudit.WithActor.
func New(ctx context.Context, repo Repository, appName string) (AuditLogger, error) {
	if err := repo.Init(ctx); err != nil {
		return nil, fmt.Errorf("initializing audit repository: %w", err)
	}
	return saltaudit.New(
		saltaudit.WithMetadataExtractor(func(context.Context) map[string]interface{} {
			return map[string]interface{}{
				"app_name": appName,
			}
		}),
		saltaudit.WithRepository(repo),
	), nil
}
