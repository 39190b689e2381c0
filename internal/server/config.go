package server

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goto/salt/config"
	"github.com/imdario/mergo"
	"github.com/mcuadros/go-defaults"

	"github.com/goto/signoff/domain"
	"github.com/goto/signoff/internal/store"
	"github.com/goto/signoff/jobs"
	"github.com/goto/signoff/pkg/opentelemetry"
	"github.com/goto/signoff/plugins/notifiers"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type DefaultAuth struct {
	HeaderKey string `mapstructure:"header_key" default:"X-Auth-Email"`
}

type Auth struct {
	Default DefaultAuth `mapstructure:"default"`
}

type ApprovalConfig struct {
	// AdminGroup members may decide any pending request
	AdminGroup string `mapstructure:"admin_group"`
	// BusinessHours gates reminders, unset fields fall back to monday to friday 08:00-17:00 UTC
	BusinessHours domain.WorkingCalendar `mapstructure:"business_hours"`
	// UnitRoleModels lists the document models whose role levels resolve against the document unit
	UnitRoleModels []string      `mapstructure:"unit_role_models"`
	// PolicyCacheTTL bounds reuse of a matched policy, a cached match is still dropped as soon as a newer version is stored
	PolicyCacheTTL time.Duration `mapstructure:"policy_cache_ttl" default:"1m"`
}

type CurrencyConfig struct {
	Base     string        `mapstructure:"base" default:"USD"`
	CacheTTL time.Duration `mapstructure:"cache_ttl" default:"10m"`
}

type Config struct {
	Port                     int                    `mapstructure:"port" default:"8080"`
	LogLevel                 string                 `mapstructure:"log_level" default:"info"`
	StoreDriver              string                 `mapstructure:"store_driver" default:"postgres"`
	DB                       store.Config           `mapstructure:"db"`
	Notifier                 notifiers.Config       `mapstructure:"notifier"`
	Auth                     Auth                   `mapstructure:"auth"`
	AuditLogTraceIDHeaderKey string                 `mapstructure:"audit_log_trace_id_header_key" default:"X-Trace-Id"`
	Approval                 ApprovalConfig         `mapstructure:"approval"`
	Currency                 CurrencyConfig         `mapstructure:"currency"`
	Redis                    jobs.RedisConfig       `mapstructure:"redis"`
	Jobs                     map[jobs.Type]jobs.Job `mapstructure:"jobs"`
	Telemetry                opentelemetry.Config   `mapstructure:"telemetry"`
	ShutdownTimeout          time.Duration          `mapstructure:"shutdown_timeout" default:"10s"`
}

func LoadConfig(configFile string) (Config, error) {
	var cfg Config
	var opts []config.LoaderOption
	if _, err := os.Stat(configFile); err == nil {
		opts = append(opts, config.WithFile(configFile))
	}
	loader := config.NewLoader(opts...)

	if err := loader.Load(&cfg); err != nil {
		if !errors.As(err, &config.ConfigFileNotFoundError{}) {
			return Config{}, err
		}
		fmt.Println(err)
	}
	defaults.SetDefaults(&cfg)

	if err := mergo.Merge(&cfg.Approval.BusinessHours, domain.DefaultWorkingCalendar()); err != nil {
		return Config{}, fmt.Errorf("merging business hours: %w", err)
	}
	if err := validateConfig(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Approval.BusinessHours.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// validateConfig checks the store driver and the section of the selected notifier provider only
func validateConfig(cfg Config) error {
	v := validator.New()
	if err := v.Var(cfg.StoreDriver, "oneof=postgres memory"); err != nil {
		return fmt.Errorf("store_driver: %w", err)
	}
	if err := v.Var(cfg.Notifier.Provider, "omitempty,oneof=smtp lark log"); err != nil {
		return fmt.Errorf("notifier.provider: %w", err)
	}
	switch cfg.Notifier.Provider {
	case notifiers.ProviderTypeSMTP:
		return v.Struct(cfg.Notifier.SMTP)
	case notifiers.ProviderTypeLark:
		return v.Struct(cfg.Notifier.Lark)
	}
	return nil
}
