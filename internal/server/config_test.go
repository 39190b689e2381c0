package server_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goto/signoff/domain"
	"github.com/goto/signoff/internal/server"
	"github.com/goto/signoff/jobs"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("should apply defaults when the file is missing", func(t *testing.T) {
		cfg, err := server.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "X-Auth-Email", cfg.Auth.Default.HeaderKey)
		assert.Equal(t, server.StoreDriverPostgres, cfg.StoreDriver)
		assert.Equal(t, "USD", cfg.Currency.Base)
		assert.Equal(t, domain.DefaultWorkingCalendar(), cfg.Approval.BusinessHours)
	})

	t.Run("should merge a partial calendar over the default one", func(t *testing.T) {
		path := writeConfig(t, `
port: 9090
store_driver: memory
approval:
  admin_group: admins
  business_hours:
    timezone: Asia/Jakarta
    holidays: ["2024-08-17"]
jobs:
  approval_reminder:
    enabled: true
    interval: "*/30 * * * *"
    config:
      lock_ttl: 10m
`)

		cfg, err := server.LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, "admins", cfg.Approval.AdminGroup)
		assert.Equal(t, "Asia/Jakarta", cfg.Approval.BusinessHours.Timezone)
		assert.Equal(t, []string{"2024-08-17"}, cfg.Approval.BusinessHours.Holidays)
		assert.Len(t, cfg.Approval.BusinessHours.Attendances, 5)

		var jobCfg jobs.ApprovalReminderConfig
		require.NoError(t, cfg.Jobs[jobs.TypeApprovalReminder].Config.Decode(&jobCfg))
		assert.Equal(t, 10*time.Minute, jobCfg.LockTTL)
	})

	t.Run("should reject an unknown store driver", func(t *testing.T) {
		path := writeConfig(t, "store_driver: mongo\n")

		_, err := server.LoadConfig(path)

		assert.ErrorContains(t, err, "invalid config")
	})

	t.Run("should reject an invalid business calendar", func(t *testing.T) {
		path := writeConfig(t, "approval:\n  business_hours:\n    timezone: Mars/Olympus\n")

		_, err := server.LoadConfig(path)

		assert.ErrorIs(t, err, domain.ErrCalendarInvalid)
	})
}
