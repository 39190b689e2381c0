package jobs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goto/signoff/jobs"
)

func TestConfigDecode(t *testing.T) {
	t.Run("should decode durations and calendars", func(t *testing.T) {
		cfg := jobs.Config{
			"lock_ttl": "10m",
			"business_hours": map[string]interface{}{
				"timezone": "Asia/Jakarta",
				"attendances": []interface{}{
					map[string]interface{}{"weekday": "monday", "from": "09:00", "to": "17:00"},
				},
			},
		}

		var actual jobs.ApprovalReminderConfig
		require.NoError(t, cfg.Decode(&actual))

		assert.Equal(t, 10*time.Minute, actual.LockTTL)
		assert.Equal(t, "Asia/Jakarta", actual.BusinessHours.Timezone)
		require.Len(t, actual.BusinessHours.Attendances, 1)
		assert.Equal(t, "09:00", actual.BusinessHours.Attendances[0].From)
	})

	t.Run("should split comma separated lists", func(t *testing.T) {
		cfg := jobs.Config{"document_models": "purchase.order,account.move", "dry_run": "true"}

		var actual jobs.PendingApprovalsDigestConfig
		require.NoError(t, cfg.Decode(&actual))

		assert.Equal(t, []string{"purchase.order", "account.move"}, actual.DocumentModels)
		assert.True(t, actual.DryRun)
	})

	t.Run("should return error on invalid duration", func(t *testing.T) {
		var actual jobs.ApprovalReminderConfig
		assert.Error(t, jobs.Config{"lock_ttl": "soon"}.Decode(&actual))
	})
}
