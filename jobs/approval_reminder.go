package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/imdario/mergo"

	"github.com/goto/signoff/core/reminder"
	"github.com/goto/signoff/domain"
)

type ApprovalReminderConfig struct {
	// BusinessHours overrides the process calendar field by field
	BusinessHours domain.WorkingCalendar `mapstructure:"business_hours"`
	LockTTL       time.Duration          `mapstructure:"lock_ttl"`
}

func (h *handler) ApprovalReminder(ctx context.Context, c Config) error {
	var cfg ApprovalReminderConfig
	if err := c.Decode(&cfg); err != nil {
		return fmt.Errorf("invalid config for %s job: %w", TypeApprovalReminder, err)
	}

	calendar := cfg.BusinessHours
	if err := mergo.Merge(&calendar, h.calendar); err != nil {
		return fmt.Errorf("merging business hours: %w", err)
	}

	return h.withLock(ctx, TypeApprovalReminder, cfg.LockTTL, func(ctx context.Context) error {
		now := h.TimeNow()
		h.logger.Info(ctx, "running approval reminder job", "at", now, "calendar", calendar.Name)
		if err := h.reminders.RunOnce(ctx, now, reminder.Config{Calendar: calendar}); err != nil {
			return fmt.Errorf("sending approval reminders: %w", err)
		}
		h.logger.Info(ctx, "approval reminder job finished")
		return nil
	})
}
