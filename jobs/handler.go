package jobs

import (
	"context"
	"time"

	"github.com/goto/signoff/core/reminder"
	"github.com/goto/signoff/core/report"
	"github.com/goto/signoff/domain"
	"github.com/goto/signoff/pkg/log"
)

const defaultLockTTL = 30 * time.Minute

//go:generate mockery --name=reminderService --exported --with-expecter
type reminderService interface {
	RunOnce(ctx context.Context, now time.Time, cfg reminder.Config) error
}

//go:generate mockery --name=reportService --exported --with-expecter
type reportService interface {
	GetPendingApprovalsList(ctx context.Context, filters *report.PendingApprovalsReportFilter) ([]*report.PendingApprovalsReport, error)
}

//go:generate mockery --name=notifier --exported --with-expecter
type notifier interface {
	Notify(context.Context, []domain.Notification) []error
}

type HandlerDeps struct {
	Logger        log.Logger
	Reminders     reminderService
	ReportService reportService
	Notifier      notifier
	Locker        Locker
	// Calendar is the process wide business hours, jobs may override it in their own config
	Calendar domain.WorkingCalendar
}

type handler struct {
	logger        log.Logger
	reminders     reminderService
	reportService reportService
	notifier      notifier
	locker        Locker
	calendar      domain.WorkingCalendar

	TimeNow func() time.Time
}

func NewHandler(deps HandlerDeps) *handler {
	locker := deps.Locker
	if locker == nil {
		locker = NewNoopLocker()
	}
	return &handler{
		logger:        deps.Logger,
		reminders:     deps.Reminders,
		reportService: deps.ReportService,
		notifier:      deps.Notifier,
		locker:        locker,
		calendar:      deps.Calendar,

		TimeNow: time.Now,
	}
}

// withLock runs fn unless another run of the job holds the lock
func (h *handler) withLock(ctx context.Context, job Type, ttl time.Duration, fn func(context.Context) error) error {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	release, ok, err := h.locker.Acquire(ctx, string(job), ttl)
	if err != nil {
		return err
	}
	if !ok {
		h.logger.Info(ctx, "job is already running, skipping", "job", job)
		return nil
	}
	defer func() {
		if err := release(ctx); err != nil {
			h.logger.Error(ctx, "failed to release job lock", "job", job, "error", err)
		}
	}()
	return fn(ctx)
}
