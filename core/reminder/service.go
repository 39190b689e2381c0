package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goto/signoff/domain"
	"github.com/goto/signoff/pkg/log"
	"github.com/goto/signoff/plugins/notifiers"
)

//go:generate mockery --name=approvalService --exported --with-expecter
type approvalService interface {
	ListPending(context.Context) ([]*domain.ApprovalRequest, error)
	MarkReminded(ctx context.Context, ids []string, at time.Time) error
}

//go:generate mockery --name=policyService --exported --with-expecter
type policyService interface {
	GetOne(ctx context.Context, id string, version uint) (*domain.Policy, error)
}

//go:generate mockery --name=notifier --exported --with-expecter
type notifier interface {
	notifiers.Client
}

// Config is passed on every run so the calendar is never read from ambient state
type Config struct {
	Calendar domain.WorkingCalendar `mapstructure:"calendar"`
}

type ServiceDeps struct {
	Approvals approvalService
	Policies  policyService
	Notifier  notifier
	Logger    log.Logger
}

// Service re-notifies approvers of requests pending longer than their policy reminder period
type Service struct {
	approvals approvalService
	policies  policyService
	notifier  notifier
	logger    log.Logger
}

func NewService(deps ServiceDeps) *Service {
	return &Service{
		approvals: deps.Approvals,
		policies:  deps.Policies,
		notifier:  deps.Notifier,
		logger:    deps.Logger,
	}
}

// RunOnce sends the reminders due at now. Outside working hours nothing is sent nor stamped,
// the next run retries. Configuration errors of single requests are joined into the returned error.
func (s *Service) RunOnce(ctx context.Context, now time.Time, cfg Config) error {
	if err := cfg.Calendar.Validate(); err != nil {
		return err
	}
	working, err := cfg.Calendar.IsWorkingTime(now)
	if err != nil {
		return err
	}
	if !working {
		s.logger.Debug(ctx, "outside working hours, skipping reminders", "now", now.Format(time.RFC3339), "calendar", cfg.Calendar.Name)
		return nil
	}

	pending, err := s.approvals.ListPending(ctx)
	if err != nil {
		return fmt.Errorf("listing pending approval requests: %w", err)
	}

	policies := map[string]*domain.Policy{}
	var errs []error
	sent := 0
	for _, r := range pending {
		p, err := s.getPolicy(ctx, policies, r)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: request %q: %v", domain.ErrReminderConfigInvalid, r.ID, err))
			continue
		}
		if p.Reminder == nil {
			continue
		}
		if p.Reminder.Template == "" {
			errs = append(errs, fmt.Errorf("%w: policy %q has a reminder without template", domain.ErrReminderConfigInvalid, p.ID))
			continue
		}
		period, err := p.Reminder.PeriodDuration()
		if err != nil {
			errs = append(errs, fmt.Errorf("policy %q: %w", p.ID, err))
			continue
		}

		if now.Sub(r.ReminderBase()) < period {
			continue
		}

		notifications := reminderNotifications(r, p.Reminder.Template)
		if len(notifications) == 0 {
			continue
		}
		if notifyErrs := s.notifier.Notify(ctx, notifications); len(notifyErrs) > 0 {
			for _, e := range notifyErrs {
				s.logger.Error(ctx, "failed to send notifications", "error", e.Error(), "request_id", r.ID)
			}
			if len(notifyErrs) >= len(notifications) {
				continue
			}
		}

		if err := s.approvals.MarkReminded(ctx, []string{r.ID}, now); err != nil {
			errs = append(errs, fmt.Errorf("stamping reminder of request %q: %w", r.ID, err))
			continue
		}
		sent++
	}

	s.logger.Info(ctx, "approval reminders processed", "pending", len(pending), "reminded", sent, "errors", len(errs))
	return errors.Join(errs...)
}

func (s *Service) getPolicy(ctx context.Context, cache map[string]*domain.Policy, r *domain.ApprovalRequest) (*domain.Policy, error) {
	key := fmt.Sprintf("%s:%d", r.PolicyID, r.PolicyVersion)
	if p, ok := cache[key]; ok {
		return p, nil
	}
	p, err := s.policies.GetOne(ctx, r.PolicyID, r.PolicyVersion)
	if err != nil {
		return nil, err
	}
	cache[key] = p
	return p, nil
}

func reminderNotifications(r *domain.ApprovalRequest, template string) []domain.Notification {
	notifications := make([]domain.Notification, 0, len(r.Approvers))
	for _, approver := range r.Approvers {
		notifications = append(notifications, domain.Notification{
			User: approver,
			Labels: map[string]string{
				"document":   r.Ref().String(),
				"request_id": r.ID,
			},
			Message: domain.NotificationMessage{
				Type:     domain.NotificationTypeApprovalReminder,
				Template: template,
				Variables: map[string]interface{}{
					"document_model": r.DocumentModel,
					"document_id":    r.DocumentID,
					"level_name":     r.LevelName,
					"request_id":     r.ID,
					"requested_by":   r.RequestedBy,
					"waiting_since":  r.CreatedAt.Format(time.RFC3339),
				},
			},
		})
	}
	return notifications
}
