package jobs

import (
	"context"
	"fmt"
	"sort"

	"github.com/goto/signoff/core/report"
	"github.com/goto/signoff/domain"
)

type PendingApprovalsDigestConfig struct {
	DocumentModels []string `mapstructure:"document_models"`
	DryRun         bool     `mapstructure:"dry_run"`
}

func (h *handler) PendingApprovalsDigest(ctx context.Context, c Config) error {
	var cfg PendingApprovalsDigestConfig
	if err := c.Decode(&cfg); err != nil {
		return fmt.Errorf("invalid config for %s job: %w", TypePendingApprovalsDigest, err)
	}

	return h.withLock(ctx, TypePendingApprovalsDigest, 0, func(ctx context.Context) error {
		h.logger.Info(ctx, "retrieving pending approvals...")
		filter := &report.PendingApprovalsReportFilter{
			RequestStatuses: []string{domain.RequestStatusPending},
		}
		if len(cfg.DocumentModels) > 0 {
			filter.DocumentModels = cfg.DocumentModels
		}
		pendingApprovals, err := h.reportService.GetPendingApprovalsList(ctx, filter)
		if err != nil {
			return fmt.Errorf("retrieving pending approvals: %w", err)
		}
		h.logger.Info(ctx, "retrieved pending approvals", "count", len(pendingApprovals))

		grouped := report.GroupByApprover(pendingApprovals)
		approvers := make([]string, 0, len(grouped))
		for approver := range grouped {
			approvers = append(approvers, approver)
		}
		sort.Strings(approvers)

		var notifications []domain.Notification
		for _, approver := range approvers {
			rows := grouped[approver]
			requests := make([]map[string]interface{}, 0, len(rows))
			for _, r := range rows {
				requests = append(requests, map[string]interface{}{
					"request_id":     r.RequestID,
					"document_model": r.DocumentModel,
					"document_id":    r.DocumentID,
					"level_name":     r.LevelName,
					"requested_by":   r.RequestedBy,
					"created_at":     r.CreatedAt,
				})
			}
			notifications = append(notifications, domain.Notification{
				User: approver,
				Message: domain.NotificationMessage{
					Type: domain.NotificationTypePendingApprovalsDigest,
					Variables: map[string]interface{}{
						"pending_count": len(rows),
						"requests":      requests,
					},
				},
			})
		}

		if cfg.DryRun {
			h.logger.Info(ctx, "dry run, skipping notifications", "count", len(notifications))
			return nil
		}

		if errs := h.notifier.Notify(ctx, notifications); errs != nil {
			for _, e := range errs {
				h.logger.Error(ctx, "failed to send notifications", "error", e)
			}
		}
		h.logger.Info(ctx, "pending approvals digest sent", "approvers", len(notifications))
		return nil
	})
}
