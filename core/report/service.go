package report

import (
	"context"

	"github.com/goto/signoff/domain"
	"github.com/goto/signoff/utils"
)

//go:generate mockery --name=repository --exported --with-expecter
type repository interface {
	GetPendingApprovalsList(context.Context, *PendingApprovalsReportFilter) ([]*PendingApprovalsReport, error)
}

type ServiceDeps struct {
	Repository repository
}

type Service struct {
	repo repository
}

func NewService(deps ServiceDeps) *Service {
	return &Service{
		deps.Repository,
	}
}

// GetPendingApprovalsList lists pending requests per approver, defaulting to the pending status
func (s *Service) GetPendingApprovalsList(ctx context.Context, filters *PendingApprovalsReportFilter) ([]*PendingApprovalsReport, error) {
	if filters == nil {
		filters = &PendingApprovalsReportFilter{}
	}
	if err := utils.ValidateStruct(filters); err != nil {
		return nil, err
	}
	if filters.RequestStatuses == nil {
		filters.RequestStatuses = []string{domain.RequestStatusPending}
	}
	return s.repo.GetPendingApprovalsList(ctx, filters)
}

// GroupByApprover indexes report rows by approver
func GroupByApprover(records []*PendingApprovalsReport) map[string][]*PendingApprovalsReport {
	grouped := map[string][]*PendingApprovalsReport{}
	for _, r := range records {
		grouped[r.Approver] = append(grouped[r.Approver], r)
	}
	return grouped
}
