package memory

import (
	"context"
	"sort"

	"github.com/goto/signoff/core/report"
	"github.com/goto/signoff/pkg/slices"
)

type ReportRepository struct {
	store *Store
}

func NewReportRepository(s *Store) *ReportRepository {
	return &ReportRepository{s}
}

func (r *ReportRepository) GetPendingApprovalsList(_ context.Context, filters *report.PendingApprovalsReportFilter) ([]*report.PendingApprovalsReport, error) {
	if filters == nil {
		filters = &report.PendingApprovalsReportFilter{}
	}
	records := []*report.PendingApprovalsReport{}
	err := r.store.read(func(s *state) error {
		for _, req := range s.Requests {
			if filters.RequestStatuses != nil && !slices.ContainsFold(filters.RequestStatuses, req.Status) {
				continue
			}
			if filters.DocumentModels != nil && !slices.ContainsFold(filters.DocumentModels, req.DocumentModel) {
				continue
			}
			for _, approver := range req.Approvers {
				if filters.Approvers != nil && !slices.ContainsFold(filters.Approvers, approver) {
					continue
				}
				records = append(records, &report.PendingApprovalsReport{
					RequestID:     req.ID,
					Approver:      approver,
					DocumentModel: req.DocumentModel,
					DocumentID:    req.DocumentID,
					LevelName:     req.LevelName,
					RequestedBy:   req.RequestedBy,
					CreatedAt:     req.CreatedAt,
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Approver != records[j].Approver {
			return records[i].Approver < records[j].Approver
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}
