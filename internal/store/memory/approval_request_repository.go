package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/goto/signoff/core/approval"
	"github.com/goto/signoff/domain"
	"github.com/goto/signoff/pkg/slices"
)

type ApprovalRequestRepository struct {
	store *Store
}

func NewApprovalRequestRepository(s *Store) *ApprovalRequestRepository {
	return &ApprovalRequestRepository{s}
}

func (r *ApprovalRequestRepository) BulkInsert(_ context.Context, requests []*domain.ApprovalRequest) error {
	rows, err := cloneAll(requests)
	if err != nil {
		return err
	}
	return r.store.write(func(s *state) error {
		for _, row := range rows {
			if _, exists := s.Requests[row.ID]; exists {
				return fmt.Errorf("approval request %q already exists", row.ID)
			}
		}
		for _, row := range rows {
			s.Requests[row.ID] = row
		}
		return nil
	})
}

func (r *ApprovalRequestRepository) BulkUpdate(_ context.Context, requests []*domain.ApprovalRequest) error {
	rows, err := cloneAll(requests)
	if err != nil {
		return err
	}
	return r.store.write(func(s *state) error {
		for _, row := range rows {
			if _, exists := s.Requests[row.ID]; !exists {
				return fmt.Errorf("%w: %q", approval.ErrRequestNotFound, row.ID)
			}
		}
		for _, row := range rows {
			s.Requests[row.ID] = row
		}
		return nil
	})
}

func (r *ApprovalRequestRepository) GetByID(_ context.Context, id string) (*domain.ApprovalRequest, error) {
	var found *domain.ApprovalRequest
	if err := r.store.read(func(s *state) error {
		found = s.Requests[id]
		return nil
	}); err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %q", approval.ErrRequestNotFound, id)
	}
	return clone(found)
}

func (r *ApprovalRequestRepository) Find(_ context.Context, filter domain.ListApprovalRequestsFilter) ([]*domain.ApprovalRequest, error) {
	var records []*domain.ApprovalRequest
	err := r.store.read(func(s *state) error {
		for _, req := range s.Requests {
			if filter.DocumentModel != "" && req.DocumentModel != filter.DocumentModel {
				continue
			}
			if filter.DocumentID != "" && req.DocumentID != filter.DocumentID {
				continue
			}
			if len(filter.Statuses) > 0 && !slices.ContainsFold(filter.Statuses, req.Status) {
				continue
			}
			if filter.Approver != "" && !req.IsExistingApprover(filter.Approver) {
				continue
			}
			if len(filter.PolicyIDs) > 0 && !slices.ContainsFold(filter.PolicyIDs, req.PolicyID) {
				continue
			}
			records = append(records, req)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.Before(records[j].CreatedAt)
		}
		if records[i].Sequence != records[j].Sequence {
			return records[i].Sequence < records[j].Sequence
		}
		return records[i].ID < records[j].ID
	})
	return cloneAll(paginate(records, filter.Size, filter.Offset))
}

func (r *ApprovalRequestRepository) DeleteByDocument(_ context.Context, ref domain.DocumentRef) error {
	return r.store.write(func(s *state) error {
		for id, req := range s.Requests {
			if req.DocumentModel == ref.Model && req.DocumentID == ref.ID {
				delete(s.Requests, id)
			}
		}
		return nil
	})
}

func (r *ApprovalRequestRepository) UpdateLastReminderDate(_ context.Context, ids []string, at time.Time) error {
	return r.store.write(func(s *state) error {
		for _, id := range ids {
			req, ok := s.Requests[id]
			if !ok {
				return fmt.Errorf("%w: %q", approval.ErrRequestNotFound, id)
			}
			stamp := at
			req.LastReminderDate = &stamp
		}
		return nil
	})
}
