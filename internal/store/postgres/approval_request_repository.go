package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/goto/signoff/core/approval"
	"github.com/goto/signoff/domain"
	"github.com/goto/signoff/internal/store/postgres/model"
	"github.com/goto/signoff/utils"
)

type ApprovalRequestRepository struct {
	db *gorm.DB
}

func NewApprovalRequestRepository(db *gorm.DB) *ApprovalRequestRepository {
	return &ApprovalRequestRepository{db}
}

func (r *ApprovalRequestRepository) BulkInsert(ctx context.Context, requests []*domain.ApprovalRequest) error {
	if len(requests) == 0 {
		return nil
	}

	models := make([]*model.ApprovalRequest, 0, len(requests))
	for _, req := range requests {
		m := new(model.ApprovalRequest)
		if err := m.FromDomain(req); err != nil {
			return fmt.Errorf("serializing approval request: %w", err)
		}
		models = append(models, m)
	}

	return r.withTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(models).Error; err != nil {
			return err
		}
		for i, m := range models {
			req, err := m.ToDomain()
			if err != nil {
				return fmt.Errorf("deserializing approval request: %w", err)
			}
			*requests[i] = *req
		}
		return nil
	})
}

// BulkUpdate replaces every column of the given requests, approvers included
func (r *ApprovalRequestRepository) BulkUpdate(ctx context.Context, requests []*domain.ApprovalRequest) error {
	return r.withTx(ctx, func(tx *gorm.DB) error {
		for _, req := range requests {
			m := new(model.ApprovalRequest)
			if err := m.FromDomain(req); err != nil {
				return fmt.Errorf("serializing approval request: %w", err)
			}

			result := tx.Model(m).Select("*").Omit("Approvers", "CreatedAt").Updates(m)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%w: %q", approval.ErrRequestNotFound, req.ID)
			}

			if err := tx.Where("request_id = ?", m.ID).Delete(&model.Approver{}).Error; err != nil {
				return err
			}
			if len(m.Approvers) > 0 {
				if err := tx.Create(m.Approvers).Error; err != nil {
					return err
				}
			}
			req.UpdatedAt = m.UpdatedAt
		}
		return nil
	})
}

// GetByID locks the row when called inside a transaction
func (r *ApprovalRequestRepository) GetByID(ctx context.Context, id string) (*domain.ApprovalRequest, error) {
	if !utils.IsValidUUID(id) {
		return nil, fmt.Errorf("%w: %q", approval.ErrRequestNotFound, id)
	}

	db := conn(ctx, r.db)
	if inTransaction(ctx) {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	m := new(model.ApprovalRequest)
	if err := db.Preload("Approvers").First(m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %q", approval.ErrRequestNotFound, id)
		}
		return nil, err
	}
	return m.ToDomain()
}

func (r *ApprovalRequestRepository) Find(ctx context.Context, filter domain.ListApprovalRequestsFilter) ([]*domain.ApprovalRequest, error) {
	if err := utils.ValidateStruct(filter); err != nil {
		return nil, err
	}

	db := conn(ctx, r.db).Preload("Approvers")
	if filter.DocumentModel != "" {
		db = db.Where(`"document_model" = ?`, filter.DocumentModel)
	}
	if filter.DocumentID != "" {
		db = db.Where(`"document_id" = ?`, filter.DocumentID)
	}
	if len(filter.Statuses) > 0 {
		db = db.Where(`"status" IN ?`, filter.Statuses)
	}
	if filter.Approver != "" {
		db = db.Where(`"id" IN (?)`, conn(ctx, r.db).Model(&model.Approver{}).
			Select("request_id").Where("LOWER(email) = LOWER(?)", filter.Approver))
	}
	if len(filter.PolicyIDs) > 0 {
		db = db.Where(`"policy_id" IN ?`, filter.PolicyIDs)
	}
	db = db.Order("created_at").Order("sequence").Order("id")
	if filter.Size > 0 {
		db = db.Limit(filter.Size)
	}
	if filter.Offset > 0 {
		db = db.Offset(filter.Offset)
	}

	var models []*model.ApprovalRequest
	if err := db.Find(&models).Error; err != nil {
		return nil, err
	}

	records := []*domain.ApprovalRequest{}
	for _, m := range models {
		req, err := m.ToDomain()
		if err != nil {
			return nil, err
		}
		records = append(records, req)
	}
	return records, nil
}

// DeleteByDocument removes every request of the document, approver rows cascade
func (r *ApprovalRequestRepository) DeleteByDocument(ctx context.Context, ref domain.DocumentRef) error {
	return conn(ctx, r.db).
		Where("document_model = ? AND document_id = ?", ref.Model, ref.ID).
		Delete(&model.ApprovalRequest{}).Error
}

func (r *ApprovalRequestRepository) UpdateLastReminderDate(ctx context.Context, ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	parsed := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		u, err := uuid.Parse(id)
		if err != nil {
			return fmt.Errorf("%w: %q", approval.ErrRequestNotFound, id)
		}
		parsed = append(parsed, u)
	}

	result := conn(ctx, r.db).Model(&model.ApprovalRequest{}).
		Where("id IN ?", parsed).
		UpdateColumn("last_reminder_date", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != int64(len(parsed)) {
		return fmt.Errorf("%w: some of %v", approval.ErrRequestNotFound, ids)
	}
	return nil
}

func (r *ApprovalRequestRepository) withTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if inTransaction(ctx) {
		return fn(conn(ctx, r.db))
	}
	return r.db.WithContext(ctx).Transaction(fn)
}
