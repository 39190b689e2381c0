package report

import (
	"context"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db}
}

func (r *Repository) GetPendingApprovalsList(ctx context.Context, filters *PendingApprovalsReportFilter) ([]*PendingApprovalsReport, error) {
	records := []*PendingApprovalsReport{}

	db := applyRequestFilter(r.db.WithContext(ctx), filters)
	rows, err := db.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		if err := db.ScanRows(rows, &records); err != nil {
			return nil, err
		}
	}

	return records, nil
}

func applyRequestFilter(db *gorm.DB, filters *PendingApprovalsReportFilter) *gorm.DB {
	db = db.Table("approval_request_approvers").
		Select(`approval_requests.id as request_id, approval_request_approvers.email as approver,
			approval_requests.document_model, approval_requests.document_id, approval_requests.level_name,
			approval_requests.requested_by, approval_requests.created_at`).
		Joins("join approval_requests on approval_requests.id = approval_request_approvers.request_id").
		Order("approval_request_approvers.email, approval_requests.created_at")

	if filters == nil {
		return db
	}
	if filters.RequestStatuses != nil {
		db = db.Where(`"approval_requests"."status" IN ?`, filters.RequestStatuses)
	}
	if filters.DocumentModels != nil {
		db = db.Where(`"approval_requests"."document_model" IN ?`, filters.DocumentModels)
	}
	if filters.Approvers != nil {
		db = db.Where(`"approval_request_approvers"."email" IN ?`, filters.Approvers)
	}
	return db
}
