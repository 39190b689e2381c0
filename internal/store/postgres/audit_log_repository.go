package postgres

import (
	"context"
	"fmt"

	"github.com/goto/salt/audit"
	auditrepo "github.com/goto/salt/audit/repositories"
	"gorm.io/gorm"

	"github.com/goto/signoff/domain"
)

type auditLogModel auditrepo.AuditModel

func (auditLogModel) TableName() string {
	return "audit_logs"
}

func (m auditLogModel) toAuditLog() (*audit.Log, error) {
	l := &audit.Log{
		Timestamp: m.Timestamp,
		Action:    m.Action,
		Actor:     m.Actor,
	}
	if !m.Data.Valid {
		return l, nil
	}

	var data map[string]interface{}
	if err := m.Data.Unmarshal(&data); err != nil {
		return nil, fmt.Errorf("parsing audit log data of %q: %w", m.Action, err)
	}
	l.Data = data
	return l, nil
}

// AuditLogRepository reads the rows written by the salt audit postgres repository
type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) List(ctx context.Context, filter *domain.ListAuditLogFilter) ([]*audit.Log, error) {
	db := r.db.WithContext(ctx)
	if filter != nil {
		if len(filter.Actions) > 0 {
			db = db.Where(`"action" IN ?`, filter.Actions)
		}
		if filter.DocumentModel != "" {
			db = db.Where(`"data" ->> 'document_model' = ?`, filter.DocumentModel)
		}
		if filter.DocumentID != "" {
			db = db.Where(`"data" ->> 'document_id' = ?`, filter.DocumentID)
		}
		if filter.PolicyID != "" {
			db = db.Where(`"data" ->> 'policy_id' = ?`, filter.PolicyID)
		}
	}
	db = db.Order(`"timestamp"`)

	var rows []auditLogModel
	if err := db.Find(&rows).Error; err != nil {
		return nil, err
	}

	logs := make([]*audit.Log, 0, len(rows))
	for _, row := range rows {
		l, err := row.toAuditLog()
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, nil
}
