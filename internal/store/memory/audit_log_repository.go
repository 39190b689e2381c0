package memory

import (
	"context"
	"sort"

	"github.com/goto/salt/audit"

	"github.com/goto/signoff/domain"
	"github.com/goto/signoff/pkg/slices"
)

// AuditLogRepository is the audit.Service repository and the event source of the memory store
type AuditLogRepository struct {
	store *Store
}

func NewAuditLogRepository(s *Store) *AuditLogRepository {
	return &AuditLogRepository{s}
}

func (r *AuditLogRepository) Init(context.Context) error {
	return nil
}

func (r *AuditLogRepository) Insert(_ context.Context, l *audit.Log) error {
	row, err := clone(l)
	if err != nil {
		return err
	}
	return r.store.write(func(s *state) error {
		s.AuditLogs = append(s.AuditLogs, row)
		return nil
	})
}

func (r *AuditLogRepository) List(_ context.Context, filter *domain.ListAuditLogFilter) ([]*audit.Log, error) {
	var records []*audit.Log
	err := r.store.read(func(s *state) error {
		for _, l := range s.AuditLogs {
			if filter != nil && !matchesAuditLog(filter, l) {
				continue
			}
			records = append(records, l)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
	return cloneAll(records)
}

func matchesAuditLog(filter *domain.ListAuditLogFilter, l *audit.Log) bool {
	if len(filter.Actions) > 0 && !slices.ContainsFold(filter.Actions, l.Action) {
		return false
	}
	data, _ := l.Data.(map[string]interface{})
	if filter.DocumentModel != "" && data["document_model"] != filter.DocumentModel {
		return false
	}
	if filter.DocumentID != "" && data["document_id"] != filter.DocumentID {
		return false
	}
	if filter.PolicyID != "" && data["policy_id"] != filter.PolicyID {
		return false
	}
	return true
}
