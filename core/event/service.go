package event

import (
	"context"
	"errors"
	"fmt"

	"github.com/goto/salt/audit"

	"github.com/goto/signoff/domain"
	"github.com/goto/signoff/pkg/log"
)

var ErrEmptyPolicyID = errors.New("policy id is required")

//go:generate mockery --name=repository --exported --with-expecter
type repository interface {
	List(context.Context, *domain.ListAuditLogFilter) ([]*audit.Log, error)
}

// Service exposes the audit log as the history of documents and policies
type Service struct {
	repo repository
	log  log.Logger
}

func NewService(repo repository, log log.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) List(ctx context.Context, filter *domain.ListEventsFilter) ([]*domain.Event, error) {
	var auditLogFilter *domain.ListAuditLogFilter
	if filter != nil {
		auditLogFilter = &domain.ListAuditLogFilter{
			Actions:  filter.Types,
			PolicyID: filter.PolicyID,
		}
		if filter.Document != nil {
			auditLogFilter.DocumentModel = filter.Document.Model
			auditLogFilter.DocumentID = filter.Document.ID
		}
	}

	logs, err := s.repo.List(ctx, auditLogFilter)
	if err != nil {
		return nil, err
	}

	events := make([]*domain.Event, 0, len(logs))
	for _, l := range logs {
		e := new(domain.Event)
		if err := e.FromAuditLog(l); err != nil {
			s.log.Warn(ctx, "skipping audit log", "action", l.Action, "error", err)
			continue
		}
		events = append(events, e)
	}

	return events, nil
}

// ListDocumentHistory returns the events recorded for one document
func (s *Service) ListDocumentHistory(ctx context.Context, ref domain.DocumentRef) ([]*domain.Event, error) {
	if err := ref.Validate(); err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	return s.List(ctx, &domain.ListEventsFilter{Document: &ref})
}

// ListPolicyHistory returns the create and update events of a policy across its versions
func (s *Service) ListPolicyHistory(ctx context.Context, policyID string) ([]*domain.Event, error) {
	if policyID == "" {
		return nil, fmt.Errorf("listing history: %w", ErrEmptyPolicyID)
	}
	return s.List(ctx, &domain.ListEventsFilter{PolicyID: policyID})
}
