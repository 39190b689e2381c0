package comment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goto/signoff/domain"
	"github.com/goto/signoff/pkg/log"
	"github.com/goto/signoff/plugins/notifiers"
)

const (
	AuditKeyCreate = "document.comment"
)

var (
	ErrEmptyCommentCreator = errors.New("comment creator (\"created_by\") can't be empty")
	ErrEmptyCommentBody    = errors.New("comment can't be empty")
)

//go:generate mockery --name=repository --exported --with-expecter
type repository interface {
	Create(context.Context, *domain.Comment) error
	List(context.Context, domain.ListCommentsFilter) ([]*domain.Comment, error)
}

//go:generate mockery --name=requestLister --exported --with-expecter
type requestLister interface {
	ListByDocument(context.Context, domain.DocumentRef) ([]*domain.ApprovalRequest, error)
}

//go:generate mockery --name=notifier --exported --with-expecter
type notifier interface {
	notifiers.Client
}

//go:generate mockery --name=auditLogger --exported --with-expecter
type auditLogger interface {
	Log(ctx context.Context, action string, data interface{}) error
}

type Service struct {
	repo     repository
	requests requestLister

	notifier    notifier
	logger      log.Logger
	auditLogger auditLogger
}

type ServiceDeps struct {
	Repository repository
	Requests   requestLister

	Notifier    notifier
	Logger      log.Logger
	AuditLogger auditLogger
}

func NewService(deps ServiceDeps) *Service {
	return &Service{
		repo:        deps.Repository,
		requests:    deps.Requests,
		notifier:    deps.Notifier,
		logger:      deps.Logger,
		auditLogger: deps.AuditLogger,
	}
}

func (s *Service) Create(ctx context.Context, c *domain.Comment, opts ...Option) error {
	if c.CreatedBy == "" {
		return ErrEmptyCommentCreator
	}
	if strings.TrimSpace(c.Body) == "" {
		return ErrEmptyCommentBody
	}
	ref := domain.DocumentRef{Model: c.DocumentModel, ID: c.DocumentID}
	if err := ref.Validate(); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return err
	}

	options := getOptions(opts...)
	if !options.skipAuditLog {
		if err := s.auditLogger.Log(ctx, AuditKeyCreate, map[string]interface{}{
			"document_model": c.DocumentModel,
			"document_id":    c.DocumentID,
			"comment_id":     c.ID,
			"actor":          c.CreatedBy,
			"body":           c.Body,
		}); err != nil {
			s.logger.Error(ctx, "failed to record audit log", "error", err, "document", ref.String(), "comment_id", c.ID)
		}
	}
	if !options.skipNotifications {
		if err := s.notifyParticipants(ctx, c); err != nil {
			s.logger.Error(ctx, "failed to notify participants", "error", err, "document", ref.String(), "comment_id", c.ID)
		}
	}

	return nil
}

func (s *Service) List(ctx context.Context, filter domain.ListCommentsFilter) ([]*domain.Comment, error) {
	if err := (domain.DocumentRef{Model: filter.DocumentModel, ID: filter.DocumentID}).Validate(); err != nil {
		return nil, err
	}
	if filter.OrderBy == nil {
		filter.OrderBy = []string{"created_at"}
	}
	return s.repo.List(ctx, filter)
}

// notifyParticipants tells the requester, the approvers of pending requests and earlier commenters
func (s *Service) notifyParticipants(ctx context.Context, comment *domain.Comment) error {
	ref := domain.DocumentRef{Model: comment.DocumentModel, ID: comment.DocumentID}
	recipients := map[string]bool{}

	requests, err := s.requests.ListByDocument(ctx, ref)
	if err != nil {
		return fmt.Errorf("failed to get approval requests of %q: %w", ref, err)
	}
	for _, r := range requests {
		if r.RequestedBy != "" {
			recipients[strings.ToLower(r.RequestedBy)] = true
		}
		if r.IsPending() {
			for _, approver := range r.Approvers {
				recipients[strings.ToLower(approver)] = true
			}
		}
	}

	comments, err := s.repo.List(ctx, domain.ListCommentsFilter{DocumentModel: comment.DocumentModel, DocumentID: comment.DocumentID})
	if err != nil {
		return fmt.Errorf("failed to get comments of %q: %w", ref, err)
	}
	for _, c := range comments {
		recipients[strings.ToLower(c.CreatedBy)] = true
	}

	delete(recipients, strings.ToLower(comment.CreatedBy))

	users := make([]string, 0, len(recipients))
	for u := range recipients {
		users = append(users, u)
	}
	sort.Strings(users)

	var notifications []domain.Notification
	for _, u := range users {
		notifications = append(notifications, domain.Notification{
			User:   u,
			Labels: map[string]string{"document": ref.String()},
			Message: domain.NotificationMessage{
				Type: domain.NotificationTypeNewComment,
				Variables: map[string]interface{}{
					"document_model":     comment.DocumentModel,
					"document_id":        comment.DocumentID,
					"comment_id":         comment.ID,
					"comment_created_by": comment.CreatedBy,
					"body":               comment.Body,
				},
			},
		})
	}
	if len(notifications) > 0 {
		if errs := s.notifier.Notify(ctx, notifications); errs != nil {
			for _, err := range errs {
				s.logger.Error(ctx, "failed to send notifications", "error", err.Error())
			}
		}
	}

	return nil
}
