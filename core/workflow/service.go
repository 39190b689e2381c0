package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goto/salt/audit"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/goto/signoff/core/approval"
	"github.com/goto/signoff/core/comment"
	"github.com/goto/signoff/domain"
	"github.com/goto/signoff/pkg/log"
	"github.com/goto/signoff/pkg/slices"
	"github.com/goto/signoff/plugins/notifiers"
)

const (
	AuditKeyRequestApproval = "document.request_approval"
	AuditKeyApprove         = "document.approve"
	AuditKeyReject          = "document.reject"
	AuditKeyRecall          = "document.recall"
	AuditKeyResetToDraft    = "document.reset_to_draft"
	AuditKeyConfirm         = "document.confirm"

	instrumentationName = "github.com/goto/signoff/core/workflow"
)

type transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type policyService interface {
	Match(context.Context, domain.Document) (*domain.Policy, error)
}

type approvalService interface {
	CreateRequestsFor(ctx context.Context, doc domain.Document, policy *domain.Policy, requestedBy string) ([]*domain.ApprovalRequest, error)
	GetByID(ctx context.Context, id string) (*domain.ApprovalRequest, error)
	RecordDecision(context.Context, domain.ApprovalAction) (*approval.DecisionResult, error)
	ListByDocument(context.Context, domain.DocumentRef) ([]*domain.ApprovalRequest, error)
	EnsureAllApproved(context.Context, domain.DocumentRef) error
	RemoveRequests(context.Context, domain.DocumentRef) ([]*domain.ApprovalRequest, error)
}

type groupRepository interface {
	GetMembers(ctx context.Context, name string) ([]string, error)
}

type commentService interface {
	Create(context.Context, *domain.Comment, ...comment.Option) error
}

//go:generate mockery --name=notifier --exported --with-expecter
type notifier interface {
	notifiers.Client
}

//go:generate mockery --name=auditLogger --exported --with-expecter
type auditLogger interface {
	Log(ctx context.Context, action string, data interface{}) error
}

// Result is the outcome of a transition
type Result struct {
	Document domain.Document
	Requests []*domain.ApprovalRequest
	// AutoApproved is set when the document skipped approval
	AutoApproved bool
}

type ServiceDeps struct {
	Transactor transactor
	Policies   policyService
	Approvals  approvalService
	Groups     groupRepository
	Comments   commentService
	// Documents serves the models without a registered store
	Documents domain.DocumentStore

	Notifier    notifier
	Logger      log.Logger
	AuditLogger auditLogger
}

// Service moves documents through draft, under_approval, approved and rejected
type Service struct {
	tx        transactor
	policies  policyService
	approvals approvalService
	groups    groupRepository
	comments  commentService

	mu           sync.RWMutex
	stores       map[string]domain.DocumentStore
	defaultStore domain.DocumentStore
	notifier     notifier
	logger       log.Logger
	auditLogger  auditLogger
	tracer       trace.Tracer
	transitions  metric.Int64Counter

	TimeNow func() time.Time
}

func NewService(deps ServiceDeps) *Service {
	meter := otel.Meter(instrumentationName)
	transitions, err := meter.Int64Counter("signoff.workflow.transitions",
		metric.WithDescription("number of document state transitions"),
	)
	if err != nil && deps.Logger != nil {
		deps.Logger.Warn(context.Background(), "unable to create transitions counter", "error", err)
	}

	return &Service{
		tx:           deps.Transactor,
		policies:     deps.Policies,
		approvals:    deps.Approvals,
		groups:       deps.Groups,
		comments:     deps.Comments,
		stores:       map[string]domain.DocumentStore{},
		defaultStore: deps.Documents,
		notifier:     deps.Notifier,
		logger:       deps.Logger,
		auditLogger:  deps.AuditLogger,
		tracer:       otel.Tracer(instrumentationName),
		transitions:  transitions,
		TimeNow:      time.Now,
	}
}

// RegisterDocumentStore routes documents of model to store
func (s *Service) RegisterDocumentStore(model string, store domain.DocumentStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stores[model] = store
}

// RequestApproval moves a draft document under approval, or straight to approved when the
// actor may bypass approval or no level of the matched policy is required
func (s *Service) RequestApproval(ctx context.Context, ref domain.DocumentRef, actor string) (result *Result, err error) {
	ctx, span := s.startSpan(ctx, "RequestApproval", ref)
	defer func() { endSpan(span, err) }()

	if actor == "" {
		return nil, domain.ErrEmptyActor
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		doc, store, err := s.getDocument(ctx, ref)
		if err != nil {
			return err
		}
		if doc.GetState() != domain.DocumentStateDraft {
			return fmt.Errorf("%w: %q is %s", ErrDocumentStateInvalid, ref, doc.GetState())
		}
		if err := doc.ValidateApprovalRequest(ctx); err != nil {
			return fmt.Errorf("%w: %v", ErrDocumentNotEligible, err)
		}
		doc.SetRequestedBy(actor)

		result = &Result{Document: doc}
		bypass, err := doc.ApprovalAllowed(ctx, actor)
		if err != nil {
			return fmt.Errorf("checking approval bypass: %w", err)
		}

		var policy *domain.Policy
		if !bypass {
			policy, err = s.policies.Match(ctx, doc)
			if err != nil {
				return err
			}
			if bypass, err = s.isBypassMember(ctx, policy, actor); err != nil {
				return err
			}
		}

		if !bypass {
			requests, err := s.approvals.CreateRequestsFor(ctx, doc, policy, actor)
			if err != nil {
				return err
			}
			result.Requests = requests
		}

		if len(result.Requests) == 0 {
			result.AutoApproved = true
			finalize(doc)
		} else {
			doc.SetState(domain.DocumentStateUnderApproval)
		}
		return store.SaveDocument(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	s.countTransition(ctx, AuditKeyRequestApproval, result.Document.GetState())
	s.logAudit(ctx, actor, AuditKeyRequestApproval, ref, map[string]interface{}{
		"state":         string(result.Document.GetState()),
		"auto_approved": result.AutoApproved,
		"request_ids":   requestIDs(result.Requests),
	})
	if result.AutoApproved {
		s.notify(ctx, s.documentNotifications(result.Document, domain.NotificationTypeDocumentApproved, nil))
	} else {
		s.notify(ctx, approverNotifications(result.Document, pendingRequests(result.Requests)))
	}
	return result, nil
}

// Approve records an approval of actor on a request
func (s *Service) Approve(ctx context.Context, requestID, actor string) (*Result, error) {
	return s.UpdateApproval(ctx, domain.ApprovalAction{
		RequestID: requestID,
		Actor:     actor,
		Action:    domain.ApprovalActionApprove,
	})
}

// Reject rejects the whole document from one of its requests
func (s *Service) Reject(ctx context.Context, requestID, actor, reason string) (*Result, error) {
	return s.UpdateApproval(ctx, domain.ApprovalAction{
		RequestID: requestID,
		Actor:     actor,
		Action:    domain.ApprovalActionReject,
		Reason:    reason,
	})
}

// UpdateApproval applies a decision and moves the document accordingly. Approving the last request
// finalizes the document, a single rejection rejects it.
func (s *Service) UpdateApproval(ctx context.Context, action domain.ApprovalAction) (result *Result, err error) {
	ctx, span := s.tracer.Start(ctx, "workflow.UpdateApproval", trace.WithAttributes(
		attribute.String("request_id", action.RequestID),
		attribute.String("action", string(action.Action)),
	))
	defer func() { endSpan(span, err) }()

	if err := action.Validate(); err != nil {
		return nil, err
	}

	var (
		decision *approval.DecisionResult
		doc      domain.Document
	)
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		request, err := s.approvals.GetByID(ctx, action.RequestID)
		if err != nil {
			return err
		}
		var store domain.DocumentStore
		doc, store, err = s.getDocument(ctx, request.Ref())
		if err != nil {
			return err
		}
		if doc.GetState() != domain.DocumentStateUnderApproval {
			return fmt.Errorf("%w: %q is %s", ErrDocumentNotUnderApproval, request.Ref(), doc.GetState())
		}

		decision, err = s.approvals.RecordDecision(ctx, action)
		if err != nil {
			return err
		}

		switch {
		case decision.Rejected:
			doc.SetState(domain.DocumentStateRejected)
			if err := s.comments.Create(ctx, &domain.Comment{
				DocumentModel: request.DocumentModel,
				DocumentID:    request.DocumentID,
				CreatedBy:     action.Actor,
				Body:          fmt.Sprintf("Rejected at level %q: %s", decision.Request.LevelName, action.Reason),
				CreatedAt:     s.TimeNow(),
				UpdatedAt:     s.TimeNow(),
			}, comment.SkipNotifications(), comment.SkipAuditLog()); err != nil {
				return fmt.Errorf("posting rejection reason: %w", err)
			}
		case decision.Completed:
			finalize(doc)
		default:
			return nil
		}
		return store.SaveDocument(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	result = &Result{Document: doc, Requests: decision.Requests}

	auditKey := AuditKeyApprove
	if action.Action == domain.ApprovalActionReject {
		auditKey = AuditKeyReject
	}
	s.countTransition(ctx, auditKey, doc.GetState())
	s.logAudit(ctx, action.Actor, auditKey, doc.Ref(), map[string]interface{}{
		"request_id": action.RequestID,
		"level_name": decision.Request.LevelName,
		"reason":     action.Reason,
		"state":      string(doc.GetState()),
	})

	var notifications []domain.Notification
	switch {
	case decision.Rejected:
		notifications = s.documentNotifications(doc, domain.NotificationTypeDocumentRejected, map[string]interface{}{
			"rejected_by": action.Actor,
			"reason":      action.Reason,
			"level_name":  decision.Request.LevelName,
		})
	case decision.Completed:
		notifications = s.documentNotifications(doc, domain.NotificationTypeDocumentApproved, nil)
	default:
		notifications = approverNotifications(doc, decision.Promoted)
	}
	s.notify(ctx, notifications)

	return result, nil
}

// Recall pulls an under approval document back to draft and removes its requests.
// Only the requester or the creator may recall.
func (s *Service) Recall(ctx context.Context, ref domain.DocumentRef, actor string) (result *Result, err error) {
	ctx, span := s.startSpan(ctx, "Recall", ref)
	defer func() { endSpan(span, err) }()

	if actor == "" {
		return nil, domain.ErrEmptyActor
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		doc, store, err := s.getDocument(ctx, ref)
		if err != nil {
			return err
		}
		if doc.GetState() != domain.DocumentStateUnderApproval {
			return fmt.Errorf("%w: %q is %s", ErrDocumentNotUnderApproval, ref, doc.GetState())
		}
		if !strings.EqualFold(actor, doc.GetRequestedBy()) && !strings.EqualFold(actor, doc.GetCreatedBy()) {
			return fmt.Errorf("%w: %q", ErrRecallForbidden, actor)
		}

		removed, err := s.approvals.RemoveRequests(ctx, ref)
		if err != nil {
			return err
		}
		doc.SetState(domain.DocumentStateDraft)
		doc.SetRequestedBy("")
		result = &Result{Document: doc, Requests: removed}
		return store.SaveDocument(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	s.countTransition(ctx, AuditKeyRecall, result.Document.GetState())
	s.logAudit(ctx, actor, AuditKeyRecall, ref, map[string]interface{}{
		"request_ids": requestIDs(result.Requests),
		"status":      domain.RequestStatusRecall,
	})
	return result, nil
}

// ResetToDraft brings a decided document back to draft, removing its requests
func (s *Service) ResetToDraft(ctx context.Context, ref domain.DocumentRef, actor string) (result *Result, err error) {
	ctx, span := s.startSpan(ctx, "ResetToDraft", ref)
	defer func() { endSpan(span, err) }()

	if actor == "" {
		return nil, domain.ErrEmptyActor
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		doc, store, err := s.getDocument(ctx, ref)
		if err != nil {
			return err
		}
		state := doc.GetState()
		resettable := state == domain.DocumentStateRejected || state == domain.DocumentStateApproved ||
			(doc.FinalState() != "" && state == doc.FinalState())
		if !resettable {
			return fmt.Errorf("%w: %q is %s", ErrDocumentStateInvalid, ref, state)
		}

		removed, err := s.approvals.RemoveRequests(ctx, ref)
		if err != nil {
			return err
		}
		doc.SetState(domain.DocumentStateDraft)
		doc.SetRequestedBy("")
		result = &Result{Document: doc, Requests: removed}
		return store.SaveDocument(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	s.countTransition(ctx, AuditKeyResetToDraft, result.Document.GetState())
	s.logAudit(ctx, actor, AuditKeyResetToDraft, ref, map[string]interface{}{
		"request_ids": requestIDs(result.Requests),
		"status":      domain.RequestStatusRecall,
	})
	return result, nil
}

// Confirm finalizes a document. It fails with approval.ErrPendingApprovalExists while any request is not approved.
func (s *Service) Confirm(ctx context.Context, ref domain.DocumentRef, actor string) (result *Result, err error) {
	ctx, span := s.startSpan(ctx, "Confirm", ref)
	defer func() { endSpan(span, err) }()

	if actor == "" {
		return nil, domain.ErrEmptyActor
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		doc, store, err := s.getDocument(ctx, ref)
		if err != nil {
			return err
		}
		state := doc.GetState()
		if state != domain.DocumentStateUnderApproval && state != domain.DocumentStateApproved {
			return fmt.Errorf("%w: %q is %s", ErrDocumentStateInvalid, ref, state)
		}

		requests, err := s.approvals.ListByDocument(ctx, ref)
		if err != nil {
			return err
		}
		if state == domain.DocumentStateUnderApproval && len(requests) == 0 {
			return fmt.Errorf("%w: %q has no approval request", approval.ErrPendingApprovalExists, ref)
		}
		if err := s.approvals.EnsureAllApproved(ctx, ref); err != nil {
			return err
		}

		finalize(doc)
		result = &Result{Document: doc, Requests: requests}
		return store.SaveDocument(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	s.countTransition(ctx, AuditKeyConfirm, result.Document.GetState())
	s.logAudit(ctx, actor, AuditKeyConfirm, ref, map[string]interface{}{
		"state": string(result.Document.GetState()),
	})
	return result, nil
}

func (s *Service) ListRequests(ctx context.Context, ref domain.DocumentRef) ([]*domain.ApprovalRequest, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	return s.approvals.ListByDocument(ctx, ref)
}

// GetDocument loads a document through its registered store
func (s *Service) GetDocument(ctx context.Context, ref domain.DocumentRef) (domain.Document, error) {
	doc, _, err := s.getDocument(ctx, ref)
	return doc, err
}

func (s *Service) getDocument(ctx context.Context, ref domain.DocumentRef) (domain.Document, domain.DocumentStore, error) {
	if err := ref.Validate(); err != nil {
		return nil, nil, err
	}

	s.mu.RLock()
	store, ok := s.stores[ref.Model]
	s.mu.RUnlock()
	if !ok {
		store = s.defaultStore
	}
	if store == nil {
		return nil, nil, fmt.Errorf("%w: %q", ErrDocumentStoreNotFound, ref.Model)
	}

	doc, err := store.GetDocument(ctx, ref)
	if err != nil {
		return nil, nil, err
	}
	return doc, store, nil
}

func (s *Service) isBypassMember(ctx context.Context, policy *domain.Policy, actor string) (bool, error) {
	if s.groups == nil {
		return false, nil
	}
	for _, group := range policy.BypassGroups {
		members, err := s.groups.GetMembers(ctx, group)
		if err != nil {
			return false, fmt.Errorf("loading bypass group %q: %w", group, err)
		}
		if slices.ContainsFold(members, actor) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) notify(ctx context.Context, notifications []domain.Notification) {
	if len(notifications) == 0 || s.notifier == nil {
		return
	}
	if errs := s.notifier.Notify(ctx, notifications); errs != nil {
		for _, err := range errs {
			s.logger.Error(ctx, "failed to send notifications", "error", err.Error())
		}
	}
}

func (s *Service) logAudit(ctx context.Context, actor, key string, ref domain.DocumentRef, data map[string]interface{}) {
	if s.auditLogger == nil {
		return
	}
	data["document_model"] = ref.Model
	data["document_id"] = ref.ID
	data["actor"] = actor
	if err := s.auditLogger.Log(audit.WithActor(ctx, actor), key, data); err != nil {
		s.logger.Error(ctx, "failed to record audit log", "error", err, "document", ref.String(), "action", key)
	}
}

func (s *Service) countTransition(ctx context.Context, transition string, state domain.DocumentState) {
	if s.transitions == nil {
		return
	}
	s.transitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("transition", transition),
		attribute.String("state", string(state)),
	))
}

func (s *Service) startSpan(ctx context.Context, name string, ref domain.DocumentRef) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "workflow."+name, trace.WithAttributes(
		attribute.String("document_model", ref.Model),
		attribute.String("document_id", ref.ID),
	))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *Service) documentNotifications(doc domain.Document, notificationType string, extra map[string]interface{}) []domain.Notification {
	requester := doc.GetRequestedBy()
	if requester == "" {
		requester = doc.GetCreatedBy()
	}
	if requester == "" {
		return nil
	}
	variables := documentVariables(doc)
	variables["state"] = string(doc.GetState())
	for k, v := range extra {
		variables[k] = v
	}
	return []domain.Notification{{
		User:   requester,
		Labels: map[string]string{"document": doc.Ref().String()},
		Message: domain.NotificationMessage{
			Type:      notificationType,
			Variables: variables,
		},
	}}
}

func approverNotifications(doc domain.Document, requests []*domain.ApprovalRequest) []domain.Notification {
	var notifications []domain.Notification
	for _, r := range requests {
		for _, approver := range r.Approvers {
			variables := documentVariables(doc)
			variables["level_name"] = r.LevelName
			variables["request_id"] = r.ID
			notifications = append(notifications, domain.Notification{
				User:   approver,
				Labels: map[string]string{"document": doc.Ref().String(), "request_id": r.ID},
				Message: domain.NotificationMessage{
					Type:      domain.NotificationTypeApproverNotification,
					Variables: variables,
				},
			})
		}
	}
	return notifications
}

func documentVariables(doc domain.Document) map[string]interface{} {
	ref := doc.Ref()
	variables := map[string]interface{}{
		"document_model": ref.Model,
		"document_id":    ref.ID,
		"document_name":  ref.ID,
		"requested_by":   doc.GetRequestedBy(),
	}
	if fields, err := doc.ToMap(); err == nil {
		if name, ok := fields["name"].(string); ok && name != "" {
			variables["document_name"] = name
		}
	}
	return variables
}

// finalize moves the document to approved, then to its final state when it declares one
func finalize(doc domain.Document) {
	doc.SetState(domain.DocumentStateApproved)
	if final := doc.FinalState(); final != "" {
		doc.SetState(final)
	}
}

func pendingRequests(requests []*domain.ApprovalRequest) []*domain.ApprovalRequest {
	var pending []*domain.ApprovalRequest
	for _, r := range requests {
		if r.IsPending() {
			pending = append(pending, r)
		}
	}
	return pending
}

func requestIDs(requests []*domain.ApprovalRequest) []string {
	ids := make([]string, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.ID)
	}
	return ids
}

// IsConflict reports whether err is a state conflict of a document or a request
func IsConflict(err error) bool {
	return errors.Is(err, ErrDocumentStateInvalid) ||
		errors.Is(err, ErrDocumentNotUnderApproval) ||
		errors.Is(err, approval.ErrPendingApprovalExists) ||
		errors.Is(err, approval.ErrRequestAlreadyDecided) ||
		errors.Is(err, approval.ErrRequestNotActionable)
}
