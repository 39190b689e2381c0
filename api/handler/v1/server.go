package v1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goto/salt/audit"

	"github.com/goto/signoff/core/approval"
	"github.com/goto/signoff/core/comment"
	"github.com/goto/signoff/core/currency"
	"github.com/goto/signoff/core/event"
	"github.com/goto/signoff/core/policy"
	"github.com/goto/signoff/core/resolver"
	"github.com/goto/signoff/core/workflow"
	"github.com/goto/signoff/domain"
	"github.com/goto/signoff/pkg/log"
)

const defaultAuthHeaderKey = "X-Auth-Email"

type actorContextKey struct{}

//go:generate mockery --name=workflowService --exported --with-expecter
type workflowService interface {
	RequestApproval(ctx context.Context, ref domain.DocumentRef, actor string) (*workflow.Result, error)
	UpdateApproval(context.Context, domain.ApprovalAction) (*workflow.Result, error)
	Recall(ctx context.Context, ref domain.DocumentRef, actor string) (*workflow.Result, error)
	ResetToDraft(ctx context.Context, ref domain.DocumentRef, actor string) (*workflow.Result, error)
	Confirm(ctx context.Context, ref domain.DocumentRef, actor string) (*workflow.Result, error)
	ListRequests(context.Context, domain.DocumentRef) ([]*domain.ApprovalRequest, error)
}

type approvalService interface {
	Find(context.Context, domain.ListApprovalRequestsFilter) ([]*domain.ApprovalRequest, error)
	GetByID(ctx context.Context, id string) (*domain.ApprovalRequest, error)
	AddAttachment(ctx context.Context, requestID, actor string, attachment domain.Attachment) (*domain.ApprovalRequest, error)
}

type policyService interface {
	Create(context.Context, *domain.Policy) error
	Update(context.Context, *domain.Policy) error
	GetOne(ctx context.Context, id string, version uint) (*domain.Policy, error)
	Find(context.Context, domain.ListPoliciesFilter) ([]*domain.Policy, error)
}

type commentService interface {
	Create(context.Context, *domain.Comment, ...comment.Option) error
	List(context.Context, domain.ListCommentsFilter) ([]*domain.Comment, error)
}

type eventService interface {
	ListDocumentHistory(context.Context, domain.DocumentRef) ([]*domain.Event, error)
	ListPolicyHistory(ctx context.Context, policyID string) ([]*domain.Event, error)
}

type documentRepository interface {
	Upsert(context.Context, *domain.Record) error
	GetByRef(context.Context, domain.DocumentRef) (*domain.Record, error)
	List(context.Context, domain.ListDocumentsFilter) ([]*domain.Record, error)
}

type ServerDeps struct {
	Workflow  workflowService
	Approvals approvalService
	Policies  policyService
	Comments  commentService
	Events    eventService
	Documents documentRepository
	Logger    log.Logger
	// AuthHeaderKey carries the email of the calling user
	AuthHeaderKey string
	// TraceIDHeaderKey is copied into the logger context of each request
	TraceIDHeaderKey string
}

type Server struct {
	workflow  workflowService
	approvals approvalService
	policies  policyService
	comments  commentService
	events    eventService
	documents documentRepository
	logger    log.Logger
	validator *validator.Validate

	authHeaderKey    string
	traceIDHeaderKey string
}

func NewServer(deps ServerDeps) *Server {
	authHeaderKey := deps.AuthHeaderKey
	if authHeaderKey == "" {
		authHeaderKey = defaultAuthHeaderKey
	}
	return &Server{
		workflow:  deps.Workflow,
		approvals: deps.Approvals,
		policies:  deps.Policies,
		comments:  deps.Comments,
		events:    deps.Events,
		documents: deps.Documents,
		logger:    deps.Logger,
		validator: validator.New(),

		authHeaderKey:    authHeaderKey,
		traceIDHeaderKey: deps.TraceIDHeaderKey,
	}
}

// Routes mounts the v1 API on r
func (s *Server) Routes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Use(s.withActor)

		r.Route("/documents", func(r chi.Router) {
			r.Get("/", s.ListDocuments)
			r.Post("/", s.UpsertDocument)
			r.Route("/{model}/{id}", func(r chi.Router) {
				r.Get("/", s.GetDocument)
				r.Post("/request-approval", s.RequestApproval)
				r.Post("/recall", s.Recall)
				r.Post("/reset", s.ResetToDraft)
				r.Post("/confirm", s.Confirm)
				r.Get("/approval-requests", s.ListDocumentRequests)
				r.Get("/comments", s.ListComments)
				r.Post("/comments", s.CreateComment)
				r.Get("/history", s.ListHistory)
			})
		})

		r.Route("/approval-requests", func(r chi.Router) {
			r.Get("/", s.ListApprovalRequests)
			r.Get("/{id}", s.GetApprovalRequest)
			r.Post("/{id}/approve", s.Approve)
			r.Post("/{id}/reject", s.Reject)
			r.Post("/{id}/attachments", s.AddAttachment)
		})

		r.Route("/policies", func(r chi.Router) {
			r.Get("/", s.ListPolicies)
			r.Post("/", s.CreatePolicy)
			r.Get("/{id}", s.GetPolicy)
			r.Put("/{id}", s.UpdatePolicy)
			r.Get("/{id}/history", s.ListPolicyHistory)
		})
	})
}

// withActor reads the calling user from the auth header into the request context
func (s *Server) withActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if actor := strings.TrimSpace(r.Header.Get(s.authHeaderKey)); actor != "" {
			ctx = context.WithValue(ctx, actorContextKey{}, actor)
			ctx = context.WithValue(ctx, log.ActorKey, actor)
			ctx = audit.WithActor(ctx, actor)
		}
		if s.traceIDHeaderKey != "" {
			if traceID := r.Header.Get(s.traceIDHeaderKey); traceID != "" {
				ctx = context.WithValue(ctx, log.RequestIDKey, traceID)
			}
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) getUser(ctx context.Context) (string, error) {
	actor, ok := ctx.Value(actorContextKey{}).(string)
	if !ok || actor == "" {
		return "", errors.New("user email not found")
	}
	return actor, nil
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Code: status, Message: msg})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %s", err))
		return false
	}
	return true
}

func (s *Server) unauthenticated(w http.ResponseWriter, err error) {
	writeError(w, http.StatusUnauthorized, err.Error())
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	s.logger.Error(r.Context(), msg)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// writeServiceError maps the error taxonomy of the core services to status codes
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var validationErrs validator.ValidationErrors
	switch {
	case
		errors.Is(err, domain.ErrEmptyActor),
		errors.Is(err, domain.ErrInvalidApprovalAction),
		errors.Is(err, domain.ErrRejectReasonRequired),
		errors.Is(err, domain.ErrDocumentRefInvalid),
		errors.Is(err, domain.ErrDuplicateLevelSequence),
		errors.Is(err, domain.ErrDuplicateLevelName),
		errors.Is(err, policy.ErrInvalidPolicy),
		errors.Is(err, policy.ErrEmptyIDParam),
		errors.Is(err, approval.ErrRequestIDEmptyParam),
		errors.Is(err, comment.ErrEmptyCommentCreator),
		errors.Is(err, comment.ErrEmptyCommentBody),
		errors.Is(err, event.ErrEmptyPolicyID),
		errors.As(err, &validationErrs):
		writeError(w, http.StatusBadRequest, err.Error())
	case
		errors.Is(err, approval.ErrActionForbidden),
		errors.Is(err, workflow.ErrRecallForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case
		errors.Is(err, workflow.ErrDocumentNotFound),
		errors.Is(err, workflow.ErrDocumentStoreNotFound),
		errors.Is(err, approval.ErrRequestNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, policy.ErrPolicyAlreadyExists):
		writeError(w, http.StatusConflict, err.Error())
	case workflow.IsConflict(err):
		writeError(w, http.StatusConflict, err.Error())
	case
		errors.Is(err, policy.ErrPolicyNotFound),
		errors.Is(err, approval.ErrApproversNotFound),
		errors.Is(err, approval.ErrPolicyInactive),
		errors.Is(err, resolver.ErrUnitApproverNotFound),
		errors.Is(err, resolver.ErrGroupNotFound),
		errors.Is(err, resolver.ErrFailedToGetApprovers),
		errors.Is(err, currency.ErrRateNotFound),
		errors.Is(err, domain.ErrReminderConfigInvalid),
		errors.Is(err, workflow.ErrDocumentNotEligible):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.internalError(w, r, "failed to %s: %v", op, err)
	}
}
