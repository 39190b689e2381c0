package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goto/salt/audit"
	"github.com/stretchr/testify/suite"

	v1 "github.com/goto/signoff/api/handler/v1"
	"github.com/goto/signoff/core/approval"
	"github.com/goto/signoff/core/comment"
	"github.com/goto/signoff/core/event"
	"github.com/goto/signoff/core/policy"
	"github.com/goto/signoff/core/resolver"
	"github.com/goto/signoff/core/workflow"
	"github.com/goto/signoff/domain"
	"github.com/goto/signoff/internal/store/memory"
	"github.com/goto/signoff/pkg/log"
	"github.com/goto/signoff/plugins/notifiers"
)

const model = "purchase.order"

type transitionResponse struct {
	Document     domain.Record             `json:"document"`
	Requests     []*domain.ApprovalRequest `json:"approval_requests"`
	AutoApproved bool                      `json:"auto_approved"`
}

type ServerTestSuite struct {
	suite.Suite
	handler http.Handler
}

func TestServer(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupTest() {
	ctx := context.Background()
	logger := log.NewNoop()

	store := memory.NewStore()
	groups := memory.NewGroupRepository(store)
	roles := memory.NewRoleRepository(store)
	documents := memory.NewDocumentRepository(store)
	auditLogs := memory.NewAuditLogRepository(store)
	auditLogger := audit.New(audit.WithRepository(auditLogs))

	notifier, err := notifiers.NewClient(&notifiers.Config{Provider: notifiers.ProviderTypeLog}, logger)
	s.Require().NoError(err)

	resolverService := resolver.NewService(resolver.ServiceDeps{Groups: groups, Roles: roles, Logger: logger})
	approvalService := approval.NewService(approval.ServiceDeps{
		Repository: memory.NewApprovalRequestRepository(store),
		Resolver:   resolverService,
		Groups:     groups,
		AdminGroup: "admins",
		Logger:     logger,
	})
	policyService := policy.NewService(policy.ServiceDeps{
		Repository:  memory.NewPolicyRepository(store),
		Logger:      logger,
		AuditLogger: auditLogger,
	})
	commentService := comment.NewService(comment.ServiceDeps{
		Repository:  memory.NewCommentRepository(store),
		Requests:    approvalService,
		Notifier:    notifier,
		Logger:      logger,
		AuditLogger: auditLogger,
	})
	workflowService := workflow.NewService(workflow.ServiceDeps{
		Transactor:  store,
		Policies:    policyService,
		Approvals:   approvalService,
		Groups:      groups,
		Comments:    commentService,
		Documents:   documents,
		Notifier:    notifier,
		Logger:      logger,
		AuditLogger: auditLogger,
	})

	server := v1.NewServer(v1.ServerDeps{
		Workflow:  workflowService,
		Approvals: approvalService,
		Policies:  policyService,
		Comments:  commentService,
		Events:    event.NewService(auditLogs, logger),
		Documents: documents,
		Logger:    logger,
	})
	r := chi.NewRouter()
	server.Routes(r)
	s.handler = r

	s.Require().NoError(groups.Upsert(ctx, &domain.Group{Name: "finance", Members: []string{"fin1@example.com", "fin2@example.com"}}))
	s.Require().NoError(groups.Upsert(ctx, &domain.Group{Name: "admins", Members: []string{"admin@example.com"}}))
}

func (s *ServerTestSuite) do(method, path, actor string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if actor != "" {
		req.Header.Set("X-Auth-Email", actor)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *ServerTestSuite) decode(rec *httptest.ResponseRecorder, v interface{}) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func (s *ServerTestSuite) createPolicy() {
	rec := s.do(http.MethodPost, "/v1/policies", "admin@example.com", domain.Policy{
		ID:    "po-approval",
		Model: model,
		Levels: []*domain.Level{
			{Sequence: 1, Name: "finance", Strategy: domain.ApproverStrategyGroup, Group: "finance"},
		},
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
}

func (s *ServerTestSuite) createDocument(id string) {
	rec := s.do(http.MethodPost, "/v1/documents", "creator@example.com", domain.Record{
		Model:          model,
		ID:             id,
		Name:           "PO " + id,
		Amount:         100,
		Currency:       "USD",
		FinalizedState: "purchase",
	})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
}

func (s *ServerTestSuite) requestApproval(id string) transitionResponse {
	rec := s.do(http.MethodPost, "/v1/documents/"+model+"/"+id+"/request-approval", "creator@example.com", nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var res transitionResponse
	s.decode(rec, &res)
	return res
}

func (s *ServerTestSuite) TestApprovalFlow() {
	s.Run("should move a document through approval", func() {
		s.SetupTest()
		s.createPolicy()
		s.createDocument("PO-1")

		res := s.requestApproval("PO-1")
		s.Equal(domain.DocumentStateUnderApproval, res.Document.State)
		s.Require().Len(res.Requests, 1)
		s.Equal(domain.RequestStatusPending, res.Requests[0].Status)
		requestID := res.Requests[0].ID

		rec := s.do(http.MethodPost, "/v1/approval-requests/"+requestID+"/approve", "outsider@example.com", nil)
		s.Equal(http.StatusForbidden, rec.Code)

		rec = s.do(http.MethodPost, "/v1/approval-requests/"+requestID+"/approve", "fin1@example.com", nil)
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		var approved transitionResponse
		s.decode(rec, &approved)
		s.Equal(domain.DocumentState("purchase"), approved.Document.State)

		rec = s.do(http.MethodPost, "/v1/approval-requests/"+requestID+"/approve", "fin2@example.com", nil)
		s.Equal(http.StatusConflict, rec.Code)

		rec = s.do(http.MethodGet, "/v1/documents/"+model+"/PO-1/approval-requests", "", nil)
		s.Require().Equal(http.StatusOK, rec.Code)
		var requests []*domain.ApprovalRequest
		s.decode(rec, &requests)
		s.Require().Len(requests, 1)
		s.Equal(domain.RequestStatusApproved, requests[0].Status)
		s.Equal("fin1@example.com", requests[0].ApprovedBy)
	})

	s.Run("should require a reason to reject and keep the reason as comment", func() {
		s.SetupTest()
		s.createPolicy()
		s.createDocument("PO-2")
		requestID := s.requestApproval("PO-2").Requests[0].ID

		rec := s.do(http.MethodPost, "/v1/approval-requests/"+requestID+"/reject", "fin1@example.com", nil)
		s.Equal(http.StatusBadRequest, rec.Code)

		rec = s.do(http.MethodPost, "/v1/approval-requests/"+requestID+"/reject", "fin1@example.com", map[string]string{"reason": "over budget"})
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		var rejected transitionResponse
		s.decode(rec, &rejected)
		s.Equal(domain.DocumentStateRejected, rejected.Document.State)

		rec = s.do(http.MethodGet, "/v1/documents/"+model+"/PO-2", "", nil)
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		var detail struct {
			Document *domain.Record    `json:"document"`
			Comments []*domain.Comment `json:"comments"`
			History  []*domain.Event   `json:"history"`
		}
		s.decode(rec, &detail)
		s.Equal(domain.DocumentStateRejected, detail.Document.State)
		s.Require().Len(detail.Comments, 1)
		s.Contains(detail.Comments[0].Body, "over budget")
		s.NotEmpty(detail.History)
	})

	s.Run("should recall only for the requester", func() {
		s.SetupTest()
		s.createPolicy()
		s.createDocument("PO-3")
		s.requestApproval("PO-3")

		rec := s.do(http.MethodPost, "/v1/documents/"+model+"/PO-3/recall", "fin1@example.com", nil)
		s.Equal(http.StatusForbidden, rec.Code)

		rec = s.do(http.MethodPost, "/v1/documents/"+model+"/PO-3/recall", "creator@example.com", nil)
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		var recalled transitionResponse
		s.decode(rec, &recalled)
		s.Equal(domain.DocumentStateDraft, recalled.Document.State)
	})
}

func (s *ServerTestSuite) TestErrors() {
	s.Run("should reject calls without user", func() {
		s.SetupTest()
		rec := s.do(http.MethodPost, "/v1/documents/"+model+"/PO-1/request-approval", "", nil)
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("should report a missing policy as configuration error", func() {
		s.SetupTest()
		s.createDocument("PO-1")
		rec := s.do(http.MethodPost, "/v1/documents/"+model+"/PO-1/request-approval", "creator@example.com", nil)
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})

	s.Run("should return not found for unknown resources", func() {
		s.SetupTest()
		s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/v1/policies/unknown", "", nil).Code)
		s.Equal(http.StatusNotFound, s.do(http.MethodPost, "/v1/documents/"+model+"/missing/confirm", "creator@example.com", nil).Code)
	})

	s.Run("should reject an invalid policy", func() {
		s.SetupTest()
		rec := s.do(http.MethodPost, "/v1/policies", "admin@example.com", domain.Policy{ID: "no-model"})
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("should list the history of a policy", func() {
		s.SetupTest()
		s.createPolicy()
		rec := s.do(http.MethodGet, "/v1/policies/po-approval/history", "", nil)
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		var events []*domain.Event
		s.decode(rec, &events)
		s.Require().Len(events, 1)
		s.Equal("policy.create", events[0].Type)
		s.Equal("po-approval", events[0].ParentID)
	})

	s.Run("should not request approval twice", func() {
		s.SetupTest()
		s.createPolicy()
		s.createDocument("PO-1")
		s.requestApproval("PO-1")
		rec := s.do(http.MethodPost, "/v1/documents/"+model+"/PO-1/request-approval", "creator@example.com", nil)
		s.Equal(http.StatusConflict, rec.Code)
	})
}
