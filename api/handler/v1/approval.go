package v1

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/goto/signoff/domain"
)

type decisionRequest struct {
	Reason      string              `json:"reason"`
	Attachments []domain.Attachment `json:"attachments"`
}

// ListApprovalRequests lists requests where the caller is an approver unless another approver is asked for
func (s *Server) ListApprovalRequests(w http.ResponseWriter, r *http.Request) {
	actor, err := s.getUser(r.Context())
	if err != nil {
		s.unauthenticated(w, err)
		return
	}

	q := r.URL.Query()
	filter := domain.ListApprovalRequestsFilter{
		DocumentModel: q.Get("document_model"),
		DocumentID:    q.Get("document_id"),
		Statuses:      parseCommaSeparatedValues(q["statuses"]),
		Approver:      q.Get("approver"),
		PolicyIDs:     parseCommaSeparatedValues(q["policy_ids"]),
	}
	if filter.Approver == "" {
		filter.Approver = actor
	}
	filter.Size, _ = strconv.Atoi(q.Get("size"))
	filter.Offset, _ = strconv.Atoi(q.Get("offset"))

	requests, err := s.approvals.Find(r.Context(), filter)
	if err != nil {
		s.writeServiceError(w, r, "list approval requests", err)
		return
	}
	if requests == nil {
		requests = []*domain.ApprovalRequest{}
	}
	writeJSON(w, http.StatusOK, requests)
}

func (s *Server) GetApprovalRequest(w http.ResponseWriter, r *http.Request) {
	request, err := s.approvals.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, r, "get approval request", err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}

func (s *Server) Approve(w http.ResponseWriter, r *http.Request) {
	s.decide(w, r, domain.ApprovalActionApprove)
}

func (s *Server) Reject(w http.ResponseWriter, r *http.Request) {
	s.decide(w, r, domain.ApprovalActionReject)
}

func (s *Server) decide(w http.ResponseWriter, r *http.Request, action domain.ApprovalActionType) {
	actor, err := s.getUser(r.Context())
	if err != nil {
		s.unauthenticated(w, err)
		return
	}

	var req decisionRequest
	if r.ContentLength != 0 && !s.decode(w, r, &req) {
		return
	}

	res, err := s.workflow.UpdateApproval(r.Context(), domain.ApprovalAction{
		RequestID:   chi.URLParam(r, "id"),
		Actor:       actor,
		Action:      action,
		Reason:      req.Reason,
		Attachments: req.Attachments,
	})
	if err != nil {
		s.writeServiceError(w, r, "update approval", err)
		return
	}
	writeJSON(w, http.StatusOK, toTransitionResponse(res))
}

func (s *Server) AddAttachment(w http.ResponseWriter, r *http.Request) {
	actor, err := s.getUser(r.Context())
	if err != nil {
		s.unauthenticated(w, err)
		return
	}

	var attachment domain.Attachment
	if !s.decode(w, r, &attachment) {
		return
	}
	if err := s.validator.Struct(attachment); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	request, err := s.approvals.AddAttachment(r.Context(), chi.URLParam(r, "id"), actor, attachment)
	if err != nil {
		s.writeServiceError(w, r, "add attachment", err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}
