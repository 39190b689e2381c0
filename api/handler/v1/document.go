package v1

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/goto/signoff/core/workflow"
	"github.com/goto/signoff/domain"
)

type transitionResponse struct {
	Document     domain.Document           `json:"document"`
	Requests     []*domain.ApprovalRequest `json:"approval_requests"`
	AutoApproved bool                      `json:"auto_approved"`
}

type documentDetailResponse struct {
	Document *domain.Record           `json:"document"`
	Requests []*domain.ApprovalRequest `json:"approval_requests"`
	Comments []*domain.Comment         `json:"comments"`
	History  []*domain.Event           `json:"history"`
}

func documentRef(r *http.Request) domain.DocumentRef {
	return domain.DocumentRef{
		Model: chi.URLParam(r, "model"),
		ID:    chi.URLParam(r, "id"),
	}
}

func toTransitionResponse(res *workflow.Result) transitionResponse {
	requests := res.Requests
	if requests == nil {
		requests = []*domain.ApprovalRequest{}
	}
	return transitionResponse{
		Document:     res.Document,
		Requests:     requests,
		AutoApproved: res.AutoApproved,
	}
}

func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ListDocumentsFilter{
		Model:   q.Get("model"),
		States:  parseCommaSeparatedValues(q["states"]),
		OrderBy: parseCommaSeparatedValues(q["order_by"]),
	}
	filter.Size, _ = strconv.Atoi(q.Get("size"))
	filter.Offset, _ = strconv.Atoi(q.Get("offset"))

	records, err := s.documents.List(r.Context(), filter)
	if err != nil {
		s.writeServiceError(w, r, "list documents", err)
		return
	}
	if records == nil {
		records = []*domain.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

// UpsertDocument stores a generic record, new records start as draft
func (s *Server) UpsertDocument(w http.ResponseWriter, r *http.Request) {
	actor, err := s.getUser(r.Context())
	if err != nil {
		s.unauthenticated(w, err)
		return
	}

	var record domain.Record
	if !s.decode(w, r, &record) {
		return
	}
	if err := s.validator.Struct(record); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	existing, err := s.documents.GetByRef(r.Context(), record.Ref())
	switch {
	case err == nil:
		// the workflow owns the state fields of stored documents
		record.State = existing.State
		record.RequestedBy = existing.RequestedBy
		record.CreatedBy = existing.CreatedBy
		record.CreatedAt = existing.CreatedAt
	case errors.Is(err, workflow.ErrDocumentNotFound):
		record.State = domain.DocumentStateDraft
		record.RequestedBy = ""
		if record.CreatedBy == "" {
			record.CreatedBy = actor
		}
	default:
		s.writeServiceError(w, r, "get document", err)
		return
	}

	if err := s.documents.Upsert(r.Context(), &record); err != nil {
		s.writeServiceError(w, r, "store document", err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// GetDocument returns the document together with its requests, comments and history
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	ref := documentRef(r)

	var res documentDetailResponse
	eg, ctx := errgroup.WithContext(r.Context())
	eg.Go(func() error {
		record, err := s.documents.GetByRef(ctx, ref)
		res.Document = record
		return err
	})
	eg.Go(func() error {
		requests, err := s.workflow.ListRequests(ctx, ref)
		res.Requests = requests
		return err
	})
	eg.Go(func() error {
		comments, err := s.comments.List(ctx, domain.ListCommentsFilter{
			DocumentModel: ref.Model,
			DocumentID:    ref.ID,
		})
		res.Comments = comments
		return err
	})
	eg.Go(func() error {
		history, err := s.events.ListDocumentHistory(ctx, ref)
		res.History = history
		return err
	})
	if err := eg.Wait(); err != nil {
		s.writeServiceError(w, r, "get document", err)
		return
	}

	if res.Requests == nil {
		res.Requests = []*domain.ApprovalRequest{}
	}
	if res.Comments == nil {
		res.Comments = []*domain.Comment{}
	}
	if res.History == nil {
		res.History = []*domain.Event{}
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) RequestApproval(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, "request approval", s.workflow.RequestApproval)
}

func (s *Server) Recall(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, "recall approval", s.workflow.Recall)
}

func (s *Server) ResetToDraft(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, "reset document to draft", s.workflow.ResetToDraft)
}

func (s *Server) Confirm(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, "confirm document", s.workflow.Confirm)
}

func (s *Server) transition(w http.ResponseWriter, r *http.Request, op string, fn func(context.Context, domain.DocumentRef, string) (*workflow.Result, error)) {
	actor, err := s.getUser(r.Context())
	if err != nil {
		s.unauthenticated(w, err)
		return
	}

	res, err := fn(r.Context(), documentRef(r), actor)
	if err != nil {
		s.writeServiceError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransitionResponse(res))
}

func (s *Server) ListDocumentRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := s.workflow.ListRequests(r.Context(), documentRef(r))
	if err != nil {
		s.writeServiceError(w, r, "list approval requests", err)
		return
	}
	if requests == nil {
		requests = []*domain.ApprovalRequest{}
	}
	writeJSON(w, http.StatusOK, requests)
}

func (s *Server) ListHistory(w http.ResponseWriter, r *http.Request) {
	events, err := s.events.ListDocumentHistory(r.Context(), documentRef(r))
	if err != nil {
		s.writeServiceError(w, r, "list document history", err)
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}
