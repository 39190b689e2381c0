package v1

import (
	"net/http"

	"github.com/goto/signoff/domain"
)

func (s *Server) ListComments(w http.ResponseWriter, r *http.Request) {
	ref := documentRef(r)
	comments, err := s.comments.List(r.Context(), domain.ListCommentsFilter{
		DocumentModel: ref.Model,
		DocumentID:    ref.ID,
		OrderBy:       parseCommaSeparatedValues(r.URL.Query()["order_by"]),
	})
	if err != nil {
		s.writeServiceError(w, r, "list comments", err)
		return
	}
	if comments == nil {
		comments = []*domain.Comment{}
	}
	writeJSON(w, http.StatusOK, comments)
}

func (s *Server) CreateComment(w http.ResponseWriter, r *http.Request) {
	actor, err := s.getUser(r.Context())
	if err != nil {
		s.unauthenticated(w, err)
		return
	}

	var req struct {
		Body string `json:"body"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	ref := documentRef(r)
	if _, err := s.documents.GetByRef(r.Context(), ref); err != nil {
		s.writeServiceError(w, r, "get document", err)
		return
	}

	c := &domain.Comment{
		DocumentModel: ref.Model,
		DocumentID:    ref.ID,
		Body:          req.Body,
		CreatedBy:     actor,
	}
	if err := s.comments.Create(r.Context(), c); err != nil {
		s.writeServiceError(w, r, "create comment", err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}
