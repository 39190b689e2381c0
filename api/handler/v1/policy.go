package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/goto/signoff/core/policy"
	"github.com/goto/signoff/domain"
)

func (s *Server) ListPolicies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ListPoliciesFilter{
		IDs:     parseCommaSeparatedValues(q["ids"]),
		Models:  parseCommaSeparatedValues(q["models"]),
		OrderBy: parseCommaSeparatedValues(q["order_by"]),
	}
	filter.Size, _ = strconv.Atoi(q.Get("size"))
	filter.Offset, _ = strconv.Atoi(q.Get("offset"))

	policies, err := s.policies.Find(r.Context(), filter)
	if err != nil {
		s.writeServiceError(w, r, "list policies", err)
		return
	}
	if policies == nil {
		policies = []*domain.Policy{}
	}
	writeJSON(w, http.StatusOK, policies)
}

// GetPolicy returns the latest version unless the version query parameter is set
func (s *Server) GetPolicy(w http.ResponseWriter, r *http.Request) {
	var version uint
	if v := r.URL.Query().Get("version"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid policy version")
			return
		}
		version = uint(parsed)
	}

	p, err := s.policies.GetOne(r.Context(), chi.URLParam(r, "id"), version)
	if err != nil {
		if errors.Is(err, policy.ErrPolicyNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.writeServiceError(w, r, "get policy", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) CreatePolicy(w http.ResponseWriter, r *http.Request) {
	var p domain.Policy
	if !s.decode(w, r, &p) {
		return
	}

	if err := s.policies.Create(r.Context(), &p); err != nil {
		s.writeServiceError(w, r, "create policy", err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// UpdatePolicy stores the body as the next version of the policy
func (s *Server) UpdatePolicy(w http.ResponseWriter, r *http.Request) {
	var p domain.Policy
	if !s.decode(w, r, &p) {
		return
	}
	p.ID = chi.URLParam(r, "id")

	if err := s.policies.Update(r.Context(), &p); err != nil {
		if errors.Is(err, policy.ErrPolicyNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.writeServiceError(w, r, "update policy", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) ListPolicyHistory(w http.ResponseWriter, r *http.Request) {
	events, err := s.events.ListPolicyHistory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, r, "list policy history", err)
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}
