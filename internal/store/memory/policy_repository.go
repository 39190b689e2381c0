package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goto/signoff/core/policy"
	"github.com/goto/signoff/domain"
	"github.com/goto/signoff/pkg/slices"
)

type PolicyRepository struct {
	store *Store
}

func NewPolicyRepository(s *Store) *PolicyRepository {
	return &PolicyRepository{s}
}

func policyKey(id string, version uint) string {
	return fmt.Sprintf("%s:%d", id, version)
}

func (r *PolicyRepository) Create(_ context.Context, p *domain.Policy) error {
	row, err := clone(p)
	if err != nil {
		return err
	}
	return r.store.write(func(s *state) error {
		key := policyKey(p.ID, p.Version)
		if _, exists := s.Policies[key]; exists {
			return fmt.Errorf("%w: %q", policy.ErrPolicyAlreadyExists, key)
		}
		s.Policies[key] = row
		return nil
	})
}

func (r *PolicyRepository) Find(_ context.Context, filter domain.ListPoliciesFilter) ([]*domain.Policy, error) {
	var records []*domain.Policy
	err := r.store.read(func(s *state) error {
		for _, p := range s.Policies {
			if len(filter.Models) > 0 && !slices.ContainsFold(filter.Models, p.Model) {
				continue
			}
			if len(filter.IDs) > 0 && !matchesPolicyID(filter.IDs, p) {
				continue
			}
			records = append(records, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].ID != records[j].ID {
			return records[i].ID < records[j].ID
		}
		return records[i].Version < records[j].Version
	})
	return cloneAll(paginate(records, filter.Size, filter.Offset))
}

func (r *PolicyRepository) GetOne(_ context.Context, id string, version uint) (*domain.Policy, error) {
	var found *domain.Policy
	err := r.store.read(func(s *state) error {
		if version > 0 {
			found = s.Policies[policyKey(id, version)]
			return nil
		}
		for _, p := range s.Policies {
			if p.ID == id && (found == nil || p.Version > found.Version) {
				found = p
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, policy.ErrPolicyNotFound
	}
	return clone(found)
}

// matchesPolicyID accepts "id" or "id:version" entries
func matchesPolicyID(ids []string, p *domain.Policy) bool {
	for _, id := range ids {
		parts := strings.SplitN(id, ":", 2)
		if parts[0] != p.ID {
			continue
		}
		if len(parts) == 1 {
			return true
		}
		if v, err := strconv.ParseUint(parts[1], 10, 32); err == nil && uint(v) == p.Version {
			return true
		}
	}
	return false
}
