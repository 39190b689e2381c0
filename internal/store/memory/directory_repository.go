package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/goto/signoff/core/resolver"
	"github.com/goto/signoff/domain"
)

type GroupRepository struct {
	store *Store
}

func NewGroupRepository(s *Store) *GroupRepository {
	return &GroupRepository{s}
}

func (r *GroupRepository) Upsert(_ context.Context, g *domain.Group) error {
	row, err := clone(g)
	if err != nil {
		return err
	}
	return r.store.write(func(s *state) error {
		s.Groups[strings.ToLower(g.Name)] = row
		return nil
	})
}

func (r *GroupRepository) GetMembers(_ context.Context, name string) ([]string, error) {
	var members []string
	err := r.store.read(func(s *state) error {
		g, ok := s.Groups[strings.ToLower(name)]
		if !ok {
			return fmt.Errorf("%w: %q", resolver.ErrGroupNotFound, name)
		}
		members = append(members, g.Members...)
		return nil
	})
	return members, err
}

type RoleRepository struct {
	store *Store
}

func NewRoleRepository(s *Store) *RoleRepository {
	return &RoleRepository{s}
}

func roleKey(role, unit string) string {
	return strings.ToLower(role) + "/" + strings.ToLower(unit)
}

func (r *RoleRepository) Upsert(_ context.Context, a *domain.RoleAssignment) error {
	row, err := clone(a)
	if err != nil {
		return err
	}
	return r.store.write(func(s *state) error {
		s.Roles[roleKey(a.Role, a.Unit)] = row
		return nil
	})
}

// GetAssignees returns the users holding role in unit, an empty unit is the global table
func (r *RoleRepository) GetAssignees(_ context.Context, role, unit string) ([]string, error) {
	var users []string
	err := r.store.read(func(s *state) error {
		if a, ok := s.Roles[roleKey(role, unit)]; ok {
			users = append(users, a.Users...)
		}
		return nil
	})
	return users, err
}
