package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/goto/signoff/core/resolver"
	"github.com/goto/signoff/domain"
	"github.com/goto/signoff/internal/store/postgres/model"
)

type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db}
}

func (r *GroupRepository) Upsert(ctx context.Context, g *domain.Group) error {
	m := new(model.Group)
	m.FromDomain(g)
	return conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"members", "updated_at"}),
	}).Create(m).Error
}

func (r *GroupRepository) GetMembers(ctx context.Context, name string) ([]string, error) {
	m := new(model.Group)
	if err := conn(ctx, r.db).First(m, "LOWER(name) = LOWER(?)", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %q", resolver.ErrGroupNotFound, name)
		}
		return nil, err
	}
	return m.ToDomain().Members, nil
}

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db}
}

func (r *RoleRepository) Upsert(ctx context.Context, a *domain.RoleAssignment) error {
	m := new(model.RoleAssignment)
	m.FromDomain(a)
	return conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "role"}, {Name: "unit"}},
		DoUpdates: clause.AssignmentColumns([]string{"users", "updated_at"}),
	}).Create(m).Error
}

// GetAssignees returns the users holding role in unit, an empty unit is the global table
func (r *RoleRepository) GetAssignees(ctx context.Context, role, unit string) ([]string, error) {
	var models []*model.RoleAssignment
	if err := conn(ctx, r.db).
		Where("LOWER(role) = LOWER(?) AND LOWER(unit) = LOWER(?)", role, unit).
		Find(&models).Error; err != nil {
		return nil, err
	}

	var users []string
	for _, m := range models {
		users = append(users, m.Users...)
	}
	return users, nil
}
