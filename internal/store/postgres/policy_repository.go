package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/goto/signoff/core/policy"
	"github.com/goto/signoff/domain"
	"github.com/goto/signoff/internal/store/postgres/model"
	"github.com/goto/signoff/utils"
)

// PolicyRepository stores one row per policy version
type PolicyRepository struct {
	db *gorm.DB
}

func NewPolicyRepository(db *gorm.DB) *PolicyRepository {
	return &PolicyRepository{db}
}

// Create inserts p as a new row keyed by id and version
func (r *PolicyRepository) Create(ctx context.Context, p *domain.Policy) error {
	m := new(model.Policy)
	if err := m.FromDomain(p); err != nil {
		return fmt.Errorf("serializing policy: %w", err)
	}

	if err := conn(ctx, r.db).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %q version %d", policy.ErrPolicyAlreadyExists, p.ID, p.Version)
		}
		return err
	}

	newPolicy, err := m.ToDomain()
	if err != nil {
		return fmt.Errorf("deserializing policy: %w", err)
	}
	*p = *newPolicy
	return nil
}

// Find returns every stored version matching the filter
func (r *PolicyRepository) Find(ctx context.Context, filter domain.ListPoliciesFilter) ([]*domain.Policy, error) {
	if err := utils.ValidateStruct(filter); err != nil {
		return nil, err
	}

	db := applyPoliciesFilter(conn(ctx, r.db), filter)
	db = db.Order("id").Order("version")
	if filter.Size > 0 {
		db = db.Limit(filter.Size)
	}
	if filter.Offset > 0 {
		db = db.Offset(filter.Offset)
	}

	var models []*model.Policy
	if err := db.Find(&models).Error; err != nil {
		return nil, err
	}

	records := []*domain.Policy{}
	for _, m := range models {
		p, err := m.ToDomain()
		if err != nil {
			return nil, err
		}
		records = append(records, p)
	}
	return records, nil
}

// GetOne returns a policy record by id and version. The latest version is returned when version is 0
func (r *PolicyRepository) GetOne(ctx context.Context, id string, version uint) (*domain.Policy, error) {
	if id == "" {
		return nil, policy.ErrEmptyIDParam
	}

	m := new(model.Policy)
	condition := "id = ?"
	args := []interface{}{id}
	if version != 0 {
		condition = "id = ? AND version = ?"
		args = append(args, version)
	}

	conds := append([]interface{}{condition}, args...)
	if err := conn(ctx, r.db).Order("version desc").First(m, conds...).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, policy.ErrPolicyNotFound
		}
		return nil, err
	}

	return m.ToDomain()
}

func applyPoliciesFilter(db *gorm.DB, filter domain.ListPoliciesFilter) *gorm.DB {
	if len(filter.Models) > 0 {
		db = db.Where(`"model" IN ?`, filter.Models)
	}
	if len(filter.IDs) > 0 {
		var clauses []string
		var vars []interface{}
		for _, id := range filter.IDs {
			parts := strings.SplitN(id, ":", 2)
			if len(parts) == 2 {
				if v, err := strconv.ParseUint(parts[1], 10, 32); err == nil {
					clauses = append(clauses, `("id" = ? AND "version" = ?)`)
					vars = append(vars, parts[0], uint(v))
					continue
				}
			}
			clauses = append(clauses, `"id" = ?`)
			vars = append(vars, parts[0])
		}
		db = db.Where(strings.Join(clauses, " OR "), vars...)
	}
	return db
}
