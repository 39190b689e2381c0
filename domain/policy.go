package domain

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mcuadros/go-lookup"

	"github.com/goto/signoff/pkg/evaluator"
)

const (
	// ThresholdFieldAmount makes a threshold compare against Document.ApprovalAmount
	ThresholdFieldAmount = "amount"
)

var validate = validator.New()

type ApproverStrategy string

const (
	ApproverStrategyUser     ApproverStrategy = "user"
	ApproverStrategyGroup    ApproverStrategy = "group"
	ApproverStrategyRole     ApproverStrategy = "role"
	ApproverStrategyComputed ApproverStrategy = "computed"
)

type ApprovalMode string

const (
	// ApprovalModeAny needs a single approval from any of the level approvers
	ApprovalModeAny ApprovalMode = "any"
	// ApprovalModeAll needs every approver of the level to approve
	ApprovalModeAll ApprovalMode = "all"
)

// Threshold skips a level when the document value is below Min
type Threshold struct {
	// Field is a path into Document.ToMap(). Defaults to the approval amount.
	Field string `json:"field,omitempty" yaml:"field,omitempty"`
	Min   float64 `json:"min" yaml:"min" validate:"gte=0"`
	// Currency the amount is converted to before comparing. Falls back to the policy currency.
	Currency string `json:"currency,omitempty" yaml:"currency,omitempty"`
}

// IsMet reports whether d reaches the threshold at the given point in time
func (t *Threshold) IsMet(ctx context.Context, d Document, at time.Time) (bool, error) {
	if t.Field == "" || t.Field == ThresholdFieldAmount {
		amount, err := d.ApprovalAmount(ctx, t.Currency, at)
		if err != nil {
			return false, fmt.Errorf("computing approval amount: %w", err)
		}
		return amount >= t.Min, nil
	}

	docMap, err := d.ToMap()
	if err != nil {
		return false, fmt.Errorf("parsing document to map: %w", err)
	}
	value, err := lookup.LookupString(docMap, t.Field)
	if err != nil {
		return false, fmt.Errorf("looking up threshold field %q: %w", t.Field, err)
	}
	number, err := toFloat(value.Interface())
	if err != nil {
		return false, fmt.Errorf("threshold field %q: %w", t.Field, err)
	}
	return number >= t.Min, nil
}

// Level is one tier of an approval chain
type Level struct {
	// Sequence orders levels inside a policy, lower goes first
	Sequence int    `json:"sequence" yaml:"sequence" validate:"gte=0"`
	Name     string `json:"name" yaml:"name" validate:"required"`

	// Strategy tells which field holds the approver source
	Strategy ApproverStrategy `json:"strategy" yaml:"strategy" validate:"required,oneof=user group role computed"`

	// User is an explicit approver, added on top of any strategy
	User string `json:"user,omitempty" yaml:"user,omitempty" validate:"required_if=Strategy user"`

	// Group members are added on top of any strategy
	Group string `json:"group,omitempty" yaml:"group,omitempty" validate:"required_if=Strategy group"`

	// Role is resolved against the role assignment table, or against the document unit when unit roles apply
	Role string `json:"role,omitempty" yaml:"role,omitempty" validate:"required_if=Strategy role"`

	// Approvers holds expressions evaluated with $document, each returning a user or a list of users.
	// Only used by the computed strategy.
	Approvers []string `json:"approvers,omitempty" yaml:"approvers,omitempty" validate:"required_if=Strategy computed,omitempty,min=1"`

	Mode ApprovalMode `json:"mode,omitempty" yaml:"mode,omitempty" validate:"omitempty,oneof=any all"`

	Threshold *Threshold `json:"threshold,omitempty" yaml:"threshold,omitempty" validate:"omitempty"`

	// When is an expression evaluated with $document. A falsy result skips the level.
	When string `json:"when,omitempty" yaml:"when,omitempty"`
}

// IsRequired reports whether the level applies to d
func (l *Level) IsRequired(ctx context.Context, d Document, at time.Time) (bool, error) {
	if l.When != "" {
		docMap, err := d.ToMap()
		if err != nil {
			return false, fmt.Errorf("parsing document to map: %w", err)
		}
		ok, err := evaluator.Expression(l.When).IsTruthy(map[string]interface{}{"document": docMap})
		if err != nil {
			return false, fmt.Errorf("evaluating when of level %q: %w", l.Name, err)
		}
		if !ok {
			return false, nil
		}
	}

	if l.Threshold == nil {
		return true, nil
	}
	return l.Threshold.IsMet(ctx, d, at)
}

func (l *Level) IsAllMode() bool {
	return l.Mode == ApprovalModeAll
}

// ReminderConfig drives reminders for pending requests created from the policy
type ReminderConfig struct {
	// Template is the notification message key used for reminders
	Template string `json:"template" yaml:"template" validate:"required"`
	// Period is a duration string such as "24h"
	Period string `json:"period" yaml:"period" validate:"required"`
}

func (r *ReminderConfig) PeriodDuration() (time.Duration, error) {
	d, err := time.ParseDuration(r.Period)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid period %q: %v", ErrReminderConfigInvalid, r.Period, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: period %q must be positive", ErrReminderConfigInvalid, r.Period)
	}
	return d, nil
}

// Policy is the approval configuration for one document model
type Policy struct {
	ID          string `json:"id" yaml:"id" validate:"required"`
	Version     uint   `json:"version" yaml:"version"`
	Model       string `json:"model" yaml:"model" validate:"required"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Priority picks a policy when several are active for the same model, lower wins
	Priority int    `json:"priority" yaml:"priority"`
	Currency string `json:"currency,omitempty" yaml:"currency,omitempty"`

	Levels []*Level `json:"levels" yaml:"levels" validate:"omitempty,dive"`

	// BypassGroups members skip approval entirely
	BypassGroups []string `json:"bypass_groups,omitempty" yaml:"bypass_groups,omitempty"`

	Reminder *ReminderConfig `json:"reminder,omitempty" yaml:"reminder,omitempty" validate:"omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// IsActive is true when the policy declares at least one level
func (p *Policy) IsActive() bool {
	return len(p.Levels) > 0
}

// SetDefaults fills optional level values from the policy
func (p *Policy) SetDefaults() {
	for _, l := range p.Levels {
		if l.Mode == "" {
			l.Mode = ApprovalModeAny
		}
		if l.Threshold != nil && l.Threshold.Currency == "" {
			l.Threshold.Currency = p.Currency
		}
	}
}

func (p *Policy) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	seen := map[int]string{}
	names := map[string]bool{}
	for _, l := range p.Levels {
		if other, ok := seen[l.Sequence]; ok {
			return fmt.Errorf("%w: levels %q and %q share sequence %d", ErrDuplicateLevelSequence, other, l.Name, l.Sequence)
		}
		seen[l.Sequence] = l.Name
		if names[l.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateLevelName, l.Name)
		}
		names[l.Name] = true
	}

	if p.Reminder != nil {
		if _, err := p.Reminder.PeriodDuration(); err != nil {
			return err
		}
	}
	return nil
}

// SortedLevels returns the levels ordered by ascending sequence without touching p
func (p *Policy) SortedLevels() []*Level {
	levels := make([]*Level, len(p.Levels))
	copy(levels, p.Levels)
	sort.SliceStable(levels, func(i, j int) bool {
		return levels[i].Sequence < levels[j].Sequence
	})
	return levels
}

// RequiredLevels filters the sorted levels down to the ones applying to d
func (p *Policy) RequiredLevels(ctx context.Context, d Document, at time.Time) ([]*Level, error) {
	var required []*Level
	for _, l := range p.SortedLevels() {
		ok, err := l.IsRequired(ctx, d, at)
		if err != nil {
			return nil, err
		}
		if ok {
			required = append(required, l)
		}
	}
	return required, nil
}

func (p *Policy) GetLevelByName(name string) *Level {
	for _, l := range p.Levels {
		if l.Name == name {
			return l
		}
	}
	return nil
}

type ListPoliciesFilter struct {
	// IDs accepts "id" or "id:version"
	IDs     []string `mapstructure:"ids" validate:"omitempty,min=1"`
	Models  []string `mapstructure:"models" validate:"omitempty,min=1"`
	OrderBy []string `mapstructure:"order_by" validate:"omitempty,min=1"`
	Size    int      `mapstructure:"size" validate:"omitempty"`
	Offset  int      `mapstructure:"offset" validate:"omitempty"`
}

func toFloat(v interface{}) (float64, error) {
	value := reflect.ValueOf(v)
	switch value.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(value.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(value.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return value.Float(), nil
	case reflect.String:
		return strconv.ParseFloat(strings.TrimSpace(value.String()), 64)
	default:
		return 0, fmt.Errorf("value %v is not a number", v)
	}
}
