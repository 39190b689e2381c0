package resolver

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/goto/signoff/domain"
	"github.com/goto/signoff/pkg/evaluator"
	"github.com/goto/signoff/pkg/log"
	"github.com/goto/signoff/pkg/slices"
)

//go:generate mockery --name=groupRepository --exported --with-expecter
type groupRepository interface {
	GetMembers(ctx context.Context, name string) ([]string, error)
}

//go:generate mockery --name=roleRepository --exported --with-expecter
type roleRepository interface {
	GetAssignees(ctx context.Context, role, unit string) ([]string, error)
}

// Resolution splits approvers by origin. Fixed holds the explicit user and group members,
// Dynamic the strategy specific users (role assignees or computed expressions).
type Resolution struct {
	Fixed   []string
	Dynamic []string
}

func (r Resolution) Union() []string {
	all := make([]string, 0, len(r.Fixed)+len(r.Dynamic))
	all = append(all, r.Fixed...)
	all = append(all, r.Dynamic...)
	return slices.UniqueFold(all)
}

// Override lets a document model replace the default approver set of a level
type Override interface {
	Resolve(ctx context.Context, level *domain.Level, doc domain.Document, base Resolution) ([]string, error)
}

type OverrideFunc func(ctx context.Context, level *domain.Level, doc domain.Document, base Resolution) ([]string, error)

func (f OverrideFunc) Resolve(ctx context.Context, level *domain.Level, doc domain.Document, base Resolution) ([]string, error) {
	return f(ctx, level, doc, base)
}

type ServiceDeps struct {
	Groups groupRepository
	Roles  roleRepository
	Logger log.Logger
}

// Service turns a policy level into the users allowed to approve it
type Service struct {
	groups groupRepository
	roles  roleRepository
	logger log.Logger

	mu        sync.RWMutex
	overrides map[string]Override
}

func NewService(deps ServiceDeps) *Service {
	return &Service{
		groups:    deps.Groups,
		roles:     deps.Roles,
		logger:    deps.Logger,
		overrides: map[string]Override{},
	}
}

// RegisterOverride installs o for every document of the given model, replacing any previous one
func (s *Service) RegisterOverride(model string, o Override) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[model] = o
}

// Resolve returns the deduplicated approvers of level for doc. An empty result is not an error here.
func (s *Service) Resolve(ctx context.Context, level *domain.Level, doc domain.Document) ([]string, error) {
	base, err := s.resolveBase(ctx, level, doc)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	override, ok := s.overrides[doc.Ref().Model]
	s.mu.RUnlock()
	if !ok {
		return base.Union(), nil
	}

	approvers, err := override.Resolve(ctx, level, doc, base)
	if err != nil {
		return nil, err
	}
	s.logger.Debug(ctx, "approvers resolved by override", "model", doc.Ref().Model, "level", level.Name, "count", len(approvers))
	return slices.UniqueFold(approvers), nil
}

func (s *Service) resolveBase(ctx context.Context, level *domain.Level, doc domain.Document) (Resolution, error) {
	var res Resolution
	if level.User != "" {
		res.Fixed = append(res.Fixed, level.User)
	}
	if level.Group != "" {
		members, err := s.groups.GetMembers(ctx, level.Group)
		if err != nil {
			if errors.Is(err, ErrGroupNotFound) {
				return res, fmt.Errorf("level %q: %w: %q", level.Name, ErrGroupNotFound, level.Group)
			}
			return res, fmt.Errorf("%w: fetching group %q: %s", ErrFailedToGetApprovers, level.Group, err)
		}
		res.Fixed = append(res.Fixed, members...)
	}

	switch level.Strategy {
	case domain.ApproverStrategyUser, domain.ApproverStrategyGroup:
	case domain.ApproverStrategyRole:
		assignees, err := s.roles.GetAssignees(ctx, level.Role, "")
		if err != nil {
			return res, fmt.Errorf("%w: fetching role %q: %s", ErrFailedToGetApprovers, level.Role, err)
		}
		res.Dynamic = assignees
	case domain.ApproverStrategyComputed:
		computed, err := evaluateApprovers(level.Approvers, doc)
		if err != nil {
			return res, fmt.Errorf("level %q: %w", level.Name, err)
		}
		res.Dynamic = computed
	default:
		return res, fmt.Errorf("%w: %q", ErrUnsupportedStrategy, level.Strategy)
	}

	res.Fixed = slices.UniqueFold(res.Fixed)
	res.Dynamic = slices.UniqueFold(res.Dynamic)
	return res, nil
}

func evaluateApprovers(expressions []string, doc domain.Document) ([]string, error) {
	docMap, err := doc.ToMap()
	if err != nil {
		return nil, fmt.Errorf("parsing document to map: %w", err)
	}
	params := map[string]interface{}{"document": docMap}

	var approvers []string
	for _, expr := range expressions {
		result, err := evaluator.Expression(expr).EvaluateWithVars(params)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrFailedToGetApprovers, err)
		}
		if result == nil {
			continue
		}

		value := reflect.ValueOf(result)
		switch value.Kind() {
		case reflect.String:
			approvers = append(approvers, value.String())
		case reflect.Slice:
			for i := 0; i < value.Len(); i++ {
				item, ok := value.Index(i).Interface().(string)
				if !ok {
					return nil, fmt.Errorf("%w: %T", ErrUnexpectedApproverType, value.Index(i).Interface())
				}
				approvers = append(approvers, item)
			}
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnexpectedApproverType, value.Kind())
		}
	}
	return approvers, nil
}

// UnitRoleOverride resolves role levels against the document unit when the document asks for it.
// A unit without assignees for the role is an error instead of a fallback to the global table.
func UnitRoleOverride(roles roleRepository) Override {
	return OverrideFunc(func(ctx context.Context, level *domain.Level, doc domain.Document, base Resolution) ([]string, error) {
		scoped, ok := doc.(domain.UnitScopedDocument)
		if !ok || !scoped.AppliesUnitRoles() || level.Strategy != domain.ApproverStrategyRole {
			return base.Union(), nil
		}

		unit := scoped.ApprovalUnit()
		assignees, err := roles.GetAssignees(ctx, level.Role, unit)
		if err != nil {
			return nil, fmt.Errorf("%w: fetching role %q of unit %q: %s", ErrFailedToGetApprovers, level.Role, unit, err)
		}
		assignees = slices.UniqueFold(assignees)
		if len(assignees) == 0 {
			return nil, fmt.Errorf("%w: role %q, unit %q", ErrUnitApproverNotFound, level.Role, unit)
		}
		return Resolution{Fixed: base.Fixed, Dynamic: assignees}.Union(), nil
	})
}
