package policy

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/patrickmn/go-cache"

	"github.com/goto/signoff/domain"
	"github.com/goto/signoff/pkg/diff"
	"github.com/goto/signoff/pkg/log"
)

const (
	AuditKeyPolicyCreate = "policy.create"
	AuditKeyPolicyUpdate = "policy.update"

	defaultCacheTTL = 5 * time.Minute
)

//go:generate mockery --name=repository --exported --with-expecter
type repository interface {
	Create(context.Context, *domain.Policy) error
	Find(context.Context, domain.ListPoliciesFilter) ([]*domain.Policy, error)
	// GetOne returns the latest version when version is 0
	GetOne(ctx context.Context, id string, version uint) (*domain.Policy, error)
}

//go:generate mockery --name=auditLogger --exported --with-expecter
type auditLogger interface {
	Log(ctx context.Context, action string, data interface{}) error
}

type ServiceDeps struct {
	Repository  repository
	Validator   *validator.Validate
	Logger      log.Logger
	AuditLogger auditLogger
	// CacheTTL bounds how long a matched policy is reused per model
	CacheTTL time.Duration
}

// Service manages approval policies and picks the one applying to a document
type Service struct {
	repo        repository
	validator   *validator.Validate
	logger      log.Logger
	auditLogger auditLogger
	cache       *cache.Cache

	TimeNow func() time.Time
}

func NewService(deps ServiceDeps) *Service {
	ttl := deps.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	v := deps.Validator
	if v == nil {
		v = validator.New()
	}
	return &Service{
		repo:        deps.Repository,
		validator:   v,
		logger:      deps.Logger,
		auditLogger: deps.AuditLogger,
		cache:       cache.New(ttl, 2*ttl),
		TimeNow:     time.Now,
	}
}

// Create stores the first version of a policy
func (s *Service) Create(ctx context.Context, p *domain.Policy) error {
	if p.ID == "" {
		return ErrEmptyIDParam
	}
	p.SetDefaults()
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidPolicy, err)
	}

	if _, err := s.repo.GetOne(ctx, p.ID, 0); err == nil {
		return fmt.Errorf("%w: %q", ErrPolicyAlreadyExists, p.ID)
	} else if !errors.Is(err, ErrPolicyNotFound) {
		return fmt.Errorf("checking existing policy: %w", err)
	}

	now := s.TimeNow()
	p.Version = 1
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}
	s.cache.Flush()

	if err := s.auditLogger.Log(ctx, AuditKeyPolicyCreate, map[string]interface{}{
		"policy_id": p.ID,
		"version":   p.Version,
		"model":     p.Model,
	}); err != nil {
		s.logger.Error(ctx, "failed to record audit log", "error", err, "policy_id", p.ID)
	}
	return nil
}

// Update stores p as a new version. Requests created from older versions keep pointing at them.
func (s *Service) Update(ctx context.Context, p *domain.Policy) error {
	if p.ID == "" {
		return ErrEmptyIDParam
	}
	latest, err := s.repo.GetOne(ctx, p.ID, 0)
	if err != nil {
		return err
	}

	p.SetDefaults()
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidPolicy, err)
	}

	now := s.TimeNow()
	p.Version = latest.Version + 1
	p.CreatedAt = latest.CreatedAt
	p.UpdatedAt = now

	changes, err := diff.Compare(latest, p)
	if err != nil {
		s.logger.Warn(ctx, "unable to compute policy changelog", "error", err, "policy_id", p.ID)
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}
	s.cache.Flush()

	if err := s.auditLogger.Log(ctx, AuditKeyPolicyUpdate, map[string]interface{}{
		"policy_id": p.ID,
		"version":   p.Version,
		"model":     p.Model,
		"changes":   changes,
	}); err != nil {
		s.logger.Error(ctx, "failed to record audit log", "error", err, "policy_id", p.ID)
	}
	return nil
}

// Apply creates the policy or updates it when it already exists
func (s *Service) Apply(ctx context.Context, p *domain.Policy) error {
	if _, err := s.repo.GetOne(ctx, p.ID, 0); err != nil {
		if errors.Is(err, ErrPolicyNotFound) {
			return s.Create(ctx, p)
		}
		return err
	}
	return s.Update(ctx, p)
}

func (s *Service) GetOne(ctx context.Context, id string, version uint) (*domain.Policy, error) {
	if id == "" {
		return nil, ErrEmptyIDParam
	}
	return s.repo.GetOne(ctx, id, version)
}

func (s *Service) Find(ctx context.Context, filter domain.ListPoliciesFilter) ([]*domain.Policy, error) {
	if err := s.validator.Struct(filter); err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	return s.repo.Find(ctx, filter)
}

// Match returns the active policy with the lowest priority for the document model.
// Ties are broken by policy id.
func (s *Service) Match(ctx context.Context, doc domain.Document) (*domain.Policy, error) {
	model := doc.Ref().Model
	if model == "" {
		return nil, ErrEmptyModel
	}
	if cached, ok := s.cache.Get(model); ok {
		p := cached.(*domain.Policy)
		fresh, err := s.isLatestVersion(ctx, p)
		if err != nil {
			return nil, err
		}
		if fresh {
			return p, nil
		}
		s.cache.Delete(model)
	}

	policies, err := s.repo.Find(ctx, domain.ListPoliciesFilter{Models: []string{model}})
	if err != nil {
		return nil, fmt.Errorf("listing policies of %q: %w", model, err)
	}

	latest := map[string]*domain.Policy{}
	for _, p := range policies {
		if current, ok := latest[p.ID]; !ok || p.Version > current.Version {
			latest[p.ID] = p
		}
	}

	candidates := make([]*domain.Policy, 0, len(latest))
	for _, p := range latest {
		if p.IsActive() {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no active policy for model %q", ErrPolicyNotFound, model)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Priority != candidates[j].Priority {
			return candidates[i].Priority < candidates[j].Priority
		}
		return candidates[i].ID < candidates[j].ID
	})

	matched := candidates[0]
	s.cache.Set(model, matched, cache.DefaultExpiration)
	return matched, nil
}

// isLatestVersion guards cached matches against versions stored by another process,
// such as the policy apply command or another replica
func (s *Service) isLatestVersion(ctx context.Context, p *domain.Policy) (bool, error) {
	latest, err := s.repo.GetOne(ctx, p.ID, 0)
	if err != nil {
		if errors.Is(err, ErrPolicyNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("checking version of policy %q: %w", p.ID, err)
	}
	return latest.Version == p.Version, nil
}
