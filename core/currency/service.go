package currency

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/goto/signoff/domain"
	"github.com/goto/signoff/pkg/log"
)

var (
	ErrRateNotFound  = errors.New("currency rate not found")
	ErrInvalidRate   = errors.New("currency rate must be greater than zero")
	ErrEmptyCurrency = errors.New("currency can't be empty")
)

//go:generate mockery --name=repository --exported --with-expecter
type repository interface {
	// GetRate returns the rate of currency effective at the given time
	GetRate(ctx context.Context, currency string, at time.Time) (*domain.CurrencyRate, error)
	Upsert(context.Context, *domain.CurrencyRate) error
}

type ServiceDeps struct {
	Repository repository
	// BaseCurrency has an implicit rate of 1
	BaseCurrency string
	Logger       log.Logger
	CacheTTL     time.Duration
}

// Service converts document amounts between currencies using dated rates
type Service struct {
	repo         repository
	baseCurrency string
	logger       log.Logger
	cache        *cache.Cache
}

func NewService(deps ServiceDeps) *Service {
	ttl := deps.CacheTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Service{
		repo:         deps.Repository,
		baseCurrency: strings.ToUpper(deps.BaseCurrency),
		logger:       deps.Logger,
		cache:        cache.New(ttl, 2*ttl),
	}
}

// Convert expresses amount of from in to, with the rates effective at the given date
func (s *Service) Convert(ctx context.Context, amount float64, from, to string, at time.Time) (float64, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == "" || to == "" {
		return 0, ErrEmptyCurrency
	}
	if from == to {
		return amount, nil
	}

	fromRate, err := s.rate(ctx, from, at)
	if err != nil {
		return 0, err
	}
	toRate, err := s.rate(ctx, to, at)
	if err != nil {
		return 0, err
	}
	return amount / fromRate * toRate, nil
}

func (s *Service) SetRate(ctx context.Context, r *domain.CurrencyRate) error {
	if r.Currency == "" {
		return ErrEmptyCurrency
	}
	if r.Rate <= 0 {
		return ErrInvalidRate
	}
	r.Currency = strings.ToUpper(r.Currency)
	if err := s.repo.Upsert(ctx, r); err != nil {
		return err
	}
	s.cache.Flush()
	return nil
}

func (s *Service) rate(ctx context.Context, currency string, at time.Time) (float64, error) {
	if currency == s.baseCurrency {
		return 1, nil
	}

	// rates can take effect mid-day, so only the exact instant is reusable
	key := fmt.Sprintf("%s:%d", currency, at.UnixNano())
	if cached, ok := s.cache.Get(key); ok {
		return cached.(float64), nil
	}

	r, err := s.repo.GetRate(ctx, currency, at)
	if err != nil {
		return 0, fmt.Errorf("rate of %s at %s: %w", currency, at.Format(time.RFC3339), err)
	}
	if r.Rate <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidRate, currency)
	}
	s.cache.Set(key, r.Rate, cache.DefaultExpiration)
	return r.Rate, nil
}
