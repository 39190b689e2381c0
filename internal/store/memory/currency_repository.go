package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goto/signoff/core/currency"
	"github.com/goto/signoff/domain"
)

type CurrencyRepository struct {
	store *Store
}

func NewCurrencyRepository(s *Store) *CurrencyRepository {
	return &CurrencyRepository{s}
}

func (r *CurrencyRepository) Upsert(_ context.Context, rate *domain.CurrencyRate) error {
	row, err := clone(rate)
	if err != nil {
		return err
	}
	row.Currency = strings.ToUpper(row.Currency)
	return r.store.write(func(s *state) error {
		s.Rates[fmt.Sprintf("%s:%s", row.Currency, row.EffectiveDate.UTC().Format(time.RFC3339))] = row
		return nil
	})
}

// GetRate returns the most recent rate effective at or before at
func (r *CurrencyRepository) GetRate(_ context.Context, cur string, at time.Time) (*domain.CurrencyRate, error) {
	var found *domain.CurrencyRate
	err := r.store.read(func(s *state) error {
		for _, rate := range s.Rates {
			if !strings.EqualFold(rate.Currency, cur) || rate.EffectiveDate.After(at) {
				continue
			}
			if found == nil || rate.EffectiveDate.After(found.EffectiveDate) {
				found = rate
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %s", currency.ErrRateNotFound, cur)
	}
	return clone(found)
}
