package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/goto/signoff/core/currency"
	"github.com/goto/signoff/domain"
	"github.com/goto/signoff/internal/store/postgres/model"
)

type CurrencyRepository struct {
	db *gorm.DB
}

func NewCurrencyRepository(db *gorm.DB) *CurrencyRepository {
	return &CurrencyRepository{db}
}

func (r *CurrencyRepository) Upsert(ctx context.Context, rate *domain.CurrencyRate) error {
	m := new(model.CurrencyRate)
	m.FromDomain(rate)
	m.Currency = strings.ToUpper(m.Currency)
	return conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "currency"}, {Name: "effective_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"rate"}),
	}).Create(m).Error
}

// GetRate returns the most recent rate effective at or before at
func (r *CurrencyRepository) GetRate(ctx context.Context, cur string, at time.Time) (*domain.CurrencyRate, error) {
	m := new(model.CurrencyRate)
	err := conn(ctx, r.db).
		Where("currency = ? AND effective_date <= ?", strings.ToUpper(cur), at).
		Order("effective_date desc").
		First(m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", currency.ErrRateNotFound, cur)
		}
		return nil, err
	}
	return m.ToDomain(), nil
}
