package currency_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/goto/signoff/core/currency"
	"github.com/goto/signoff/core/currency/mocks"
	"github.com/goto/signoff/domain"
	"github.com/goto/signoff/pkg/log"
)

func TestConvert(t *testing.T) {
	at := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

	t.Run("should convert through the base currency and cache rates", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		s := currency.NewService(currency.ServiceDeps{Repository: repo, BaseCurrency: "eur", Logger: log.NewNoop()})
		repo.EXPECT().GetRate(mock.Anything, "USD", at).Return(&domain.CurrencyRate{Currency: "USD", Rate: 1.1}, nil).Once()
		repo.EXPECT().GetRate(mock.Anything, "IDR", at).Return(&domain.CurrencyRate{Currency: "IDR", Rate: 17000}, nil).Once()

		eur, err := s.Convert(context.Background(), 110, "usd", "EUR", at)
		assert.NoError(t, err)
		assert.InDelta(t, 100, eur, 0.0001)

		idr, err := s.Convert(context.Background(), 110, "USD", "IDR", at)
		assert.NoError(t, err)
		assert.InDelta(t, 1700000, idr, 0.01)
	})

	t.Run("should not hide a rate taking effect later the same day", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		s := currency.NewService(currency.ServiceDeps{Repository: repo, BaseCurrency: "EUR", Logger: log.NewNoop()})
		afternoon := at.Add(5 * time.Hour)
		repo.EXPECT().GetRate(mock.Anything, "USD", at).Return(&domain.CurrencyRate{Currency: "USD", Rate: 1.1}, nil).Once()
		repo.EXPECT().GetRate(mock.Anything, "USD", afternoon).Return(&domain.CurrencyRate{Currency: "USD", Rate: 1.25, EffectiveDate: afternoon}, nil).Once()

		morning, err := s.Convert(context.Background(), 110, "USD", "EUR", at)
		assert.NoError(t, err)
		assert.InDelta(t, 100, morning, 0.0001)

		later, err := s.Convert(context.Background(), 125, "USD", "EUR", afternoon)
		assert.NoError(t, err)
		assert.InDelta(t, 100, later, 0.0001)
	})

	t.Run("should skip lookups for same currency", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		s := currency.NewService(currency.ServiceDeps{Repository: repo, BaseCurrency: "EUR", Logger: log.NewNoop()})

		amount, err := s.Convert(context.Background(), 42, "usd", "USD", at)

		assert.NoError(t, err)
		assert.Equal(t, 42.0, amount)
	})

	t.Run("should return missing rate", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		s := currency.NewService(currency.ServiceDeps{Repository: repo, BaseCurrency: "EUR", Logger: log.NewNoop()})
		repo.EXPECT().GetRate(mock.Anything, "JPY", at).Return(nil, currency.ErrRateNotFound).Once()

		_, err := s.Convert(context.Background(), 1, "JPY", "EUR", at)

		assert.ErrorIs(t, err, currency.ErrRateNotFound)
	})
}

func TestSetRate(t *testing.T) {
	repo := mocks.NewRepository(t)
	s := currency.NewService(currency.ServiceDeps{Repository: repo, BaseCurrency: "EUR", Logger: log.NewNoop()})

	assert.ErrorIs(t, s.SetRate(context.Background(), &domain.CurrencyRate{Currency: "USD"}), currency.ErrInvalidRate)

	rate := &domain.CurrencyRate{Currency: "usd", Rate: 1.1}
	repo.EXPECT().Upsert(mock.Anything, rate).Return(nil).Once()
	assert.NoError(t, s.SetRate(context.Background(), rate))
	assert.Equal(t, "USD", rate.Currency)
}
