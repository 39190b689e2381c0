package domain

import "time"

// CurrencyRate is the value of one unit of the base currency in Currency, effective from EffectiveDate
type CurrencyRate struct {
	Currency      string    `json:"currency" yaml:"currency" validate:"required"`
	Rate          float64   `json:"rate" yaml:"rate" validate:"gt=0"`
	EffectiveDate time.Time `json:"effective_date" yaml:"effective_date"`
}
