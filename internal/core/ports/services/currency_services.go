package services

import (
	"context"

	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencyConverterSvc resolves exchange rates through an ordered fallback
// chain. None of its operations fail: degraded answers are returned instead.
type CurrencyConverterSvc interface {
	// GetRates returns the best available snapshot for base. The result may be empty.
	GetRates(ctx context.Context, base domain.CurrencyCode) domain.RateSnapshot

	// Explain returns the snapshot GetRates would produce together with every strategy tried.
	Explain(ctx context.Context, base domain.CurrencyCode) domain.RateExplanation

	// Convert expresses amount in to. Without any usable rate the amount is returned unchanged.
	Convert(ctx context.Context, amount decimal.Decimal, from, to domain.CurrencyCode) decimal.Decimal

	// ConvertToDefault converts into the configured default currency.
	ConvertToDefault(ctx context.Context, amount decimal.Decimal, from domain.CurrencyCode) decimal.Decimal

	// FormatDisplay renders amount for humans.
	FormatDisplay(amount decimal.Decimal, currency domain.CurrencyCode) string

	// DefaultCurrency returns the configured default currency.
	DefaultCurrency() domain.CurrencyCode
}
