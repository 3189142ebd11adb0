package repositories

import (
	"context"

	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateCache keeps at most one snapshot per base currency.
type RateCache interface {
	// Get returns the snapshot only while it is younger than the cache TTL.
	// Expired snapshots are kept for GetStale.
	Get(base domain.CurrencyCode) (domain.RateSnapshot, bool)

	// Put stores or replaces the snapshot for snapshot.Base (last write wins).
	Put(snapshot domain.RateSnapshot)

	// GetStale returns the last stored snapshot regardless of age.
	GetStale(base domain.CurrencyCode) (domain.RateSnapshot, bool)
}

// RateProvider is an external source of exchange rates.
type RateProvider interface {
	// Name identifies the provider in logs and metrics.
	Name() string

	// Latest fetches all rates for base.
	Latest(ctx context.Context, base domain.CurrencyCode) (domain.RateSnapshot, error)

	// Convert asks the provider to convert an amount directly.
	Convert(ctx context.Context, amount decimal.Decimal, from, to domain.CurrencyCode) (decimal.Decimal, error)
}
