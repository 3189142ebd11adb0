package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSource tells where a snapshot came from.
type RateSource string

const (
	RateSourceLive     RateSource = "live"
	RateSourceCache    RateSource = "cache"
	RateSourceStale    RateSource = "stale"
	RateSourceFallback RateSource = "fallback"
	RateSourceNone     RateSource = "none"
)

// RateSnapshot is one point-in-time set of multipliers for a base currency.
// Snapshots are never mutated after construction; use Rate to read.
type RateSnapshot struct {
	Base      CurrencyCode                     `json:"base"`
	Rates     map[CurrencyCode]decimal.Decimal `json:"rates"`
	FetchedAt time.Time                        `json:"fetchedAt"`
	Source    RateSource                       `json:"source"`
}

// NewRateSnapshot copies rates so the caller cannot mutate the snapshot later.
func NewRateSnapshot(base CurrencyCode, rates map[CurrencyCode]decimal.Decimal, fetchedAt time.Time, source RateSource) RateSnapshot {
	cp := make(map[CurrencyCode]decimal.Decimal, len(rates))
	for k, v := range rates {
		cp[k] = v
	}
	return RateSnapshot{Base: base, Rates: cp, FetchedAt: fetchedAt, Source: source}
}

// Rate returns the multiplier for target. The base always converts 1:1.
func (s RateSnapshot) Rate(target CurrencyCode) (decimal.Decimal, bool) {
	if target == s.Base {
		return decimal.NewFromInt(1), true
	}
	r, ok := s.Rates[target]
	return r, ok
}

// IsEmpty reports whether the snapshot has no rates at all.
func (s RateSnapshot) IsEmpty() bool {
	return len(s.Rates) == 0
}

// WithSource returns a copy tagged with a different source.
func (s RateSnapshot) WithSource(source RateSource) RateSnapshot {
	return NewRateSnapshot(s.Base, s.Rates, s.FetchedAt, source)
}

// LookupOutcome tags the result of one rate resolution strategy.
type LookupOutcome string

const (
	// LookupResolved means the strategy produced a usable snapshot.
	LookupResolved LookupOutcome = "resolved"
	// LookupExhausted means the strategy had nothing and the next one should run.
	LookupExhausted LookupOutcome = "exhausted"
)

// RateLookup is the tagged result of a single strategy in the rate fallback chain.
type RateLookup struct {
	Strategy RateSource    `json:"strategy"`
	Outcome  LookupOutcome `json:"outcome"`
	Snapshot RateSnapshot  `json:"-"`
	Detail   string        `json:"detail,omitempty"`
}

// Resolved reports whether the lookup produced a snapshot.
func (l RateLookup) Resolved() bool {
	return l.Outcome == LookupResolved
}

// RateExplanation is the snapshot GetRates would return plus every strategy tried.
type RateExplanation struct {
	Snapshot RateSnapshot `json:"snapshot"`
	Trace    []RateLookup `json:"trace"`
}
