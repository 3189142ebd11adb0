package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/subscription_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/subscription_tracker/internal/core/ports/services"
	"github.com/SscSPs/subscription_tracker/internal/platform/metrics"
	"github.com/SscSPs/subscription_tracker/internal/utils"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// staticFallbackRates is the last-resort table used when the provider is
// unreachable and nothing was ever cached for the base.
var staticFallbackRates = map[domain.CurrencyCode]map[domain.CurrencyCode]decimal.Decimal{
	domain.USD: {
		domain.THB: decimal.RequireFromString("36.5"),
		domain.EUR: decimal.RequireFromString("0.85"),
		domain.GBP: decimal.RequireFromString("0.73"),
		domain.JPY: decimal.RequireFromString("110"),
		domain.AUD: decimal.RequireFromString("1.35"),
		domain.CAD: decimal.RequireFromString("1.25"),
	},
	domain.EUR: {
		domain.USD: decimal.RequireFromString("1.18"),
		domain.THB: decimal.RequireFromString("43"),
		domain.GBP: decimal.RequireFromString("0.86"),
		domain.JPY: decimal.RequireFromString("130"),
	},
}

// rateStrategy is one step of the fallback chain.
type rateStrategy struct {
	source domain.RateSource
	lookup func(ctx context.Context, base domain.CurrencyCode) domain.RateLookup
}

type currencyConverterService struct {
	BaseService
	cache           portsrepo.RateCache
	provider        portsrepo.RateProvider
	defaultCurrency domain.CurrencyCode
	metrics         *metrics.Registry
	fetches         singleflight.Group
	strategies      []rateStrategy
}

// ConverterOption configures the currency converter.
type ConverterOption func(*currencyConverterService)

// WithDefaultCurrency sets the target of ConvertToDefault.
func WithDefaultCurrency(code domain.CurrencyCode) ConverterOption {
	return func(s *currencyConverterService) {
		if code.IsSupported() {
			s.defaultCurrency = code
		}
	}
}

// WithConverterMetrics records which strategy served each request.
func WithConverterMetrics(m *metrics.Registry) ConverterOption {
	return func(s *currencyConverterService) { s.metrics = m }
}

// NewCurrencyConverterService creates the converter. The cache is shared state
// and must be the single instance created at startup.
func NewCurrencyConverterService(cache portsrepo.RateCache, provider portsrepo.RateProvider, opts ...ConverterOption) portssvc.CurrencyConverterSvc {
	s := &currencyConverterService{
		cache:           cache,
		provider:        provider,
		defaultCurrency: domain.DefaultCurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.strategies = []rateStrategy{
		{source: domain.RateSourceCache, lookup: s.fromCache},
		{source: domain.RateSourceLive, lookup: s.fromProvider},
		{source: domain.RateSourceStale, lookup: s.fromStaleCache},
		{source: domain.RateSourceFallback, lookup: s.fromStaticTable},
		{source: domain.RateSourceNone, lookup: s.emptyRates},
	}
	return s
}

func (s *currencyConverterService) DefaultCurrency() domain.CurrencyCode {
	return s.defaultCurrency
}

func resolved(snap domain.RateSnapshot) domain.RateLookup {
	return domain.RateLookup{Strategy: snap.Source, Outcome: domain.LookupResolved, Snapshot: snap}
}

func exhausted(source domain.RateSource, detail string) domain.RateLookup {
	return domain.RateLookup{Strategy: source, Outcome: domain.LookupExhausted, Detail: detail}
}

func (s *currencyConverterService) fromCache(_ context.Context, base domain.CurrencyCode) domain.RateLookup {
	if snap, ok := s.cache.Get(base); ok {
		return resolved(snap.WithSource(domain.RateSourceCache))
	}
	return exhausted(domain.RateSourceCache, "no fresh entry")
}

func (s *currencyConverterService) fromProvider(ctx context.Context, base domain.CurrencyCode) domain.RateLookup {
	v, err, _ := s.fetches.Do(base.String(), func() (interface{}, error) {
		// shared by every collapsed caller; the provider timeout still bounds it
		snap, err := s.provider.Latest(context.WithoutCancel(ctx), base)
		if err != nil {
			return nil, err
		}
		if snap.IsEmpty() {
			return nil, errors.New("provider returned no rates")
		}
		snap = snap.WithSource(domain.RateSourceLive)
		s.cache.Put(snap)
		return snap, nil
	})
	if err != nil {
		s.LogWarn(ctx, err, "Live rate fetch failed, falling back",
			slog.String("base", base.String()),
			slog.String("strategy", string(domain.RateSourceLive)),
			slog.String("provider", s.provider.Name()))
		return exhausted(domain.RateSourceLive, err.Error())
	}
	return resolved(v.(domain.RateSnapshot))
}

func (s *currencyConverterService) fromStaleCache(_ context.Context, base domain.CurrencyCode) domain.RateLookup {
	if snap, ok := s.cache.GetStale(base); ok {
		return resolved(snap.WithSource(domain.RateSourceStale))
	}
	return exhausted(domain.RateSourceStale, "nothing cached")
}

func (s *currencyConverterService) fromStaticTable(_ context.Context, base domain.CurrencyCode) domain.RateLookup {
	rates, ok := staticFallbackRates[base]
	if !ok {
		return exhausted(domain.RateSourceFallback, "no static rates for base")
	}
	return resolved(domain.NewRateSnapshot(base, rates, time.Time{}, domain.RateSourceFallback))
}

func (s *currencyConverterService) emptyRates(_ context.Context, base domain.CurrencyCode) domain.RateLookup {
	return resolved(domain.NewRateSnapshot(base, nil, time.Time{}, domain.RateSourceNone))
}

func (s *currencyConverterService) resolve(ctx context.Context, base domain.CurrencyCode) domain.RateExplanation {
	trace := make([]domain.RateLookup, 0, len(s.strategies))
	for _, strategy := range s.strategies {
		lookup := strategy.lookup(ctx, base)
		trace = append(trace, lookup)
		if lookup.Resolved() {
			s.metrics.RecordRateResolution(string(lookup.Snapshot.Source))
			if lookup.Snapshot.Source != domain.RateSourceLive && lookup.Snapshot.Source != domain.RateSourceCache {
				s.LogWarn(ctx, nil, "Serving degraded exchange rates",
					slog.String("base", base.String()),
					slog.String("strategy", string(lookup.Snapshot.Source)))
			}
			return domain.RateExplanation{Snapshot: lookup.Snapshot, Trace: trace}
		}
	}
	// unreachable: the last strategy always resolves
	return domain.RateExplanation{Snapshot: domain.NewRateSnapshot(base, nil, time.Time{}, domain.RateSourceNone), Trace: trace}
}

func (s *currencyConverterService) GetRates(ctx context.Context, base domain.CurrencyCode) domain.RateSnapshot {
	return s.resolve(ctx, base).Snapshot
}

func (s *currencyConverterService) Explain(ctx context.Context, base domain.CurrencyCode) domain.RateExplanation {
	return s.resolve(ctx, base)
}

func (s *currencyConverterService) Convert(ctx context.Context, amount decimal.Decimal, from, to domain.CurrencyCode) decimal.Decimal {
	if from == to {
		return amount
	}

	converted, err := s.provider.Convert(ctx, amount, from, to)
	if err == nil {
		return converted
	}
	s.LogWarn(ctx, err, "Direct conversion failed, using rate snapshot",
		slog.String("from", from.String()),
		slog.String("to", to.String()))

	snap := s.GetRates(ctx, from)
	if rate, ok := snap.Rate(to); ok {
		return amount.Mul(rate)
	}

	s.LogWarn(ctx, nil, "No exchange rate available, returning amount unconverted",
		slog.String("from", from.String()),
		slog.String("to", to.String()),
		slog.String("source", string(snap.Source)))
	return amount
}

func (s *currencyConverterService) ConvertToDefault(ctx context.Context, amount decimal.Decimal, from domain.CurrencyCode) decimal.Decimal {
	return s.Convert(ctx, amount, from, s.defaultCurrency)
}

func (s *currencyConverterService) FormatDisplay(amount decimal.Decimal, currency domain.CurrencyCode) string {
	return utils.FormatCurrencyDisplay(amount, currency)
}
