// Package aggregation turns raw subscription collections into decision-ready
// views. Every function is pure: inputs are never mutated and no I/O happens.
// Cross-currency conversion is deliberately not done here.
package aggregation

import (
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	"github.com/SscSPs/subscription_tracker/internal/utils/billing"
	"github.com/shopspring/decimal"
)

// DefaultUrgentDays is the urgency threshold used when none is configured.
const DefaultUrgentDays = 7

// Filter keeps subscriptions matching every set field of f.
func Filter(subs []domain.Subscription, f domain.SubscriptionFilter) []domain.Subscription {
	out := make([]domain.Subscription, 0, len(subs))
	for _, s := range subs {
		if matches(s, f) {
			out = append(out, s)
		}
	}
	return out
}

func matches(s domain.Subscription, f domain.SubscriptionFilter) bool {
	if f.CategoryID != nil && (s.CategoryID == nil || *s.CategoryID != *f.CategoryID) {
		return false
	}
	if f.Disabled != nil && s.Disabled != *f.Disabled {
		return false
	}
	if f.Currency != nil && s.Price.Currency != *f.Currency {
		return false
	}
	if f.PaidBy != nil && s.PaidBy != *f.PaidBy {
		return false
	}
	return true
}

// Sort returns a stably ordered copy. Equal keys keep their input order in
// both directions, which keeps pagination deterministic.
func Sort(subs []domain.Subscription, spec domain.SortSpec) []domain.Subscription {
	out := make([]domain.Subscription, len(subs))
	copy(out, subs)

	cmp := comparator(spec.Field)
	desc := spec.Direction == domain.SortDesc
	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

func comparator(field domain.SortField) func(a, b domain.Subscription) int {
	switch field {
	case domain.SortByName:
		return func(a, b domain.Subscription) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	case domain.SortByPrice:
		return func(a, b domain.Subscription) int {
			return a.Price.Amount.Cmp(b.Price.Amount)
		}
	case domain.SortByCreatedAt:
		return func(a, b domain.Subscription) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	default:
		return func(a, b domain.Subscription) int {
			return a.NextOccurrence.Compare(b.NextOccurrence)
		}
	}
}

// Upcoming returns enabled subscriptions due on or before now+horizonDays,
// soonest first.
func Upcoming(subs []domain.Subscription, now time.Time, horizonDays int) []domain.Subscription {
	cutoff := now.AddDate(0, 0, horizonDays)
	out := make([]domain.Subscription, 0)
	for _, s := range subs {
		if !s.Disabled && !s.NextOccurrence.After(cutoff) {
			out = append(out, s)
		}
	}
	return Sort(out, domain.SortSpec{Field: domain.SortByNextOccurrence, Direction: domain.SortAsc})
}

// Urgent narrows an upcoming set to charges at most thresholdDays away
// (days counted with billing.DaysUntil). Order is preserved.
func Urgent(upcoming []domain.Subscription, now time.Time, thresholdDays int) []domain.Subscription {
	out := make([]domain.Subscription, 0)
	for _, s := range upcoming {
		if billing.DaysUntil(s.NextOccurrence, now) <= thresholdDays {
			out = append(out, s)
		}
	}
	return out
}

// Normalize builds the per-month view of every subscription, in input order.
func Normalize(subs []domain.Subscription) []domain.NormalizedSubscription {
	out := make([]domain.NormalizedSubscription, len(subs))
	for i, s := range subs {
		out[i] = domain.NormalizedSubscription{
			SourceID:      s.SubscriptionID,
			MonthlyAmount: billing.MonthlyMoney(s.Price, s.Cadence),
			Category:      s.Category,
		}
	}
	return out
}

// TotalsByCategory sums monthly equivalents of enabled subscriptions per
// category name; missing categories are grouped under domain.UncategorizedLabel.
// Amounts in different currencies are summed as-is.
func TotalsByCategory(subs []domain.Subscription) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, s := range subs {
		if s.Disabled {
			continue
		}
		name := s.CategoryName()
		totals[name] = totals[name].Add(billing.MonthlyEquivalent(s.Price.Amount, s.Cadence))
	}
	return totals
}

// TotalsByCurrency sums monthly equivalents of enabled subscriptions per
// currency code without converting anything.
func TotalsByCurrency(subs []domain.Subscription) map[domain.CurrencyCode]decimal.Decimal {
	totals := make(map[domain.CurrencyCode]decimal.Decimal)
	for _, s := range subs {
		if s.Disabled {
			continue
		}
		totals[s.Price.Currency] = totals[s.Price.Currency].Add(billing.MonthlyEquivalent(s.Price.Amount, s.Cadence))
	}
	return totals
}

// CountActive returns how many subscriptions are not disabled.
func CountActive(subs []domain.Subscription) int {
	n := 0
	for _, s := range subs {
		if !s.Disabled {
			n++
		}
	}
	return n
}
