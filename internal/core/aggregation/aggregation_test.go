package aggregation_test

import (
	"testing"
	"time"

	"github.com/SscSPs/subscription_tracker/internal/core/aggregation"
	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func sub(id string, price int64, currency domain.CurrencyCode, interval int, next time.Time) domain.Subscription {
	return domain.Subscription{
		SubscriptionID: id,
		Name:           id,
		Price:          domain.NewMoney(decimal.NewFromInt(price), currency),
		Cadence:        domain.Cadence{DayOfMonth: next.Day(), IntervalMonths: interval},
		NextOccurrence: next,
	}
}

func ids(subs []domain.Subscription) []string {
	out := make([]string, len(subs))
	for i, s := range subs {
		out[i] = s.SubscriptionID
	}
	return out
}

func TestFilter(t *testing.T) {
	catA := "cat-a"
	a := sub("a", 10, domain.USD, 1, now)
	a.CategoryID = &catA
	a.PaidBy = "alice"
	b := sub("b", 10, domain.THB, 1, now)
	b.PaidBy = "bob"
	c := sub("c", 10, domain.USD, 1, now)
	c.CategoryID = &catA
	c.Disabled = true
	subs := []domain.Subscription{a, b, c}

	usd := domain.USD
	tests := []struct {
		name   string
		filter domain.SubscriptionFilter
		want   []string
	}{
		{"empty filter keeps all", domain.SubscriptionFilter{}, []string{"a", "b", "c"}},
		{"category", domain.SubscriptionFilter{CategoryID: &catA}, []string{"a", "c"}},
		{"disabled false", domain.SubscriptionFilter{Disabled: boolPtr(false)}, []string{"a", "b"}},
		{"currency", domain.SubscriptionFilter{Currency: &usd}, []string{"a", "c"}},
		{"paid by", domain.SubscriptionFilter{PaidBy: strPtr("bob")}, []string{"b"}},
		{"conjunction", domain.SubscriptionFilter{CategoryID: &catA, Disabled: boolPtr(false), Currency: &usd}, []string{"a"}},
		{"no match", domain.SubscriptionFilter{PaidBy: strPtr("carol")}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(aggregation.Filter(subs, tt.filter)))
		})
	}
}

func TestSort_Stable(t *testing.T) {
	subs := []domain.Subscription{
		sub("first", 5, domain.USD, 1, now),
		sub("second", 1, domain.USD, 1, now),
		sub("third", 5, domain.USD, 1, now),
		sub("fourth", 1, domain.USD, 1, now),
	}

	asc := aggregation.Sort(subs, domain.SortSpec{Field: domain.SortByPrice, Direction: domain.SortAsc})
	assert.Equal(t, []string{"second", "fourth", "first", "third"}, ids(asc))

	desc := aggregation.Sort(subs, domain.SortSpec{Field: domain.SortByPrice, Direction: domain.SortDesc})
	assert.Equal(t, []string{"first", "third", "second", "fourth"}, ids(desc))

	// input untouched
	assert.Equal(t, []string{"first", "second", "third", "fourth"}, ids(subs))
}

func TestSort_Fields(t *testing.T) {
	x := sub("Xylophone", 3, domain.USD, 1, now.AddDate(0, 0, 3))
	x.CreatedAt = now.Add(-1 * time.Hour)
	y := sub("apple", 2, domain.USD, 1, now.AddDate(0, 0, 1))
	y.CreatedAt = now.Add(-3 * time.Hour)
	z := sub("Mango", 1, domain.USD, 1, now.AddDate(0, 0, 2))
	z.CreatedAt = now.Add(-2 * time.Hour)
	subs := []domain.Subscription{x, y, z}

	assert.Equal(t, []string{"apple", "Mango", "Xylophone"},
		ids(aggregation.Sort(subs, domain.SortSpec{Field: domain.SortByName, Direction: domain.SortAsc})))
	assert.Equal(t, []string{"apple", "Mango", "Xylophone"},
		ids(aggregation.Sort(subs, domain.SortSpec{Field: domain.SortByNextOccurrence, Direction: domain.SortAsc})))
	assert.Equal(t, []string{"Xylophone", "Mango", "apple"},
		ids(aggregation.Sort(subs, domain.SortSpec{Field: domain.SortByCreatedAt, Direction: domain.SortDesc})))
	assert.Equal(t, []string{"Mango", "apple", "Xylophone"},
		ids(aggregation.Sort(subs, domain.SortSpec{Field: domain.SortByPrice, Direction: domain.SortAsc})))
}

func TestUpcomingAndUrgent(t *testing.T) {
	later := sub("later", 1, domain.USD, 1, now.AddDate(0, 0, 20))
	soon := sub("soon", 1, domain.USD, 1, now.AddDate(0, 0, 2))
	nextWeek := sub("nextWeek", 1, domain.USD, 1, now.AddDate(0, 0, 9))
	overdue := sub("overdue", 1, domain.USD, 1, now.AddDate(0, 0, -1))
	off := sub("off", 1, domain.USD, 1, now.AddDate(0, 0, 1))
	off.Disabled = true
	beyond := sub("beyond", 1, domain.USD, 1, now.AddDate(0, 0, 40))

	subs := []domain.Subscription{later, soon, nextWeek, overdue, off, beyond}

	upcoming := aggregation.Upcoming(subs, now, 30)
	assert.Equal(t, []string{"overdue", "soon", "nextWeek", "later"}, ids(upcoming))

	urgent := aggregation.Urgent(upcoming, now, aggregation.DefaultUrgentDays)
	assert.Equal(t, []string{"overdue", "soon"}, ids(urgent))

	assert.Empty(t, aggregation.Upcoming(nil, now, 7))
}

func TestUrgent_BoundaryUsesCeilingDays(t *testing.T) {
	exactlySeven := sub("seven", 1, domain.USD, 1, now.AddDate(0, 0, 7))
	justOver := sub("over", 1, domain.USD, 1, now.AddDate(0, 0, 7).Add(time.Minute))
	urgent := aggregation.Urgent([]domain.Subscription{exactlySeven, justOver}, now, 7)
	assert.Equal(t, []string{"seven"}, ids(urgent))
}

func TestTotalsByCategory(t *testing.T) {
	catA := &domain.Category{CategoryID: "a", Name: "A"}
	catB := &domain.Category{CategoryID: "b", Name: "B"}

	s1 := sub("1", 10, domain.USD, 1, now)
	s1.Category = catA
	s2 := sub("2", 240, domain.USD, 12, now) // 20 per month
	s2.Category = catA
	s3 := sub("3", 15, domain.USD, 3, now) // 5 per month
	s3.Category = catB
	s4 := sub("4", 7, domain.USD, 1, now)
	disabled := sub("5", 1000, domain.USD, 1, now)
	disabled.Category = catA
	disabled.Disabled = true

	totals := aggregation.TotalsByCategory([]domain.Subscription{s1, s2, s3, s4, disabled})
	require.Len(t, totals, 3)
	assert.True(t, totals["A"].Equal(decimal.NewFromInt(30)), "A = %s", totals["A"])
	assert.True(t, totals["B"].Equal(decimal.NewFromInt(5)), "B = %s", totals["B"])
	assert.True(t, totals[domain.UncategorizedLabel].Equal(decimal.NewFromInt(7)))
}

func TestTotalsByCurrency(t *testing.T) {
	subs := []domain.Subscription{
		sub("1", 12, domain.USD, 12, now),
		sub("2", 9, domain.USD, 1, now),
		sub("3", 300, domain.THB, 3, now),
	}
	off := sub("4", 50, domain.EUR, 1, now)
	off.Disabled = true
	subs = append(subs, off)

	totals := aggregation.TotalsByCurrency(subs)
	require.Len(t, totals, 2)
	assert.True(t, totals[domain.USD].Equal(decimal.NewFromInt(10)))
	assert.True(t, totals[domain.THB].Equal(decimal.NewFromInt(100)))
	_, hasEUR := totals[domain.EUR]
	assert.False(t, hasEUR)
}

func TestNormalize(t *testing.T) {
	s := sub("n", 90, domain.GBP, 3, now)
	s.Category = &domain.Category{Name: "Work"}
	out := aggregation.Normalize([]domain.Subscription{s})
	require.Len(t, out, 1)
	assert.Equal(t, "n", out[0].SourceID)
	assert.Equal(t, domain.GBP, out[0].MonthlyAmount.Currency)
	assert.True(t, out[0].MonthlyAmount.Amount.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, "Work", out[0].Category.Name)
}

func TestCountActive(t *testing.T) {
	off := sub("off", 1, domain.USD, 1, now)
	off.Disabled = true
	assert.Equal(t, 1, aggregation.CountActive([]domain.Subscription{sub("on", 1, domain.USD, 1, now), off}))
}
