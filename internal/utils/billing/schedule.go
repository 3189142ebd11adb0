// Package billing holds the pure date and amount arithmetic for recurring charges.
// Nothing here performs I/O or keeps state; callers own persistence of schedules.
package billing

import (
	"math"
	"time"

	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

const day = 24 * time.Hour

// MonthlyEquivalent normalizes price to a per-month amount: price / IntervalMonths.
//
// Precondition: cadence.IntervalMonths >= 1. Cadences are validated before they
// reach this function; a zero interval panics inside decimal division.
func MonthlyEquivalent(price decimal.Decimal, cadence domain.Cadence) decimal.Decimal {
	return price.Div(decimal.NewFromInt(int64(cadence.IntervalMonths)))
}

// MonthlyMoney is MonthlyEquivalent keeping the original currency.
func MonthlyMoney(price domain.Money, cadence domain.Cadence) domain.Money {
	return domain.NewMoney(MonthlyEquivalent(price.Amount, cadence), price.Currency)
}

// NextOccurrence advances currentNext by cadence.IntervalMonths calendar months
// and forces the day of month to cadence.DayOfMonth.
//
// When the target month is shorter than DayOfMonth the day is clamped to the
// last day of that month (31 in a 30-day month gives the 30th, never the 1st of
// the following month). Clock time and location are preserved.
func NextOccurrence(currentNext time.Time, cadence domain.Cadence) time.Time {
	year, month := addMonths(currentNext.Year(), currentNext.Month(), cadence.IntervalMonths)
	d := cadence.DayOfMonth
	if last := daysIn(year, month, currentNext.Location()); d > last {
		d = last
	}
	h, m, s := currentNext.Clock()
	return time.Date(year, month, d, h, m, s, currentNext.Nanosecond(), currentNext.Location())
}

// Advance applies NextOccurrence k times. k <= 0 returns currentNext.
func Advance(currentNext time.Time, cadence domain.Cadence, k int) time.Time {
	next := currentNext
	for i := 0; i < k; i++ {
		next = NextOccurrence(next, cadence)
	}
	return next
}

// RollForward advances currentNext until it is strictly after now and reports
// how many steps were taken. An invalid cadence returns currentNext unchanged.
func RollForward(currentNext time.Time, cadence domain.Cadence, now time.Time) (time.Time, int) {
	if cadence.IntervalMonths < domain.MinIntervalMonths {
		return currentNext, 0
	}
	next, steps := currentNext, 0
	for !next.After(now) {
		next = NextOccurrence(next, cadence)
		steps++
	}
	return next, steps
}

// DaysUntil is ceil((target - now) / 24h). Past targets give zero or negative values.
func DaysUntil(target, now time.Time) int {
	return int(math.Ceil(float64(target.Sub(now)) / float64(day)))
}

func addMonths(year int, month time.Month, n int) (int, time.Month) {
	total := int(month) - 1 + n
	year += total / 12
	total %= 12
	if total < 0 {
		total += 12
		year--
	}
	return year, time.Month(total + 1)
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
