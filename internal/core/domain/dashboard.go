package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dashboard is the aggregated view of one user's subscriptions.
// Per-category and per-currency totals are unconverted monthly sums;
// MonthlyTotal and YearlyTotal are converted into the requested currency.
type Dashboard struct {
	TotalsByCategory map[string]decimal.Decimal       `json:"totalsByCategory"`
	TotalsByCurrency map[CurrencyCode]decimal.Decimal `json:"totalsByCurrency"`
	MonthlyTotal     Money                            `json:"monthlyTotal"`
	YearlyTotal      Money                            `json:"yearlyTotal"`
	ActiveCount      int                              `json:"activeCount"`
	TotalCount       int                              `json:"totalCount"`
	Upcoming         []Subscription                   `json:"upcoming"`
	Urgent           []Subscription                   `json:"urgent"`
	GeneratedAt      time.Time                        `json:"generatedAt"`
}

// RolledSchedule records one subscription moved forward by the expired schedule sweep.
type RolledSchedule struct {
	SubscriptionID string    `json:"subscriptionID"`
	UserID         string    `json:"userID"`
	Name           string    `json:"name"`
	Previous       time.Time `json:"previous"`
	Next           time.Time `json:"next"`
	Steps          int       `json:"steps"`
}
