package dto

import (
	"time"

	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DashboardResponse is the aggregated overview of a user's subscriptions.
type DashboardResponse struct {
	Currency         string                     `json:"currency"`
	MonthlyTotal     decimal.Decimal            `json:"monthlyTotal"`
	MonthlyDisplay   string                     `json:"monthlyDisplay"`
	YearlyTotal      decimal.Decimal            `json:"yearlyTotal"`
	YearlyDisplay    string                     `json:"yearlyDisplay"`
	TotalsByCategory map[string]decimal.Decimal `json:"totalsByCategory"`
	TotalsByCurrency map[string]decimal.Decimal `json:"totalsByCurrency"`
	ActiveCount      int                        `json:"activeCount"`
	TotalCount       int                        `json:"totalCount"`
	Upcoming         []SubscriptionResponse     `json:"upcoming"`
	Urgent           []SubscriptionResponse     `json:"urgent"`
	GeneratedAt      time.Time                  `json:"generatedAt"`
}

// ToDashboardResponse converts a domain.Dashboard.
func ToDashboardResponse(d *domain.Dashboard, format Formatter) DashboardResponse {
	byCurrency := make(map[string]decimal.Decimal, len(d.TotalsByCurrency))
	for code, total := range d.TotalsByCurrency {
		byCurrency[code.String()] = total
	}
	res := DashboardResponse{
		Currency:         d.MonthlyTotal.Currency.String(),
		MonthlyTotal:     d.MonthlyTotal.Amount,
		YearlyTotal:      d.YearlyTotal.Amount,
		TotalsByCategory: d.TotalsByCategory,
		TotalsByCurrency: byCurrency,
		ActiveCount:      d.ActiveCount,
		TotalCount:       d.TotalCount,
		Upcoming:         ToSubscriptionResponses(d.Upcoming, d.GeneratedAt, format),
		Urgent:           ToSubscriptionResponses(d.Urgent, d.GeneratedAt, format),
		GeneratedAt:      d.GeneratedAt,
	}
	if format != nil {
		res.MonthlyDisplay = format(d.MonthlyTotal.Amount, d.MonthlyTotal.Currency)
		res.YearlyDisplay = format(d.YearlyTotal.Amount, d.YearlyTotal.Currency)
	}
	return res
}
