package services

import (
	"context"

	"github.com/SscSPs/subscription_tracker/internal/core/domain"
)

// DashboardSvc builds the aggregated overview of a user's subscriptions.
type DashboardSvc interface {
	// GetDashboard aggregates every subscription of userID; converted totals are in target.
	GetDashboard(ctx context.Context, userID string, target domain.CurrencyCode) (*domain.Dashboard, error)
}
