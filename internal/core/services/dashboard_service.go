package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/subscription_tracker/internal/core/aggregation"
	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/subscription_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/subscription_tracker/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// monthsPerYear scales monthly totals to yearly ones.
var monthsPerYear = decimal.NewFromInt(12)

type dashboardService struct {
	BaseService
	subscriptionRepo portsrepo.SubscriptionReader
	converter        portssvc.CurrencyConverterSvc
	upcomingDays     int
	urgentDays       int
	now              func() time.Time
}

// DashboardOption configures the dashboard service.
type DashboardOption func(*dashboardService)

// WithDashboardWindows sets the upcoming horizon and urgency threshold in days.
func WithDashboardWindows(upcomingDays, urgentDays int) DashboardOption {
	return func(s *dashboardService) {
		if upcomingDays >= 0 {
			s.upcomingDays = upcomingDays
		}
		if urgentDays >= 0 {
			s.urgentDays = urgentDays
		}
	}
}

// WithDashboardClock replaces the wall clock.
func WithDashboardClock(now func() time.Time) DashboardOption {
	return func(s *dashboardService) { s.now = now }
}

// NewDashboardService creates a dashboard service.
func NewDashboardService(subscriptionRepo portsrepo.SubscriptionReader, converter portssvc.CurrencyConverterSvc, opts ...DashboardOption) portssvc.DashboardSvc {
	s := &dashboardService{
		subscriptionRepo: subscriptionRepo,
		converter:        converter,
		upcomingDays:     aggregation.DefaultUrgentDays,
		urgentDays:       aggregation.DefaultUrgentDays,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.DashboardSvc = (*dashboardService)(nil)

func (s *dashboardService) GetDashboard(ctx context.Context, userID string, target domain.CurrencyCode) (*domain.Dashboard, error) {
	subs, err := s.subscriptionRepo.ListSubscriptionsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load subscriptions for dashboard")
		return nil, fmt.Errorf("failed to load subscriptions: %w", err)
	}
	if target == "" {
		target = s.converter.DefaultCurrency()
	}

	now := s.now()
	byCurrency := aggregation.TotalsByCurrency(subs)

	// Conversion happens once per currency bucket, not once per subscription.
	monthly := decimal.Zero
	for code, total := range byCurrency {
		monthly = monthly.Add(s.converter.Convert(ctx, total, code, target))
	}
	monthly = monthly.Round(2)

	upcoming := aggregation.Upcoming(subs, now, s.upcomingDays)
	urgent := aggregation.Urgent(aggregation.Upcoming(subs, now, s.urgentDays), now, s.urgentDays)

	return &domain.Dashboard{
		TotalsByCategory: aggregation.TotalsByCategory(subs),
		TotalsByCurrency: byCurrency,
		MonthlyTotal:     domain.NewMoney(monthly, target),
		YearlyTotal:      domain.NewMoney(monthly.Mul(monthsPerYear), target),
		ActiveCount:      aggregation.CountActive(subs),
		TotalCount:       len(subs),
		Upcoming:         upcoming,
		Urgent:           urgent,
		GeneratedAt:      now,
	}, nil
}
