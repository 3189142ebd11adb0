package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/subscription_tracker/internal/core/ports/services"
	"github.com/SscSPs/subscription_tracker/internal/dto"
	"github.com/SscSPs/subscription_tracker/internal/utils/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock SubscriptionService ---
type MockSubscriptionService struct {
	mock.Mock
}

func (m *MockSubscriptionService) GetSubscription(ctx context.Context, subscriptionID, userID string) (*domain.Subscription, error) {
	args := m.Called(ctx, subscriptionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionService) ListSubscriptions(ctx context.Context, userID string, query domain.SubscriptionQuery) (pagination.Page[domain.Subscription], error) {
	args := m.Called(ctx, userID, query)
	return args.Get(0).(pagination.Page[domain.Subscription]), args.Error(1)
}

func (m *MockSubscriptionService) ListUpcoming(ctx context.Context, userID string, days int) ([]domain.Subscription, error) {
	args := m.Called(ctx, userID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionService) ListUrgent(ctx context.Context, userID string, days int) ([]domain.Subscription, error) {
	args := m.Called(ctx, userID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionService) CreateSubscription(ctx context.Context, req dto.CreateSubscriptionRequest, userID string) (*domain.Subscription, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionService) UpdateSubscription(ctx context.Context, subscriptionID string, req dto.UpdateSubscriptionRequest, userID string) (*domain.Subscription, error) {
	args := m.Called(ctx, subscriptionID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionService) DeleteSubscription(ctx context.Context, subscriptionID, userID string) error {
	args := m.Called(ctx, subscriptionID, userID)
	return args.Error(0)
}

func (m *MockSubscriptionService) AdvanceSubscription(ctx context.Context, subscriptionID, userID string) (*domain.Subscription, error) {
	args := m.Called(ctx, subscriptionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionService) RollExpired(ctx context.Context, now time.Time, dryRun bool) ([]domain.RolledSchedule, error) {
	args := m.Called(ctx, now, dryRun)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RolledSchedule), args.Error(1)
}

var _ portssvc.SubscriptionSvcFacade = (*MockSubscriptionService)(nil)

// --- Mock CategoryService ---
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) GetCategory(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	args := m.Called(ctx, categoryID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

func (m *MockCategoryService) SeedDefaultCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

var _ portssvc.CategorySvcFacade = (*MockCategoryService)(nil)

// --- Mock CurrencyConverter ---
type MockConverter struct {
	mock.Mock
}

func (m *MockConverter) GetRates(ctx context.Context, base domain.CurrencyCode) domain.RateSnapshot {
	return m.Called(ctx, base).Get(0).(domain.RateSnapshot)
}

func (m *MockConverter) Explain(ctx context.Context, base domain.CurrencyCode) domain.RateExplanation {
	return m.Called(ctx, base).Get(0).(domain.RateExplanation)
}

func (m *MockConverter) Convert(ctx context.Context, amount decimal.Decimal, from, to domain.CurrencyCode) decimal.Decimal {
	return m.Called(ctx, amount, from, to).Get(0).(decimal.Decimal)
}

func (m *MockConverter) ConvertToDefault(ctx context.Context, amount decimal.Decimal, from domain.CurrencyCode) decimal.Decimal {
	return m.Called(ctx, amount, from).Get(0).(decimal.Decimal)
}

// FormatDisplay is deterministic so responses can be asserted without expectations.
func (m *MockConverter) FormatDisplay(amount decimal.Decimal, currency domain.CurrencyCode) string {
	return amount.StringFixed(2) + " " + currency.String()
}

func (m *MockConverter) DefaultCurrency() domain.CurrencyCode {
	return domain.THB
}

var _ portssvc.CurrencyConverterSvc = (*MockConverter)(nil)

// --- Mock DashboardService ---
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) GetDashboard(ctx context.Context, userID string, target domain.CurrencyCode) (*domain.Dashboard, error) {
	args := m.Called(ctx, userID, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dashboard), args.Error(1)
}

var _ portssvc.DashboardSvc = (*MockDashboardService)(nil)
