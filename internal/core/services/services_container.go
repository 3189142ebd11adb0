package services

import (
	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/subscription_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/subscription_tracker/internal/core/ports/services"
	"github.com/SscSPs/subscription_tracker/internal/platform/config"
	"github.com/SscSPs/subscription_tracker/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// The rate cache and provider are created once by the caller and shared by every request.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, cache portsrepo.RateCache, provider portsrepo.RateProvider, m *metrics.Registry) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	defaultCurrency, err := domain.ParseCurrencyCode(cfg.DefaultCurrency)
	if err != nil {
		defaultCurrency = domain.DefaultCurrency
	}

	container.Converter = NewCurrencyConverterService(cache, provider,
		WithDefaultCurrency(defaultCurrency),
		WithConverterMetrics(m),
	)
	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Subscription = NewSubscriptionService(repos.SubscriptionRepo, repos.CategoryRepo,
		WithSubscriptionMetrics(m),
	)
	container.Dashboard = NewDashboardService(repos.SubscriptionRepo, container.Converter,
		WithDashboardWindows(cfg.UpcomingDays, cfg.UrgentDays),
	)

	return container
}
