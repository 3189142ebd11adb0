package services

import (
	"context"
	"time"

	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	"github.com/SscSPs/subscription_tracker/internal/dto"
	"github.com/SscSPs/subscription_tracker/internal/utils/pagination"
)

// SubscriptionReaderSvc defines read operations for subscription data
type SubscriptionReaderSvc interface {
	// GetSubscription retrieves one subscription owned by userID.
	GetSubscription(ctx context.Context, subscriptionID, userID string) (*domain.Subscription, error)

	// ListSubscriptions filters, sorts and paginates the user's subscriptions.
	ListSubscriptions(ctx context.Context, userID string, query domain.SubscriptionQuery) (pagination.Page[domain.Subscription], error)

	// ListUpcoming returns enabled subscriptions due within days, soonest first.
	ListUpcoming(ctx context.Context, userID string, days int) ([]domain.Subscription, error)

	// ListUrgent returns upcoming subscriptions due within the urgency threshold.
	ListUrgent(ctx context.Context, userID string, days int) ([]domain.Subscription, error)
}

// SubscriptionWriterSvc defines write operations for subscription data
type SubscriptionWriterSvc interface {
	// CreateSubscription validates and persists a new subscription.
	CreateSubscription(ctx context.Context, req dto.CreateSubscriptionRequest, userID string) (*domain.Subscription, error)

	// UpdateSubscription applies the provided fields of req.
	UpdateSubscription(ctx context.Context, subscriptionID string, req dto.UpdateSubscriptionRequest, userID string) (*domain.Subscription, error)

	// DeleteSubscription removes a subscription.
	DeleteSubscription(ctx context.Context, subscriptionID, userID string) error

	// AdvanceSubscription moves the next payment one cadence step forward.
	AdvanceSubscription(ctx context.Context, subscriptionID, userID string) (*domain.Subscription, error)
}

// SubscriptionSchedulerSvc defines the batch schedule maintenance operations
type SubscriptionSchedulerSvc interface {
	// RollExpired advances every enabled subscription whose next payment is at
	// or before now until it lies after now. With dryRun nothing is stored.
	RollExpired(ctx context.Context, now time.Time, dryRun bool) ([]domain.RolledSchedule, error)
}

// SubscriptionSvcFacade combines all subscription-related service interfaces
type SubscriptionSvcFacade interface {
	SubscriptionReaderSvc
	SubscriptionWriterSvc
	SubscriptionSchedulerSvc
}
