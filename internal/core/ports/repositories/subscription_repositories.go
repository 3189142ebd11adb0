package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/subscription_tracker/internal/core/domain"
)

// SubscriptionReader defines read operations for subscription data.
// Every lookup is scoped to the owning user; a record owned by someone else
// is reported as apperrors.ErrNotFound.
type SubscriptionReader interface {
	// FindSubscriptionByID retrieves one subscription with its category joined.
	FindSubscriptionByID(ctx context.Context, subscriptionID, userID string) (*domain.Subscription, error)

	// ListSubscriptionsByUser retrieves every subscription of a user with categories joined.
	ListSubscriptionsByUser(ctx context.Context, userID string) ([]domain.Subscription, error)

	// ListDueSubscriptions retrieves enabled subscriptions of all users whose
	// next occurrence is at or before the cutoff.
	ListDueSubscriptions(ctx context.Context, cutoff time.Time) ([]domain.Subscription, error)
}

// SubscriptionWriter defines write operations for subscription data.
type SubscriptionWriter interface {
	// SaveSubscription persists a new subscription.
	SaveSubscription(ctx context.Context, subscription domain.Subscription) error

	// UpdateSubscription overwrites the mutable fields of an existing subscription.
	UpdateSubscription(ctx context.Context, subscription domain.Subscription) error

	// UpdateNextOccurrence stores a recomputed schedule.
	UpdateNextOccurrence(ctx context.Context, subscriptionID, userID string, next time.Time, updatedAt time.Time) error

	// DeleteSubscription removes a subscription. Success is judged by the
	// record being absent afterwards.
	DeleteSubscription(ctx context.Context, subscriptionID, userID string) (bool, error)
}

// SubscriptionRepositoryFacade combines all subscription-related repository interfaces
type SubscriptionRepositoryFacade interface {
	SubscriptionReader
	SubscriptionWriter
}
