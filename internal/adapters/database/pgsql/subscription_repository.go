package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/subscription_tracker/internal/apperrors"
	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/subscription_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxSubscriptionRepository struct {
	BaseRepository
}

// newPgxSubscriptionRepository creates a new repository for subscription data.
func newPgxSubscriptionRepository(pool *pgxpool.Pool) *PgxSubscriptionRepository {
	return &PgxSubscriptionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SubscriptionRepositoryFacade = (*PgxSubscriptionRepository)(nil)
var _ portsrepo.RepositoryWithTx = (*PgxSubscriptionRepository)(nil)

const fullSubscriptionSelectQuery = `
SELECT
	s.subscription_id, s.user_id, s.name, s.logo, s.price, s.currency,
	s.payment_every, s.next_payment, s.payment_method, s.category_id,
	s.paid_by, s.link, s.notes, s.disabled, s.created_at, s.updated_at,
	c.name, c.description, c.created_at, c.updated_at
FROM subscriptions s
LEFT JOIN categories c ON c.category_id = s.category_id
`

func scanSubscription(row pgx.Row) (domain.Subscription, error) {
	var (
		s            domain.Subscription
		price        decimal.Decimal
		currency     string
		catName      *string
		catDesc      *string
		catCreatedAt *time.Time
		catUpdatedAt *time.Time
	)
	err := row.Scan(
		&s.SubscriptionID, &s.UserID, &s.Name, &s.Logo, &price, &currency,
		&s.Cadence, &s.NextOccurrence, &s.PaymentMethod, &s.CategoryID,
		&s.PaidBy, &s.Link, &s.Notes, &s.Disabled, &s.CreatedAt, &s.UpdatedAt,
		&catName, &catDesc, &catCreatedAt, &catUpdatedAt,
	)
	if err != nil {
		return domain.Subscription{}, err
	}
	s.Price = domain.NewMoney(price, domain.CurrencyCode(currency))

	if s.CategoryID != nil && catName != nil {
		cat := &domain.Category{CategoryID: *s.CategoryID, Name: *catName}
		if catDesc != nil {
			cat.Description = *catDesc
		}
		if catCreatedAt != nil {
			cat.CreatedAt = *catCreatedAt
		}
		if catUpdatedAt != nil {
			cat.UpdatedAt = *catUpdatedAt
		}
		s.Category = cat
	}
	return s, nil
}

func (r *PgxSubscriptionRepository) getSubscriptions(ctx context.Context, filterQuery string, args ...any) ([]domain.Subscription, error) {
	rows, err := r.Pool.Query(ctx, fullSubscriptionSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer rows.Close()

	subs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Subscription, error) {
		return scanSubscription(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect subscription rows: %w", err)
	}
	return subs, nil
}

// FindSubscriptionByID retrieves a subscription owned by userID.
func (r *PgxSubscriptionRepository) FindSubscriptionByID(ctx context.Context, subscriptionID, userID string) (*domain.Subscription, error) {
	row := r.Pool.QueryRow(ctx, fullSubscriptionSelectQuery+`WHERE s.subscription_id = $1 AND s.user_id = $2;`, subscriptionID, userID)
	sub, err := scanSubscription(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find subscription %s: %w", subscriptionID, err)
	}
	return &sub, nil
}

// ListSubscriptionsByUser retrieves every subscription of a user.
func (r *PgxSubscriptionRepository) ListSubscriptionsByUser(ctx context.Context, userID string) ([]domain.Subscription, error) {
	return r.getSubscriptions(ctx, `WHERE s.user_id = $1 ORDER BY s.created_at, s.subscription_id;`, userID)
}

// ListDueSubscriptions retrieves enabled subscriptions due at or before cutoff.
func (r *PgxSubscriptionRepository) ListDueSubscriptions(ctx context.Context, cutoff time.Time) ([]domain.Subscription, error) {
	return r.getSubscriptions(ctx, `WHERE s.disabled = false AND s.next_payment <= $1 ORDER BY s.next_payment, s.subscription_id;`, cutoff)
}

// SaveSubscription inserts a new subscription.
func (r *PgxSubscriptionRepository) SaveSubscription(ctx context.Context, sub domain.Subscription) error {
	query := `
		INSERT INTO subscriptions (
			subscription_id, user_id, name, logo, price, currency,
			payment_every, next_payment, payment_method, category_id,
			paid_by, link, notes, disabled, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		sub.SubscriptionID,
		sub.UserID,
		sub.Name,
		sub.Logo,
		sub.Price.Amount,
		string(sub.Price.Currency),
		sub.Cadence,
		sub.NextOccurrence,
		sub.PaymentMethod,
		sub.CategoryID,
		sub.PaidBy,
		sub.Link,
		sub.Notes,
		sub.Disabled,
		sub.CreatedAt,
		sub.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("subscription %s: %w", sub.SubscriptionID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save subscription %s: %w", sub.SubscriptionID, err)
	}
	return nil
}

// UpdateSubscription overwrites the mutable fields of a subscription.
func (r *PgxSubscriptionRepository) UpdateSubscription(ctx context.Context, sub domain.Subscription) error {
	query := `
		UPDATE subscriptions SET
			name = $3, logo = $4, price = $5, currency = $6, payment_every = $7,
			next_payment = $8, payment_method = $9, category_id = $10, paid_by = $11,
			link = $12, notes = $13, disabled = $14, updated_at = $15
		WHERE subscription_id = $1 AND user_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		sub.SubscriptionID,
		sub.UserID,
		sub.Name,
		sub.Logo,
		sub.Price.Amount,
		string(sub.Price.Currency),
		sub.Cadence,
		sub.NextOccurrence,
		sub.PaymentMethod,
		sub.CategoryID,
		sub.PaidBy,
		sub.Link,
		sub.Notes,
		sub.Disabled,
		sub.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update subscription %s: %w", sub.SubscriptionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateNextOccurrence stores a recomputed next payment date.
func (r *PgxSubscriptionRepository) UpdateNextOccurrence(ctx context.Context, subscriptionID, userID string, next time.Time, updatedAt time.Time) error {
	query := `UPDATE subscriptions SET next_payment = $3, updated_at = $4 WHERE subscription_id = $1 AND user_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, subscriptionID, userID, next, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update next payment of subscription %s: %w", subscriptionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteSubscription removes the row and reports whether it is gone afterwards.
func (r *PgxSubscriptionRepository) DeleteSubscription(ctx context.Context, subscriptionID, userID string) (bool, error) {
	if _, err := r.Pool.Exec(ctx, `DELETE FROM subscriptions WHERE subscription_id = $1 AND user_id = $2;`, subscriptionID, userID); err != nil {
		return false, fmt.Errorf("failed to delete subscription %s: %w", subscriptionID, err)
	}

	var remaining int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM subscriptions WHERE subscription_id = $1;`, subscriptionID).Scan(&remaining)
	if err != nil {
		return false, fmt.Errorf("failed to verify deletion of subscription %s: %w", subscriptionID, err)
	}
	return remaining == 0, nil
}
