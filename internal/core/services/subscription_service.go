package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/subscription_tracker/internal/apperrors"
	"github.com/SscSPs/subscription_tracker/internal/core/aggregation"
	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/subscription_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/subscription_tracker/internal/core/ports/services"
	"github.com/SscSPs/subscription_tracker/internal/dto"
	"github.com/SscSPs/subscription_tracker/internal/platform/metrics"
	"github.com/SscSPs/subscription_tracker/internal/utils/billing"
	"github.com/SscSPs/subscription_tracker/internal/utils/pagination"
	"github.com/SscSPs/subscription_tracker/internal/validation"
	"github.com/google/uuid"
)

// MaxPageLimit caps the page size of subscription listings.
const MaxPageLimit = 100

type subscriptionService struct {
	BaseService
	subscriptionRepo portsrepo.SubscriptionRepositoryFacade
	categoryRepo     portsrepo.CategoryReader
	validator        *validation.Validator
	metrics          *metrics.Registry
	now              func() time.Time
}

// SubscriptionServiceOption is a functional option for configuring the subscription service
type SubscriptionServiceOption func(*subscriptionService)

// WithSubscriptionClock replaces the wall clock used for due-date decisions.
func WithSubscriptionClock(now func() time.Time) SubscriptionServiceOption {
	return func(s *subscriptionService) { s.now = now }
}

// WithSubscriptionMetrics counts rolled schedules.
func WithSubscriptionMetrics(m *metrics.Registry) SubscriptionServiceOption {
	return func(s *subscriptionService) { s.metrics = m }
}

// WithSubscriptionValidator replaces the request validator.
func WithSubscriptionValidator(v *validation.Validator) SubscriptionServiceOption {
	return func(s *subscriptionService) { s.validator = v }
}

// NewSubscriptionService creates a new subscription service with the given options
func NewSubscriptionService(subscriptionRepo portsrepo.SubscriptionRepositoryFacade, categoryRepo portsrepo.CategoryReader, opts ...SubscriptionServiceOption) portssvc.SubscriptionSvcFacade {
	s := &subscriptionService{
		subscriptionRepo: subscriptionRepo,
		categoryRepo:     categoryRepo,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.validator == nil {
		s.validator = validation.New(s.now)
	}
	return s
}

var _ portssvc.SubscriptionSvcFacade = (*subscriptionService)(nil)

func (s *subscriptionService) GetSubscription(ctx context.Context, subscriptionID, userID string) (*domain.Subscription, error) {
	sub, err := s.subscriptionRepo.FindSubscriptionByID(ctx, subscriptionID, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find subscription", slog.String("subscription_id", subscriptionID))
		}
		return nil, err
	}
	return sub, nil
}

func (s *subscriptionService) listAll(ctx context.Context, userID string) ([]domain.Subscription, error) {
	subs, err := s.subscriptionRepo.ListSubscriptionsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list subscriptions", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subs, nil
}

func (s *subscriptionService) ListSubscriptions(ctx context.Context, userID string, query domain.SubscriptionQuery) (pagination.Page[domain.Subscription], error) {
	subs, err := s.listAll(ctx, userID)
	if err != nil {
		return pagination.Page[domain.Subscription]{}, err
	}
	limit := query.Limit
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	sorted := aggregation.Sort(aggregation.Filter(subs, query.Filter), query.Sort)
	return pagination.Paginate(sorted, query.Page, limit), nil
}

func (s *subscriptionService) ListUpcoming(ctx context.Context, userID string, days int) ([]domain.Subscription, error) {
	subs, err := s.listAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	return aggregation.Upcoming(subs, s.now(), days), nil
}

func (s *subscriptionService) ListUrgent(ctx context.Context, userID string, days int) ([]domain.Subscription, error) {
	subs, err := s.listAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	return aggregation.Urgent(aggregation.Upcoming(subs, now, days), now, days), nil
}

// checkCategory reports a validation error when categoryID names no category.
func (s *subscriptionService) checkCategory(ctx context.Context, categoryID *string) (*domain.Category, error) {
	if categoryID == nil || *categoryID == "" {
		return nil, nil
	}
	cat, err := s.categoryRepo.FindCategoryByID(ctx, *categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ValidationErrors{apperrors.NewFieldError("categoryID", "Category does not exist")}
		}
		return nil, fmt.Errorf("failed to look up category: %w", err)
	}
	return cat, nil
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}

func (s *subscriptionService) CreateSubscription(ctx context.Context, req dto.CreateSubscriptionRequest, userID string) (*domain.Subscription, error) {
	if err := s.validator.CreateSubscription(req); err != nil {
		return nil, err
	}
	currency, err := validation.Currency("currency", req.Currency, domain.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	categoryID := trimmedOrNil(req.CategoryID)
	category, err := s.checkCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	sub := domain.Subscription{
		SubscriptionID: uuid.NewString(),
		UserID:         userID,
		Name:           strings.TrimSpace(req.Name),
		Logo:           strings.TrimSpace(req.Logo),
		Price:          domain.NewMoney(req.Price, currency),
		Cadence:        domain.Cadence{DayOfMonth: req.PaymentDay, IntervalMonths: req.PaymentMonth},
		NextOccurrence: req.NextPayment,
		PaymentMethod:  strings.TrimSpace(req.PaymentMethod),
		CategoryID:     categoryID,
		Category:       category,
		PaidBy:         strings.TrimSpace(req.PaidBy),
		Link:           strings.TrimSpace(req.Link),
		Notes:          strings.TrimSpace(req.Notes),
		AuditFields:    domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.subscriptionRepo.SaveSubscription(ctx, sub); err != nil {
		s.LogError(ctx, err, "Failed to save subscription", slog.String("subscription_id", sub.SubscriptionID))
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}
	s.LogInfo(ctx, "Subscription created", slog.String("subscription_id", sub.SubscriptionID))
	return &sub, nil
}

func (s *subscriptionService) UpdateSubscription(ctx context.Context, subscriptionID string, req dto.UpdateSubscriptionRequest, userID string) (*domain.Subscription, error) {
	if err := s.validator.UpdateSubscription(req); err != nil {
		return nil, err
	}
	sub, err := s.GetSubscription(ctx, subscriptionID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		sub.Name = strings.TrimSpace(*req.Name)
	}
	if req.Logo != nil {
		sub.Logo = strings.TrimSpace(*req.Logo)
	}
	if req.Price != nil {
		sub.Price.Amount = *req.Price
	}
	if req.Currency != nil {
		code, err := validation.Currency("currency", *req.Currency, sub.Price.Currency)
		if err != nil {
			return nil, err
		}
		sub.Price.Currency = code
	}
	if req.PaymentDay != nil {
		sub.Cadence.DayOfMonth = *req.PaymentDay
	}
	if req.PaymentMonth != nil {
		sub.Cadence.IntervalMonths = *req.PaymentMonth
	}
	if req.NextPayment != nil {
		sub.NextOccurrence = *req.NextPayment
	}
	if req.PaymentMethod != nil {
		sub.PaymentMethod = strings.TrimSpace(*req.PaymentMethod)
	}
	if req.CategoryID != nil {
		sub.CategoryID = trimmedOrNil(req.CategoryID)
		if sub.Category, err = s.checkCategory(ctx, sub.CategoryID); err != nil {
			return nil, err
		}
	}
	if req.PaidBy != nil {
		sub.PaidBy = strings.TrimSpace(*req.PaidBy)
	}
	if req.Link != nil {
		sub.Link = strings.TrimSpace(*req.Link)
	}
	if req.Notes != nil {
		sub.Notes = strings.TrimSpace(*req.Notes)
	}
	if req.Disabled != nil {
		sub.Disabled = *req.Disabled
	}
	sub.UpdatedAt = s.now()

	if err := s.subscriptionRepo.UpdateSubscription(ctx, *sub); err != nil {
		s.LogError(ctx, err, "Failed to update subscription", slog.String("subscription_id", subscriptionID))
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}
	s.LogInfo(ctx, "Subscription updated", slog.String("subscription_id", subscriptionID))
	return sub, nil
}

func (s *subscriptionService) DeleteSubscription(ctx context.Context, subscriptionID, userID string) error {
	if _, err := s.GetSubscription(ctx, subscriptionID, userID); err != nil {
		return err
	}
	removed, err := s.subscriptionRepo.DeleteSubscription(ctx, subscriptionID, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to delete subscription", slog.String("subscription_id", subscriptionID))
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	if !removed {
		return fmt.Errorf("subscription %s still present after delete", subscriptionID)
	}
	s.LogInfo(ctx, "Subscription deleted", slog.String("subscription_id", subscriptionID))
	return nil
}

func (s *subscriptionService) AdvanceSubscription(ctx context.Context, subscriptionID, userID string) (*domain.Subscription, error) {
	sub, err := s.GetSubscription(ctx, subscriptionID, userID)
	if err != nil {
		return nil, err
	}
	if !sub.Cadence.IsValid() {
		return nil, apperrors.ValidationErrors{apperrors.NewFieldError("paymentEvery", "stored cadence is out of range")}
	}

	previous := sub.NextOccurrence
	sub.NextOccurrence = billing.NextOccurrence(previous, sub.Cadence)
	sub.UpdatedAt = s.now()
	if err := s.subscriptionRepo.UpdateNextOccurrence(ctx, sub.SubscriptionID, userID, sub.NextOccurrence, sub.UpdatedAt); err != nil {
		s.LogError(ctx, err, "Failed to advance subscription", slog.String("subscription_id", subscriptionID))
		return nil, fmt.Errorf("failed to advance subscription: %w", err)
	}
	s.LogInfo(ctx, "Subscription advanced",
		slog.String("subscription_id", subscriptionID),
		slog.Time("previous", previous),
		slog.Time("next", sub.NextOccurrence))
	return sub, nil
}

func (s *subscriptionService) RollExpired(ctx context.Context, now time.Time, dryRun bool) ([]domain.RolledSchedule, error) {
	due, err := s.subscriptionRepo.ListDueSubscriptions(ctx, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to list due subscriptions")
		return nil, fmt.Errorf("failed to list due subscriptions: %w", err)
	}

	rolled := make([]domain.RolledSchedule, 0, len(due))
	for _, sub := range due {
		if sub.Disabled || !sub.Cadence.IsValid() {
			continue
		}
		next, steps := billing.RollForward(sub.NextOccurrence, sub.Cadence, now)
		if steps == 0 {
			continue
		}
		if !dryRun {
			if err := s.subscriptionRepo.UpdateNextOccurrence(ctx, sub.SubscriptionID, sub.UserID, next, now); err != nil {
				s.LogError(ctx, err, "Failed to roll subscription", slog.String("subscription_id", sub.SubscriptionID))
				return rolled, fmt.Errorf("failed to roll subscription %s: %w", sub.SubscriptionID, err)
			}
		}
		rolled = append(rolled, domain.RolledSchedule{
			SubscriptionID: sub.SubscriptionID,
			UserID:         sub.UserID,
			Name:           sub.Name,
			Previous:       sub.NextOccurrence,
			Next:           next,
			Steps:          steps,
		})
	}
	if !dryRun {
		s.metrics.AddScheduleRolls(len(rolled))
	}
	s.LogInfo(ctx, "Expired schedules rolled", slog.Int("count", len(rolled)), slog.Bool("dry_run", dryRun))
	return rolled, nil
}
