package dto

import (
	"time"

	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	"github.com/SscSPs/subscription_tracker/internal/utils/billing"
	"github.com/SscSPs/subscription_tracker/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// CreateSubscriptionRequest defines the data needed to create a new subscription.
// Field rules are enforced by the validation package, not by gin binding.
type CreateSubscriptionRequest struct {
	Name          string          `json:"name" validate:"required,max=100"`
	Logo          string          `json:"logo" validate:"omitempty,url"`
	Price         decimal.Decimal `json:"price"`
	Currency      string          `json:"currency" validate:"omitempty,currency"`
	PaymentDay    int             `json:"paymentDay" validate:"min=1,max=31"`
	PaymentMonth  int             `json:"paymentMonth" validate:"min=1,max=12"`
	NextPayment   time.Time       `json:"nextPayment" validate:"required,notpast"`
	PaymentMethod string          `json:"paymentMethod" validate:"max=50"`
	CategoryID    *string         `json:"categoryID"`
	PaidBy        string          `json:"paidBy" validate:"max=50"`
	Link          string          `json:"link" validate:"omitempty,url"`
	Notes         string          `json:"notes" validate:"max=1000"`
}

// UpdateSubscriptionRequest defines the data allowed for updating a subscription.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateSubscriptionRequest struct {
	Name          *string          `json:"name" validate:"omitempty,max=100"`
	Logo          *string          `json:"logo" validate:"omitempty,url"`
	Price         *decimal.Decimal `json:"price"`
	Currency      *string          `json:"currency" validate:"omitempty,currency"`
	PaymentDay    *int             `json:"paymentDay" validate:"omitempty,min=1,max=31"`
	PaymentMonth  *int             `json:"paymentMonth" validate:"omitempty,min=1,max=12"`
	NextPayment   *time.Time       `json:"nextPayment" validate:"omitempty,notpast"`
	PaymentMethod *string          `json:"paymentMethod" validate:"omitempty,max=50"`
	CategoryID    *string          `json:"categoryID"`
	PaidBy        *string          `json:"paidBy" validate:"omitempty,max=50"`
	Link          *string          `json:"link" validate:"omitempty,url"`
	Notes         *string          `json:"notes" validate:"omitempty,max=1000"`
	Disabled      *bool            `json:"disabled"`
}

// ListSubscriptionsParams are the raw query parameters of the list endpoint.
type ListSubscriptionsParams struct {
	CategoryID string `form:"categoryID"`
	Disabled   string `form:"disabled"`
	Currency   string `form:"currency"`
	PaidBy     string `form:"paidBy"`
	Sort       string `form:"sort"`
	Direction  string `form:"direction"`
	Page       string `form:"page"`
	Limit      string `form:"limit"`
	NextToken  string `form:"nextToken"`
}

// SubscriptionResponse defines the data returned for a subscription.
type SubscriptionResponse struct {
	SubscriptionID string            `json:"subscriptionID"`
	Name           string            `json:"name"`
	Logo           string            `json:"logo,omitempty"`
	Price          decimal.Decimal   `json:"price"`
	Currency       string            `json:"currency"`
	PriceDisplay   string            `json:"priceDisplay"`
	MonthlyAmount  decimal.Decimal   `json:"monthlyAmount"`
	PaymentEvery   domain.Cadence    `json:"paymentEvery"`
	NextPayment    time.Time         `json:"nextPayment"`
	DaysUntil      int               `json:"daysUntil"`
	PaymentMethod  string            `json:"paymentMethod,omitempty"`
	Category       *CategoryResponse `json:"category,omitempty"`
	PaidBy         string            `json:"paidBy,omitempty"`
	Link           string            `json:"link,omitempty"`
	Notes          string            `json:"notes,omitempty"`
	Disabled       bool              `json:"disabled"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// ListSubscriptionsResponse wraps a page of subscriptions.
type ListSubscriptionsResponse struct {
	Subscriptions []SubscriptionResponse `json:"subscriptions"`
	Page          int                    `json:"page"`
	Limit         int                    `json:"limit"`
	Total         int                    `json:"total"`
	TotalPages    int                    `json:"totalPages"`
	HasNext       bool                   `json:"hasNext"`
	HasPrev       bool                   `json:"hasPrev"`
	NextToken     string                 `json:"nextToken,omitempty"`
}

// Formatter renders an amount for display.
type Formatter func(amount decimal.Decimal, currency domain.CurrencyCode) string

// ToSubscriptionResponse converts a domain.Subscription to SubscriptionResponse DTO
func ToSubscriptionResponse(s *domain.Subscription, now time.Time, format Formatter) SubscriptionResponse {
	res := SubscriptionResponse{
		SubscriptionID: s.SubscriptionID,
		Name:           s.Name,
		Logo:           s.Logo,
		Price:          s.Price.Amount,
		Currency:       s.Price.Currency.String(),
		MonthlyAmount:  billing.MonthlyEquivalent(s.Price.Amount, s.Cadence),
		PaymentEvery:   s.Cadence,
		NextPayment:    s.NextOccurrence,
		DaysUntil:      billing.DaysUntil(s.NextOccurrence, now),
		PaymentMethod:  s.PaymentMethod,
		PaidBy:         s.PaidBy,
		Link:           s.Link,
		Notes:          s.Notes,
		Disabled:       s.Disabled,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
	if format != nil {
		res.PriceDisplay = format(s.Price.Amount, s.Price.Currency)
	}
	if s.Category != nil {
		c := ToCategoryResponse(s.Category)
		res.Category = &c
	}
	return res
}

// ToSubscriptionResponses converts a slice of subscriptions.
func ToSubscriptionResponses(subs []domain.Subscription, now time.Time, format Formatter) []SubscriptionResponse {
	res := make([]SubscriptionResponse, len(subs))
	for i := range subs {
		res[i] = ToSubscriptionResponse(&subs[i], now, format)
	}
	return res
}

// ToListSubscriptionsResponse converts a page of subscriptions.
func ToListSubscriptionsResponse(p pagination.Page[domain.Subscription], sort domain.SortSpec, now time.Time, format Formatter) ListSubscriptionsResponse {
	return ListSubscriptionsResponse{
		Subscriptions: ToSubscriptionResponses(p.Items, now, format),
		Page:          p.Page,
		Limit:         p.Limit,
		Total:         p.Total,
		TotalPages:    p.TotalPages,
		HasNext:       p.HasNext,
		HasPrev:       p.HasPrev,
		NextToken:     pagination.NextCursor(p, string(sort.Field), string(sort.Direction)),
	}
}
