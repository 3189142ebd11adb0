package domain

import "time"

// UncategorizedLabel groups subscriptions without a category in totals.
const UncategorizedLabel = "Uncategorized"

// Category groups subscriptions for reporting.
type Category struct {
	CategoryID  string `json:"categoryID"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	AuditFields
}

// Subscription is a recurring financial obligation owned by a user.
type Subscription struct {
	SubscriptionID string    `json:"subscriptionID"`
	UserID         string    `json:"userID"`
	Name           string    `json:"name"`
	Logo           string    `json:"logo,omitempty"`
	Price          Money     `json:"price"`
	Cadence        Cadence   `json:"paymentEvery"`
	NextOccurrence time.Time `json:"nextPayment"`
	PaymentMethod  string    `json:"paymentMethod,omitempty"`
	CategoryID     *string   `json:"categoryID,omitempty"`
	Category       *Category `json:"category,omitempty"` // joined on read
	PaidBy         string    `json:"paidBy,omitempty"`
	Link           string    `json:"link,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	Disabled       bool      `json:"disabled"`
	AuditFields
}

// Schedule returns the subscription's current schedule.
func (s Subscription) Schedule() Schedule {
	return Schedule{Cadence: s.Cadence, NextOccurrence: s.NextOccurrence}
}

// CategoryName returns the joined category name or UncategorizedLabel.
func (s Subscription) CategoryName() string {
	if s.Category == nil || s.Category.Name == "" {
		return UncategorizedLabel
	}
	return s.Category.Name
}

// NormalizedSubscription is a derived, never persisted, per-month view.
type NormalizedSubscription struct {
	SourceID      string    `json:"sourceID"`
	MonthlyAmount Money     `json:"monthlyAmount"`
	Category      *Category `json:"category,omitempty"`
}
