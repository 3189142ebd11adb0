package domain

import (
	"fmt"
	"strings"
)

// SortField names a sortable subscription attribute.
type SortField string

const (
	SortByName           SortField = "name"
	SortByPrice          SortField = "price"
	SortByNextOccurrence SortField = "nextPayment"
	SortByCreatedAt      SortField = "createdAt"
)

// SortDirection is ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortSpec is a parsed sort request.
type SortSpec struct {
	Field     SortField
	Direction SortDirection
}

// DefaultSort orders by next charge, soonest first.
var DefaultSort = SortSpec{Field: SortByNextOccurrence, Direction: SortAsc}

// ParseSortField accepts the field names exposed to clients. Empty means default.
func ParseSortField(s string) (SortField, error) {
	switch SortField(strings.TrimSpace(s)) {
	case "":
		return DefaultSort.Field, nil
	case SortByName:
		return SortByName, nil
	case SortByPrice:
		return SortByPrice, nil
	case SortByNextOccurrence, "nextOccurrence":
		return SortByNextOccurrence, nil
	case SortByCreatedAt:
		return SortByCreatedAt, nil
	}
	return "", fmt.Errorf("unknown sort field %q", s)
}

// ParseSortDirection accepts asc or desc (case-insensitive). Empty means asc.
func ParseSortDirection(s string) (SortDirection, error) {
	switch SortDirection(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortAsc:
		return SortAsc, nil
	case SortDesc:
		return SortDesc, nil
	}
	return "", fmt.Errorf("unknown sort direction %q", s)
}

// SubscriptionFilter is a conjunctive predicate set. Nil fields do not constrain.
type SubscriptionFilter struct {
	CategoryID *string
	Disabled   *bool
	Currency   *CurrencyCode
	PaidBy     *string
}

// SubscriptionQuery is a fully parsed list request.
type SubscriptionQuery struct {
	Filter SubscriptionFilter
	Sort   SortSpec
	Page   int
	Limit  int
}
