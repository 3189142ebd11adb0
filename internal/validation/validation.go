// Package validation checks incoming requests and reports every violated rule
// as an apperrors.ValidationErrors value.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/SscSPs/subscription_tracker/internal/apperrors"
	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	"github.com/SscSPs/subscription_tracker/internal/dto"
	"github.com/SscSPs/subscription_tracker/internal/utils/pagination"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// PastGrace is how far in the past a next payment date may lie.
const PastGrace = 24 * time.Hour

// Validator wraps a configured validator instance.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// New creates a Validator. now may be nil to use the wall clock.
func New(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	v := &Validator{validate: validator.New(), now: now}

	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	// errors are impossible here: tags are non-empty and funcs non-nil
	_ = v.validate.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseCurrencyCode(fl.Field().String())
		return err == nil
	})
	_ = v.validate.RegisterValidation("notpast", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		return !t.Before(v.now().Add(-PastGrace))
	})
	return v
}

var subscriptionLabels = map[string]string{
	"name":          "Name",
	"logo":          "Logo",
	"link":          "Link",
	"paymentMethod": "Payment method",
	"paidBy":        "Paid by",
	"notes":         "Notes",
	"nextPayment":   "Next payment date",
}

var categoryLabels = map[string]string{
	"name":        "Category name",
	"description": "Description",
}

func fieldMessage(labels map[string]string, fe validator.FieldError) string {
	switch fe.Field() {
	case "paymentDay":
		return "Payment day must be between 1 and 31"
	case "paymentMonth":
		return "Payment month interval must be between 1 and 12"
	case "currency":
		return "Currency must be one of: " + domain.SupportedCurrencyList()
	}

	label, ok := labels[fe.Field()]
	if !ok {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "max":
		return fmt.Sprintf("%s must be less than %s characters", label, fe.Param())
	case "url":
		return label + " must be a valid URL"
	case "notpast":
		return label + " cannot be in the past"
	}
	return fmt.Sprintf("%s is invalid (%s)", label, fe.Tag())
}

func (v *Validator) collect(s any, labels map[string]string) apperrors.ValidationErrors {
	var out apperrors.ValidationErrors
	err := v.validate.Struct(s)
	if err == nil {
		return out
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return append(out, apperrors.NewFieldError("request", err.Error()))
	}
	for _, fe := range verrs {
		out = append(out, apperrors.NewFieldError(fe.Field(), fieldMessage(labels, fe)))
	}
	return out
}

func checkPrice(price decimal.Decimal) *apperrors.FieldError {
	switch {
	case price.LessThanOrEqual(domain.MinPriceExclusive):
		fe := apperrors.NewFieldError("price", "Price must be a positive number")
		return &fe
	case price.GreaterThan(domain.MaxPrice):
		fe := apperrors.NewFieldError("price", "Price must be less than 1,000,000")
		return &fe
	}
	return nil
}

func result(errs apperrors.ValidationErrors) error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// CreateSubscription validates a create request. It returns nil or apperrors.ValidationErrors.
func (v *Validator) CreateSubscription(req dto.CreateSubscriptionRequest) error {
	errs := v.collect(req, subscriptionLabels)
	if fe := checkPrice(req.Price); fe != nil {
		errs = append(errs, *fe)
	}
	if strings.TrimSpace(req.Name) == "" && errs.Message("name") == "" {
		errs = append(errs, apperrors.NewFieldError("name", "Name is required"))
	}
	return result(errs)
}

// UpdateSubscription validates the fields present in an update request.
func (v *Validator) UpdateSubscription(req dto.UpdateSubscriptionRequest) error {
	errs := v.collect(req, subscriptionLabels)
	if req.Price != nil {
		if fe := checkPrice(*req.Price); fe != nil {
			errs = append(errs, *fe)
		}
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errs = append(errs, apperrors.NewFieldError("name", "Name is required"))
	}
	return result(errs)
}

// CreateCategory validates a category create request.
func (v *Validator) CreateCategory(req dto.CreateCategoryRequest) error {
	errs := v.collect(req, categoryLabels)
	if strings.TrimSpace(req.Name) == "" && errs.Message("name") == "" {
		errs = append(errs, apperrors.NewFieldError("name", "Category name is required"))
	}
	return result(errs)
}

// UpdateCategory validates a category update request.
func (v *Validator) UpdateCategory(req dto.UpdateCategoryRequest) error {
	errs := v.collect(req, categoryLabels)
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errs = append(errs, apperrors.NewFieldError("name", "Category name is required"))
	}
	return result(errs)
}

// ListParams turns raw list query parameters into a SubscriptionQuery.
// A non-empty NextToken replaces page, limit, sort and direction.
func ListParams(p dto.ListSubscriptionsParams, defaultLimit int) (domain.SubscriptionQuery, error) {
	var errs apperrors.ValidationErrors
	q := domain.SubscriptionQuery{Sort: domain.DefaultSort, Page: 1, Limit: defaultLimit}

	if p.NextToken != "" {
		c, err := pagination.DecodeCursor(p.NextToken)
		if err != nil {
			return q, apperrors.ValidationErrors{apperrors.NewFieldError("nextToken", err.Error())}
		}
		p.Page, p.Limit, p.Sort, p.Direction = fmt.Sprint(c.Page), fmt.Sprint(c.Limit), c.SortField, c.Direction
	}

	if field, err := domain.ParseSortField(p.Sort); err != nil {
		errs = append(errs, apperrors.NewFieldError("sort", err.Error()))
	} else {
		q.Sort.Field = field
	}
	if dir, err := domain.ParseSortDirection(p.Direction); err != nil {
		errs = append(errs, apperrors.NewFieldError("direction", err.Error()))
	} else {
		q.Sort.Direction = dir
	}
	if p.Page != "" {
		if n, ok := positiveInt(p.Page); ok {
			q.Page = n
		} else {
			errs = append(errs, apperrors.NewFieldError("page", "page must be a positive integer"))
		}
	}
	if p.Limit != "" {
		if n, ok := positiveInt(p.Limit); ok {
			q.Limit = n
		} else {
			errs = append(errs, apperrors.NewFieldError("limit", "limit must be a positive integer"))
		}
	}

	if p.CategoryID != "" {
		id := p.CategoryID
		q.Filter.CategoryID = &id
	}
	if p.Disabled != "" {
		switch strings.ToLower(p.Disabled) {
		case "true":
			b := true
			q.Filter.Disabled = &b
		case "false":
			b := false
			q.Filter.Disabled = &b
		default:
			errs = append(errs, apperrors.NewFieldError("disabled", "disabled must be true or false"))
		}
	}
	if p.Currency != "" {
		code, err := domain.ParseCurrencyCode(p.Currency)
		if err != nil {
			errs = append(errs, apperrors.NewFieldError("currency", "Currency must be one of: "+domain.SupportedCurrencyList()))
		} else {
			q.Filter.Currency = &code
		}
	}
	if p.PaidBy != "" {
		paidBy := p.PaidBy
		q.Filter.PaidBy = &paidBy
	}

	return q, result(errs)
}

// DayCount parses an optional "days" query parameter.
func DayCount(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, ok := nonNegativeInt(raw)
	if !ok {
		return 0, apperrors.ValidationErrors{apperrors.NewFieldError("days", "days must be a non-negative integer")}
	}
	return n, nil
}

// Currency parses an optional currency code, returning def when raw is empty.
func Currency(field, raw string, def domain.CurrencyCode) (domain.CurrencyCode, error) {
	if raw == "" {
		return def, nil
	}
	code, err := domain.ParseCurrencyCode(raw)
	if err != nil {
		return "", apperrors.ValidationErrors{apperrors.NewFieldError(field, "Currency must be one of: "+domain.SupportedCurrencyList())}
	}
	return code, nil
}

// Amount parses a decimal amount.
func Amount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, apperrors.ValidationErrors{apperrors.NewFieldError("amount", "amount must be a number")}
	}
	return d, nil
}
