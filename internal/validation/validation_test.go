package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/subscription_tracker/internal/apperrors"
	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	"github.com/SscSPs/subscription_tracker/internal/dto"
	"github.com/SscSPs/subscription_tracker/internal/utils/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)

func newTestValidator() *Validator {
	return New(func() time.Time { return fixedNow })
}

func validCreate() dto.CreateSubscriptionRequest {
	return dto.CreateSubscriptionRequest{
		Name:         "Netflix",
		Price:        decimal.RequireFromString("419"),
		Currency:     "THB",
		PaymentDay:   15,
		PaymentMonth: 1,
		NextPayment:  fixedNow.AddDate(0, 1, 0),
		Link:         "https://netflix.com",
	}
}

func fieldErrors(t *testing.T, err error) apperrors.ValidationErrors {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	var verrs apperrors.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	return verrs
}

func TestCreateSubscription_Valid(t *testing.T) {
	v := newTestValidator()
	assert.NoError(t, v.CreateSubscription(validCreate()))

	// default currency is filled in later, empty is allowed
	req := validCreate()
	req.Currency = ""
	assert.NoError(t, v.CreateSubscription(req))

	// up to one day in the past is tolerated
	req = validCreate()
	req.NextPayment = fixedNow.Add(-23 * time.Hour)
	assert.NoError(t, v.CreateSubscription(req))
}

func TestCreateSubscription_Rules(t *testing.T) {
	v := newTestValidator()
	tests := []struct {
		name    string
		mutate  func(r *dto.CreateSubscriptionRequest)
		field   string
		message string
	}{
		{"day zero", func(r *dto.CreateSubscriptionRequest) { r.PaymentDay = 0 }, "paymentDay", "Payment day must be between 1 and 31"},
		{"day 32", func(r *dto.CreateSubscriptionRequest) { r.PaymentDay = 32 }, "paymentDay", "Payment day must be between 1 and 31"},
		{"interval 13", func(r *dto.CreateSubscriptionRequest) { r.PaymentMonth = 13 }, "paymentMonth", "Payment month interval must be between 1 and 12"},
		{"zero price", func(r *dto.CreateSubscriptionRequest) { r.Price = decimal.Zero }, "price", "Price must be a positive number"},
		{"negative price", func(r *dto.CreateSubscriptionRequest) { r.Price = decimal.NewFromInt(-5) }, "price", "Price must be a positive number"},
		{"too expensive", func(r *dto.CreateSubscriptionRequest) { r.Price = decimal.RequireFromString("1000000.01") }, "price", "Price must be less than 1,000,000"},
		{"unsupported currency", func(r *dto.CreateSubscriptionRequest) { r.Currency = "BTC" }, "currency", "Currency must be one of: " + domain.SupportedCurrencyList()},
		{"bad logo", func(r *dto.CreateSubscriptionRequest) { r.Logo = "not a url" }, "logo", "Logo must be a valid URL"},
		{"bad link", func(r *dto.CreateSubscriptionRequest) { r.Link = "nope" }, "link", "Link must be a valid URL"},
		{"long past", func(r *dto.CreateSubscriptionRequest) { r.NextPayment = fixedNow.Add(-25 * time.Hour) }, "nextPayment", "Next payment date cannot be in the past"},
		{"missing next payment", func(r *dto.CreateSubscriptionRequest) { r.NextPayment = time.Time{} }, "nextPayment", "Next payment date is required"},
		{"missing name", func(r *dto.CreateSubscriptionRequest) { r.Name = "" }, "name", "Name is required"},
		{"blank name", func(r *dto.CreateSubscriptionRequest) { r.Name = "   " }, "name", "Name is required"},
		{"long name", func(r *dto.CreateSubscriptionRequest) { r.Name = strings.Repeat("n", 101) }, "name", "Name must be less than 100 characters"},
		{"long method", func(r *dto.CreateSubscriptionRequest) { r.PaymentMethod = strings.Repeat("m", 51) }, "paymentMethod", "Payment method must be less than 50 characters"},
		{"long paid by", func(r *dto.CreateSubscriptionRequest) { r.PaidBy = strings.Repeat("p", 51) }, "paidBy", "Paid by must be less than 50 characters"},
		{"long notes", func(r *dto.CreateSubscriptionRequest) { r.Notes = strings.Repeat("x", 1001) }, "notes", "Notes must be less than 1000 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreate()
			tt.mutate(&req)
			verrs := fieldErrors(t, v.CreateSubscription(req))
			assert.Equal(t, tt.message, verrs.Message(tt.field), "errors: %v", verrs)
		})
	}
}

func TestCreateSubscription_ReportsEveryViolation(t *testing.T) {
	req := validCreate()
	req.PaymentDay = 0
	req.PaymentMonth = 0
	req.Price = decimal.Zero
	verrs := fieldErrors(t, newTestValidator().CreateSubscription(req))
	assert.Len(t, verrs, 3)
}

func TestUpdateSubscription(t *testing.T) {
	v := newTestValidator()
	assert.NoError(t, v.UpdateSubscription(dto.UpdateSubscriptionRequest{}))

	day := 40
	price := decimal.NewFromInt(-1)
	cur := "XXX"
	empty := ""
	verrs := fieldErrors(t, v.UpdateSubscription(dto.UpdateSubscriptionRequest{
		PaymentDay: &day, Price: &price, Currency: &cur, Name: &empty,
	}))
	assert.NotEmpty(t, verrs.Message("paymentDay"))
	assert.NotEmpty(t, verrs.Message("price"))
	assert.NotEmpty(t, verrs.Message("currency"))
	assert.Equal(t, "Name is required", verrs.Message("name"))
}

func TestCategoryRules(t *testing.T) {
	v := newTestValidator()
	assert.NoError(t, v.CreateCategory(dto.CreateCategoryRequest{Name: "Work", Description: "tools"}))

	verrs := fieldErrors(t, v.CreateCategory(dto.CreateCategoryRequest{Name: ""}))
	assert.Equal(t, "Category name is required", verrs.Message("name"))

	verrs = fieldErrors(t, v.CreateCategory(dto.CreateCategoryRequest{Name: strings.Repeat("c", 51), Description: strings.Repeat("d", 201)}))
	assert.Equal(t, "Category name must be less than 50 characters", verrs.Message("name"))
	assert.Equal(t, "Description must be less than 200 characters", verrs.Message("description"))

	long := strings.Repeat("c", 51)
	verrs = fieldErrors(t, v.UpdateCategory(dto.UpdateCategoryRequest{Name: &long}))
	assert.NotEmpty(t, verrs.Message("name"))
}

func TestListParams(t *testing.T) {
	q, err := ListParams(dto.ListSubscriptionsParams{}, 20)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSort, q.Sort)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 20, q.Limit)

	q, err = ListParams(dto.ListSubscriptionsParams{
		Sort: "price", Direction: "DESC", Page: "2", Limit: "5",
		Disabled: "false", Currency: "usd", CategoryID: "cat", PaidBy: "me",
	}, 20)
	require.NoError(t, err)
	assert.Equal(t, domain.SortSpec{Field: domain.SortByPrice, Direction: domain.SortDesc}, q.Sort)
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, 5, q.Limit)
	require.NotNil(t, q.Filter.Disabled)
	assert.False(t, *q.Filter.Disabled)
	assert.Equal(t, domain.USD, *q.Filter.Currency)
	assert.Equal(t, "cat", *q.Filter.CategoryID)
	assert.Equal(t, "me", *q.Filter.PaidBy)
}

func TestListParams_Errors(t *testing.T) {
	_, err := ListParams(dto.ListSubscriptionsParams{Sort: "color", Direction: "up", Page: "0", Limit: "-1", Disabled: "maybe", Currency: "BTC"}, 20)
	verrs := fieldErrors(t, err)
	for _, f := range []string{"sort", "direction", "page", "limit", "disabled", "currency"} {
		assert.NotEmpty(t, verrs.Message(f), f)
	}
}

func TestListParams_NextToken(t *testing.T) {
	token := pagination.EncodeCursor(pagination.Cursor{Page: 3, Limit: 10, SortField: "name", Direction: "desc"})
	q, err := ListParams(dto.ListSubscriptionsParams{NextToken: token, Page: "1"}, 20)
	require.NoError(t, err)
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, domain.SortByName, q.Sort.Field)
	assert.Equal(t, domain.SortDesc, q.Sort.Direction)

	_, err = ListParams(dto.ListSubscriptionsParams{NextToken: "%%%"}, 20)
	assert.NotEmpty(t, fieldErrors(t, err).Message("nextToken"))
}

func TestScalarParsers(t *testing.T) {
	n, err := DayCount("", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	n, err = DayCount("30", 7)
	require.NoError(t, err)
	assert.Equal(t, 30, n)
	_, err = DayCount("-1", 7)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	code, err := Currency("currency", "", domain.THB)
	require.NoError(t, err)
	assert.Equal(t, domain.THB, code)
	_, err = Currency("currency", "ZZZ", domain.THB)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	amt, err := Amount(" 12.5 ")
	require.NoError(t, err)
	assert.True(t, amt.Equal(decimal.RequireFromString("12.5")))
	_, err = Amount("abc")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
