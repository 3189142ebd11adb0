package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/subscription_tracker/internal/apperrors"
	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	"github.com/SscSPs/subscription_tracker/internal/dto"
	"github.com/SscSPs/subscription_tracker/internal/handlers"
	"github.com/SscSPs/subscription_tracker/internal/middleware"
	"github.com/SscSPs/subscription_tracker/internal/utils/pagination"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testUserID = "user-123"

type HandlersTestSuite struct {
	suite.Suite
	router        *gin.Engine
	subscriptions *MockSubscriptionService
	categories    *MockCategoryService
	converter     *MockConverter
	dashboard     *MockDashboardService
	jwtSecret     string
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

// generateTestToken creates a signed JWT for testing.
func (suite *HandlersTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "subtrack-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.subscriptions = new(MockSubscriptionService)
	suite.categories = new(MockCategoryService)
	suite.converter = new(MockConverter)
	suite.dashboard = new(MockDashboardService)

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret))
	handlers.RegisterSubscriptionRoutes(v1, suite.subscriptions, suite.converter, handlers.DefaultListDefaults)
	handlers.RegisterCategoryRoutes(v1, suite.categories)
	handlers.RegisterCurrencyRoutes(v1, suite.converter)
	handlers.RegisterDashboardRoutes(v1, suite.dashboard, suite.converter)
}

func (suite *HandlersTestSuite) TearDownTest() {
	suite.subscriptions.AssertExpectations(suite.T())
	suite.categories.AssertExpectations(suite.T())
	suite.converter.AssertExpectations(suite.T())
	suite.dashboard.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(testUserID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) decode(w *httptest.ResponseRecorder, target any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), target), w.Body.String())
}

func sampleSubscription() *domain.Subscription {
	catID := "cat-1"
	now := time.Now().UTC()
	return &domain.Subscription{
		SubscriptionID: "sub-1",
		UserID:         testUserID,
		Name:           "Netflix",
		Price:          domain.NewMoney(decimal.RequireFromString("419"), domain.THB),
		Cadence:        domain.Monthly(15),
		NextOccurrence: now.AddDate(0, 0, 3),
		CategoryID:     &catID,
		Category:       &domain.Category{CategoryID: catID, Name: "Entertainment"},
		AuditFields:    domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
}

// --- Subscriptions ---

func (suite *HandlersTestSuite) TestCreateSubscription_Success() {
	req := dto.CreateSubscriptionRequest{
		Name:         "Netflix",
		Price:        decimal.RequireFromString("419"),
		Currency:     "THB",
		PaymentDay:   15,
		PaymentMonth: 1,
		NextPayment:  time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second),
	}
	suite.subscriptions.On("CreateSubscription", mock.Anything, mock.MatchedBy(func(r dto.CreateSubscriptionRequest) bool {
		return r.Name == "Netflix" && r.Price.Equal(req.Price) && r.PaymentDay == 15
	}), testUserID).Return(sampleSubscription(), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/subscriptions", req)

	suite.Equal(http.StatusCreated, w.Code)
	var res dto.SubscriptionResponse
	suite.decode(w, &res)
	suite.Equal("sub-1", res.SubscriptionID)
	suite.Equal("419.00 THB", res.PriceDisplay)
	suite.True(res.MonthlyAmount.Equal(decimal.NewFromInt(419)))
	suite.Equal(3, res.DaysUntil)
	suite.Require().NotNil(res.Category)
	suite.Equal("Entertainment", res.Category.Name)
}

func (suite *HandlersTestSuite) TestCreateSubscription_ValidationError() {
	verrs := apperrors.ValidationErrors{
		apperrors.NewFieldError("name", "Name is required"),
		apperrors.NewFieldError("paymentDay", "Payment day must be between 1 and 31"),
	}
	suite.subscriptions.On("CreateSubscription", mock.Anything, mock.Anything, testUserID).Return(nil, verrs).Once()

	w := suite.do(http.MethodPost, "/api/v1/subscriptions", map[string]any{"price": "5"})

	suite.Equal(http.StatusBadRequest, w.Code)
	var res handlers.ErrorResponse
	suite.decode(w, &res)
	suite.Equal("Validation failed", res.Error)
	suite.Len(res.Details, 2)
	suite.Equal("name", res.Details[0].Field)
	suite.Equal("Name is required", res.Details[0].Message)
}

func (suite *HandlersTestSuite) TestCreateSubscription_MalformedBody() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/subscriptions", bytes.NewBufferString("{not json"))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(testUserID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestGetSubscription_NotFound() {
	suite.subscriptions.On("GetSubscription", mock.Anything, "missing", testUserID).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/subscriptions/missing", nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.JSONEq(`{"error":"Subscription not found"}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestListSubscriptions_ParsesQuery() {
	usd := domain.USD
	disabled := false
	want := domain.SubscriptionQuery{
		Filter: domain.SubscriptionFilter{Currency: &usd, Disabled: &disabled},
		Sort:   domain.SortSpec{Field: domain.SortByPrice, Direction: domain.SortDesc},
		Page:   1,
		Limit:  1,
	}
	page := pagination.Paginate([]domain.Subscription{*sampleSubscription(), *sampleSubscription()}, 1, 1)
	suite.subscriptions.On("ListSubscriptions", mock.Anything, testUserID, want).Return(page, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/subscriptions?currency=usd&disabled=false&sort=price&direction=desc&limit=1", nil)

	suite.Equal(http.StatusOK, w.Code)
	var res dto.ListSubscriptionsResponse
	suite.decode(w, &res)
	suite.Len(res.Subscriptions, 1)
	suite.Equal(2, res.Total)
	suite.True(res.HasNext)
	suite.NotEmpty(res.NextToken)

	cursor, err := pagination.DecodeCursor(res.NextToken)
	suite.Require().NoError(err)
	suite.Equal(pagination.Cursor{Page: 2, Limit: 1, SortField: "price", Direction: "desc"}, cursor)
}

func (suite *HandlersTestSuite) TestListSubscriptions_InvalidSort() {
	w := suite.do(http.MethodGet, "/api/v1/subscriptions?sort=color&page=0", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	var res handlers.ErrorResponse
	suite.decode(w, &res)
	suite.Len(res.Details, 2)
}

func (suite *HandlersTestSuite) TestListUpcomingAndUrgent_Defaults() {
	suite.subscriptions.On("ListUpcoming", mock.Anything, testUserID, 7).Return([]domain.Subscription{*sampleSubscription()}, nil).Once()
	suite.subscriptions.On("ListUrgent", mock.Anything, testUserID, 3).Return([]domain.Subscription{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/subscriptions/upcoming", nil)
	suite.Equal(http.StatusOK, w.Code)
	var upcoming []dto.SubscriptionResponse
	suite.decode(w, &upcoming)
	suite.Len(upcoming, 1)

	w = suite.do(http.MethodGet, "/api/v1/subscriptions/urgent?days=3", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[]`, w.Body.String())

	w = suite.do(http.MethodGet, "/api/v1/subscriptions/urgent?days=-1", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestUpdateSubscription_PartialBody() {
	suite.subscriptions.On("UpdateSubscription", mock.Anything, "sub-1", mock.MatchedBy(func(r dto.UpdateSubscriptionRequest) bool {
		return r.Disabled != nil && *r.Disabled && r.Name == nil && r.Price == nil
	}), testUserID).Return(sampleSubscription(), nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/subscriptions/sub-1", map[string]any{"disabled": true})

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlersTestSuite) TestDeleteSubscription() {
	suite.subscriptions.On("DeleteSubscription", mock.Anything, "sub-1", testUserID).Return(nil).Once()
	suite.subscriptions.On("DeleteSubscription", mock.Anything, "gone", testUserID).Return(apperrors.ErrNotFound).Once()

	suite.Equal(http.StatusNoContent, suite.do(http.MethodDelete, "/api/v1/subscriptions/sub-1", nil).Code)
	suite.Equal(http.StatusNotFound, suite.do(http.MethodDelete, "/api/v1/subscriptions/gone", nil).Code)
}

func (suite *HandlersTestSuite) TestAdvanceSubscription() {
	advanced := sampleSubscription()
	advanced.NextOccurrence = advanced.NextOccurrence.AddDate(0, 1, 0)
	suite.subscriptions.On("AdvanceSubscription", mock.Anything, "sub-1", testUserID).Return(advanced, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/subscriptions/sub-1/advance", nil)

	suite.Equal(http.StatusOK, w.Code)
	var res dto.SubscriptionResponse
	suite.decode(w, &res)
	suite.True(res.NextPayment.Equal(advanced.NextOccurrence))
}

func (suite *HandlersTestSuite) TestRequiresToken() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/subscriptions", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

// --- Categories ---

func (suite *HandlersTestSuite) TestCreateCategory_Duplicate() {
	suite.categories.On("CreateCategory", mock.Anything, dto.CreateCategoryRequest{Name: "Music"}).
		Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.do(http.MethodPost, "/api/v1/categories", dto.CreateCategoryRequest{Name: "Music"})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlersTestSuite) TestListAndSeedCategories() {
	cats := []domain.Category{{CategoryID: "a", Name: "Entertainment"}, {CategoryID: "b", Name: "Utilities"}}
	suite.categories.On("ListCategories", mock.Anything).Return(cats, nil).Once()
	suite.categories.On("SeedDefaultCategories", mock.Anything).Return(cats[:1], nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/categories", nil)
	suite.Equal(http.StatusOK, w.Code)
	var listed []dto.CategoryResponse
	suite.decode(w, &listed)
	suite.Len(listed, 2)

	w = suite.do(http.MethodPost, "/api/v1/categories/defaults", nil)
	suite.Equal(http.StatusOK, w.Code)
	var seeded []dto.CategoryResponse
	suite.decode(w, &seeded)
	suite.Len(seeded, 1)
}

func (suite *HandlersTestSuite) TestDeleteCategory_NotFound() {
	suite.categories.On("DeleteCategory", mock.Anything, "nope").Return(apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodDelete, "/api/v1/categories/nope", nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.JSONEq(`{"error":"Category not found"}`, w.Body.String())
}

// --- Currencies and rates ---

func (suite *HandlersTestSuite) TestListCurrencies() {
	w := suite.do(http.MethodGet, "/api/v1/currencies", nil)

	suite.Equal(http.StatusOK, w.Code)
	var res []dto.CurrencyResponse
	suite.decode(w, &res)
	suite.Len(res, len(domain.SupportedCurrencies()))
	suite.Equal("THB", res[0].Code)
	suite.True(res[0].IsDefault)
}

func (suite *HandlersTestSuite) TestConvert() {
	suite.converter.On("Convert", mock.Anything, decimal.RequireFromString("10"), domain.USD, domain.THB).
		Return(decimal.RequireFromString("350")).Once()

	w := suite.do(http.MethodGet, "/api/v1/currencies/convert?amount=10&from=USD&to=THB", nil)

	suite.Equal(http.StatusOK, w.Code)
	var res dto.ConvertResponse
	suite.decode(w, &res)
	suite.True(res.Converted.Equal(decimal.NewFromInt(350)))
	suite.Equal("350.00 THB", res.Display)
}

func (suite *HandlersTestSuite) TestConvert_InvalidInput() {
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/api/v1/currencies/convert?amount=ten&from=USD", nil).Code)
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/api/v1/currencies/convert?amount=10&from=XXX", nil).Code)
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/api/v1/currencies/convert?from=USD", nil).Code)
}

func (suite *HandlersTestSuite) TestGetRates_ShowsTrace() {
	snap := domain.NewRateSnapshot(domain.USD, map[domain.CurrencyCode]decimal.Decimal{domain.THB: decimal.RequireFromString("35")}, time.Time{}, domain.RateSourceFallback)
	explanation := domain.RateExplanation{
		Snapshot: snap,
		Trace: []domain.RateLookup{
			{Strategy: domain.RateSourceCache, Outcome: domain.LookupExhausted},
			{Strategy: domain.RateSourceLive, Outcome: domain.LookupExhausted, Detail: "timeout"},
			{Strategy: domain.RateSourceStale, Outcome: domain.LookupExhausted},
			{Strategy: domain.RateSourceFallback, Outcome: domain.LookupResolved, Snapshot: snap},
		},
	}
	suite.converter.On("Explain", mock.Anything, domain.USD).Return(explanation).Once()

	w := suite.do(http.MethodGet, "/api/v1/rates/usd", nil)

	suite.Equal(http.StatusOK, w.Code)
	var res dto.RatesResponse
	suite.decode(w, &res)
	suite.Equal("USD", res.Base)
	suite.Equal(domain.RateSourceFallback, res.Source)
	suite.Nil(res.FetchedAt)
	suite.Len(res.Trace, 4)
	suite.Equal("timeout", res.Trace[1].Detail)
}

// --- Dashboard ---

func (suite *HandlersTestSuite) TestGetDashboard() {
	d := &domain.Dashboard{
		TotalsByCategory: map[string]decimal.Decimal{"Entertainment": decimal.NewFromInt(419)},
		TotalsByCurrency: map[domain.CurrencyCode]decimal.Decimal{domain.THB: decimal.NewFromInt(419)},
		MonthlyTotal:     domain.NewMoney(decimal.NewFromInt(12), domain.USD),
		YearlyTotal:      domain.NewMoney(decimal.NewFromInt(144), domain.USD),
		ActiveCount:      1,
		TotalCount:       1,
		Upcoming:         []domain.Subscription{*sampleSubscription()},
		Urgent:           []domain.Subscription{*sampleSubscription()},
		GeneratedAt:      time.Now(),
	}
	suite.dashboard.On("GetDashboard", mock.Anything, testUserID, domain.USD).Return(d, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/dashboard?currency=USD", nil)

	suite.Equal(http.StatusOK, w.Code)
	var res dto.DashboardResponse
	suite.decode(w, &res)
	suite.Equal("USD", res.Currency)
	suite.Equal("12.00 USD", res.MonthlyDisplay)
	suite.Equal("144.00 USD", res.YearlyDisplay)
	suite.Len(res.Upcoming, 1)
	suite.True(res.TotalsByCurrency["THB"].Equal(decimal.NewFromInt(419)))
}

func (suite *HandlersTestSuite) TestGetDashboard_UnsupportedCurrency() {
	w := suite.do(http.MethodGet, "/api/v1/dashboard?currency=ZZZ", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}
