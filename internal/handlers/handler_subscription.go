package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/subscription_tracker/internal/core/ports/services"
	"github.com/SscSPs/subscription_tracker/internal/dto"
	"github.com/SscSPs/subscription_tracker/internal/middleware"
	"github.com/SscSPs/subscription_tracker/internal/validation"
	"github.com/gin-gonic/gin"
)

// ListDefaults holds the fallbacks of listing query parameters.
type ListDefaults struct {
	PageLimit    int
	UpcomingDays int
	UrgentDays   int
}

// DefaultListDefaults is used when the caller does not configure listings.
var DefaultListDefaults = ListDefaults{PageLimit: 20, UpcomingDays: 7, UrgentDays: 7}

// subscriptionHandler handles HTTP requests related to subscriptions.
type subscriptionHandler struct {
	subscriptionService portssvc.SubscriptionSvcFacade
	converter           portssvc.CurrencyConverterSvc
	defaults            ListDefaults
	now                 func() time.Time
}

func newSubscriptionHandler(ss portssvc.SubscriptionSvcFacade, cs portssvc.CurrencyConverterSvc, defaults ListDefaults) *subscriptionHandler {
	return &subscriptionHandler{
		subscriptionService: ss,
		converter:           cs,
		defaults:            defaults,
		now:                 time.Now,
	}
}

// RegisterSubscriptionRoutes registers routes related to subscriptions.
func RegisterSubscriptionRoutes(rg *gin.RouterGroup, subscriptionService portssvc.SubscriptionSvcFacade, converter portssvc.CurrencyConverterSvc, defaults ListDefaults) {
	h := newSubscriptionHandler(subscriptionService, converter, defaults)

	subs := rg.Group("/subscriptions")
	{
		subs.GET("", h.listSubscriptions)
		subs.POST("", h.createSubscription)
		subs.GET("/upcoming", h.listUpcoming)
		subs.GET("/urgent", h.listUrgent)
		subs.GET("/:subscriptionID", h.getSubscription)
		subs.PUT("/:subscriptionID", h.updateSubscription)
		subs.DELETE("/:subscriptionID", h.deleteSubscription)
		subs.POST("/:subscriptionID/advance", h.advanceSubscription)
	}
}

func (h *subscriptionHandler) formatter() dto.Formatter {
	if h.converter == nil {
		return nil
	}
	return h.converter.FormatDisplay
}

// createSubscription godoc
// @Summary Create a subscription
// @Description Adds a recurring subscription for the authenticated user
// @Tags subscriptions
// @Accept  json
// @Produce  json
// @Param   subscription body dto.CreateSubscriptionRequest true "Subscription details"
// @Success 201 {object} dto.SubscriptionResponse
// @Failure 400 {object} handlers.ErrorResponse "Validation failed"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Failed to create subscription"
// @Security BearerAuth
// @Router /subscriptions [post]
func (h *subscriptionHandler) createSubscription(c *gin.Context) {
	var req dto.CreateSubscriptionRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.CreateSubscription(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Subscription not found", "Failed to create subscription")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Subscription created", slog.String("subscription_id", sub.SubscriptionID))
	c.JSON(http.StatusCreated, dto.ToSubscriptionResponse(sub, h.now(), h.formatter()))
}

// getSubscription godoc
// @Summary Get a subscription
// @Tags subscriptions
// @Produce  json
// @Param   subscriptionID path string true "Subscription ID"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 404 {object} handlers.ErrorResponse "Subscription not found"
// @Security BearerAuth
// @Router /subscriptions/{subscriptionID} [get]
func (h *subscriptionHandler) getSubscription(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	sub, err := h.subscriptionService.GetSubscription(c.Request.Context(), c.Param("subscriptionID"), userID)
	if err != nil {
		respondError(c, err, "Subscription not found", "Failed to retrieve subscription")
		return
	}
	c.JSON(http.StatusOK, dto.ToSubscriptionResponse(sub, h.now(), h.formatter()))
}

// listSubscriptions godoc
// @Summary List subscriptions
// @Description Filters, sorts and paginates the user's subscriptions. nextToken replaces page, limit, sort and direction.
// @Tags subscriptions
// @Produce  json
// @Param   categoryID query string false "Category ID"
// @Param   disabled query bool false "Disabled flag"
// @Param   currency query string false "Currency code"
// @Param   paidBy query string false "Paid by"
// @Param   sort query string false "name | price | nextPayment | createdAt"
// @Param   direction query string false "asc | desc"
// @Param   page query int false "Page (1-based)"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Token from a previous page"
// @Success 200 {object} dto.ListSubscriptionsResponse
// @Failure 400 {object} handlers.ErrorResponse "Validation failed"
// @Security BearerAuth
// @Router /subscriptions [get]
func (h *subscriptionHandler) listSubscriptions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListSubscriptionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	query, err := validation.ListParams(params, h.defaults.PageLimit)
	if err != nil {
		respondError(c, err, "", "Failed to list subscriptions")
		return
	}

	page, err := h.subscriptionService.ListSubscriptions(c.Request.Context(), userID, query)
	if err != nil {
		respondError(c, err, "Subscription not found", "Failed to list subscriptions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListSubscriptionsResponse(page, query.Sort, h.now(), h.formatter()))
}

// listUpcoming godoc
// @Summary List upcoming payments
// @Tags subscriptions
// @Produce  json
// @Param   days query int false "Horizon in days"
// @Success 200 {array} dto.SubscriptionResponse
// @Security BearerAuth
// @Router /subscriptions/upcoming [get]
func (h *subscriptionHandler) listUpcoming(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	days, err := validation.DayCount(c.Query("days"), h.defaults.UpcomingDays)
	if err != nil {
		respondError(c, err, "", "Failed to list upcoming subscriptions")
		return
	}
	subs, err := h.subscriptionService.ListUpcoming(c.Request.Context(), userID, days)
	if err != nil {
		respondError(c, err, "Subscription not found", "Failed to list upcoming subscriptions")
		return
	}
	c.JSON(http.StatusOK, dto.ToSubscriptionResponses(subs, h.now(), h.formatter()))
}

// listUrgent godoc
// @Summary List urgent payments
// @Tags subscriptions
// @Produce  json
// @Param   days query int false "Urgency threshold in days"
// @Success 200 {array} dto.SubscriptionResponse
// @Security BearerAuth
// @Router /subscriptions/urgent [get]
func (h *subscriptionHandler) listUrgent(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	days, err := validation.DayCount(c.Query("days"), h.defaults.UrgentDays)
	if err != nil {
		respondError(c, err, "", "Failed to list urgent subscriptions")
		return
	}
	subs, err := h.subscriptionService.ListUrgent(c.Request.Context(), userID, days)
	if err != nil {
		respondError(c, err, "Subscription not found", "Failed to list urgent subscriptions")
		return
	}
	c.JSON(http.StatusOK, dto.ToSubscriptionResponses(subs, h.now(), h.formatter()))
}

// updateSubscription godoc
// @Summary Update a subscription
// @Description Applies only the provided fields
// @Tags subscriptions
// @Accept  json
// @Produce  json
// @Param   subscriptionID path string true "Subscription ID"
// @Param   subscription body dto.UpdateSubscriptionRequest true "Fields to update"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 400 {object} handlers.ErrorResponse "Validation failed"
// @Failure 404 {object} handlers.ErrorResponse "Subscription not found"
// @Security BearerAuth
// @Router /subscriptions/{subscriptionID} [put]
func (h *subscriptionHandler) updateSubscription(c *gin.Context) {
	var req dto.UpdateSubscriptionRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	sub, err := h.subscriptionService.UpdateSubscription(c.Request.Context(), c.Param("subscriptionID"), req, userID)
	if err != nil {
		respondError(c, err, "Subscription not found", "Failed to update subscription")
		return
	}
	c.JSON(http.StatusOK, dto.ToSubscriptionResponse(sub, h.now(), h.formatter()))
}

// deleteSubscription godoc
// @Summary Delete a subscription
// @Tags subscriptions
// @Param   subscriptionID path string true "Subscription ID"
// @Success 204 "No Content"
// @Failure 404 {object} handlers.ErrorResponse "Subscription not found"
// @Security BearerAuth
// @Router /subscriptions/{subscriptionID} [delete]
func (h *subscriptionHandler) deleteSubscription(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	subscriptionID := c.Param("subscriptionID")
	if err := h.subscriptionService.DeleteSubscription(c.Request.Context(), subscriptionID, userID); err != nil {
		respondError(c, err, "Subscription not found", "Failed to delete subscription")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Subscription deleted", slog.String("subscription_id", subscriptionID))
	c.Status(http.StatusNoContent)
}

// advanceSubscription godoc
// @Summary Advance the next payment date
// @Description Moves the next payment one cadence step forward
// @Tags subscriptions
// @Produce  json
// @Param   subscriptionID path string true "Subscription ID"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 404 {object} handlers.ErrorResponse "Subscription not found"
// @Security BearerAuth
// @Router /subscriptions/{subscriptionID}/advance [post]
func (h *subscriptionHandler) advanceSubscription(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	sub, err := h.subscriptionService.AdvanceSubscription(c.Request.Context(), c.Param("subscriptionID"), userID)
	if err != nil {
		respondError(c, err, "Subscription not found", "Failed to advance subscription")
		return
	}
	c.JSON(http.StatusOK, dto.ToSubscriptionResponse(sub, h.now(), h.formatter()))
}
