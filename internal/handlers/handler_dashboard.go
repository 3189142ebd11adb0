package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/subscription_tracker/internal/core/ports/services"
	"github.com/SscSPs/subscription_tracker/internal/dto"
	"github.com/SscSPs/subscription_tracker/internal/validation"
	"github.com/gin-gonic/gin"
)

type dashboardHandler struct {
	dashboardService portssvc.DashboardSvc
	converter        portssvc.CurrencyConverterSvc
}

// RegisterDashboardRoutes registers the dashboard route.
func RegisterDashboardRoutes(rg *gin.RouterGroup, dashboardService portssvc.DashboardSvc, converter portssvc.CurrencyConverterSvc) {
	h := &dashboardHandler{dashboardService: dashboardService, converter: converter}
	rg.GET("/dashboard", h.getDashboard)
}

// getDashboard godoc
// @Summary Get the subscription dashboard
// @Description Totals by category and currency, converted monthly and yearly totals, counts, upcoming and urgent payments
// @Tags dashboard
// @Produce  json
// @Param   currency query string false "Target currency (default currency when empty)"
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} handlers.ErrorResponse "Validation failed"
// @Security BearerAuth
// @Router /dashboard [get]
func (h *dashboardHandler) getDashboard(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	target, err := validation.Currency("currency", c.Query("currency"), h.converter.DefaultCurrency())
	if err != nil {
		respondError(c, err, "", "Failed to build dashboard")
		return
	}

	d, err := h.dashboardService.GetDashboard(c.Request.Context(), userID, target)
	if err != nil {
		respondError(c, err, "Dashboard not found", "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, dto.ToDashboardResponse(d, h.converter.FormatDisplay))
}
