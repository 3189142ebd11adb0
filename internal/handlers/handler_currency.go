package handlers

import (
	"net/http"

	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/subscription_tracker/internal/core/ports/services"
	"github.com/SscSPs/subscription_tracker/internal/dto"
	"github.com/SscSPs/subscription_tracker/internal/validation"
	"github.com/gin-gonic/gin"
)

// currencyHandler serves the supported currency set, conversions and rate diagnostics.
type currencyHandler struct {
	converter portssvc.CurrencyConverterSvc
}

// RegisterCurrencyRoutes registers routes related to currencies and rates.
func RegisterCurrencyRoutes(rg *gin.RouterGroup, converter portssvc.CurrencyConverterSvc) {
	h := &currencyHandler{converter: converter}

	currencies := rg.Group("/currencies")
	{
		currencies.GET("", h.listCurrencies)
		currencies.GET("/convert", h.convert)
		currencies.GET("/format", h.format)
	}
	rg.GET("/rates/:base", h.getRates)
}

// listCurrencies godoc
// @Summary List supported currencies
// @Tags currencies
// @Produce  json
// @Success 200 {array} dto.CurrencyResponse
// @Security BearerAuth
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToListCurrencyResponse(domain.SupportedCurrencies(), h.converter.DefaultCurrency()))
}

// convert godoc
// @Summary Convert an amount
// @Description Never fails on rate outages: degraded rates or the unchanged amount are returned
// @Tags currencies
// @Produce  json
// @Param   amount query string true "Amount"
// @Param   from query string true "Source currency"
// @Param   to query string false "Target currency (default currency when empty)"
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {object} handlers.ErrorResponse "Validation failed"
// @Security BearerAuth
// @Router /currencies/convert [get]
func (h *currencyHandler) convert(c *gin.Context) {
	var params dto.ConvertParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	amount, err := validation.Amount(params.Amount)
	if err != nil {
		respondError(c, err, "", "Failed to convert amount")
		return
	}
	from, err := validation.Currency("from", params.From, h.converter.DefaultCurrency())
	if err != nil {
		respondError(c, err, "", "Failed to convert amount")
		return
	}
	to, err := validation.Currency("to", params.To, h.converter.DefaultCurrency())
	if err != nil {
		respondError(c, err, "", "Failed to convert amount")
		return
	}

	converted := h.converter.Convert(c.Request.Context(), amount, from, to)
	c.JSON(http.StatusOK, dto.ConvertResponse{
		Amount:    amount,
		From:      from.String(),
		To:        to.String(),
		Converted: converted,
		Display:   h.converter.FormatDisplay(converted, to),
	})
}

// format godoc
// @Summary Format an amount for display
// @Tags currencies
// @Produce  json
// @Param   amount query string true "Amount"
// @Param   currency query string true "Currency code"
// @Success 200 {object} dto.FormatResponse
// @Failure 400 {object} handlers.ErrorResponse "Validation failed"
// @Security BearerAuth
// @Router /currencies/format [get]
func (h *currencyHandler) format(c *gin.Context) {
	var params dto.FormatParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	amount, err := validation.Amount(params.Amount)
	if err != nil {
		respondError(c, err, "", "Failed to format amount")
		return
	}
	// Unsupported codes are rendered with the plain fallback.
	c.JSON(http.StatusOK, dto.FormatResponse{Display: h.converter.FormatDisplay(amount, domain.CurrencyCode(params.Currency))})
}

// getRates godoc
// @Summary Show the resolved rate snapshot for a base currency
// @Description Includes every strategy tried, in order
// @Tags currencies
// @Produce  json
// @Param   base path string true "Base currency"
// @Success 200 {object} dto.RatesResponse
// @Failure 400 {object} handlers.ErrorResponse "Validation failed"
// @Security BearerAuth
// @Router /rates/{base} [get]
func (h *currencyHandler) getRates(c *gin.Context) {
	base, err := validation.Currency("base", c.Param("base"), h.converter.DefaultCurrency())
	if err != nil {
		respondError(c, err, "", "Failed to resolve rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToRatesResponse(h.converter.Explain(c.Request.Context(), base)))
}
