package dto

import (
	"time"

	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencyResponse describes one supported currency.
type CurrencyResponse struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	IsDefault bool   `json:"isDefault"`
}

// ToListCurrencyResponse lists the supported currencies in their canonical order.
func ToListCurrencyResponse(codes []domain.CurrencyCode, defaultCode domain.CurrencyCode) []CurrencyResponse {
	res := make([]CurrencyResponse, len(codes))
	for i, c := range codes {
		res[i] = CurrencyResponse{Code: c.String(), Name: c.Name(), IsDefault: c == defaultCode}
	}
	return res
}

// ConvertParams are the query parameters of the convert endpoint.
type ConvertParams struct {
	Amount string `form:"amount" binding:"required"`
	From   string `form:"from" binding:"required"`
	To     string `form:"to"`
}

// ConvertResponse is the result of a conversion.
type ConvertResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Converted decimal.Decimal `json:"converted"`
	Display   string          `json:"display"`
}

// FormatParams are the query parameters of the format endpoint.
type FormatParams struct {
	Amount   string `form:"amount" binding:"required"`
	Currency string `form:"currency" binding:"required"`
}

// FormatResponse is a rendered amount.
type FormatResponse struct {
	Display string `json:"display"`
}

// RatesResponse is a rate snapshot with the strategy trace that produced it.
type RatesResponse struct {
	Base      string                     `json:"base"`
	Source    domain.RateSource          `json:"source"`
	FetchedAt *time.Time                 `json:"fetchedAt,omitempty"`
	Rates     map[string]decimal.Decimal `json:"rates"`
	Trace     []domain.RateLookup        `json:"trace"`
}

// ToRatesResponse converts a rate explanation.
func ToRatesResponse(e domain.RateExplanation) RatesResponse {
	rates := make(map[string]decimal.Decimal, len(e.Snapshot.Rates))
	for code, r := range e.Snapshot.Rates {
		rates[code.String()] = r
	}
	res := RatesResponse{
		Base:   e.Snapshot.Base.String(),
		Source: e.Snapshot.Source,
		Rates:  rates,
		Trace:  e.Trace,
	}
	if !e.Snapshot.FetchedAt.IsZero() {
		t := e.Snapshot.FetchedAt
		res.FetchedAt = &t
	}
	return res
}
