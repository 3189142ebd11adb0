package domain

import "github.com/shopspring/decimal"

// Price limits applied at the validation boundary.
var (
	MinPriceExclusive = decimal.Zero
	MaxPrice          = decimal.NewFromInt(1_000_000)
)

// Money is an amount in a specific currency.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency CurrencyCode    `json:"currency"`
}

// NewMoney builds a Money value.
func NewMoney(amount decimal.Decimal, currency CurrencyCode) Money {
	return Money{Amount: amount, Currency: currency}
}

// IsValidPrice reports whether the amount satisfies 0 < amount <= MaxPrice.
func (m Money) IsValidPrice() bool {
	return m.Amount.GreaterThan(MinPriceExclusive) && m.Amount.LessThanOrEqual(MaxPrice)
}
