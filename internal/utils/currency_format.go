package utils

import (
	"fmt"

	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// displayLocale is the locale every amount is rendered in.
var displayLocale = language.AmericanEnglish

// symbolAfterAmount lists codes whose narrow symbol reads better as a suffix.
var symbolAfterAmount = map[domain.CurrencyCode]bool{
	domain.CHF: true,
	domain.MYR: true,
	domain.IDR: true,
}

// FormatCurrencyDisplay renders amount with the currency symbol and the
// currency's standard number of decimals, e.g. "$1,234.50" or "฿350.00".
// Codes unknown to the ISO table fall back to "<amount to 2 dp> <code>".
func FormatCurrencyDisplay(amount decimal.Decimal, code domain.CurrencyCode) string {
	unit, err := currency.ParseISO(string(code))
	if err != nil {
		return FormatFallback(amount, code)
	}

	scale, _ := currency.Standard.Rounding(unit)
	p := message.NewPrinter(displayLocale)
	formatted := p.Sprint(number.Decimal(
		amount.Abs().Round(int32(scale)).InexactFloat64(),
		number.MinFractionDigits(scale),
		number.MaxFractionDigits(scale),
	))
	symbol := p.Sprint(currency.NarrowSymbol(unit))

	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}
	if symbolAfterAmount[code] {
		return fmt.Sprintf("%s%s %s", sign, formatted, symbol)
	}
	return sign + symbol + formatted
}

// FormatFallback is the plain rendering used when no locale data applies.
func FormatFallback(amount decimal.Decimal, code domain.CurrencyCode) string {
	return fmt.Sprintf("%s %s", amount.StringFixed(2), code)
}

// FormatWithPrecision formats an amount with the given precision
// This is a convenience function when you only have the precision value
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).String()
}
