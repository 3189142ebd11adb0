package domain

import (
	"fmt"
	"strings"
)

// CurrencyCode is an ISO-4217 code from the supported set.
// Values are only produced by ParseCurrencyCode or the constants below.
type CurrencyCode string

const (
	THB CurrencyCode = "THB" // Thai Baht (default)
	USD CurrencyCode = "USD"
	EUR CurrencyCode = "EUR"
	GBP CurrencyCode = "GBP"
	JPY CurrencyCode = "JPY"
	AUD CurrencyCode = "AUD"
	CAD CurrencyCode = "CAD"
	CHF CurrencyCode = "CHF"
	CNY CurrencyCode = "CNY"
	SGD CurrencyCode = "SGD"
	HKD CurrencyCode = "HKD"
	KRW CurrencyCode = "KRW"
	MYR CurrencyCode = "MYR"
	PHP CurrencyCode = "PHP"
	VND CurrencyCode = "VND"
	IDR CurrencyCode = "IDR"
	INR CurrencyCode = "INR"
)

// DefaultCurrency is used when a subscription or a total does not name one.
const DefaultCurrency = THB

// supportedCurrencies keeps display order (default first).
var supportedCurrencies = []CurrencyCode{
	THB, USD, EUR, GBP, JPY, AUD, CAD, CHF, CNY, SGD, HKD, KRW, MYR, PHP, VND, IDR, INR,
}

var currencyNames = map[CurrencyCode]string{
	THB: "Thai Baht",
	USD: "US Dollar",
	EUR: "Euro",
	GBP: "British Pound",
	JPY: "Japanese Yen",
	AUD: "Australian Dollar",
	CAD: "Canadian Dollar",
	CHF: "Swiss Franc",
	CNY: "Chinese Yuan",
	SGD: "Singapore Dollar",
	HKD: "Hong Kong Dollar",
	KRW: "South Korean Won",
	MYR: "Malaysian Ringgit",
	PHP: "Philippine Peso",
	VND: "Vietnamese Dong",
	IDR: "Indonesian Rupiah",
	INR: "Indian Rupee",
}

// SupportedCurrencies returns a copy of the supported currency list.
func SupportedCurrencies() []CurrencyCode {
	out := make([]CurrencyCode, len(supportedCurrencies))
	copy(out, supportedCurrencies)
	return out
}

// IsSupported reports whether the code belongs to the supported set.
func (c CurrencyCode) IsSupported() bool {
	_, ok := currencyNames[c]
	return ok
}

// Name returns the English display name, or the code itself when unknown.
func (c CurrencyCode) Name() string {
	if name, ok := currencyNames[c]; ok {
		return name
	}
	return string(c)
}

func (c CurrencyCode) String() string {
	return string(c)
}

// ParseCurrencyCode normalizes s and checks it against the supported set.
func ParseCurrencyCode(s string) (CurrencyCode, error) {
	code := CurrencyCode(strings.ToUpper(strings.TrimSpace(s)))
	if !code.IsSupported() {
		return "", fmt.Errorf("unsupported currency code %q", s)
	}
	return code, nil
}

// SupportedCurrencyList renders the supported set for error messages.
func SupportedCurrencyList() string {
	codes := make([]string, len(supportedCurrencies))
	for i, c := range supportedCurrencies {
		codes[i] = string(c)
	}
	return strings.Join(codes, ", ")
}
