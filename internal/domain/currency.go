package domain

import (
	"github.com/shopspring/decimal"
)

// CurrencyCode identifies one of the supported currencies.
type CurrencyCode string

const (
	RSD CurrencyCode = "RSD"
	EUR CurrencyCode = "EUR"
	USD CurrencyCode = "USD"
)

// ReferenceCurrency is the currency every rate is expressed against.
// Its rate is always exactly 1.
const ReferenceCurrency = EUR

// DefaultBaseCurrency is the display currency used until the user picks one.
const DefaultBaseCurrency = RSD

var supportedCurrencies = map[CurrencyCode]bool{
	RSD: true,
	EUR: true,
	USD: true,
}

// IsValid checks if the code is a supported currency.
func (c CurrencyCode) IsValid() bool {
	return supportedCurrencies[c]
}

// SupportedCurrencies returns the closed set of currency codes.
func SupportedCurrencies() []CurrencyCode {
	return []CurrencyCode{RSD, EUR, USD}
}

// RateTable maps currency codes to their value relative to ReferenceCurrency.
type RateTable map[CurrencyCode]decimal.Decimal

var one = decimal.NewFromInt(1)

// DefaultRates returns the rate table used before the user saves their own.
func DefaultRates() RateTable {
	return RateTable{
		EUR: decimal.NewFromInt(1),
		USD: decimal.RequireFromString("1.08"),
		RSD: decimal.RequireFromString("117.2"),
	}
}

// Validate checks that every rate is a positive number for a supported
// currency and that the reference currency is pinned to 1.
func (rt RateTable) Validate() error {
	ref, ok := rt[ReferenceCurrency]
	if !ok || !ref.Equal(one) {
		return ErrReferenceRateNotOne
	}

	for code, rate := range rt {
		if !code.IsValid() {
			return ErrInvalidCurrency
		}
		if !rate.IsPositive() {
			return ErrNonPositiveRate
		}
	}

	return nil
}

// Convert converts amount between two currencies through the reference
// currency. This is display math, not ledger math: a missing or non-positive
// rate degrades to returning the amount unchanged, and a negative amount is
// treated as zero.
func (rt RateTable) Convert(amount decimal.Decimal, from, to CurrencyCode) decimal.Decimal {
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	if from == to {
		return amount
	}

	rateFrom, okFrom := rt[from]
	rateTo, okTo := rt[to]
	if !okFrom || !okTo || !rateFrom.IsPositive() || !rateTo.IsPositive() {
		return amount
	}

	return amount.Div(rateFrom).Mul(rateTo)
}
