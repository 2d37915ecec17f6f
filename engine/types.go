/*
Package engine provides the core value types of the compensation engine.

PURPOSE:
  This package contains the jurisdiction-neutral building blocks shared by
  every calculation: money amounts with a currency, exchange rates, calendar
  dates, holiday sets and the business-day calendar. Domain packages
  (vacation, payroll, severance, currency) compute on top of these types and
  never on raw floats or raw time.Time values.

KEY CONCEPTS IN THIS FILE (types.go):
  - Amount: A decimal quantity with a currency (e.g., 500 USD, 30000 VES)
  - LockedAmount: A local-currency amount that must never be converted
  - Presentable: Anything that can be shown to a user in some currency
  - ExchangeRate: Point-in-time rate, local units per reference unit

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal to avoid floating-point drift
  2. Purity: No I/O, no shared mutable state; all inputs passed by value
  3. Type Safety: Locked deductions are a separate type so converters
     cannot accept them
  4. Cents: Money leaves a component rounded to 2 places

USAGE:
  total := engine.MustAmount("500", engine.CurrencyUSD)
  rate := engine.ExchangeRate{
      Base:  engine.CurrencyUSD,
      Quote: engine.CurrencyVES,
      Rate:  decimal.NewFromInt(60),
  }
  local := total.Mul(rate.Rate).In(rate.Quote) // 30000 VES

SEE ALSO:
  - time.go: Dates, holidays and the business calendar
  - errors.go: Typed errors for every precondition violation
  - policy.go: Company policy (split mode, rates, meal benefit)
*/
package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CURRENCY
// =============================================================================

type Currency string

const (
	CurrencyVES Currency = "VES"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// Jurisdiction defaults. Statutory deductions are always expressed in
// LocalCurrency; packages are contracted in ReferenceCurrency.
const (
	LocalCurrency     = CurrencyVES
	ReferenceCurrency = CurrencyUSD
)

// CentPlaces is the number of decimal places money is rounded to.
const CentPlaces int32 = 2

// =============================================================================
// AMOUNT - Decimal quantity with currency
// =============================================================================

type Amount struct {
	Value    decimal.Decimal
	Currency Currency
}

func NewAmount(value float64, c Currency) Amount {
	return Amount{Value: decimal.NewFromFloat(value), Currency: c}
}

func NewAmountFromInt(value int64, c Currency) Amount {
	return Amount{Value: decimal.NewFromInt(value), Currency: c}
}

func NewAmountFromDecimal(value decimal.Decimal, c Currency) Amount {
	return Amount{Value: value, Currency: c}
}

// MustAmount parses s as a decimal. It panics on malformed input and is
// meant for constants and tests.
func MustAmount(s string, c Currency) Amount {
	return Amount{Value: MustParseDecimal(s), Currency: c}
}

func MustParseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(fmt.Sprintf("engine: invalid decimal %q: %v", s, err))
	}
	return d
}

func ZeroAmount(c Currency) Amount { return Amount{Value: decimal.Zero, Currency: c} }

func (a Amount) Zero() Amount                 { return Amount{Value: decimal.Zero, Currency: a.Currency} }
func (a Amount) Add(b Amount) Amount          { return Amount{Value: a.Value.Add(b.Value), Currency: a.Currency} }
func (a Amount) Sub(b Amount) Amount          { return Amount{Value: a.Value.Sub(b.Value), Currency: a.Currency} }
func (a Amount) Mul(s decimal.Decimal) Amount { return Amount{Value: a.Value.Mul(s), Currency: a.Currency} }
func (a Amount) Div(s decimal.Decimal) Amount { return Amount{Value: a.Value.Div(s), Currency: a.Currency} }
func (a Amount) Neg() Amount                  { return Amount{Value: a.Value.Neg(), Currency: a.Currency} }
func (a Amount) IsNegative() bool             { return a.Value.IsNegative() }
func (a Amount) IsZero() bool                 { return a.Value.IsZero() }
func (a Amount) IsPositive() bool             { return a.Value.IsPositive() }
func (a Amount) GreaterThan(b Amount) bool    { return a.Value.GreaterThan(b.Value) }
func (a Amount) GreaterThanOrEqual(b Amount) bool {
	return a.Value.GreaterThanOrEqual(b.Value)
}
func (a Amount) LessThan(b Amount) bool { return a.Value.LessThan(b.Value) }
func (a Amount) Equal(b Amount) bool    { return a.Currency == b.Currency && a.Value.Equal(b.Value) }

func (a Amount) Min(b Amount) Amount {
	if a.LessThan(b) {
		return a
	}
	return b
}

func (a Amount) Max(b Amount) Amount {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Round rounds to cents, half away from zero.
func (a Amount) Round() Amount {
	return Amount{Value: a.Value.Round(CentPlaces), Currency: a.Currency}
}

// In relabels the amount with another currency without touching the value.
// Only conversion code should call it.
func (a Amount) In(c Currency) Amount { return Amount{Value: a.Value, Currency: c} }

func (a Amount) String() string {
	return a.Value.StringFixed(CentPlaces) + " " + string(a.Currency)
}

// =============================================================================
// PRESENTABLE - What the currency presenter accepts
// =============================================================================

// Presentable is a monetary value that may be shown in another currency.
type Presentable interface {
	Money() Amount
	CurrencyLocked() bool
}

func (a Amount) Money() Amount        { return a }
func (a Amount) CurrencyLocked() bool { return false }

// LockedAmount is a local-currency amount that must be presented in the
// currency it was computed in. Statutory deductions are LockedAmounts.
//
// It deliberately exposes no conversion and is not an Amount, so
// currency.Convert cannot be called with one.
type LockedAmount struct {
	amount Amount
}

// Lock tags a as local-currency-locked.
func Lock(a Amount) LockedAmount { return LockedAmount{amount: a} }

func (l LockedAmount) Money() Amount        { return l.amount }
func (l LockedAmount) CurrencyLocked() bool { return true }
func (l LockedAmount) Currency() Currency   { return l.amount.Currency }
func (l LockedAmount) Value() decimal.Decimal {
	return l.amount.Value
}
func (l LockedAmount) String() string { return l.amount.String() }

// Compile-time checks
var (
	_ Presentable = Amount{}
	_ Presentable = LockedAmount{}
)

// =============================================================================
// EXCHANGE RATE
// =============================================================================

// ExchangeRate is a point-in-time rate expressed as Quote units per one Base
// unit (e.g., 60 VES per USD). It is owned by a rate provider and never
// cached by the engine.
type ExchangeRate struct {
	AsOf  Date
	Base  Currency
	Quote Currency
	Rate  decimal.Decimal
}

// NewExchangeRate builds a reference→local rate.
func NewExchangeRate(asOf Date, rate decimal.Decimal) ExchangeRate {
	return ExchangeRate{AsOf: asOf, Base: ReferenceCurrency, Quote: LocalCurrency, Rate: rate}
}

// Validate returns an *InvalidRateError when the rate is not strictly positive.
func (r ExchangeRate) Validate() error {
	if !r.Rate.IsPositive() {
		return &InvalidRateError{Rate: r.Rate, AsOf: r.AsOf}
	}
	return nil
}

func (r ExchangeRate) String() string {
	return fmt.Sprintf("%s %s/%s @ %s", r.Rate.String(), r.Quote, r.Base, r.AsOf)
}
