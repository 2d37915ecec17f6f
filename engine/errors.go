/*
errors.go - Centralized error types for the compensation engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Every error is local to one calculation call; nothing here is fatal and
  nothing is retried by the engine.

ERROR CATEGORIES:
  1. Precondition errors - Invalid rate, package, service period, amount
  2. Partial-data errors - A severance branch could not be computed
  3. Currency errors - Mismatched or unsupported currency pairs
  4. Collaborator errors - Missing policy or exchange rate

USAGE:
  Structured errors unwrap to a sentinel, so callers can branch with either
  errors.Is or errors.As:

    if errors.Is(err, engine.ErrInvalidRate) {
        // re-fetch the rate
    }

    var partial *engine.InsufficientDataError
    if errors.As(err, &partial) { ... }
*/
package engine

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidRate is returned when an exchange rate is zero or negative.
	ErrInvalidRate = errors.New("invalid exchange rate")

	// ErrInvalidPackage is returned when a compensation package cannot be split.
	ErrInvalidPackage = errors.New("invalid compensation package")

	// ErrInvalidServicePeriod is returned when termination precedes hire.
	ErrInvalidServicePeriod = errors.New("invalid service period: termination before hire")

	// ErrInsufficientData is returned when a required input is missing.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrNegativeAmount is returned when an amount must be non-negative.
	ErrNegativeAmount = errors.New("negative amount")

	// ErrCurrencyMismatch is returned when an amount is in the wrong currency.
	ErrCurrencyMismatch = errors.New("currency mismatch")

	// ErrUnsupportedConversion is returned when a rate cannot convert between
	// the requested currencies.
	ErrUnsupportedConversion = errors.New("unsupported currency conversion")

	// ErrPolicyNotFound is returned when a company has no configured policy.
	ErrPolicyNotFound = errors.New("company policy not found")

	// ErrRateNotFound is returned when no exchange rate is published on or
	// before the requested date.
	ErrRateNotFound = errors.New("exchange rate not found")

	// ErrHolidayNotFound is returned when deleting an unknown holiday.
	ErrHolidayNotFound = errors.New("holiday not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

type InvalidRateError struct {
	Rate decimal.Decimal
	AsOf Date
}

func (e *InvalidRateError) Error() string {
	if e.AsOf.IsZero() {
		return fmt.Sprintf("invalid exchange rate %s: must be positive", e.Rate)
	}
	return fmt.Sprintf("invalid exchange rate %s as of %s: must be positive", e.Rate, e.AsOf)
}

func (e *InvalidRateError) Unwrap() error { return ErrInvalidRate }

type InvalidPackageError struct {
	Total  decimal.Decimal
	Reason string
}

func (e *InvalidPackageError) Error() string {
	return fmt.Sprintf("invalid compensation package (total %s): %s", e.Total, e.Reason)
}

func (e *InvalidPackageError) Unwrap() error { return ErrInvalidPackage }

type InvalidServicePeriodError struct {
	Hire        Date
	Termination Date
}

func (e *InvalidServicePeriodError) Error() string {
	return fmt.Sprintf("invalid service period: termination %s is before hire %s", e.Termination, e.Hire)
}

func (e *InvalidServicePeriodError) Unwrap() error { return ErrInvalidServicePeriod }

// InsufficientDataError names the missing input and the branch it blocks.
// The accompanying result, if any, is partial.
type InsufficientDataError struct {
	Field  string
	Branch string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: %s is required for the %s branch", e.Field, e.Branch)
}

func (e *InsufficientDataError) Unwrap() error { return ErrInsufficientData }

type NegativeAmountError struct {
	Field  string
	Amount Amount
}

func (e *NegativeAmountError) Error() string {
	return fmt.Sprintf("%s must not be negative, got %s", e.Field, e.Amount)
}

func (e *NegativeAmountError) Unwrap() error { return ErrNegativeAmount }

type CurrencyMismatchError struct {
	Field    string
	Expected Currency
	Got      Currency
}

func (e *CurrencyMismatchError) Error() string {
	return fmt.Sprintf("%s must be in %s, got %s", e.Field, e.Expected, e.Got)
}

func (e *CurrencyMismatchError) Unwrap() error { return ErrCurrencyMismatch }

type UnsupportedConversionError struct {
	From Currency
	To   Currency
	Rate ExchangeRate
}

func (e *UnsupportedConversionError) Error() string {
	return fmt.Sprintf("cannot convert %s to %s with a %s/%s rate", e.From, e.To, e.Rate.Quote, e.Rate.Base)
}

func (e *UnsupportedConversionError) Unwrap() error { return ErrUnsupportedConversion }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidRate) ||
		errors.Is(err, ErrInvalidPackage) ||
		errors.Is(err, ErrInvalidServicePeriod) ||
		errors.Is(err, ErrInsufficientData) ||
		errors.Is(err, ErrNegativeAmount) ||
		errors.Is(err, ErrCurrencyMismatch) ||
		errors.Is(err, ErrUnsupportedConversion)
}

// IsNotFound returns true if a collaborator had nothing to return.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPolicyNotFound) ||
		errors.Is(err, ErrRateNotFound) ||
		errors.Is(err, ErrHolidayNotFound)
}
