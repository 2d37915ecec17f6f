package engine

import (
	"context"
	"fmt"
)

// =============================================================================
// COLLABORATORS - Data the engine consumes but never owns
// =============================================================================

// HolidayProvider publishes non-working days.
type HolidayProvider interface {
	// Holidays returns the company-specific and national holidays of a year.
	// Recurring holidays are returned already moved to that year.
	Holidays(ctx context.Context, companyID string, year int) ([]Holiday, error)
}

// PolicyProvider supplies company compensation policies.
type PolicyProvider interface {
	// CompanyPolicy returns ErrPolicyNotFound when the company has none.
	CompanyPolicy(ctx context.Context, companyID string) (*CompanyPolicy, error)
}

// RateProvider supplies point-in-time exchange rates.
type RateProvider interface {
	// RateAt returns the latest rate published on or before `on`, or
	// ErrRateNotFound.
	RateAt(ctx context.Context, base, quote Currency, on Date) (ExchangeRate, error)
}

// LoadHolidaySet fetches the holidays of every given year into one set.
// Vacation windows may cross a year boundary, so callers usually pass the
// start year and the following one.
func LoadHolidaySet(ctx context.Context, p HolidayProvider, companyID string, years ...int) (HolidaySet, error) {
	set := NewHolidaySet()
	if p == nil {
		return set, nil
	}
	for _, year := range years {
		holidays, err := p.Holidays(ctx, companyID, year)
		if err != nil {
			return HolidaySet{}, fmt.Errorf("load holidays for %d: %w", year, err)
		}
		set = set.Union(HolidaySetFromHolidays(holidays))
	}
	return set, nil
}
