package engine

import "github.com/shopspring/decimal"

// =============================================================================
// PERIOD - Inclusive range of calendar days
// =============================================================================

// Period is the inclusive range [Start, End].
type Period struct {
	Start Date
	End   Date
}

// Contains returns true if the date is within the period [Start, End]
func (p Period) Contains(d Date) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

// Days returns all days in the period.
func (p Period) Days() []Date {
	var days []Date
	current := p.Start
	for current.BeforeOrEqual(p.End) {
		days = append(days, current)
		current = current.AddDays(1)
	}
	return days
}

// Length is the inclusive number of calendar days.
func (p Period) Length() int {
	if p.End.Before(p.Start) {
		return 0
	}
	return DaysBetween(p.Start, p.End) + 1
}

func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// =============================================================================
// SERVICE PERIOD - Employment span used for seniority
// =============================================================================

// DaysPerYear is the average year length used to turn service days into
// fractional years.
var DaysPerYear = decimal.RequireFromString("365.25")

// ServicePeriod runs from hire to termination.
type ServicePeriod struct {
	Hire        Date
	Termination Date
}

// Validate rejects a termination before the hire date.
func (sp ServicePeriod) Validate() error {
	if sp.Termination.Before(sp.Hire) {
		return &InvalidServicePeriodError{Hire: sp.Hire, Termination: sp.Termination}
	}
	return nil
}

// Days is the number of calendar days between hire and termination.
func (sp ServicePeriod) Days() int { return DaysBetween(sp.Hire, sp.Termination) }

// YearsOfService is Days / 365.25, unrounded.
func (sp ServicePeriod) YearsOfService() decimal.Decimal {
	return decimal.NewFromInt(int64(sp.Days())).Div(DaysPerYear)
}

// CompletedYears counts whole anniversaries reached on or before termination.
func (sp ServicePeriod) CompletedYears() int {
	years := sp.Termination.Year() - sp.Hire.Year()
	if years <= 0 {
		return 0
	}
	if sp.Termination.Before(sp.Hire.AddYears(years)) {
		years--
	}
	return years
}
