// Package vacation schedules vacation periods against the business calendar.
// It walks working days forward from a start date, skipping weekends and
// holidays, and derives the last vacation day and the return-to-work date.
package vacation

import "github.com/T3Cread18/Nominix-sub001/engine"

// =============================================================================
// REQUEST AND SCHEDULE
// =============================================================================

// Request asks for WorkingDays working days of vacation beginning StartDate.
type Request struct {
	StartDate   engine.Date
	WorkingDays int
}

// Valid is false while the request is incomplete: no start date yet or a
// non-positive day count. Incomplete requests produce no schedule.
func (r Request) Valid() bool {
	return !r.StartDate.IsZero() && r.WorkingDays >= 1
}

// Schedule is the derived vacation window.
type Schedule struct {
	StartDate        engine.Date
	LastVacationDay  engine.Date
	ReturnToWorkDate engine.Date
	WorkingDays      int

	// CalendarDaysSpan counts calendar days from StartDate through
	// LastVacationDay inclusive. It is the payment period length.
	CalendarDaysSpan int

	// NonWorkingDays are the weekends and holidays inside the window.
	NonWorkingDays []SkippedDay

	StartDayClass engine.DayClass
	Warnings      []Warning
}

// Window returns the vacation period [StartDate, LastVacationDay].
func (s *Schedule) Window() engine.Period {
	return engine.Period{Start: s.StartDate, End: s.LastVacationDay}
}

// SkippedDay is a non-working day the scheduler stepped over.
type SkippedDay struct {
	Date  engine.Date
	Class engine.DayClass
}

// =============================================================================
// WARNINGS - Informational only, never block scheduling
// =============================================================================

type WarningCode string

const (
	WarnStartOnWeekend WarningCode = "start_date_weekend"
	WarnStartOnHoliday WarningCode = "start_date_holiday"
)

type Warning struct {
	Code    WarningCode
	Message string
}
