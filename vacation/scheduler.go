package vacation

import (
	"fmt"

	"github.com/T3Cread18/Nominix-sub001/engine"
)

// =============================================================================
// SCHEDULER - Working-day stepping over a calendar
// =============================================================================

// Scheduler computes vacation windows over a calendar. The zero value uses
// the Saturday/Sunday weekend and no holidays.
type Scheduler struct {
	Calendar engine.Calendar
}

func NewScheduler(holidays engine.HolidaySet) *Scheduler {
	return &Scheduler{Calendar: engine.NewCalendar(holidays)}
}

// maxSteps bounds the walk. With at least one working weekday, every week
// holds a working day unless a holiday removes it, so the walk needs at most
// one week per working day and per holiday.
func (s *Scheduler) maxSteps(workingDays int) int {
	return (workingDays + 1 + s.Calendar.Holidays.Len()) * 7
}

// LastVacationDay walks forward from start, counting working days, and
// returns the day on which the count reaches workingDays. A working start
// date counts as day 1. ok is false for an incomplete request.
func (s *Scheduler) LastVacationDay(start engine.Date, workingDays int) (day engine.Date, ok bool) {
	if !(Request{StartDate: start, WorkingDays: workingDays}).Valid() || !s.Calendar.HasWorkingWeekday() {
		return engine.Date{}, false
	}

	counted := 0
	current := start
	for step := 0; step < s.maxSteps(workingDays); step++ {
		if s.Calendar.IsWorkingDay(current) {
			counted++
			if counted == workingDays {
				return current, true
			}
		}
		current = current.AddDays(1)
	}
	return engine.Date{}, false
}

// ReturnToWorkDate is the first working day strictly after the last
// vacation day.
func (s *Scheduler) ReturnToWorkDate(start engine.Date, workingDays int) (engine.Date, bool) {
	last, ok := s.LastVacationDay(start, workingDays)
	if !ok {
		return engine.Date{}, false
	}
	return s.nextWorkingDay(last)
}

func (s *Scheduler) nextWorkingDay(after engine.Date) (engine.Date, bool) {
	current := after.AddDays(1)
	for step := 0; step < s.maxSteps(1); step++ {
		if s.Calendar.IsWorkingDay(current) {
			return current, true
		}
		current = current.AddDays(1)
	}
	return engine.Date{}, false
}

// Schedule builds the full schedule for a request, or nil when the request
// is incomplete.
func (s *Scheduler) Schedule(req Request) *Schedule {
	last, ok := s.LastVacationDay(req.StartDate, req.WorkingDays)
	if !ok {
		return nil
	}
	ret, ok := s.nextWorkingDay(last)
	if !ok {
		return nil
	}

	sched := &Schedule{
		StartDate:        req.StartDate,
		LastVacationDay:  last,
		ReturnToWorkDate: ret,
		WorkingDays:      req.WorkingDays,
		StartDayClass:    s.Calendar.Classify(req.StartDate),
	}
	sched.CalendarDaysSpan = sched.Window().Length()

	for _, d := range sched.Window().Days() {
		if class := s.Calendar.Classify(d); class != engine.DayWorking {
			sched.NonWorkingDays = append(sched.NonWorkingDays, SkippedDay{Date: d, Class: class})
		}
	}

	switch sched.StartDayClass {
	case engine.DayHoliday:
		sched.Warnings = append(sched.Warnings, Warning{
			Code:    WarnStartOnHoliday,
			Message: fmt.Sprintf("start date %s is a holiday; vacation begins counting on the next working day", req.StartDate),
		})
	case engine.DayWeekend:
		sched.Warnings = append(sched.Warnings, Warning{
			Code:    WarnStartOnWeekend,
			Message: fmt.Sprintf("start date %s falls on a weekend; vacation begins counting on the next working day", req.StartDate),
		})
	}

	return sched
}

// =============================================================================
// PACKAGE-LEVEL HELPERS - Jurisdiction calendar
// =============================================================================

func LastVacationDay(start engine.Date, workingDays int, holidays engine.HolidaySet) (engine.Date, bool) {
	return NewScheduler(holidays).LastVacationDay(start, workingDays)
}

func ReturnToWorkDate(start engine.Date, workingDays int, holidays engine.HolidaySet) (engine.Date, bool) {
	return NewScheduler(holidays).ReturnToWorkDate(start, workingDays)
}

// ScheduleVacation returns nil when there is no valid request yet.
func ScheduleVacation(start engine.Date, workingDays int, holidays engine.HolidaySet) *Schedule {
	return NewScheduler(holidays).Schedule(Request{StartDate: start, WorkingDays: workingDays})
}

// ClassifyDay surfaces why a requested start date is not a working day.
func ClassifyDay(d engine.Date, holidays engine.HolidaySet) engine.DayClass {
	return engine.ClassifyDay(d, holidays)
}
