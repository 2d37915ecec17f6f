package engine

import (
	"fmt"
	"sort"
	"time"
)

// =============================================================================
// DATE - Calendar date with no time component
// =============================================================================

// Date is a calendar day. The wrapped time is always midnight UTC, so two
// Dates for the same day compare equal regardless of how they were built.
type Date struct {
	Time time.Time
}

const DateLayout = "2006-01-02"

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func Today() Date { return DateOf(time.Now()) }

// Comparison
func (d Date) Before(other Date) bool        { return d.normalize().Before(other.normalize()) }
func (d Date) Equal(other Date) bool         { return d.normalize().Equal(other.normalize()) }
func (d Date) After(other Date) bool         { return d.normalize().After(other.normalize()) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }

func (d Date) normalize() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Arithmetic
func (d Date) AddDays(n int) Date   { return DateOf(d.normalize().AddDate(0, 0, n)) }
func (d Date) AddMonths(n int) Date { return DateOf(d.normalize().AddDate(0, n, 0)) }
func (d Date) AddYears(n int) Date  { return DateOf(d.normalize().AddDate(n, 0, 0)) }

// Properties
func (d Date) Year() int              { return d.Time.Year() }
func (d Date) Month() time.Month      { return d.Time.Month() }
func (d Date) Day() int               { return d.Time.Day() }
func (d Date) Weekday() time.Weekday  { return d.normalize().Weekday() }
func (d Date) IsZero() bool           { return d.Time.IsZero() }
func (d Date) String() string         { return d.normalize().Format(DateLayout) }
func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DaysBetween returns the number of calendar days from `from` to `to`.
// Negative when `to` is before `from`.
func DaysBetween(from, to Date) int {
	return int((to.normalize().Unix() - from.normalize().Unix()) / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

// =============================================================================
// WEEKEND RULE
// =============================================================================

// WeekendRule reports whether a weekday is a rest day.
type WeekendRule func(time.Weekday) bool

// SaturdaySunday is the weekend rule of this jurisdiction.
func SaturdaySunday(wd time.Weekday) bool {
	return wd == time.Saturday || wd == time.Sunday
}

// =============================================================================
// HOLIDAY SET - Immutable non-working dates
// =============================================================================

// HolidaySet is an immutable set of dates that are not working days beyond
// the weekend. The zero value is an empty set.
type HolidaySet struct {
	days map[string]struct{}
}

func NewHolidaySet(dates ...Date) HolidaySet {
	days := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		days[d.String()] = struct{}{}
	}
	return HolidaySet{days: days}
}

// HolidaySetFromHolidays collects the dates of the given holiday records.
// Recurring records must already be expanded to a concrete year by the
// provider.
func HolidaySetFromHolidays(holidays []Holiday) HolidaySet {
	dates := make([]Date, 0, len(holidays))
	for _, h := range holidays {
		dates = append(dates, h.Date)
	}
	return NewHolidaySet(dates...)
}

func (h HolidaySet) Contains(d Date) bool {
	_, ok := h.days[d.String()]
	return ok
}

func (h HolidaySet) Len() int { return len(h.days) }

// Dates returns the holidays in chronological order.
func (h HolidaySet) Dates() []Date {
	out := make([]Date, 0, len(h.days))
	for k := range h.days {
		out = append(out, MustParseDate(k))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Union returns a new set holding the dates of both sets.
func (h HolidaySet) Union(other HolidaySet) HolidaySet {
	days := make(map[string]struct{}, len(h.days)+len(other.days))
	for k := range h.days {
		days[k] = struct{}{}
	}
	for k := range other.days {
		days[k] = struct{}{}
	}
	return HolidaySet{days: days}
}

// =============================================================================
// BUSINESS CALENDAR
// =============================================================================

// DayClass is the user-facing classification of a date.
type DayClass string

const (
	DayWorking DayClass = "working"
	DayWeekend DayClass = "weekend"
	DayHoliday DayClass = "holiday"
)

// Calendar decides working days from a weekend rule and a holiday set.
type Calendar struct {
	Weekend  WeekendRule
	Holidays HolidaySet
}

// NewCalendar returns a Saturday/Sunday calendar over the given holidays.
func NewCalendar(holidays HolidaySet) Calendar {
	return Calendar{Weekend: SaturdaySunday, Holidays: holidays}
}

func (c Calendar) isWeekend(d Date) bool {
	if c.Weekend == nil {
		return SaturdaySunday(d.Weekday())
	}
	return c.Weekend(d.Weekday())
}

// IsWorkingDay is false on weekends and holidays.
func (c Calendar) IsWorkingDay(d Date) bool {
	return !c.isWeekend(d) && !c.Holidays.Contains(d)
}

// Classify reports why a day is (not) working. A holiday that falls on a
// weekend is reported as a holiday.
func (c Calendar) Classify(d Date) DayClass {
	switch {
	case c.Holidays.Contains(d):
		return DayHoliday
	case c.isWeekend(d):
		return DayWeekend
	default:
		return DayWorking
	}
}

// HasWorkingWeekday is false when the weekend rule excludes all seven days,
// in which case no date can ever be a working day.
func (c Calendar) HasWorkingWeekday() bool {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if c.Weekend == nil {
			return true
		}
		if !c.Weekend(wd) {
			return true
		}
	}
	return false
}

// IsWorkingDay applies the jurisdiction weekend rule.
func IsWorkingDay(d Date, holidays HolidaySet) bool {
	return NewCalendar(holidays).IsWorkingDay(d)
}

func ClassifyDay(d Date, holidays HolidaySet) DayClass {
	return NewCalendar(holidays).Classify(d)
}

// =============================================================================
// HOLIDAY RECORDS - As supplied by a holiday provider
// =============================================================================

// Holiday is a non-working day published by a company or nationally.
type Holiday struct {
	ID        string
	CompanyID string // Empty string = national holiday
	Date      Date
	Name      string
	Recurring bool // true = same month/day every year
}

// OnYear returns the holiday moved to the given year when it recurs.
// It reports false when the date does not exist that year (Feb 29 outside
// a leap year).
func (h Holiday) OnYear(year int) (Holiday, bool) {
	if !h.Recurring {
		return h, true
	}
	moved := NewDate(year, h.Date.Month(), h.Date.Day())
	if moved.Month() != h.Date.Month() || moved.Day() != h.Date.Day() {
		return h, false
	}
	h.Date = moved
	return h, true
}

// NationalHolidays returns the fixed-date national holidays of Venezuela as
// recurring records. Movable feasts (Carnival, Holy Week) are published per
// year by the holiday provider.
func NationalHolidays() []Holiday {
	fixed := []struct {
		month time.Month
		day   int
		name  string
	}{
		{time.January, 1, "Año Nuevo"},
		{time.April, 19, "Declaración de la Independencia"},
		{time.May, 1, "Día del Trabajador"},
		{time.June, 24, "Batalla de Carabobo"},
		{time.July, 5, "Día de la Independencia"},
		{time.July, 24, "Natalicio de Simón Bolívar"},
		{time.October, 12, "Día de la Resistencia Indígena"},
		{time.December, 24, "Víspera de Navidad"},
		{time.December, 25, "Navidad"},
		{time.December, 31, "Fin de Año"},
	}
	out := make([]Holiday, 0, len(fixed))
	for _, f := range fixed {
		out = append(out, Holiday{
			ID:        fmt.Sprintf("ve-%02d-%02d", f.month, f.day),
			Date:      NewDate(2000, f.month, f.day),
			Name:      f.name,
			Recurring: true,
		})
	}
	return out
}
