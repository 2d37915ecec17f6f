package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/T3Cread18/Nominix-sub001/engine"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func date(year int, month time.Month, day int) engine.Date {
	return engine.NewDate(year, month, day)
}

// =============================================================================
// BUSINESS CALENDAR
// =============================================================================

func TestIsWorkingDay_WeekdayWithoutHolidays(t *testing.T) {
	monday := date(2024, time.January, 15)
	assert.True(t, engine.IsWorkingDay(monday, engine.NewHolidaySet()))
}

func TestIsWorkingDay_WeekendIsNotWorking(t *testing.T) {
	saturday := date(2024, time.January, 20)
	sunday := date(2024, time.January, 21)

	assert.False(t, engine.IsWorkingDay(saturday, engine.HolidaySet{}))
	assert.False(t, engine.IsWorkingDay(sunday, engine.HolidaySet{}))
}

func TestIsWorkingDay_HolidayIsNotWorking(t *testing.T) {
	// GIVEN: Wednesday Dec 25 2024 is a holiday
	christmas := date(2024, time.December, 25)
	holidays := engine.NewHolidaySet(christmas)

	// THEN: it is not a working day, but the next day is
	assert.False(t, engine.IsWorkingDay(christmas, holidays))
	assert.True(t, engine.IsWorkingDay(christmas.AddDays(1), holidays))
}

func TestClassifyDay(t *testing.T) {
	// Sunday June 24 2029 is Batalla de Carabobo
	carabobo := date(2029, time.June, 24)
	holidays := engine.NewHolidaySet(carabobo, date(2024, time.January, 1))

	tests := []struct {
		name string
		day  engine.Date
		want engine.DayClass
	}{
		{"monday", date(2024, time.January, 15), engine.DayWorking},
		{"saturday", date(2024, time.January, 20), engine.DayWeekend},
		{"weekday holiday", date(2024, time.January, 1), engine.DayHoliday},
		{"holiday on sunday wins over weekend", carabobo, engine.DayHoliday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.ClassifyDay(tt.day, holidays))
		})
	}
}

func TestCalendar_CustomWeekendRule(t *testing.T) {
	// GIVEN: a Friday/Saturday weekend
	cal := engine.Calendar{
		Weekend: func(wd time.Weekday) bool { return wd == time.Friday || wd == time.Saturday },
	}

	assert.False(t, cal.IsWorkingDay(date(2024, time.January, 19))) // Friday
	assert.True(t, cal.IsWorkingDay(date(2024, time.January, 21)))  // Sunday
	assert.True(t, cal.HasWorkingWeekday())

	never := engine.Calendar{Weekend: func(time.Weekday) bool { return true }}
	assert.False(t, never.HasWorkingWeekday())
}

// =============================================================================
// DATES AND HOLIDAY SETS
// =============================================================================

func TestDate_IgnoresTimeOfDay(t *testing.T) {
	evening := engine.DateOf(time.Date(2024, time.March, 10, 22, 30, 0, 0, time.UTC))
	assert.True(t, evening.Equal(date(2024, time.March, 10)))
	assert.Equal(t, "2024-03-10", evening.String())
}

func TestParseDate(t *testing.T) {
	d, err := engine.ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Thursday, d.Weekday())

	_, err = engine.ParseDate("29/02/2024")
	assert.Error(t, err)
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 366, engine.DaysBetween(date(2024, time.January, 1), date(2025, time.January, 1)))
	assert.Equal(t, -1, engine.DaysBetween(date(2024, time.January, 2), date(2024, time.January, 1)))
}

func TestDaysBetween_Centuries(t *testing.T) {
	// GIVEN: a span longer than time.Duration can hold (~292 years)
	from := date(1700, time.January, 1)
	to := date(2024, time.January, 1)

	// THEN: the count comes from calendar days, not a saturated duration
	// 324 years and 78 leap days (1700, 1800 and 1900 are not leap)
	assert.Equal(t, 324*365+78, engine.DaysBetween(from, to))
	assert.Equal(t, -(324*365 + 78), engine.DaysBetween(to, from))
}

func TestHolidaySet_DatesSortedAndUnion(t *testing.T) {
	a := engine.NewHolidaySet(date(2024, time.December, 25), date(2024, time.January, 1))
	b := engine.NewHolidaySet(date(2024, time.January, 1), date(2025, time.January, 1))

	union := a.Union(b)

	assert.Equal(t, 2, a.Len(), "union must not mutate its receiver")
	assert.Equal(t, []engine.Date{
		date(2024, time.January, 1),
		date(2024, time.December, 25),
		date(2025, time.January, 1),
	}, union.Dates())
}

func TestHoliday_OnYear(t *testing.T) {
	recurring := engine.Holiday{Date: date(2000, time.July, 5), Recurring: true}
	once := engine.Holiday{Date: date(2024, time.March, 28)}

	moved, ok := recurring.OnYear(2026)
	assert.True(t, ok)
	assert.Equal(t, date(2026, time.July, 5), moved.Date)

	kept, ok := once.OnYear(2026)
	assert.True(t, ok)
	assert.Equal(t, date(2024, time.March, 28), kept.Date)
}

func TestHoliday_OnYear_LeapDay(t *testing.T) {
	leap := engine.Holiday{Date: date(2000, time.February, 29), Recurring: true}

	// Non-leap year: no Feb 29, and it must not roll over to Mar 1
	_, ok := leap.OnYear(2023)
	assert.False(t, ok)

	moved, ok := leap.OnYear(2024)
	assert.True(t, ok)
	assert.Equal(t, date(2024, time.February, 29), moved.Date)
}

func TestNationalHolidays_AllRecurring(t *testing.T) {
	holidays := engine.NationalHolidays()
	require.Len(t, holidays, 10)
	for _, h := range holidays {
		assert.True(t, h.Recurring, h.Name)
		assert.Empty(t, h.CompanyID, h.Name)
	}
}
