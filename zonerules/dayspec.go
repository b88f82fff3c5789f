package zonerules

import (
	"fmt"
	"time"

	"github.com/ngrash/go-zonerules/internal/datemath"
	"github.com/ngrash/go-zonerules/localtime"
)

type daySpecKind int

const (
	dayFixed daySpecKind = iota
	dayNthWeekday
	dayLastWeekday
)

// DaySpec selects a day within a month, either as a fixed day number, a day
// counted backwards from the end of the month, the nth occurrence of a
// weekday, or the last occurrence of a weekday. Applied to a year it
// resolves to a concrete day of the month.
//
// The zero value is invalid; use one of the On* constructors.
type DaySpec struct {
	kind    daySpecKind
	num     int
	nth     int
	weekday time.Weekday
}

// OnDay selects a fixed day of the month. Positive n counts from the start
// of the month (1 to 31), negative n counts backwards from the last day
// (-1 is the last day, -28 the earliest that exists in every month).
func OnDay(n int) DaySpec {
	return DaySpec{kind: dayFixed, num: n}
}

// OnLastDay selects the last day of the month.
func OnLastDay() DaySpec {
	return OnDay(-1)
}

// OnNthWeekday selects the nth occurrence of the weekday in the month, with
// n from 1 to 5 counted from the start of the month. The fifth occurrence
// does not exist in every month of every year. As a convenience, n == -1
// selects the last occurrence.
func OnNthWeekday(n int, weekday time.Weekday) DaySpec {
	if n == -1 {
		return OnLastWeekday(weekday)
	}
	return DaySpec{kind: dayNthWeekday, nth: n, weekday: weekday}
}

// OnLastWeekday selects the last occurrence of the weekday in the month.
func OnLastWeekday(weekday time.Weekday) DaySpec {
	return DaySpec{kind: dayLastWeekday, weekday: weekday}
}

// Validate checks that the day spec resolves to an existing day of the given
// month in every year from startYear to endYear. An endYear of
// localtime.MaxYear means the spec recurs forever, so it must resolve in
// every possible year.
func (d DaySpec) Validate(month time.Month, startYear, endYear int) error {
	switch d.kind {
	case dayFixed:
		if d.num == 0 || d.num > 31 || d.num < -28 {
			return fmt.Errorf("day %d out of range: must be 1 to 31 or -1 to -28", d.num)
		}
		if d.num < 0 {
			return nil // backward counting always resolves
		}
		if endYear == localtime.MaxYear {
			if d.num > datemath.MinDaysInMonth(month) {
				return fmt.Errorf("day %d does not exist in %s of every year", d.num, month)
			}
			return nil
		}
		for year := startYear; year <= endYear; year++ {
			if d.num > datemath.DaysInMonth(month, year) {
				return fmt.Errorf("day %d does not exist in %s %d", d.num, month, year)
			}
		}
		return nil
	case dayNthWeekday:
		if d.nth < 1 || d.nth > 5 {
			return fmt.Errorf("weekday ordinal %d out of range: must be 1 to 5", d.nth)
		}
		if d.weekday < time.Sunday || d.weekday > time.Saturday {
			return fmt.Errorf("invalid weekday %d", int(d.weekday))
		}
		if d.nth < 5 {
			return nil // the first four occurrences exist in every month
		}
		if endYear == localtime.MaxYear {
			return fmt.Errorf("fifth %s does not exist in %s of every year", d.weekday, month)
		}
		for year := startYear; year <= endYear; year++ {
			if !datemath.Exists(year, month, d.nth, d.weekday) {
				return fmt.Errorf("fifth %s does not exist in %s %d", d.weekday, month, year)
			}
		}
		return nil
	case dayLastWeekday:
		if d.weekday < time.Sunday || d.weekday > time.Saturday {
			return fmt.Errorf("invalid weekday %d", int(d.weekday))
		}
		return nil
	default:
		return fmt.Errorf("invalid day spec")
	}
}

// DayIn resolves the spec to a concrete day of the given month and year.
// The spec must have been validated for the year.
func (d DaySpec) DayIn(year int, month time.Month) int {
	switch d.kind {
	case dayFixed:
		if d.num < 0 {
			return datemath.DaysInMonth(month, year) + 1 + d.num
		}
		return d.num
	case dayNthWeekday:
		return datemath.NthWeekdayOfMonth(year, month, d.nth, d.weekday)
	default: // dayLastWeekday
		return datemath.LastWeekdayOfMonth(year, month, d.weekday)
	}
}

func (d DaySpec) String() string {
	switch d.kind {
	case dayFixed:
		if d.num < 0 {
			return fmt.Sprintf("day %d from end", -d.num)
		}
		return fmt.Sprintf("day %d", d.num)
	case dayNthWeekday:
		return fmt.Sprintf("%s #%d", d.weekday, d.nth)
	default:
		return fmt.Sprintf("last %s", d.weekday)
	}
}
