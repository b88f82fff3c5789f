package datemath

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestIsLeapYear(t *testing.T) {
	cases := []struct {
		year int
		want bool
	}{
		{2000, true},
		{2004, true},
		{1900, false},
		{2021, false},
		{0, true},
		{-4, true},
		{-100, false},
		{-400, true},
	}
	for _, c := range cases {
		if got := IsLeapYear(c.year); got != c.want {
			t.Errorf("IsLeapYear(%d) = %v, want %v", c.year, got, c.want)
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		month time.Month
		year  int
		want  int
	}{
		{time.January, 2021, 31},
		{time.February, 2021, 28},
		{time.February, 2020, 29},
		{time.February, 1900, 28},
		{time.April, 2021, 30},
		{time.December, 2021, 31},
	}
	for _, c := range cases {
		if got := DaysInMonth(c.month, c.year); got != c.want {
			t.Errorf("DaysInMonth(%v, %d) = %d, want %d", c.month, c.year, got, c.want)
		}
	}

	if got := MaxDaysInMonth(time.February); got != 29 {
		t.Errorf("MaxDaysInMonth(February) = %d, want 29", got)
	}
	if got := MinDaysInMonth(time.February); got != 28 {
		t.Errorf("MinDaysInMonth(February) = %d, want 28", got)
	}
}

func TestDayOfWeek(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		day   int
		want  time.Weekday
	}{
		{1970, time.January, 1, time.Thursday},
		{2000, time.January, 1, time.Saturday},
		{2021, time.March, 28, time.Sunday},
		{2024, time.February, 29, time.Thursday},
		{1, time.January, 1, time.Monday},

		// The Gregorian calendar repeats every 400 years, so negative
		// years follow from their positive counterparts.
		{0, time.January, 1, time.Saturday},
		{-400, time.January, 1, time.Saturday},
		{-9999, time.January, 1, time.Monday}, // same as year 401
		{401, time.January, 1, time.Monday},
	}
	for _, c := range cases {
		if got := DayOfWeek(c.year, c.month, c.day); got != c.want {
			t.Errorf("DayOfWeek(%d, %v, %d) = %v, want %v", c.year, c.month, c.day, got, c.want)
		}
	}
}

func TestLastWeekdayOfMonth(t *testing.T) {
	cases := []struct {
		year    int
		month   time.Month
		weekday time.Weekday
		want    int
	}{
		{2021, time.March, time.Sunday, 28},
		{2000, time.March, time.Sunday, 26},
		{2000, time.October, time.Sunday, 29},
		{2020, time.February, time.Saturday, 29},
		{2021, time.February, time.Sunday, 28},
		{2010, time.September, time.Tuesday, 28},
	}
	for _, c := range cases {
		got := LastWeekdayOfMonth(c.year, c.month, c.weekday)
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("LastWeekdayOfMonth(%d, %v, %v) mismatch (-want +got):\n%s", c.year, c.month, c.weekday, diff)
		}
	}
}

func TestNthWeekdayOfMonth(t *testing.T) {
	cases := []struct {
		year    int
		month   time.Month
		n       int
		weekday time.Weekday
		want    int
	}{
		{2007, time.March, 2, time.Sunday, 11},
		{2007, time.November, 1, time.Sunday, 4},
		{2021, time.March, 1, time.Monday, 1},
		{2021, time.March, 5, time.Wednesday, 31},
		{2021, time.January, 5, time.Friday, 29},
	}
	for _, c := range cases {
		got := NthWeekdayOfMonth(c.year, c.month, c.n, c.weekday)
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("NthWeekdayOfMonth(%d, %v, %d, %v) mismatch (-want +got):\n%s", c.year, c.month, c.n, c.weekday, diff)
		}
	}
}

func TestExists(t *testing.T) {
	cases := []struct {
		year    int
		month   time.Month
		n       int
		weekday time.Weekday
		want    bool
	}{
		{2021, time.January, 5, time.Friday, true},
		{2021, time.February, 5, time.Monday, false},
		{2020, time.February, 5, time.Saturday, true}, // leap year, Feb 29
		{2021, time.March, 5, time.Wednesday, true},
		{2021, time.April, 5, time.Friday, true},
		{2021, time.April, 5, time.Saturday, false},
	}
	for _, c := range cases {
		if got := Exists(c.year, c.month, c.n, c.weekday); got != c.want {
			t.Errorf("Exists(%d, %v, %d, %v) = %v, want %v", c.year, c.month, c.n, c.weekday, got, c.want)
		}
	}
}
