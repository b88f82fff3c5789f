// Package datemath implements the calendar arithmetic needed to resolve
// recurring day specifications such as "last Sunday" or "second Saturday"
// into concrete days of a month.
package datemath

import "time"

// IsLeapYear determines if the year is a leap year in the proleptic
// Gregorian calendar.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in a given month for a specific year.
func DaysInMonth(month time.Month, year int) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// MaxDaysInMonth returns the number of days in a given month in a leap year,
// i.e. the largest value DaysInMonth can return for that month.
func MaxDaysInMonth(month time.Month) int {
	return DaysInMonth(month, 2004) // any leap year
}

// MinDaysInMonth returns the number of days in a given month in a non-leap
// year, i.e. the smallest value DaysInMonth can return for that month.
func MinDaysInMonth(month time.Month) int {
	return DaysInMonth(month, 2003) // any non-leap year
}

// DayOfWeek calculates the day of the week for a given date using Zeller's
// congruence. The year may be negative; the Gregorian calendar repeats every
// 400 years, so negative years are shifted into positive range first.
func DayOfWeek(year int, month time.Month, day int) time.Weekday {
	m := int(month)
	year += 12000 // shift the supported year range into positive territory
	if m < 3 {
		m += 12
		year--
	}
	k := year % 100
	j := year / 100
	h := (day + ((13 * (m + 1)) / 5) + k + (k / 4) + (j / 4) + (5 * j)) % 7
	// Adjust result to fit Sunday=0, Monday=1, ..., Saturday=6.
	return time.Weekday((h + 6) % 7)
}

// LastWeekdayOfMonth finds the last instance of a given weekday in a
// specific month and year.
func LastWeekdayOfMonth(year int, month time.Month, weekday time.Weekday) int {
	lastDay := DaysInMonth(month, year)
	lastDayWeekday := DayOfWeek(year, month, lastDay)

	// Days to subtract from the last day to reach the wanted weekday.
	offset := (int(lastDayWeekday) - int(weekday) + 7) % 7
	return lastDay - offset
}

// NthWeekdayOfMonth finds the nth instance of a given weekday in a specific
// month and year, counted from the start of the month with n from 1 to 5.
// The fifth instance does not exist in every month; Exists reports whether
// it does for a particular year.
func NthWeekdayOfMonth(year int, month time.Month, n int, weekday time.Weekday) int {
	firstDayWeekday := DayOfWeek(year, month, 1)
	offset := (int(weekday) - int(firstDayWeekday) + 7) % 7
	return 1 + offset + 7*(n-1)
}

// Exists reports whether the nth instance of a weekday falls within the
// month for the given year.
func Exists(year int, month time.Month, n int, weekday time.Weekday) bool {
	return NthWeekdayOfMonth(year, month, n, weekday) <= DaysInMonth(month, year)
}
