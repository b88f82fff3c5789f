// Package unixtime converts between proleptic Gregorian calendar fields and
// Unix timestamps, i.e. seconds since 1970-01-01 00:00:00 UTC. It ignores
// leap seconds but respects leap years. The implementation is based on the
// Go standard library's time package but does not depend on time.Location.
// Depending on time.Location feels weird for a package that sits below the
// layer producing the timezone rules that time.Location is built from.
package unixtime

import "time"

// FromDateTime converts the given date and time, interpreted as UTC, to a
// Unix timestamp.
func FromDateTime(year int, month int, day int, hour int, minute int, second int) int64 {
	d := daysSinceEpoch(year) + daysSinceStartOfYear[month-1] + (uint64(day) - 1)
	if month > 2 && isLeap(year) {
		d++ // +leap year
	}
	abs := d*secondsPerDay + uint64(hour)*secondsPerHour + uint64(minute)*secondsPerMinute + uint64(second)
	return int64(abs) + (absoluteToInternal + internalToUnix)
}

// ToDateTime converts a Unix timestamp to date and time fields in UTC.
// It is the inverse of FromDateTime.
func ToDateTime(unix int64) (year int, month time.Month, day, hour, minute, second int) {
	abs := uint64(unix - (absoluteToInternal + internalToUnix))

	secondOfDay := abs % secondsPerDay
	hour = int(secondOfDay / secondsPerHour)
	minute = int(secondOfDay % secondsPerHour / secondsPerMinute)
	second = int(secondOfDay % secondsPerMinute)

	// Split days into 400-, 100- and 4-year cycles, mirroring daysSinceEpoch.
	d := abs / secondsPerDay
	n := d / daysPer400Years
	y := 400 * n
	d -= daysPer400Years * n

	n = d / daysPer100Years
	n -= n >> 2 // the last 100-year cycle of a 400-year cycle is one day longer
	y += 100 * n
	d -= daysPer100Years * n

	n = d / daysPer4Years
	y += 4 * n
	d -= daysPer4Years * n

	n = d / 365
	n -= n >> 2 // the last year of a 4-year cycle is one day longer
	y += n
	d -= 365 * n

	year = int(int64(y) + absoluteZeroYear)
	yday := int(d)

	day = yday
	if isLeap(year) {
		switch {
		case day > 31+29-1:
			day-- // pretend February has 28 days so the lookup table applies
		case day == 31+29-1:
			return year, time.February, 29, hour, minute, second
		}
	}

	// Estimate the month, correct by at most one.
	m := day / 31
	if uint64(day) >= daysSinceStartOfYear[m+1] {
		m++
	}
	day = day - int(daysSinceStartOfYear[m]) + 1
	month = time.Month(m + 1)
	return year, month, day, hour, minute, second
}

// Weekday returns the day of the week at the given Unix timestamp.
func Weekday(unix int64) time.Weekday {
	days := unix / secondsPerDay
	if unix < 0 && unix%secondsPerDay != 0 {
		days-- // floor towards the past
	}
	// 1970-01-01 was a Thursday.
	return time.Weekday(((days+4)%7 + 7) % 7)
}

var daysSinceStartOfYear = [...]uint64{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// The constants were copied from time.go in the Go standard library's time package.
const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
	daysPer400Years  = 365*400 + 97
	daysPer100Years  = 365*100 + 24
	daysPer4Years    = 365*4 + 1

	absoluteZeroYear         = -292277022399
	internalYear             = 1
	absoluteToInternal int64 = (absoluteZeroYear - internalYear) * 365.2425 * secondsPerDay
	unixToInternal     int64 = (1969*365 + 1969/4 - 1969/100 + 1969/400) * secondsPerDay
	internalToUnix     int64 = -unixToInternal
)

// daysSinceEpoch takes a year and returns the number of days from
// the absolute epoch to the start of that year.
// This is basically (year - zeroYear) * 365, but accounting for leap days.
//
// This function was copied from time.go in the Go standard library time package.
func daysSinceEpoch(year int) uint64 {
	y := uint64(int64(year) - absoluteZeroYear)

	// Add in days from 400-year cycles.
	n := y / 400
	y -= 400 * n
	d := daysPer400Years * n

	// Add in 100-year cycles.
	n = y / 100
	y -= 100 * n
	d += daysPer100Years * n

	// Add in 4-year cycles.
	n = y / 4
	y -= 4 * n
	d += daysPer4Years * n

	// Add in non-leap years.
	n = y
	d += 365 * n

	return d
}
