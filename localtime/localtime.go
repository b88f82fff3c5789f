// Package localtime provides the calendar value types the zone rule
// machinery is defined in terms of: a proleptic Gregorian date-time without
// an offset, and a signed UTC offset in seconds.
//
// The types are deliberately independent of time.Time and time.Location:
// zone rules are the data a time.Location is built from, so the layer
// producing them cannot depend on one.
package localtime

import (
	"errors"
	"fmt"
	"time"

	"github.com/ngrash/go-zonerules/internal/datemath"
	"github.com/ngrash/go-zonerules/internal/unixtime"
)

const (
	// MinYear is the earliest representable year.
	MinYear = -9999
	// MaxYear is the latest representable year. Used as the end year of a
	// recurring rule it means the rule applies forever.
	MaxYear = 9999
)

// Offset is a time zone offset from UTC in seconds. Positive offsets are
// east of Greenwich. Offsets are compared as plain integers.
type Offset int

// UTC is the zero offset.
const UTC Offset = 0

// maxOffsetSeconds bounds offsets to +/-18 hours, generous enough for every
// offset that ever appeared in the tz database.
const maxOffsetSeconds = 18 * 60 * 60

// OffsetSeconds returns an Offset for the given number of seconds from UTC.
func OffsetSeconds(seconds int) (Offset, error) {
	if seconds < -maxOffsetSeconds || seconds > maxOffsetSeconds {
		return 0, fmt.Errorf("offset %d out of range: must be within +/-18 hours", seconds)
	}
	return Offset(seconds), nil
}

// OffsetHours returns an Offset for the given number of hours from UTC.
func OffsetHours(hours int) (Offset, error) {
	return OffsetSeconds(hours * 3600)
}

// OffsetHoursMinutes returns an Offset for the given hours and minutes from
// UTC. The signs of hours and minutes must match.
func OffsetHoursMinutes(hours, minutes int) (Offset, error) {
	if hours > 0 && minutes < 0 || hours < 0 && minutes > 0 {
		return 0, fmt.Errorf("offset %d:%d: hours and minutes must have the same sign", hours, minutes)
	}
	return OffsetSeconds(hours*3600 + minutes*60)
}

// Seconds returns the offset as a number of seconds from UTC.
func (o Offset) Seconds() int { return int(o) }

// Plus returns the offset shifted by the given amount of time.
// The amount is truncated to whole seconds.
func (o Offset) Plus(d time.Duration) Offset {
	return o + Offset(d/time.Second)
}

func (o Offset) String() string {
	secs := int(o)
	sign := "+"
	if secs < 0 {
		sign = "-"
		secs = -secs
	}
	if secs%60 == 0 {
		return fmt.Sprintf("%s%02d:%02d", sign, secs/3600, secs%3600/60)
	}
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, secs/3600, secs%3600/60, secs%60)
}

// DateTime is a date and time of day without any offset attached, such as
// 2000-03-26T01:30:00. Which instant it names depends on the offset it is
// interpreted at.
type DateTime struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
	Second int
}

var (
	// MinDateTime is the earliest representable date-time.
	MinDateTime = DateTime{Year: MinYear, Month: time.January, Day: 1}
	// MaxDateTime is the latest representable date-time.
	MaxDateTime = DateTime{Year: MaxYear, Month: time.December, Day: 31, Hour: 23, Minute: 59, Second: 59}
)

// NewDateTime returns a validated DateTime.
func NewDateTime(year int, month time.Month, day, hour, minute, second int) (DateTime, error) {
	dt := DateTime{Year: year, Month: month, Day: day, Hour: hour, Minute: minute, Second: second}
	return dt, dt.Validate()
}

// Validate checks all fields, including the day against the month length of
// the specific year.
func (dt DateTime) Validate() error {
	var errs []error
	if dt.Year < MinYear || dt.Year > MaxYear {
		errs = append(errs, fmt.Errorf("year %d out of range [%d, %d]", dt.Year, MinYear, MaxYear))
	}
	if dt.Month < time.January || dt.Month > time.December {
		errs = append(errs, fmt.Errorf("invalid month %d", int(dt.Month)))
	} else if dt.Day < 1 || dt.Day > datemath.DaysInMonth(dt.Month, dt.Year) {
		errs = append(errs, fmt.Errorf("day %d out of range for %s %d", dt.Day, dt.Month, dt.Year))
	}
	if dt.Hour < 0 || dt.Hour > 23 {
		errs = append(errs, fmt.Errorf("hour %d out of range", dt.Hour))
	}
	if dt.Minute < 0 || dt.Minute > 59 {
		errs = append(errs, fmt.Errorf("minute %d out of range", dt.Minute))
	}
	if dt.Second < 0 || dt.Second > 59 {
		errs = append(errs, fmt.Errorf("second %d out of range", dt.Second))
	}
	return errors.Join(errs...)
}

// Unix returns the instant named by the date-time when interpreted at the
// given offset, as a Unix timestamp.
func (dt DateTime) Unix(at Offset) int64 {
	return unixtime.FromDateTime(dt.Year, int(dt.Month), dt.Day, dt.Hour, dt.Minute, dt.Second) - int64(at)
}

// FromUnix returns the date-time that a clock at the given offset shows at
// the given instant.
func FromUnix(unix int64, at Offset) DateTime {
	year, month, day, hour, minute, second := unixtime.ToDateTime(unix + int64(at))
	return DateTime{Year: year, Month: month, Day: day, Hour: hour, Minute: minute, Second: second}
}

// Compare returns -1, 0 or 1 depending on whether dt is before, equal to or
// after other. The comparison is field-wise; no offset is involved.
func (dt DateTime) Compare(other DateTime) int {
	ord := func(a, b int) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}
	if c := ord(dt.Year, other.Year); c != 0 {
		return c
	}
	if c := ord(int(dt.Month), int(other.Month)); c != 0 {
		return c
	}
	if c := ord(dt.Day, other.Day); c != 0 {
		return c
	}
	if c := ord(dt.Hour, other.Hour); c != 0 {
		return c
	}
	if c := ord(dt.Minute, other.Minute); c != 0 {
		return c
	}
	return ord(dt.Second, other.Second)
}

// Before reports whether dt is earlier than other.
func (dt DateTime) Before(other DateTime) bool { return dt.Compare(other) < 0 }

// After reports whether dt is later than other.
func (dt DateTime) After(other DateTime) bool { return dt.Compare(other) > 0 }

// Equal reports whether dt and other name the same date and time of day.
func (dt DateTime) Equal(other DateTime) bool { return dt.Compare(other) == 0 }

// AddDays returns the date-time n calendar days later, carrying over month
// and year boundaries.
func (dt DateTime) AddDays(n int) DateTime {
	return FromUnix(dt.Unix(UTC)+int64(n)*24*60*60, UTC)
}

func (dt DateTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d",
		dt.Year, int(dt.Month), dt.Day, dt.Hour, dt.Minute, dt.Second)
}
