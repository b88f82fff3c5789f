package main

import (
	"errors"
	"time"

	"github.com/ngrash/go-zonerules/localtime"
	"github.com/ngrash/go-zonerules/zonebuild"
	"github.com/ngrash/go-zonerules/zonerules"
)

// sampleZones builds simplified versions of a few well-known zones. The
// definitions cover the recent rule eras only.
func sampleZones() (map[string]*zonerules.Rules, error) {
	builders := []func() (*zonerules.Rules, error){
		utc,
		paris,
		newYork,
		sydney,
	}
	zones := make(map[string]*zonerules.Rules, len(builders))
	for _, build := range builders {
		rules, err := build()
		if err != nil {
			return nil, err
		}
		zones[rules.ID()] = rules
	}
	return zones, nil
}

func utc() (*zonerules.Rules, error) {
	return zonerules.Fixed("Etc/UTC", localtime.UTC), nil
}

// paris follows the EU pattern: cutovers on the last Sunday of March and
// October at 01:00 UTC.
func paris() (*zonerules.Rules, error) {
	var b zonebuild.Builder
	err := errors.Join(
		b.AddWindowForever(localtime.Offset(1*3600)),
		b.AddRule(1996, localtime.MaxYear, time.March, zonerules.OnLastWeekday(time.Sunday),
			1*time.Hour, zonerules.TimeUTC, 1*time.Hour),
		b.AddRule(1996, localtime.MaxYear, time.October, zonerules.OnLastWeekday(time.Sunday),
			1*time.Hour, zonerules.TimeUTC, 0),
	)
	if err != nil {
		return nil, err
	}
	return b.Rules("Europe/Paris")
}

// newYork covers the US rules since 1987, including the 2007 change to the
// second Sunday of March and first Sunday of November.
func newYork() (*zonerules.Rules, error) {
	var b zonebuild.Builder
	err := errors.Join(
		b.AddWindowForever(localtime.Offset(-5*3600)),
		b.AddRule(1987, 2006, time.April, zonerules.OnNthWeekday(1, time.Sunday),
			2*time.Hour, zonerules.TimeWall, 1*time.Hour),
		b.AddRule(1987, 2006, time.October, zonerules.OnLastWeekday(time.Sunday),
			2*time.Hour, zonerules.TimeWall, 0),
		b.AddRule(2007, localtime.MaxYear, time.March, zonerules.OnNthWeekday(2, time.Sunday),
			2*time.Hour, zonerules.TimeWall, 1*time.Hour),
		b.AddRule(2007, localtime.MaxYear, time.November, zonerules.OnNthWeekday(1, time.Sunday),
			2*time.Hour, zonerules.TimeWall, 0),
	)
	if err != nil {
		return nil, err
	}
	return b.Rules("America/New_York")
}

// sydney is a southern-hemisphere zone: daylight saving spans the new year.
func sydney() (*zonerules.Rules, error) {
	var b zonebuild.Builder
	err := errors.Join(
		b.AddWindowForever(localtime.Offset(10*3600)),
		b.AddRule(2008, localtime.MaxYear, time.October, zonerules.OnNthWeekday(1, time.Sunday),
			2*time.Hour, zonerules.TimeStandard, 1*time.Hour),
		b.AddRule(2008, localtime.MaxYear, time.April, zonerules.OnNthWeekday(1, time.Sunday),
			3*time.Hour, zonerules.TimeStandard, 0),
	)
	if err != nil {
		return nil, err
	}
	return b.Rules("Australia/Sydney")
}
