package zonerules

import "github.com/ngrash/go-zonerules/localtime"

// TimeDefinition describes the frame of reference of a nominal local time in
// a zone rule. A cutover at "01:00" can mean 01:00 on the wall clock, 01:00
// standard time or 01:00 UTC; the three disagree as soon as daylight saving
// is in force.
type TimeDefinition int

const (
	// TimeWall interprets the time against the wall offset, i.e. standard
	// offset plus the savings in force.
	TimeWall TimeDefinition = iota
	// TimeStandard interprets the time against the standard offset,
	// ignoring any savings.
	TimeStandard
	// TimeUTC interprets the time as UTC.
	TimeUTC
)

// WallDateTime converts a nominal local date-time to the equivalent wall
// clock date-time, given the standard and wall offsets in force. For
// TimeWall this is the identity; the other definitions shift the date-time
// to the same instant expressed at the wall offset.
func (d TimeDefinition) WallDateTime(dt localtime.DateTime, standard, wall localtime.Offset) localtime.DateTime {
	switch d {
	case TimeUTC:
		return localtime.FromUnix(dt.Unix(localtime.UTC), wall)
	case TimeStandard:
		return localtime.FromUnix(dt.Unix(standard), wall)
	default: // TimeWall
		return dt
	}
}

func (d TimeDefinition) String() string {
	switch d {
	case TimeWall:
		return "wall"
	case TimeStandard:
		return "standard"
	case TimeUTC:
		return "utc"
	default:
		return "unknown"
	}
}
