package zonerules

import (
	"fmt"
	"time"

	"github.com/ngrash/go-zonerules/localtime"
)

// Transition is a single change of the wall offset, such as a spring-forward
// or autumn-back cutover. DateTime is the local date-time at which the
// change happens, expressed in the offset valid before the transition.
//
// A transition where the offset increases is a gap: local times from
// DateTime up to DateTimeAfter do not occur. A transition where the offset
// decreases is an overlap: local times from DateTimeAfter up to DateTime
// occur twice.
type Transition struct {
	DateTime localtime.DateTime
	Before   localtime.Offset
	After    localtime.Offset
}

// NewTransition returns a validated Transition. The offsets must differ and
// the date-time must be valid.
func NewTransition(dt localtime.DateTime, before, after localtime.Offset) (Transition, error) {
	if before == after {
		return Transition{}, fmt.Errorf("transition at %v: offsets before and after must differ, both are %v", dt, before)
	}
	if err := dt.Validate(); err != nil {
		return Transition{}, fmt.Errorf("transition date-time: %w", err)
	}
	return Transition{DateTime: dt, Before: before, After: after}, nil
}

// Instant returns the transition as a Unix timestamp. The instant is the
// same whether the transition is viewed from the offset before or after.
func (t Transition) Instant() int64 {
	return t.DateTime.Unix(t.Before)
}

// DateTimeAfter returns the local date-time of the transition expressed in
// the offset valid after it.
func (t Transition) DateTimeAfter() localtime.DateTime {
	return localtime.FromUnix(t.Instant(), t.After)
}

// IsGap reports whether the transition skips local times, i.e. whether
// clocks jump forward.
func (t Transition) IsGap() bool {
	return t.After > t.Before
}

// Duration returns the size of the clock change, positive for a gap and
// negative for an overlap.
func (t Transition) Duration() time.Duration {
	return time.Duration(t.After-t.Before) * time.Second
}

func (t Transition) String() string {
	kind := "overlap"
	if t.IsGap() {
		kind = "gap"
	}
	return fmt.Sprintf("transition[%s at %v from %v to %v]", kind, t.DateTime, t.Before, t.After)
}

// TransitionRule describes a transition that recurs once every year, such
// as "last Sunday of March at 01:00 UTC, from +01:00 to +02:00". Rule sets
// use recurring rules to describe the open-ended future instead of
// materializing transitions for every year.
type TransitionRule struct {
	// Month and Day locate the transition day within the year.
	Month time.Month
	Day   DaySpec
	// Time is the time of day of the cutover, interpreted per TimeDef.
	// EndOfDay shifts a midnight Time to the end of the resolved day.
	Time     time.Duration
	EndOfDay bool
	TimeDef  TimeDefinition
	// Standard is the standard offset in force, used to interpret
	// TimeStandard rules. Before and After are the wall offsets on either
	// side of the transition.
	Standard localtime.Offset
	Before   localtime.Offset
	After    localtime.Offset
}

// Transition materializes the rule's occurrence in the given year.
func (r TransitionRule) Transition(year int) Transition {
	day := r.Day.DayIn(year, r.Month)
	t := int(r.Time / time.Second)
	dt := localtime.DateTime{
		Year:   year,
		Month:  r.Month,
		Day:    day,
		Hour:   t / 3600,
		Minute: t % 3600 / 60,
		Second: t % 60,
	}
	if r.EndOfDay {
		dt = dt.AddDays(1)
	}
	wall := r.TimeDef.WallDateTime(dt, r.Standard, r.Before)
	return Transition{DateTime: wall, Before: r.Before, After: r.After}
}

func (r TransitionRule) String() string {
	return fmt.Sprintf("rule[%s %s at %v %s from %v to %v]",
		r.Month, r.Day, r.Time, r.TimeDef, r.Before, r.After)
}
