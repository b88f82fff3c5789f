package zonerules

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ngrash/go-zonerules/localtime"
)

func TestTimeDefinitionWallDateTime(t *testing.T) {
	// Standard +01:00, one hour of savings in force: wall +02:00.
	standard := localtime.Offset(3600)
	wall := localtime.Offset(7200)
	nominal := localtime.DateTime{Year: 2000, Month: time.March, Day: 26, Hour: 1}

	cases := []struct {
		def  TimeDefinition
		want localtime.DateTime
	}{
		{TimeWall, localtime.DateTime{Year: 2000, Month: time.March, Day: 26, Hour: 1}},
		{TimeStandard, localtime.DateTime{Year: 2000, Month: time.March, Day: 26, Hour: 2}},
		{TimeUTC, localtime.DateTime{Year: 2000, Month: time.March, Day: 26, Hour: 3}},
	}
	for _, c := range cases {
		got := c.def.WallDateTime(nominal, standard, wall)
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("%v.WallDateTime(%v, %v, %v) mismatch (-want +got):\n%s", c.def, nominal, standard, wall, diff)
		}
	}
}

func TestNewTransition(t *testing.T) {
	dt := localtime.DateTime{Year: 2000, Month: time.March, Day: 26, Hour: 2}

	if _, err := NewTransition(dt, 3600, 3600); err == nil {
		t.Error("expected error for equal offsets")
	}
	if _, err := NewTransition(localtime.DateTime{Year: 2000, Month: time.February, Day: 30}, 3600, 7200); err == nil {
		t.Error("expected error for invalid date-time")
	}
	trans, err := NewTransition(dt, 3600, 7200)
	if err != nil {
		t.Fatalf("NewTransition: %v", err)
	}
	want := Transition{DateTime: dt, Before: 3600, After: 7200}
	if diff := cmp.Diff(want, trans); diff != "" {
		t.Errorf("NewTransition mismatch (-want +got):\n%s", diff)
	}
}

func TestTransitionGap(t *testing.T) {
	// Clocks jump from 02:00 to 03:00, Paris spring 2000.
	trans := Transition{
		DateTime: localtime.DateTime{Year: 2000, Month: time.March, Day: 26, Hour: 2},
		Before:   3600,
		After:    7200,
	}
	if !trans.IsGap() {
		t.Error("IsGap() = false, want true")
	}
	if got, want := trans.Instant(), int64(954032400); got != want {
		t.Errorf("Instant() = %d, want %d", got, want)
	}
	wantAfter := localtime.DateTime{Year: 2000, Month: time.March, Day: 26, Hour: 3}
	if diff := cmp.Diff(wantAfter, trans.DateTimeAfter()); diff != "" {
		t.Errorf("DateTimeAfter() mismatch (-want +got):\n%s", diff)
	}
	if got, want := trans.Duration(), time.Hour; got != want {
		t.Errorf("Duration() = %v, want %v", got, want)
	}
}

func TestTransitionOverlap(t *testing.T) {
	// Clocks fall back from 03:00 to 02:00, Paris autumn 2000.
	trans := Transition{
		DateTime: localtime.DateTime{Year: 2000, Month: time.October, Day: 29, Hour: 3},
		Before:   7200,
		After:    3600,
	}
	if trans.IsGap() {
		t.Error("IsGap() = true, want false")
	}
	if got, want := trans.Instant(), int64(972781200); got != want {
		t.Errorf("Instant() = %d, want %d", got, want)
	}
	wantAfter := localtime.DateTime{Year: 2000, Month: time.October, Day: 29, Hour: 2}
	if diff := cmp.Diff(wantAfter, trans.DateTimeAfter()); diff != "" {
		t.Errorf("DateTimeAfter() mismatch (-want +got):\n%s", diff)
	}
	if got, want := trans.Duration(), -time.Hour; got != want {
		t.Errorf("Duration() = %v, want %v", got, want)
	}
}

func TestTransitionRule(t *testing.T) {
	// EU spring rule: last Sunday of March, 01:00 UTC, +01:00 to +02:00.
	spring := TransitionRule{
		Month:    time.March,
		Day:      OnLastWeekday(time.Sunday),
		Time:     1 * time.Hour,
		TimeDef:  TimeUTC,
		Standard: 3600,
		Before:   3600,
		After:    7200,
	}
	cases := []struct {
		year int
		want Transition
	}{
		{2000, Transition{DateTime: localtime.DateTime{Year: 2000, Month: time.March, Day: 26, Hour: 2}, Before: 3600, After: 7200}},
		{2001, Transition{DateTime: localtime.DateTime{Year: 2001, Month: time.March, Day: 25, Hour: 2}, Before: 3600, After: 7200}},
		{2002, Transition{DateTime: localtime.DateTime{Year: 2002, Month: time.March, Day: 31, Hour: 2}, Before: 3600, After: 7200}},
	}
	for _, c := range cases {
		got := spring.Transition(c.year)
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("Transition(%d) mismatch (-want +got):\n%s", c.year, diff)
		}
	}
}

func TestTransitionRuleEndOfDay(t *testing.T) {
	// Midnight at the end of the last day of October lands on November 1st.
	rule := TransitionRule{
		Month:    time.October,
		Day:      OnLastDay(),
		Time:     0,
		EndOfDay: true,
		TimeDef:  TimeWall,
		Standard: 7200,
		Before:   10800,
		After:    7200,
	}
	got := rule.Transition(2010)
	want := Transition{
		DateTime: localtime.DateTime{Year: 2010, Month: time.November, Day: 1},
		Before:   10800,
		After:    7200,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Transition(2010) mismatch (-want +got):\n%s", diff)
	}
}
