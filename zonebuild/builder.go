// Package zonebuild constructs zone rule sets from a declarative
// description: a sequence of windows, each with a standard offset, and per
// window either a fixed daylight saving amount or a set of seasonal rules.
// The terminal call resolves the description into a zonerules.Rules.
package zonebuild

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/ngrash/go-zonerules/localtime"
	"github.com/ngrash/go-zonerules/zonerules"
)

// maxRulesPerWindow caps the number of concrete rules a window can hold.
const maxRulesPerWindow = 2000

// Builder assembles the offset history of a time zone window by window.
// Windows are added in chronological order; rules and fixed savings always
// apply to the most recently added window. The zero value is ready to use.
//
// A Builder is single-use: after Rules succeeds it cannot be modified or
// resolved again.
type Builder struct {
	windows []*window
	current int // index of the window rules and savings apply to
	done    bool
}

// window is a period of the timeline with one standard offset and either
// fixed savings or seasonal rules.
type window struct {
	standard localtime.Offset
	end      localtime.DateTime
	endDef   zonerules.TimeDefinition

	fixedSavings         *time.Duration
	rules                []*rule
	lastRules            []*rule
	maxLastRuleStartYear int
}

// rule is one year's potential transition within a window.
type rule struct {
	year     int
	month    time.Month
	day      zonerules.DaySpec
	time     time.Duration
	endOfDay bool
	timeDef  zonerules.TimeDefinition
	savings  time.Duration
}

func (b *Builder) checkReuse() error {
	if b.done {
		return errors.New("builder has already been resolved")
	}
	return nil
}

// AddWindow opens a new window with the given standard offset, ending at
// the given local date-time interpreted per the time definition. The end
// must be strictly after the end of the previous window. The actual instant
// the window ends at depends on the daylight savings in force when it ends,
// which is only known once the description is resolved.
func (b *Builder) AddWindow(standard localtime.Offset, end localtime.DateTime, endDef zonerules.TimeDefinition) error {
	if err := b.checkReuse(); err != nil {
		return err
	}
	if err := end.Validate(); err != nil {
		return fmt.Errorf("window end: %w", err)
	}
	if len(b.windows) > 0 {
		prev := b.windows[len(b.windows)-1]
		if prev.end.Equal(localtime.MaxDateTime) {
			return errors.New("cannot add a window after a window that ends never")
		}
		if !end.After(prev.end) {
			return fmt.Errorf("windows must be added in date-time order: %v is not after %v", end, prev.end)
		}
	}
	b.windows = append(b.windows, &window{
		standard:             standard,
		end:                  end,
		endDef:               endDef,
		maxLastRuleStartYear: localtime.MinYear,
	})
	b.current = len(b.windows) - 1
	return nil
}

// AddWindowForever opens a final window with the given standard offset that
// never ends.
func (b *Builder) AddWindowForever(standard localtime.Offset) error {
	return b.AddWindow(standard, localtime.MaxDateTime, zonerules.TimeWall)
}

// SetFixedSavings applies a constant daylight saving amount throughout the
// current window instead of seasonal rules.
func (b *Builder) SetFixedSavings(savings time.Duration) error {
	if err := b.checkReuse(); err != nil {
		return err
	}
	if len(b.windows) == 0 {
		return errors.New("must add a window before setting fixed savings")
	}
	if savings%time.Second != 0 {
		return fmt.Errorf("fixed savings %v must be a whole number of seconds", savings)
	}
	w := b.windows[b.current]
	if len(w.rules) > 0 || len(w.lastRules) > 0 {
		return errors.New("window has seasonal rules, cannot have fixed savings")
	}
	w.fixedSavings = &savings
	return nil
}

// AddRule adds a seasonal rule to the current window, applying in every
// year from startYear to endYear. An endYear of localtime.MaxYear makes the
// rule recur forever. The day of the transition is resolved per year from
// month and day; timeOfDay is the time of the cutover from 0 up to and
// including 24h, interpreted per timeDef, where exactly 24h means midnight
// at the end of the resolved day. savings is the daylight saving amount in
// force after the transition.
func (b *Builder) AddRule(
	startYear, endYear int,
	month time.Month,
	day zonerules.DaySpec,
	timeOfDay time.Duration,
	timeDef zonerules.TimeDefinition,
	savings time.Duration,
) error {
	if err := b.checkReuse(); err != nil {
		return err
	}
	if len(b.windows) == 0 {
		return errors.New("must add a window before adding a rule")
	}
	var errs []error
	if startYear < localtime.MinYear || startYear > localtime.MaxYear {
		errs = append(errs, fmt.Errorf("start year %d out of range [%d, %d]", startYear, localtime.MinYear, localtime.MaxYear))
	}
	if endYear < localtime.MinYear || endYear > localtime.MaxYear {
		errs = append(errs, fmt.Errorf("end year %d out of range [%d, %d]", endYear, localtime.MinYear, localtime.MaxYear))
	}
	if startYear > endYear {
		errs = append(errs, fmt.Errorf("start year %d after end year %d", startYear, endYear))
	}
	if month < time.January || month > time.December {
		errs = append(errs, fmt.Errorf("invalid month %d", int(month)))
	}
	if timeOfDay < 0 || timeOfDay > 24*time.Hour {
		errs = append(errs, fmt.Errorf("time of day %v out of range [0, 24h]", timeOfDay))
	}
	if timeOfDay%time.Second != 0 {
		errs = append(errs, fmt.Errorf("time of day %v must be a whole number of seconds", timeOfDay))
	}
	if savings%time.Second != 0 {
		errs = append(errs, fmt.Errorf("savings %v must be a whole number of seconds", savings))
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	if err := day.Validate(month, startYear, endYear); err != nil {
		return err
	}
	w := b.windows[b.current]
	if w.fixedSavings != nil {
		return errors.New("window has fixed savings, cannot have seasonal rules")
	}
	if len(w.rules) >= maxRulesPerWindow {
		return fmt.Errorf("window has reached the maximum of %d rules", maxRulesPerWindow)
	}
	endOfDay := false
	if timeOfDay == 24*time.Hour {
		endOfDay = true
		timeOfDay = 0
	}
	forever := false
	if endYear == localtime.MaxYear {
		forever = true
		endYear = startYear
	}
	for year := startYear; year <= endYear; year++ {
		r := &rule{
			year:     year,
			month:    month,
			day:      day,
			time:     timeOfDay,
			endOfDay: endOfDay,
			timeDef:  timeDef,
			savings:  savings,
		}
		if forever {
			w.lastRules = append(w.lastRules, r)
			w.maxLastRuleStartYear = max(w.maxLastRuleStartYear, startYear)
		} else {
			w.rules = append(w.rules, r)
		}
	}
	return nil
}

// AddSingleRule adds a rule applying once at the given local date-time.
func (b *Builder) AddSingleRule(dt localtime.DateTime, timeDef zonerules.TimeDefinition, savings time.Duration) error {
	if err := dt.Validate(); err != nil {
		return err
	}
	timeOfDay := time.Duration(dt.Hour)*time.Hour +
		time.Duration(dt.Minute)*time.Minute +
		time.Duration(dt.Second)*time.Second
	return b.AddRule(dt.Year, dt.Year, dt.Month, zonerules.OnDay(dt.Day), timeOfDay, timeDef, savings)
}

// Rules resolves the description into a rule set. The terminal window must
// never end, so every local date-time has a defined offset. On success the
// builder is spent and returns an error from any further call.
func (b *Builder) Rules(id string) (*zonerules.Rules, error) {
	if err := b.checkReuse(); err != nil {
		return nil, err
	}
	if len(b.windows) == 0 {
		return nil, errors.New("no windows have been added")
	}
	terminal := b.windows[len(b.windows)-1]
	if !terminal.end.Equal(localtime.MaxDateTime) {
		return nil, fmt.Errorf("terminal window must never end, ends at %v", terminal.end)
	}
	if len(b.windows) == 1 && terminal.isBareStandard() {
		b.done = true
		return zonerules.Fixed(id, terminal.standard), nil
	}

	var (
		stdChanges  []zonerules.Transition
		transitions []zonerules.Transition
		tailRules   []zonerules.TransitionRule
	)

	first := b.windows[0]
	std := first.standard
	var savings time.Duration
	if first.fixedSavings != nil {
		savings = *first.fixedSavings
	}
	firstWall := std.Plus(savings)
	windowStartDT := localtime.MinDateTime
	windowStartOff := firstWall
	windowStartInstant := windowStartDT.Unix(windowStartOff)
	lastInstant := int64(math.MinInt64)

	for _, w := range b.windows {
		if err := w.tidy(windowStartDT.Year); err != nil {
			return nil, err
		}

		// The savings in force when the window opens: the fixed amount, or
		// the savings set by the last rule at or before the boundary. The
		// rules are probed with the previous window's standard offset and
		// savings, matching how a reader of the description would find the
		// clock set when the boundary arrives.
		var effective time.Duration
		if w.fixedSavings != nil {
			effective = *w.fixedSavings
		} else {
			for _, r := range w.rules {
				if r.transition(std, savings).Instant() > windowStartInstant {
					break
				}
				effective = r.savings
			}
		}

		if std != w.standard {
			stdChanges = append(stdChanges, zonerules.Transition{
				DateTime: localtime.FromUnix(windowStartInstant, std),
				Before:   std,
				After:    w.standard,
			})
			std = w.standard
		}

		effectiveWall := std.Plus(effective)
		if windowStartOff != effectiveWall {
			transitions = append(transitions, zonerules.Transition{
				DateTime: windowStartDT,
				Before:   windowStartOff,
				After:    effectiveWall,
			})
			lastInstant = windowStartInstant
		}
		savings = effective

		for _, r := range w.rules {
			trans := r.transition(std, savings)
			inst := trans.Instant()
			if inst >= windowStartInstant &&
				inst > lastInstant &&
				inst < w.endInstant(std, savings) &&
				trans.Before != trans.After {
				transitions = append(transitions, trans)
				lastInstant = inst
				savings = r.savings
			}
		}

		for _, lr := range w.lastRules {
			tailRules = append(tailRules, lr.transitionRule(std, savings))
			savings = lr.savings
		}

		windowStartOff = std.Plus(savings)
		windowStartDT = w.endDef.WallDateTime(w.end, std, windowStartOff)
		windowStartInstant = windowStartDT.Unix(windowStartOff)
	}

	rules, err := zonerules.New(id, first.standard, firstWall, stdChanges, transitions, tailRules)
	if err != nil {
		return nil, err
	}
	b.done = true
	return rules, nil
}

// isBareStandard reports whether the window contributes nothing but its
// standard offset.
func (w *window) isBareStandard() bool {
	return w.end.Equal(localtime.MaxDateTime) && w.endDef == zonerules.TimeWall &&
		w.fixedSavings == nil && len(w.rules) == 0 && len(w.lastRules) == 0
}

// tidy prepares the window for resolution: recurring rules are materialized
// into concrete per-year rules up to one year past the window start, rules
// are sorted chronologically and windows without rules default to zero
// fixed savings. Only a window that never ends keeps its recurring rules;
// for a finite window they are materialized up to a year past its end.
func (w *window) tidy(windowStartYear int) error {
	if len(w.lastRules) == 1 {
		return errors.New("cannot have only one rule that recurs forever")
	}
	if w.end.Equal(localtime.MaxDateTime) {
		w.maxLastRuleStartYear = max(w.maxLastRuleStartYear, windowStartYear) + 1
		for _, lr := range w.lastRules {
			w.materialize(lr, lr.year, w.maxLastRuleStartYear)
			lr.year = w.maxLastRuleStartYear + 1
		}
		if w.maxLastRuleStartYear == localtime.MaxYear {
			w.lastRules = nil
		} else {
			w.maxLastRuleStartYear++
		}
	} else {
		for _, lr := range w.lastRules {
			w.materialize(lr, lr.year, w.end.Year+1)
		}
		w.lastRules = nil
		w.maxLastRuleStartYear = localtime.MaxYear
	}

	sort.SliceStable(w.rules, func(i, j int) bool {
		return w.rules[i].less(w.rules[j])
	})
	sort.SliceStable(w.lastRules, func(i, j int) bool {
		return w.lastRules[i].less(w.lastRules[j])
	})

	if len(w.rules) == 0 && w.fixedSavings == nil {
		var zero time.Duration
		w.fixedSavings = &zero
	}
	return nil
}

// materialize appends concrete copies of a recurring rule for each year
// from startYear to endYear.
func (w *window) materialize(lr *rule, startYear, endYear int) {
	for year := startYear; year <= endYear; year++ {
		r := *lr
		r.year = year
		w.rules = append(w.rules, &r)
	}
}

// endInstant returns the instant the window ends at, given the standard
// offset and savings in force.
func (w *window) endInstant(std localtime.Offset, savings time.Duration) int64 {
	wall := std.Plus(savings)
	return w.endDef.WallDateTime(w.end, std, wall).Unix(wall)
}

func (r *rule) less(other *rule) bool {
	if r.year != other.year {
		return r.year < other.year
	}
	if r.month != other.month {
		return r.month < other.month
	}
	if d, od := r.day.DayIn(r.year, r.month), other.day.DayIn(other.year, other.month); d != od {
		return d < od
	}
	return r.time < other.time
}

// transition resolves the rule for its year, given the standard offset and
// the savings in force before the transition.
func (r *rule) transition(std localtime.Offset, savingsBefore time.Duration) zonerules.Transition {
	wall := std.Plus(savingsBefore)
	t := int(r.time / time.Second)
	dt := localtime.DateTime{
		Year:   r.year,
		Month:  r.month,
		Day:    r.day.DayIn(r.year, r.month),
		Hour:   t / 3600,
		Minute: t % 3600 / 60,
		Second: t % 60,
	}
	if r.endOfDay {
		dt = dt.AddDays(1)
	}
	return zonerules.Transition{
		DateTime: r.timeDef.WallDateTime(dt, std, wall),
		Before:   wall,
		After:    std.Plus(r.savings),
	}
}

// transitionRule converts the rule to its recurring form.
func (r *rule) transitionRule(std localtime.Offset, savingsBefore time.Duration) zonerules.TransitionRule {
	return zonerules.TransitionRule{
		Month:    r.month,
		Day:      r.day,
		Time:     r.time,
		EndOfDay: r.endOfDay,
		TimeDef:  r.timeDef,
		Standard: std,
		Before:   std.Plus(savingsBefore),
		After:    std.Plus(r.savings),
	}
}
