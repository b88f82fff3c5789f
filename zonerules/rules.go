// Package zonerules models the offset history of a time zone as an
// immutable set of rules: a list of historic offset transitions plus
// recurring rules for the open-ended future. A rule set answers, for any
// local date-time, whether it maps to a single offset, falls into a gap or
// falls into an overlap, and resolves absolute instants to offsets.
//
// Rule sets are usually produced by the zonebuild package.
package zonerules

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ngrash/go-zonerules/localtime"
)

// maxTailRules bounds the number of recurring rules describing the
// open-ended future. Real zones need at most two.
const maxTailRules = 15

// Rules is an immutable, queryable set of zone rules. All methods are safe
// for concurrent use.
type Rules struct {
	id string

	// Changes of the standard offset, sorted by instant. standardOffsets
	// has one more element than standardTransitions; standardOffsets[i] is
	// in force before standardTransitions[i].
	standardTransitions []int64
	standardOffsets     []localtime.Offset

	// Wall offset transitions, sorted by instant. wallOffsets[i] is in
	// force before instants[i]. localTransitions pairs up the local
	// date-times bounding each discontinuity: a gap stores [start of gap,
	// end of gap], an overlap stores [start of overlap, end of overlap],
	// so the array stays sorted and binary searchable.
	instants         []int64
	localTransitions []localtime.DateTime
	wallOffsets      []localtime.Offset

	// Recurring rules applying after the last entry in instants.
	tailRules []TransitionRule
}

// New returns a validated rule set.
//
// standardChanges lists the changes of the standard offset, transitions the
// changes of the wall offset, both in increasing instant order and chained:
// each entry's offset before must equal the previous entry's offset after,
// starting from baseStandard and baseWall respectively. tailRules are the
// recurring rules for years after the last transition.
func New(
	id string,
	baseStandard, baseWall localtime.Offset,
	standardChanges []Transition,
	transitions []Transition,
	tailRules []TransitionRule,
) (*Rules, error) {
	var errs []error
	if len(tailRules) > maxTailRules {
		errs = append(errs, fmt.Errorf("too many recurring rules: %d, at most %d", len(tailRules), maxTailRules))
	}
	prevOffset := baseStandard
	var prevInstant int64
	for i, ch := range standardChanges {
		if ch.Before == ch.After {
			errs = append(errs, fmt.Errorf("standard change %d: offsets must differ, both are %v", i, ch.Before))
		}
		if ch.Before != prevOffset {
			errs = append(errs, fmt.Errorf("standard change %d: offset before %v does not chain to %v", i, ch.Before, prevOffset))
		}
		if i > 0 && ch.Instant() <= prevInstant {
			errs = append(errs, fmt.Errorf("standard change %d: instants must strictly increase", i))
		}
		prevOffset = ch.After
		prevInstant = ch.Instant()
	}
	prevOffset = baseWall
	var prevLocalEnd localtime.DateTime
	for i, trans := range transitions {
		if trans.Before == trans.After {
			errs = append(errs, fmt.Errorf("transition %d: offsets must differ, both are %v", i, trans.Before))
		}
		if trans.Before != prevOffset {
			errs = append(errs, fmt.Errorf("transition %d: offset before %v does not chain to %v", i, trans.Before, prevOffset))
		}
		if i > 0 && trans.Instant() <= prevInstant {
			errs = append(errs, fmt.Errorf("transition %d: instants must strictly increase", i))
		}
		// The skipped or repeated local interval must start no earlier
		// than the previous one ends, or local date-times stop resolving
		// deterministically.
		localStart, localEnd := trans.DateTime, trans.DateTimeAfter()
		if !trans.IsGap() {
			localStart, localEnd = localEnd, localStart
		}
		if i > 0 && localStart.Before(prevLocalEnd) {
			errs = append(errs, fmt.Errorf("transition %d: local interval from %v conflicts with the previous transition ending %v", i, localStart, prevLocalEnd))
		}
		prevOffset = trans.After
		prevInstant = trans.Instant()
		prevLocalEnd = localEnd
	}
	for i, rule := range tailRules {
		if rule.Before == rule.After {
			errs = append(errs, fmt.Errorf("recurring rule %d: offsets must differ, both are %v", i, rule.Before))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid rule set %q: %w", id, err)
	}

	r := &Rules{
		id:                  id,
		standardTransitions: make([]int64, 0, len(standardChanges)),
		standardOffsets:     append(make([]localtime.Offset, 0, len(standardChanges)+1), baseStandard),
		instants:            make([]int64, 0, len(transitions)),
		localTransitions:    make([]localtime.DateTime, 0, 2*len(transitions)),
		wallOffsets:         append(make([]localtime.Offset, 0, len(transitions)+1), baseWall),
		tailRules:           append([]TransitionRule(nil), tailRules...),
	}
	for _, ch := range standardChanges {
		r.standardTransitions = append(r.standardTransitions, ch.Instant())
		r.standardOffsets = append(r.standardOffsets, ch.After)
	}
	for _, trans := range transitions {
		if trans.IsGap() {
			r.localTransitions = append(r.localTransitions, trans.DateTime, trans.DateTimeAfter())
		} else {
			r.localTransitions = append(r.localTransitions, trans.DateTimeAfter(), trans.DateTime)
		}
		r.instants = append(r.instants, trans.Instant())
		r.wallOffsets = append(r.wallOffsets, trans.After)
	}
	return r, nil
}

// Fixed returns a rule set with a single offset that never changes.
func Fixed(id string, offset localtime.Offset) *Rules {
	return &Rules{
		id:              id,
		standardOffsets: []localtime.Offset{offset},
		wallOffsets:     []localtime.Offset{offset},
	}
}

// ID returns the identifier the rule set was built with.
func (r *Rules) ID() string { return r.id }

// IsFixed reports whether the offset never changes.
func (r *Rules) IsFixed() bool {
	return len(r.instants) == 0 && len(r.tailRules) == 0
}

// Resolve classifies a local date-time as a single offset, a gap or an
// overlap.
func (r *Rules) Resolve(dt localtime.DateTime) OffsetInfo {
	// Date-times after the last historic transition are resolved against
	// the recurring rules of the surrounding year.
	n := len(r.localTransitions)
	if len(r.tailRules) > 0 && (n == 0 || dt.After(r.localTransitions[n-1])) {
		var info OffsetInfo
		for _, trans := range r.tailTransitions(dt.Year) {
			info = findOffsetInfo(dt, trans)
			if info.IsTransition() || info.offset == trans.Before {
				return info
			}
		}
		return info
	}

	if n == 0 {
		return singleInfo(dt, r.wallOffsets[0])
	}
	// Index of the last local transition entry at or before dt. Even
	// indexes open a discontinuity, odd indexes close one.
	idx := sort.Search(n, func(i int) bool { return dt.Before(r.localTransitions[i]) }) - 1
	if idx < 0 {
		return singleInfo(dt, r.wallOffsets[0])
	}
	if idx%2 == 0 {
		dtBefore := r.localTransitions[idx]
		dtAfter := r.localTransitions[idx+1]
		before := r.wallOffsets[idx/2]
		after := r.wallOffsets[idx/2+1]
		if after > before {
			return transitionInfo(dt, Transition{DateTime: dtBefore, Before: before, After: after})
		}
		// The local date-time of an overlap transition is its end in the
		// offset before.
		return transitionInfo(dt, Transition{DateTime: dtAfter, Before: before, After: after})
	}
	return singleInfo(dt, r.wallOffsets[idx/2+1])
}

// findOffsetInfo resolves dt against a single transition of the year
// resolved from the recurring rules.
func findOffsetInfo(dt localtime.DateTime, trans Transition) OffsetInfo {
	if trans.IsGap() {
		if dt.Before(trans.DateTime) {
			return singleInfo(dt, trans.Before)
		}
		if dt.Before(trans.DateTimeAfter()) {
			return transitionInfo(dt, trans)
		}
		return singleInfo(dt, trans.After)
	}
	if !dt.Before(trans.DateTime) {
		return singleInfo(dt, trans.After)
	}
	if dt.Before(trans.DateTimeAfter()) {
		return singleInfo(dt, trans.Before)
	}
	return transitionInfo(dt, trans)
}

// tailTransitions materializes the recurring rules for one year.
func (r *Rules) tailTransitions(year int) []Transition {
	trans := make([]Transition, len(r.tailRules))
	for i, rule := range r.tailRules {
		trans[i] = rule.Transition(year)
	}
	return trans
}

// OffsetAt returns the wall offset in force at the given instant. Unlike
// local date-times, instants always resolve to exactly one offset.
func (r *Rules) OffsetAt(instant int64) localtime.Offset {
	n := len(r.instants)
	if len(r.tailRules) > 0 && (n == 0 || instant > r.instants[n-1]) {
		dt := localtime.FromUnix(instant, r.wallOffsets[len(r.wallOffsets)-1])
		var last Transition
		for _, trans := range r.tailTransitions(dt.Year) {
			if instant < trans.Instant() {
				return trans.Before
			}
			last = trans
		}
		return last.After
	}
	idx := sort.Search(n, func(i int) bool { return r.instants[i] > instant })
	return r.wallOffsets[idx]
}

// StandardOffsetAt returns the standard offset in force at the given
// instant, ignoring daylight saving.
func (r *Rules) StandardOffsetAt(instant int64) localtime.Offset {
	idx := sort.Search(len(r.standardTransitions), func(i int) bool { return r.standardTransitions[i] > instant })
	return r.standardOffsets[idx]
}

// NextTransition returns the first transition strictly after the given
// instant. The second return value is false if there is none.
func (r *Rules) NextTransition(instant int64) (Transition, bool) {
	n := len(r.instants)
	if n == 0 {
		return Transition{}, false
	}
	if instant >= r.instants[n-1] {
		if len(r.tailRules) == 0 {
			return Transition{}, false
		}
		dt := localtime.FromUnix(instant, r.wallOffsets[len(r.wallOffsets)-1])
		for year := dt.Year; ; year++ {
			for _, trans := range r.tailTransitions(year) {
				if instant < trans.Instant() {
					return trans, true
				}
			}
			if year == localtime.MaxYear {
				return Transition{}, false
			}
		}
	}
	idx := sort.Search(n, func(i int) bool { return r.instants[i] > instant })
	return r.transitionAt(idx), true
}

// PreviousTransition returns the last transition strictly before the given
// instant. The second return value is false if there is none.
func (r *Rules) PreviousTransition(instant int64) (Transition, bool) {
	n := len(r.instants)
	if n == 0 {
		return Transition{}, false
	}
	lastHistoric := r.instants[n-1]
	if len(r.tailRules) > 0 && instant > lastHistoric {
		lastWall := r.wallOffsets[len(r.wallOffsets)-1]
		year := localtime.FromUnix(instant, lastWall).Year
		lastHistoricYear := localtime.FromUnix(lastHistoric, lastWall).Year
		for ; year > lastHistoricYear; year-- {
			trans := r.tailTransitions(year)
			for i := len(trans) - 1; i >= 0; i-- {
				if instant > trans[i].Instant() {
					return trans[i], true
				}
			}
		}
		// fall through to the historic transitions
	}
	idx := sort.Search(n, func(i int) bool { return r.instants[i] >= instant })
	if idx == 0 {
		return Transition{}, false
	}
	return r.transitionAt(idx-1), true
}

func (r *Rules) transitionAt(i int) Transition {
	return Transition{
		DateTime: localtime.FromUnix(r.instants[i], r.wallOffsets[i]),
		Before:   r.wallOffsets[i],
		After:    r.wallOffsets[i+1],
	}
}

// Transitions returns the historic transitions in increasing instant order.
func (r *Rules) Transitions() []Transition {
	trans := make([]Transition, len(r.instants))
	for i := range r.instants {
		trans[i] = r.transitionAt(i)
	}
	return trans
}

// TailRules returns the recurring rules applying to years after the last
// historic transition.
func (r *Rules) TailRules() []TransitionRule {
	return append([]TransitionRule(nil), r.tailRules...)
}

// FirstOffset returns the wall offset in force before the first transition.
func (r *Rules) FirstOffset() localtime.Offset {
	return r.wallOffsets[0]
}

// FirstStandardOffset returns the standard offset in force before the first
// standard offset change.
func (r *Rules) FirstStandardOffset() localtime.Offset {
	return r.standardOffsets[0]
}

// LastOffset returns the wall offset in force after the last historic
// transition, before any recurring rules apply.
func (r *Rules) LastOffset() localtime.Offset {
	return r.wallOffsets[len(r.wallOffsets)-1]
}

func (r *Rules) String() string {
	return fmt.Sprintf("rules[%s, standard %v]", r.id, r.standardOffsets[len(r.standardOffsets)-1])
}
