package zonerules

import (
	"fmt"

	"github.com/ngrash/go-zonerules/localtime"
)

// Kind classifies the result of resolving a local date-time against a rule
// set.
type Kind int

const (
	// Single means the local date-time occurs exactly once and maps to a
	// single offset.
	Single Kind = iota
	// Gap means the local date-time is skipped by a forward transition and
	// never occurs.
	Gap
	// Overlap means the local date-time occurs twice, once at each offset
	// of a backward transition.
	Overlap
)

func (k Kind) String() string {
	switch k {
	case Single:
		return "single"
	case Gap:
		return "gap"
	case Overlap:
		return "overlap"
	default:
		return "unknown"
	}
}

// OffsetInfo is the result of resolving a local date-time: either a single
// valid offset, or the transition causing the date-time to be skipped or
// repeated.
type OffsetInfo struct {
	dt         localtime.DateTime
	kind       Kind
	offset     localtime.Offset
	transition Transition
}

func singleInfo(dt localtime.DateTime, offset localtime.Offset) OffsetInfo {
	return OffsetInfo{dt: dt, kind: Single, offset: offset}
}

func transitionInfo(dt localtime.DateTime, trans Transition) OffsetInfo {
	kind := Overlap
	if trans.IsGap() {
		kind = Gap
	}
	return OffsetInfo{dt: dt, kind: kind, transition: trans}
}

// DateTime returns the local date-time the info describes.
func (i OffsetInfo) DateTime() localtime.DateTime { return i.dt }

// Kind returns the classification of the local date-time.
func (i OffsetInfo) Kind() Kind { return i.kind }

// IsTransition reports whether the local date-time falls into a gap or
// overlap.
func (i OffsetInfo) IsTransition() bool { return i.kind != Single }

// Offset returns the single valid offset. The second return value is false
// for a gap or overlap.
func (i OffsetInfo) Offset() (localtime.Offset, bool) {
	return i.offset, i.kind == Single
}

// Transition returns the transition causing the gap or overlap. The second
// return value is false for a single offset.
func (i OffsetInfo) Transition() (Transition, bool) {
	return i.transition, i.kind != Single
}

// OffsetBefore returns the offset in force before the transition, or the
// single offset.
func (i OffsetInfo) OffsetBefore() localtime.Offset {
	if i.kind == Single {
		return i.offset
	}
	return i.transition.Before
}

// OffsetAfter returns the offset in force after the transition, or the
// single offset.
func (i OffsetInfo) OffsetAfter() localtime.Offset {
	if i.kind == Single {
		return i.offset
	}
	return i.transition.After
}

func (i OffsetInfo) String() string {
	if i.kind == Single {
		return fmt.Sprintf("%v at %v", i.dt, i.offset)
	}
	return fmt.Sprintf("%v in %v", i.dt, i.transition)
}
