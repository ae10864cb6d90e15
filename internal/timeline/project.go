package timeline

import (
	"sort"

	"openday/internal/model"
)

// LayoutResult is the draw geometry computed for a single event within
// one layout pass. It lives in a side table returned by BuildDayLayout,
// keyed by the event's index in the input slice; source records are
// never annotated in place.
type LayoutResult struct {
	// Index is the position of the event in the input slice.
	Index int

	Interval Interval

	// Lane is the packed track inside the department: the row for the
	// horizontal timeline, the column for the vertical one.
	Lane int

	// TotalColumns is the shared width divisor for the vertical variant:
	// the lane-count context of the group of events this one overlaps.
	TotalColumns int

	// OffsetFraction and ExtentFraction position the event along the
	// shared axis, both in [0,1].
	OffsetFraction float64
	ExtentFraction float64
}

// DepartmentLayout groups one department's packed events for rendering.
type DepartmentLayout struct {
	ID    string
	Lanes int
	// Events are ordered by interval start (input order on ties).
	Events []LayoutResult
}

// DayLayout is the full layout of one calendar day: the shared axis and
// every department's packed lane assignments and projected geometry.
type DayLayout struct {
	Axis        Axis
	Departments []DepartmentLayout
}

// Project maps an interval onto axis-relative fractions: offset is the
// start position, extent the width, both normalized to [0,1]. The axis
// covers every projected interval by construction, so no clamping is
// applied.
func Project(iv Interval, axis Axis) (offset, extent float64) {
	span := float64(axis.Span())
	offset = float64(iv.Start-axis.Min) / span
	extent = float64(iv.Duration()) / span
	return offset, extent
}

// BuildDayLayout lays out the events of a single calendar day: resolves
// each record's time spec, computes the shared hour-aligned axis over
// the whole day, and packs lanes per department. Lane assignments are
// fresh on every call and the result is a pure function of the input,
// so rerunning on identical events yields identical geometry.
//
// ok is false when events is empty (no axis; render the empty state).
func BuildDayLayout(events []model.EventRecord) (DayLayout, bool) {
	if len(events) == 0 {
		return DayLayout{}, false
	}

	intervals := make([]Interval, len(events))
	for i, ev := range events {
		intervals[i] = ResolveInterval(ev.TimeSpec)
	}

	axis, ok := ComputeAxis(intervals)
	if !ok {
		return DayLayout{}, false
	}

	// Group event indices by department, departments sorted by ID.
	byDept := make(map[string][]int)
	for i, ev := range events {
		byDept[ev.Department] = append(byDept[ev.Department], i)
	}
	deptIDs := make([]string, 0, len(byDept))
	for id := range byDept {
		deptIDs = append(deptIDs, id)
	}
	sort.Strings(deptIDs)

	layout := DayLayout{Axis: axis}

	for _, id := range deptIDs {
		indices := byDept[id]

		deptIntervals := make([]Interval, len(indices))
		for k, idx := range indices {
			deptIntervals[k] = intervals[idx]
		}

		lanes := PackLanes(deptIntervals)
		spans := ColumnSpans(deptIntervals, lanes)

		dl := DepartmentLayout{
			ID:     id,
			Lanes:  LaneCount(lanes),
			Events: make([]LayoutResult, len(indices)),
		}
		for k, idx := range indices {
			offset, extent := Project(deptIntervals[k], axis)
			dl.Events[k] = LayoutResult{
				Index:          idx,
				Interval:       deptIntervals[k],
				Lane:           lanes[k],
				TotalColumns:   spans[k],
				OffsetFraction: offset,
				ExtentFraction: extent,
			}
		}

		// Render order: by start time, stable on input order.
		sort.SliceStable(dl.Events, func(a, b int) bool {
			return dl.Events[a].Interval.Start < dl.Events[b].Interval.Start
		})

		layout.Departments = append(layout.Departments, dl)
	}

	return layout, true
}
