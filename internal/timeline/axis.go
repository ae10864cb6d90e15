package timeline

import "fmt"

// Axis is the shared hour-aligned time window all events in one layout
// pass are positioned against. Min and Max are minutes since midnight
// and always multiples of 60, with Min <= every Start and Max >= every
// End of the intervals the axis was computed over.
type Axis struct {
	Min int
	Max int
}

// ComputeAxis derives the axis window covering all given intervals,
// floored/ceiled to hour boundaries. ok is false for an empty input:
// there is no axis and the caller renders the empty state instead.
func ComputeAxis(intervals []Interval) (Axis, bool) {
	if len(intervals) == 0 {
		return Axis{}, false
	}

	min := intervals[0].Start
	max := intervals[0].End
	for _, iv := range intervals[1:] {
		if iv.Start < min {
			min = iv.Start
		}
		if iv.End > max {
			max = iv.End
		}
	}

	return Axis{
		Min: min / 60 * 60,
		Max: (max + 59) / 60 * 60,
	}, true
}

// Span returns the axis width in minutes.
func (a Axis) Span() int {
	return a.Max - a.Min
}

// HourTicks returns the multiples of 60 from Min to Max inclusive.
func (a Axis) HourTicks() []int {
	ticks := make([]int, 0, a.Span()/60+1)
	for t := a.Min; t <= a.Max; t += 60 {
		ticks = append(ticks, t)
	}
	return ticks
}

// FormatTick renders an hour tick as a "H:00" axis label.
func FormatTick(minutes int) string {
	return fmt.Sprintf("%d:00", minutes/60)
}
