package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPackLanes_NoSameLaneOverlap tests that no two intervals sharing a
// lane overlap, on a mixed set
func TestPackLanes_NoSameLaneOverlap(t *testing.T) {
	intervals := []Interval{
		{540, 600}, {570, 630}, {600, 660}, {555, 700}, {720, 780}, {540, 780},
	}
	lanes := PackLanes(intervals)
	require.Len(t, lanes, len(intervals))

	for i := range intervals {
		for j := i + 1; j < len(intervals); j++ {
			if lanes[i] == lanes[j] {
				assert.False(t, intervals[i].Overlaps(intervals[j]),
					"intervals %d and %d share lane %d but overlap", i, j, lanes[i])
			}
		}
	}
}

// TestPackLanes_MutualOverlapUsesNLanes tests that N pairwise-overlapping
// intervals need exactly N lanes (clique number)
func TestPackLanes_MutualOverlapUsesNLanes(t *testing.T) {
	intervals := []Interval{
		{540, 900}, {560, 880}, {580, 860}, {600, 840}, {620, 820},
	}
	lanes := PackLanes(intervals)
	assert.Equal(t, 5, LaneCount(lanes))
}

// TestPackLanes_DisjointUsesOneLane tests that fully disjoint intervals
// all pack into lane 0
func TestPackLanes_DisjointUsesOneLane(t *testing.T) {
	intervals := []Interval{
		{540, 600}, {600, 660}, {700, 760}, {900, 960},
	}
	lanes := PackLanes(intervals)
	assert.Equal(t, 1, LaneCount(lanes))
	for _, l := range lanes {
		assert.Equal(t, 0, l)
	}
}

// TestPackLanes_FirstFitReusesFreedLane tests the end-to-end example:
// two overlapping events then a later one reusing lane 0
func TestPackLanes_FirstFitReusesFreedLane(t *testing.T) {
	intervals := []Interval{
		{540, 600}, // 9:00–10:00
		{570, 630}, // 9:30–10:30
		{660, 720}, // 11:00–12:00
	}
	lanes := PackLanes(intervals)
	assert.Equal(t, []int{0, 1, 0}, lanes)
}

// TestPackLanes_StableOnTies tests that equal start times keep input order
func TestPackLanes_StableOnTies(t *testing.T) {
	intervals := []Interval{
		{540, 600}, {540, 600}, {540, 600},
	}
	lanes := PackLanes(intervals)
	assert.Equal(t, []int{0, 1, 2}, lanes)
}

// TestPackLanes_Deterministic tests that repeated runs on identical input
// yield identical assignments
func TestPackLanes_Deterministic(t *testing.T) {
	intervals := []Interval{
		{600, 700}, {540, 620}, {610, 640}, {540, 780}, {660, 720},
	}
	first := PackLanes(intervals)
	for run := 0; run < 5; run++ {
		assert.Equal(t, first, PackLanes(intervals))
	}
}

// TestPackLanes_Empty tests the zero-event edge
func TestPackLanes_Empty(t *testing.T) {
	lanes := PackLanes(nil)
	assert.Empty(t, lanes)
	assert.Equal(t, 0, LaneCount(lanes))
}

// TestColumnSpans_TransitiveGroup tests that the width divisor comes from
// the whole overlap group, not just same-lane neighbors
func TestColumnSpans_TransitiveGroup(t *testing.T) {
	// a overlaps b, b overlaps c, but a and c are disjoint: a and c pack
	// into lane 0, b into lane 1. All of b's partners still see lane 1.
	intervals := []Interval{
		{540, 600}, // a
		{570, 660}, // b
		{620, 700}, // c
	}
	lanes := PackLanes(intervals)
	require.Equal(t, []int{0, 1, 0}, lanes)

	spans := ColumnSpans(intervals, lanes)
	assert.Equal(t, []int{2, 2, 2}, spans)
}

// TestColumnSpans_IsolatedEvent tests that a non-overlapping event keeps
// the full width
func TestColumnSpans_IsolatedEvent(t *testing.T) {
	intervals := []Interval{
		{540, 600}, {570, 630}, {900, 960},
	}
	lanes := PackLanes(intervals)
	spans := ColumnSpans(intervals, lanes)

	assert.Equal(t, 2, spans[0])
	assert.Equal(t, 2, spans[1])
	assert.Equal(t, 1, spans[2])
}
