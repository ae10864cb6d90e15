package timeline

import "sort"

// PackLanes assigns each interval a lane index such that no two
// intervals sharing a lane overlap, using greedy first-fit interval
// coloring: intervals are visited in order of ascending Start (ties keep
// input order), each is placed in the lowest-indexed lane whose members
// it does not overlap, and a new lane is opened when none fits.
//
// The returned slice is indexed like the input. The number of lanes used
// equals the maximum number of intervals simultaneously active at any
// instant (the interval graph's clique number). Lane indices are only
// meaningful within a single layout pass.
func PackLanes(intervals []Interval) []int {
	lanes := make([]int, len(intervals))

	order := make([]int, len(intervals))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return intervals[order[a]].Start < intervals[order[b]].Start
	})

	// laneMembers[l] holds the intervals already placed in lane l.
	var laneMembers [][]Interval

	for _, idx := range order {
		iv := intervals[idx]
		placed := false

		for lane, members := range laneMembers {
			if !overlapsAny(iv, members) {
				lanes[idx] = lane
				laneMembers[lane] = append(members, iv)
				placed = true
				break
			}
		}

		if !placed {
			lanes[idx] = len(laneMembers)
			laneMembers = append(laneMembers, []Interval{iv})
		}
	}

	return lanes
}

func overlapsAny(iv Interval, members []Interval) bool {
	for _, m := range members {
		if iv.Overlaps(m) {
			return true
		}
	}
	return false
}

// LaneCount returns the number of lanes a PackLanes assignment uses.
func LaneCount(lanes []int) int {
	max := -1
	for _, l := range lanes {
		if l > max {
			max = l
		}
	}
	return max + 1
}

// ColumnSpans computes, for each interval, the shared column-count
// divisor used by the vertical timeline: 1 plus the maximum lane index
// among all intervals it pairwise overlaps (the whole group, not just
// same-lane neighbors). Groups of mutually overlapping events thus get a
// consistent width even when packed into fewer lanes than the group size
// suggests.
func ColumnSpans(intervals []Interval, lanes []int) []int {
	spans := make([]int, len(intervals))
	for i, iv := range intervals {
		maxLane := lanes[i]
		for j, other := range intervals {
			if i == j {
				continue
			}
			if iv.Overlaps(other) && lanes[j] > maxLane {
				maxLane = lanes[j]
			}
		}
		spans[i] = maxLane + 1
	}
	return spans
}
