package timeline

import (
	"strconv"
	"strings"

	appLog "openday/internal/log"
)

// Interval is a half-open [Start, End) time range in minutes since
// midnight. End is always strictly greater than Start for any resolved
// interval; resolution enforces a 30-minute floor on the duration.
type Interval struct {
	Start int
	End   int
}

// Duration returns the interval length in minutes.
func (iv Interval) Duration() int {
	return iv.End - iv.Start
}

// Overlaps reports whether two half-open intervals intersect. Touching
// endpoints (a.End == b.Start) do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// Named period tokens and their fixed blocks.
const (
	periodMorning   = "mattino"
	periodAfternoon = "pomeriggio"

	morningStart   = 9 * 60
	afternoonStart = 14 * 60
	periodLength   = 4 * 60

	defaultDuration = 60
	minimumDuration = 30
)

// rangeDelimiter is the en-dash used in the CSV time column.
const rangeDelimiter = "–"

// ResolveInterval converts a textual time specification into a minute
// interval. Recognized forms:
//
//	"mattino"       -> 9:00–13:00
//	"pomeriggio"    -> 14:00–18:00
//	"14:00–15:30"   -> explicit range
//	"9–13"          -> explicit range, bare hours
//	"9" / "9:30"    -> bare start, default 60-minute duration
//
// A written end at or before start+30 is floored to start+30. Malformed
// hour tokens degrade to 0 rather than failing, so callers may see a
// 0:30 interval for garbage input; the record stays visible.
func ResolveInterval(spec string) Interval {
	switch strings.TrimSpace(spec) {
	case periodMorning:
		return Interval{Start: morningStart, End: morningStart + periodLength}
	case periodAfternoon:
		return Interval{Start: afternoonStart, End: afternoonStart + periodLength}
	}

	parts := strings.SplitN(spec, rangeDelimiter, 2)
	start := parseStart(parts[0])

	if len(parts) == 2 {
		end := parseStart(parts[1])
		if end < start+minimumDuration {
			end = start + minimumDuration
		}
		return Interval{Start: start, End: end}
	}

	return Interval{Start: start, End: start + defaultDuration}
}

// parseStart resolves a single time token ("9", "9:30", "14:00") into
// minutes since midnight. Unparseable hours degrade to 0.
func parseStart(token string) int {
	token = strings.TrimSpace(token)

	if hh, mm, ok := strings.Cut(token, ":"); ok {
		hour, err := strconv.Atoi(strings.TrimSpace(hh))
		if err != nil {
			appLog.Warn("unparseable hour token, degrading to 0:00", "token", token)
			hour = 0
		}
		// Minute defaults to 0 when absent or unparseable.
		minute, err := strconv.Atoi(strings.TrimSpace(mm))
		if err != nil {
			minute = 0
		}
		return hour*60 + minute
	}

	hour, err := strconv.Atoi(token)
	if err != nil {
		appLog.Warn("unparseable hour token, degrading to 0:00", "token", token)
		return 0
	}
	return hour * 60
}
