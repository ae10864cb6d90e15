// Package export builds an iCalendar feed from the loaded schedule so
// visitors can subscribe to the program in their own calendar apps.
package export

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	appLog "openday/internal/log"
	"openday/internal/model"
	"openday/internal/timeline"
)

// BuildCalendar converts the event list into a VCALENDAR with one
// VEVENT per record, anchored to the given display timezone. Records
// whose date is not ISO are skipped (they have no absolute position on
// a real calendar); time specs resolve through the same interval model
// the timeline uses, so the feed and the page always agree.
func BuildCalendar(events []model.EventRecord, loc *time.Location) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)

	now := time.Now().In(loc)

	for i, ev := range events {
		day, err := time.ParseInLocation("2006-01-02", ev.Date, loc)
		if err != nil {
			appLog.Warn("skipping event with non-ISO date in ICS export",
				"date", ev.Date, "title", ev.Title)
			continue
		}

		iv := timeline.ResolveInterval(ev.TimeSpec)
		start := day.Add(time.Duration(iv.Start) * time.Minute)
		end := day.Add(time.Duration(iv.End) * time.Minute)

		// Deterministic per (date, position) so re-exports update rather
		// than duplicate events in subscribing clients.
		uid := fmt.Sprintf("%s-%03d@openday", ev.Date, i)

		ve := cal.AddEvent(uid)
		ve.SetDtStampTime(now)
		ve.SetStartAt(start)
		ve.SetEndAt(end)
		ve.SetSummary(ev.Title)
		if ev.Location != "" {
			ve.SetLocation(ev.Location)
		}
		if ev.Department != "" {
			ve.SetDescription(ev.Department)
		}
	}

	return cal
}

// Serialize renders the feed as text/calendar content.
func Serialize(events []model.EventRecord, loc *time.Location) string {
	return BuildCalendar(events, loc).Serialize()
}
