package schedule

import (
	"fmt"
	"strings"
	"time"

	appLog "openday/internal/log"
	"openday/internal/model"
)

// requiredFields are the header names the CSV must carry, matched by
// name and case-insensitively; column order does not matter.
var requiredFields = []string{"date", "day", "time", "title", "location", "department"}

// italianWeekdays mirrors the locale of the source data, which also
// keys the weekday color table.
var italianWeekdays = map[time.Weekday]string{
	time.Monday:    "lunedì",
	time.Tuesday:   "martedì",
	time.Wednesday: "mercoledì",
	time.Thursday:  "giovedì",
	time.Friday:    "venerdì",
	time.Saturday:  "sabato",
	time.Sunday:    "domenica",
}

// ParseReport summarizes the silent-recovery work done while parsing:
// nothing in it is a user-facing error, but the counts are logged and
// surfaced by the check command.
type ParseReport struct {
	// Rows is the number of data lines seen (header excluded).
	Rows int
	// Dropped counts rows whose field count mismatched the header.
	Dropped int
	// DayMismatches counts rows whose day column disagreed with the
	// weekday the date implies; the derived weekday wins.
	DayMismatches int
	// BadDates counts rows whose date column is not ISO YYYY-MM-DD; the
	// record is kept with the day column as written.
	BadDates int
}

// ParseSchedule parses the delimited schedule format into EventRecords.
//
// Format: first line names the fields (order-independent); quote
// characters toggle an in-quotes mode so commas inside quotes are
// literal (no escaped-quote support); rows with a mismatched field
// count are dropped silently. An error is returned only when the header
// itself is unusable.
func ParseSchedule(data []byte) ([]model.EventRecord, ParseReport, error) {
	var report ParseReport

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil, report, fmt.Errorf("schedule is empty")
	}

	fieldIndex, err := parseHeader(lines[0])
	if err != nil {
		return nil, report, err
	}
	width := len(strings.Split(lines[0], ","))

	events := make([]model.EventRecord, 0, len(lines)-1)

	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		report.Rows++

		values := splitLine(line)
		if len(values) != width {
			report.Dropped++
			appLog.Warn("dropping row with mismatched field count",
				"expected", width, "got", len(values))
			continue
		}

		field := func(name string) string {
			return strings.TrimSpace(values[fieldIndex[name]])
		}

		rec := model.EventRecord{
			Date:       field("date"),
			Day:        field("day"),
			TimeSpec:   field("time"),
			Title:      field("title"),
			Location:   field("location"),
			Department: field("department"),
		}

		derived, ok := weekdayOf(rec.Date)
		if !ok {
			report.BadDates++
			appLog.Warn("row has non-ISO date, keeping day as written", "date", rec.Date)
		} else {
			if rec.Day != "" && !strings.EqualFold(rec.Day, derived) {
				report.DayMismatches++
				appLog.Warn("day column disagrees with date, using derived weekday",
					"date", rec.Date, "day", rec.Day, "derived", derived)
			}
			// The date is authoritative; the redundant day column is
			// normalized to the weekday it implies.
			rec.Day = derived
		}

		events = append(events, rec)
	}

	return events, report, nil
}

// parseHeader maps lowercased field names to column indices and verifies
// every required field is present.
func parseHeader(line string) (map[string]int, error) {
	index := make(map[string]int)
	for i, name := range strings.Split(line, ",") {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredFields {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("schedule header is missing field %q", name)
		}
	}
	return index, nil
}

// splitLine splits one data line on commas, with quote characters
// toggling an inside-quotes mode in which commas are literal. Quotes
// themselves are not emitted and there is no escaped-quote support.
func splitLine(line string) []string {
	var values []string
	var current strings.Builder
	inQuotes := false

	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			values = append(values, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	values = append(values, current.String())

	return values
}

// weekdayOf derives the Italian weekday name from an ISO date.
func weekdayOf(date string) (string, bool) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", false
	}
	return italianWeekdays[t.Weekday()], true
}
