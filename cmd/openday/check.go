package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"openday/internal/schedule"
	"openday/internal/timeline"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the schedule source and report layout statistics",
	Long: `check fetches and parses the configured CSV source, reports malformed
rows, and prints the per-day lane layout the timeline would render.
It exits non-zero when the source is unusable.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fetcher := schedule.NewFetcher(cfg.CacheDir)
	body, fromCache, err := fetcher.Fetch(context.Background(), cfg.Source)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", cfg.Source, err)
	}

	events, report, err := schedule.ParseSchedule(body)
	if err != nil {
		return fmt.Errorf("parse schedule: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "source: %s", cfg.Source)
	if fromCache {
		fmt.Fprint(out, " (cached)")
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "rows parsed:     %d\n", report.Rows)
	fmt.Fprintf(out, "rows dropped:    %d\n", report.Dropped)
	fmt.Fprintf(out, "day mismatches:  %d\n", report.DayMismatches)
	fmt.Fprintf(out, "non-ISO dates:   %d\n", report.BadDates)

	pastMidnight := 0
	for _, ev := range events {
		if timeline.ResolveInterval(ev.TimeSpec).End > 24*60 {
			pastMidnight++
		}
	}
	fmt.Fprintf(out, "past midnight:   %d\n", pastMidnight)

	for _, date := range schedule.Dates(events) {
		dayEvents := schedule.ComputeVisible(events, schedule.Selection{Date: date})
		layout, ok := timeline.BuildDayLayout(dayEvents)
		if !ok {
			continue
		}

		day := ""
		if len(dayEvents) > 0 {
			day = dayEvents[0].Day
		}
		fmt.Fprintf(out, "\n%s %s: %d events, axis %s–%s\n",
			date, day, len(dayEvents),
			timeline.FormatTick(layout.Axis.Min), timeline.FormatTick(layout.Axis.Max))

		for _, dept := range layout.Departments {
			name := dept.ID
			if name == "" {
				name = "(no department)"
			}
			lanes := "lane"
			if dept.Lanes != 1 {
				lanes = "lanes"
			}
			fmt.Fprintf(out, "  %-12s %d events in %d %s\n", name, len(dept.Events), dept.Lanes, lanes)
		}
	}

	return nil
}
