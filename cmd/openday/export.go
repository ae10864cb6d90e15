package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"openday/internal/export"
	appLog "openday/internal/log"
	"openday/internal/schedule"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the schedule as an iCalendar (.ics) file",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "-", "output path, or - for stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fetcher := schedule.NewFetcher(cfg.CacheDir)
	body, fromCache, err := fetcher.Fetch(context.Background(), cfg.Source)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", cfg.Source, err)
	}
	if fromCache {
		appLog.Info("using cached schedule", "source", cfg.Source)
	}

	events, report, err := schedule.ParseSchedule(body)
	if err != nil {
		return fmt.Errorf("parse schedule: %w", err)
	}
	if report.Dropped > 0 {
		appLog.Warn("rows dropped during parse", "dropped", report.Dropped)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
	}

	out := export.Serialize(events, loc)

	if exportOut == "-" {
		fmt.Print(out)
		return nil
	}
	if err := os.WriteFile(exportOut, []byte(out), 0o644); err != nil {
		return err
	}
	appLog.Info("calendar written", "path", exportOut, "events", len(events))
	return nil
}
