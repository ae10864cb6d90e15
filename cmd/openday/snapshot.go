package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"openday/internal/capture"
	appLog "openday/internal/log"
)

var snapshotOpts struct {
	url     string
	out     string
	width   int
	height  int
	timeout time.Duration
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Capture a PNG of the timeline page via headless Chromium",
	Long: `snapshot drives a headless Chromium instance against a running openday
server, waits for the page to finish rendering, and writes a PNG. The
result is what /preview.png serves.`,
	RunE: runSnapshot,
}

func init() {
	snapshotCmd.Flags().StringVar(&snapshotOpts.url, "url", "", "page URL to capture (default: http://<listen>/?view=timeline)")
	snapshotCmd.Flags().StringVar(&snapshotOpts.out, "out", "preview.png", "output PNG path")
	snapshotCmd.Flags().IntVar(&snapshotOpts.width, "width", capture.DefaultWidth, "viewport width in pixels")
	snapshotCmd.Flags().IntVar(&snapshotOpts.height, "height", capture.DefaultHeight, "viewport height in pixels")
	snapshotCmd.Flags().DurationVar(&snapshotOpts.timeout, "timeout", capture.DefaultTimeoutSec*time.Second, "capture timeout")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	url := snapshotOpts.url
	if url == "" {
		url = "http://" + cfg.Listen + "/?view=timeline"
	}

	appLog.Info("capturing timeline snapshot", "url", url, "out", snapshotOpts.out)

	err = capture.TimelinePNG(context.Background(), capture.Options{
		URL:        url,
		OutputPath: snapshotOpts.out,
		Width:      snapshotOpts.width,
		Height:     snapshotOpts.height,
		Timeout:    snapshotOpts.timeout,
	})
	if err != nil {
		return err
	}

	appLog.Info("snapshot written", "path", snapshotOpts.out)
	return nil
}
