package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	appLog "openday/internal/log"
	"openday/internal/schedule"
	"openday/internal/web"
)

var servePreviewPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the schedule page and API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePreviewPath, "preview", "preview.png", "path of the PNG served at /preview.png")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := schedule.NewStore()
	fetcher := schedule.NewFetcher(cfg.CacheDir)

	// Initial load. A failure is not fatal: the server starts anyway and
	// reports the error state until a later refresh succeeds.
	if err := store.Reload(ctx, fetcher, cfg.Source); err != nil {
		appLog.Error("initial schedule load failed", err, "source", cfg.Source)
	} else {
		snap := store.Snapshot()
		appLog.Info("schedule loaded",
			"events", len(snap.Events),
			"dropped", snap.Report.Dropped,
			"day_mismatches", snap.Report.DayMismatches)
	}

	// Periodic refresh while serving.
	var c *cron.Cron
	if cfg.RefreshCron != "" {
		c = cron.New()
		_, err := c.AddFunc(cfg.RefreshCron, func() {
			if err := store.Reload(ctx, fetcher, cfg.Source); err != nil {
				appLog.Error("scheduled refresh failed", err, "source", cfg.Source)
				return
			}
			appLog.Info("schedule refreshed", "events", len(store.Snapshot().Events))
		})
		if err != nil {
			return err
		}
		c.Start()
		defer c.Stop()
		appLog.Info("refresh scheduled", "cron", cfg.RefreshCron)
	}

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           web.NewServer(cfg, store, servePreviewPath).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		appLog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
