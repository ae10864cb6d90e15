// Command openday serves a university outreach program as a filterable
// schedule page: a card list plus a multi-track timeline packed per
// department, fed by a CSV source.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"openday/internal/config"
	appLog "openday/internal/log"
)

var version = "dev"

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "openday",
	Short: "Event schedule server for open-day outreach programs",
	Long: `openday loads an event schedule from a CSV source (local file or URL),
packs overlapping events into per-department timeline lanes, and serves
the result as a web page with search, date, and department filters.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the openday version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("openday", version)
	},
}

// loadConfig reads the configured YAML file (creating it with defaults
// on first run) and applies its log level.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", cfgPath, err)
	}
	appLog.SetLevel(appLog.ParseLevel(cfg.LogLevel))
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "openday.yaml", "path to the YAML config file")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
