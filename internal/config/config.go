package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"openday/internal/model"
)

// BasicAuthConfig holds HTTP Basic Auth credentials for the Web UI/API.
type BasicAuthConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the Web UI and API.
	Listen string `yaml:"listen" json:"listen"`

	// Source is where the schedule CSV comes from: either a local file
	// path or an http(s) URL.
	Source string `yaml:"source" json:"source"`

	// CacheDir is where fetched CSV bodies and their HTTP cache metadata
	// are stored. Only used for URL sources.
	CacheDir string `yaml:"cache_dir" json:"cache_dir"`

	// Timezone is the IANA timezone events are anchored to when exported
	// (e.g. the ICS feed). Display itself works on wall-clock minutes.
	Timezone string `yaml:"timezone" json:"timezone"`

	// RefreshCron is a cron-style schedule string (e.g. "*/15 * * * *")
	// for re-fetching the CSV while serving. Empty disables refresh.
	RefreshCron string `yaml:"refresh" json:"refresh"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`

	// Departments maps department IDs (the CSV `department` column) to
	// display metadata. Departments missing here get a generic fallback.
	Departments map[string]model.DepartmentMeta `yaml:"departments" json:"departments"`

	// DayColors maps weekday names to accent colors for date badges.
	DayColors map[string]string `yaml:"day_colors" json:"day_colors"`

	// BasicAuth, if non-nil, enables HTTP Basic Authentication on all
	// endpoints except /health.
	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty" json:"basic_auth,omitempty"`
}

// DefaultConfig returns an in-memory default configuration. The
// department and weekday tables default to the outreach program the
// schedule format originates from; deployments override them per event.
func DefaultConfig() *Config {
	return &Config{
		Listen:      "127.0.0.1:8080",
		Source:      "schedule.csv",
		CacheDir:    "./cache/csv",
		Timezone:    "Europe/Rome",
		RefreshCron: "",
		LogLevel:    "info",
		Departments: map[string]model.DepartmentMeta{
			"DST":     {Name: "Scienze della Terra", Emoji: "🌍", Color: "#8B4513"},
			"DSTF":    {Name: "Scienza e Tecnologia del Farmaco", Emoji: "💊", Color: "#DC143C"},
			"Fisica":  {Name: "Fisica", Emoji: "⚛️", Color: "#4169E1"},
			"Chimica": {Name: "Chimica", Emoji: "🧪", Color: "#32CD32"},
		},
		DayColors: map[string]string{
			"lunedì":    "#FF6B6B",
			"martedì":   "#4ECDC4",
			"mercoledì": "#45B7D1",
			"giovedì":   "#FFA07A",
			"venerdì":   "#98D8C8",
			"sabato":    "#F7DC6F",
			"domenica":  "#BB8FCE",
		},
		BasicAuth: nil,
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Listen == "" {
		c.Listen = def.Listen
	}
	if c.Source == "" {
		c.Source = def.Source
	}
	if c.CacheDir == "" {
		c.CacheDir = def.CacheDir
	}
	if c.Timezone == "" {
		c.Timezone = def.Timezone
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.Departments == nil {
		c.Departments = def.Departments
	}
	if c.DayColors == nil {
		c.DayColors = def.DayColors
	}
}

// DepartmentMeta resolves display metadata for a department ID.
func (c *Config) DepartmentMeta(id string) model.DepartmentMeta {
	if m, ok := c.Departments[id]; ok {
		return m
	}
	return model.DefaultDepartmentMeta(id)
}

// DayColor resolves the accent color for a weekday name.
func (c *Config) DayColor(day string) string {
	if col, ok := c.DayColors[day]; ok {
		return col
	}
	return "#999999"
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist:
//   - create parent directory if needed
//   - write a default config with 0600 perms
//   - return the default config
//   - If the file exists:
//   - read YAML and unmarshal into Config
//   - normalize defaults
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: create default config file.
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the given configuration to the specified path.
//
// Implementation details:
//   - Ensures parent directory exists (0700).
//   - Marshals cfg to YAML.
//   - Writes atomically via a temp file + rename.
//   - Ensures final file permissions are 0600.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// Atomic write: write to temp file in same directory then rename.
	tmp, err := os.CreateTemp(dir, ".openday-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	// Ensure we clean up temp file on error.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	return nil
}
