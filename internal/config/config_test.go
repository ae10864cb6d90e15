package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_FirstRunWritesDefaults tests that a missing config file is
// created with defaults
func TestLoad_FirstRunWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "openday.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.Listen)
	assert.Equal(t, "Europe/Rome", cfg.Timezone)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

// TestLoad_PartialFileIsNormalized tests default fill-in for partially
// specified configs
func TestLoad_PartialFileIsNormalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openday.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: 0.0.0.0:9000\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.Listen)
	assert.Equal(t, "schedule.csv", cfg.Source)
	assert.NotEmpty(t, cfg.Departments)
	assert.NotEmpty(t, cfg.DayColors)
}

// TestDepartmentMeta_Fallback tests the generic metadata for unknown
// departments
func TestDepartmentMeta_Fallback(t *testing.T) {
	cfg := DefaultConfig()

	known := cfg.DepartmentMeta("DST")
	assert.Equal(t, "Scienze della Terra", known.Name)

	unknown := cfg.DepartmentMeta("Matematica")
	assert.Equal(t, "Matematica", unknown.Name)
	assert.NotEmpty(t, unknown.Emoji)
	assert.NotEmpty(t, unknown.Color)
}

func TestDayColor_Fallback(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "#FF6B6B", cfg.DayColor("lunedì"))
	assert.Equal(t, "#999999", cfg.DayColor("someday"))
}

// TestSaveRoundTrip tests the atomic save path
func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openday.yaml")
	cfg := DefaultConfig()
	cfg.Listen = "127.0.0.1:1234"

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:1234", loaded.Listen)
	assert.Equal(t, cfg.Departments["DST"], loaded.Departments["DST"])
}
