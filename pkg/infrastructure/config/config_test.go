package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdirForTest(t, t.TempDir())

	v, err := New("")
	require.NoError(t, err)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 21, cfg.LookAheadDays)
	assert.Equal(t, "1/2/2006", cfg.DateLayout)
	assert.Equal(t, "Customer Releases", cfg.DemandType)
	assert.Equal(t, "Fecha De Actualizacion", cfg.RefreshColumn)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, 10*time.Minute, cfg.WatchInterval)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prodseq.yaml")
	content := []byte("catalog: data/parts_data.csv\nlook_ahead_days: 14\nformat: json\nwatch_interval: 30s\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	t.Setenv("PRODSEQ_LOOK_AHEAD_DAYS", "28")

	v, err := New(path)
	require.NoError(t, err)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "data/parts_data.csv", cfg.Catalog)
	assert.Equal(t, 28, cfg.LookAheadDays)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 30*time.Second, cfg.WatchInterval)
}

func TestNew_MissingExplicitFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestValidate(t *testing.T) {
	valid := Config{LookAheadDays: 21, DemandType: "Customer Releases", DateLayout: "1/2/2006", Format: "text"}
	require.NoError(t, valid.Validate())

	testCases := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"negative look-ahead", func(c *Config) { c.LookAheadDays = -1 }, "look_ahead_days cannot be negative"},
		{"empty demand type", func(c *Config) { c.DemandType = "" }, "demand_type cannot be empty"},
		{"empty layout", func(c *Config) { c.DateLayout = "" }, "date_layout cannot be empty"},
		{"bad format", func(c *Config) { c.Format = "html" }, "unsupported output format: html"},
		{"negative interval", func(c *Config) { c.WatchInterval = -time.Second }, "watch_interval cannot be negative"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

// chdirForTest changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir, which needs Go 1.24).
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
