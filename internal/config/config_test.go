package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_NoPathFallsBackToDefaults(t *testing.T) {
	cfg, err := NewLoader().Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_ExplicitFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
spool_dir: /var/spool/imprimer
retention_window: 30s
max_preflight: 2
`), 0o644))

	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/spool/imprimer", cfg.SpoolDir)
	assert.Equal(t, 30*time.Second, cfg.RetentionWindow)
	assert.Equal(t, 2, cfg.MaxPreflight)
	assert.Equal(t, "info", cfg.LogLevel, "unset fields keep their default")
}

func TestLoad_MissingExplicitPathIsError(t *testing.T) {
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "nosuch.yaml"))
	assert.Error(t, err)
}

func TestLoad_LogLevelEnvOverride(t *testing.T) {
	t.Setenv("IMPRIMER_LOG_LEVEL", "debug")
	cfg, err := NewLoader().Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}
