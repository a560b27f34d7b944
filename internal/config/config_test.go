package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadWithoutFile checks that a missing config file yields the defaults.
func TestLoadWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

// TestLoadFromFile checks that config.yaml in the working directory is picked
// up and that omitted keys keep their defaults.
func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "database: /tmp/crm.db\nlanguage: ru\nlog:\n  level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/crm.db", cfg.Database)
	assert.Equal(t, "ru", cfg.Language)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, Default().Log.File, cfg.Log.File)
}

// TestLoadEnvOverride checks that environment variables beat the file.
func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("language: en\n"), 0o644))
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("CONTACTS_DESK_LANGUAGE", "ru")
	t.Setenv("CONTACTS_DESK_LOG_FILE", "/tmp/other.log")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "ru", cfg.Language)
	assert.Equal(t, "/tmp/other.log", cfg.Log.File)
}
