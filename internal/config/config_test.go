package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DB_DATABASE", "appstore.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "chrry", cfg.AnchorAppSlug)
	assert.Equal(t, 2, cfg.MaxExpandDepth)
	assert.Equal(t, 50, cfg.ExpandPageSize)
	assert.False(t, cfg.CacheEnabled)
	assert.True(t, cfg.IsSQLite())
}

func TestLoadRequiresDatabase(t *testing.T) {
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DB_DATABASE", "")

	_, err := Load()
	assert.ErrorContains(t, err, "DB_DATABASE")
}

func TestLoadRequiresUserForServerDatabases(t *testing.T) {
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("DB_DATABASE", "appstore")
	t.Setenv("DB_USER", "")

	_, err := Load()
	assert.ErrorContains(t, err, "DB_USER")
}

func TestLoadRequiresRedisWhenCaching(t *testing.T) {
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DB_DATABASE", "appstore.db")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("REDIS_URL", "")

	_, err := Load()
	assert.ErrorContains(t, err, "REDIS_URL")
}

func TestLoadRejectsNegativeDepth(t *testing.T) {
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DB_DATABASE", "appstore.db")
	t.Setenv("MAX_EXPAND_DEPTH", "-1")

	_, err := Load()
	assert.ErrorContains(t, err, "MAX_EXPAND_DEPTH")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "DB_TYPE=sqlite\nDB_DATABASE=from-file.db\nANCHOR_APP_SLUG=atlas\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	// godotenv does not override variables already set; clear the ones under test.
	for _, key := range []string{"DB_TYPE", "DB_DATABASE", "ANCHOR_APP_SLUG"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := LoadFile(envFile)
	require.NoError(t, err)
	assert.Equal(t, "from-file.db", cfg.DBDatabase)
	assert.Equal(t, "atlas", cfg.AnchorAppSlug)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
