package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	assert2 "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustConfig(t *testing.T) {
	assert := assert2.New(t)

	t.Run("missing file falls back to defaults", func(t *testing.T) {
		base := t.TempDir()
		cfg := MustConfig(base)

		assert.Equal(2345, cfg.App.Port)
		assert.True(cfg.App.GroupScripts)
		assert.Equal(5*time.Minute, cfg.App.HistoryDuration)
		assert.Equal(filepath.Join(base, "reqsink.yml"), cfg.App.Paths.ConfigFile)
	})

	t.Run("values loaded from file", func(t *testing.T) {
		base := t.TempDir()
		contents := `
app:
  port: 8080
  collectionsDir: /tmp/collections
  groupScripts: false
  historyDuration: 10m
recorders:
  items:
    name: shop
    group: true
`
		require.NoError(t, os.WriteFile(filepath.Join(base, "reqsink.yml"), []byte(contents), 0o644))

		cfg := MustConfig(base)
		assert.Equal(8080, cfg.App.Port)
		assert.Equal("/tmp/collections", cfg.App.CollectionsDir)
		assert.False(cfg.App.GroupScripts)
		assert.Equal(10*time.Minute, cfg.App.HistoryDuration)

		rec := cfg.GetRecorder("items")
		assert.Equal("shop", rec.Name)
		assert.True(rec.GroupMode(false))
	})

	t.Run("broken yaml falls back to defaults", func(t *testing.T) {
		base := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(base, "reqsink.yml"), []byte(":broken\n\tyaml"), 0o644))

		cfg := MustConfig(base)
		assert.Equal(2345, cfg.App.Port)
	})

	t.Run("env overrides file", func(t *testing.T) {
		base := t.TempDir()
		contents := "app:\n  port: 8080\n"
		require.NoError(t, os.WriteFile(filepath.Join(base, "reqsink.yml"), []byte(contents), 0o644))

		t.Setenv("PORT", "9090")

		cfg := MustConfig(base)
		assert.Equal(9090, cfg.App.Port)
	})
}

func TestNewConfigFromContent(t *testing.T) {
	assert := assert2.New(t)

	t.Run("valid content", func(t *testing.T) {
		cfg, err := NewConfigFromContent([]byte("app:\n  port: 3000\n"))
		assert.NoError(err)
		assert.Equal(3000, cfg.App.Port)
		// defaults fill the gaps
		assert.Equal(5*time.Minute, cfg.App.HistoryDuration)
	})

	t.Run("storage section", func(t *testing.T) {
		contents := `
app:
  storage:
    type: redis
    redis:
      address: localhost:6379
      db: 2
`
		cfg, err := NewConfigFromContent([]byte(contents))
		assert.NoError(err)
		assert.Equal(StorageTypeRedis, cfg.App.Storage.Type)
		assert.Equal("localhost:6379", cfg.App.Storage.Redis.Address)
		assert.Equal(2, cfg.App.Storage.Redis.DB)
	})

	t.Run("invalid content", func(t *testing.T) {
		_, err := NewConfigFromContent([]byte(":broken\n\tyaml"))
		assert.Error(err)
	})
}

func TestGetRecorder(t *testing.T) {
	assert := assert2.New(t)

	cfg := NewDefaultConfig(t.TempDir())

	t.Run("unknown name yields empty config", func(t *testing.T) {
		rec := cfg.GetRecorder("nope")
		assert.NotNil(rec)
		assert.Equal("", rec.Name)
		assert.True(rec.GroupMode(true))
		assert.False(rec.GroupMode(false))
	})
}

func TestReload(t *testing.T) {
	assert := assert2.New(t)

	base := t.TempDir()
	configPath := filepath.Join(base, "reqsink.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("app:\n  port: 1000\n"), 0o644))

	cfg := MustConfig(base)
	assert.Equal(1000, cfg.App.Port)

	require.NoError(t, os.WriteFile(configPath, []byte("app:\n  port: 2000\n"), 0o644))
	cfg.Reload()
	assert.Equal(2000, cfg.App.Port)
}
