package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	assert2 "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqsink/reqsink/pkg/config"
)

func TestConfigWatcher(t *testing.T) {
	assert := assert2.New(t)

	base := t.TempDir()
	configPath := filepath.Join(base, "reqsink.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("app:\n  port: 1000\n"), 0o644))

	cfg := config.MustConfig(base)
	require.Equal(t, 1000, cfg.App.Port)

	watcher, err := newConfigWatcher(cfg)
	require.NoError(t, err)
	watcher.reloadDebounce = 50 * time.Millisecond
	watcher.start()
	defer watcher.stop()

	require.NoError(t, os.WriteFile(configPath, []byte("app:\n  port: 2000\n"), 0o644))

	assert.Eventually(func() bool {
		return cfg.GetApp().Port == 2000
	}, 3*time.Second, 50*time.Millisecond)
}

func TestConfigWatcherIgnoresOtherFiles(t *testing.T) {
	assert := assert2.New(t)

	base := t.TempDir()
	configPath := filepath.Join(base, "reqsink.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("app:\n  port: 1000\n"), 0o644))

	cfg := config.MustConfig(base)
	watcher, err := newConfigWatcher(cfg)
	require.NoError(t, err)
	watcher.reloadDebounce = 20 * time.Millisecond
	watcher.start()
	defer watcher.stop()

	require.NoError(t, os.WriteFile(filepath.Join(base, "other.yml"), []byte("app:\n  port: 9999\n"), 0o644))

	time.Sleep(200 * time.Millisecond)
	assert.Equal(1000, cfg.GetApp().Port)
}
