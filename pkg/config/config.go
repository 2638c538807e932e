// Package config loads the application configuration from a YAML file with
// environment variable overrides. A missing or broken config file falls back
// to defaults so the recorders always have something to run with.
package config

import (
	"log/slog"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
)

// Config is the main configuration struct.
// App is the app config.
// Recorders is a map of recorder name and the corresponding config,
// overriding app-level defaults per recorder.
type Config struct {
	App       *AppConfig                 `koanf:"app" yaml:"app"`
	Recorders map[string]*RecorderConfig `koanf:"recorders" yaml:"recorders"`
	BaseDir   string                     `koanf:"-" yaml:"-"`

	mu sync.Mutex
}

// RecorderConfig is the per-recorder configuration.
// Name overrides the artifact name derived from the handler.
// OutputDir overrides the app-level artifact directory.
// Group overrides the script recording mode; nil means use the app default.
type RecorderConfig struct {
	Name      string `koanf:"name" yaml:"name"`
	OutputDir string `koanf:"outputDir" yaml:"outputDir"`
	Group     *bool  `koanf:"group" yaml:"group"`
}

// GroupMode resolves the script mode against the app-level default.
func (r *RecorderConfig) GroupMode(appDefault bool) bool {
	if r == nil || r.Group == nil {
		return appDefault
	}
	return *r.Group
}

// GetApp returns the app config.
func (c *Config) GetApp() *AppConfig {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.App
}

// GetRecorder returns the config for a named recorder.
// An unknown name yields an empty config, so all defaults apply.
func (c *Config) GetRecorder(name string) *RecorderConfig {
	c.mu.Lock()
	defer c.mu.Unlock()

	res, ok := c.Recorders[name]
	if !ok || res == nil {
		res = &RecorderConfig{}
	}
	return res
}

// EnsureConfigValues ensures that all config values are set.
func (c *Config) EnsureConfigValues() {
	defaultConfig := NewDefaultConfig(c.BaseDir)
	app := c.GetApp()

	c.mu.Lock()
	defer c.mu.Unlock()

	if app == nil {
		app = defaultConfig.App
	}

	if c.Recorders == nil {
		c.Recorders = defaultConfig.Recorders
	}

	if app.Port == 0 {
		app.Port = defaultConfig.App.Port
	}
	if app.HistoryDuration == 0 {
		app.HistoryDuration = defaultConfig.App.HistoryDuration
	}

	app.Paths = defaultConfig.App.Paths
	c.App = app
}

// Reload re-reads the config file in place.
// Errors leave the previous config untouched.
func (c *Config) Reload() {
	c.mu.Lock()
	defer c.mu.Unlock()

	filePath := c.App.Paths.ConfigFile
	provider := file.Provider(filePath)

	k := koanf.New(".")
	if err := k.Load(provider, yaml.Parser()); err != nil {
		slog.Error("error loading config", "error", err)
		return
	}

	if err := k.Unmarshal("", c); err != nil {
		slog.Error("error unmarshalling config", "error", err)
		return
	}

	slog.Info("Configuration reloaded!")
}

// MustConfig creates a new config from the YAML file under baseDir.
// In case the file does not exist or has incorrect YAML it returns a default
// config. Environment variables override file values.
//
// Koanf has a file watcher, but its easier to control the changes with a
// manual reload.
func MustConfig(baseDir string) *Config {
	paths := NewPaths(baseDir)
	filePath := paths.ConfigFile

	res := NewDefaultConfig(baseDir)

	k := koanf.New(".")
	provider := file.Provider(filePath)
	if err := k.Load(provider, yaml.Parser()); err != nil {
		slog.Error("error loading config. using fallback", "error", err)
		applyEnv(res.App)
		return res
	}

	cfg := res
	if err := k.Unmarshal("", cfg); err != nil {
		slog.Error("error loading config. using fallback", "error", err)
		applyEnv(res.App)
		return res
	}

	cfg.EnsureConfigValues()
	cfg.App.Paths = paths
	cfg.BaseDir = baseDir
	applyEnv(cfg.App)

	return cfg
}

// NewConfigFromContent creates a new config from a YAML file content.
func NewConfigFromContent(content []byte) (*Config, error) {
	k := koanf.New(".")
	provider := rawbytes.Provider(content)
	if err := k.Load(provider, yaml.Parser()); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.EnsureConfigValues()

	return cfg, nil
}

// NewDefaultConfig creates a new default config in case the config file is
// missing, not found or any other error.
func NewDefaultConfig(baseDir string) *Config {
	return &Config{
		App:       NewDefaultAppConfig(baseDir),
		Recorders: make(map[string]*RecorderConfig),
		BaseDir:   baseDir,
	}
}

func applyEnv(app *AppConfig) {
	if err := env.Parse(app); err != nil {
		slog.Error("error applying env overrides", "error", err)
	}
}
