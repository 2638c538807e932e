package config

import (
	"time"
)

// AppConfig is the app configuration.
// Port is the port number the ops server listens on.
// CollectionsDir is the directory for recorded collection files.
// ScriptsDir is the directory for recorded script files.
// Empty dirs mean each recorder uses a dot-prefixed directory derived
// from its own name in the current working directory.
// GroupScripts sets the default script recording mode: append when true,
// overwrite when false.
// HistoryDuration is how long recorded snapshots stay in the history storage.
// Storage configures the history backend (memory or redis).
type AppConfig struct {
	Port            int            `koanf:"port" yaml:"port" env:"PORT"`
	CollectionsDir  string         `koanf:"collectionsDir" yaml:"collectionsDir" env:"COLLECTIONS_DIR"`
	ScriptsDir      string         `koanf:"scriptsDir" yaml:"scriptsDir" env:"SCRIPTS_DIR"`
	GroupScripts    bool           `koanf:"groupScripts" yaml:"groupScripts" env:"GROUP_SCRIPTS"`
	HistoryDuration time.Duration  `koanf:"historyDuration" yaml:"historyDuration" env:"HISTORY_DURATION"`
	Storage         *StorageConfig `koanf:"storage" yaml:"storage"`
	Paths           Paths          `koanf:"-" yaml:"-"`
}

// NewDefaultAppConfig creates a new default app config in case the config
// file is missing, not found or any other error.
func NewDefaultAppConfig(baseDir string) *AppConfig {
	return &AppConfig{
		Port:            2345,
		GroupScripts:    true,
		HistoryDuration: 5 * time.Minute,
		Paths:           NewPaths(baseDir),
	}
}

// StorageType defines the type of history storage backend.
type StorageType string

const (
	// StorageTypeMemory is the default in-memory storage (per-instance).
	StorageTypeMemory StorageType = "memory"

	// StorageTypeRedis uses Redis for shared storage.
	StorageTypeRedis StorageType = "redis"
)

// StorageConfig configures the history storage backend.
type StorageConfig struct {
	Type  StorageType  `koanf:"type" yaml:"type"`
	Redis *RedisConfig `koanf:"redis" yaml:"redis"`
}

// RedisConfig configures the Redis connection.
type RedisConfig struct {
	// host:port
	Address  string `koanf:"address" yaml:"address" env:"REDIS_ADDRESS"`
	Password string `koanf:"password" yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `koanf:"db" yaml:"db" env:"REDIS_DB"`
}
