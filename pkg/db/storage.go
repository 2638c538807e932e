// Package db keeps a short-lived history of recorded snapshots with support
// for memory and redis backends. The history is a TTL cache over what the
// recorders saw, not a persistence layer: artifacts on disk remain the
// source of truth.
package db

import (
	"log/slog"
	"time"

	"github.com/reqsink/reqsink/pkg/config"
)

// Storage is the history storage backend.
// There should be only one Storage instance per application.
type Storage interface {
	// History returns the snapshot history table.
	History() HistoryTable

	// Close releases any resources held by the storage backend.
	Close()
}

// NewStorage creates a storage backend based on configuration.
// If storageCfg is nil or type is memory, returns an in-memory storage.
// If type is redis, returns a Redis-backed storage.
func NewStorage(storageCfg *config.StorageConfig, historyDuration time.Duration) Storage {
	if storageCfg == nil || storageCfg.Type == "" || storageCfg.Type == config.StorageTypeMemory {
		return newMemoryStorage(historyDuration)
	}

	if storageCfg.Type == config.StorageTypeRedis {
		storage, err := newRedisStorage(storageCfg.Redis, historyDuration)
		if err != nil {
			slog.Error("Failed to create Redis storage, falling back to memory", "error", err)
			return newMemoryStorage(historyDuration)
		}
		return storage
	}

	slog.Warn("Unknown storage type, falling back to memory", "type", storageCfg.Type)
	return newMemoryStorage(historyDuration)
}
