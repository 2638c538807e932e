package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"github.com/reqsink/reqsink/pkg/config"
	"github.com/reqsink/reqsink/pkg/snapshot"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const redisNamespace = "reqsink:history"

// Ensure redisStorage implements Storage interface.
var _ Storage = (*redisStorage)(nil)

// redisStorage is a Redis-backed storage.
type redisStorage struct {
	client  *redis.Client
	history *redisHistoryTable
}

func newRedisStorage(cfg *config.RedisConfig, historyDuration time.Duration) (*redisStorage, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config is nil")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &redisStorage{
		client:  client,
		history: newRedisHistoryTable(client, redisNamespace, historyDuration),
	}, nil
}

func (s *redisStorage) History() HistoryTable {
	return s.history
}

func (s *redisStorage) Close() {
	_ = s.client.Close()
}

// redisHistoryTable is a Redis-backed implementation of HistoryTable.
// Snapshots are stored as JSON records with a TTL.
type redisHistoryTable struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration
}

func newRedisHistoryTable(client *redis.Client, namespace string, ttl time.Duration) *redisHistoryTable {
	return &redisHistoryTable{
		client:    client,
		namespace: namespace,
		ttl:       ttl,
	}
}

func (h *redisHistoryTable) Set(ctx context.Context, snap *snapshot.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		slog.Error("Error marshaling history record", "error", err)
		return
	}

	key := h.fullKey(historyKey(snap.Method, snap.URL))
	h.client.Set(ctx, key, data, h.ttl)
}

func (h *redisHistoryTable) Get(ctx context.Context, method, rawURL string) (*snapshot.Snapshot, bool) {
	key := h.fullKey(historyKey(method, rawURL))

	data, err := h.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		return nil, false
	}

	snap := &snapshot.Snapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, false
	}
	return snap, true
}

func (h *redisHistoryTable) Data(ctx context.Context) map[string]*snapshot.Snapshot {
	result := make(map[string]*snapshot.Snapshot)

	iter := h.client.Scan(ctx, 0, h.namespace+":*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		data, err := h.client.Get(ctx, key).Bytes()
		if err != nil {
			continue
		}

		snap := &snapshot.Snapshot{}
		if err := json.Unmarshal(data, snap); err != nil {
			continue
		}
		result[strings.TrimPrefix(key, h.namespace+":")] = snap
	}
	if err := iter.Err(); err != nil {
		slog.Error("Error scanning history keys", "error", err)
	}

	return result
}

func (h *redisHistoryTable) Clear(ctx context.Context) {
	iter := h.client.Scan(ctx, 0, h.namespace+":*", 0).Iterator()
	for iter.Next(ctx) {
		h.client.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		slog.Error("Error clearing history keys", "error", err)
	}
}

func (h *redisHistoryTable) fullKey(key string) string {
	return h.namespace + ":" + key
}
