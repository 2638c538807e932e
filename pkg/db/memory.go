package db

import (
	"context"
	"sync"
	"time"

	"github.com/reqsink/reqsink/pkg/snapshot"
)

// Ensure memoryStorage implements Storage interface.
var _ Storage = (*memoryStorage)(nil)

// memoryStorage is an in-memory storage backend.
type memoryStorage struct {
	history *memoryHistoryTable
}

func newMemoryStorage(historyDuration time.Duration) *memoryStorage {
	return &memoryStorage{
		history: newMemoryHistoryTable(historyDuration),
	}
}

func (s *memoryStorage) History() HistoryTable {
	return s.history
}

func (s *memoryStorage) Close() {
	s.history.cancel()
}

// memoryHistoryTable is a mutex-protected map of snapshots with a reset
// ticker that clears it every clearTimeout.
type memoryHistoryTable struct {
	cancelFunc context.CancelFunc

	mu   sync.RWMutex
	data map[string]*snapshot.Snapshot
}

func newMemoryHistoryTable(clearTimeout time.Duration) *memoryHistoryTable {
	ctx, cancel := context.WithCancel(context.Background())

	h := &memoryHistoryTable{
		data:       make(map[string]*snapshot.Snapshot),
		cancelFunc: cancel,
	}

	if clearTimeout > 0 {
		startResetTicker(ctx, h, clearTimeout)
	}

	return h
}

func (h *memoryHistoryTable) Set(_ context.Context, snap *snapshot.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.data[historyKey(snap.Method, snap.URL)] = snap
}

func (h *memoryHistoryTable) Get(_ context.Context, method, rawURL string) (*snapshot.Snapshot, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	value, ok := h.data[historyKey(method, rawURL)]
	return value, ok
}

func (h *memoryHistoryTable) Data(_ context.Context) map[string]*snapshot.Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()

	cp := make(map[string]*snapshot.Snapshot, len(h.data))
	for k, v := range h.data {
		cp[k] = v
	}
	return cp
}

func (h *memoryHistoryTable) Clear(_ context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.data = make(map[string]*snapshot.Snapshot)
}

// cancel stops the reset ticker goroutine.
func (h *memoryHistoryTable) cancel() {
	if h.cancelFunc != nil {
		h.cancelFunc()
	}
}

func startResetTicker(ctx context.Context, h *memoryHistoryTable, clearTimeout time.Duration) {
	ticker := time.NewTicker(clearTimeout)
	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				h.Clear(ctx)
			}
		}
	}()
}
