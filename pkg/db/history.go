package db

import (
	"context"
	"strings"

	"github.com/reqsink/reqsink/pkg/snapshot"
)

// HistoryTable provides typed access to the recorded snapshot history.
type HistoryTable interface {
	// Set stores a snapshot, replacing a prior one with the same method and URL.
	Set(ctx context.Context, snap *snapshot.Snapshot)

	// Get retrieves a snapshot by method and raw URL.
	Get(ctx context.Context, method, rawURL string) (*snapshot.Snapshot, bool)

	// Data returns all recorded snapshots keyed by method:url.
	Data(ctx context.Context) map[string]*snapshot.Snapshot

	// Clear removes all history records.
	Clear(ctx context.Context)
}

func historyKey(method, rawURL string) string {
	return strings.Join([]string{method, rawURL}, ":")
}
