package repo

import (
	"context"

	"webmon/internal/alert"
	"webmon/internal/domain"
)

// Ports (interfaces) — swap in any persistence adapter.

// SnapshotStore holds the "current" batch: each pass overwrites the last.
type SnapshotStore interface {
	Save(ctx context.Context, b *domain.MonitoringBatch) error
	// Load returns nil, nil when no snapshot has been written yet.
	Load(ctx context.Context) (*domain.MonitoringBatch, error)
}

// HistoryStore keeps an append-only log of every result across passes.
type HistoryStore interface {
	Append(ctx context.Context, b *domain.MonitoringBatch) error
	LastByURL(ctx context.Context, url string) (*domain.CheckResult, error)
}

// AlertStateStore persists alert state between one-shot invocations so
// transition detection survives process restarts.
type AlertStateStore interface {
	LoadState(ctx context.Context, st *alert.State) error
	SaveState(ctx context.Context, st *alert.State) error
}
