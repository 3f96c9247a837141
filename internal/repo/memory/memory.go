package memory

import (
	"context"
	"sync"

	"webmon/internal/alert"
	"webmon/internal/domain"
)

// Store is an in-memory adapter implementing every repo port. Used by
// tests and as the fallback when no database or snapshot path is set.
type Store struct {
	mu       sync.RWMutex
	snapshot *domain.MonitoringBatch
	results  []domain.CheckResult
	state    map[string]alert.Record
}

func New() *Store {
	return &Store{state: make(map[string]alert.Record)}
}

func (m *Store) Save(ctx context.Context, b *domain.MonitoringBatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *b
	cp.Results = append([]domain.CheckResult(nil), b.Results...)
	m.snapshot = &cp
	return nil
}

func (m *Store) Load(ctx context.Context) (*domain.MonitoringBatch, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.snapshot == nil {
		return nil, nil
	}
	cp := *m.snapshot
	cp.Results = append([]domain.CheckResult(nil), m.snapshot.Results...)
	return &cp, nil
}

func (m *Store) Append(ctx context.Context, b *domain.MonitoringBatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, b.Results...)
	return nil
}

func (m *Store) LastByURL(ctx context.Context, url string) (*domain.CheckResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var last *domain.CheckResult
	for i := range m.results {
		r := m.results[i]
		if r.URL != url {
			continue
		}
		if last == nil || r.CheckedAt.After(last.CheckedAt) {
			cp := r
			last = &cp
		}
	}
	return last, nil
}

func (m *Store) LoadState(ctx context.Context, st *alert.State) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, rec := range m.state {
		st.Restore(rec)
	}
	return nil
}

func (m *Store) SaveState(ctx context.Context, st *alert.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range st.Records() {
		m.state[rec.URL] = rec
	}
	return nil
}
