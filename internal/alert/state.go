package alert

import (
	"sync"
	"time"

	"webmon/internal/domain"
)

// Record is the per-URL memory of the last observed status and the last
// time a notification was sent for it.
type Record struct {
	URL        string        `json:"url"`
	LastStatus domain.Status `json:"last_status"`
	LastSentAt time.Time     `json:"last_sent_at"` // zero when nothing was ever sent
}

// State holds one Record per URL. Callers own its lifetime: construct it
// once per process (or load a persisted copy) and pass it into every pass.
// Keys are independent; the mutex only guards the map itself.
type State struct {
	mu sync.Mutex
	m  map[string]Record
}

func NewState() *State {
	return &State{m: make(map[string]Record)}
}

// Get returns the record for url and whether one exists.
func (s *State) Get(url string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.m[url]
	return r, ok
}

func (s *State) set(r Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[r.URL] = r
}

// Records returns a copy of every record, for persistence.
func (s *State) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, 0, len(s.m))
	for _, r := range s.m {
		out = append(out, r)
	}
	return out
}

// Restore replaces the record for r.URL, used when loading persisted state.
func (s *State) Restore(r Record) {
	s.set(r)
}
