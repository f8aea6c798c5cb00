package state

import (
	"sync"
	"time"

	"github.com/five82/kuteview/internal/livelog"
)

// DefaultHistoryLimit bounds the entries kept for display.
const DefaultHistoryLimit = 5000

// ActivityWindow is how many one-second activity buckets are kept.
const ActivityWindow = 120

// Bucket counts the entries received during one second.
type Bucket struct {
	Start  time.Time
	Counts livelog.Counts
}

var _ livelog.Renderer = (*Store)(nil)

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Entries     []livelog.Entry // oldest first
	Counts      livelog.Counts
	Connected   bool
	Version     string
	LastChange  time.Time
	Revision    uint64   // bumps on every change; lets the UI skip re-rendering
	Overwritten int      // entries pushed out of the bounded history
	Activity    []Bucket // oldest first; seconds without entries are absent
}

// Store collects rendered entries from the live client for the UI.
type Store struct {
	mu       sync.RWMutex
	limit    int
	ring     []livelog.Entry
	start    int
	count    int
	activity []Bucket
	snapshot Snapshot
}

// NewStore returns a store keeping at most limit entries. A non-positive
// limit uses DefaultHistoryLimit.
func NewStore(limit int) *Store {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &Store{limit: limit, ring: make([]livelog.Entry, limit)}
}

// Render implements livelog.Renderer.
func (s *Store) Render(entry livelog.Entry, counts livelog.Counts) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := (s.start + s.count) % s.limit
	s.ring[idx] = entry
	if s.count < s.limit {
		s.count++
	} else {
		s.start = (s.start + 1) % s.limit
		s.snapshot.Overwritten++
	}
	s.snapshot.Counts = counts
	s.record(entry)
	s.touch()
}

// record adds entry to the bucket for the second it was received in.
func (s *Store) record(entry livelog.Entry) {
	at := entry.Received
	if at.IsZero() {
		at = time.Now()
	}
	start := at.Truncate(time.Second)
	if n := len(s.activity); n > 0 && s.activity[n-1].Start.Equal(start) {
		s.activity[n-1].Counts.Add(entry.Category)
		return
	}
	b := Bucket{Start: start}
	b.Counts.Add(entry.Category)
	s.activity = append(s.activity, b)
	if len(s.activity) > ActivityWindow {
		s.activity = append(s.activity[:0], s.activity[len(s.activity)-ActivityWindow:]...)
	}
}

// SetConnected implements livelog.Renderer.
func (s *Store) SetConnected(connected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot.Connected == connected {
		return
	}
	s.snapshot.Connected = connected
	s.touch()
}

// SetVersion records the server identification shown in the header.
func (s *Store) SetVersion(version string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Version = version
	s.touch()
}

// Clear drops the visible history. Counters mirror the client and are kept.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.start = 0
	s.count = 0
	s.snapshot.Overwritten = 0
	s.activity = nil
	for i := range s.ring {
		s.ring[i] = livelog.Entry{}
	}
	s.touch()
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if len(s.activity) > 0 {
		snap.Activity = append([]Bucket(nil), s.activity...)
	}
	if s.count == 0 {
		snap.Entries = nil
		return snap
	}
	snap.Entries = make([]livelog.Entry, s.count)
	for i := 0; i < s.count; i++ {
		snap.Entries[i] = s.ring[(s.start+i)%s.limit]
	}
	return snap
}

func (s *Store) touch() {
	s.snapshot.Revision++
	s.snapshot.LastChange = time.Now()
}
