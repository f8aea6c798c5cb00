package state

import (
	"fmt"
	"testing"
	"time"

	"github.com/five82/kuteview/internal/livelog"
	"github.com/five82/kuteview/internal/wire"
)

func entry(msg string) livelog.Entry {
	return livelog.Entry{Category: wire.CategoryLog, Message: msg}
}

func TestStore_RenderAndSnapshotClone(t *testing.T) {
	s := NewStore(10)

	before := time.Now()
	s.Render(entry("a"), livelog.Counts{Log: 1})
	s.Render(entry("b"), livelog.Counts{Log: 2})

	snap := s.Snapshot()
	if len(snap.Entries) != 2 || snap.Entries[0].Message != "a" || snap.Entries[1].Message != "b" {
		t.Fatalf("entries = %#v, want a,b", snap.Entries)
	}
	if snap.Counts.Log != 2 {
		t.Fatalf("counts = %#v, want log=2", snap.Counts)
	}
	if snap.LastChange.Before(before) {
		t.Fatalf("LastChange = %v, want >= %v", snap.LastChange, before)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Entries[0].Message = "mutated"
	if got := s.Snapshot().Entries[0].Message; got != "a" {
		t.Fatalf("Snapshot should clone entries; got %q want a", got)
	}
}

func TestStore_BoundedHistoryKeepsNewest(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		writes    int
		wantFirst int
		wantLen   int
	}{
		{"under limit", 5, 3, 1, 3},
		{"exactly limit", 5, 5, 1, 5},
		{"over limit", 5, 12, 8, 5},
		{"limit one", 1, 4, 4, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(tt.limit)
			for i := 1; i <= tt.writes; i++ {
				s.Render(entry(fmt.Sprintf("%d", i)), livelog.Counts{Log: i})
			}
			snap := s.Snapshot()
			if len(snap.Entries) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(snap.Entries), tt.wantLen)
			}
			for i, e := range snap.Entries {
				if want := fmt.Sprintf("%d", tt.wantFirst+i); e.Message != want {
					t.Fatalf("Entries[%d] = %q, want %q", i, e.Message, want)
				}
			}
			if want := tt.writes - tt.wantLen; snap.Overwritten != want {
				t.Fatalf("Overwritten = %d, want %d", snap.Overwritten, want)
			}
		})
	}
}

func TestStore_DefaultLimit(t *testing.T) {
	if s := NewStore(0); s.limit != DefaultHistoryLimit {
		t.Fatalf("limit = %d, want %d", s.limit, DefaultHistoryLimit)
	}
}

func TestStore_ClearKeepsCounts(t *testing.T) {
	s := NewStore(3)
	for i := 0; i < 5; i++ {
		s.Render(entry("x"), livelog.Counts{Error: i + 1})
	}
	s.Clear()

	snap := s.Snapshot()
	if len(snap.Entries) != 0 || snap.Overwritten != 0 {
		t.Fatalf("after Clear entries=%d overwritten=%d, want 0/0", len(snap.Entries), snap.Overwritten)
	}
	if snap.Counts.Error != 5 {
		t.Fatalf("counts = %#v, want error=5 kept", snap.Counts)
	}

	s.Render(entry("after"), livelog.Counts{Error: 5, Log: 1})
	if got := s.Snapshot().Entries; len(got) != 1 || got[0].Message != "after" {
		t.Fatalf("entries after Clear = %#v", got)
	}
}

func TestStore_RevisionTracksChanges(t *testing.T) {
	s := NewStore(3)
	r0 := s.Snapshot().Revision

	s.SetConnected(true)
	r1 := s.Snapshot().Revision
	if r1 <= r0 || !s.Snapshot().Connected {
		t.Fatalf("SetConnected(true) revision %d -> %d", r0, r1)
	}

	// Repeating the same status is not a change.
	s.SetConnected(true)
	if r := s.Snapshot().Revision; r != r1 {
		t.Fatalf("revision = %d after no-op, want %d", r, r1)
	}

	s.SetVersion("kutelog 0.4.2")
	snap := s.Snapshot()
	if snap.Revision <= r1 || snap.Version != "kutelog 0.4.2" {
		t.Fatalf("SetVersion snapshot = %#v", snap)
	}
}

func TestStore_ActivityBucketsPerSecond(t *testing.T) {
	s := NewStore(10)
	base := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	at := func(e livelog.Entry, offset time.Duration) livelog.Entry {
		e.Received = base.Add(offset)
		return e
	}
	s.Render(at(livelog.Entry{Category: wire.CategoryInfo}, 100*time.Millisecond), livelog.Counts{})
	s.Render(at(livelog.Entry{Category: wire.CategoryError}, 900*time.Millisecond), livelog.Counts{})
	s.Render(at(livelog.Entry{Category: wire.CategoryInfo}, 3*time.Second), livelog.Counts{})

	activity := s.Snapshot().Activity
	if len(activity) != 2 {
		t.Fatalf("activity buckets = %d, want 2", len(activity))
	}
	if !activity[0].Start.Equal(base) || activity[0].Counts.Info != 1 || activity[0].Counts.Error != 1 {
		t.Fatalf("first bucket = %+v", activity[0])
	}
	if !activity[1].Start.Equal(base.Add(3*time.Second)) || activity[1].Counts.Total() != 1 {
		t.Fatalf("second bucket = %+v", activity[1])
	}

	s.Clear()
	if got := s.Snapshot().Activity; got != nil {
		t.Fatalf("activity after clear = %+v, want nil", got)
	}
}

func TestStore_ActivityWindowIsBounded(t *testing.T) {
	s := NewStore(10)
	base := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	for i := 0; i < ActivityWindow+5; i++ {
		e := livelog.Entry{Category: wire.CategoryLog, Received: base.Add(time.Duration(i) * time.Second)}
		s.Render(e, livelog.Counts{})
	}

	activity := s.Snapshot().Activity
	if len(activity) != ActivityWindow {
		t.Fatalf("activity buckets = %d, want %d", len(activity), ActivityWindow)
	}
	if want := base.Add(5 * time.Second); !activity[0].Start.Equal(want) {
		t.Fatalf("oldest bucket = %v, want %v", activity[0].Start, want)
	}
}
