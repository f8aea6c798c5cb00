package ui

import (
	"testing"
	"time"

	"github.com/five82/kuteview/internal/livelog"
	"github.com/five82/kuteview/internal/state"
)

func TestActivitySeries(t *testing.T) {
	end := time.Date(2025, 1, 2, 3, 4, 10, 500*int(time.Millisecond), time.UTC)
	buckets := []state.Bucket{
		{Start: end.Add(-20 * time.Second).Truncate(time.Second), Counts: livelog.Counts{Info: 9}},
		{Start: end.Add(-2 * time.Second).Truncate(time.Second), Counts: livelog.Counts{Error: 2}},
		{Start: end.Truncate(time.Second), Counts: livelog.Counts{Log: 1, Debug: 1}},
	}

	series := activitySeries(buckets, end, 5)
	if len(series) != 5 {
		t.Fatalf("series length = %d, want 5", len(series))
	}
	if series[4].Total() != 2 || series[2].Error != 2 {
		t.Fatalf("series = %+v", series)
	}
	if series[0].Total() != 0 || series[1].Total() != 0 || series[3].Total() != 0 {
		t.Fatalf("quiet seconds should be zero: %+v", series)
	}
	if !hasActivity(series) {
		t.Fatal("hasActivity = false, want true")
	}
	if hasActivity(activitySeries(buckets[:1], end, 5)) {
		t.Fatal("bucket outside the window should be ignored")
	}
	if got := activitySeries(buckets, end, 0); got != nil {
		t.Fatalf("activitySeries(n=0) = %+v, want nil", got)
	}
}
