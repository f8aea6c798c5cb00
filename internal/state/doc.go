// Package state provides the thread-safe store between the live client and
// the UI.
//
// # Overview
//
// Store implements livelog.Renderer. The client's dispatch goroutine pushes
// entries and connection changes into it; the Bubble Tea program reads
// Snapshot on its refresh tick.
//
//	livelog.Client            Store                   ui.Model
//	┌──────────────┐  Render   ┌──────────┐ Snapshot  ┌──────────┐
//	│ dispatch loop│──────────>│ ring +   │──────────>│ viewport │
//	│              │ SetConn.. │ counters │  (tick)   │ header   │
//	└──────────────┘           └──────────┘           └──────────┘
//
// # History
//
// Entries live in a fixed-size ring (default 5000). When it is full the
// oldest entry is overwritten and Overwritten is incremented. Nothing is
// written to disk; history ends with the process.
//
// Counts always mirror the client's counters, so Clear empties the visible
// history without resetting them.
//
// # Activity
//
// Each rendered entry is also counted in a one-second bucket keyed by its
// receive time. The last ActivityWindow buckets feed the console's activity
// chart. Quiet seconds have no bucket.
//
// # Change Tracking
//
// Revision increases on every mutation. The UI compares it with the last
// rendered revision and skips rebuilding the viewport when nothing changed.
package state
