// Package livelog implements the reconnecting live-tail client.
//
// # Overview
//
// A Client holds one connection to a kutelog server's /ws endpoint. Every
// inbound text frame is decoded as an envelope, checked against the client's
// watermark, classified and forwarded to a Renderer together with updated
// per-category counters.
//
// # Event Loop
//
// Run is the single dispatch point. The dialer goroutine, the frame reader
// and the reconnect timer never touch client state directly; they post
// events (open, message, error, close, retry) on one channel and Run
// handles them in arrival order:
//
//	start() ──dial──> open ──> message ... ──> error ──> close
//	                                                    │
//	         retry <── fixed delay timer <───────────────┘
//
// A dial failure produces error then close, the same as a dropped
// connection, so both paths reconnect the same way.
//
// # Admission
//
// The watermark starts at zero and only ever grows. An envelope whose id is
// not strictly greater is dropped without rendering or counting. The
// watermark survives reconnects, which suppresses the history replay the
// server sends to every new connection.
//
// Frames that are not envelopes are never rejected: they are rendered
// verbatim as "log" entries and leave the watermark untouched.
//
// # Reconnect Policy
//
// Each close arms exactly one timer with the configured delay (default 1s).
// The delay does not grow and there is no attempt limit. Cancelling the
// context passed to Run is the only way to stop the client.
package livelog
