// Package wire decodes the frames a kutelog server pushes over its /ws
// endpoint.
//
// Every frame is an envelope:
//
//	{"id": 7036874417766401, "body": {"level": "info", "message": "...", "timestamp": "..."}}
//
// The id is a monotonic sequence number (on the reference server a 53-bit
// value built from a millisecond timestamp and a 12-bit counter). The body is
// either a structured LogEvent, a plain string, or anything else. ParseBody
// classifies it into a tagged Body so callers never deal with half-matched
// shapes.
package wire
