// Package console formats live log entries as styled text and provides the
// plain (non-TUI) renderer used by `kuteview -plain`.
package console
