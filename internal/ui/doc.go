// Package ui provides the Bubble Tea terminal console for kuteview.
//
// # Architecture
//
// The model never talks to the live client directly. The client renders into
// a state.Store; on every refresh tick the model takes a Snapshot of the
// store (plus the client's connection status) and redraws from it. Rendering
// is skipped when the snapshot revision and view settings are unchanged.
//
// # Layout
//
//   - Header: logo, connection dot, per-level counters, server version
//   - Command bar: shortcut hints and the active theme
//   - Log pane: a viewport with one styled entry per line, data and stack
//     lines indented below
//   - Status line: visible/total entries, auto-tail, level filter, endpoint
//
// # Keys
//
// j/k scroll, g/G jump, pgup/pgdown and ctrl+u/ctrl+d page. Space toggles
// follow mode, f cycles the level filter (all, error, warning, info, debug,
// log), c clears the pane, T cycles the theme and saves it to the prefs
// file, h or ? shows help, q or ctrl+c quits.
package ui
