// Package config loads kuteview's TOML configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/kuteview/config.toml
//  3. If the file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing or empty, use defaults
//
// # Default Values
//
//   - server: 127.0.0.1:9106 (the kutelog default port)
//   - retry_delay: 1s, the fixed pause between reconnect attempts
//   - history_limit: 5000 entries kept for the console
//   - refresh: 250ms console redraw tick
//
// # TOML Format
//
//	server = "127.0.0.1:9106"
//	retry_delay = "1s"
//	history_limit = 5000
//	refresh = "250ms"
//
// server accepts host:port or an http(s):// or ws(s):// URL. Durations use
// Go syntax and must be positive.
//
// # Path Expansion
//
//   - Absolute paths: used as-is
//   - Tilde paths: expanded to the home directory
//   - Relative paths: made absolute against the working directory
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML syntax errors and invalid values. A missing file is
// not an error.
package config
