// Package app wires kuteview together and runs it.
//
// # Startup
//
//  1. Load ~/.config/kuteview/config.toml (defaults when missing) and apply
//     flag overrides
//  2. Build the kutelog metadata client, which also derives the /ws URL
//  3. Create the renderer: a state.Store for the TUI, or a console.Writer
//     for plain mode
//  4. Start the live client, the version watcher and (TUI only) the Bubble
//     Tea program in one errgroup
//
// # Shutdown
//
// Cancelling the context or quitting the TUI stops every goroutine in the
// group. Plain mode prints a counter summary on the way out.
//
// # Logging
//
// The standard logger would corrupt the alt screen, so while the TUI runs it
// writes to the file named by KUTEVIEW_DEBUG_LOG, or is discarded. Plain mode
// leaves it on stderr.
//
// # Data Flow
//
//	kutelog /ws ──> transport ──> livelog.Client ──> Renderer
//	                                                  ├─ state.Store ──tick──> ui
//	                                                  └─ console.Writer ──> stdout
//	kutelog /version ──> watchVersion ──> header / log
package app
