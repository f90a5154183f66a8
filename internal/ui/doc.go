// Package ui provides the terminal user interface for spotter.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program layered on top of the search engine. It
// never talks to stockd directly: keystrokes go into the engine via
// SetQuery, and rendering is driven entirely by engine State snapshots.
// The engine signals changes on a coalescing channel; a listen command
// converts each signal into a Bubble Tea message, after which the model
// re-reads Snapshot. This keeps all search semantics (debounce, caching,
// stale-response rejection) out of the view layer.
//
// # Package Structure
//
//   - app.go: Model, Update loop, message/command plumbing, and Run
//   - results.go: flattened section/row list with windowed rendering
//   - detail.go: entity detail pane fed by the prefetcher
//   - header.go: status bar, command hints, and the query input line
//   - help.go: help overlay
//   - theme.go: color themes and lipgloss style construction
//   - keys.go: key bindings
//
// # Layout
//
// Three chrome lines (status bar, command hints, query input) sit above the
// results area. On terminals at least 110 columns wide a detail pane for the
// selected entity is shown alongside the result list.
//
// # Windowed rendering
//
// The result list flattens all sections into one line list. Past the vlist
// threshold only a computed window of lines is styled per frame; selection
// still moves over the full logical list, so G jumps to the true last row
// regardless of what was rendered.
//
// # Key Bindings
//
// Focus starts on the query input; Tab moves it to the result list and back.
// Arrow keys move the selection from either focus. See help.go for the full
// table.
//
// # Design Principles
//
//   - Read-only interface: no mutations to stockd state
//   - The engine owns truth: the model holds no result state of its own
//     beyond the last snapshot and prefetched detail payloads
//   - Errors keep context: a failed search leaves the previous results on
//     screen with the error in the status bar
package ui
