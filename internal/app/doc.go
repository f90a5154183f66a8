// Package app provides the orchestration layer for the spotter application.
//
// # Overview
//
// This package wires together configuration, logging, the stockd client, the
// search engine, the detail prefetcher, and the UI. It serves as the
// composition root where all dependencies are initialized and connected.
//
// # Architecture
//
// The app package follows a simple initialization pattern:
//
//  1. Load configuration from ~/.config/spotter/config.toml
//  2. Install file-based structured logging (the TUI owns the terminal)
//  3. Load user preferences (theme)
//  4. Initialize the HTTP client for the stockd API
//  5. Ping /api/health once as a non-fatal pre-flight check
//  6. Build the search engine and detail prefetcher
//  7. Start the TUI and block until the user exits or the context cancels
//
// # Error Handling
//
// The app package distinguishes between fatal and recoverable errors:
//
// Fatal errors (returned from Run):
//   - Configuration file present but invalid
//   - Logging or client initialization failure
//
// Recoverable errors (logged or surfaced in the UI):
//   - Daemon unreachable at startup or at any point afterwards
//   - Individual search or detail fetch failures
//
// Unlike the pre-flight check, search failures keep the previous results on
// screen; the engine owns that policy.
//
// # Usage Example
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//
//	if err := app.Run(ctx, app.Options{}); err != nil {
//		log.Fatalf("spotter failed: %v", err)
//	}
//
// # Design Rationale
//
// This package intentionally keeps orchestration logic minimal. Business
// logic lives in domain packages (stockd, search, ui); app simply connects
// them with sensible defaults for the single-operator use case.
package app
