// Package search implements the universal search engine behind the spotter
// console: debounced intents, a bounded TTL result cache, single-authority
// request lifecycle, payload aggregation, row selection, and best-effort
// detail prefetch.
//
// # Overview
//
// Keystrokes flow through the engine as follows:
//
//	keystroke → Debouncer → (cache check) → request lifecycle → backend
//	          → Aggregate → State snapshot → UI
//
// Everything between the two suspension points (the debounce timer and the
// network call) is synchronous: cache lookups, aggregation, and selection
// math never block.
//
// # Request lifecycle
//
// The engine holds a single "last issued key" pointer, not a queue. Issuing
// a new intent cancels the context of any in-flight request for a different
// key. When a response lands, its originating key is compared against the
// last issued key; mismatches are dropped without touching visible state.
// This last-issued-key-wins rule is the central correctness property of the
// engine: it is what prevents a slow early response from clobbering a fast
// later one, even on transports that cannot abort requests.
//
// Error taxonomy:
//
//   - Superseded/cancelled: silently discarded, never user-visible
//   - Network/server failure of the authoritative request: surfaced as an
//     error string, previous results stay on screen
//   - Malformed payloads: degrade to empty sections inside Aggregate
//
// # Caching
//
// Cache is a bounded LRU (hashicorp/golang-lru) with a per-entry TTL
// checked lazily on Get. LRU is the documented eviction policy under
// capacity pressure. The engine is the cache's only writer. The detail
// prefetcher keeps its own cache because it keys on "kind:id" rather than
// on full query signatures.
//
// # Concurrency
//
// The engine's mutable state sits behind one mutex. Callers observe it only
// through Snapshot copies; change notifications arrive on a coalescing
// channel so a Bubble Tea program can re-render exactly as often as it can
// keep up with.
package search
