// Package stockd provides an HTTP client for the stockd inventory daemon API.
//
// # Overview
//
// This package defines the API client for communicating with the stockd
// inventory/sales daemon, plus the fixed vocabulary of entity kinds the
// universal search endpoint can return. It handles HTTP communication and
// per-kind decoding of entities into the uniform Hit row shape the console
// renders.
//
// # Architecture
//
// The package is split into three files:
//
//   - client.go: HTTP client implementation and request/response handling
//   - kinds.go:  The seven fixed entity kinds and their display labels
//   - types.go:  Entity structs mirroring the stockd API schema, plus Hit
//
// # API Endpoints
//
// The client supports read-only endpoints:
//
//   - GET /api/search?q=&per_page=&...: Universal search across all kinds
//   - GET /api/{kind}/{id}: Single-entity fetch used to warm detail views
//
// The search payload is returned as raw JSON on purpose: the backend emits
// several envelope shapes and normalization is owned by the search package's
// aggregator, not by this client.
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation; superseded searches are aborted by
//     cancelling their context, and the resulting error chain contains
//     context.Canceled so callers can distinguish aborts from failures
//   - Set Accept: application/json and User-Agent: spotter/0.1 headers
//   - Return wrapped errors with context about what failed
//
// FetchEntity maps HTTP 404 onto the ErrNotFound sentinel so best-effort
// prefetch can treat it as a miss rather than a failure.
//
// # Network Assumptions
//
// The client assumes stockd is on localhost or a trusted local network, with
// no authentication, matching spotter's design as a read-only console for a
// single-operator deployment.
package stockd
