// Package config handles loading and parsing the spotter configuration file.
//
// # Overview
//
// This package reads spotter's TOML configuration to discover the stockd
// daemon's API endpoint and to tune the search engine. Every tunable is
// optional; spotter works out-of-the-box against a stockd daemon listening
// on the default local port.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/spotter/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty/non-positive, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/spotter/config.toml
//   - API endpoint: 127.0.0.1:7432
//   - Results per section: 8
//   - Debounce: 300ms
//   - Search result TTL: 10s, detail prefetch TTL: 30s
//   - Cache capacity: 64 entries
//   - Log file: ~/.local/state/spotter/spotter.log, level info
//
// # TOML Format
//
// Example config.toml:
//
//	api_bind = "127.0.0.1:7432"
//	per_page = 8
//	debounce_ms = 300
//	search_ttl_seconds = 10
//	prefetch_ttl_seconds = 30
//	cache_capacity = 64
//	log_file = "~/.local/state/spotter/spotter.log"
//	log_level = "info"
//
// All fields are optional. Tilde expansion is performed automatically on
// paths, and string values are trimmed.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//
// Missing config files are NOT an error - defaults are used instead.
//
// The config package is read-only and stateless - it loads configuration
// once at startup and returns an immutable Config struct.
package config
