package search

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/spotterhq/spotter/internal/stockd"
)

// Default cache sizing for live search-as-you-type results.
const (
	DefaultCacheCapacity = 64
	DefaultSearchTTL     = 10 * time.Second
)

// State is an immutable snapshot of the engine for the presentation layer:
// the current result set (or loading/error state), the query that produced
// it, and the selected row key.
type State struct {
	Query       string
	Results     ResultSet
	Loading     bool
	Err         string
	SelectedKey string
	LastUpdated time.Time
}

// SelectedIndex returns the logical index of the selected row across the
// full aggregated list, or -1 when nothing is selected.
func (s State) SelectedIndex() int {
	if s.SelectedKey == "" {
		return -1
	}
	return rowIndex(s.Results.Rows(), s.SelectedKey)
}

// Options configures an Engine.
type Options struct {
	Client        stockd.Searcher
	PerPage       int
	Filters       map[string]string
	Debounce      time.Duration
	CacheCapacity int
	CacheTTL      time.Duration
	Now           func() time.Time
	Logger        *slog.Logger
}

// Engine is the universal search core: it debounces query text into
// intents, consults the TTL cache, manages the single authoritative
// in-flight request, aggregates responses, and tracks row selection. It is
// the only writer of the cache. All exported methods are safe for
// concurrent use.
type Engine struct {
	client  stockd.Searcher
	cache   *Cache[ResultSet]
	deb     *Debouncer
	perPage int
	filters map[string]string
	now     func() time.Time
	log     *slog.Logger

	baseCtx context.Context
	stop    context.CancelFunc

	mu             sync.Mutex
	state          State
	lastKey        string
	inflightKey    string
	inflightCancel context.CancelFunc

	updates chan struct{}
}

// New builds an Engine. The zero-value fields of opts fall back to package
// defaults; only Client is required.
func New(opts Options) (*Engine, error) {
	if opts.Client == nil {
		return nil, errors.New("search: client is required")
	}
	capacity := opts.CacheCapacity
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = DefaultSearchTTL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cache, err := NewCache[ResultSet](capacity, ttl, now)
	if err != nil {
		return nil, err
	}
	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = 8
	}

	baseCtx, stop := context.WithCancel(context.Background())
	e := &Engine{
		client:  opts.Client,
		cache:   cache,
		perPage: perPage,
		filters: opts.Filters,
		now:     now,
		log:     logger,
		baseCtx: baseCtx,
		stop:    stop,
		state:   State{Results: EmptyResultSet()},
		updates: make(chan struct{}, 1),
	}
	e.deb = NewDebouncer(opts.Debounce, e.searchNow)
	return e, nil
}

// Updates signals state changes. The channel is coalescing: consumers
// re-read Snapshot after each receive.
func (e *Engine) Updates() <-chan struct{} {
	return e.updates
}

// Snapshot returns a copy of the current engine state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// SetQuery records a keystroke. No search is issued synchronously; the
// debouncer emits one intent per settled burst.
func (e *Engine) SetQuery(text string) {
	e.mu.Lock()
	e.state.Query = text
	e.mu.Unlock()
	e.deb.Observe(text)
}

// Flush forces any pending debounced query to be issued now.
func (e *Engine) Flush() {
	e.deb.Flush()
}

// Retry re-issues the current query, bypassing the debounce. The cache
// still applies, so a retry after a transient failure is cheap when an
// older result is still fresh.
func (e *Engine) Retry() {
	e.mu.Lock()
	query := e.state.Query
	e.mu.Unlock()
	e.searchNow(query)
}

// Close cancels any in-flight request and stops the debouncer.
func (e *Engine) Close() {
	e.deb.Stop()
	e.stop()
	e.mu.Lock()
	if e.inflightCancel != nil {
		e.inflightCancel()
		e.inflightCancel = nil
		e.inflightKey = ""
	}
	e.mu.Unlock()
}

// searchNow runs one settled intent through the request lifecycle:
// cache check, supersede any in-flight request for a different key, issue
// the network call, and apply the response only if it is still the
// authoritative one.
func (e *Engine) searchNow(text string) {
	intent := NewIntent(text, e.perPage, e.filters, e.now())

	if intent.IsClear() {
		e.mu.Lock()
		e.lastKey = ""
		e.cancelInflightLocked()
		e.state.Results = EmptyResultSet()
		e.state.Loading = false
		e.state.Err = ""
		e.state.SelectedKey = ""
		e.state.LastUpdated = e.now()
		e.mu.Unlock()
		e.notify()
		return
	}

	key := intent.Key()

	if cached, ok := e.cache.Get(key); ok {
		e.mu.Lock()
		e.lastKey = key
		if e.inflightKey != key {
			e.cancelInflightLocked()
		}
		e.applyLocked(cached)
		e.mu.Unlock()
		e.notify()
		return
	}

	e.mu.Lock()
	e.lastKey = key
	if e.inflightKey == key && e.inflightCancel != nil {
		// Already fetching exactly this key; let it land.
		e.state.Loading = true
		e.mu.Unlock()
		e.notify()
		return
	}
	e.cancelInflightLocked()
	ctx, cancel := context.WithCancel(e.baseCtx)
	e.inflightKey = key
	e.inflightCancel = cancel
	e.state.Loading = true
	e.state.Err = ""
	e.mu.Unlock()
	e.notify()

	go func() {
		raw, err := e.client.Search(ctx, stockd.SearchQuery{
			Q:       intent.Normalized,
			PerPage: intent.PerPage,
			Filters: intent.Filters,
		})
		e.finish(key, raw, err)
	}()
}

// finish applies a completed network call. Responses whose key no longer
// matches the last issued key are dropped without touching visible state;
// this is what keeps a slow early response from clobbering a fast later
// one.
func (e *Engine) finish(key string, raw json.RawMessage, err error) {
	e.mu.Lock()
	if key != e.lastKey {
		e.mu.Unlock()
		e.log.Debug("dropping superseded search response", "key", key)
		return
	}
	if e.inflightKey == key {
		e.inflightKey = ""
		e.inflightCancel = nil
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Aborted by a newer intent or shutdown; not a failure.
			e.mu.Unlock()
			return
		}
		e.state.Loading = false
		// Previous results stay visible; only the error line changes.
		e.state.Err = err.Error()
		e.state.LastUpdated = e.now()
		e.mu.Unlock()
		e.log.Warn("search failed", "key", key, "error", err)
		e.notify()
		return
	}

	results := Aggregate(raw)
	e.cache.Put(key, results)
	e.applyLocked(results)
	e.mu.Unlock()
	e.notify()
}

// applyLocked installs a new result set and resets selection, which would
// otherwise reference a row from the superseded set.
func (e *Engine) applyLocked(results ResultSet) {
	e.state.Results = results
	e.state.Loading = false
	e.state.Err = ""
	e.state.SelectedKey = ""
	e.state.LastUpdated = e.now()
}

func (e *Engine) cancelInflightLocked() {
	if e.inflightCancel != nil {
		e.inflightCancel()
		e.inflightCancel = nil
		e.inflightKey = ""
	}
}

// MoveSelection shifts the selected row by delta across the full logical
// cross-section list, independent of what is currently rendered.
func (e *Engine) MoveSelection(delta int) {
	e.mu.Lock()
	rows := e.state.Results.Rows()
	e.state.SelectedKey = stepRowKey(rows, e.state.SelectedKey, delta)
	e.mu.Unlock()
	e.notify()
}

// Select sets the selected row directly (pointer hover analog). Keys that
// do not parse are ignored.
func (e *Engine) Select(key string) {
	if _, _, ok := ParseRowKey(key); !ok {
		return
	}
	e.mu.Lock()
	e.state.SelectedKey = key
	e.mu.Unlock()
	e.notify()
}

// Selected returns the kind and id of the selected row, if any. Enter-style
// activation keys off this pair.
func (e *Engine) Selected() (stockd.Kind, int64, bool) {
	e.mu.Lock()
	key := e.state.SelectedKey
	e.mu.Unlock()
	return ParseRowKey(key)
}

func (e *Engine) notify() {
	select {
	case e.updates <- struct{}{}:
	default:
	}
}
