package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/spotterhq/spotter/internal/stockd"
)

// Prefetch cache defaults. Detail payloads change rarely, so the TTL is
// longer than the live search cache's.
const (
	DefaultPrefetchCapacity = 128
	DefaultPrefetchTTL      = 30 * time.Second
	prefetchRate            = rate.Limit(10) // fetches per second
	prefetchBurst           = 4
)

// Prefetcher warms entity detail views as the selection moves. It is
// best-effort throughout: misses, rate-limit drops, and backend failures
// all return ok=false and never an error. It keys its own TTL cache on
// "kind:id", deliberately separate from the search result cache.
type Prefetcher struct {
	client  stockd.Searcher
	cache   *Cache[json.RawMessage]
	group   singleflight.Group
	limiter *rate.Limiter
	log     *slog.Logger
}

// NewPrefetcher builds a prefetcher over client. Zero capacity and ttl fall
// back to package defaults.
func NewPrefetcher(client stockd.Searcher, capacity int, ttl time.Duration, logger *slog.Logger) (*Prefetcher, error) {
	if client == nil {
		return nil, errors.New("search: prefetch client is required")
	}
	if capacity <= 0 {
		capacity = DefaultPrefetchCapacity
	}
	if ttl <= 0 {
		ttl = DefaultPrefetchTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	cache, err := NewCache[json.RawMessage](capacity, ttl, nil)
	if err != nil {
		return nil, err
	}
	return &Prefetcher{
		client:  client,
		cache:   cache,
		limiter: rate.NewLimiter(prefetchRate, prefetchBurst),
		log:     logger,
	}, nil
}

// Cached returns the entity payload if it is already warm, without any
// network activity.
func (p *Prefetcher) Cached(kind stockd.Kind, id int64) (json.RawMessage, bool) {
	return p.cache.Get(prefetchKey(kind, id))
}

// Fetch returns the entity payload for kind/id, fetching and caching it on
// a miss. Concurrent fetches of the same entity are collapsed into one
// backend call. Fast selection movement is rate-limited: when the limiter
// has no token the miss is simply reported, never queued.
func (p *Prefetcher) Fetch(ctx context.Context, kind stockd.Kind, id int64) (json.RawMessage, bool) {
	key := prefetchKey(kind, id)
	if cached, ok := p.cache.Get(key); ok {
		return cached, true
	}
	if !p.limiter.Allow() {
		return nil, false
	}

	value, err, _ := p.group.Do(key, func() (any, error) {
		return p.client.FetchEntity(ctx, kind, id)
	})
	if err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, stockd.ErrNotFound) {
			p.log.Debug("prefetch failed", "key", key, "error", err)
		}
		return nil, false
	}
	raw, ok := value.(json.RawMessage)
	if !ok || len(raw) == 0 {
		return nil, false
	}
	p.cache.Put(key, raw)
	return raw, true
}

func prefetchKey(kind stockd.Kind, id int64) string {
	return fmt.Sprintf("%s:%d", kind, id)
}
