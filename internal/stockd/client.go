package stockd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Searcher defines the backend operations the search engine consumes.
// This interface is implemented by *Client and can be used for testing.
type Searcher interface {
	Search(ctx context.Context, query SearchQuery) (json.RawMessage, error)
	FetchEntity(ctx context.Context, kind Kind, id int64) (json.RawMessage, error)
}

// Ensure Client implements Searcher at compile time.
var _ Searcher = (*Client)(nil)

// ErrNotFound reports that the backend has no entity for the requested id.
var ErrNotFound = errors.New("entity not found")

// Client talks to the stockd HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIBind   = "127.0.0.1:7432"
	defaultUserAgent = "spotter/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client using the provided apiBind host:port value.
func NewClient(apiBind string) (*Client, error) {
	base, err := parseBaseURL(apiBind)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// SearchQuery configures /api/search requests.
type SearchQuery struct {
	Q       string
	PerPage int
	Filters map[string]string
}

// Values encodes the query as URL parameters. Filter keys are emitted in
// sorted order so the encoding is deterministic.
func (q SearchQuery) Values() url.Values {
	values := url.Values{}
	values.Set("q", q.Q)
	if q.PerPage > 0 {
		values.Set("per_page", strconv.Itoa(q.PerPage))
	}
	keys := make([]string, 0, len(q.Filters))
	for k := range q.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v := strings.TrimSpace(q.Filters[k]); v != "" {
			values.Set(k, v)
		}
	}
	return values
}

// Search runs a universal search across all entity kinds. The raw payload is
// returned undecoded because the backend emits several envelope shapes; the
// aggregator owns normalization. The request is cancelled when ctx is.
func (c *Client) Search(ctx context.Context, query SearchQuery) (json.RawMessage, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: "/api/search", RawQuery: query.Values().Encode()}
	return c.doRaw(ctx, http.MethodGet, rel)
}

// FetchEntity retrieves a single entity by id, used to warm detail views.
func (c *Client) FetchEntity(ctx context.Context, kind Kind, id int64) (json.RawMessage, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown entity kind %q", kind)
	}
	if id <= 0 {
		return nil, fmt.Errorf("entity id required")
	}
	rel := &url.URL{Path: fmt.Sprintf("/api/%s/%d", kind, id)}
	return c.doRaw(ctx, http.MethodGet, rel)
}

// Health is the daemon health payload from /api/health.
type Health struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// FetchHealth reports whether the daemon is reachable and serving. Used as a
// startup pre-flight check; search itself does not depend on it.
func (c *Client) FetchHealth(ctx context.Context) (Health, error) {
	if c == nil {
		return Health{}, fmt.Errorf("client is nil")
	}
	raw, err := c.doRaw(ctx, http.MethodGet, &url.URL{Path: "/api/health"})
	if err != nil {
		return Health{}, err
	}
	var health Health
	if err := json.Unmarshal(raw, &health); err != nil {
		return Health{}, fmt.Errorf("decode health: %w", err)
	}
	return health, nil
}

func (c *Client) doRaw(ctx context.Context, method string, rel *url.URL) (json.RawMessage, error) {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("api %s returned invalid JSON", rel.Path)
	}
	return json.RawMessage(body), nil
}

func parseBaseURL(apiBind string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBind)
	if trimmed == "" {
		trimmed = defaultAPIBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_bind %q: %w", apiBind, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
