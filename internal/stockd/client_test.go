package stockd

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != defaultAPIBind {
		t.Fatalf("host = %q, want %q", u.Host, defaultAPIBind)
	}

	u, err = parseBaseURL("http://example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestSearchQuery_ValuesAreDeterministic(t *testing.T) {
	q := SearchQuery{
		Q:       "laptop",
		PerPage: 8,
		Filters: map[string]string{"warehouse": "main", "archived": "0", "blank": "  "},
	}
	first := q.Values().Encode()
	for i := 0; i < 10; i++ {
		if got := q.Values().Encode(); got != first {
			t.Fatalf("encoding not deterministic: %q vs %q", got, first)
		}
	}
	if !strings.Contains(first, "q=laptop") || !strings.Contains(first, "per_page=8") {
		t.Fatalf("encoding missing core params: %q", first)
	}
	if strings.Contains(first, "blank") {
		t.Fatalf("blank filter should be dropped: %q", first)
	}
}

func TestClient_SearchAndFetchEntity(t *testing.T) {
	t.Parallel()

	var gotSearchQuery url.Values
	var gotUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/api/search":
			gotSearchQuery = r.URL.Query()
			_, _ = w.Write([]byte(`{"products":{"data":[{"id":7,"name":"Laptop"}]}}`))
		case "/api/products/7":
			_ = json.NewEncoder(w).Encode(Product{ID: 7, Name: "Laptop", SKU: "LP-7"})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	raw, err := c.Search(ctx, SearchQuery{Q: "laptop", PerPage: 5, Filters: map[string]string{"warehouse": "main"}})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if !strings.Contains(string(raw), `"Laptop"`) {
		t.Fatalf("Search payload = %s, want raw body passthrough", raw)
	}
	if gotSearchQuery.Get("q") != "laptop" ||
		gotSearchQuery.Get("per_page") != "5" ||
		gotSearchQuery.Get("warehouse") != "main" {
		t.Fatalf("Search query = %v, want params encoded", gotSearchQuery)
	}

	entity, err := c.FetchEntity(ctx, KindProducts, 7)
	if err != nil {
		t.Fatalf("FetchEntity returned error: %v", err)
	}
	var p Product
	if err := json.Unmarshal(entity, &p); err != nil || p.SKU != "LP-7" {
		t.Fatalf("FetchEntity payload = %s, want product LP-7", entity)
	}

	if gotUserAgent == "" || !strings.HasPrefix(gotUserAgent, "spotter/") {
		t.Fatalf("User-Agent = %q, want spotter/*", gotUserAgent)
	}
}

func TestClient_FetchHealth(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","version":"1.4.2"}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	health, err := c.FetchHealth(context.Background())
	if err != nil {
		t.Fatalf("FetchHealth returned error: %v", err)
	}
	if health.Status != "ok" || health.Version != "1.4.2" {
		t.Fatalf("health = %+v, want ok/1.4.2", health)
	}
}

func TestClient_FetchEntityValidation(t *testing.T) {
	c, err := NewClient("127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.FetchEntity(context.Background(), "gadgets", 1); err == nil {
		t.Fatalf("FetchEntity accepted unknown kind, want error")
	}
	if _, err := c.FetchEntity(context.Background(), KindProducts, 0); err == nil {
		t.Fatalf("FetchEntity accepted zero id, want error")
	}
}

func TestClient_ErrorPaths(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/search":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case "/api/products/1":
			http.NotFound(w, r)
		case "/api/customers/2":
			http.Error(w, "nope", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.Search(context.Background(), SearchQuery{Q: "x"})
	if err == nil || !strings.Contains(err.Error(), "invalid JSON") {
		t.Fatalf("Search error = %v, want invalid JSON error", err)
	}

	_, err = c.FetchEntity(context.Background(), KindProducts, 1)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("FetchEntity error = %v, want ErrNotFound", err)
	}

	_, err = c.FetchEntity(context.Background(), KindCustomers, 2)
	if err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("FetchEntity error = %v, want status 500 error", err)
	}
}

func TestClient_SearchCancellationSurfacesContextError(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err = c.Search(ctx, SearchQuery{Q: "slow"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Search error = %v, want context.Canceled in chain", err)
	}
}
