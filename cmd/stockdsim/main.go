// Command stockdsim is a development stand-in for the stockd daemon. It
// serves the search and entity endpoints spotter consumes over a fixed
// in-memory inventory, with optional artificial latency and a choice of
// payload envelope shapes for exercising the aggregator.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/spotterhq/spotter/internal/stockd"
)

const simVersion = "0.1.0"

func main() {
	addr := flag.String("addr", "127.0.0.1:7432", "listen address")
	latency := flag.Duration("latency", 0, "artificial delay per request (e.g. 300ms)")
	defaultShape := flag.String("shape", "data", "default payload shape: data, bare, or nested")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	sim := &simulator{
		data:         seedDataset(),
		latency:      *latency,
		defaultShape: *defaultShape,
	}

	srv := &http.Server{
		Addr:         *addr,
		Handler:      sim.router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	slog.Info("stockdsim listening", "addr", *addr, "shape", *defaultShape, "latency", *latency)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

type simulator struct {
	data         *dataset
	latency      time.Duration
	defaultShape string
}

func (s *simulator) router() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/api/health", s.handleHealth)
	r.Get("/api/search", s.handleSearch)
	r.Get("/api/{kind}/{id}", s.handleEntity)
	return r
}

func (s *simulator) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stockd.Health{Status: "ok", Version: simVersion})
}

// handleSearch serves /api/search in one of three envelope shapes, selected
// per request with ?shape=data|bare|nested.
func (s *simulator) handleSearch(w http.ResponseWriter, r *http.Request) {
	if s.latency > 0 {
		select {
		case <-time.After(s.latency):
		case <-r.Context().Done():
			return
		}
	}

	q := r.URL.Query().Get("q")
	perPage := 8
	if raw := r.URL.Query().Get("per_page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			perPage = n
		}
	}
	shape := r.URL.Query().Get("shape")
	if shape == "" {
		shape = s.defaultShape
	}

	sections := s.data.search(q, perPage)

	switch shape {
	case "bare":
		// {"products":[...], ...}
		payload := make(map[string]any, len(sections))
		for kind, section := range sections {
			payload[string(kind)] = itemsOrEmpty(section.items)
		}
		writeJSON(w, http.StatusOK, payload)

	case "nested":
		// {"results":{"products":{"data":[...],"total":n}, ...}}
		writeJSON(w, http.StatusOK, map[string]any{"results": envelope(sections)})

	default:
		// {"products":{"data":[...],"total":n}, ...}
		writeJSON(w, http.StatusOK, envelope(sections))
	}
}

func (s *simulator) handleEntity(w http.ResponseWriter, r *http.Request) {
	if s.latency > 0 {
		select {
		case <-time.After(s.latency):
		case <-r.Context().Done():
			return
		}
	}

	kind := stockd.Kind(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		writeError(w, http.StatusNotFound, "unknown kind")
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	entity, ok := s.data.entity(kind, id)
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, entity)
}

func envelope(sections map[stockd.Kind]section) map[string]any {
	payload := make(map[string]any, len(sections))
	for kind, s := range sections {
		payload[string(kind)] = map[string]any{
			"data":  itemsOrEmpty(s.items),
			"total": s.total,
		}
	}
	return payload
}

func itemsOrEmpty(items []any) []any {
	if items == nil {
		return []any{}
	}
	return items
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// requestLogger emits one canonical log line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Info("http_request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"latency", time.Since(start),
			"request_id", chiMiddleware.GetReqID(r.Context()),
		)
	})
}
