package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBind != defaultAPIBind {
		t.Fatalf("APIBind = %q, want %q", cfg.APIBind, defaultAPIBind)
	}
	if cfg.PerPage != defaultPerPage {
		t.Fatalf("PerPage = %d, want %d", cfg.PerPage, defaultPerPage)
	}
	if cfg.Debounce != defaultDebounceMS*time.Millisecond {
		t.Fatalf("Debounce = %v, want %v", cfg.Debounce, defaultDebounceMS*time.Millisecond)
	}
	if cfg.SearchTTL != defaultSearchTTLSec*time.Second {
		t.Fatalf("SearchTTL = %v, want %v", cfg.SearchTTL, defaultSearchTTLSec*time.Second)
	}
	if cfg.CacheCapacity != defaultCacheCapacity {
		t.Fatalf("CacheCapacity = %d, want %d", cfg.CacheCapacity, defaultCacheCapacity)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_bind = "  10.0.0.5:9999  "
per_page = 20
debounce_ms = 350
search_ttl_seconds = 5
prefetch_ttl_seconds = 60
cache_capacity = 32
log_file = "  ~/.spotter/spotter.log  "
log_level = "debug"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBind != "10.0.0.5:9999" {
		t.Fatalf("APIBind = %q, want %q", cfg.APIBind, "10.0.0.5:9999")
	}
	if cfg.PerPage != 20 {
		t.Fatalf("PerPage = %d, want 20", cfg.PerPage)
	}
	if cfg.Debounce != 350*time.Millisecond {
		t.Fatalf("Debounce = %v, want 350ms", cfg.Debounce)
	}
	if cfg.SearchTTL != 5*time.Second || cfg.PrefetchTTL != 60*time.Second {
		t.Fatalf("TTLs = %v/%v, want 5s/60s", cfg.SearchTTL, cfg.PrefetchTTL)
	}
	if cfg.CacheCapacity != 32 {
		t.Fatalf("CacheCapacity = %d, want 32", cfg.CacheCapacity)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoad_EmptyAndNonPositiveValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_bind = "   "
per_page = 0
debounce_ms = -5
cache_capacity = 0
log_level = ""
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBind != defaultAPIBind {
		t.Fatalf("APIBind = %q, want %q", cfg.APIBind, defaultAPIBind)
	}
	if cfg.PerPage != defaultPerPage {
		t.Fatalf("PerPage = %d, want %d", cfg.PerPage, defaultPerPage)
	}
	if cfg.Debounce != defaultDebounceMS*time.Millisecond {
		t.Fatalf("Debounce = %v, want default", cfg.Debounce)
	}
	if cfg.CacheCapacity != defaultCacheCapacity {
		t.Fatalf("CacheCapacity = %d, want default", cfg.CacheCapacity)
	}
	if cfg.LogLevel != defaultLogLevel {
		t.Fatalf("LogLevel = %q, want default", cfg.LogLevel)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_bind = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
