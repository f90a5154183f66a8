package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields spotter needs to reach and query stockd.
type Config struct {
	APIBind       string
	PerPage       int
	Debounce      time.Duration
	SearchTTL     time.Duration
	PrefetchTTL   time.Duration
	CacheCapacity int
	LogFile       string
	LogLevel      string
}

const (
	defaultConfigPath    = "~/.config/spotter/config.toml"
	defaultLogFile       = "~/.local/state/spotter/spotter.log"
	defaultAPIBind       = "127.0.0.1:7432"
	defaultPerPage       = 8
	defaultDebounceMS    = 300
	defaultSearchTTLSec  = 10
	defaultPrefetchSec   = 30
	defaultCacheCapacity = 64
	defaultLogLevel      = "info"
)

// Load locates and parses the spotter config, falling back to defaults when
// missing. A missing config file is not an error; spotter works out of the
// box against a local stockd.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBind            string `toml:"api_bind"`
		PerPage            int    `toml:"per_page"`
		DebounceMS         int    `toml:"debounce_ms"`
		SearchTTLSeconds   int    `toml:"search_ttl_seconds"`
		PrefetchTTLSeconds int    `toml:"prefetch_ttl_seconds"`
		CacheCapacity      int    `toml:"cache_capacity"`
		LogFile            string `toml:"log_file"`
		LogLevel           string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if bind := strings.TrimSpace(raw.APIBind); bind != "" {
		cfg.APIBind = bind
	}
	if raw.PerPage > 0 {
		cfg.PerPage = raw.PerPage
	}
	if raw.DebounceMS > 0 {
		cfg.Debounce = time.Duration(raw.DebounceMS) * time.Millisecond
	}
	if raw.SearchTTLSeconds > 0 {
		cfg.SearchTTL = time.Duration(raw.SearchTTLSeconds) * time.Second
	}
	if raw.PrefetchTTLSeconds > 0 {
		cfg.PrefetchTTL = time.Duration(raw.PrefetchTTLSeconds) * time.Second
	}
	if raw.CacheCapacity > 0 {
		cfg.CacheCapacity = raw.CacheCapacity
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		cfg.LogLevel = level
	}

	return cfg, nil
}

func defaults() Config {
	return Config{
		APIBind:       defaultAPIBind,
		PerPage:       defaultPerPage,
		Debounce:      defaultDebounceMS * time.Millisecond,
		SearchTTL:     defaultSearchTTLSec * time.Second,
		PrefetchTTL:   defaultPrefetchSec * time.Second,
		CacheCapacity: defaultCacheCapacity,
		LogFile:       mustExpand(defaultLogFile),
		LogLevel:      defaultLogLevel,
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
