package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/spotterhq/spotter/internal/config"
	"github.com/spotterhq/spotter/internal/logging"
	"github.com/spotterhq/spotter/internal/prefs"
	"github.com/spotterhq/spotter/internal/search"
	"github.com/spotterhq/spotter/internal/stockd"
	"github.com/spotterhq/spotter/internal/ui"
)

const preflightTimeout = 2 * time.Second

// Options configure the spotter application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/spotter/prefs.toml
}

// Run boots the spotter TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	closeLogs, err := logging.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closeLogs() }()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}

	client, err := stockd.NewClient(cfg.APIBind)
	if err != nil {
		return fmt.Errorf("init stockd client: %w", err)
	}

	preflight(ctx, client)

	engine, err := search.New(search.Options{
		Client:        client,
		PerPage:       cfg.PerPage,
		Debounce:      cfg.Debounce,
		CacheCapacity: cfg.CacheCapacity,
		CacheTTL:      cfg.SearchTTL,
	})
	if err != nil {
		return fmt.Errorf("init search engine: %w", err)
	}
	defer engine.Close()

	prefetcher, err := search.NewPrefetcher(client, search.DefaultPrefetchCapacity, cfg.PrefetchTTL, nil)
	if err != nil {
		return fmt.Errorf("init prefetcher: %w", err)
	}

	slog.Info("spotter starting", "api_bind", cfg.APIBind, "per_page", cfg.PerPage)

	uiOpts := ui.Options{
		Context:    ctx,
		Engine:     engine,
		Prefetcher: prefetcher,
		ThemeName:  userPrefs.Theme,
		PrefsPath:  opts.PrefsPath,
	}
	if err := ui.Run(uiOpts); err != nil {
		// A cancelled context (SIGINT/SIGTERM) is a clean shutdown.
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}

// preflight checks daemon reachability once at startup. Failure is logged
// but not fatal; the UI shows connection errors as they happen.
func preflight(ctx context.Context, client *stockd.Client) {
	pctx, cancel := context.WithTimeout(ctx, preflightTimeout)
	defer cancel()

	health, err := client.FetchHealth(pctx)
	if err != nil {
		slog.Warn("stockd not reachable at startup", "error", err)
		return
	}
	slog.Info("stockd reachable", "status", health.Status, "version", health.Version)
}
