// Command moviehub is a terminal movie browser backed by The Movie Database.
//
// Architecture:
//
//	tmdb       - HTTP client for the TMDB v3 API
//	favorites  - in-memory favorites with change notification
//	store      - optional SQLite mirror of the favorites
//	coord      - view state: section, debounced search, genre filter
//	ui         - Bubble Tea presentation
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/moviehub/internal/config"
	"github.com/abelbrown/moviehub/internal/coord"
	"github.com/abelbrown/moviehub/internal/favorites"
	"github.com/abelbrown/moviehub/internal/logging"
	"github.com/abelbrown/moviehub/internal/otel"
	"github.com/abelbrown/moviehub/internal/store"
	"github.com/abelbrown/moviehub/internal/tmdb"
	"github.com/abelbrown/moviehub/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run owns every resource so deferred closes happen before main exits.
func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dataDir := config.DataDir()
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	cfg, err := loadConfig(dataDir, ".env")
	if err != nil {
		return err
	}

	if err := logging.Init(filepath.Join(dataDir, "logs"), cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}
	defer logging.Close()

	otel.EnableTrace(cfg.Trace)
	events := openEventLog(filepath.Join(dataDir, "events.jsonl"))
	defer events.Close()
	ring := otel.NewRingBuffer(otel.DefaultRingSize)
	events.SetRingBuffer(ring)
	events.Info(otel.KindStartup, "main", "moviehub starting")
	logging.Info("MovieHub starting", "session", events.SessionID())
	logging.WithPrefix("config").Debug("loaded",
		"base_url", cfg.TMDB.BaseURL,
		"timeout", cfg.RequestTimeout(),
		"rate", cfg.TMDB.RequestsPer10s,
		"debounce", cfg.Debounce(),
		"window", cfg.UI.TrendingWindow,
		"favorites_db", cfg.FavoritesDB,
	)

	client := tmdb.NewClient(cfg.TMDB.APIKey,
		tmdb.WithBaseURL(cfg.TMDB.BaseURL),
		tmdb.WithTimeout(cfg.RequestTimeout()),
		tmdb.WithRateLimit(cfg.TMDB.RequestsPer10s),
	)
	if !client.HasKey() {
		// Requests go out without a key; TMDB answers 401 and the lists stay empty.
		logging.Warn("TMDB API key is not set", "keys_file", filepath.Join(dataDir, "keys.env"))
		events.Warn(otel.KindStartup, "main", "TMDB API key is not set")
	}

	var persist favorites.Persister
	var saved []tmdb.Movie
	if cfg.FavoritesDB != "" {
		st, err := store.Open(cfg.FavoritesDB)
		if err != nil {
			events.Error(otel.KindShutdown, "main", err)
			return fmt.Errorf("open favorites database: %w", err)
		}
		defer st.Close()
		saved, err = st.Favorites()
		if err != nil {
			logging.Warn("Failed to load saved favorites", "error", err)
		}
		persist = st
		logging.Info("Favorites database opened", "path", cfg.FavoritesDB, "count", len(saved))
	}
	favs := favorites.New(persist, events.Logger)
	favs.Load(saved)

	window := tmdb.WindowWeek
	if cfg.UI.TrendingWindow == "day" {
		window = tmdb.WindowDay
	}
	c := coord.New(ctx, client, favs, coord.Options{
		Debounce: cfg.Debounce(),
		Window:   window,
		Logger:   events.Logger,
	})
	defer c.Close()

	app := ui.NewApp(ui.AppConfig{
		Coord:     c,
		Favorites: favs,
		Ring:      ring,
		Logger:    events.Logger,
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	logging.Info("Starting UI")
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		logging.Error("Application error", "error", err)
		events.Error(otel.KindShutdown, "main", err)
		return err
	}

	events.Info(otel.KindShutdown, "main", "moviehub exiting")
	logging.Info("MovieHub exiting normally", "events_dropped", events.Dropped())
	return nil
}

// loadConfig reads the dotenv files, the config file and, when no key has
// turned up yet, keys.env in dataDir. A missing key is not an error.
func loadConfig(dataDir string, dotenv ...string) (*config.Config, error) {
	if err := config.LoadDotEnv(dotenv...); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.TMDB.APIKey == "" {
		keysPath := filepath.Join(dataDir, "keys.env")
		if err := cfg.LoadKeysFromFile(keysPath); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", keysPath, err)
		}
	}
	return cfg, nil
}

// openEventLog appends to path, falling back to a discarding logger.
func openEventLog(path string) *eventLog {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: event log disabled: %v\n", err)
		return &eventLog{Logger: otel.NewNullLogger()}
	}
	return &eventLog{Logger: otel.NewLogger(f), f: f}
}

// eventLog closes the file after the logger has drained.
type eventLog struct {
	*otel.Logger
	f *os.File
}

func (e *eventLog) Close() {
	e.Logger.Close()
	if e.f != nil {
		e.f.Close()
	}
}
