package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/abelbrown/moviehub/internal/config"
	"github.com/abelbrown/moviehub/internal/store"
	"github.com/abelbrown/moviehub/internal/tmdb"
)

// loadConfig reads .env, the config file and the environment, or fatals.
func loadConfig() *config.Config {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("warning: %v", err)
	}
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.TMDB.APIKey == "" {
		_ = cfg.LoadKeysFromFile(filepath.Join(config.DataDir(), "keys.env"))
	}
	return cfg
}

// newClient builds a TMDB client from the config. Without a key the request
// still goes out and TMDB answers 401.
func newClient(cfg *config.Config) *tmdb.Client {
	c := tmdb.NewClient(cfg.TMDB.APIKey,
		tmdb.WithBaseURL(cfg.TMDB.BaseURL),
		tmdb.WithTimeout(cfg.RequestTimeout()),
		tmdb.WithRateLimit(cfg.TMDB.RequestsPer10s),
	)
	if !c.HasKey() {
		fmt.Fprintln(os.Stderr, "warning: TMDB_API_KEY is not set (export it or add it to .env)")
	}
	return c
}

// favoritesPath returns the configured database, defaulting to
// ~/.moviehub/favorites.db.
func favoritesPath(cfg *config.Config) string {
	if cfg.FavoritesDB != "" {
		return cfg.FavoritesDB
	}
	return filepath.Join(config.DataDir(), "favorites.db")
}

// openDB opens the favorites store or fatals.
func openDB(path string) *store.Store {
	st, err := store.Open(path)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	return st
}

// eventLogPath returns the path to events.jsonl.
func eventLogPath() string {
	return filepath.Join(config.DataDir(), "events.jsonl")
}

// printMovies writes one line per movie: id, rating, year and title.
func printMovies(page *tmdb.MoviePage) {
	for i, m := range page.Results {
		year := tmdb.ReleaseYear(m.ReleaseDate)
		if year == "" {
			year = "----"
		}
		fmt.Printf("%3d. %8d  ★ %s  %s  %s\n", i+1, m.ID, tmdb.FormatRating(m.VoteAverage), year, truncate(m.Title, 60))
	}
	fmt.Printf("\npage %d of %d (%d results)\n", page.Page, page.TotalPages, page.TotalResults)
}

// truncate shortens a string to max runes, appending "..." if truncated.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
