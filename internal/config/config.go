package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the persistent application configuration.
type Config struct {
	TMDB TMDBConfig `json:"tmdb"`
	UI   UIConfig   `json:"ui"`

	// FavoritesDB enables durable favorites when non-empty.
	FavoritesDB string `json:"favorites_db,omitempty"`

	LogLevel string `json:"log_level"`
	Trace    bool   `json:"trace"`
}

// TMDBConfig holds API access settings.
type TMDBConfig struct {
	APIKey           string `json:"api_key,omitempty"`
	BaseURL          string `json:"base_url"`
	RequestTimeoutMs int    `json:"request_timeout_ms"`
	RequestsPer10s   int    `json:"requests_per_10s"` // 0 disables client-side limiting
}

// UIConfig holds interface preferences.
type UIConfig struct {
	DebounceMs     int    `json:"debounce_ms"`
	TrendingWindow string `json:"trending_window"` // "day" or "week"
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			BaseURL:          "https://api.themoviedb.org/3",
			RequestTimeoutMs: 10000,
			RequestsPer10s:   40,
		},
		UI: UIConfig{
			DebounceMs:     500,
			TrendingWindow: "week",
		},
		LogLevel: "info",
	}
}

// DataDir returns ~/.moviehub.
func DataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".moviehub")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.json")
}

// Load reads the config at path. A missing file yields the defaults and a
// malformed one falls back to them. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		parsed := DefaultConfig()
		if err := json.Unmarshal(data, parsed); err == nil {
			cfg = parsed
		}
	}

	cfg.ApplyEnv(os.Getenv)
	cfg.normalize()
	return cfg, nil
}

// Save writes the config to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600) // holds the API key
}

// LoadDotEnv loads KEY=value pairs from the given .env files into the
// process environment without overriding variables that are already set.
// Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// LoadKeysFromFile reads a .env style file and applies its keys to c
// without touching the process environment.
func (c *Config) LoadKeysFromFile(path string) error {
	vals, err := godotenv.Read(path)
	if err != nil {
		return err
	}
	c.ApplyEnv(func(k string) string { return vals[k] })
	return nil
}

// ApplyEnv overrides fields from environment variables read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	// VITE_ prefix is what the web front-end used; the plain name wins.
	if key := getenv("VITE_TMDB_API_KEY"); key != "" {
		c.TMDB.APIKey = key
	}
	if key := getenv("TMDB_API_KEY"); key != "" {
		c.TMDB.APIKey = key
	}
	if u := getenv("TMDB_BASE_URL"); u != "" {
		c.TMDB.BaseURL = u
	}
	if p := getenv("MOVIEHUB_FAVORITES_DB"); p != "" {
		c.FavoritesDB = p
	}
	if v := getenv("MOVIEHUB_DEBOUNCE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			c.UI.DebounceMs = ms
		}
	}
	if v := getenv("MOVIEHUB_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if getenv("MOVIEHUB_TRACE") != "" {
		c.Trace = true
	}
}

func (c *Config) normalize() {
	d := DefaultConfig()
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = d.TMDB.BaseURL
	}
	if c.TMDB.RequestTimeoutMs <= 0 {
		c.TMDB.RequestTimeoutMs = d.TMDB.RequestTimeoutMs
	}
	if c.UI.DebounceMs <= 0 {
		c.UI.DebounceMs = d.UI.DebounceMs
	}
	if c.UI.TrendingWindow != "day" {
		c.UI.TrendingWindow = "week"
	}
}

// RequestTimeout returns the TMDB request timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.TMDB.RequestTimeoutMs) * time.Millisecond
}

// Debounce returns the search debounce delay.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.UI.DebounceMs) * time.Millisecond
}
