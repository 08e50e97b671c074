// Package store persists favorites in SQLite.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/abelbrown/moviehub/internal/tmdb"

	_ "modernc.org/sqlite"
)

// Store is a SQLite-backed favorites table. Safe for concurrent use.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens or creates the database at dbPath. ":memory:" gives a
// private in-memory database. File databases use WAL.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Each connection would get its own empty database.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS favorites (
		movie_id INTEGER PRIMARY KEY,
		position INTEGER NOT NULL,
		title TEXT NOT NULL,
		overview TEXT,
		poster_path TEXT,
		backdrop_path TEXT,
		release_date TEXT,
		vote_average REAL,
		vote_count INTEGER,
		popularity REAL,
		genre_ids TEXT,
		added_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_favorites_position ON favorites(position);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Add stores m at the end of the list. Re-adding an existing movie
// refreshes its fields but keeps its position.
func (s *Store) Add(m tmdb.Movie) error {
	genres, err := json.Marshal(m.GenreIDs)
	if err != nil {
		return fmt.Errorf("encode genre ids: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec(`
		INSERT INTO favorites (movie_id, position, title, overview, poster_path, backdrop_path,
			release_date, vote_average, vote_count, popularity, genre_ids, added_at)
		VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM favorites), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(movie_id) DO UPDATE SET
			title = excluded.title,
			overview = excluded.overview,
			poster_path = excluded.poster_path,
			backdrop_path = excluded.backdrop_path,
			release_date = excluded.release_date,
			vote_average = excluded.vote_average,
			vote_count = excluded.vote_count,
			popularity = excluded.popularity,
			genre_ids = excluded.genre_ids
	`, m.ID, m.Title, m.Overview, nullString(m.PosterPath), nullString(m.BackdropPath),
		m.ReleaseDate, m.VoteAverage, m.VoteCount, m.Popularity, string(genres), time.Now())
	if err != nil {
		return fmt.Errorf("add favorite %d: %w", m.ID, err)
	}
	return nil
}

// Remove deletes a favorite. Removing an absent id is not an error.
func (s *Store) Remove(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec(`DELETE FROM favorites WHERE movie_id = ?`, id); err != nil {
		return fmt.Errorf("remove favorite %d: %w", id, err)
	}
	return nil
}

// Favorites returns every stored movie in the order it was added.
func (s *Store) Favorites() ([]tmdb.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT movie_id, title, overview, poster_path, backdrop_path, release_date,
			vote_average, vote_count, popularity, genre_ids
		FROM favorites
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query favorites: %w", err)
	}
	defer rows.Close()

	var out []tmdb.Movie
	for rows.Next() {
		var (
			m                   tmdb.Movie
			overview, date      sql.NullString
			poster, backdrop    sql.NullString
			voteAvg, popularity sql.NullFloat64
			voteCount           sql.NullInt64
			genres              sql.NullString
		)
		if err := rows.Scan(&m.ID, &m.Title, &overview, &poster, &backdrop, &date,
			&voteAvg, &voteCount, &popularity, &genres); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		m.Overview = overview.String
		m.ReleaseDate = date.String
		m.PosterPath = stringPtr(poster)
		m.BackdropPath = stringPtr(backdrop)
		m.VoteAverage = voteAvg.Float64
		m.VoteCount = int(voteCount.Int64)
		m.Popularity = popularity.Float64
		if genres.Valid && genres.String != "" {
			if err := json.Unmarshal([]byte(genres.String), &m.GenreIDs); err != nil {
				return nil, fmt.Errorf("decode genre ids for %d: %w", m.ID, err)
			}
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorites: %w", err)
	}
	return out, nil
}

// Count returns the number of stored favorites.
func (s *Store) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM favorites`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count favorites: %w", err)
	}
	return n, nil
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
