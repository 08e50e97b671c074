// Package favorites holds the session's favorite movies.
package favorites

import (
	"sync"

	"github.com/abelbrown/moviehub/internal/logging"
	"github.com/abelbrown/moviehub/internal/otel"
	"github.com/abelbrown/moviehub/internal/tmdb"
)

// Persister mirrors favorites to durable storage. Errors are logged and
// never roll back the in-memory change.
type Persister interface {
	Add(m tmdb.Movie) error
	Remove(id int) error
}

type subscriber struct {
	id int
	fn func()
}

// Store is an insertion-ordered set of movies keyed by ID. Every change
// notifies subscribers synchronously, before Toggle returns.
type Store struct {
	mu      sync.Mutex
	order   []int
	movies  map[int]tmdb.Movie
	subs    []subscriber
	nextSub int

	persist Persister
	logger  *otel.Logger
}

// New returns an empty store. persist and logger may be nil.
func New(persist Persister, logger *otel.Logger) *Store {
	return &Store{
		movies:  make(map[int]tmdb.Movie),
		persist: persist,
		logger:  logger,
	}
}

// Load seeds the store without notifying or persisting. Duplicate IDs
// keep their first position.
func (s *Store) Load(movies []tmdb.Movie) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range movies {
		if _, ok := s.movies[m.ID]; ok {
			continue
		}
		s.movies[m.ID] = m
		s.order = append(s.order, m.ID)
	}
}

// IsFavorite reports whether id is in the store.
func (s *Store) IsFavorite(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.movies[id]
	return ok
}

// Toggle adds m if absent, removes it otherwise, and returns the new
// membership. Removing keeps the relative order of the remaining entries.
func (s *Store) Toggle(m tmdb.Movie) bool {
	s.mu.Lock()
	_, present := s.movies[m.ID]
	if present {
		delete(s.movies, m.ID)
		for i, id := range s.order {
			if id == m.ID {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	} else {
		s.movies[m.ID] = m
		s.order = append(s.order, m.ID)
	}
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	n := len(s.order)
	s.mu.Unlock()

	added := !present
	s.mirror(m, added)
	s.logger.Emit(otel.Event{
		Level:   otel.LevelInfo,
		Kind:    otel.KindFavoriteToggle,
		Comp:    "favorites",
		MovieID: m.ID,
		Count:   n,
		Extra:   map[string]any{"added": added},
	})

	for _, sub := range subs {
		sub.fn()
	}
	return added
}

func (s *Store) mirror(m tmdb.Movie, added bool) {
	if s.persist == nil {
		return
	}
	var err error
	if added {
		err = s.persist.Add(m)
	} else {
		err = s.persist.Remove(m.ID)
	}
	if err != nil {
		logging.Warn("favorites: persist failed", "movie", m.ID, "added", added, "error", err)
		s.logger.Emit(otel.Event{Level: otel.LevelWarn, Kind: otel.KindStoreError, Comp: "favorites", MovieID: m.ID, Err: err.Error()})
	}
}

// List returns the favorites in insertion order. The slice is a copy.
func (s *Store) List() []tmdb.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]tmdb.Movie, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.movies[id])
	}
	return out
}

// Len returns the number of favorites.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Subscribe registers fn to run after every change, in subscription order.
// fn may read the store. The returned func unsubscribes.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}
