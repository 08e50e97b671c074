package coord

import (
	"time"

	"github.com/abelbrown/moviehub/internal/tmdb"
)

// DebounceFired is delivered when a search debounce timer expires.
// Only the message carrying the latest Tag is acted on.
type DebounceFired struct {
	Tag   uint64
	Query string
}

// ResultsLoaded carries the outcome of a result list fetch.
type ResultsLoaded struct {
	Seq     uint64
	FetchID string
	Section Section
	Query   string
	GenreID int
	Movies  []tmdb.Movie // already genre-filtered
	Err     error
	Dur     time.Duration
}

// DetailsLoaded carries the outcome of a details fetch.
type DetailsLoaded struct {
	Seq     uint64
	MovieID int
	Details *tmdb.MovieDetails
	Err     error
}

// GenresLoaded carries the genre catalog.
type GenresLoaded struct {
	Genres []tmdb.Genre
	Err    error
}
