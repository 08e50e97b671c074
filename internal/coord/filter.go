package coord

import "github.com/abelbrown/moviehub/internal/tmdb"

// FilterByGenre returns the movies tagged with genreID, in their original
// order. genreID 0 returns movies unchanged. The input is never modified.
func FilterByGenre(movies []tmdb.Movie, genreID int) []tmdb.Movie {
	if genreID == 0 {
		return movies
	}
	out := make([]tmdb.Movie, 0, len(movies))
	for _, m := range movies {
		if m.HasGenre(genreID) {
			out = append(out, m)
		}
	}
	return out
}
