package ui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/abelbrown/moviehub/internal/coord"
	"github.com/abelbrown/moviehub/internal/tmdb"
)

func TestCalcScrollOffset(t *testing.T) {
	tests := []struct {
		name                  string
		total, cursor, height int
		want                  int
	}{
		{"empty", 0, 0, 10, 0},
		{"cursor in first page", 50, 5, 10, 0},
		{"cursor at last visible row", 50, 9, 10, 0},
		{"cursor past first page", 50, 10, 10, 1},
		{"cursor at end", 50, 49, 10, 40},
		{"cursor beyond total", 5, 9, 3, 2},
		{"negative cursor", 5, -1, 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := calcScrollOffset(tt.total, tt.cursor, tt.height); got != tt.want {
				t.Errorf("calcScrollOffset(%d, %d, %d) = %d, want %d", tt.total, tt.cursor, tt.height, got, tt.want)
			}
		})
	}
}

func TestMovieLabel(t *testing.T) {
	tests := []struct {
		movie tmdb.Movie
		want  string
	}{
		{tmdb.Movie{Title: "Heat", ReleaseDate: "1995-12-15"}, "Heat (1995)"},
		{tmdb.Movie{Title: "Untitled"}, "Untitled"},
		{tmdb.Movie{Title: "Odd", ReleaseDate: "soon"}, "Odd"},
	}
	for _, tt := range tests {
		if got := movieLabel(tt.movie); got != tt.want {
			t.Errorf("movieLabel(%+v) = %q, want %q", tt.movie, got, tt.want)
		}
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"Heat", 10, "Heat"},
		{"Heat", 4, "Heat"},
		{"The Godfather", 8, "The G..."},
		{"Amélie Poulain", 7, "Amél..."},
		{"abc", 2, "ab"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := truncateRunes(tt.in, tt.max); got != tt.want {
			t.Errorf("truncateRunes(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestRenderResultsWindow(t *testing.T) {
	movies := make([]tmdb.Movie, 20)
	for i := range movies {
		movies[i] = tmdb.Movie{ID: i + 1, Title: fmt.Sprintf("Movie %02d", i+1), ReleaseDate: "2020-01-01"}
	}

	out := RenderResults(movies, 15, 100, 5, nil)
	if lines := strings.Count(out, "\n"); lines != 5 {
		t.Fatalf("rendered %d lines, want 5", lines)
	}
	if !strings.Contains(out, "Movie 16") {
		t.Error("cursor row should be visible")
	}
	if strings.Contains(out, "Movie 01") {
		t.Error("rows above the window should be hidden")
	}
}

func TestRenderResultsRow(t *testing.T) {
	movies := []tmdb.Movie{
		{ID: 42, Title: "Heat", ReleaseDate: "1995-12-15", VoteAverage: 7.94},
		{ID: 7, Title: "Ronin", ReleaseDate: ""},
	}
	isFav := func(id int) bool { return id == 42 }

	out := RenderResults(movies, 0, 100, 10, isFav)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, want := range []string{"★ 7.9", "Heat (1995)", "December 15, 1995", "♥"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("first row missing %q: %q", want, lines[0])
		}
	}
	if strings.Contains(lines[1], "♥") {
		t.Errorf("second row should not be marked favorite: %q", lines[1])
	}
	if !strings.Contains(lines[1], "Unknown") {
		t.Errorf("missing date should render Unknown: %q", lines[1])
	}
}

func TestRenderTabsGenreChip(t *testing.T) {
	out := RenderTabs(coord.SectionPopular, 3, "Drama", 200)
	for _, want := range []string{"2 Popular", "5 Favorites (3)", "genre: Drama"} {
		if !strings.Contains(out, want) {
			t.Errorf("tabs missing %q: %q", want, out)
		}
	}

	out = RenderTabs(coord.SectionFavorites, 3, "Drama", 200)
	if strings.Contains(out, "genre:") {
		t.Errorf("genre chip should be hidden in favorites: %q", out)
	}
}

func TestEmptyState(t *testing.T) {
	tests := []struct {
		section coord.Section
		raw     string
		want    string
	}{
		{coord.SectionSearch, "", "Search for your favorite movies"},
		{coord.SectionSearch, "   ", "Search for your favorite movies"},
		{coord.SectionSearch, "zzzz", "No movies found"},
		{coord.SectionFavorites, "", "No favorites yet"},
		{coord.SectionTrending, "", "No movies found"},
	}
	for _, tt := range tests {
		if got := emptyState(tt.section, tt.raw); !strings.Contains(got, tt.want) {
			t.Errorf("emptyState(%q, %q) = %q, want it to contain %q", tt.section, tt.raw, got, tt.want)
		}
	}
}

func TestRenderDetails(t *testing.T) {
	runtime := 170
	poster := "/heat.jpg"
	d := &tmdb.MovieDetails{
		Movie: tmdb.Movie{
			ID: 949, Title: "Heat", ReleaseDate: "1995-12-15",
			VoteAverage: 7.9, VoteCount: 6000, PosterPath: &poster,
		},
		Tagline: "A Los Angeles crime saga",
		Runtime: &runtime,
		Budget:  60000000,
		Genres:  []tmdb.Genre{{ID: 28, Name: "Action"}, {ID: 80, Name: "Crime"}},
		IMDbID:  "tt0113277",
	}

	out := renderDetails(d, true, 80)
	for _, want := range []string{
		"Heat (1995)",
		"♥",
		"A Los Angeles crime saga",
		"★ 7.9 (6000 votes)",
		"December 15, 1995",
		"2h 50m",
		"Action, Crime",
		"$60,000,000",
		"No overview available.",
		"https://image.tmdb.org/t/p/w500/heat.jpg",
		tmdb.PlaceholderImage,
		"https://www.imdb.com/title/tt0113277",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("details missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Revenue") {
		t.Error("unknown revenue should be omitted")
	}
	if renderDetails(nil, false, 80) != "" {
		t.Error("nil details should render nothing")
	}
}
