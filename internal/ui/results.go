package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/moviehub/internal/coord"
	"github.com/abelbrown/moviehub/internal/tmdb"
)

// dateColWidth fits "September 30, 2024".
const dateColWidth = 18

// RenderResults renders the visible window of the result list with the
// cursor row highlighted. isFavorite may be nil.
func RenderResults(movies []tmdb.Movie, cursor, width, height int, isFavorite func(int) bool) string {
	if height < 1 {
		height = 1
	}
	offset := calcScrollOffset(len(movies), cursor, height)

	var b strings.Builder
	for i := offset; i < len(movies) && i < offset+height; i++ {
		fav := isFavorite != nil && isFavorite(movies[i].ID)
		b.WriteString(renderMovieLine(movies[i], i == cursor, fav, width))
		b.WriteString("\n")
	}
	return b.String()
}

// calcScrollOffset returns the first visible index that keeps cursor on
// screen.
func calcScrollOffset(total, cursor, height int) int {
	if total == 0 || cursor < 0 {
		return 0
	}
	if cursor >= total {
		cursor = total - 1
	}
	if cursor >= height {
		return cursor - height + 1
	}
	return 0
}

// movieLabel is "Title (Year)", or just the title when the year is unknown.
func movieLabel(m tmdb.Movie) string {
	if y := tmdb.ReleaseYear(m.ReleaseDate); y != "" {
		return fmt.Sprintf("%s (%s)", m.Title, y)
	}
	return m.Title
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 3 {
		return string([]rune(s)[:max])
	}
	return string([]rune(s)[:max-3]) + "..."
}

func renderMovieLine(m tmdb.Movie, selected, favorite bool, width int) string {
	badge := RatingBadge.Render("★ " + tmdb.FormatRating(m.VoteAverage))
	heart := " "
	if favorite {
		heart = FavoriteMark.Render("♥")
	}
	date := tmdb.FormatDate(m.ReleaseDate)
	if pad := dateColWidth - utf8.RuneCountInString(date); pad > 0 {
		date = strings.Repeat(" ", pad) + date
	}

	// badge + title padding + leader + date + heart
	titleWidth := width - lipgloss.Width(badge) - dateColWidth - 6
	if titleWidth < 12 {
		titleWidth = 12
	}
	title := truncateRunes(movieLabel(m), titleWidth)

	style := NormalItem
	if selected {
		style = SelectedItem
	}
	left := badge + style.Render(title)

	dots := width - lipgloss.Width(left) - dateColWidth - 3
	return left + MetaItem.Render(leader(dots)) + " " + MetaItem.Render(date) + " " + heart
}

// leader is a run of dots ending in a space.
func leader(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(".", n-1) + " "
}

// RenderTabs renders the section switcher with the active section marked.
func RenderTabs(active coord.Section, favorites int, genre string, width int) string {
	tabs := []struct {
		key     string
		label   string
		section coord.Section
	}{
		{"1", "Trending", coord.SectionTrending},
		{"2", "Popular", coord.SectionPopular},
		{"3", "Top Rated", coord.SectionTopRated},
		{"4", "Now Playing", coord.SectionNowPlaying},
		{"5", fmt.Sprintf("Favorites (%d)", favorites), coord.SectionFavorites},
	}

	parts := make([]string, 0, len(tabs)+1)
	for _, t := range tabs {
		label := t.key + " " + t.label
		if t.section == active {
			parts = append(parts, ActiveTab.Render(label))
		} else {
			parts = append(parts, Tab.Render(label))
		}
	}
	row := strings.Join(parts, " ")
	if genre != "" && active != coord.SectionFavorites {
		row += " " + GenreChip.Render("genre: "+genre)
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(row)
}

// RenderSearchBar renders the query input with the result count.
func RenderSearchBar(input string, results, width int) string {
	prompt := SearchBarPrompt.Render("/")
	count := SearchBarCount.Render(fmt.Sprintf(" %d results", results))

	content := prompt + input
	padding := width - lipgloss.Width(content) - lipgloss.Width(count) - 2
	if padding < 0 {
		padding = 0
	}
	return SearchBar.Width(width).Render(content + strings.Repeat(" ", padding) + count)
}

// RenderStatusBar renders the cursor position (or a loading note) and the
// key hints.
func RenderStatusBar(cursor, total, width int, loading bool, hints string) string {
	var position string
	switch {
	case loading:
		position = " Loading... "
	case total == 0:
		position = " 0/0 "
	default:
		position = fmt.Sprintf(" %d/%d ", cursor+1, total)
	}

	padding := width - lipgloss.Width(position) - lipgloss.Width(hints) - 2
	if padding < 0 {
		padding = 0
	}
	return StatusBar.Width(width).Render(position + strings.Repeat(" ", padding) + hints)
}

// emptyState is shown instead of the list when there is nothing to render.
func emptyState(section coord.Section, rawQuery string) string {
	switch {
	case section == coord.SectionSearch && strings.TrimSpace(rawQuery) == "":
		return HelpStyle.Render("Search for your favorite movies\nPress / and type a title")
	case section == coord.SectionFavorites:
		return HelpStyle.Render("No favorites yet. Press f on a movie to add it.")
	default:
		return HelpStyle.Render("No movies found. Press r to reload.")
	}
}
