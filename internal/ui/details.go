package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/moviehub/internal/tmdb"
)

// detailsChrome is the border plus horizontal padding of DetailsPanel.
const detailsChrome = 4

// renderDetails builds the overlay body for d. Budget and revenue are only
// listed when known.
func renderDetails(d *tmdb.MovieDetails, favorite bool, width int) string {
	if d == nil {
		return ""
	}
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	title := DetailsTitle.Render(movieLabel(d.Movie))
	if favorite {
		title += " " + FavoriteMark.Render("♥")
	}
	b.WriteString(title + "\n")
	if d.Tagline != "" {
		b.WriteString(DetailsTagline.Render(d.Tagline) + "\n")
	}
	b.WriteString("\n")

	field := func(label, value string) {
		b.WriteString(DetailsLabel.Render(label+": ") + value + "\n")
	}
	field("Rating", fmt.Sprintf("★ %s (%d votes)", tmdb.FormatRating(d.VoteAverage), d.VoteCount))
	field("Released", tmdb.FormatDate(d.ReleaseDate))
	field("Runtime", tmdb.FormatRuntime(d.Runtime))
	if names := d.GenreNames(); len(names) > 0 {
		field("Genres", strings.Join(names, ", "))
	}
	if d.Status != "" {
		field("Status", d.Status)
	}
	if d.Budget > 0 {
		field("Budget", tmdb.FormatMoney(d.Budget))
	}
	if d.Revenue > 0 {
		field("Revenue", tmdb.FormatMoney(d.Revenue))
	}

	b.WriteString("\n" + DetailsLabel.Render("Overview") + "\n")
	overview := d.Overview
	if overview == "" {
		overview = "No overview available."
	}
	b.WriteString(wrap.Render(overview) + "\n")

	if len(d.ProductionCompanies) > 0 {
		b.WriteString("\n" + DetailsLabel.Render("Production") + "\n")
		for _, pc := range d.ProductionCompanies {
			line := "  " + pc.Name
			if pc.OriginCountry != "" {
				line += " (" + pc.OriginCountry + ")"
			}
			if pc.LogoPath != nil {
				line += "  " + MetaItem.Render(tmdb.ImageURL(pc.LogoPath, tmdb.SizeW200))
			}
			b.WriteString(line + "\n")
		}
	}

	b.WriteString("\n")
	field("Poster", tmdb.ImageURL(d.PosterPath, tmdb.SizeW500))
	field("Backdrop", tmdb.ImageURL(d.BackdropPath, tmdb.SizeOriginal))
	if d.Homepage != "" {
		field("Homepage", d.Homepage)
	}
	if d.IMDbID != "" {
		field("IMDb", "https://www.imdb.com/title/"+d.IMDbID)
	}
	return b.String()
}
