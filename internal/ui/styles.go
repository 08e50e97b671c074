package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary   = lipgloss.Color("62")  // purple
	colorSecondary = lipgloss.Color("241") // gray
	colorMuted     = lipgloss.Color("240")
	colorHighlight = lipgloss.Color("212") // pink
	colorGold      = lipgloss.Color("220")
	colorFavorite  = lipgloss.Color("203") // red
	colorSurface   = lipgloss.Color("236")
)

// SelectedItem highlights the row under the cursor.
var SelectedItem = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

var NormalItem = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// MetaItem dims secondary row text such as dates and leader dots.
var MetaItem = lipgloss.NewStyle().
	Foreground(colorMuted)

// RatingBadge shows the vote average.
var RatingBadge = lipgloss.NewStyle().
	Foreground(colorGold).
	Background(colorSurface).
	Padding(0, 1).
	MarginRight(1)

var FavoriteMark = lipgloss.NewStyle().
	Foreground(colorFavorite).
	Bold(true)

// SectionTitle is the heading above the result list.
var SectionTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	Padding(0, 1)

var Tab = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Padding(0, 1)

var ActiveTab = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// GenreChip marks the active genre filter in the header.
var GenreChip = lipgloss.NewStyle().
	Foreground(colorPrimary).
	Background(colorSurface).
	Padding(0, 1)

var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(colorSurface).
	Padding(0, 1)

var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// HelpStyle renders empty-state hints.
var HelpStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(1, 2)

// SearchBar is the query input row.
var SearchBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(colorMuted).
	Padding(0, 1)

var SearchBarPrompt = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

var SearchBarCount = lipgloss.NewStyle().
	Foreground(lipgloss.Color("252"))

// DetailsPanel frames the details overlay.
var DetailsPanel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorPrimary).
	Padding(0, 1)

var DetailsTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255"))

var DetailsTagline = lipgloss.NewStyle().
	Italic(true).
	Foreground(colorSecondary)

var DetailsLabel = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight)

// PickerPanel frames the genre picker.
var PickerPanel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorSecondary).
	Padding(0, 1)

var DebugPanel = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder()).
	BorderForeground(colorHighlight).
	Padding(1, 2)

var DebugHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight)
