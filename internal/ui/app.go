package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/moviehub/internal/coord"
	"github.com/abelbrown/moviehub/internal/otel"
	"github.com/abelbrown/moviehub/internal/tmdb"
)

// Favorites is the part of the favorites store the UI mutates.
type Favorites interface {
	Toggle(m tmdb.Movie) bool
	IsFavorite(id int) bool
	Len() int
}

// AppConfig wires the App to the rest of the program.
type AppConfig struct {
	Coord     *coord.Coordinator
	Favorites Favorites
	Ring      *otel.RingBuffer // debug overlay source, may be nil
	Logger    *otel.Logger     // may be nil
}

// App is the root Bubble Tea model.
// App never performs I/O itself: the coordinator hands back commands and
// their results arrive as messages.
type App struct {
	coord  *coord.Coordinator
	favs   Favorites
	ring   *otel.RingBuffer
	logger *otel.Logger

	input   textinput.Model
	spinner spinner.Model
	details viewport.Model
	picker  genrePicker
	picking bool
	keys    keyMap
	help    help.Model

	cursor    int
	width     int
	height    int
	ready     bool
	showDebug bool
}

// NewApp creates the root model.
func NewApp(cfg AppConfig) App {
	ti := textinput.New()
	ti.Placeholder = "Search movies..."
	ti.Prompt = ""
	ti.CharLimit = 100
	ti.Cursor.SetMode(cursor.CursorStatic)

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(colorHighlight)

	return App{
		coord:   cfg.Coord,
		favs:    cfg.Favorites,
		ring:    cfg.Ring,
		logger:  cfg.Logger,
		input:   ti,
		spinner: sp,
		details: viewport.New(0, 0),
		picker:  newGenrePicker(nil, 0, 0, 0),
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
}

// Init loads the first section, the genre catalog and starts the spinner.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.coord.Init(), a.spinner.Tick)
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if otel.TraceEnabled() {
		if _, isTick := msg.(spinner.TickMsg); !isTick {
			a.logger.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindMsgReceived, Comp: "ui", Msg: fmt.Sprintf("%T", msg)})
		}
	}

	if cmd, ok := a.coord.Handle(msg); ok {
		switch msg.(type) {
		case coord.DetailsLoaded:
			a.refreshDetails(true)
		case coord.GenresLoaded:
			if a.picking {
				a.picker = newGenrePicker(a.coord.Genres(), a.coord.GenreID(), a.width, a.height)
			}
		}
		a.clampCursor()
		if otel.TraceEnabled() {
			a.logger.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindMsgHandled, Comp: "ui", Msg: fmt.Sprintf("%T", msg), Count: len(a.coord.Results())})
		}
		return a, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.help.Width = msg.Width
		a.input.Width = msg.Width - 16
		if a.picking {
			a.picker.setSize(msg.Width, msg.Height)
		}
		a.refreshDetails(false)
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	return a, nil
}

// handleKeyMsg routes a key to the topmost layer: details, genre picker,
// debug overlay, search input, then the result list.
func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch {
	case a.coord.Details() != nil:
		return a.handleDetailsKey(msg)
	case a.picking:
		return a.handlePickerKey(msg)
	case a.showDebug:
		if key.Matches(msg, a.keys.Debug) || key.Matches(msg, a.keys.Back) {
			a.showDebug = false
		}
		return a, nil
	case a.input.Focused():
		return a.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(a.coord.Results())-1 {
			a.cursor++
		}
	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(msg, a.keys.Top):
		a.cursor = 0
	case key.Matches(msg, a.keys.Bottom):
		if n := len(a.coord.Results()); n > 0 {
			a.cursor = n - 1
		}

	case key.Matches(msg, a.keys.Trending):
		return a.selectSection(coord.SectionTrending)
	case key.Matches(msg, a.keys.Popular):
		return a.selectSection(coord.SectionPopular)
	case key.Matches(msg, a.keys.TopRated):
		return a.selectSection(coord.SectionTopRated)
	case key.Matches(msg, a.keys.NowPlaying):
		return a.selectSection(coord.SectionNowPlaying)
	case key.Matches(msg, a.keys.Favorites):
		return a.selectSection(coord.SectionFavorites)

	case key.Matches(msg, a.keys.Search):
		var cmd tea.Cmd
		if a.coord.Section() != coord.SectionSearch {
			a.cursor = 0
			cmd = a.coord.SelectSection(coord.SectionSearch)
		}
		return a, tea.Batch(cmd, a.input.Focus())

	case key.Matches(msg, a.keys.Genre):
		if a.coord.Section() == coord.SectionFavorites {
			return a, nil
		}
		a.picker = newGenrePicker(a.coord.Genres(), a.coord.GenreID(), a.width, a.height)
		a.picking = true
		return a, a.coord.LoadGenres()

	case key.Matches(msg, a.keys.ClearGenre):
		a.cursor = 0
		return a, a.coord.SetGenre(0)

	case key.Matches(msg, a.keys.Refresh):
		return a, a.coord.Reload()

	case key.Matches(msg, a.keys.Favorite):
		if m, ok := a.selected(); ok {
			a.favs.Toggle(m)
			a.clampCursor()
		}

	case key.Matches(msg, a.keys.Open):
		if m, ok := a.selected(); ok {
			return a, a.coord.OpenDetails(m.ID)
		}

	case key.Matches(msg, a.keys.Debug):
		a.showDebug = true
	}

	return a, nil
}

func (a App) handleDetailsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Back), key.Matches(msg, a.keys.Open), msg.String() == "q":
		a.coord.CloseDetails()
		return a, nil
	case key.Matches(msg, a.keys.Favorite):
		a.favs.Toggle(a.coord.Details().Movie)
		a.refreshDetails(false)
		a.clampCursor()
		return a, nil
	}
	var cmd tea.Cmd
	a.details, cmd = a.details.Update(msg)
	return a, cmd
}

func (a App) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.picker, cmd = a.picker.Update(msg)
	if !a.picker.done {
		return a, cmd
	}
	a.picking = false
	if !a.picker.selected {
		return a, nil
	}
	a.cursor = 0
	if a.picker.chosen == 0 {
		return a, a.coord.SetGenre(0)
	}
	return a, a.coord.ToggleGenre(a.picker.chosen)
}

func (a App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		a.input.Blur()
		return a, nil
	}

	before := a.input.Value()
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	if a.input.Value() == before {
		return a, cmd
	}
	a.cursor = 0
	return a, tea.Batch(cmd, a.coord.SetQuery(a.input.Value()))
}

func (a App) selectSection(s coord.Section) (tea.Model, tea.Cmd) {
	a.cursor = 0
	return a, a.coord.SelectSection(s)
}

func (a App) selected() (tmdb.Movie, bool) {
	results := a.coord.Results()
	if a.cursor < 0 || a.cursor >= len(results) {
		return tmdb.Movie{}, false
	}
	return results[a.cursor], true
}

func (a *App) clampCursor() {
	n := len(a.coord.Results())
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// refreshDetails re-renders the overlay content, keeping the scroll position
// unless top is set.
func (a *App) refreshDetails(top bool) {
	d := a.coord.Details()
	if d == nil {
		return
	}
	w := a.width - detailsChrome
	if w < 20 {
		w = 20
	}
	h := a.height - 4
	if h < 3 {
		h = 3
	}
	a.details.Width = w
	a.details.Height = h
	a.details.SetContent(renderDetails(d, a.favs.IsFavorite(d.ID), w-2))
	if top {
		a.details.GotoTop()
	}
}

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	if a.showDebug {
		return debugOverlay(a.ring, a.width, a.height-1) + "\n" + debugStatusBar(a.width)
	}

	var top []string
	top = append(top, RenderTabs(a.coord.Section(), a.favs.Len(), a.coord.GenreName(a.coord.GenreID()), a.width))
	if a.input.Focused() || a.coord.Section() == coord.SectionSearch {
		top = append(top, RenderSearchBar(a.input.View(), len(a.coord.Results()), a.width))
	}
	title := SectionTitle.Render(a.coord.Title())
	if a.coord.Loading() || a.coord.DetailsPending() != 0 {
		title += " " + a.spinner.View()
	}
	top = append(top, title)
	header := strings.Join(top, "\n")

	bodyHeight := a.height - lipgloss.Height(header) - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	results := a.coord.Results()
	switch {
	case a.coord.Details() != nil:
		body = DetailsPanel.Render(a.details.View())
	case a.picking:
		body = a.picker.View()
	case len(results) == 0 && !a.coord.Loading():
		body = emptyState(a.coord.Section(), a.coord.RawQuery())
	default:
		body = RenderResults(results, a.cursor, a.width, bodyHeight, a.favs.IsFavorite)
	}
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(strings.TrimRight(body, "\n"))

	status := RenderStatusBar(a.cursor, len(results), a.width, a.coord.Loading(), a.help.ShortHelpView(a.keys.ShortHelp()))
	return header + "\n" + body + "\n" + status
}

// Cursor returns the current cursor position (for testing).
func (a App) Cursor() int {
	return a.cursor
}

// Picking reports whether the genre picker is open (for testing).
func (a App) Picking() bool {
	return a.picking
}

// SearchFocused reports whether the search input has focus (for testing).
func (a App) SearchFocused() bool {
	return a.input.Focused()
}
