// Package coord owns the view state of the movie browser: which section is
// shown, the search query and its debounce, the genre filter, and the
// result list. All state changes happen on the Bubble Tea event loop; I/O
// runs inside the tea.Cmds the coordinator returns.
package coord

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/abelbrown/moviehub/internal/logging"
	"github.com/abelbrown/moviehub/internal/otel"
	"github.com/abelbrown/moviehub/internal/tmdb"
)

// DefaultDebounce is the search quiescence window.
const DefaultDebounce = 500 * time.Millisecond

// Section is the top-level content mode.
type Section string

const (
	SectionTrending   Section = "trending"
	SectionPopular    Section = "popular"
	SectionTopRated   Section = "top-rated"
	SectionNowPlaying Section = "now-playing"
	SectionSearch     Section = "search"
	SectionFavorites  Section = "favorites"
)

// Valid reports whether s is a known section.
func (s Section) Valid() bool {
	switch s {
	case SectionTrending, SectionPopular, SectionTopRated, SectionNowPlaying, SectionSearch, SectionFavorites:
		return true
	}
	return false
}

// Source is the subset of the TMDB client the coordinator uses.
type Source interface {
	Trending(ctx context.Context, window tmdb.TimeWindow) (*tmdb.MoviePage, error)
	Popular(ctx context.Context, page int) (*tmdb.MoviePage, error)
	TopRated(ctx context.Context, page int) (*tmdb.MoviePage, error)
	NowPlaying(ctx context.Context, page int) (*tmdb.MoviePage, error)
	Search(ctx context.Context, query string, page int) (*tmdb.MoviePage, error)
	Details(ctx context.Context, id int) (*tmdb.MovieDetails, error)
	Genres(ctx context.Context) ([]tmdb.Genre, error)
}

// Favorites is the favorites store as seen by the coordinator.
type Favorites interface {
	List() []tmdb.Movie
	Len() int
	Subscribe(fn func()) (unsubscribe func())
}

// ViewState is a snapshot of what the browser shows.
type ViewState struct {
	Section        Section
	RawQuery       string
	DebouncedQuery string
	GenreID        int // 0 means no filter
	Loading        bool
	Results        []tmdb.Movie
}

// Options tunes a Coordinator. Zero values select defaults.
type Options struct {
	Debounce time.Duration
	Window   tmdb.TimeWindow
	Logger   *otel.Logger
}

// tickFunc schedules fn after d. tea.Tick in production.
type tickFunc func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// Coordinator is not safe for concurrent use; call it only from Update.
type Coordinator struct {
	// ctx bounds every fetch the coordinator issues; cancelled on quit.
	ctx      context.Context
	source   Source
	favs     Favorites
	logger   *otel.Logger
	debounce time.Duration
	window   tmdb.TimeWindow
	tick     tickFunc

	state ViewState

	seq         uint64 // latest issued result fetch
	debounceTag uint64 // latest scheduled debounce timer
	detailsSeq  uint64

	details        *tmdb.MovieDetails
	pendingDetails int

	genres        []tmdb.Genre
	genresLoaded  bool
	genresLoading bool

	unsubscribe func()
}

// New returns a coordinator showing the trending section. Call Init to
// issue the first fetch and Close to detach from the favorites store.
func New(ctx context.Context, source Source, favs Favorites, opts Options) *Coordinator {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Window != tmdb.WindowDay {
		opts.Window = tmdb.WindowWeek
	}
	c := &Coordinator{
		ctx:      ctx,
		source:   source,
		favs:     favs,
		logger:   opts.Logger,
		debounce: opts.Debounce,
		window:   opts.Window,
		tick:     tea.Tick,
		state:    ViewState{Section: SectionTrending, Results: []tmdb.Movie{}},
	}
	c.unsubscribe = favs.Subscribe(c.favoritesChanged)
	return c
}

// Close stops listening to the favorites store.
func (c *Coordinator) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

// Init loads the initial section and the genre catalog.
func (c *Coordinator) Init() tea.Cmd {
	return tea.Batch(c.refresh(), c.LoadGenres())
}

// State returns a copy of the current view state.
func (c *Coordinator) State() ViewState {
	s := c.state
	s.Results = c.Results()
	return s
}

// Results returns a copy of the current results, never nil.
func (c *Coordinator) Results() []tmdb.Movie {
	out := make([]tmdb.Movie, len(c.state.Results))
	copy(out, c.state.Results)
	return out
}

func (c *Coordinator) Section() Section { return c.state.Section }
func (c *Coordinator) Loading() bool { return c.state.Loading }
func (c *Coordinator) GenreID() int { return c.state.GenreID }
func (c *Coordinator) RawQuery() string { return c.state.RawQuery }
func (c *Coordinator) Details() *tmdb.MovieDetails { return c.details }

// DetailsPending returns the id of the movie whose details are loading, or 0.
func (c *Coordinator) DetailsPending() int { return c.pendingDetails }

// SelectSection switches to s and reloads it, even if s is already shown.
// The raw query is kept but ignored outside search.
func (c *Coordinator) SelectSection(s Section) tea.Cmd {
	if !s.Valid() {
		return nil
	}
	c.state.Section = s
	return c.refresh()
}

// Reload re-runs the fetch for the current section.
func (c *Coordinator) Reload() tea.Cmd {
	return c.refresh()
}

// SetQuery records the typed query and restarts the debounce timer.
func (c *Coordinator) SetQuery(raw string) tea.Cmd {
	c.state.RawQuery = raw
	c.debounceTag++
	tag := c.debounceTag
	return c.tick(c.debounce, func(time.Time) tea.Msg {
		return DebounceFired{Tag: tag, Query: raw}
	})
}

// HandleDebounce applies an expired debounce timer. Superseded timers are
// ignored.
func (c *Coordinator) HandleDebounce(msg DebounceFired) tea.Cmd {
	if msg.Tag != c.debounceTag {
		logging.Debug("coord: debounce superseded", "query", msg.Query)
		c.logger.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindSearchSuperseded, Comp: "coord", Query: msg.Query})
		return nil
	}
	c.state.DebouncedQuery = msg.Query
	c.logger.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindSearchDebounce, Comp: "coord", Query: msg.Query})

	if strings.TrimSpace(msg.Query) != "" {
		c.state.Section = SectionSearch
		return c.refresh()
	}
	if c.state.Section == SectionSearch {
		c.state.Section = SectionTrending
		c.state.Results = []tmdb.Movie{}
		c.state.Loading = false
		c.seq++ // drop any search still in flight
	}
	return nil
}

// SetGenre sets the genre filter (0 clears it). A change re-runs the
// fetch unless favorites are shown.
func (c *Coordinator) SetGenre(id int) tea.Cmd {
	if id < 0 {
		id = 0
	}
	if id == c.state.GenreID {
		return nil
	}
	c.state.GenreID = id
	if c.state.Section == SectionFavorites {
		return nil
	}
	return c.refresh()
}

// ToggleGenre selects id, or clears the filter if id is already selected.
func (c *Coordinator) ToggleGenre(id int) tea.Cmd {
	if id == c.state.GenreID {
		return c.SetGenre(0)
	}
	return c.SetGenre(id)
}

// favoritesChanged runs synchronously inside Favorites.Toggle.
func (c *Coordinator) favoritesChanged() {
	if c.state.Section != SectionFavorites {
		return
	}
	c.seq++
	c.state.Results = c.favs.List()
	c.state.Loading = false
}

type fetchRequest struct {
	seq     uint64
	id      string
	section Section
	query   string
	genreID int
}

// refresh runs the fetch/filter algorithm for the current state.
func (c *Coordinator) refresh() tea.Cmd {
	c.seq++

	switch c.state.Section {
	case SectionFavorites:
		// Genre filter does not apply to favorites.
		c.state.Results = c.favs.List()
		c.state.Loading = false
		return nil
	case SectionSearch:
		if strings.TrimSpace(c.state.DebouncedQuery) == "" {
			c.state.Results = []tmdb.Movie{}
			c.state.Loading = false
			return nil
		}
	}

	req := fetchRequest{
		seq:     c.seq,
		id:      uuid.NewString(),
		section: c.state.Section,
		query:   strings.TrimSpace(c.state.DebouncedQuery),
		genreID: c.state.GenreID,
	}
	c.state.Loading = true
	c.logger.Emit(otel.Event{
		Level:   otel.LevelInfo,
		Kind:    otel.KindFetchStart,
		Comp:    "coord",
		FetchID: req.id,
		Seq:     req.seq,
		Section: string(req.section),
		Query:   req.query,
		GenreID: req.genreID,
	})
	return func() tea.Msg { return c.fetch(req) }
}

// fetch runs off the event loop and touches no coordinator state.
func (c *Coordinator) fetch(req fetchRequest) tea.Msg {
	start := time.Now()
	var (
		page *tmdb.MoviePage
		err  error
	)
	switch req.section {
	case SectionTrending:
		page, err = c.source.Trending(c.ctx, c.window)
	case SectionPopular:
		page, err = c.source.Popular(c.ctx, 1)
	case SectionTopRated:
		page, err = c.source.TopRated(c.ctx, 1)
	case SectionNowPlaying:
		page, err = c.source.NowPlaying(c.ctx, 1)
	case SectionSearch:
		page, err = c.source.Search(c.ctx, req.query, 1)
	default:
		err = errors.New("coord: no source for section " + string(req.section))
	}
	if err == nil && page == nil {
		err = &tmdb.ResponseFormatError{Op: string(req.section), Err: errors.New("empty page")}
	}

	msg := ResultsLoaded{
		Seq:     req.seq,
		FetchID: req.id,
		Section: req.section,
		Query:   req.query,
		GenreID: req.genreID,
		Err:     err,
		Dur:     time.Since(start),
	}
	if err == nil {
		msg.Movies = FilterByGenre(page.Results, req.genreID)
	}
	return msg
}

// HandleResults applies a finished fetch. Results from any fetch other than
// the latest issued are discarded.
func (c *Coordinator) HandleResults(msg ResultsLoaded) tea.Cmd {
	if msg.Seq != c.seq {
		c.logger.Emit(otel.Event{
			Level:   otel.LevelDebug,
			Kind:    otel.KindFetchStale,
			Comp:    "coord",
			FetchID: msg.FetchID,
			Seq:     msg.Seq,
			Section: string(msg.Section),
			Msg:     "superseded",
		})
		return nil
	}

	if msg.Err != nil {
		c.applyFailure(opList)
		logging.Warn("coord: fetch failed", "section", msg.Section, "query", msg.Query, "kind", errorClass(msg.Err), "error", msg.Err)
		c.logger.Emit(otel.Event{
			Level:   otel.LevelWarn,
			Kind:    otel.KindFetchError,
			Comp:    "coord",
			FetchID: msg.FetchID,
			Seq:     msg.Seq,
			Section: string(msg.Section),
			Query:   msg.Query,
			Dur:     msg.Dur,
			Err:     msg.Err.Error(),
			Extra:   map[string]any{"class": errorClass(msg.Err)},
		})
		return nil
	}

	c.state.Results = msg.Movies
	if c.state.Results == nil {
		c.state.Results = []tmdb.Movie{}
	}
	c.state.Loading = false
	c.logger.Emit(otel.Event{
		Level:   otel.LevelInfo,
		Kind:    otel.KindFetchComplete,
		Comp:    "coord",
		FetchID: msg.FetchID,
		Seq:     msg.Seq,
		Section: string(msg.Section),
		Query:   msg.Query,
		GenreID: msg.GenreID,
		Count:   len(msg.Movies),
		Dur:     msg.Dur,
	})
	return nil
}

// OpenDetails fetches the details of movie id. The overlay opens when the
// fetch succeeds.
func (c *Coordinator) OpenDetails(id int) tea.Cmd {
	c.detailsSeq++
	seq := c.detailsSeq
	c.pendingDetails = id
	c.logger.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindDetailsStart, Comp: "coord", MovieID: id, Seq: seq})

	return func() tea.Msg {
		d, err := c.source.Details(c.ctx, id)
		return DetailsLoaded{Seq: seq, MovieID: id, Details: d, Err: err}
	}
}

// HandleDetails applies a finished details fetch.
func (c *Coordinator) HandleDetails(msg DetailsLoaded) tea.Cmd {
	if msg.Seq != c.detailsSeq {
		return nil
	}
	c.pendingDetails = 0

	if msg.Err != nil {
		c.applyFailure(opDetails)
		logging.Warn("coord: details failed", "movie", msg.MovieID, "kind", errorClass(msg.Err), "error", msg.Err)
		c.logger.Emit(otel.Event{Level: otel.LevelWarn, Kind: otel.KindDetailsError, Comp: "coord", MovieID: msg.MovieID, Err: msg.Err.Error()})
		return nil
	}

	c.details = msg.Details
	c.logger.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindDetailsComplete, Comp: "coord", MovieID: msg.MovieID})
	return nil
}

// CloseDetails closes the overlay and abandons any pending details fetch.
func (c *Coordinator) CloseDetails() {
	c.detailsSeq++
	c.details = nil
	c.pendingDetails = 0
}

// LoadGenres fetches the genre catalog unless it is loaded or loading.
func (c *Coordinator) LoadGenres() tea.Cmd {
	if c.genresLoaded || c.genresLoading {
		return nil
	}
	c.genresLoading = true
	return func() tea.Msg {
		g, err := c.source.Genres(c.ctx)
		return GenresLoaded{Genres: g, Err: err}
	}
}

// HandleGenres stores the catalog. A failure allows a later retry.
func (c *Coordinator) HandleGenres(msg GenresLoaded) tea.Cmd {
	c.genresLoading = false
	if msg.Err != nil {
		c.applyFailure(opGenres)
		logging.Warn("coord: genre catalog failed", "error", msg.Err)
		c.logger.Error(otel.KindGenresError, "coord", msg.Err)
		return nil
	}
	c.genres = msg.Genres
	c.genresLoaded = true
	c.logger.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindGenresComplete, Comp: "coord", Count: len(msg.Genres)})
	return nil
}

// Genres returns the catalog, empty until loaded.
func (c *Coordinator) Genres() []tmdb.Genre { return c.genres }

// GenreName returns the display name of id, or "" if unknown.
func (c *Coordinator) GenreName(id int) string {
	for _, g := range c.genres {
		if g.ID == id {
			return g.Name
		}
	}
	return ""
}

// Handle dispatches coordinator messages. ok is false for anything else.
func (c *Coordinator) Handle(msg tea.Msg) (cmd tea.Cmd, ok bool) {
	switch msg := msg.(type) {
	case DebounceFired:
		return c.HandleDebounce(msg), true
	case ResultsLoaded:
		return c.HandleResults(msg), true
	case DetailsLoaded:
		return c.HandleDetails(msg), true
	case GenresLoaded:
		return c.HandleGenres(msg), true
	}
	return nil, false
}

// Title is the heading for the current section.
func (c *Coordinator) Title() string {
	switch c.state.Section {
	case SectionTrending:
		return "Trending Movies"
	case SectionPopular:
		return "Popular Movies"
	case SectionTopRated:
		return "Top Rated Movies"
	case SectionNowPlaying:
		return "Now Playing"
	case SectionSearch:
		if c.state.RawQuery != "" {
			return `Search Results for "` + c.state.RawQuery + `"`
		}
		return "Search Movies"
	case SectionFavorites:
		return "My Favorites (" + strconv.Itoa(c.favs.Len()) + ")"
	}
	return "Movies"
}
