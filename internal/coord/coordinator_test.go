package coord

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/moviehub/internal/favorites"
	"github.com/abelbrown/moviehub/internal/tmdb"
)

// mockSource implements Source, recording every call.
type mockSource struct {
	mu      sync.Mutex
	calls   []string
	pages   map[string][]tmdb.Movie // keyed by call name
	errs    map[string]error
	details map[int]*tmdb.MovieDetails
	genres  []tmdb.Genre
}

func newMockSource() *mockSource {
	return &mockSource{
		pages:   make(map[string][]tmdb.Movie),
		errs:    make(map[string]error),
		details: make(map[int]*tmdb.MovieDetails),
	}
}

func (m *mockSource) record(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
	return m.errs[name]
}

func (m *mockSource) page(name string) (*tmdb.MoviePage, error) {
	if err := m.record(name); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return &tmdb.MoviePage{Page: 1, Results: m.pages[name]}, nil
}

func (m *mockSource) Trending(ctx context.Context, w tmdb.TimeWindow) (*tmdb.MoviePage, error) {
	return m.page("trending")
}
func (m *mockSource) Popular(ctx context.Context, page int) (*tmdb.MoviePage, error) {
	return m.page("popular")
}
func (m *mockSource) TopRated(ctx context.Context, page int) (*tmdb.MoviePage, error) {
	return m.page("top_rated")
}
func (m *mockSource) NowPlaying(ctx context.Context, page int) (*tmdb.MoviePage, error) {
	return m.page("now_playing")
}
func (m *mockSource) Search(ctx context.Context, q string, page int) (*tmdb.MoviePage, error) {
	return m.page("search:" + q)
}

func (m *mockSource) Details(ctx context.Context, id int) (*tmdb.MovieDetails, error) {
	if err := m.record("details"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.details[id], nil
}

func (m *mockSource) Genres(ctx context.Context) ([]tmdb.Genre, error) {
	if err := m.record("genres"); err != nil {
		return nil, err
	}
	return m.genres, nil
}

func (m *mockSource) callsTo(prefix string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, c := range m.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			out = append(out, c)
		}
	}
	return out
}

func (m *mockSource) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// virtualClock replaces tea.Tick so debounce timing is deterministic.
type virtualClock struct {
	now    time.Duration
	timers []timer
}

type timer struct {
	at time.Duration
	fn func(time.Time) tea.Msg
}

func (v *virtualClock) tick(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	v.timers = append(v.timers, timer{at: v.now + d, fn: fn})
	return func() tea.Msg { return nil }
}

// advanceTo fires every timer due by t, in order, feeding the messages to c.
func (v *virtualClock) advanceTo(t time.Duration, c *Coordinator) {
	sort.SliceStable(v.timers, func(i, j int) bool { return v.timers[i].at < v.timers[j].at })
	for len(v.timers) > 0 && v.timers[0].at <= t {
		next := v.timers[0]
		v.timers = v.timers[1:]
		v.now = next.at
		drive(c, func() tea.Msg { return next.fn(time.Time{}) })
	}
	v.now = t
}

// drive runs cmd synchronously and feeds every resulting message back into
// the coordinator until no commands remain.
func drive(c *Coordinator, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, sub := range msg {
			drive(c, sub)
		}
	default:
		next, _ := c.Handle(msg)
		drive(c, next)
	}
}

func movies(ids ...int) []tmdb.Movie {
	out := make([]tmdb.Movie, len(ids))
	for i, id := range ids {
		out[i] = tmdb.Movie{ID: id, Title: "m", GenreIDs: []int{id % 10}}
	}
	return out
}

func resultIDs(c *Coordinator) []int {
	var out []int
	for _, m := range c.Results() {
		out = append(out, m.ID)
	}
	return out
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func newTestCoordinator(t *testing.T, src *mockSource) (*Coordinator, *favorites.Store, *virtualClock) {
	t.Helper()
	favs := favorites.New(nil, nil)
	c := New(context.Background(), src, favs, Options{})
	clock := &virtualClock{}
	c.tick = clock.tick
	t.Cleanup(c.Close)
	return c, favs, clock
}

func TestNewDefaults(t *testing.T) {
	c, _, _ := newTestCoordinator(t, newMockSource())
	if c.Section() != SectionTrending {
		t.Errorf("expected trending, got %s", c.Section())
	}
	if c.debounce != 500*time.Millisecond {
		t.Errorf("expected 500ms debounce, got %v", c.debounce)
	}
	if c.window != tmdb.WindowWeek {
		t.Errorf("expected week window, got %s", c.window)
	}
	if c.Results() == nil || len(c.Results()) != 0 {
		t.Errorf("expected empty results, got %v", c.Results())
	}
}

func TestResultsAreCopies(t *testing.T) {
	src := newMockSource()
	src.pages["trending"] = movies(1, 2)
	c, _, _ := newTestCoordinator(t, src)
	drive(c, c.Init())

	got := c.Results()
	got[0].ID = 99
	st := c.State()
	st.Results[1].ID = 98

	if !equalIDs(resultIDs(c), []int{1, 2}) {
		t.Errorf("callers mutated coordinator results: %v", resultIDs(c))
	}
}

func TestInitLoadsTrendingAndGenres(t *testing.T) {
	src := newMockSource()
	src.pages["trending"] = movies(1, 2, 3)
	src.genres = []tmdb.Genre{{ID: 28, Name: "Action"}}
	c, _, _ := newTestCoordinator(t, src)

	cmd := c.Init()
	if !c.Loading() {
		t.Error("expected loading while the first fetch is in flight")
	}
	drive(c, cmd)

	if c.Loading() {
		t.Error("expected loading=false after results")
	}
	if !equalIDs(resultIDs(c), []int{1, 2, 3}) {
		t.Errorf("expected [1 2 3], got %v", resultIDs(c))
	}
	if c.GenreName(28) != "Action" {
		t.Errorf("expected genre catalog loaded, got %v", c.Genres())
	}
}

func TestDebounceActsOnLastKeystrokeOnly(t *testing.T) {
	src := newMockSource()
	c, _, clock := newTestCoordinator(t, src)

	var resolved []string
	keystrokes := []struct {
		at    time.Duration
		value string
	}{
		{0, "m"},
		{100 * time.Millisecond, "ma"},
		{200 * time.Millisecond, "mat"},
		{600 * time.Millisecond, "matr"},
	}
	for _, k := range keystrokes {
		clock.advanceTo(k.at, c)
		if c.state.DebouncedQuery != "" {
			resolved = append(resolved, c.state.DebouncedQuery)
			c.state.DebouncedQuery = ""
		}
		c.SetQuery(k.value)
		if c.RawQuery() != k.value {
			t.Errorf("raw query should update immediately, got %q", c.RawQuery())
		}
	}
	clock.advanceTo(2*time.Second, c)
	if c.state.DebouncedQuery != "" {
		resolved = append(resolved, c.state.DebouncedQuery)
	}

	if len(resolved) != 1 || resolved[0] != "matr" {
		t.Errorf("expected exactly one resolved value \"matr\", got %v", resolved)
	}
	if got := src.callsTo("search:"); len(got) != 1 || got[0] != "search:matr" {
		t.Errorf("expected one search for matr, got %v", got)
	}
}

func TestTypingMatrixIssuesOneSearch(t *testing.T) {
	src := newMockSource()
	src.pages["search:matrix"] = movies(603, 604)
	c, _, clock := newTestCoordinator(t, src)

	const query = "matrix"
	for i := 1; i <= len(query); i++ {
		clock.advanceTo(time.Duration(i)*50*time.Millisecond, c)
		c.SetQuery(query[:i])
	}
	clock.advanceTo(5*time.Second, c)

	if got := src.callsTo("search:"); len(got) != 1 || got[0] != "search:matrix" {
		t.Errorf("expected exactly one search call for matrix, got %v", got)
	}
	if c.Section() != SectionSearch {
		t.Errorf("expected section search, got %s", c.Section())
	}
	if !equalIDs(resultIDs(c), []int{603, 604}) {
		t.Errorf("expected [603 604], got %v", resultIDs(c))
	}
	if c.Title() != `Search Results for "matrix"` {
		t.Errorf("unexpected title %q", c.Title())
	}
}

func TestClearingSearchReturnsToTrendingWithoutFetch(t *testing.T) {
	src := newMockSource()
	src.pages["search:alien"] = movies(348)
	c, _, clock := newTestCoordinator(t, src)

	c.SetQuery("alien")
	clock.advanceTo(time.Second, c)
	if c.Section() != SectionSearch || len(c.Results()) != 1 {
		t.Fatalf("expected search with 1 result, got %s %v", c.Section(), resultIDs(c))
	}
	before := src.callCount()

	c.SetQuery("")
	clock.advanceTo(2*time.Second, c)

	if c.Section() != SectionTrending {
		t.Errorf("expected trending, got %s", c.Section())
	}
	if len(c.Results()) != 0 || c.Loading() {
		t.Errorf("expected empty results and loading=false, got %v loading=%v", resultIDs(c), c.Loading())
	}
	if src.callCount() != before {
		t.Errorf("expected no fetch, got calls %v", src.calls[before:])
	}
}

func TestWhitespaceQueryCountsAsEmpty(t *testing.T) {
	src := newMockSource()
	c, _, clock := newTestCoordinator(t, src)

	drive(c, c.SelectSection(SectionPopular))
	before := src.callCount()

	c.SetQuery("   ")
	clock.advanceTo(time.Second, c)

	if c.Section() != SectionPopular {
		t.Errorf("blank query outside search should not change section, got %s", c.Section())
	}
	if src.callCount() != before {
		t.Error("blank query should not fetch")
	}
}

func TestEmptySearchMakesNoCalls(t *testing.T) {
	src := newMockSource()
	c, _, _ := newTestCoordinator(t, src)

	cmd := c.SelectSection(SectionSearch)
	if cmd != nil {
		t.Error("empty search should not return a fetch command")
	}
	drive(c, cmd)
	if src.callCount() != 0 {
		t.Errorf("expected zero calls, got %v", src.calls)
	}
	if len(c.Results()) != 0 || c.Loading() {
		t.Errorf("expected empty results, loading=false")
	}
	if c.Title() != "Search Movies" {
		t.Errorf("unexpected title %q", c.Title())
	}
}

func TestFailedFetchYieldsEmptyResults(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"network", &tmdb.NetworkError{Op: "popular", StatusCode: 503, Err: errors.New("unavailable")}},
		{"format", &tmdb.ResponseFormatError{Op: "popular", Err: errors.New(`missing "results"`)}},
		{"other", errors.New("boom")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newMockSource()
			src.pages["trending"] = movies(1, 2)
			src.errs["popular"] = tt.err
			c, _, _ := newTestCoordinator(t, src)
			drive(c, c.Init())

			drive(c, c.SelectSection(SectionPopular))

			if len(c.Results()) != 0 {
				t.Errorf("expected empty results, got %v", resultIDs(c))
			}
			if c.Loading() {
				t.Error("expected loading=false")
			}
			if c.Details() != nil {
				t.Error("failure must not open the overlay")
			}
		})
	}
}

func TestFavoriteThenSwitchToFavorites(t *testing.T) {
	src := newMockSource()
	src.pages["trending"] = movies(41, 42, 43)
	c, favs, _ := newTestCoordinator(t, src)
	drive(c, c.Init())

	favs.Toggle(c.Results()[1])
	before := src.callCount()
	drive(c, c.SelectSection(SectionFavorites))

	if !equalIDs(resultIDs(c), []int{42}) {
		t.Errorf("expected exactly [42], got %v", resultIDs(c))
	}
	if src.callCount() != before {
		t.Error("favorites section must not call the network")
	}
	if c.Title() != "My Favorites (1)" {
		t.Errorf("unexpected title %q", c.Title())
	}
}

func TestFavoritesIgnoreGenreFilter(t *testing.T) {
	src := newMockSource()
	c, favs, _ := newTestCoordinator(t, src)
	favs.Toggle(tmdb.Movie{ID: 1, GenreIDs: []int{28}})
	favs.Toggle(tmdb.Movie{ID: 2, GenreIDs: []int{35}})

	drive(c, c.SelectSection(SectionFavorites))
	for _, g := range []int{0, 28, 35, 99} {
		drive(c, c.SetGenre(g))
		if !equalIDs(resultIDs(c), []int{1, 2}) {
			t.Errorf("genre %d: expected [1 2], got %v", g, resultIDs(c))
		}
	}
	if src.callCount() != 0 {
		t.Errorf("expected no calls, got %v", src.calls)
	}
}

func TestFavoritesChangesAreLive(t *testing.T) {
	src := newMockSource()
	src.pages["popular"] = movies(7)
	c, favs, _ := newTestCoordinator(t, src)

	drive(c, c.SelectSection(SectionFavorites))
	favs.Toggle(tmdb.Movie{ID: 5})
	favs.Toggle(tmdb.Movie{ID: 6})
	if !equalIDs(resultIDs(c), []int{5, 6}) {
		t.Errorf("expected [5 6], got %v", resultIDs(c))
	}
	favs.Toggle(tmdb.Movie{ID: 5})
	if !equalIDs(resultIDs(c), []int{6}) {
		t.Errorf("expected [6], got %v", resultIDs(c))
	}

	// Outside favorites a toggle neither refetches nor changes results.
	drive(c, c.SelectSection(SectionPopular))
	before := src.callCount()
	favs.Toggle(tmdb.Movie{ID: 7})
	if src.callCount() != before || !equalIDs(resultIDs(c), []int{7}) {
		t.Errorf("unexpected effect outside favorites: calls=%v results=%v", src.calls, resultIDs(c))
	}
}

func TestCloseUnsubscribes(t *testing.T) {
	c, favs, _ := newTestCoordinator(t, newMockSource())
	drive(c, c.SelectSection(SectionFavorites))
	c.Close()
	favs.Toggle(tmdb.Movie{ID: 9})
	if len(c.Results()) != 0 {
		t.Errorf("closed coordinator should not observe favorites, got %v", resultIDs(c))
	}
}

func TestStaleResultsDiscarded(t *testing.T) {
	src := newMockSource()
	src.pages["popular"] = movies(1, 2)
	src.pages["top_rated"] = movies(3, 4)
	c, _, _ := newTestCoordinator(t, src)

	slow := c.SelectSection(SectionPopular)
	fast := c.SelectSection(SectionTopRated)

	drive(c, fast)
	drive(c, slow) // completes last but was issued first

	if c.Section() != SectionTopRated {
		t.Errorf("expected top-rated, got %s", c.Section())
	}
	if !equalIDs(resultIDs(c), []int{3, 4}) {
		t.Errorf("stale popular results leaked: got %v", resultIDs(c))
	}
}

func TestInFlightFetchCannotOverwriteFavorites(t *testing.T) {
	src := newMockSource()
	src.pages["trending"] = movies(1, 2, 3)
	c, favs, _ := newTestCoordinator(t, src)
	favs.Toggle(tmdb.Movie{ID: 42})

	inFlight := c.Init()
	drive(c, c.SelectSection(SectionFavorites))
	drive(c, inFlight)

	if !equalIDs(resultIDs(c), []int{42}) {
		t.Errorf("expected favorites [42], got %v", resultIDs(c))
	}
}

func TestInFlightSearchDroppedWhenQueryCleared(t *testing.T) {
	src := newMockSource()
	src.pages["search:dune"] = movies(438631)
	c, _, _ := newTestCoordinator(t, src)

	c.SetQuery("dune")
	search := c.HandleDebounce(DebounceFired{Tag: c.debounceTag, Query: "dune"})
	c.SetQuery("")
	c.HandleDebounce(DebounceFired{Tag: c.debounceTag, Query: ""})
	drive(c, search)

	if c.Section() != SectionTrending || len(c.Results()) != 0 {
		t.Errorf("expected empty trending, got %s %v", c.Section(), resultIDs(c))
	}
}

func TestGenreFilter(t *testing.T) {
	src := newMockSource()
	src.pages["popular"] = []tmdb.Movie{
		{ID: 1, GenreIDs: []int{28, 12}},
		{ID: 2, GenreIDs: []int{35}},
		{ID: 3, GenreIDs: []int{28}},
	}
	c, _, _ := newTestCoordinator(t, src)
	drive(c, c.SelectSection(SectionPopular))

	drive(c, c.SetGenre(28))
	if !equalIDs(resultIDs(c), []int{1, 3}) {
		t.Errorf("expected [1 3], got %v", resultIDs(c))
	}
	if got := len(src.callsTo("popular")); got != 2 {
		t.Errorf("genre change should refetch, got %d popular calls", got)
	}

	if cmd := c.SetGenre(28); cmd != nil {
		t.Error("setting the same genre should be a no-op")
	}

	drive(c, c.ToggleGenre(28))
	if c.GenreID() != 0 || !equalIDs(resultIDs(c), []int{1, 2, 3}) {
		t.Errorf("toggling the active genre should clear it, got genre=%d results=%v", c.GenreID(), resultIDs(c))
	}
}

func TestGenreFilterAppliesToSearch(t *testing.T) {
	src := newMockSource()
	src.pages["search:star"] = []tmdb.Movie{{ID: 11, GenreIDs: []int{878}}, {ID: 12, GenreIDs: []int{18}}}
	c, _, clock := newTestCoordinator(t, src)
	drive(c, c.SetGenre(878))

	c.SetQuery("star")
	clock.advanceTo(time.Second, c)

	if !equalIDs(resultIDs(c), []int{11}) {
		t.Errorf("expected [11], got %v", resultIDs(c))
	}
}

func TestFilterByGenreProperties(t *testing.T) {
	all := []tmdb.Movie{
		{ID: 1, GenreIDs: []int{28, 12}},
		{ID: 2, GenreIDs: nil},
		{ID: 3, GenreIDs: []int{12}},
		{ID: 4, GenreIDs: []int{28}},
	}
	for _, g := range []int{0, 12, 28, 99} {
		once := FilterByGenre(all, g)
		twice := FilterByGenre(once, g)
		if len(once) != len(twice) {
			t.Errorf("genre %d: filter not idempotent", g)
		}
		for _, m := range once {
			if g != 0 && !m.HasGenre(g) {
				t.Errorf("genre %d: movie %d lacks the genre", g, m.ID)
			}
		}
		if len(once) > len(all) {
			t.Errorf("genre %d: filtered is larger than input", g)
		}
	}
	if got := FilterByGenre(all, 28); len(got) != 2 || got[0].ID != 1 || got[1].ID != 4 {
		t.Errorf("expected [1 4] in order, got %+v", got)
	}
	if len(all) != 4 || all[1].ID != 2 {
		t.Error("input was modified")
	}
}

func TestDetails(t *testing.T) {
	src := newMockSource()
	src.details[603] = &tmdb.MovieDetails{Movie: tmdb.Movie{ID: 603, Title: "The Matrix"}}
	c, _, _ := newTestCoordinator(t, src)

	cmd := c.OpenDetails(603)
	if c.DetailsPending() != 603 {
		t.Errorf("expected pending 603, got %d", c.DetailsPending())
	}
	if c.Details() != nil {
		t.Error("overlay should stay closed until the fetch succeeds")
	}
	drive(c, cmd)
	if c.Details() == nil || c.Details().Title != "The Matrix" {
		t.Fatalf("expected overlay with The Matrix, got %+v", c.Details())
	}

	c.CloseDetails()
	if c.Details() != nil {
		t.Error("expected overlay closed")
	}
}

func TestDetailsFailureLeavesStateUntouched(t *testing.T) {
	src := newMockSource()
	src.pages["trending"] = movies(1, 2)
	src.errs["details"] = &tmdb.NetworkError{Op: "details", StatusCode: 404, Err: errors.New("not found")}
	c, _, _ := newTestCoordinator(t, src)
	drive(c, c.Init())
	before := c.State()

	drive(c, c.OpenDetails(1))

	if c.Details() != nil || c.DetailsPending() != 0 {
		t.Error("failed details must leave the overlay closed")
	}
	after := c.State()
	if after.Section != before.Section || !equalIDs(resultIDs(c), []int{1, 2}) || after.Loading != before.Loading {
		t.Errorf("state changed after details failure: %+v", after)
	}
}

func TestClosingDiscardsPendingDetails(t *testing.T) {
	src := newMockSource()
	src.details[5] = &tmdb.MovieDetails{Movie: tmdb.Movie{ID: 5, Title: "x"}}
	c, _, _ := newTestCoordinator(t, src)

	cmd := c.OpenDetails(5)
	c.CloseDetails()
	drive(c, cmd)

	if c.Details() != nil {
		t.Error("details arriving after close must not open the overlay")
	}
}

func TestGenresLoadOnceAndRetryAfterFailure(t *testing.T) {
	src := newMockSource()
	src.errs["genres"] = errors.New("offline")
	c, _, _ := newTestCoordinator(t, src)

	drive(c, c.LoadGenres())
	if len(c.Genres()) != 0 {
		t.Fatal("expected empty catalog after failure")
	}

	src.mu.Lock()
	delete(src.errs, "genres")
	src.mu.Unlock()
	src.genres = []tmdb.Genre{{ID: 35, Name: "Comedy"}}

	drive(c, c.LoadGenres())
	if c.GenreName(35) != "Comedy" {
		t.Errorf("expected retry to load catalog, got %v", c.Genres())
	}
	if cmd := c.LoadGenres(); cmd != nil {
		t.Error("catalog should load only once per session")
	}
	if got := len(src.callsTo("genres")); got != 2 {
		t.Errorf("expected 2 genre calls, got %d", got)
	}
}

func TestTitles(t *testing.T) {
	c, _, _ := newTestCoordinator(t, newMockSource())
	tests := []struct {
		section Section
		want    string
	}{
		{SectionTrending, "Trending Movies"},
		{SectionPopular, "Popular Movies"},
		{SectionTopRated, "Top Rated Movies"},
		{SectionNowPlaying, "Now Playing"},
		{SectionFavorites, "My Favorites (0)"},
	}
	for _, tt := range tests {
		c.state.Section = tt.section
		if got := c.Title(); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.section, got, tt.want)
		}
	}
}

func TestSelectInvalidSection(t *testing.T) {
	c, _, _ := newTestCoordinator(t, newMockSource())
	if cmd := c.SelectSection("upcoming"); cmd != nil {
		t.Error("unknown section should be ignored")
	}
	if c.Section() != SectionTrending {
		t.Errorf("section changed to %s", c.Section())
	}
}

func TestHandleIgnoresForeignMessages(t *testing.T) {
	c, _, _ := newTestCoordinator(t, newMockSource())
	if _, ok := c.Handle(tea.KeyMsg{}); ok {
		t.Error("key messages are not coordinator messages")
	}
}

func TestErrorClass(t *testing.T) {
	tests := map[string]error{
		"network": &tmdb.NetworkError{Op: "x", Err: errors.New("e")},
		"format":  &tmdb.ResponseFormatError{Op: "x", Err: errors.New("e")},
		"other":   errors.New("e"),
	}
	for want, err := range tests {
		if got := errorClass(err); got != want {
			t.Errorf("errorClass(%v) = %q, want %q", err, got, want)
		}
	}
}
