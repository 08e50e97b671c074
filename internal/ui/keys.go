package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Top        key.Binding
	Bottom     key.Binding
	Open       key.Binding
	Favorite   key.Binding
	Search     key.Binding
	Genre      key.Binding
	ClearGenre key.Binding
	Refresh    key.Binding
	Trending   key.Binding
	Popular    key.Binding
	TopRated   key.Binding
	NowPlaying key.Binding
	Favorites  key.Binding
	Debug      key.Binding
	Back       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		Top:        key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:     key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Favorite:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Genre:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "genre")),
		ClearGenre: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear genre")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Trending:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "trending")),
		Popular:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "popular")),
		TopRated:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "top rated")),
		NowPlaying: key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "now playing")),
		Favorites:  key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "favorites")),
		Debug:      key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "debug")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp is shown in the status bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Open, k.Favorite, k.Search, k.Genre, k.Refresh, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Open, k.Favorite, k.Search, k.Refresh},
		{k.Trending, k.Popular, k.TopRated, k.NowPlaying, k.Favorites},
		{k.Genre, k.ClearGenre, k.Debug, k.Quit},
	}
}
