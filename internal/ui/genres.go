package ui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/moviehub/internal/tmdb"
)

// genreItem is one row of the picker. ID 0 is the "All genres" row.
type genreItem struct {
	id     int
	name   string
	active bool
}

func (g genreItem) Title() string {
	if g.active {
		return "[✓] " + g.name
	}
	return "[ ] " + g.name
}

func (g genreItem) Description() string { return "" }
func (g genreItem) FilterValue() string { return g.name }

// genrePicker is a dropdown over the genre catalog.
type genrePicker struct {
	list     list.Model
	chosen   int  // genre picked with enter
	done     bool // closed by enter or esc
	selected bool // true when done via enter
}

func newGenrePicker(genres []tmdb.Genre, active, width, height int) genrePicker {
	items := make([]list.Item, 0, len(genres)+1)
	items = append(items, genreItem{id: 0, name: "All genres", active: active == 0})
	cursor := 0
	for i, g := range genres {
		items = append(items, genreItem{id: g.ID, name: g.Name, active: g.ID == active})
		if g.ID == active {
			cursor = i + 1
		}
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(colorHighlight).
		BorderForeground(colorHighlight)

	l := list.New(items, delegate, 0, 0)
	l.Title = "Filter by genre"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("255")).
		Background(colorPrimary).
		Padding(0, 1).
		Bold(true)
	l.Select(cursor)

	p := genrePicker{list: l}
	p.setSize(width, height)
	return p
}

func (p *genrePicker) setSize(width, height int) {
	w := 40
	if w > width-4 {
		w = width - 4
	}
	if w < 10 {
		w = 10
	}
	h := height - 6
	if h < 5 {
		h = 5
	}
	p.list.SetSize(w, h)
}

func (p genrePicker) Update(msg tea.Msg) (genrePicker, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc", "q", "t":
			p.done = true
			return p, nil
		case "enter", " ":
			if item, ok := p.list.SelectedItem().(genreItem); ok {
				p.chosen = item.id
				p.selected = true
			}
			p.done = true
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return p, cmd
}

func (p genrePicker) View() string {
	return PickerPanel.Render(p.list.View())
}
