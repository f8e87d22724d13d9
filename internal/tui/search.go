package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/harmonia-music/harmonia/internal/track"
)

// searchModel is the catalog search pane: a query input above a result
// list.
type searchModel struct {
	input     textinput.Model
	results   []track.Track
	cursor    int
	searching bool
	lastQuery string
}

func newSearchModel() searchModel {
	ti := textinput.New()
	ti.Placeholder = "Search songs…"
	ti.CharLimit = 120
	ti.Focus()
	return searchModel{input: ti}
}

func (s *searchModel) setResults(tracks []track.Track) {
	s.results = tracks
	s.cursor = 0
	s.searching = false
}

func (s *searchModel) selected() *track.Track {
	if s.cursor < 0 || s.cursor >= len(s.results) {
		return nil
	}
	return &s.results[s.cursor]
}

func (s *searchModel) moveCursor(delta int) {
	s.cursor += delta
	if s.cursor < 0 {
		s.cursor = 0
	}
	if s.cursor >= len(s.results) {
		s.cursor = len(s.results) - 1
	}
}

func (s *searchModel) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s *searchModel) view(width, height int, focused bool) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Search"))
	b.WriteString("\n")
	b.WriteString(s.input.View())
	b.WriteString("\n\n")

	listHeight := max(height-4, 0)
	switch {
	case s.searching:
		b.WriteString(dimStyle.Render("Searching…"))
	case len(s.results) == 0 && s.lastQuery != "":
		b.WriteString(dimStyle.Render("No results for " + s.lastQuery))
	default:
		for i, t := range s.results {
			if i >= listHeight {
				break
			}
			line := fmt.Sprintf("%s · %s", t.Title, t.ArtistLine())
			line = runewidth.Truncate(line, max(width-12, 0), "…")
			dur := formatDuration(t.DurationHint)
			if focused && i == s.cursor {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString(dimStyle.Render("  " + dur))
			b.WriteString("\n")
		}
	}

	style := paneStyle
	if focused {
		style = focusedPaneStyle
	}
	return style.Width(width).Height(height).Render(b.String())
}
