package tui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/harmonia-music/harmonia/internal/track"
)

// queueModel is the queue pane.
type queueModel struct {
	tracks  []track.Track
	current int
	cursor  int
}

func newQueueModel() queueModel {
	return queueModel{current: -1}
}

func (q *queueModel) setQueue(tracks []track.Track, current int) {
	q.tracks = tracks
	q.current = current
	if q.cursor >= len(tracks) {
		q.cursor = len(tracks) - 1
	}
	if q.cursor < 0 {
		q.cursor = 0
	}
}

func (q *queueModel) selectedIndex() int {
	if q.cursor < 0 || q.cursor >= len(q.tracks) {
		return -1
	}
	return q.cursor
}

func (q *queueModel) selected() *track.Track {
	idx := q.selectedIndex()
	if idx < 0 {
		return nil
	}
	return &q.tracks[idx]
}

func (q *queueModel) moveCursor(delta int) {
	q.cursor += delta
	if q.cursor < 0 {
		q.cursor = 0
	}
	if q.cursor >= len(q.tracks) {
		q.cursor = len(q.tracks) - 1
	}
}

func (q *queueModel) view(width, height int, focused bool) string {
	var b strings.Builder

	header := "Queue"
	if len(q.tracks) > 0 {
		header = fmt.Sprintf("Queue · %d tracks", len(q.tracks))
	}
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	listHeight := max(height-3, 0)
	if len(q.tracks) == 0 {
		b.WriteString(dimStyle.Render("Nothing queued. Search and press 'a'."))
	}

	// Keep the cursor visible when the queue outgrows the pane.
	start := 0
	if q.cursor >= listHeight {
		start = q.cursor - listHeight + 1
	}
	for i := start; i < len(q.tracks) && i-start < listHeight; i++ {
		t := q.tracks[i]
		line := fmt.Sprintf("%2d. %s", i+1, t.Title)
		line = runewidth.Truncate(line, max(width-6, 0), "…")

		switch {
		case focused && i == q.cursor:
			b.WriteString(selectedStyle.Render("> " + line))
		case i == q.current:
			b.WriteString(currentTrackStyle.Render("♪ " + line))
		default:
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	style := paneStyle
	if focused {
		style = focusedPaneStyle
	}
	return style.Width(width).Height(height).Render(b.String())
}
