package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/harmonia-music/harmonia/internal/playback"
)

const (
	playSymbol  = "▶"
	pauseSymbol = "⏸"
	filledBlock = "▓"
	emptyBlock  = "░"
)

// renderPlayerBar renders the bottom player bar for the given width.
// Returns an empty string when nothing is selected.
func renderPlayerBar(st playback.State, width int) string {
	if st.Track == nil {
		return ""
	}

	innerWidth := max(width-2, 0)

	line1 := renderNowPlaying(st, innerWidth)
	line2 := renderProgress(st, innerWidth)

	return playerBarStyle.Width(innerWidth).Render(line1 + "\n" + line2)
}

func renderNowPlaying(st playback.State, width int) string {
	status := playSymbol
	switch st.Status {
	case playback.StatusPaused:
		status = pauseSymbol
	case playback.StatusLoading:
		status = "…"
	case playback.StatusErrored:
		status = "!"
	}

	title := st.Track.Title
	if title == "" {
		title = "Unknown Track"
	}
	left := fmt.Sprintf(" %s  %s", status, title)
	if artists := st.Track.ArtistLine(); artists != "" {
		left += dimStyle.Render("  " + artists)
	}

	right := renderModes(st) + " " + renderVolume(st.Volume, st.Muted) + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		left = runewidth.Truncate(left, max(width-lipgloss.Width(right)-1, 0), "…")
		gap = max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderProgress renders "▶  1:23  ▓▓▓░░░  4:56".
func renderProgress(st playback.State, width int) string {
	posStr := formatDuration(st.Position)
	durStr := formatDuration(st.Duration)

	fixedWidth := 2 + lipgloss.Width(posStr) + 2 + 2 + lipgloss.Width(durStr) + 2
	barWidth := width - fixedWidth
	if barWidth < 3 {
		return " " + posStr + " / " + durStr
	}

	var ratio float64
	if st.Duration > 0 {
		ratio = float64(st.Position) / float64(st.Duration)
	}
	filled := min(int(float64(barWidth)*ratio), barWidth)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, barWidth-filled)

	return "  " + posStr + "  " + bar + "  " + durStr
}

func renderModes(st playback.State) string {
	var parts []string
	switch st.Repeat {
	case playback.RepeatAll:
		parts = append(parts, "⟳")
	case playback.RepeatOne:
		parts = append(parts, "⟳1")
	}
	if st.Shuffle {
		parts = append(parts, "⤮")
	}
	if len(parts) == 0 {
		return ""
	}
	return dimStyle.Render(strings.Join(parts, " "))
}

func renderVolume(volume float64, muted bool) string {
	icon := "♪"
	if muted {
		icon = "✕"
	}
	return dimStyle.Render(fmt.Sprintf("%s %3d%%", icon, int(volume*100)))
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	m := total / 60
	s := total % 60
	if m >= 60 {
		return fmt.Sprintf("%d:%02d:%02d", m/60, m%60, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
