package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harmonia-music/harmonia/internal/catalog"
	"github.com/harmonia-music/harmonia/internal/playback"
	"github.com/harmonia-music/harmonia/internal/track"
)

// Messages translated from controller subscription events.
type (
	statusChangedMsg   playback.StatusChange
	trackChangedMsg    playback.TrackChange
	positionChangedMsg playback.PositionChange
	queueChangedMsg    playback.QueueChange
	modeChangedMsg     playback.ModeChange
	volumeChangedMsg   playback.VolumeChange
	noticeMsg          playback.Notice
	playbackClosedMsg  struct{}
)

type searchResultsMsg struct {
	query  string
	tracks []track.Track
	err    error
}

type clearStatusMsg struct{}

// listenPlayback waits for the next controller event. The command is
// re-issued after every received message.
func listenPlayback(sub *playback.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-sub.StatusChanged:
			return statusChangedMsg(e)
		case e := <-sub.TrackChanged:
			return trackChangedMsg(e)
		case e := <-sub.PositionChanged:
			return positionChangedMsg(e)
		case e := <-sub.QueueChanged:
			return queueChangedMsg(e)
		case e := <-sub.ModeChanged:
			return modeChangedMsg(e)
		case e := <-sub.VolumeChanged:
			return volumeChangedMsg(e)
		case e := <-sub.Notices:
			return noticeMsg(e)
		case <-sub.Done:
			return playbackClosedMsg{}
		}
	}
}

func searchCmd(c *catalog.Client, query string, limit int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		tracks, err := c.SearchSongs(ctx, query, limit)
		return searchResultsMsg{query: query, tracks: tracks, err: err}
	}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
