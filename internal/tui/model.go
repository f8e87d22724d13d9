// Package tui implements the terminal interface.
package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/harmonia-music/harmonia/internal/catalog"
	"github.com/harmonia-music/harmonia/internal/errmsg"
	"github.com/harmonia-music/harmonia/internal/playback"
	"github.com/harmonia-music/harmonia/internal/store"
)

const (
	seekStep   = 5 * time.Second
	volumeStep = 0.05

	statusDuration = 4 * time.Second
)

type pane int

const (
	paneSearch pane = iota
	paneQueue
)

// Options configures the TUI.
type Options struct {
	Controller  *playback.Controller
	Catalog     *catalog.Client
	Store       *store.Manager
	SearchLimit int
	SaveSession bool
	Logger      zerolog.Logger
}

// Model is the root bubbletea model.
type Model struct {
	ctrl        *playback.Controller
	catalog     *catalog.Client
	store       *store.Manager
	sub         *playback.Subscription
	keys        KeyMap
	log         zerolog.Logger
	searchLimit int
	saveSession bool

	state playback.State

	search searchModel
	queue  queueModel
	focus  pane

	status      string
	statusIsErr bool

	width  int
	height int
}

// New creates the root model.
func New(opts Options) Model {
	m := Model{
		ctrl:        opts.Controller,
		catalog:     opts.Catalog,
		store:       opts.Store,
		sub:         opts.Controller.Subscribe(),
		keys:        defaultKeyMap(),
		log:         opts.Logger.With().Str("component", "tui").Logger(),
		searchLimit: opts.SearchLimit,
		saveSession: opts.SaveSession,
		state:       opts.Controller.State(),
		search:      newSearchModel(),
		queue:       newQueueModel(),
	}
	m.queue.setQueue(opts.Controller.QueueTracks(), opts.Controller.QueueIndex())
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, listenPlayback(m.sub))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case statusChangedMsg, trackChangedMsg, positionChangedMsg,
		modeChangedMsg:
		m.state = m.ctrl.State()
		return m, listenPlayback(m.sub)

	case volumeChangedMsg:
		m.state = m.ctrl.State()
		// Volume outlives the session snapshot; write it right away.
		if m.store != nil {
			if err := m.store.SaveVolume(msg.Volume, msg.Muted); err != nil {
				m.log.Warn().Err(err).Msg(string(errmsg.OpSessionSave))
			}
		}
		return m, listenPlayback(m.sub)

	case queueChangedMsg:
		m.state = m.ctrl.State()
		m.queue.setQueue(msg.Tracks, msg.Index)
		return m, listenPlayback(m.sub)

	case noticeMsg:
		m.status = msg.Text
		m.statusIsErr = msg.IsErr
		return m, tea.Batch(listenPlayback(m.sub), clearStatusAfter(statusDuration))

	case playbackClosedMsg:
		return m, tea.Quit

	case searchResultsMsg:
		m.search.lastQuery = msg.query
		if msg.err != nil {
			m.search.setResults(nil)
			m.status = errmsg.Format(errmsg.OpCatalogSearch, msg.err)
			m.statusIsErr = true
			return m, clearStatusAfter(statusDuration)
		}
		m.search.setResults(msg.tracks)
		return m, nil

	case clearStatusMsg:
		m.status = ""
		m.statusIsErr = false
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the query input has focus, printable keys belong to it.
	if m.focus == paneSearch && m.search.input.Focused() {
		switch msg.String() {
		case "enter":
			query := strings.TrimSpace(m.search.input.Value())
			if query == "" {
				return m, nil
			}
			m.search.searching = true
			m.search.input.Blur()
			return m, searchCmd(m.catalog, query, m.searchLimit)
		case "esc":
			m.search.input.Blur()
			return m, nil
		case "ctrl+c":
			return m.quit()
		default:
			return m, m.search.updateInput(msg)
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.SwitchPane):
		if m.focus == paneSearch {
			m.focus = paneQueue
		} else {
			m.focus = paneSearch
		}
		return m, nil

	case key.Matches(msg, m.keys.FocusSearch):
		m.focus = paneSearch
		return m, m.search.input.Focus()

	case key.Matches(msg, m.keys.Up):
		if m.focus == paneSearch {
			m.search.moveCursor(-1)
		} else {
			m.queue.moveCursor(-1)
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.focus == paneSearch {
			m.search.moveCursor(1)
		} else {
			m.queue.moveCursor(1)
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if m.focus == paneSearch {
			if t := m.search.selected(); t != nil {
				if err := m.ctrl.PlayTrack(*t); err != nil {
					m.log.Warn().Err(err).Msg("play track")
				}
			}
		} else if t := m.queue.selected(); t != nil {
			_ = m.ctrl.PlayTrack(*t)
		}
		return m, nil

	case key.Matches(msg, m.keys.AddToQueue):
		if m.focus == paneSearch {
			if t := m.search.selected(); t != nil {
				if err := m.ctrl.Append(*t); err != nil {
					m.status = errmsg.Format(errmsg.OpQueueAdd, err)
					m.statusIsErr = true
					return m, clearStatusAfter(statusDuration)
				}
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.PlayNext):
		if m.focus == paneSearch {
			if t := m.search.selected(); t != nil {
				_ = m.ctrl.InsertNext(*t)
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Remove):
		if m.focus == paneQueue {
			if idx := m.queue.selectedIndex(); idx >= 0 {
				if err := m.ctrl.RemoveAt(idx); err != nil {
					m.status = errmsg.Format(errmsg.OpQueueRemove, err)
					m.statusIsErr = true
					return m, clearStatusAfter(statusDuration)
				}
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.ClearQueue):
		if m.focus == paneQueue {
			m.ctrl.Clear()
		}
		return m, nil

	case key.Matches(msg, m.keys.UndoQueue):
		if err := m.ctrl.RestorePrevious(); err != nil {
			m.status = errmsg.Format(errmsg.OpQueueRestore, err)
			m.statusIsErr = true
			return m, clearStatusAfter(statusDuration)
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		m.ctrl.TogglePlayPause()
		return m, nil

	case key.Matches(msg, m.keys.NextTrack):
		m.ctrl.Next()
		return m, nil

	case key.Matches(msg, m.keys.PrevTrack):
		m.ctrl.Previous()
		return m, nil

	case key.Matches(msg, m.keys.SeekForward):
		_ = m.ctrl.SeekTo(m.state.Position + seekStep)
		return m, nil

	case key.Matches(msg, m.keys.SeekBackward):
		_ = m.ctrl.SeekTo(m.state.Position - seekStep)
		return m, nil

	case key.Matches(msg, m.keys.VolumeUp):
		m.ctrl.SetVolume(m.state.Volume + volumeStep)
		return m, nil

	case key.Matches(msg, m.keys.VolumeDown):
		m.ctrl.SetVolume(m.state.Volume - volumeStep)
		return m, nil

	case key.Matches(msg, m.keys.Mute):
		m.ctrl.ToggleMute()
		return m, nil

	case key.Matches(msg, m.keys.Repeat):
		m.ctrl.CycleRepeat()
		return m, nil

	case key.Matches(msg, m.keys.Shuffle):
		m.ctrl.ToggleShuffle()
		return m, nil
	}

	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.store != nil && m.saveSession {
		st := m.ctrl.State()
		err := m.store.SaveSession(store.Session{
			Tracks:       m.ctrl.QueueTracks(),
			CurrentIndex: st.Index,
			RepeatMode:   int(st.Repeat),
			Shuffle:      st.Shuffle,
			Volume:       st.Volume,
			Muted:        st.Muted,
		})
		if err != nil {
			m.log.Error().Err(err).Msg(string(errmsg.OpSessionSave))
		}
	}
	return m, tea.Quit
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	barHeight := 0
	bar := renderPlayerBar(m.state, m.width)
	if bar != "" {
		barHeight = lipgloss.Height(bar)
	}

	statusLine := ""
	if m.status != "" {
		if m.statusIsErr {
			statusLine = errorStyle.Render(m.status)
		} else {
			statusLine = dimStyle.Render(m.status)
		}
	}

	paneHeight := max(m.height-barHeight-3, 3)
	searchWidth := m.width * 3 / 5
	queueWidth := max(m.width-searchWidth-4, 10)

	panes := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.search.view(searchWidth, paneHeight, m.focus == paneSearch),
		m.queue.view(queueWidth, paneHeight, m.focus == paneQueue),
	)

	parts := []string{panes, statusLine}
	if bar != "" {
		parts = append(parts, bar)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
