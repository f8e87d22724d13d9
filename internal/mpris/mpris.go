//go:build linux

// Package mpris exposes the playback engine on the desktop media bus.
package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/events"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/harmonia-music/harmonia/internal/playback"
)

// Adapter connects the playback controller to MPRIS over D-Bus.
type Adapter struct {
	ctrl   *playback.Controller
	server *server.Server
	events *events.EventHandler
	sub    *playback.Subscription
	done   chan struct{}
}

// New creates and starts a new MPRIS adapter.
func New(ctrl *playback.Controller) (*Adapter, error) {
	a := &Adapter{
		ctrl: ctrl,
		done: make(chan struct{}),
	}

	a.server = server.NewServer("harmonia", &rootAdapter{}, &playerAdapter{ctrl: ctrl})
	a.events = events.NewEventHandler(a.server)
	a.sub = ctrl.Subscribe()

	go func() {
		_ = a.server.Listen()
	}()
	go a.forwardEvents()

	return a, nil
}

// forwardEvents translates controller notifications into MPRIS
// property-change signals so desktop widgets stay in sync.
func (a *Adapter) forwardEvents() {
	for {
		select {
		case <-a.done:
			return
		case <-a.sub.Done:
			return
		case <-a.sub.StatusChanged:
			_ = a.events.Player.OnPlayPause()
		case <-a.sub.TrackChanged:
			_ = a.events.Player.OnTitle()
		case <-a.sub.VolumeChanged:
			_ = a.events.Player.OnVolume()
		case <-a.sub.ModeChanged:
			_ = a.events.Player.OnOptions()
		}
	}
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	close(a.done)
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Harmonia", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/mp4"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and the
// optional loop/shuffle interfaces.
type playerAdapter struct {
	ctrl *playback.Controller
}

func (p *playerAdapter) Next() error {
	p.ctrl.Next()
	return nil
}

func (p *playerAdapter) Previous() error {
	p.ctrl.Previous()
	return nil
}

func (p *playerAdapter) Pause() error {
	p.ctrl.Pause()
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.ctrl.TogglePlayPause()
	return nil
}

func (p *playerAdapter) Stop() error {
	p.ctrl.Pause()
	_ = p.ctrl.SeekTo(0)
	return nil
}

func (p *playerAdapter) Play() error {
	p.ctrl.Play()
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	pos := p.ctrl.State().Position + time.Duration(offset)*time.Microsecond
	return p.ctrl.SeekTo(pos)
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	return p.ctrl.SeekTo(time.Duration(position) * time.Microsecond)
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.ctrl.State().Status {
	case playback.StatusPlaying, playback.StatusLoading:
		return types.PlaybackStatusPlaying, nil
	case playback.StatusPaused, playback.StatusErrored:
		return types.PlaybackStatusPaused, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	st := p.ctrl.State()
	if st.Track == nil {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(st.Track.ID)),
		Length:  types.Microseconds(st.Duration.Microseconds()),
		Title:   st.Track.Title,
		Artist:  st.Track.Artists,
	}
	if st.Track.ArtworkURL != "" {
		meta.ArtUrl = st.Track.ArtworkURL
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return p.ctrl.State().Volume, nil
}

func (p *playerAdapter) SetVolume(v float64) error {
	p.ctrl.SetVolume(v)
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.ctrl.State().Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return p.ctrl.QueueHasNext(), nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.ctrl.QueueIndex() > 0, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return !p.ctrl.QueueIsEmpty(), nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	switch p.ctrl.State().Repeat {
	case playback.RepeatOne:
		return types.LoopStatusTrack, nil
	case playback.RepeatAll:
		return types.LoopStatusPlaylist, nil
	}
	return types.LoopStatusNone, nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	switch status {
	case types.LoopStatusNone:
		p.ctrl.SetRepeat(playback.RepeatOff)
	case types.LoopStatusTrack:
		p.ctrl.SetRepeat(playback.RepeatOne)
	case types.LoopStatusPlaylist:
		p.ctrl.SetRepeat(playback.RepeatAll)
	}
	return nil
}

// Shuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) Shuffle() (bool, error) {
	return p.ctrl.State().Shuffle, nil
}

// SetShuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) SetShuffle(shuffle bool) error {
	p.ctrl.SetShuffle(shuffle)
	return nil
}

func formatTrackID(id string) string {
	h := fnv.New64a()
	h.Write([]byte(id))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
