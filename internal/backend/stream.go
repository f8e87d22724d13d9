package backend

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/rs/zerolog"
)

const (
	fetchTimeout       = 30 * time.Second
	timeUpdateInterval = 500 * time.Millisecond
	speakerBufferLen   = time.Second / 10
)

var (
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
	speakerMu          sync.Mutex
)

// Player streams MP3 audio from remote URLs through beep. It implements
// Backend: Load fetches and decodes asynchronously, lifecycle events are
// delivered on the Events channel tagged with the loading track's ID.
type Player struct {
	mu sync.Mutex

	httpClient *http.Client
	events     chan Event
	log        zerolog.Logger

	trackID  string
	gen      int // invalidates in-flight loads and tickers
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume

	wantPlay    bool // Play was requested before the load finished
	drained     bool // the chain played to completion and left the speaker
	volumeLevel float64
	muted       bool

	closed bool
}

// NewPlayer creates a streaming player.
func NewPlayer(log zerolog.Logger) *Player {
	return &Player{
		httpClient:  &http.Client{Timeout: fetchTimeout},
		events:      make(chan Event, 64),
		log:         log.With().Str("component", "backend").Logger(),
		volumeLevel: 1.0,
	}
}

// Load begins fetching and decoding the stream at streamURL. The result
// arrives on Events as MetadataReady (then audio starts if Play was
// requested) or as an Error tagged with trackID.
func (p *Player) Load(trackID, streamURL string) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return fmt.Errorf("backend is closed")
	}
	p.stopLocked()
	p.trackID = trackID
	p.gen++
	gen := p.gen
	p.wantPlay = false
	p.mu.Unlock()

	go p.fetchAndStart(gen, trackID, streamURL)
	return nil
}

// fetchAndStart downloads the stream body and hands it to the decoder.
// The body is buffered in memory so the resulting streamer is seekable.
func (p *Player) fetchAndStart(gen int, trackID, streamURL string) {
	resp, err := p.httpClient.Get(streamURL)
	if err != nil {
		p.emitError(gen, trackID, ErrorStream, fmt.Errorf("fetch stream: %w", err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.emitError(gen, trackID, ErrorStream, fmt.Errorf("fetch stream: status %d", resp.StatusCode))
		return
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		p.emitError(gen, trackID, ErrorStream, fmt.Errorf("read stream: %w", err))
		return
	}

	streamer, format, err := mp3.Decode(nopSeekCloser{bytes.NewReader(data)})
	if err != nil {
		p.emitError(gen, trackID, ErrorStream, fmt.Errorf("decode stream: %w", err))
		return
	}

	outRate, err := initSpeaker(format.SampleRate)
	if err != nil {
		streamer.Close()
		// The audio device refused us; retrying a load will not help.
		p.emitError(gen, trackID, ErrorBlocked, fmt.Errorf("open audio device: %w", err))
		return
	}

	p.mu.Lock()
	if p.closed || gen != p.gen {
		p.mu.Unlock()
		streamer.Close()
		return
	}

	p.streamer = streamer
	p.format = format
	p.ctrl = &beep.Ctrl{Streamer: playStreamer(streamer, format, outRate), Paused: !p.wantPlay}
	p.volume = &effects.Volume{Streamer: p.ctrl, Base: 2, Volume: levelToVolume(p.volumeLevel), Silent: p.muted}
	duration := format.SampleRate.D(streamer.Len())
	p.attachLocked()
	p.mu.Unlock()

	p.send(Event{Kind: EventMetadataReady, TrackID: trackID, Duration: duration})
	p.send(Event{Kind: EventCanPlay, TrackID: trackID})

	go p.positionLoop(gen, trackID)
}

// playStreamer resamples when the track's rate differs from the speaker's.
func playStreamer(streamer beep.StreamSeekCloser, format beep.Format, outRate beep.SampleRate) beep.Streamer {
	if format.SampleRate == outRate {
		return streamer
	}
	return beep.Resample(4, format.SampleRate, outRate, streamer)
}

// attachLocked queues the volume chain on the speaker mixer. Once the
// chain plays to completion the mixer drops it, so a later Play or Seek
// must attach it again before any audio can come out.
func (p *Player) attachLocked() {
	gen := p.gen
	trackID := p.trackID
	p.drained = false
	speaker.Play(beep.Seq(p.volume, beep.Callback(func() {
		// Runs on the speaker goroutine with the speaker lock held;
		// hand off so p.mu is never taken under it.
		go p.onStreamEnded(gen, trackID)
	})))
}

func (p *Player) onStreamEnded(gen int, trackID string) {
	p.mu.Lock()
	if p.closed || gen != p.gen {
		p.mu.Unlock()
		return
	}
	p.drained = true
	p.mu.Unlock()
	p.send(Event{Kind: EventEnded, TrackID: trackID})
}

// positionLoop emits TimeUpdate events while the stream is audible.
func (p *Player) positionLoop(gen int, trackID string) {
	ticker := time.NewTicker(timeUpdateInterval)
	defer ticker.Stop()
	for range ticker.C {
		p.mu.Lock()
		if p.closed || gen != p.gen || p.streamer == nil {
			p.mu.Unlock()
			return
		}
		paused := p.ctrl != nil && p.ctrl.Paused
		pos := p.format.SampleRate.D(p.streamer.Position())
		p.mu.Unlock()

		if !paused {
			p.send(Event{Kind: EventTimeUpdate, TrackID: trackID, Position: pos})
		}
	}
}

// Play unpauses the current stream, or marks the pending load to start
// audible once it completes.
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.wantPlay = true
	if p.ctrl == nil {
		return nil
	}
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	if p.drained {
		p.attachLocked()
	}
	return nil
}

// Pause silences the current stream without releasing it.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.wantPlay = false
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
}

// Stop releases the current stream.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Player) stopLocked() {
	if p.streamer == nil {
		p.gen++ // also invalidates a fetch that has not produced a streamer yet
		return
	}
	speaker.Clear()
	p.streamer.Close()
	p.streamer = nil
	p.ctrl = nil
	p.volume = nil
	p.gen++
	p.wantPlay = false
	p.drained = false
}

// Seek moves the playback position. Out-of-range positions are clamped
// by the caller; the decoder also clamps defensively.
func (p *Player) Seek(pos time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return
	}
	sample := p.format.SampleRate.N(pos)
	if sample < 0 {
		sample = 0
	}
	if sample >= p.streamer.Len() {
		sample = p.streamer.Len() - 1
	}
	speaker.Lock()
	if err := p.streamer.Seek(sample); err != nil {
		p.log.Warn().Err(err).Msg("seek failed")
	}
	speaker.Unlock()
	if p.drained && p.wantPlay {
		p.attachLocked()
	}
}

// SetVolume sets the output level (0.0 to 1.0).
func (p *Player) SetVolume(level float64) {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volumeLevel = level
	if p.volume != nil {
		speaker.Lock()
		p.volume.Volume = levelToVolume(level)
		speaker.Unlock()
	}
}

// SetMuted silences output without losing the volume level.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
	if p.volume != nil {
		speaker.Lock()
		p.volume.Silent = muted
		speaker.Unlock()
	}
}

// Events returns the backend event channel.
func (p *Player) Events() <-chan Event {
	return p.events
}

// Close stops playback and closes the event channel.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.stopLocked()
	p.closed = true
	close(p.events)
	return nil
}

func (p *Player) emitError(gen int, trackID string, kind ErrorKind, err error) {
	p.mu.Lock()
	stale := p.closed || gen != p.gen
	p.mu.Unlock()
	if stale {
		return
	}
	p.log.Warn().Str("track", trackID).Stringer("kind", kind).Err(err).Msg("stream error")
	p.send(Event{Kind: EventError, TrackID: trackID, ErrKind: kind, Err: err})
}

// send delivers an event without blocking; stale events are dropped if
// the consumer has fallen far behind.
func (p *Player) send(ev Event) {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return
	}
	select {
	case p.events <- ev:
	default:
	}
}

// initSpeaker opens the audio device on first use and returns the rate
// it runs at; later tracks with other rates are resampled to it.
func initSpeaker(rate beep.SampleRate) (beep.SampleRate, error) {
	speakerMu.Lock()
	defer speakerMu.Unlock()
	if speakerInitialized {
		return speakerSampleRate, nil
	}
	if err := speaker.Init(rate, rate.N(speakerBufferLen)); err != nil {
		return 0, err
	}
	speakerInitialized = true
	speakerSampleRate = rate
	return rate, nil
}

// levelToVolume converts a 0.0-1.0 level to beep's logarithmic scale.
// Volume 0 means unchanged, -1 half, -2 quarter; -10 is effectively silent.
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}

// nopSeekCloser adapts the buffered response body for the decoder,
// which needs both seeking and closing.
type nopSeekCloser struct {
	*bytes.Reader
}

func (nopSeekCloser) Close() error { return nil }

// Verify Player implements Backend at compile time.
var _ Backend = (*Player)(nil)
