package playback

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/harmonia-music/harmonia/internal/backend"
	"github.com/harmonia-music/harmonia/internal/queue"
	"github.com/harmonia-music/harmonia/internal/track"
)

// ErrNotSeekable is returned by SeekTo before the backend has reported
// a duration for the current track.
var ErrNotSeekable = errors.New("seek requires a loaded track with known duration")

const (
	defaultVolume = 0.7

	// Skip-previous restarts the current track instead of moving back
	// once playback has passed this point.
	restartThreshold = 3 * time.Second
)

// Options configures a Controller.
type Options struct {
	MaxRetries   int
	RetryBackoff time.Duration
	Volume       float64
	Logger       zerolog.Logger
}

// Controller is the composition root of the playback engine. It owns
// the queue, the playback state and the retry policy, serializes every
// mutation behind one mutex, and folds asynchronous backend events into
// state machine transitions. Backend events that arrive for a track
// that is no longer current are discarded by track ID.
type Controller struct {
	mu sync.RWMutex

	backend backend.Backend
	queue   *queue.Queue
	history *TrackHistory

	status     Status
	playIntent bool // audio should start once the pending load completes
	position   time.Duration
	duration   time.Duration
	seekable   bool // backend reported metadata for the bound track
	volume     float64
	muted      bool
	preMute    float64 // volume to restore on unmute
	repeat     RepeatMode
	shuffle    bool
	lastError  string

	// loadID names the track whose backend events the controller still
	// cares about. A new load supersedes it; late events for the old
	// track are ignored.
	loadID string

	retry      retryState
	maxRetries int
	backoff    time.Duration

	subs   []*Subscription
	subsMu sync.Mutex

	log    zerolog.Logger
	done   chan struct{}
	closed bool
}

// New creates a controller bound to the given backend and queue and
// starts consuming backend events.
func New(b backend.Backend, q *queue.Queue, opts Options) *Controller {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = DefaultRetryBackoff
	}
	if opts.Volume <= 0 || opts.Volume > 1 {
		opts.Volume = defaultVolume
	}

	c := &Controller{
		backend:    b,
		queue:      q,
		history:    NewTrackHistory(historySize),
		status:     StatusIdle,
		volume:     opts.Volume,
		preMute:    opts.Volume,
		maxRetries: opts.MaxRetries,
		backoff:    opts.RetryBackoff,
		log:        opts.Logger.With().Str("component", "playback").Logger(),
		done:       make(chan struct{}),
	}
	b.SetVolume(c.volume)

	go c.run()
	return c
}

// run consumes backend events until the controller closes.
func (c *Controller) run() {
	events := c.backend.Events()
	for {
		select {
		case <-c.done:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			c.handleEvent(ev)
		}
	}
}

// --- Queue operations ---

// Append adds a track to the end of the queue. If the queue was empty
// and nothing was selected, the track becomes current and playback
// starts.
func (c *Controller) Append(t track.Track) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	becameCurrent, err := c.queue.Append(t)
	if err != nil {
		return err
	}
	c.emitQueueLocked()
	c.emitNoticeLocked("Added to queue: "+t.Title, false)

	if becameCurrent {
		cur := c.currentCopyLocked()
		c.emitTrackLocked(TrackChange{Current: cur, PreviousIndex: -1, Index: 0})
		c.startCurrentLocked(true)
	}
	return nil
}

// InsertNext inserts a track right after the current one, so it plays
// next. With nothing selected it behaves as Append.
func (c *Controller) InsertNext(t track.Track) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	becameCurrent, err := c.queue.InsertNext(t)
	if err != nil {
		return err
	}
	c.emitQueueLocked()
	c.emitNoticeLocked("Playing next: "+t.Title, false)

	if becameCurrent {
		cur := c.currentCopyLocked()
		c.emitTrackLocked(TrackChange{Current: cur, PreviousIndex: -1, Index: 0})
		c.startCurrentLocked(true)
	}
	return nil
}

// RemoveAt removes the track at the given index. Removing the current
// track stops playback; the engine rests on the next track (paused) or
// goes Idle if the queue is exhausted.
func (c *Controller) RemoveAt(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.currentCopyLocked()
	prevIdx := c.queue.CurrentIndex()

	removedCurrent, err := c.queue.RemoveAt(index)
	if err != nil {
		return err
	}

	if removedCurrent {
		c.cancelRetryLocked()
		c.backend.Stop()
		c.loadID = ""
		c.playIntent = false
		c.position = 0
		c.duration = 0
		c.seekable = false

		cur := c.currentCopyLocked()
		if prev != nil {
			c.history.Push(*prev)
		}
		c.emitTrackLocked(TrackChange{
			Previous:      prev,
			Current:       cur,
			PreviousIndex: prevIdx,
			Index:         c.queue.CurrentIndex(),
		})
		if cur == nil {
			c.toIdleLocked()
		} else {
			c.setStatusLocked(StatusPaused)
		}
	}
	c.emitQueueLocked()
	return nil
}

// ReplaceAll archives the current queue, installs the given tracks and
// starts playback at startIndex (clamped into range).
func (c *Controller) ReplaceAll(tracks []track.Track, startIndex int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.currentCopyLocked()
	prevIdx := c.queue.CurrentIndex()

	if err := c.queue.ReplaceAll(tracks, startIndex); err != nil {
		return err
	}
	c.emitQueueLocked()
	c.afterTrackChangeLocked(prev, prevIdx, true)
	return nil
}

// RestorePrevious reinstates the most recently archived queue,
// selecting index 0. The play intent in effect is preserved.
func (c *Controller) RestorePrevious() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.currentCopyLocked()
	prevIdx := c.queue.CurrentIndex()
	intent := c.playIntent || c.status == StatusPlaying

	if err := c.queue.RestorePrevious(); err != nil {
		return err
	}
	c.emitQueueLocked()
	c.emitNoticeLocked("Previous queue restored", false)
	c.afterTrackChangeLocked(prev, prevIdx, intent)
	return nil
}

// Clear archives and empties the queue, stopping playback.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.currentCopyLocked()
	prevIdx := c.queue.CurrentIndex()

	c.queue.Clear()
	c.cancelRetryLocked()
	c.backend.Stop()
	if prev != nil {
		c.history.Push(*prev)
		c.emitTrackLocked(TrackChange{Previous: prev, PreviousIndex: prevIdx, Index: -1})
	}
	c.toIdleLocked()
	c.emitQueueLocked()
}

// --- Playback operations ---

// PlayTrack plays the given track. If a track with the same ID is
// already queued the current index jumps to it; otherwise the track is
// appended. It never creates a duplicate queue entry.
func (c *Controller) PlayTrack(t track.Track) error {
	if !t.Playable() {
		return queue.ErrInvalidTrack
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if idx := c.queue.IndexOf(t.ID); idx >= 0 {
		c.jumpLocked(idx, true)
		return nil
	}

	if _, err := c.queue.Append(t); err != nil {
		return err
	}
	c.emitQueueLocked()
	c.jumpLocked(c.queue.Len()-1, true)
	return nil
}

// TogglePlayPause flips between playing and paused. On an empty queue
// it only emits a notice; with tracks queued but none selected it
// selects index 0 and plays.
func (c *Controller) TogglePlayPause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.queue.IsEmpty() {
		c.emitNoticeLocked("Add some tracks to your queue first", false)
		return
	}
	if c.queue.CurrentIndex() == -1 {
		c.jumpLocked(0, true)
		return
	}

	switch c.status {
	case StatusPlaying:
		c.pauseLocked()
	case StatusPaused:
		c.resumeLocked()
	case StatusLoading:
		c.playIntent = !c.playIntent
	case StatusErrored:
		c.retryLocked()
	case StatusIdle:
		c.startCurrentLocked(true)
	}
}

// Play resumes (or starts) playback of the current track.
func (c *Controller) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.queue.Current() == nil {
		if c.queue.IsEmpty() {
			return
		}
		c.jumpLocked(0, true)
		return
	}
	c.resumeLocked()
}

// Pause pauses playback.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pauseLocked()
}

// Next skips to the next track, wrapping to the first when repeat-all
// is on. At the end of the queue without repeat it emits a notice.
func (c *Controller) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()

	intent := c.playIntent || c.status == StatusPlaying
	switch {
	case c.queue.HasNext():
		c.jumpLocked(c.queue.CurrentIndex()+1, intent)
	case c.repeat == RepeatAll && !c.queue.IsEmpty():
		c.jumpLocked(0, intent)
	default:
		c.emitNoticeLocked("End of queue reached", false)
	}
}

// Previous restarts the current track when more than three seconds in;
// otherwise it moves back one queue position, wrapping to the last
// track when repeat-all is on.
func (c *Controller) Previous() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.position > restartThreshold {
		c.restartPositionLocked()
		return
	}

	intent := c.playIntent || c.status == StatusPlaying
	idx := c.queue.CurrentIndex()
	switch {
	case idx > 0:
		c.jumpLocked(idx-1, intent)
	case c.repeat == RepeatAll && c.queue.Len() > 0:
		c.jumpLocked(c.queue.Len()-1, intent)
	default:
		c.restartPositionLocked()
	}
}

// SeekTo seeks to an absolute position, clamped into the track. Seeking
// is only possible once the backend has reported a duration.
func (c *Controller) SeekTo(pos time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.queue.Current() == nil || !c.seekable || c.duration <= 0 {
		return ErrNotSeekable
	}
	if pos < 0 {
		pos = 0
	}
	if pos > c.duration {
		pos = c.duration
	}
	c.backend.Seek(pos)
	// Optimistic; the next time update reconciles it.
	c.position = pos
	c.emitPositionLocked()
	return nil
}

// Retry manually restarts the current track after a terminal error,
// resetting the retry counter.
func (c *Controller) Retry() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.retryLocked()
}

// --- Volume and modes ---

// SetVolume sets the volume, clamped to [0,1]. Raising the volume
// while muted unmutes.
func (c *Controller) SetVolume(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	c.volume = v
	if c.muted && v > 0 {
		c.muted = false
		c.backend.SetMuted(false)
	}
	c.backend.SetVolume(v)
	c.emitVolumeLocked()
}

// ToggleMute mutes or unmutes, remembering the pre-mute volume and
// restoring it on unmute if the level has meanwhile dropped to zero.
func (c *Controller) ToggleMute() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.muted {
		c.preMute = c.volume
		c.muted = true
		c.backend.SetMuted(true)
	} else {
		c.muted = false
		c.backend.SetMuted(false)
		if c.volume == 0 {
			v := c.preMute
			if v == 0 {
				v = defaultVolume
			}
			c.volume = v
			c.backend.SetVolume(v)
		}
	}
	c.emitVolumeLocked()
}

// CycleRepeat advances the repeat mode Off → All → One → Off.
func (c *Controller) CycleRepeat() RepeatMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.repeat = c.repeat.Next()
	c.emitModeLocked()
	return c.repeat
}

// SetRepeat sets the repeat mode directly.
func (c *Controller) SetRepeat(m RepeatMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.repeat == m {
		return
	}
	c.repeat = m
	c.emitModeLocked()
}

// ToggleShuffle flips shuffle mode. On the off-to-on edge the tracks
// after the current one are shuffled; positions already played stay.
func (c *Controller) ToggleShuffle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setShuffleLocked(!c.shuffle)
	return c.shuffle
}

// SetShuffle sets shuffle mode directly.
func (c *Controller) SetShuffle(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setShuffleLocked(enabled)
}

func (c *Controller) setShuffleLocked(enabled bool) {
	if c.shuffle == enabled {
		return
	}
	c.shuffle = enabled
	if enabled {
		c.queue.ShuffleRemaining()
		c.emitQueueLocked()
	}
	c.emitModeLocked()
}

// --- State queries ---

// State returns a snapshot of the engine.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return State{
		Status:     c.status,
		Track:      c.currentCopyLocked(),
		Index:      c.queue.CurrentIndex(),
		Position:   c.position,
		Duration:   c.duration,
		Volume:     c.volume,
		Muted:      c.muted,
		Repeat:     c.repeat,
		Shuffle:    c.shuffle,
		LastError:  c.lastError,
		RetryCount: c.retry.count,
	}
}

// QueueTracks returns a copy of the queued tracks.
func (c *Controller) QueueTracks() []track.Track {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.queue.Tracks()
}

// QueueIndex returns the current queue index (-1 if none).
func (c *Controller) QueueIndex() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.queue.CurrentIndex()
}

// QueueLen returns the number of queued tracks.
func (c *Controller) QueueLen() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.queue.Len()
}

// QueueIsEmpty returns true if the queue has no tracks.
func (c *Controller) QueueIsEmpty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.queue.IsEmpty()
}

// QueueHasNext returns true if a track follows the current one.
func (c *Controller) QueueHasNext() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.queue.HasNext()
}

// History returns previously current tracks, newest first.
func (c *Controller) History() []track.Track {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.history.Tracks()
}

// Restore reinstates a saved session without starting playback.
func (c *Controller) Restore(tracks []track.Track, index int, repeat RepeatMode, shuffle bool, volume float64, muted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.repeat = repeat
	c.shuffle = shuffle
	if volume >= 0 && volume <= 1 {
		c.volume = volume
		c.preMute = volume
	}
	c.muted = muted
	c.backend.SetVolume(c.volume)
	c.backend.SetMuted(muted)

	if len(tracks) > 0 {
		if index < 0 {
			index = 0
		}
		if err := c.queue.ReplaceAll(tracks, index); err == nil {
			c.setStatusLocked(StatusPaused)
			c.emitQueueLocked()
		}
	}
	c.emitModeLocked()
	c.emitVolumeLocked()
}

// Subscribe creates a new event subscription.
func (c *Controller) Subscribe() *Subscription {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	sub := newSubscription()
	c.subs = append(c.subs, sub)
	return sub
}

// Close shuts down the controller. The backend is owned by the caller
// and closed separately.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.cancelRetryLocked()
	close(c.done)
	c.mu.Unlock()

	c.subsMu.Lock()
	for _, sub := range c.subs {
		sub.close()
	}
	c.subs = nil
	c.subsMu.Unlock()
	return nil
}

// --- Backend event handling ---

func (c *Controller) handleEvent(ev backend.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	if ev.TrackID != "" && ev.TrackID != c.loadID {
		// Late event for a superseded track.
		c.log.Debug().Str("track", ev.TrackID).Stringer("event", ev.Kind).Msg("ignoring stale backend event")
		return
	}

	switch ev.Kind {
	case backend.EventMetadataReady:
		c.onMetadataReadyLocked(ev)
	case backend.EventTimeUpdate:
		c.onTimeUpdateLocked(ev)
	case backend.EventCanPlay:
		// Readiness is implied by metadata; nothing further to fold.
	case backend.EventEnded:
		c.onEndedLocked()
	case backend.EventError:
		c.onStreamErrorLocked(ev.TrackID, ev.ErrKind, ev.Err)
	}
}

func (c *Controller) onMetadataReadyLocked(ev backend.Event) {
	if ev.Duration > 0 {
		c.duration = ev.Duration
	}
	c.seekable = true
	c.retry.count = 0
	c.cancelRetryLocked()
	if c.status == StatusLoading {
		if c.playIntent {
			c.setStatusLocked(StatusPlaying)
		} else {
			c.setStatusLocked(StatusPaused)
		}
	}
	c.emitPositionLocked()
}

// Time updates are frequent: fold the position and nothing else. They
// must never trigger backend commands.
func (c *Controller) onTimeUpdateLocked(ev backend.Event) {
	c.position = ev.Position
	c.emitPositionLocked()
}

// onEndedLocked resolves track end in priority order: repeat-one,
// next in queue, repeat-all wrap, stop.
func (c *Controller) onEndedLocked() {
	switch {
	case c.repeat == RepeatOne:
		c.position = 0
		c.backend.Seek(0)
		if err := c.backend.Play(); err != nil {
			c.log.Warn().Err(err).Msg("repeat-one restart failed")
		}
		c.setStatusLocked(StatusPlaying)
		c.emitPositionLocked()
	case c.queue.HasNext():
		c.advanceToLocked(c.queue.CurrentIndex() + 1)
	case c.repeat == RepeatAll && !c.queue.IsEmpty():
		c.advanceToLocked(0)
	default:
		// End of queue: rest paused at the start, queue retained.
		c.playIntent = false
		c.position = 0
		c.setStatusLocked(StatusPaused)
		c.emitPositionLocked()
	}
}

func (c *Controller) onStreamErrorLocked(trackID string, kind backend.ErrorKind, err error) {
	cur := c.queue.Current()
	title := "this track"
	if cur != nil {
		title = fmt.Sprintf("%q", cur.Title)
	}

	if kind == backend.ErrorBlocked {
		// A host-policy rejection. Retrying will not help; ask the
		// user to press play.
		c.cancelRetryLocked()
		c.playIntent = false
		c.lastError = "Playback was blocked. Press play to continue."
		c.setStatusLocked(StatusPaused)
		c.emitNoticeLocked(c.lastError, true)
		return
	}

	c.retry.count++
	if c.retry.count < c.maxRetries {
		c.log.Warn().
			Str("track", trackID).
			Int("attempt", c.retry.count).
			Int("max", c.maxRetries).
			Err(err).
			Msg("stream error, scheduling retry")
		c.setStatusLocked(StatusLoading)
		c.scheduleRetryLocked(trackID)
		return
	}

	// Retries exhausted: terminal error. The counter stays at the
	// bound until a success or a manual retry resets it.
	c.cancelRetryLocked()
	c.playIntent = false
	c.lastError = fmt.Sprintf("Failed to play %s. The track may be unavailable.", title)
	c.setStatusLocked(StatusErrored)
	c.emitNoticeLocked(c.lastError, true)
	c.log.Error().Str("track", trackID).Err(err).Msg("stream failed after retries")
}

// --- Internal transitions (caller holds c.mu) ---

// startCurrentLocked binds the current queue track to the backend:
// exactly one load (plus one play when intent is set) per track start.
func (c *Controller) startCurrentLocked(intent bool) {
	cur := c.queue.Current()
	if cur == nil {
		c.toIdleLocked()
		return
	}
	c.cancelRetryLocked()
	if c.retry.trackID != cur.ID {
		c.retry = retryState{trackID: cur.ID}
	}
	c.playIntent = intent
	c.loadID = cur.ID
	c.position = 0
	// The hint is display-only; seeking waits for backend metadata.
	c.duration = cur.DurationHint
	c.seekable = false
	c.lastError = ""
	c.setStatusLocked(StatusLoading)
	c.issueLoadLocked(cur)
}

func (c *Controller) issueLoadLocked(cur *track.Track) {
	if err := c.backend.Load(cur.ID, cur.StreamURL); err != nil {
		c.onStreamErrorLocked(cur.ID, backend.ErrorStream, err)
		return
	}
	if c.playIntent {
		if err := c.backend.Play(); err != nil {
			c.onStreamErrorLocked(cur.ID, backend.ErrorStream, err)
		}
	}
}

// jumpLocked moves the current index for user navigation. Jumping to
// the track that is already bound just honors the play intent instead
// of reloading the stream.
func (c *Controller) jumpLocked(idx int, intent bool) {
	prev := c.currentCopyLocked()
	prevIdx := c.queue.CurrentIndex()
	cur := c.queue.JumpTo(idx)
	if cur == nil {
		return
	}
	if cur.ID == c.loadID && c.status != StatusErrored {
		if intent {
			c.resumeLocked()
		}
		return
	}
	c.afterTrackChangeLocked(prev, prevIdx, intent)
}

// advanceToLocked moves the current index for automatic advance. The
// finished stream is always reloaded, even for a single-track wrap.
func (c *Controller) advanceToLocked(idx int) {
	prev := c.currentCopyLocked()
	prevIdx := c.queue.CurrentIndex()
	if c.queue.JumpTo(idx) == nil {
		return
	}
	c.afterTrackChangeLocked(prev, prevIdx, true)
}

// afterTrackChangeLocked records history, notifies observers and starts
// the newly current track.
func (c *Controller) afterTrackChangeLocked(prev *track.Track, prevIdx int, intent bool) {
	cur := c.currentCopyLocked()
	changed := prev == nil || cur == nil || prev.ID != cur.ID
	if changed {
		if prev != nil {
			c.history.Push(*prev)
		}
		c.emitTrackLocked(TrackChange{
			Previous:      prev,
			Current:       cur,
			PreviousIndex: prevIdx,
			Index:         c.queue.CurrentIndex(),
		})
	}
	if cur == nil {
		c.toIdleLocked()
		return
	}
	c.startCurrentLocked(intent)
}

func (c *Controller) pauseLocked() {
	if c.status != StatusPlaying {
		return
	}
	c.backend.Pause()
	c.playIntent = false
	c.setStatusLocked(StatusPaused)
}

func (c *Controller) resumeLocked() {
	cur := c.queue.Current()
	if cur == nil {
		return
	}
	if c.loadID == cur.ID {
		switch c.status {
		case StatusPlaying:
			// Already audible; resuming must not reload the stream.
			return
		case StatusLoading:
			c.playIntent = true
			return
		case StatusPaused:
			c.playIntent = true
			if err := c.backend.Play(); err != nil {
				c.onStreamErrorLocked(cur.ID, backend.ErrorStream, err)
				return
			}
			c.setStatusLocked(StatusPlaying)
			return
		}
	}
	// Nothing bound for this track yet (e.g. after removing the
	// previous current); start it fresh.
	c.startCurrentLocked(true)
}

func (c *Controller) retryLocked() {
	cur := c.queue.Current()
	if cur == nil {
		return
	}
	c.retry = retryState{trackID: cur.ID}
	c.lastError = ""
	c.startCurrentLocked(true)
}

func (c *Controller) restartPositionLocked() {
	c.position = 0
	c.backend.Seek(0)
	c.emitPositionLocked()
}

func (c *Controller) toIdleLocked() {
	c.cancelRetryLocked()
	c.loadID = ""
	c.playIntent = false
	c.position = 0
	c.duration = 0
	c.seekable = false
	c.lastError = ""
	c.setStatusLocked(StatusIdle)
}

func (c *Controller) currentCopyLocked() *track.Track {
	t := c.queue.Current()
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}

// --- Event emission (caller holds c.mu) ---

func (c *Controller) setStatusLocked(s Status) {
	if c.status == s {
		return
	}
	prev := c.status
	c.status = s
	c.forEachSub(func(sub *Subscription) {
		sub.sendStatus(StatusChange{Previous: prev, Current: s})
	})
}

func (c *Controller) emitTrackLocked(e TrackChange) {
	c.forEachSub(func(sub *Subscription) { sub.sendTrack(e) })
}

func (c *Controller) emitQueueLocked() {
	e := QueueChange{Tracks: c.queue.Tracks(), Index: c.queue.CurrentIndex()}
	c.forEachSub(func(sub *Subscription) { sub.sendQueue(e) })
}

func (c *Controller) emitPositionLocked() {
	e := PositionChange{Position: c.position, Duration: c.duration}
	c.forEachSub(func(sub *Subscription) { sub.sendPosition(e) })
}

func (c *Controller) emitModeLocked() {
	e := ModeChange{Repeat: c.repeat, Shuffle: c.shuffle}
	c.forEachSub(func(sub *Subscription) { sub.sendMode(e) })
}

func (c *Controller) emitVolumeLocked() {
	e := VolumeChange{Volume: c.volume, Muted: c.muted}
	c.forEachSub(func(sub *Subscription) { sub.sendVolume(e) })
}

func (c *Controller) emitNoticeLocked(text string, isErr bool) {
	e := Notice{Text: text, IsErr: isErr}
	c.forEachSub(func(sub *Subscription) { sub.sendNotice(e) })
}

func (c *Controller) forEachSub(fn func(*Subscription)) {
	c.subsMu.Lock()
	subs := make([]*Subscription, len(c.subs))
	copy(subs, c.subs)
	c.subsMu.Unlock()
	for _, sub := range subs {
		fn(sub)
	}
}
