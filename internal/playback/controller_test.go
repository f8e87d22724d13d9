package playback

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/harmonia-music/harmonia/internal/backend"
	"github.com/harmonia-music/harmonia/internal/queue"
	"github.com/harmonia-music/harmonia/internal/track"
)

func tr(id string) track.Track {
	return track.Track{
		ID:        id,
		Title:     "Track " + id,
		Artists:   []string{"Artist"},
		StreamURL: "https://cdn.example.com/" + id + ".mp3",
	}
}

func newTestController(t *testing.T) (*Controller, *backend.Mock) {
	t.Helper()
	m := backend.NewMock()
	c := New(m, queue.New(), Options{
		RetryBackoff: time.Millisecond,
		Logger:       zerolog.Nop(),
	})
	t.Cleanup(func() {
		c.Close()
		m.Close()
	})
	return c, m
}

func metadataReady(id string, d time.Duration) backend.Event {
	return backend.Event{Kind: backend.EventMetadataReady, TrackID: id, Duration: d}
}

func streamError(id string) backend.Event {
	return backend.Event{Kind: backend.EventError, TrackID: id, ErrKind: backend.ErrorStream, Err: errors.New("stream failed")}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestAppendOnEmptyQueueStartsPlayback(t *testing.T) {
	c, m := newTestController(t)

	if err := c.Append(tr("a")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	calls := m.LoadCalls()
	if len(calls) != 1 {
		t.Fatalf("load calls = %d, want 1", len(calls))
	}
	if calls[0].TrackID != "a" {
		t.Errorf("loaded track = %q, want %q", calls[0].TrackID, "a")
	}
	if got := m.PlayCalls(); got != 1 {
		t.Errorf("play calls = %d, want 1", got)
	}
	if st := c.State(); st.Status != StatusLoading {
		t.Errorf("status = %v, want %v", st.Status, StatusLoading)
	}

	c.handleEvent(metadataReady("a", 3*time.Minute))

	st := c.State()
	if st.Status != StatusPlaying {
		t.Errorf("status after metadata = %v, want %v", st.Status, StatusPlaying)
	}
	if st.Duration != 3*time.Minute {
		t.Errorf("duration = %v, want %v", st.Duration, 3*time.Minute)
	}
}

func TestAppendWhilePlayingIssuesNoBackendCommands(t *testing.T) {
	c, m := newTestController(t)

	c.Append(tr("a"))
	c.handleEvent(metadataReady("a", time.Minute))

	c.Append(tr("b"))

	if got := len(m.LoadCalls()); got != 1 {
		t.Errorf("load calls = %d, want 1", got)
	}
	if got := m.PlayCalls(); got != 1 {
		t.Errorf("play calls = %d, want 1", got)
	}
	st := c.State()
	if st.Index != 0 || st.Status != StatusPlaying {
		t.Errorf("state = index %d status %v, want index 0 playing", st.Index, st.Status)
	}
	if got := c.QueueLen(); got != 2 {
		t.Errorf("queue length = %d, want 2", got)
	}
}

func TestPlayTrackUpsertsWithoutDuplicates(t *testing.T) {
	c, m := newTestController(t)

	c.Append(tr("a"))
	c.handleEvent(metadataReady("a", time.Minute))
	c.Append(tr("b"))

	// Already queued at index 1: jump, don't re-append.
	if err := c.PlayTrack(tr("b")); err != nil {
		t.Fatalf("PlayTrack() error = %v", err)
	}
	if got := c.QueueLen(); got != 2 {
		t.Errorf("queue length = %d, want 2", got)
	}
	if got := c.QueueIndex(); got != 1 {
		t.Errorf("index = %d, want 1", got)
	}
	loads := len(m.LoadCalls())
	if loads != 2 {
		t.Errorf("load calls = %d, want 2", loads)
	}
	c.handleEvent(metadataReady("b", time.Minute))

	// Re-requesting the bound track does not reload it.
	if err := c.PlayTrack(tr("b")); err != nil {
		t.Fatalf("PlayTrack() error = %v", err)
	}
	if got := len(m.LoadCalls()); got != loads {
		t.Errorf("load calls after replay = %d, want %d", got, loads)
	}
	if got := c.QueueLen(); got != 2 {
		t.Errorf("queue length after replay = %d, want 2", got)
	}
}

func TestPlayWhilePlayingLeavesStreamAlone(t *testing.T) {
	c, m := newTestController(t)

	c.Append(tr("a"))
	c.handleEvent(metadataReady("a", time.Minute))
	c.handleEvent(backend.Event{Kind: backend.EventTimeUpdate, TrackID: "a", Position: 30 * time.Second})
	loads := len(m.LoadCalls())
	plays := m.PlayCalls()

	c.Play()
	if got := len(m.LoadCalls()); got != loads {
		t.Errorf("load calls after Play() = %d, want %d", got, loads)
	}
	if got := m.PlayCalls(); got != plays {
		t.Errorf("play calls after Play() = %d, want %d", got, plays)
	}

	// Requesting the current track is equally idempotent.
	if err := c.PlayTrack(tr("a")); err != nil {
		t.Fatalf("PlayTrack() error = %v", err)
	}
	if got := len(m.LoadCalls()); got != loads {
		t.Errorf("load calls after PlayTrack() = %d, want %d", got, loads)
	}
	st := c.State()
	if st.Status != StatusPlaying {
		t.Errorf("status = %v, want %v", st.Status, StatusPlaying)
	}
	if st.Position != 30*time.Second {
		t.Errorf("position = %v, want unchanged 30s", st.Position)
	}
}

func TestPlayTrackRejectsUnplayable(t *testing.T) {
	c, _ := newTestController(t)

	err := c.PlayTrack(track.Track{ID: "x", Title: "No stream"})
	if !errors.Is(err, queue.ErrInvalidTrack) {
		t.Errorf("PlayTrack() error = %v, want %v", err, queue.ErrInvalidTrack)
	}
}

func TestTrackEndAdvancesToNext(t *testing.T) {
	c, m := newTestController(t)

	c.Append(tr("a"))
	c.handleEvent(metadataReady("a", time.Minute))
	c.Append(tr("b"))

	c.handleEvent(backend.Event{Kind: backend.EventEnded, TrackID: "a"})

	st := c.State()
	if st.Index != 1 || st.Status != StatusLoading {
		t.Errorf("state = index %d status %v, want index 1 loading", st.Index, st.Status)
	}
	calls := m.LoadCalls()
	if len(calls) != 2 || calls[1].TrackID != "b" {
		t.Errorf("load calls = %v, want second load for b", calls)
	}
}

func TestTrackEndRepeatOneRestartsWithoutReload(t *testing.T) {
	c, m := newTestController(t)

	c.Append(tr("a"))
	c.handleEvent(metadataReady("a", time.Minute))
	c.Append(tr("b"))
	c.SetRepeat(RepeatOne)

	c.handleEvent(backend.Event{Kind: backend.EventEnded, TrackID: "a"})

	st := c.State()
	if st.Index != 0 || st.Status != StatusPlaying || st.Position != 0 {
		t.Errorf("state = index %d status %v pos %v, want index 0 playing 0", st.Index, st.Status, st.Position)
	}
	if got := len(m.LoadCalls()); got != 1 {
		t.Errorf("load calls = %d, want 1", got)
	}
	seeks := m.SeekCalls()
	if len(seeks) != 1 || seeks[0] != 0 {
		t.Errorf("seek calls = %v, want [0]", seeks)
	}
}

func TestTrackEndRepeatAllWrapsToFirst(t *testing.T) {
	c, m := newTestController(t)

	c.Append(tr("a"))
	c.handleEvent(metadataReady("a", time.Minute))
	c.Append(tr("b"))
	c.handleEvent(backend.Event{Kind: backend.EventEnded, TrackID: "a"})
	c.handleEvent(metadataReady("b", time.Minute))
	c.SetRepeat(RepeatAll)

	c.handleEvent(backend.Event{Kind: backend.EventEnded, TrackID: "b"})

	st := c.State()
	if st.Index != 0 || st.Status != StatusLoading {
		t.Errorf("state = index %d status %v, want index 0 loading", st.Index, st.Status)
	}
	calls := m.LoadCalls()
	if got := calls[len(calls)-1].TrackID; got != "a" {
		t.Errorf("last load = %q, want %q", got, "a")
	}
}

func TestTrackEndWithoutRepeatRestsPaused(t *testing.T) {
	c, _ := newTestController(t)

	c.Append(tr("a"))
	c.handleEvent(metadataReady("a", time.Minute))
	c.handleEvent(backend.Event{Kind: backend.EventTimeUpdate, TrackID: "a", Position: 50 * time.Second})

	c.handleEvent(backend.Event{Kind: backend.EventEnded, TrackID: "a"})

	st := c.State()
	if st.Status != StatusPaused {
		t.Errorf("status = %v, want %v", st.Status, StatusPaused)
	}
	if st.Position != 0 {
		t.Errorf("position = %v, want 0", st.Position)
	}
	if got := c.QueueLen(); got != 1 {
		t.Errorf("queue length = %d, want 1 (queue retained)", got)
	}
}

func TestStreamErrorsRetryThenGoTerminal(t *testing.T) {
	c, m := newTestController(t)
	sub := c.Subscribe()

	c.Append(tr("a"))

	c.handleEvent(streamError("a"))
	if st := c.State(); st.Status != StatusLoading || st.RetryCount != 1 {
		t.Fatalf("after first error: status %v retries %d, want loading 1", st.Status, st.RetryCount)
	}
	waitFor(t, func() bool { return len(m.LoadCalls()) >= 2 })

	c.handleEvent(streamError("a"))
	if st := c.State(); st.RetryCount != 2 {
		t.Fatalf("after second error: retries = %d, want 2", st.RetryCount)
	}
	waitFor(t, func() bool { return len(m.LoadCalls()) >= 3 })

	c.handleEvent(streamError("a"))

	st := c.State()
	if st.Status != StatusErrored {
		t.Errorf("status = %v, want %v", st.Status, StatusErrored)
	}
	if st.RetryCount != 3 {
		t.Errorf("retry count = %d, want 3 (held until reset)", st.RetryCount)
	}
	if st.LastError == "" {
		t.Error("last error is empty, want a message")
	}

	// No further retry is pending after the terminal transition.
	loads := len(m.LoadCalls())
	time.Sleep(10 * time.Millisecond)
	if got := len(m.LoadCalls()); got != loads {
		t.Errorf("load calls grew after terminal error: %d -> %d", loads, got)
	}

	errored := 0
	for {
		select {
		case e := <-sub.StatusChanged:
			if e.Current == StatusErrored {
				errored++
			}
			continue
		default:
		}
		break
	}
	if errored != 1 {
		t.Errorf("errored transitions = %d, want exactly 1", errored)
	}
}

func TestManualRetryResetsCounter(t *testing.T) {
	c, m := newTestController(t)

	c.Append(tr("a"))
	c.handleEvent(streamError("a"))
	waitFor(t, func() bool { return len(m.LoadCalls()) >= 2 })
	c.handleEvent(streamError("a"))
	waitFor(t, func() bool { return len(m.LoadCalls()) >= 3 })
	c.handleEvent(streamError("a"))

	if st := c.State(); st.Status != StatusErrored {
		t.Fatalf("status = %v, want %v", st.Status, StatusErrored)
	}
	loads := len(m.LoadCalls())

	c.TogglePlayPause()

	st := c.State()
	if st.Status != StatusLoading {
		t.Errorf("status after retry = %v, want %v", st.Status, StatusLoading)
	}
	if st.RetryCount != 0 {
		t.Errorf("retry count after manual retry = %d, want 0", st.RetryCount)
	}
	if got := len(m.LoadCalls()); got != loads+1 {
		t.Errorf("load calls = %d, want %d", got, loads+1)
	}
}

func TestBlockedErrorPausesWithoutRetry(t *testing.T) {
	c, m := newTestController(t)

	c.Append(tr("a"))
	c.handleEvent(backend.Event{
		Kind:    backend.EventError,
		TrackID: "a",
		ErrKind: backend.ErrorBlocked,
		Err:     errors.New("device refused"),
	})

	st := c.State()
	if st.Status != StatusPaused {
		t.Errorf("status = %v, want %v", st.Status, StatusPaused)
	}
	if st.RetryCount != 0 {
		t.Errorf("retry count = %d, want 0", st.RetryCount)
	}
	if !strings.Contains(st.LastError, "blocked") {
		t.Errorf("last error = %q, want a blocked message", st.LastError)
	}

	loads := len(m.LoadCalls())
	time.Sleep(10 * time.Millisecond)
	if got := len(m.LoadCalls()); got != loads {
		t.Errorf("load calls grew after blocked error: %d -> %d", loads, got)
	}
}

func TestPreviousRestartsCurrentTrackPastThreshold(t *testing.T) {
	c, m := newTestController(t)

	c.Append(tr("a"))
	c.handleEvent(metadataReady("a", time.Minute))
	c.Append(tr("b"))
	c.handleEvent(backend.Event{Kind: backend.EventEnded, TrackID: "a"})
	c.handleEvent(metadataReady("b", time.Minute))
	c.handleEvent(backend.Event{Kind: backend.EventTimeUpdate, TrackID: "b", Position: 5 * time.Second})

	loads := len(m.LoadCalls())
	c.Previous()

	seeks := m.SeekCalls()
	if len(seeks) != 1 || seeks[0] != 0 {
		t.Errorf("seek calls = %v, want [0]", seeks)
	}
	if got := len(m.LoadCalls()); got != loads {
		t.Errorf("load reissued on restart: %d -> %d", loads, got)
	}
	if got := c.QueueIndex(); got != 1 {
		t.Errorf("index = %d, want 1", got)
	}
}

func TestPreviousMovesBackEarlyInTrack(t *testing.T) {
	c, m := newTestController(t)

	c.Append(tr("a"))
	c.handleEvent(metadataReady("a", time.Minute))
	c.Append(tr("b"))
	c.handleEvent(backend.Event{Kind: backend.EventEnded, TrackID: "a"})
	c.handleEvent(metadataReady("b", time.Minute))
	c.handleEvent(backend.Event{Kind: backend.EventTimeUpdate, TrackID: "b", Position: time.Second})

	c.Previous()

	if got := c.QueueIndex(); got != 0 {
		t.Errorf("index = %d, want 0", got)
	}
	calls := m.LoadCalls()
	if got := calls[len(calls)-1].TrackID; got != "a" {
		t.Errorf("last load = %q, want %q", got, "a")
	}
}

func TestPreviousAtFirstTrackWrapsWithRepeatAll(t *testing.T) {
	c, _ := newTestController(t)

	c.Append(tr("a"))
	c.handleEvent(metadataReady("a", time.Minute))
	c.Append(tr("b"))
	c.SetRepeat(RepeatAll)

	c.Previous()

	if got := c.QueueIndex(); got != 1 {
		t.Errorf("index = %d, want 1 (wrapped to last)", got)
	}
}

func TestLateEventsForSupersededTrackAreIgnored(t *testing.T) {
	c, _ := newTestController(t)

	c.Append(tr("a"))
	c.handleEvent(metadataReady("a", time.Minute))
	c.Append(tr("b"))
	c.Next()
	c.handleEvent(metadataReady("b", 2*time.Minute))
	c.handleEvent(backend.Event{Kind: backend.EventTimeUpdate, TrackID: "b", Position: 10 * time.Second})

	// Events from the superseded stream must not disturb state.
	c.handleEvent(backend.Event{Kind: backend.EventTimeUpdate, TrackID: "a", Position: 55 * time.Second})
	c.handleEvent(streamError("a"))
	c.handleEvent(backend.Event{Kind: backend.EventEnded, TrackID: "a"})

	st := c.State()
	if st.Index != 1 {
		t.Errorf("index = %d, want 1", st.Index)
	}
	if st.Status != StatusPlaying {
		t.Errorf("status = %v, want %v", st.Status, StatusPlaying)
	}
	if st.Position != 10*time.Second {
		t.Errorf("position = %v, want %v", st.Position, 10*time.Second)
	}
	if st.RetryCount != 0 {
		t.Errorf("retry count = %d, want 0", st.RetryCount)
	}
}

func TestRemoveCurrentTrackStopsAndRestsOnNext(t *testing.T) {
	c, m := newTestController(t)

	c.Append(tr("a"))
	c.handleEvent(metadataReady("a", time.Minute))
	c.Append(tr("b"))

	if err := c.RemoveAt(0); err != nil {
		t.Fatalf("RemoveAt() error = %v", err)
	}

	if got := m.StopCalls(); got != 1 {
		t.Errorf("stop calls = %d, want 1", got)
	}
	st := c.State()
	if st.Status != StatusPaused || st.Index != 0 {
		t.Errorf("state = status %v index %d, want paused 0", st.Status, st.Index)
	}
	if st.Track == nil || st.Track.ID != "b" {
		t.Fatalf("current track = %v, want b", st.Track)
	}

	// Resuming loads the new current track.
	c.TogglePlayPause()
	calls := m.LoadCalls()
	if got := calls[len(calls)-1].TrackID; got != "b" {
		t.Errorf("last load = %q, want %q", got, "b")
	}
	if st := c.State(); st.Status != StatusLoading {
		t.Errorf("status = %v, want %v", st.Status, StatusLoading)
	}
}

func TestRemoveLastTrackGoesIdle(t *testing.T) {
	c, _ := newTestController(t)

	c.Append(tr("a"))
	c.handleEvent(metadataReady("a", time.Minute))

	if err := c.RemoveAt(0); err != nil {
		t.Fatalf("RemoveAt() error = %v", err)
	}

	st := c.State()
	if st.Status != StatusIdle || st.Index != -1 || st.Track != nil {
		t.Errorf("state = status %v index %d track %v, want idle -1 nil", st.Status, st.Index, st.Track)
	}
}

func TestTogglePlayPauseOnEmptyQueueOnlyNotifies(t *testing.T) {
	c, m := newTestController(t)
	sub := c.Subscribe()

	c.TogglePlayPause()

	if st := c.State(); st.Status != StatusIdle {
		t.Errorf("status = %v, want %v", st.Status, StatusIdle)
	}
	if got := len(m.LoadCalls()); got != 0 {
		t.Errorf("load calls = %d, want 0", got)
	}
	select {
	case n := <-sub.Notices:
		if n.IsErr {
			t.Errorf("notice flagged as error: %q", n.Text)
		}
	default:
		t.Error("no notice emitted")
	}
}

func TestTogglePlayPauseDuringLoadingFlipsIntent(t *testing.T) {
	c, _ := newTestController(t)

	c.Append(tr("a"))
	c.TogglePlayPause() // cancel the pending start

	c.handleEvent(metadataReady("a", time.Minute))

	if st := c.State(); st.Status != StatusPaused {
		t.Errorf("status = %v, want %v", st.Status, StatusPaused)
	}
}

func TestPauseAndResume(t *testing.T) {
	c, m := newTestController(t)

	c.Append(tr("a"))
	c.handleEvent(metadataReady("a", time.Minute))

	c.TogglePlayPause()
	if st := c.State(); st.Status != StatusPaused {
		t.Fatalf("status = %v, want %v", st.Status, StatusPaused)
	}
	if got := m.PauseCalls(); got != 1 {
		t.Errorf("pause calls = %d, want 1", got)
	}

	c.TogglePlayPause()
	if st := c.State(); st.Status != StatusPlaying {
		t.Errorf("status = %v, want %v", st.Status, StatusPlaying)
	}
	if got := m.PlayCalls(); got != 2 {
		t.Errorf("play calls = %d, want 2", got)
	}
	// Resume must not reload the stream.
	if got := len(m.LoadCalls()); got != 1 {
		t.Errorf("load calls = %d, want 1", got)
	}
}

func TestSeekRequiresKnownDuration(t *testing.T) {
	c, m := newTestController(t)

	c.Append(tr("a"))
	if err := c.SeekTo(10 * time.Second); !errors.Is(err, ErrNotSeekable) {
		t.Errorf("SeekTo() before metadata error = %v, want %v", err, ErrNotSeekable)
	}

	c.handleEvent(metadataReady("a", time.Minute))

	if err := c.SeekTo(10 * time.Minute); err != nil {
		t.Fatalf("SeekTo() error = %v", err)
	}
	seeks := m.SeekCalls()
	if got := seeks[len(seeks)-1]; got != time.Minute {
		t.Errorf("seek position = %v, want clamped to %v", got, time.Minute)
	}
	if err := c.SeekTo(-5 * time.Second); err != nil {
		t.Fatalf("SeekTo() error = %v", err)
	}
	seeks = m.SeekCalls()
	if got := seeks[len(seeks)-1]; got != 0 {
		t.Errorf("seek position = %v, want clamped to 0", got)
	}
}

func TestSeekDuringLoadRejectedDespiteDurationHint(t *testing.T) {
	c, m := newTestController(t)

	hinted := tr("a")
	hinted.DurationHint = 4 * time.Minute
	c.Append(hinted)

	if err := c.SeekTo(10 * time.Second); !errors.Is(err, ErrNotSeekable) {
		t.Errorf("SeekTo() during load error = %v, want %v", err, ErrNotSeekable)
	}
	if got := len(m.SeekCalls()); got != 0 {
		t.Errorf("seek calls = %d, want 0", got)
	}

	c.handleEvent(metadataReady("a", 4*time.Minute))
	if err := c.SeekTo(10 * time.Second); err != nil {
		t.Fatalf("SeekTo() after metadata error = %v", err)
	}
}

func TestSetVolumeClampsAndUnmutes(t *testing.T) {
	c, m := newTestController(t)

	c.SetVolume(1.5)
	if st := c.State(); st.Volume != 1 {
		t.Errorf("volume = %v, want 1", st.Volume)
	}

	c.ToggleMute()
	if st := c.State(); !st.Muted {
		t.Fatal("not muted after ToggleMute")
	}

	c.SetVolume(0.8)
	st := c.State()
	if st.Muted {
		t.Error("still muted after raising volume")
	}
	if st.Volume != 0.8 {
		t.Errorf("volume = %v, want 0.8", st.Volume)
	}
	muted := m.MutedCalls()
	if got := muted[len(muted)-1]; got {
		t.Error("backend left muted")
	}
}

func TestUnmuteRestoresVolumeWhenZero(t *testing.T) {
	c, _ := newTestController(t)

	c.SetVolume(0)
	c.ToggleMute()
	c.ToggleMute()

	st := c.State()
	if st.Muted {
		t.Error("still muted")
	}
	if st.Volume != defaultVolume {
		t.Errorf("volume = %v, want %v", st.Volume, defaultVolume)
	}
}

func TestCycleRepeatOrder(t *testing.T) {
	c, _ := newTestController(t)

	want := []RepeatMode{RepeatAll, RepeatOne, RepeatOff}
	for _, w := range want {
		if got := c.CycleRepeat(); got != w {
			t.Errorf("CycleRepeat() = %v, want %v", got, w)
		}
	}
}

func TestToggleShuffleOnlyShufflesOnEnable(t *testing.T) {
	c, _ := newTestController(t)

	c.Append(tr("a"))
	c.handleEvent(metadataReady("a", time.Minute))
	for _, id := range []string{"b", "c", "d"} {
		c.Append(tr(id))
	}

	if !c.ToggleShuffle() {
		t.Fatal("shuffle not enabled")
	}
	if st := c.State(); st.Track == nil || st.Track.ID != "a" {
		t.Errorf("current track changed by shuffle: %v", st.Track)
	}
	if c.ToggleShuffle() {
		t.Fatal("shuffle not disabled")
	}
}

func TestClearArchivesQueueAndGoesIdle(t *testing.T) {
	c, m := newTestController(t)

	c.Append(tr("a"))
	c.handleEvent(metadataReady("a", time.Minute))
	c.Append(tr("b"))

	c.Clear()

	st := c.State()
	if st.Status != StatusIdle || st.Track != nil {
		t.Errorf("state = status %v track %v, want idle nil", st.Status, st.Track)
	}
	if got := c.QueueLen(); got != 0 {
		t.Errorf("queue length = %d, want 0", got)
	}
	if got := m.StopCalls(); got != 1 {
		t.Errorf("stop calls = %d, want 1", got)
	}

	// The cleared queue can come back.
	if err := c.RestorePrevious(); err != nil {
		t.Fatalf("RestorePrevious() error = %v", err)
	}
	if got := c.QueueLen(); got != 2 {
		t.Errorf("restored queue length = %d, want 2", got)
	}
	if got := c.QueueIndex(); got != 0 {
		t.Errorf("restored index = %d, want 0", got)
	}
}

func TestReplaceAllStartsAtRequestedIndex(t *testing.T) {
	c, m := newTestController(t)

	c.Append(tr("a"))
	c.handleEvent(metadataReady("a", time.Minute))

	if err := c.ReplaceAll([]track.Track{tr("x"), tr("y")}, 1); err != nil {
		t.Fatalf("ReplaceAll() error = %v", err)
	}

	st := c.State()
	if st.Index != 1 || st.Status != StatusLoading {
		t.Errorf("state = index %d status %v, want index 1 loading", st.Index, st.Status)
	}
	calls := m.LoadCalls()
	if got := calls[len(calls)-1].TrackID; got != "y" {
		t.Errorf("last load = %q, want %q", got, "y")
	}
}

func TestHistoryRecordsPreviouslyCurrentTracks(t *testing.T) {
	c, _ := newTestController(t)

	c.Append(tr("a"))
	c.handleEvent(metadataReady("a", time.Minute))
	c.Append(tr("b"))
	c.handleEvent(backend.Event{Kind: backend.EventEnded, TrackID: "a"})

	hist := c.History()
	if len(hist) != 1 || hist[0].ID != "a" {
		t.Errorf("history = %v, want [a]", hist)
	}
}

func TestRestoreRebuildsSessionWithoutAutoplay(t *testing.T) {
	c, m := newTestController(t)

	c.Restore([]track.Track{tr("a"), tr("b")}, 1, RepeatAll, true, 0.4, false)

	st := c.State()
	if st.Status != StatusPaused {
		t.Errorf("status = %v, want %v", st.Status, StatusPaused)
	}
	if st.Index != 1 || st.Track == nil || st.Track.ID != "b" {
		t.Errorf("state = index %d track %v, want index 1 track b", st.Index, st.Track)
	}
	if st.Repeat != RepeatAll || !st.Shuffle {
		t.Errorf("modes = %v shuffle %v, want repeat-all shuffled", st.Repeat, st.Shuffle)
	}
	if st.Volume != 0.4 {
		t.Errorf("volume = %v, want 0.4", st.Volume)
	}
	if got := len(m.LoadCalls()); got != 0 {
		t.Errorf("load calls = %d, want 0 (no autoplay)", got)
	}
}
