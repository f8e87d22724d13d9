package backend

import (
	"sync"
	"time"
)

// Mock is a test double for Backend. Commands are recorded; events are
// emitted on demand through the Emit helpers.
type Mock struct {
	mu sync.Mutex

	loadErr error
	playErr error

	loadCalls   []LoadCall
	playCalls   int
	pauseCalls  int
	stopCalls   int
	seekCalls   []time.Duration
	volumeCalls []float64
	mutedCalls  []bool

	events chan Event
	closed bool
}

// LoadCall records one Load invocation.
type LoadCall struct {
	TrackID   string
	StreamURL string
}

// NewMock creates a mock backend for testing.
func NewMock() *Mock {
	return &Mock{
		events: make(chan Event, 64),
	}
}

func (m *Mock) Load(trackID, streamURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadCalls = append(m.loadCalls, LoadCall{TrackID: trackID, StreamURL: streamURL})
	return m.loadErr
}

func (m *Mock) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCalls++
	return m.playErr
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pauseCalls++
}

func (m *Mock) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopCalls++
}

func (m *Mock) Seek(pos time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekCalls = append(m.seekCalls, pos)
}

func (m *Mock) SetVolume(level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volumeCalls = append(m.volumeCalls, level)
}

func (m *Mock) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mutedCalls = append(m.mutedCalls, muted)
}

func (m *Mock) Events() <-chan Event {
	return m.events
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.events)
	}
	return nil
}

// Test helpers

func (m *Mock) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

func (m *Mock) SetPlayError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playErr = err
}

func (m *Mock) LoadCalls() []LoadCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]LoadCall, len(m.loadCalls))
	copy(calls, m.loadCalls)
	return calls
}

func (m *Mock) PlayCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playCalls
}

func (m *Mock) PauseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pauseCalls
}

func (m *Mock) StopCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopCalls
}

func (m *Mock) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]time.Duration, len(m.seekCalls))
	copy(calls, m.seekCalls)
	return calls
}

func (m *Mock) VolumeCalls() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]float64, len(m.volumeCalls))
	copy(calls, m.volumeCalls)
	return calls
}

func (m *Mock) MutedCalls() []bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]bool, len(m.mutedCalls))
	copy(calls, m.mutedCalls)
	return calls
}

// EmitMetadataReady simulates a successful load reporting its duration.
func (m *Mock) EmitMetadataReady(trackID string, duration time.Duration) {
	m.events <- Event{Kind: EventMetadataReady, TrackID: trackID, Duration: duration}
}

// EmitTimeUpdate simulates a position report.
func (m *Mock) EmitTimeUpdate(trackID string, pos time.Duration) {
	m.events <- Event{Kind: EventTimeUpdate, TrackID: trackID, Position: pos}
}

// EmitCanPlay simulates the stream becoming ready.
func (m *Mock) EmitCanPlay(trackID string) {
	m.events <- Event{Kind: EventCanPlay, TrackID: trackID}
}

// EmitEnded simulates the stream playing to completion.
func (m *Mock) EmitEnded(trackID string) {
	m.events <- Event{Kind: EventEnded, TrackID: trackID}
}

// EmitError simulates a load or playback failure.
func (m *Mock) EmitError(trackID string, kind ErrorKind, err error) {
	m.events <- Event{Kind: EventError, TrackID: trackID, ErrKind: kind, Err: err}
}

// Verify Mock implements Backend at compile time.
var _ Backend = (*Mock)(nil)
