// Package playback implements the playback engine: a queue-driven
// state machine around a media backend. A single controller owns all
// mutable state; every operation and every backend event is folded in
// under one mutex, so observers always see consistent snapshots.
package playback

// Status is the playback state machine state.
//
// Transitions:
//
//	Idle    -> Loading   a track is selected and a load is issued
//	Loading -> Playing   stream ready with play intent set
//	Loading -> Paused    stream ready without play intent
//	Loading -> Errored   retries exhausted
//	Playing -> Paused    user pause, end of queue, blocked stream
//	Paused  -> Playing   user resume
//	Playing -> Loading   track change, mid-stream error retry
//	Errored -> Loading   manual retry
//	any     -> Idle      queue cleared or exhausted by removal
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusPlaying
	StatusPaused
	StatusErrored
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// IsActive reports whether a track is currently bound to the backend.
func (s Status) IsActive() bool {
	return s == StatusLoading || s == StatusPlaying || s == StatusPaused
}

// RepeatMode controls what happens when a track ends.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatAll
	RepeatOne
)

func (m RepeatMode) String() string {
	switch m {
	case RepeatAll:
		return "all"
	case RepeatOne:
		return "one"
	default:
		return "off"
	}
}

// Next cycles Off -> All -> One -> Off.
func (m RepeatMode) Next() RepeatMode {
	switch m {
	case RepeatOff:
		return RepeatAll
	case RepeatAll:
		return RepeatOne
	default:
		return RepeatOff
	}
}
