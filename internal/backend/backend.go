// Package backend defines the media backend contract: a single-stream
// audio sink driven by commands and observed through asynchronous
// events. The playback controller is its only consumer.
package backend

import "time"

// EventKind identifies the type of a backend event.
type EventKind int

const (
	// EventMetadataReady fires once a load has decoded enough of the
	// stream to know its duration.
	EventMetadataReady EventKind = iota
	// EventTimeUpdate fires periodically while audio is playing.
	EventTimeUpdate
	// EventCanPlay fires when the stream is ready to produce audio.
	EventCanPlay
	// EventEnded fires when the stream plays to completion.
	EventEnded
	// EventError fires when a load or playback fails.
	EventError
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventMetadataReady:
		return "MetadataReady"
	case EventTimeUpdate:
		return "TimeUpdate"
	case EventCanPlay:
		return "CanPlay"
	case EventEnded:
		return "Ended"
	case EventError:
		return "Error"
	default:
		return "Unknown"
	}
}

// ErrorKind classifies backend errors. The controller routes them
// differently: stream errors go through the retry policy, blocked
// errors are surfaced immediately (retrying a policy rejection is
// pointless).
type ErrorKind int

const (
	// ErrorStream is a network or decode failure.
	ErrorStream ErrorKind = iota
	// ErrorBlocked means the host refused playback (no audio device,
	// output claimed by another process). The user must retry manually.
	ErrorBlocked
)

// String returns the error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrorStream:
		return "StreamError"
	case ErrorBlocked:
		return "PlaybackBlocked"
	default:
		return "Unknown"
	}
}

// Event is a backend lifecycle event. Every event carries the ID of the
// track whose load produced it, so the controller can discard events
// that arrive late for a track that is no longer current.
type Event struct {
	Kind    EventKind
	TrackID string

	Position time.Duration // TimeUpdate
	Duration time.Duration // MetadataReady
	ErrKind  ErrorKind     // Error
	Err      error         // Error
}

// Backend wraps a single audio stream.
//
// Load begins an asynchronous fetch+decode of the given URL; its outcome
// arrives on Events as MetadataReady or Error tagged with trackID.
// Loading a new track discards the previous stream. Play, Pause, Seek
// and the volume commands act on the most recently loaded stream and
// are no-ops when nothing is loaded.
type Backend interface {
	Load(trackID, streamURL string) error
	Play() error
	Pause()
	Stop()
	Seek(pos time.Duration)
	SetVolume(level float64)
	SetMuted(muted bool)
	Events() <-chan Event
	Close() error
}
