package queue

import "errors"

// Sentinel errors returned by queue operations. All are synchronous,
// local and recoverable; callers are expected to check them.
var (
	// ErrInvalidTrack is returned when a track without a stream URL is
	// offered for playback.
	ErrInvalidTrack = errors.New("track has no stream URL")

	// ErrIndexOutOfRange is returned for an index outside 0..Len()-1.
	ErrIndexOutOfRange = errors.New("queue index out of range")

	// ErrEmptyTracklist is returned when ReplaceAll is given no tracks.
	ErrEmptyTracklist = errors.New("tracklist is empty")

	// ErrNoHistory is returned by RestorePrevious when no superseded
	// queue has been archived.
	ErrNoHistory = errors.New("no previous queue to restore")
)
