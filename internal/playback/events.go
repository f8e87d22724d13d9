package playback

import (
	"time"

	"github.com/harmonia-music/harmonia/internal/track"
)

// StatusChange is emitted when the playback status changes.
type StatusChange struct {
	Previous Status
	Current  Status
}

// TrackChange is emitted when the current track changes. Navigation and
// automatic advance both emit it; repeated time updates never do.
type TrackChange struct {
	Previous      *track.Track
	Current       *track.Track
	PreviousIndex int
	Index         int
}

// QueueChange is emitted when the queue contents change.
type QueueChange struct {
	Tracks []track.Track
	Index  int
}

// PositionChange is emitted on seeks and backend time updates.
type PositionChange struct {
	Position time.Duration
	Duration time.Duration
}

// ModeChange is emitted when repeat or shuffle mode changes.
type ModeChange struct {
	Repeat  RepeatMode
	Shuffle bool
}

// VolumeChange is emitted when volume or mute state changes.
type VolumeChange struct {
	Volume float64
	Muted  bool
}

// Notice is a user-facing message: confirmations, the empty-queue
// prompt, blocked-playback and terminal error notices.
type Notice struct {
	Text  string
	IsErr bool
}
