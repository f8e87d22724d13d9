package playback

import (
	"time"

	"github.com/harmonia-music/harmonia/internal/track"
)

// State is a read-only snapshot of the playback engine, safe to hand to
// observers. Track is a copy of the current queue entry, or nil.
type State struct {
	Status     Status
	Track      *track.Track
	Index      int
	Position   time.Duration
	Duration   time.Duration
	Volume     float64
	Muted      bool
	Repeat     RepeatMode
	Shuffle    bool
	LastError  string
	RetryCount int
}
