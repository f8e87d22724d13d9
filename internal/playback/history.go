package playback

import "github.com/harmonia-music/harmonia/internal/track"

// historySize bounds how many previously current tracks are remembered.
const historySize = 20

// TrackHistory keeps the most recently played tracks, newest first. It
// records cross-queue "what played before", distinct from the in-queue
// previous-index rule used by skip-previous.
type TrackHistory struct {
	tracks  []track.Track
	maxSize int
}

// NewTrackHistory creates a history holding at most maxSize tracks.
func NewTrackHistory(maxSize int) *TrackHistory {
	return &TrackHistory{maxSize: maxSize}
}

// Push records a track as the most recent, trimming the oldest beyond
// the bound.
func (h *TrackHistory) Push(t track.Track) {
	h.tracks = append([]track.Track{t}, h.tracks...)
	if len(h.tracks) > h.maxSize {
		h.tracks = h.tracks[:h.maxSize]
	}
}

// Tracks returns a copy of the history, newest first.
func (h *TrackHistory) Tracks() []track.Track {
	result := make([]track.Track, len(h.tracks))
	copy(result, h.tracks)
	return result
}

// Len returns the number of remembered tracks.
func (h *TrackHistory) Len() int {
	return len(h.tracks)
}
