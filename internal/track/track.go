// Package track defines the immutable playable unit shared by the queue,
// the playback controller, the catalog and the playlist store.
package track

import (
	"strings"
	"time"
)

// Track describes one playable unit. Tracks are produced by the catalog
// (or loaded from the playlist store) and never mutated by the engine.
type Track struct {
	ID           string        // stable within a session, unique per track
	Title        string
	Artists      []string      // ordered, first is the primary artist
	ArtworkURL   string        // optional
	DurationHint time.Duration // catalog estimate, superseded by backend metadata
	StreamURL    string        // empty means the track cannot be played
}

// Playable returns true if the track has a stream URL.
func (t Track) Playable() bool {
	return t.StreamURL != ""
}

// ArtistLine returns the artist names joined for display.
func (t Track) ArtistLine() string {
	return strings.Join(t.Artists, ", ")
}
