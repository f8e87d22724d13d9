package queue

import "github.com/harmonia-music/harmonia/internal/track"

// Archive keeps a bounded stack of superseded queues so a wholesale
// replacement (or clear) can be undone with RestorePrevious.
type Archive struct {
	entries [][]track.Track
	maxSize int
}

// NewArchive creates an archive holding at most maxSize queues.
func NewArchive(maxSize int) *Archive {
	return &Archive{maxSize: maxSize}
}

// Push saves a snapshot of the given track list, discarding the oldest
// entry if the archive is full.
func (a *Archive) Push(tracks []track.Track) {
	snapshot := make([]track.Track, len(tracks))
	copy(snapshot, tracks)

	a.entries = append(a.entries, snapshot)
	if len(a.entries) > a.maxSize {
		excess := len(a.entries) - a.maxSize
		a.entries = a.entries[excess:]
	}
}

// Pop removes and returns the most recently archived queue.
// Returns false if the archive is empty.
func (a *Archive) Pop() ([]track.Track, bool) {
	if len(a.entries) == 0 {
		return nil, false
	}
	last := a.entries[len(a.entries)-1]
	a.entries = a.entries[:len(a.entries)-1]
	return last, true
}

// Len returns the number of archived queues.
func (a *Archive) Len() int {
	return len(a.entries)
}
