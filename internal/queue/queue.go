// Package queue implements the ordered track sequence and its current
// position. It owns all queue-mutation invariants: indices stay
// contiguous, and the current index is -1 or a valid index at all times.
package queue

import (
	"math/rand/v2"

	"github.com/harmonia-music/harmonia/internal/track"
)

// archiveSize bounds how many superseded queues are kept for restore.
const archiveSize = 5

// Queue is an ordered sequence of tracks plus the current position.
// It carries no playback state; the controller decides what its
// mutations mean for the backend.
type Queue struct {
	tracks  []track.Track
	current int // -1 if nothing selected
	archive *Archive
}

// New creates a new empty queue.
func New() *Queue {
	return &Queue{
		current: -1,
		archive: NewArchive(archiveSize),
	}
}

// Current returns the currently selected track, or nil if none.
func (q *Queue) Current() *track.Track {
	if q.current < 0 || q.current >= len(q.tracks) {
		return nil
	}
	return &q.tracks[q.current]
}

// CurrentIndex returns the index of the selected track (-1 if none).
func (q *Queue) CurrentIndex() int {
	return q.current
}

// Append adds a track to the end of the queue. It reports whether the
// track became current (the queue was empty and nothing was selected),
// in which case the caller is expected to start playback.
func (q *Queue) Append(t track.Track) (becameCurrent bool, err error) {
	if !t.Playable() {
		return false, ErrInvalidTrack
	}
	wasIdle := len(q.tracks) == 0 && q.current == -1
	q.tracks = append(q.tracks, t)
	if wasIdle {
		q.current = 0
		return true, nil
	}
	return false, nil
}

// InsertNext inserts a track immediately after the current one, so it
// plays next. With nothing selected it behaves as Append.
func (q *Queue) InsertNext(t track.Track) (becameCurrent bool, err error) {
	if !t.Playable() {
		return false, ErrInvalidTrack
	}
	if q.current == -1 || len(q.tracks) == 0 {
		return q.Append(t)
	}
	at := q.current + 1
	q.tracks = append(q.tracks[:at], append([]track.Track{t}, q.tracks[at:]...)...)
	return false, nil
}

// RemoveAt removes the track at the given index and reports whether the
// removed track was the current one.
//
// Index adjustment: removing before the current index decrements it so
// the same track stays current. Removing the current track keeps the
// index value (now pointing at the next track), except when the removed
// track was the last element, where the index becomes -1.
func (q *Queue) RemoveAt(index int) (removedCurrent bool, err error) {
	if index < 0 || index >= len(q.tracks) {
		return false, ErrIndexOutOfRange
	}

	switch {
	case index < q.current:
		q.current--
	case index == q.current:
		removedCurrent = true
		if index == len(q.tracks)-1 {
			q.current = -1
		}
	}

	q.tracks = append(q.tracks[:index], q.tracks[index+1:]...)
	if len(q.tracks) == 0 {
		q.current = -1
	}
	return removedCurrent, nil
}

// ReplaceAll archives the existing queue (if non-empty), replaces it
// wholesale and selects startIndex (clamped into range).
func (q *Queue) ReplaceAll(tracks []track.Track, startIndex int) error {
	if len(tracks) == 0 {
		return ErrEmptyTracklist
	}
	if len(q.tracks) > 0 {
		q.archive.Push(q.tracks)
	}
	q.tracks = make([]track.Track, len(tracks))
	copy(q.tracks, tracks)

	if startIndex < 0 {
		startIndex = 0
	}
	if startIndex >= len(q.tracks) {
		startIndex = len(q.tracks) - 1
	}
	q.current = startIndex
	return nil
}

// RestorePrevious pops the most recently archived queue, makes it
// current and selects index 0.
func (q *Queue) RestorePrevious() error {
	prev, ok := q.archive.Pop()
	if !ok {
		return ErrNoHistory
	}
	q.tracks = prev
	q.current = 0
	return nil
}

// ShuffleRemaining applies a Fisher-Yates shuffle to the tracks strictly
// after the current index. Tracks at or before it keep their positions.
func (q *Queue) ShuffleRemaining() {
	rest := q.tracks[q.current+1:]
	for i := len(rest) - 1; i > 0; i-- {
		j := rand.IntN(i + 1)
		rest[i], rest[j] = rest[j], rest[i]
	}
}

// Clear archives the queue (if non-empty) and empties it.
func (q *Queue) Clear() {
	if len(q.tracks) > 0 {
		q.archive.Push(q.tracks)
	}
	q.tracks = nil
	q.current = -1
}

// JumpTo sets the current index. Returns the track at that position,
// or nil if the index is invalid.
func (q *Queue) JumpTo(index int) *track.Track {
	if index < 0 || index >= len(q.tracks) {
		return nil
	}
	q.current = index
	return q.Current()
}

// IndexOf returns the index of the track with the given ID, or -1.
func (q *Queue) IndexOf(id string) int {
	for i := range q.tracks {
		if q.tracks[i].ID == id {
			return i
		}
	}
	return -1
}

// HasNext returns true if there is a track after the current one.
func (q *Queue) HasNext() bool {
	return q.current < len(q.tracks)-1
}

// Tracks returns a copy of all tracks in the queue.
func (q *Queue) Tracks() []track.Track {
	result := make([]track.Track, len(q.tracks))
	copy(result, q.tracks)
	return result
}

// Len returns the number of tracks in the queue.
func (q *Queue) Len() int {
	return len(q.tracks)
}

// IsEmpty returns true if the queue has no tracks.
func (q *Queue) IsEmpty() bool {
	return len(q.tracks) == 0
}

// ArchiveLen returns the number of archived queues available to restore.
func (q *Queue) ArchiveLen() int {
	return q.archive.Len()
}
