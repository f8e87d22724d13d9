package store

import (
	"testing"
	"time"

	"github.com/harmonia-music/harmonia/internal/track"
)

// setupTestStore creates a store backed by an in-memory database.
func setupTestStore(t *testing.T) *Manager {
	t.Helper()

	m, err := OpenPath(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func testTrack(id string) track.Track {
	return track.Track{
		ID:           id,
		Title:        "Title " + id,
		Artists:      []string{"Artist A", "Artist B"},
		ArtworkURL:   "https://img.example.com/" + id + ".jpg",
		StreamURL:    "https://cdn.example.com/" + id + ".mp3",
		DurationHint: 3 * time.Minute,
	}
}

func TestGetSession_Empty(t *testing.T) {
	m := setupTestStore(t)

	s, err := m.GetSession()
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if s.CurrentIndex != -1 {
		t.Errorf("current index = %d, want -1", s.CurrentIndex)
	}
	if len(s.Tracks) != 0 {
		t.Errorf("tracks = %d, want 0", len(s.Tracks))
	}
}

func TestSaveAndGetSession(t *testing.T) {
	m := setupTestStore(t)

	saved := Session{
		Tracks:       []track.Track{testTrack("t1"), testTrack("t2")},
		CurrentIndex: 1,
		RepeatMode:   2,
		Shuffle:      true,
		Volume:       0.4,
		Muted:        true,
	}
	if err := m.SaveSession(saved); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	got, err := m.GetSession()
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.CurrentIndex != 1 || got.RepeatMode != 2 || !got.Shuffle {
		t.Errorf("state = %+v, want index 1 repeat 2 shuffle", got)
	}
	if got.Volume != 0.4 || !got.Muted {
		t.Errorf("volume = %v muted %v, want 0.4 muted", got.Volume, got.Muted)
	}
	if len(got.Tracks) != 2 {
		t.Fatalf("tracks = %d, want 2", len(got.Tracks))
	}
	tr := got.Tracks[0]
	if tr.ID != "t1" || tr.Title != "Title t1" {
		t.Errorf("track = %+v, want t1", tr)
	}
	if len(tr.Artists) != 2 || tr.Artists[0] != "Artist A" {
		t.Errorf("artists = %v, want [Artist A, Artist B]", tr.Artists)
	}
	if tr.DurationHint != 3*time.Minute {
		t.Errorf("duration = %v, want 3m", tr.DurationHint)
	}
}

func TestSaveSessionReplacesPrevious(t *testing.T) {
	m := setupTestStore(t)

	if err := m.SaveSession(Session{Tracks: []track.Track{testTrack("old")}, CurrentIndex: 0}); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}
	if err := m.SaveSession(Session{Tracks: []track.Track{testTrack("new")}, CurrentIndex: 0}); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	got, err := m.GetSession()
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if len(got.Tracks) != 1 || got.Tracks[0].ID != "new" {
		t.Errorf("tracks = %v, want only the new one", got.Tracks)
	}
}

func TestSaveVolume(t *testing.T) {
	m := setupTestStore(t)

	if err := m.SaveVolume(0.25, true); err != nil {
		t.Fatalf("SaveVolume failed: %v", err)
	}

	s, err := m.GetSession()
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if s.Volume != 0.25 || !s.Muted {
		t.Errorf("volume = %v muted %v, want 0.25 muted", s.Volume, s.Muted)
	}
}
