package store

import (
	"testing"

	"github.com/harmonia-music/harmonia/internal/track"
)

func TestCreateAndListPlaylists(t *testing.T) {
	m := setupTestStore(t)

	p, err := m.CreatePlaylist("Morning Mix")
	if err != nil {
		t.Fatalf("CreatePlaylist failed: %v", err)
	}
	if p.ID == "" {
		t.Fatal("playlist ID is empty")
	}

	list, err := m.ListPlaylists()
	if err != nil {
		t.Fatalf("ListPlaylists failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("playlists = %d, want 1", len(list))
	}
	if list[0].Name != "Morning Mix" || list[0].TrackCount != 0 {
		t.Errorf("playlist = %+v, want Morning Mix with 0 tracks", list[0])
	}
}

func TestSetAndGetPlaylistTracks(t *testing.T) {
	m := setupTestStore(t)

	p, err := m.CreatePlaylist("Focus")
	if err != nil {
		t.Fatalf("CreatePlaylist failed: %v", err)
	}

	tracks := []track.Track{testTrack("a"), testTrack("b"), testTrack("c")}
	if err := m.SetPlaylistTracks(p.ID, tracks); err != nil {
		t.Fatalf("SetPlaylistTracks failed: %v", err)
	}

	got, err := m.GetPlaylistTracks(p.ID)
	if err != nil {
		t.Fatalf("GetPlaylistTracks failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("tracks = %d, want 3", len(got))
	}
	for i, id := range []string{"a", "b", "c"} {
		if got[i].ID != id {
			t.Errorf("tracks[%d] = %q, want %q", i, got[i].ID, id)
		}
	}

	list, err := m.ListPlaylists()
	if err != nil {
		t.Fatalf("ListPlaylists failed: %v", err)
	}
	if list[0].TrackCount != 3 {
		t.Errorf("track count = %d, want 3", list[0].TrackCount)
	}
}

func TestAddPlaylistTrackAppends(t *testing.T) {
	m := setupTestStore(t)

	p, err := m.CreatePlaylist("Commute")
	if err != nil {
		t.Fatalf("CreatePlaylist failed: %v", err)
	}
	if err := m.SetPlaylistTracks(p.ID, []track.Track{testTrack("a")}); err != nil {
		t.Fatalf("SetPlaylistTracks failed: %v", err)
	}

	if err := m.AddPlaylistTrack(p.ID, testTrack("b")); err != nil {
		t.Fatalf("AddPlaylistTrack failed: %v", err)
	}
	if err := m.AddPlaylistTrack(p.ID, testTrack("c")); err != nil {
		t.Fatalf("AddPlaylistTrack failed: %v", err)
	}

	got, err := m.GetPlaylistTracks(p.ID)
	if err != nil {
		t.Fatalf("GetPlaylistTracks failed: %v", err)
	}
	for i, id := range []string{"a", "b", "c"} {
		if got[i].ID != id {
			t.Errorf("tracks[%d] = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestFindPlaylistByName(t *testing.T) {
	m := setupTestStore(t)

	created, err := m.CreatePlaylist("Evenings")
	if err != nil {
		t.Fatalf("CreatePlaylist failed: %v", err)
	}

	p, err := m.FindPlaylistByName("Evenings")
	if err != nil {
		t.Fatalf("FindPlaylistByName failed: %v", err)
	}
	if p == nil || p.ID != created.ID {
		t.Errorf("found = %+v, want ID %s", p, created.ID)
	}

	p, err = m.FindPlaylistByName("Mornings")
	if err != nil {
		t.Fatalf("FindPlaylistByName failed: %v", err)
	}
	if p != nil {
		t.Errorf("found = %+v, want nil for unknown name", p)
	}
}

func TestRenamePlaylist(t *testing.T) {
	m := setupTestStore(t)

	p, err := m.CreatePlaylist("Old Name")
	if err != nil {
		t.Fatalf("CreatePlaylist failed: %v", err)
	}
	if err := m.RenamePlaylist(p.ID, "New Name"); err != nil {
		t.Fatalf("RenamePlaylist failed: %v", err)
	}

	list, err := m.ListPlaylists()
	if err != nil {
		t.Fatalf("ListPlaylists failed: %v", err)
	}
	if list[0].Name != "New Name" {
		t.Errorf("name = %q, want %q", list[0].Name, "New Name")
	}
}

func TestDeletePlaylistCascades(t *testing.T) {
	m := setupTestStore(t)

	p, err := m.CreatePlaylist("Doomed")
	if err != nil {
		t.Fatalf("CreatePlaylist failed: %v", err)
	}
	if err := m.SetPlaylistTracks(p.ID, []track.Track{testTrack("a")}); err != nil {
		t.Fatalf("SetPlaylistTracks failed: %v", err)
	}
	if err := m.DeletePlaylist(p.ID); err != nil {
		t.Fatalf("DeletePlaylist failed: %v", err)
	}

	list, err := m.ListPlaylists()
	if err != nil {
		t.Fatalf("ListPlaylists failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("playlists = %d, want 0", len(list))
	}

	tracks, err := m.GetPlaylistTracks(p.ID)
	if err != nil {
		t.Fatalf("GetPlaylistTracks failed: %v", err)
	}
	if len(tracks) != 0 {
		t.Errorf("orphan tracks = %d, want 0", len(tracks))
	}
}
