package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	dbutil "github.com/harmonia-music/harmonia/internal/db"
	"github.com/harmonia-music/harmonia/internal/track"
)

// Playlist is playlist metadata without its tracks.
type Playlist struct {
	ID         string
	Name       string
	CreatedAt  int64
	UpdatedAt  int64
	TrackCount int
}

// CreatePlaylist creates an empty playlist and returns it.
func (m *Manager) CreatePlaylist(name string) (*Playlist, error) {
	now := time.Now().Unix()
	p := &Playlist{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := m.db.Exec(`
		INSERT INTO playlists (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, p.ID, p.Name, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// RenamePlaylist renames a playlist.
func (m *Manager) RenamePlaylist(id, name string) error {
	_, err := m.db.Exec(`
		UPDATE playlists SET name = ?, updated_at = ? WHERE id = ?
	`, name, time.Now().Unix(), id)
	return err
}

// DeletePlaylist deletes a playlist and its tracks.
func (m *Manager) DeletePlaylist(id string) error {
	_, err := m.db.Exec(`DELETE FROM playlists WHERE id = ?`, id)
	return err
}

// ListPlaylists returns all playlists, most recently updated first.
func (m *Manager) ListPlaylists() ([]Playlist, error) {
	rows, err := m.db.Query(`
		SELECT p.id, p.name, p.created_at, p.updated_at, COUNT(t.id)
		FROM playlists p
		LEFT JOIN playlist_tracks t ON t.playlist_id = p.id
		GROUP BY p.id
		ORDER BY p.updated_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var playlists []Playlist
	for rows.Next() {
		var p Playlist
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt, &p.TrackCount); err != nil {
			return nil, err
		}
		playlists = append(playlists, p)
	}
	return playlists, rows.Err()
}

// FindPlaylistByName returns the playlist with the given name, or nil
// when no playlist has it.
func (m *Manager) FindPlaylistByName(name string) (*Playlist, error) {
	row := m.db.QueryRow(`
		SELECT p.id, p.name, p.created_at, p.updated_at, COUNT(t.id)
		FROM playlists p
		LEFT JOIN playlist_tracks t ON t.playlist_id = p.id
		WHERE p.name = ?
		GROUP BY p.id
	`, name)
	var p Playlist
	if err := row.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt, &p.TrackCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// AddPlaylistTrack appends a track at the end of a playlist.
func (m *Manager) AddPlaylistTrack(id string, t track.Track) error {
	return dbutil.WithTx(m.db, func(tx *sql.Tx) error {
		var next int
		err := tx.QueryRow(`
			SELECT COALESCE(MAX(position) + 1, 0) FROM playlist_tracks WHERE playlist_id = ?
		`, id).Scan(&next)
		if err != nil {
			return err
		}

		artists, err := json.Marshal(t.Artists)
		if err != nil {
			return err
		}
		_, err = tx.Exec(`
			INSERT INTO playlist_tracks (playlist_id, position, track_id, title, artists, artwork_url, stream_url, duration_ms)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, id, next, t.ID, t.Title, string(artists), t.ArtworkURL, t.StreamURL, t.DurationHint.Milliseconds())
		if err != nil {
			return err
		}

		_, err = tx.Exec(`UPDATE playlists SET updated_at = ? WHERE id = ?`, time.Now().Unix(), id)
		return err
	})
}

// GetPlaylistTracks returns the tracks of a playlist in order.
func (m *Manager) GetPlaylistTracks(id string) ([]track.Track, error) {
	rows, err := m.db.Query(`
		SELECT track_id, title, artists, artwork_url, stream_url, duration_ms
		FROM playlist_tracks
		WHERE playlist_id = ?
		ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []track.Track
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

// SetPlaylistTracks replaces the tracks of a playlist atomically.
func (m *Manager) SetPlaylistTracks(id string, tracks []track.Track) error {
	return dbutil.WithTx(m.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM playlist_tracks WHERE playlist_id = ?`, id); err != nil {
			return err
		}

		stmt, err := tx.Prepare(`
			INSERT INTO playlist_tracks (playlist_id, position, track_id, title, artists, artwork_url, stream_url, duration_ms)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, t := range tracks {
			artists, err := json.Marshal(t.Artists)
			if err != nil {
				return err
			}
			_, err = stmt.Exec(id, i, t.ID, t.Title, string(artists), t.ArtworkURL, t.StreamURL, t.DurationHint.Milliseconds())
			if err != nil {
				return err
			}
		}

		_, err = tx.Exec(`UPDATE playlists SET updated_at = ? WHERE id = ?`, time.Now().Unix(), id)
		return err
	})
}
