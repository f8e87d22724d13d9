package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	dbutil "github.com/harmonia-music/harmonia/internal/db"
	"github.com/harmonia-music/harmonia/internal/track"
)

// Session is the saved playback session: the queue plus the playback
// modes in effect when the app last closed.
type Session struct {
	Tracks       []track.Track
	CurrentIndex int
	RepeatMode   int
	Shuffle      bool
	Volume       float64
	Muted        bool
}

// GetSession returns the saved session. A fresh database yields an
// empty session with no track selected.
func (m *Manager) GetSession() (*Session, error) {
	var s Session
	row := m.db.QueryRow(`
		SELECT current_index, repeat_mode, shuffle, volume, muted
		FROM session_state WHERE id = 1
	`)
	err := row.Scan(&s.CurrentIndex, &s.RepeatMode, &s.Shuffle, &s.Volume, &s.Muted)
	if errors.Is(err, sql.ErrNoRows) {
		return &Session{CurrentIndex: -1, Volume: 0.7}, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := m.db.Query(`
		SELECT track_id, title, artists, artwork_url, stream_url, duration_ms
		FROM session_tracks
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		s.Tracks = append(s.Tracks, t)
	}
	return &s, rows.Err()
}

// SaveSession replaces the stored session atomically.
func (m *Manager) SaveSession(s Session) error {
	return dbutil.WithTx(m.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM session_tracks`); err != nil {
			return err
		}

		_, err := tx.Exec(`
			INSERT INTO session_state (id, current_index, repeat_mode, shuffle, volume, muted)
			VALUES (1, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				current_index = excluded.current_index,
				repeat_mode = excluded.repeat_mode,
				shuffle = excluded.shuffle,
				volume = excluded.volume,
				muted = excluded.muted
		`, s.CurrentIndex, s.RepeatMode, s.Shuffle, s.Volume, s.Muted)
		if err != nil {
			return err
		}

		stmt, err := tx.Prepare(`
			INSERT INTO session_tracks (position, track_id, title, artists, artwork_url, stream_url, duration_ms)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, t := range s.Tracks {
			artists, err := json.Marshal(t.Artists)
			if err != nil {
				return err
			}
			_, err = stmt.Exec(i, t.ID, t.Title, string(artists), t.ArtworkURL, t.StreamURL, t.DurationHint.Milliseconds())
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveVolume persists just the volume level.
func (m *Manager) SaveVolume(volume float64, muted bool) error {
	_, err := m.db.Exec(`
		INSERT INTO session_state (id, current_index, repeat_mode, shuffle, volume, muted)
		VALUES (1, -1, 0, 0, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			volume = excluded.volume,
			muted = excluded.muted
	`, volume, muted)
	return err
}

// scanTrack reads one track row in column order track_id, title,
// artists, artwork_url, stream_url, duration_ms.
func scanTrack(rows *sql.Rows) (track.Track, error) {
	var t track.Track
	var artists string
	var artwork sql.NullString
	var durationMS int64

	if err := rows.Scan(&t.ID, &t.Title, &artists, &artwork, &t.StreamURL, &durationMS); err != nil {
		return track.Track{}, err
	}
	if err := json.Unmarshal([]byte(artists), &t.Artists); err != nil {
		return track.Track{}, err
	}
	t.ArtworkURL = dbutil.NullStringValue(artwork)
	t.DurationHint = time.Duration(durationMS) * time.Millisecond
	return t, nil
}
