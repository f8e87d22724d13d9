package store

import (
	"database/sql"
)

const currentSchemaVersion = 2

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS session_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			current_index INTEGER NOT NULL DEFAULT -1,
			repeat_mode INTEGER NOT NULL DEFAULT 0,
			shuffle INTEGER NOT NULL DEFAULT 0,
			volume REAL NOT NULL DEFAULT 0.7,
			muted INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS session_tracks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			position INTEGER NOT NULL,
			track_id TEXT NOT NULL,
			title TEXT NOT NULL,
			artists TEXT NOT NULL,
			artwork_url TEXT,
			stream_url TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			UNIQUE(position)
		);

		CREATE TABLE IF NOT EXISTS playlists (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS playlist_tracks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			playlist_id TEXT NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			track_id TEXT NOT NULL,
			title TEXT NOT NULL,
			artists TEXT NOT NULL,
			artwork_url TEXT,
			stream_url TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			UNIQUE(playlist_id, position)
		);

		CREATE INDEX IF NOT EXISTS idx_playlist_tracks_playlist ON playlist_tracks(playlist_id, position);
		CREATE INDEX IF NOT EXISTS idx_playlists_updated ON playlists(updated_at DESC);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	if err != nil {
		return err
	}

	// Migration: volume columns were added after the first release.
	_, _ = db.Exec(`ALTER TABLE session_state ADD COLUMN volume REAL NOT NULL DEFAULT 0.7`)
	_, _ = db.Exec(`ALTER TABLE session_state ADD COLUMN muted INTEGER NOT NULL DEFAULT 0`)

	return nil
}
