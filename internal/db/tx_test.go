package db

import (
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(`CREATE TABLE entries (id INTEGER PRIMARY KEY, name TEXT)`); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	return db
}

func countEntries(t *testing.T, db *sql.DB) int {
	t.Helper()
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	return count
}

func TestWithTx_Commit(t *testing.T) {
	db := setupTestDB(t)

	err := WithTx(db, func(tx *sql.Tx) error {
		for _, name := range []string{"one", "two"} {
			if _, err := tx.Exec(`INSERT INTO entries (name) VALUES (?)`, name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithTx failed: %v", err)
	}

	if got := countEntries(t, db); got != 2 {
		t.Errorf("count = %d, want 2", got)
	}
}

func TestWithTx_RollbackOnError(t *testing.T) {
	db := setupTestDB(t)

	wantErr := errors.New("abort")
	err := WithTx(db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO entries (name) VALUES (?)`, "doomed"); err != nil {
			return err
		}
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("WithTx error = %v, want %v", err, wantErr)
	}

	if got := countEntries(t, db); got != 0 {
		t.Errorf("count = %d, want 0 (rolled back)", got)
	}
}

func TestNullStringValue(t *testing.T) {
	if got := NullStringValue(sql.NullString{String: "hello", Valid: true}); got != "hello" {
		t.Errorf("valid = %q, want %q", got, "hello")
	}
	if got := NullStringValue(sql.NullString{String: "hello", Valid: false}); got != "" {
		t.Errorf("invalid = %q, want empty", got)
	}
}
