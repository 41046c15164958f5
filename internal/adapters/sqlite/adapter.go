// Package sqlite provides the SQLite-backed implementation of the
// repository ports. Sessions are stored one row each with a revision
// counter, replacing the whole-array activity-log column the original data
// model used.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // driver
)

// Adapter owns the connection and exposes one store per repository port,
// all sharing the same handle.
type Adapter struct {
	db *sql.DB

	Sessions  *SessionStore
	Playlists *PlaylistStore
	Profiles  *ProfileStore
	Catalog   *CatalogStore
}

// NewAdapter creates a connection and runs the schema migration.
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{
		db:        db,
		Sessions:  &SessionStore{db: db},
		Playlists: &PlaylistStore{db: db},
		Profiles:  &ProfileStore{db: db},
		Catalog:   &CatalogStore{db: db},
	}

	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully.
func (a *Adapter) Close() error {
	return a.db.Close()
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		mode TEXT NOT NULL,
		swipe_results TEXT NOT NULL DEFAULT '[]',
		playlist_id TEXT,
		completed_at DATETIME,
		created_at DATETIME NOT NULL,
		revision INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id, created_at);

	CREATE TABLE IF NOT EXISTS playlists (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_by TEXT NOT NULL,
		songs TEXT,
		image TEXT NOT NULL,
		external_id TEXT NOT NULL,
		time_created DATETIME NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		privacy TEXT NOT NULL DEFAULT 'public'
	);

	CREATE TABLE IF NOT EXISTS profiles (
		user_id TEXT PRIMARY KEY,
		liked_artists TEXT NOT NULL DEFAULT '[]',
		disliked_artists TEXT NOT NULL DEFAULT '[]',
		liked_songs TEXT NOT NULL DEFAULT '[]',
		disliked_songs TEXT NOT NULL DEFAULT '[]'
	);

	CREATE TABLE IF NOT EXISTS tracks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		spotify_url TEXT,
		image_url TEXT,
		artist_ids TEXT NOT NULL DEFAULT '[]'
	);

	CREATE TABLE IF NOT EXISTS artists (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		genres TEXT NOT NULL DEFAULT '[]',
		popularity INTEGER NOT NULL DEFAULT 0,
		spotify_url TEXT,
		image_url TEXT
	);
	`
	_, err := a.db.Exec(query)
	return err
}

// marshalStrings encodes a string slice as a JSON column value. nil stays
// distinguishable from empty only where the column is nullable.
func marshalStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalStrings(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, err
	}
	return values, nil
}
