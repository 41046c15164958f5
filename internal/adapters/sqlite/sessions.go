package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
	"github.com/vibecheck-labs/vibecheck/internal/core/ports"
)

// SessionStore persists swipe sessions, one row per session.
type SessionStore struct {
	db *sql.DB
}

// compile-time interface assertion
var _ ports.SessionRepository = (*SessionStore)(nil)

func (s *SessionStore) Insert(ctx context.Context, entry domain.SessionEntry) error {
	results, err := json.Marshal(entry.SwipeResults)
	if err != nil {
		return fmt.Errorf("failed to encode swipe results: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, mode, swipe_results, playlist_id, completed_at, created_at, revision)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0)
	`, entry.ID, entry.UserID, string(entry.Mode), string(results), nullString(entry.PlaylistID), nullTime(entry.CompletedAt), entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (s *SessionStore) GetByID(ctx context.Context, userID, sessionID string) (domain.SessionEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, mode, swipe_results, playlist_id, completed_at, created_at, revision
		FROM sessions WHERE id = ? AND user_id = ?
	`, sessionID, userID)

	entry, err := scanSession(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.SessionEntry{}, domain.ErrNotFound
		}
		return domain.SessionEntry{}, fmt.Errorf("failed to load session: %w", err)
	}
	return entry, nil
}

func (s *SessionStore) ListByUser(ctx context.Context, userID string) ([]domain.SessionEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, mode, swipe_results, playlist_id, completed_at, created_at, revision
		FROM sessions WHERE user_id = ? ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var entries []domain.SessionEntry
	for rows.Next() {
		entry, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}
	return entries, nil
}

// Update writes the entry back through a compare-and-swap on the revision
// column, bumping it by one. A stale revision yields
// domain.ErrRevisionConflict; a missing row yields domain.ErrNotFound.
func (s *SessionStore) Update(ctx context.Context, entry domain.SessionEntry) error {
	results, err := json.Marshal(entry.SwipeResults)
	if err != nil {
		return fmt.Errorf("failed to encode swipe results: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE sessions
		SET swipe_results = ?, playlist_id = ?, completed_at = ?, revision = revision + 1
		WHERE id = ? AND user_id = ? AND revision = ?
	`, string(results), nullString(entry.PlaylistID), nullTime(entry.CompletedAt), entry.ID, entry.UserID, entry.Revision)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 1 {
		return nil
	}

	// Zero rows: either the row is gone or the revision moved.
	var exists int
	err = s.db.QueryRowContext(ctx, "SELECT 1 FROM sessions WHERE id = ? AND user_id = ?", entry.ID, entry.UserID).Scan(&exists)
	if err == sql.ErrNoRows {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check session: %w", err)
	}
	return domain.ErrRevisionConflict
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (domain.SessionEntry, error) {
	var entry domain.SessionEntry
	var mode string
	var rawResults string
	var playlistID sql.NullString
	var completedAt sql.NullTime

	if err := row.Scan(&entry.ID, &entry.UserID, &mode, &rawResults, &playlistID, &completedAt, &entry.CreatedAt, &entry.Revision); err != nil {
		return domain.SessionEntry{}, err
	}

	entry.Mode = domain.Mode(mode)
	if playlistID.Valid {
		entry.PlaylistID = playlistID.String
	}
	if completedAt.Valid {
		t := completedAt.Time
		entry.CompletedAt = &t
	}

	entry.SwipeResults = []domain.SwipeResult{}
	if rawResults != "" {
		if err := json.Unmarshal([]byte(rawResults), &entry.SwipeResults); err != nil {
			return domain.SessionEntry{}, fmt.Errorf("failed to decode swipe results: %w", err)
		}
	}
	return entry, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
