package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
	"github.com/vibecheck-labs/vibecheck/internal/core/ports"
)

// PlaylistStore persists the local playlist records. Track membership is
// never stored locally; the songs column stays NULL and the external
// platform remains the source of truth.
type PlaylistStore struct {
	db *sql.DB
}

// compile-time interface assertion
var _ ports.PlaylistRepository = (*PlaylistStore)(nil)

func (s *PlaylistStore) Insert(ctx context.Context, p domain.Playlist) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO playlists (id, name, created_by, songs, image, external_id, time_created, description, privacy)
		VALUES (?, ?, ?, NULL, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.CreatedBy, p.Image, p.ExternalID, p.TimeCreated, p.Description, p.Privacy)
	if err != nil {
		return fmt.Errorf("failed to insert playlist: %w", err)
	}
	return nil
}

func (s *PlaylistStore) GetByID(ctx context.Context, id string) (domain.Playlist, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, created_by, songs, image, external_id, time_created, description, privacy
		FROM playlists WHERE id = ?
	`, id)

	var p domain.Playlist
	var songs sql.NullString
	err := row.Scan(&p.ID, &p.Name, &p.CreatedBy, &songs, &p.Image, &p.ExternalID, &p.TimeCreated, &p.Description, &p.Privacy)
	if err == sql.ErrNoRows {
		return domain.Playlist{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Playlist{}, fmt.Errorf("failed to load playlist: %w", err)
	}

	if songs.Valid {
		p.Songs, err = unmarshalStrings(songs.String)
		if err != nil {
			return domain.Playlist{}, fmt.Errorf("failed to decode songs: %w", err)
		}
	}
	return p, nil
}
