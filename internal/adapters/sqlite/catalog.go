package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
	"github.com/vibecheck-labs/vibecheck/internal/core/ports"
)

// CatalogStore caches track and artist metadata fetched from the platform.
// Rows are upserted: the platform copy always wins.
type CatalogStore struct {
	db *sql.DB
}

// compile-time interface assertion
var _ ports.CatalogRepository = (*CatalogStore)(nil)

func (s *CatalogStore) SaveTracks(ctx context.Context, tracks []domain.Track) error {
	if len(tracks) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin track save: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tracks (id, title, spotify_url, image_url, artist_ids)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			spotify_url = excluded.spotify_url,
			image_url = excluded.image_url,
			artist_ids = excluded.artist_ids
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare track save: %w", err)
	}
	defer stmt.Close()

	for _, t := range tracks {
		artistIDs, err := marshalStrings(t.ArtistIDs)
		if err != nil {
			return fmt.Errorf("failed to encode artist ids: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, t.ID, t.Title, t.SpotifyURL, t.ImageURL, artistIDs); err != nil {
			return fmt.Errorf("failed to save track %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit track save: %w", err)
	}
	return nil
}

func (s *CatalogStore) SaveArtists(ctx context.Context, artists []domain.Artist) error {
	if len(artists) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin artist save: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO artists (id, name, genres, popularity, spotify_url, image_url)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			genres = excluded.genres,
			popularity = excluded.popularity,
			spotify_url = excluded.spotify_url,
			image_url = excluded.image_url
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare artist save: %w", err)
	}
	defer stmt.Close()

	for _, a := range artists {
		genres, err := marshalStrings(a.Genres)
		if err != nil {
			return fmt.Errorf("failed to encode genres: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, a.ID, a.Name, genres, a.Popularity, a.SpotifyURL, a.ImageURL); err != nil {
			return fmt.Errorf("failed to save artist %s: %w", a.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit artist save: %w", err)
	}
	return nil
}

// GetTrack and GetArtist read from the local cache; used by tests and by
// any caller that wants deck metadata without a platform round trip.
func (s *CatalogStore) GetTrack(ctx context.Context, id string) (domain.Track, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, spotify_url, image_url, artist_ids FROM tracks WHERE id = ?
	`, id)

	var t domain.Track
	var artistIDs string
	err := row.Scan(&t.ID, &t.Title, &t.SpotifyURL, &t.ImageURL, &artistIDs)
	if err == sql.ErrNoRows {
		return domain.Track{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Track{}, fmt.Errorf("failed to load track: %w", err)
	}
	if t.ArtistIDs, err = unmarshalStrings(artistIDs); err != nil {
		return domain.Track{}, fmt.Errorf("failed to decode artist ids: %w", err)
	}
	return t, nil
}

func (s *CatalogStore) GetArtist(ctx context.Context, id string) (domain.Artist, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, genres, popularity, spotify_url, image_url FROM artists WHERE id = ?
	`, id)

	var a domain.Artist
	var genres string
	err := row.Scan(&a.ID, &a.Name, &genres, &a.Popularity, &a.SpotifyURL, &a.ImageURL)
	if err == sql.ErrNoRows {
		return domain.Artist{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Artist{}, fmt.Errorf("failed to load artist: %w", err)
	}
	if a.Genres, err = unmarshalStrings(genres); err != nil {
		return domain.Artist{}, fmt.Errorf("failed to decode genres: %w", err)
	}
	return a, nil
}
