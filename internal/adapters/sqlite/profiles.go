package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
	"github.com/vibecheck-labs/vibecheck/internal/core/ports"
)

// ProfileStore accumulates the per-user like/dislike sets that feed the
// artists- and genres-mode playlist generation.
type ProfileStore struct {
	db *sql.DB
}

// compile-time interface assertion
var _ ports.ProfileRepository = (*ProfileStore)(nil)

// Get returns the stored profile, or an empty one when the user has never
// completed a session.
func (s *ProfileStore) Get(ctx context.Context, userID string) (domain.TasteProfile, error) {
	profile := domain.TasteProfile{UserID: userID}

	row := s.db.QueryRowContext(ctx, `
		SELECT liked_artists, disliked_artists, liked_songs, disliked_songs
		FROM profiles WHERE user_id = ?
	`, userID)

	var likedArtists, dislikedArtists, likedSongs, dislikedSongs string
	err := row.Scan(&likedArtists, &dislikedArtists, &likedSongs, &dislikedSongs)
	if err == sql.ErrNoRows {
		return profile, nil
	}
	if err != nil {
		return domain.TasteProfile{}, fmt.Errorf("failed to load profile: %w", err)
	}

	if profile.LikedArtists, err = unmarshalStrings(likedArtists); err != nil {
		return domain.TasteProfile{}, fmt.Errorf("failed to decode profile: %w", err)
	}
	if profile.DislikedArtists, err = unmarshalStrings(dislikedArtists); err != nil {
		return domain.TasteProfile{}, fmt.Errorf("failed to decode profile: %w", err)
	}
	if profile.LikedSongs, err = unmarshalStrings(likedSongs); err != nil {
		return domain.TasteProfile{}, fmt.Errorf("failed to decode profile: %w", err)
	}
	if profile.DislikedSongs, err = unmarshalStrings(dislikedSongs); err != nil {
		return domain.TasteProfile{}, fmt.Errorf("failed to decode profile: %w", err)
	}
	return profile, nil
}

// Append merges new decisions into the profile. Ids already present are
// skipped; the read-modify-write runs inside a transaction so two
// completions for the same user do not lose each other's decisions.
func (s *ProfileStore) Append(ctx context.Context, userID string, mode domain.Mode, liked, disliked []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin profile update: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		SELECT liked_artists, disliked_artists, liked_songs, disliked_songs
		FROM profiles WHERE user_id = ?
	`, userID)

	var rawLikedArtists, rawDislikedArtists, rawLikedSongs, rawDislikedSongs string
	err = row.Scan(&rawLikedArtists, &rawDislikedArtists, &rawLikedSongs, &rawDislikedSongs)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	likedArtists, err := unmarshalStrings(rawLikedArtists)
	if err != nil {
		return fmt.Errorf("failed to decode profile: %w", err)
	}
	dislikedArtists, err := unmarshalStrings(rawDislikedArtists)
	if err != nil {
		return fmt.Errorf("failed to decode profile: %w", err)
	}
	likedSongs, err := unmarshalStrings(rawLikedSongs)
	if err != nil {
		return fmt.Errorf("failed to decode profile: %w", err)
	}
	dislikedSongs, err := unmarshalStrings(rawDislikedSongs)
	if err != nil {
		return fmt.Errorf("failed to decode profile: %w", err)
	}

	switch mode {
	case domain.ModeSongs:
		likedSongs = appendUnique(likedSongs, liked)
		dislikedSongs = appendUnique(dislikedSongs, disliked)
	case domain.ModeArtists, domain.ModeGenres:
		likedArtists = appendUnique(likedArtists, liked)
		dislikedArtists = appendUnique(dislikedArtists, disliked)
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}

	cols := make([]string, 0, 4)
	for _, values := range [][]string{likedArtists, dislikedArtists, likedSongs, dislikedSongs} {
		encoded, err := marshalStrings(values)
		if err != nil {
			return fmt.Errorf("failed to encode profile: %w", err)
		}
		cols = append(cols, encoded)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO profiles (user_id, liked_artists, disliked_artists, liked_songs, disliked_songs)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			liked_artists = excluded.liked_artists,
			disliked_artists = excluded.disliked_artists,
			liked_songs = excluded.liked_songs,
			disliked_songs = excluded.disliked_songs
	`, userID, cols[0], cols[1], cols[2], cols[3])
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit profile update: %w", err)
	}
	return nil
}

func appendUnique(existing, incoming []string) []string {
	seen := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		seen[id] = struct{}{}
	}
	for _, id := range incoming {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		existing = append(existing, id)
	}
	return existing
}
