package ports

import (
	"context"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
)

// SessionRepository stores one row per swipe session. Updates are targeted
// at a single entry and guarded by the entry's revision, replacing the
// whole-array read-modify-write the original data model used.
type SessionRepository interface {
	Insert(ctx context.Context, entry domain.SessionEntry) error
	GetByID(ctx context.Context, userID, sessionID string) (domain.SessionEntry, error)
	ListByUser(ctx context.Context, userID string) ([]domain.SessionEntry, error)
	// Update persists the entry if the stored revision still matches
	// entry.Revision, bumping it by one. Returns domain.ErrRevisionConflict
	// when the row moved underneath the caller.
	Update(ctx context.Context, entry domain.SessionEntry) error
}

type PlaylistRepository interface {
	Insert(ctx context.Context, p domain.Playlist) error
	GetByID(ctx context.Context, id string) (domain.Playlist, error)
}

// ProfileRepository holds the accumulated like/dislike sets per user.
// Append is additive: ids already present are not duplicated.
type ProfileRepository interface {
	Get(ctx context.Context, userID string) (domain.TasteProfile, error)
	Append(ctx context.Context, userID string, mode domain.Mode, liked, disliked []string) error
}

// CatalogRepository caches platform track/artist metadata locally so swipe
// decks can be rendered without a platform round trip per card.
type CatalogRepository interface {
	SaveTracks(ctx context.Context, tracks []domain.Track) error
	SaveArtists(ctx context.Context, artists []domain.Artist) error
}
