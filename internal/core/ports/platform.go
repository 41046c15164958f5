package ports

import (
	"context"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
)

// MusicPlatform is the authenticated client surface of the external
// streaming service. Batch lookups accept any number of ids; the adapter
// honors the platform's 50-id ceiling per call and returns results
// flattened in request order.
type MusicPlatform interface {
	GetTracks(ctx context.Context, trackIDs []string) ([]domain.Track, error)
	GetArtists(ctx context.Context, artistIDs []string) ([]domain.Artist, error)

	// CreatePlaylist creates an empty playlist owned by the authenticated
	// user and returns the platform's playlist id.
	CreatePlaylist(ctx context.Context, name, description string) (string, error)

	// AddTracks appends tracks in the given order. The ids are forwarded
	// verbatim, duplicates included.
	AddTracks(ctx context.Context, externalPlaylistID string, trackIDs []string) error

	// RemoveTrack deletes one track using the playlist's snapshot token so
	// a concurrent edit fails cleanly instead of being clobbered.
	RemoveTrack(ctx context.Context, externalPlaylistID, trackID string) error

	// StartPlayback and SetShuffle are fire-and-forget player calls with a
	// 204-on-success contract.
	StartPlayback(ctx context.Context, externalPlaylistID string) error
	SetShuffle(ctx context.Context, on bool) error
}
