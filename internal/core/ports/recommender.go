package ports

import (
	"context"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
)

// CandidateSource is the external recommendation engine. It deals purely in
// ordered id lists; display metadata is hydrated from the platform.
type CandidateSource interface {
	// DeckIDs returns the ordered candidate ids for one swipe session.
	DeckIDs(ctx context.Context, mode domain.Mode, userID string) ([]string, error)

	// TracksForSession converts a completed songs-mode session into an
	// ordered list of track ids for the playlist.
	TracksForSession(ctx context.Context, entry domain.SessionEntry) ([]string, error)

	// TracksForArtists generates track ids from accumulated artist signals.
	// Disliked artists are a negative signal and actively suppress results.
	TracksForArtists(ctx context.Context, liked, disliked []string) ([]string, error)
}
