package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
	"github.com/vibecheck-labs/vibecheck/internal/core/ports"
)

// Hydrator accepts track ids whose metadata should be cached in the
// background. Implementations must not block.
type Hydrator interface {
	Hydrate(trackIDs []string)
}

// Materializer converts a completed session's liked items into a real
// playlist on the external platform plus a local Playlist record, and links
// the record back into the session.
type Materializer struct {
	sessions  ports.SessionRepository
	playlists ports.PlaylistRepository
	profiles  ports.ProfileRepository
	platform  ports.MusicPlatform
	recs      ports.CandidateSource
	hydrator  Hydrator // optional

	now func() time.Time
}

// NewMaterializer constructs a Materializer. hydrator may be nil.
func NewMaterializer(sessions ports.SessionRepository, playlists ports.PlaylistRepository, profiles ports.ProfileRepository, platform ports.MusicPlatform, recs ports.CandidateSource, hydrator Hydrator) *Materializer {
	return &Materializer{
		sessions:  sessions,
		playlists: playlists,
		profiles:  profiles,
		platform:  platform,
		recs:      recs,
		hydrator:  hydrator,
		now:       time.Now,
	}
}

// Materialize runs the session-to-playlist pipeline:
//
//	seed -> recommended tracks -> external playlist -> populate ->
//	local record -> session linkage
//
// Everything before external playlist creation is fully abortable with no
// partial state. A populate failure after creation strands an empty
// external playlist with no local record; there is no compensating delete,
// so the orphan is logged loudly and the error surfaced.
func (mz *Materializer) Materialize(ctx context.Context, userID, sessionID, name string) (domain.Playlist, error) {
	if err := domain.ValidatePlaylistName(name); err != nil {
		return domain.Playlist{}, fmt.Errorf("service: materialize: %w", err)
	}

	entry, err := mz.sessions.GetByID(ctx, userID, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Playlist{}, fmt.Errorf("service: materialize: %w", err)
		}
		return domain.Playlist{}, ports.StoreError{Op: "load session", Err: err}
	}
	if !entry.Completed() {
		return domain.Playlist{}, fmt.Errorf("service: materialize: %w", domain.ErrNotCompleted)
	}
	if entry.PlaylistID != "" {
		// Already materialized: return the existing record instead of
		// creating a second external playlist.
		existing, err := mz.playlists.GetByID(ctx, entry.PlaylistID)
		if err != nil {
			return domain.Playlist{}, ports.StoreError{Op: "load playlist", Err: err}
		}
		return existing, nil
	}

	trackIDs, err := mz.fetchRecommendedTrackIDs(ctx, entry)
	if err != nil {
		return domain.Playlist{}, err
	}
	if len(trackIDs) == 0 {
		return domain.Playlist{}, fmt.Errorf("service: materialize: recommender returned no tracks")
	}

	externalID, err := mz.platform.CreatePlaylist(ctx, name, "")
	if err != nil {
		return domain.Playlist{}, fmt.Errorf("service: materialize: %w", err)
	}

	// Order comes straight from the recommender, duplicates included.
	if err := mz.platform.AddTracks(ctx, externalID, trackIDs); err != nil {
		log.Printf("WARN service: orphaned external playlist %s: populate failed: %v", externalID, err)
		return domain.Playlist{}, fmt.Errorf("service: materialize: %w", err)
	}

	record, err := domain.NewPlaylist(uuid.NewString(), name, userID, externalID, mz.now().UTC())
	if err != nil {
		return domain.Playlist{}, fmt.Errorf("service: materialize: %w", err)
	}
	if err := mz.playlists.Insert(ctx, *record); err != nil {
		return domain.Playlist{}, ports.StoreError{Op: "insert playlist", Err: err}
	}

	if err := mz.linkSession(ctx, entry, record.ID); err != nil {
		return domain.Playlist{}, err
	}

	if mz.hydrator != nil {
		mz.hydrator.Hydrate(trackIDs)
	}

	return *record, nil
}

// fetchRecommendedTrackIDs selects the seed-building strategy for the
// session's mode and delegates to the recommendation service.
//
// Songs mode seeds from this session's liked tracks only. Artists and
// genres modes seed from the user's whole accumulated profile: liked and
// disliked artists travel separately so dislikes suppress recommendations.
// Songs mode has no negative-signal path.
func (mz *Materializer) fetchRecommendedTrackIDs(ctx context.Context, entry domain.SessionEntry) ([]string, error) {
	switch entry.Mode {
	case domain.ModeSongs:
		ids, err := mz.recs.TracksForSession(ctx, entry)
		if err != nil {
			return nil, fmt.Errorf("service: materialize: %w", err)
		}
		return ids, nil
	case domain.ModeArtists, domain.ModeGenres:
		profile, err := mz.profiles.Get(ctx, entry.UserID)
		if err != nil {
			return nil, ports.StoreError{Op: "load taste profile", Err: err}
		}
		ids, err := mz.recs.TracksForArtists(ctx, profile.LikedArtists, profile.DislikedArtists)
		if err != nil {
			return nil, fmt.Errorf("service: materialize: %w", err)
		}
		return ids, nil
	}
	return nil, fmt.Errorf("service: materialize: unknown mode %q", entry.Mode)
}

// LinkSessionToPlaylist stamps the playlist id onto the session entry.
// Calling it again with the same pair is a no-op.
func (mz *Materializer) LinkSessionToPlaylist(ctx context.Context, userID, sessionID, playlistID string) error {
	entry, err := mz.sessions.GetByID(ctx, userID, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("service: link session: %w", err)
		}
		return ports.StoreError{Op: "load session", Err: err}
	}
	return mz.linkSession(ctx, entry, playlistID)
}

// linkSession writes the linkage through a compare-and-swap update. One
// reload-and-retry absorbs a revision bump that raced this call; a second
// conflict surfaces to the caller.
func (mz *Materializer) linkSession(ctx context.Context, entry domain.SessionEntry, playlistID string) error {
	for attempt := 0; ; attempt++ {
		if entry.PlaylistID == playlistID {
			return nil
		}
		if err := entry.LinkPlaylist(playlistID); err != nil {
			return fmt.Errorf("service: link session: %w", err)
		}

		err := mz.sessions.Update(ctx, entry)
		if err == nil {
			return nil
		}
		if errors.Is(err, domain.ErrRevisionConflict) && attempt == 0 {
			fresh, gerr := mz.sessions.GetByID(ctx, entry.UserID, entry.ID)
			if gerr != nil {
				return ports.StoreError{Op: "reload session", Err: gerr}
			}
			entry = fresh
			continue
		}
		if errors.Is(err, domain.ErrRevisionConflict) {
			return fmt.Errorf("service: link session: %w", err)
		}
		return ports.StoreError{Op: "update session", Err: err}
	}
}
