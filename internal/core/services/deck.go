package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
	"github.com/vibecheck-labs/vibecheck/internal/core/ports"
)

// Deck assembles the candidate deck for an open session: ordered ids from
// the recommendation service, hydrated with display metadata from the
// platform. The returned order is the swipe order.
func (m *SessionManager) Deck(ctx context.Context, userID, sessionID string) ([]domain.Candidate, error) {
	entry, err := m.sessions.GetByID(ctx, userID, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("service: deck: %w", err)
		}
		return nil, ports.StoreError{Op: "load session", Err: err}
	}
	if entry.Completed() {
		return nil, fmt.Errorf("service: deck: %w", domain.ErrSessionComplete)
	}

	ids, err := m.recs.DeckIDs(ctx, entry.Mode, userID)
	if err != nil {
		return nil, fmt.Errorf("service: deck: %w", err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("service: deck: recommender returned no candidates")
	}

	switch entry.Mode {
	case domain.ModeSongs:
		return m.songCandidates(ctx, ids)
	case domain.ModeArtists, domain.ModeGenres:
		return m.artistCandidates(ctx, ids)
	}
	return nil, fmt.Errorf("service: deck: unknown mode %q", entry.Mode)
}

func (m *SessionManager) songCandidates(ctx context.Context, trackIDs []string) ([]domain.Candidate, error) {
	tracks, err := m.platform.GetTracks(ctx, trackIDs)
	if err != nil {
		return nil, fmt.Errorf("service: deck: %w", err)
	}

	candidates := make([]domain.Candidate, 0, len(tracks))
	for _, t := range tracks {
		candidates = append(candidates, domain.Candidate{
			ID:          t.ID,
			DisplayName: t.Title,
			ImageURL:    t.ImageURL,
		})
	}
	return candidates, nil
}

func (m *SessionManager) artistCandidates(ctx context.Context, artistIDs []string) ([]domain.Candidate, error) {
	artists, err := m.platform.GetArtists(ctx, artistIDs)
	if err != nil {
		return nil, fmt.Errorf("service: deck: %w", err)
	}

	candidates := make([]domain.Candidate, 0, len(artists))
	for _, a := range artists {
		candidates = append(candidates, domain.Candidate{
			ID:          a.ID,
			DisplayName: a.Name,
			ImageURL:    a.ImageURL,
			Genres:      a.Genres,
		})
	}
	return candidates, nil
}
