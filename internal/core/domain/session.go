package domain

import (
	"errors"
	"fmt"
	"time"
)

// SwipeResult is one like/dislike decision. Result order is swipe order and
// maps 1:1 onto the candidate-deck order; it must never be reordered.
type SwipeResult struct {
	ItemID string `json:"id"`
	Liked  bool   `json:"liked"`
}

// SessionEntry is one swipe session: an append-mostly audit record that
// moves Created -> Swiping -> Completed -> Materialized and is never
// deleted. There is no Abandoned state; a session the user walked away from
// simply stays open.
type SessionEntry struct {
	ID           string
	UserID       string
	Mode         Mode
	SwipeResults []SwipeResult
	PlaylistID   string // local Playlist id, set once after materialization
	CompletedAt  *time.Time
	CreatedAt    time.Time
	Revision     int64 // store-maintained, bumped on every update
}

// NewSessionEntry opens a fresh session with an empty decision log.
func NewSessionEntry(id, userID string, mode Mode, now time.Time) (*SessionEntry, error) {
	if id == "" || userID == "" {
		return nil, errors.New("domain: invalid argument")
	}
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}
	return &SessionEntry{
		ID:           id,
		UserID:       userID,
		Mode:         mode,
		SwipeResults: []SwipeResult{},
		CreatedAt:    now,
	}, nil
}

// Completed reports whether the deck was exhausted and the session finalized.
func (s *SessionEntry) Completed() bool { return s.CompletedAt != nil }

// Complete finalizes the session with the full ordered decision log.
// The precondition is that every candidate has been swiped: the log length
// must equal the deck size, otherwise ErrIncompleteDeck.
func (s *SessionEntry) Complete(results []SwipeResult, deckSize int, now time.Time) error {
	if s.Completed() {
		return ErrSessionComplete
	}
	if len(results) != deckSize {
		return fmt.Errorf("%w: have %d of %d decisions", ErrIncompleteDeck, len(results), deckSize)
	}
	s.SwipeResults = append([]SwipeResult(nil), results...)
	s.CompletedAt = &now
	return nil
}

// LinkPlaylist records the materialized playlist id. Linking the same
// playlist twice is a no-op; relinking to a different playlist is refused.
func (s *SessionEntry) LinkPlaylist(playlistID string) error {
	if playlistID == "" {
		return errors.New("domain: playlist id required")
	}
	if !s.Completed() {
		return ErrNotCompleted
	}
	if s.PlaylistID == playlistID {
		return nil
	}
	if s.PlaylistID != "" {
		return ErrAlreadyLinked
	}
	s.PlaylistID = playlistID
	return nil
}

// LikedItemIDs filters the decision log down to liked item ids, preserving
// swipe order. This is the candidate seed for songs-mode materialization.
func (s *SessionEntry) LikedItemIDs() []string {
	var liked []string
	for _, r := range s.SwipeResults {
		if r.Liked {
			liked = append(liked, r.ItemID)
		}
	}
	return liked
}
