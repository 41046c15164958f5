package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
	"github.com/vibecheck-labs/vibecheck/internal/core/ports"
)

// SessionManager owns the activity-log lifecycle: creation, decision
// recording, completion detection and resumption.
//
// Decisions are buffered in memory and only flushed when the deck is
// exhausted; a crash mid-session loses the unflushed swipes. That is the
// accepted durability contract: decks are short and cheap to re-swipe.
type SessionManager struct {
	sessions ports.SessionRepository
	profiles ports.ProfileRepository
	recs     ports.CandidateSource
	platform ports.MusicPlatform

	mu      sync.Mutex
	pending map[string][]domain.SwipeResult

	now func() time.Time
}

// NewSessionManager constructs a SessionManager.
func NewSessionManager(sessions ports.SessionRepository, profiles ports.ProfileRepository, recs ports.CandidateSource, platform ports.MusicPlatform) *SessionManager {
	return &SessionManager{
		sessions: sessions,
		profiles: profiles,
		recs:     recs,
		platform: platform,
		pending:  make(map[string][]domain.SwipeResult),
		now:      time.Now,
	}
}

// CreateSession opens a new swipe session for the user. The id is a UUID
// assigned here rather than derived from the log length, so concurrent
// creations for the same user can never collide. On a store failure the
// caller must not proceed to swiping.
func (m *SessionManager) CreateSession(ctx context.Context, userID string, mode domain.Mode) (domain.SessionEntry, error) {
	entry, err := domain.NewSessionEntry(uuid.NewString(), userID, mode, m.now().UTC())
	if err != nil {
		return domain.SessionEntry{}, fmt.Errorf("service: create session: %w", err)
	}
	if err := m.sessions.Insert(ctx, *entry); err != nil {
		return domain.SessionEntry{}, ports.StoreError{Op: "insert session", Err: err}
	}

	m.mu.Lock()
	m.pending[entry.ID] = []domain.SwipeResult{}
	m.mu.Unlock()

	return *entry, nil
}

// RecordDecision appends one like/dislike to the session's in-memory log.
// Append order is swipe order. Nothing is persisted until CompleteSession.
func (m *SessionManager) RecordDecision(sessionID, itemID string, liked bool) error {
	if sessionID == "" || itemID == "" {
		return errors.New("service: record decision: session and item ids are required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending[sessionID] = append(m.pending[sessionID], domain.SwipeResult{ItemID: itemID, Liked: liked})
	return nil
}

// BufferedDecisions returns a copy of the unflushed decision log, in swipe
// order.
func (m *SessionManager) BufferedDecisions(sessionID string) []domain.SwipeResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.SwipeResult(nil), m.pending[sessionID]...)
}

// CompleteSession flushes the buffered decisions once every candidate has
// been swiped and stamps completedAt. The write is a targeted
// compare-and-swap on the session row; on any failure the buffer is kept so
// the caller can retry the whole completion.
func (m *SessionManager) CompleteSession(ctx context.Context, userID, sessionID string, fullDeckSize int) (domain.SessionEntry, error) {
	m.mu.Lock()
	results := append([]domain.SwipeResult(nil), m.pending[sessionID]...)
	m.mu.Unlock()

	entry, err := m.sessions.GetByID(ctx, userID, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.SessionEntry{}, fmt.Errorf("service: complete session: %w", err)
		}
		return domain.SessionEntry{}, ports.StoreError{Op: "load session", Err: err}
	}

	if err := entry.Complete(results, fullDeckSize, m.now().UTC()); err != nil {
		return domain.SessionEntry{}, fmt.Errorf("service: complete session: %w", err)
	}

	if err := m.sessions.Update(ctx, entry); err != nil {
		if errors.Is(err, domain.ErrRevisionConflict) {
			return domain.SessionEntry{}, fmt.Errorf("service: complete session: %w", err)
		}
		return domain.SessionEntry{}, ports.StoreError{Op: "update session", Err: err}
	}

	m.mu.Lock()
	delete(m.pending, sessionID)
	m.mu.Unlock()

	m.feedTasteProfile(ctx, entry)

	return entry, nil
}

// feedTasteProfile folds the finalized decisions into the user's
// accumulated like/dislike sets. Best effort: a profile write failure never
// rolls back a completed session.
func (m *SessionManager) feedTasteProfile(ctx context.Context, entry domain.SessionEntry) {
	if m.profiles == nil {
		return
	}

	var liked, disliked []string
	for _, r := range entry.SwipeResults {
		if r.Liked {
			liked = append(liked, r.ItemID)
		} else {
			disliked = append(disliked, r.ItemID)
		}
	}

	if err := m.profiles.Append(ctx, entry.UserID, entry.Mode, liked, disliked); err != nil {
		log.Printf("WARN service: taste profile update failed for user %s: %v", entry.UserID, err)
	}
}

// ResumeSession reloads a still-open session after an app restart and
// re-primes the decision buffer with whatever was last flushed. Completed
// sessions are not resumable.
func (m *SessionManager) ResumeSession(ctx context.Context, userID, sessionID string) (domain.SessionEntry, error) {
	entry, err := m.sessions.GetByID(ctx, userID, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.SessionEntry{}, fmt.Errorf("service: resume session: %w", err)
		}
		return domain.SessionEntry{}, ports.StoreError{Op: "load session", Err: err}
	}
	if entry.Completed() {
		return domain.SessionEntry{}, fmt.Errorf("service: resume session: %w", domain.ErrSessionComplete)
	}

	m.mu.Lock()
	if _, ok := m.pending[entry.ID]; !ok {
		m.pending[entry.ID] = append([]domain.SwipeResult(nil), entry.SwipeResults...)
	}
	m.mu.Unlock()

	return entry, nil
}
