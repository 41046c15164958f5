package services

import (
	"context"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
	"github.com/vibecheck-labs/vibecheck/internal/core/ports"
)

// --- Mocks ---

// mockSessionRepo is an in-memory session store with the same
// compare-and-swap contract as the real adapter.
type mockSessionRepo struct {
	entries map[string]domain.SessionEntry

	insertErr error
	getErr    error
	updateErr error

	// conflictNext forces the next N Update calls to report a revision
	// conflict regardless of the stored revision.
	conflictNext int

	updateCalls int
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{entries: make(map[string]domain.SessionEntry)}
}

func (m *mockSessionRepo) Insert(ctx context.Context, entry domain.SessionEntry) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.entries[entry.ID] = entry
	return nil
}

func (m *mockSessionRepo) GetByID(ctx context.Context, userID, sessionID string) (domain.SessionEntry, error) {
	if m.getErr != nil {
		return domain.SessionEntry{}, m.getErr
	}
	entry, ok := m.entries[sessionID]
	if !ok || entry.UserID != userID {
		return domain.SessionEntry{}, domain.ErrNotFound
	}
	return entry, nil
}

func (m *mockSessionRepo) ListByUser(ctx context.Context, userID string) ([]domain.SessionEntry, error) {
	var entries []domain.SessionEntry
	for _, e := range m.entries {
		if e.UserID == userID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (m *mockSessionRepo) Update(ctx context.Context, entry domain.SessionEntry) error {
	m.updateCalls++
	if m.updateErr != nil {
		return m.updateErr
	}
	if m.conflictNext > 0 {
		m.conflictNext--
		return domain.ErrRevisionConflict
	}
	stored, ok := m.entries[entry.ID]
	if !ok || stored.UserID != entry.UserID {
		return domain.ErrNotFound
	}
	if stored.Revision != entry.Revision {
		return domain.ErrRevisionConflict
	}
	entry.Revision++
	m.entries[entry.ID] = entry
	return nil
}

var _ ports.SessionRepository = (*mockSessionRepo)(nil)

type mockPlaylistRepo struct {
	playlists map[string]domain.Playlist
	insertErr error
}

func newMockPlaylistRepo() *mockPlaylistRepo {
	return &mockPlaylistRepo{playlists: make(map[string]domain.Playlist)}
}

func (m *mockPlaylistRepo) Insert(ctx context.Context, p domain.Playlist) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.playlists[p.ID] = p
	return nil
}

func (m *mockPlaylistRepo) GetByID(ctx context.Context, id string) (domain.Playlist, error) {
	p, ok := m.playlists[id]
	if !ok {
		return domain.Playlist{}, domain.ErrNotFound
	}
	return p, nil
}

var _ ports.PlaylistRepository = (*mockPlaylistRepo)(nil)

type mockProfileRepo struct {
	profile   domain.TasteProfile
	getErr    error
	appendErr error

	appendCalls int
	lastLiked   []string
	lastMode    domain.Mode
}

func (m *mockProfileRepo) Get(ctx context.Context, userID string) (domain.TasteProfile, error) {
	if m.getErr != nil {
		return domain.TasteProfile{}, m.getErr
	}
	return m.profile, nil
}

func (m *mockProfileRepo) Append(ctx context.Context, userID string, mode domain.Mode, liked, disliked []string) error {
	m.appendCalls++
	m.lastMode = mode
	m.lastLiked = liked
	return m.appendErr
}

var _ ports.ProfileRepository = (*mockProfileRepo)(nil)

type mockRecs struct {
	deckIDs  []string
	trackIDs []string
	err      error

	tracksForSessionCalls int
	tracksForArtistsCalls int
	lastLikedArtists      []string
	lastDislikedArtists   []string
	lastEntry             domain.SessionEntry
}

func (m *mockRecs) DeckIDs(ctx context.Context, mode domain.Mode, userID string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.deckIDs, nil
}

func (m *mockRecs) TracksForSession(ctx context.Context, entry domain.SessionEntry) ([]string, error) {
	m.tracksForSessionCalls++
	m.lastEntry = entry
	if m.err != nil {
		return nil, m.err
	}
	return m.trackIDs, nil
}

func (m *mockRecs) TracksForArtists(ctx context.Context, liked, disliked []string) ([]string, error) {
	m.tracksForArtistsCalls++
	m.lastLikedArtists = liked
	m.lastDislikedArtists = disliked
	if m.err != nil {
		return nil, m.err
	}
	return m.trackIDs, nil
}

var _ ports.CandidateSource = (*mockRecs)(nil)

type mockPlatform struct {
	tracks  []domain.Track
	artists []domain.Artist

	externalID string

	getErr      error
	createErr   error
	addErr      error
	removeErr   error
	playbackErr error

	createCalls    int
	createdName    string
	addedTracks    []string
	playedPlaylist string
	shuffleOn      *bool
}

func (m *mockPlatform) GetTracks(ctx context.Context, ids []string) ([]domain.Track, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.tracks, nil
}

func (m *mockPlatform) GetArtists(ctx context.Context, ids []string) ([]domain.Artist, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.artists, nil
}

func (m *mockPlatform) CreatePlaylist(ctx context.Context, name, description string) (string, error) {
	m.createCalls++
	m.createdName = name
	if m.createErr != nil {
		return "", m.createErr
	}
	return m.externalID, nil
}

func (m *mockPlatform) AddTracks(ctx context.Context, playlistID string, trackIDs []string) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.addedTracks = append(m.addedTracks, trackIDs...)
	return nil
}

func (m *mockPlatform) RemoveTrack(ctx context.Context, playlistID, trackID string) error {
	return m.removeErr
}

func (m *mockPlatform) StartPlayback(ctx context.Context, playlistID string) error {
	if m.playbackErr != nil {
		return m.playbackErr
	}
	m.playedPlaylist = playlistID
	return nil
}

func (m *mockPlatform) SetShuffle(ctx context.Context, on bool) error {
	m.shuffleOn = &on
	return nil
}

var _ ports.MusicPlatform = (*mockPlatform)(nil)
