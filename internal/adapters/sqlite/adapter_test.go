package sqlite

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
)

func testAdapter(t *testing.T) *Adapter {
	t.Helper()
	adapter, err := NewAdapter(":memory:")
	if err != nil {
		t.Fatalf("NewAdapter: %v", err)
	}
	t.Cleanup(func() { adapter.Close() })
	return adapter
}

func TestSessionStore_RoundTrip(t *testing.T) {
	adapter := testAdapter(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	entry, err := domain.NewSessionEntry("s1", "u1", domain.ModeSongs, now)
	if err != nil {
		t.Fatalf("NewSessionEntry: %v", err)
	}
	if err := adapter.Sessions.Insert(ctx, *entry); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := adapter.Sessions.GetByID(ctx, "u1", "s1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ID != "s1" || got.UserID != "u1" || got.Mode != domain.ModeSongs {
		t.Fatalf("unexpected entry %+v", got)
	}
	if got.Completed() {
		t.Fatal("fresh entry must not be completed")
	}
	if got.Revision != 0 {
		t.Fatalf("revision %d, want 0", got.Revision)
	}
	if len(got.SwipeResults) != 0 {
		t.Fatalf("swipe results %v, want empty", got.SwipeResults)
	}

	// Complete and write back; the decision order must survive the round
	// trip.
	results := []domain.SwipeResult{
		{ItemID: "b", Liked: true},
		{ItemID: "a", Liked: false},
		{ItemID: "c", Liked: true},
	}
	if err := got.Complete(results, 3, now.Add(time.Minute)); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if err := adapter.Sessions.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}

	reloaded, err := adapter.Sessions.GetByID(ctx, "u1", "s1")
	if err != nil {
		t.Fatalf("GetByID after update: %v", err)
	}
	if !reflect.DeepEqual(reloaded.SwipeResults, results) {
		t.Fatalf("results %v, want %v", reloaded.SwipeResults, results)
	}
	if !reloaded.Completed() {
		t.Fatal("completion stamp lost")
	}
	if reloaded.Revision != 1 {
		t.Fatalf("revision %d, want 1", reloaded.Revision)
	}
}

func TestSessionStore_RevisionConflict(t *testing.T) {
	adapter := testAdapter(t)
	ctx := context.Background()
	now := time.Now().UTC()

	entry, _ := domain.NewSessionEntry("s1", "u1", domain.ModeArtists, now)
	if err := adapter.Sessions.Insert(ctx, *entry); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	// Two readers load revision 0.
	first, _ := adapter.Sessions.GetByID(ctx, "u1", "s1")
	second, _ := adapter.Sessions.GetByID(ctx, "u1", "s1")

	if err := adapter.Sessions.Update(ctx, first); err != nil {
		t.Fatalf("first update: %v", err)
	}

	err := adapter.Sessions.Update(ctx, second)
	if !errors.Is(err, domain.ErrRevisionConflict) {
		t.Fatalf("got %v, want ErrRevisionConflict", err)
	}
}

func TestSessionStore_NotFound(t *testing.T) {
	adapter := testAdapter(t)
	ctx := context.Background()

	if _, err := adapter.Sessions.GetByID(ctx, "u1", "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByID: got %v, want ErrNotFound", err)
	}

	now := time.Now().UTC()
	entry, _ := domain.NewSessionEntry("ghost", "u1", domain.ModeSongs, now)
	if err := adapter.Sessions.Update(ctx, *entry); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Update: got %v, want ErrNotFound", err)
	}

	// A session is invisible to other users.
	if err := adapter.Sessions.Insert(ctx, *entry); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if _, err := adapter.Sessions.GetByID(ctx, "u2", "ghost"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("cross-user GetByID: got %v, want ErrNotFound", err)
	}
}

func TestSessionStore_ListByUser(t *testing.T) {
	adapter := testAdapter(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"s1", "s2", "s3"} {
		entry, _ := domain.NewSessionEntry(id, "u1", domain.ModeSongs, base.Add(time.Duration(i)*time.Minute))
		if err := adapter.Sessions.Insert(ctx, *entry); err != nil {
			t.Fatalf("Insert %s: %v", id, err)
		}
	}
	other, _ := domain.NewSessionEntry("sx", "u2", domain.ModeSongs, base)
	adapter.Sessions.Insert(ctx, *other)

	entries, err := adapter.Sessions.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	for i, id := range []string{"s1", "s2", "s3"} {
		if entries[i].ID != id {
			t.Fatalf("entry %d id %q, want %q: creation order broken", i, entries[i].ID, id)
		}
	}
}

func TestPlaylistStore_RoundTrip(t *testing.T) {
	adapter := testAdapter(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	p, err := domain.NewPlaylist("pl-local", "Summer", "u1", "pl_123", now)
	if err != nil {
		t.Fatalf("NewPlaylist: %v", err)
	}
	if err := adapter.Playlists.Insert(ctx, *p); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := adapter.Playlists.GetByID(ctx, "pl-local")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ExternalID != "pl_123" || got.Name != "Summer" {
		t.Fatalf("unexpected playlist %+v", got)
	}
	if got.Songs != nil {
		t.Fatalf("songs %v, want nil: membership lives on the platform", got.Songs)
	}
	if got.Privacy != "public" || got.Image != domain.DefaultCoverURL {
		t.Fatalf("defaults lost: %+v", got)
	}

	if _, err := adapter.Playlists.GetByID(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestProfileStore_AppendAccumulatesAndDedupes(t *testing.T) {
	adapter := testAdapter(t)
	ctx := context.Background()

	// Missing row reads as an empty profile.
	profile, err := adapter.Profiles.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(profile.LikedArtists) != 0 || len(profile.LikedSongs) != 0 {
		t.Fatalf("expected empty profile, got %+v", profile)
	}

	if err := adapter.Profiles.Append(ctx, "u1", domain.ModeArtists, []string{"ar1", "ar2"}, []string{"ar3"}); err != nil {
		t.Fatalf("Append artists: %v", err)
	}
	// Overlapping second session: ar2 already liked, ar4 is new.
	if err := adapter.Profiles.Append(ctx, "u1", domain.ModeGenres, []string{"ar2", "ar4"}, nil); err != nil {
		t.Fatalf("Append genres: %v", err)
	}
	if err := adapter.Profiles.Append(ctx, "u1", domain.ModeSongs, []string{"t1"}, []string{"t2"}); err != nil {
		t.Fatalf("Append songs: %v", err)
	}

	profile, err = adapter.Profiles.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !reflect.DeepEqual(profile.LikedArtists, []string{"ar1", "ar2", "ar4"}) {
		t.Fatalf("liked artists %v", profile.LikedArtists)
	}
	if !reflect.DeepEqual(profile.DislikedArtists, []string{"ar3"}) {
		t.Fatalf("disliked artists %v", profile.DislikedArtists)
	}
	if !reflect.DeepEqual(profile.LikedSongs, []string{"t1"}) {
		t.Fatalf("liked songs %v", profile.LikedSongs)
	}
	if !reflect.DeepEqual(profile.DislikedSongs, []string{"t2"}) {
		t.Fatalf("disliked songs %v", profile.DislikedSongs)
	}
}

func TestCatalogStore_Upserts(t *testing.T) {
	adapter := testAdapter(t)
	ctx := context.Background()

	tracks := []domain.Track{
		{ID: "t1", Title: "Old Title", ArtistIDs: []string{"ar1"}},
	}
	if err := adapter.Catalog.SaveTracks(ctx, tracks); err != nil {
		t.Fatalf("SaveTracks: %v", err)
	}

	// Saving again with fresh metadata replaces the row.
	tracks[0].Title = "New Title"
	tracks[0].ImageURL = "https://img/t1"
	if err := adapter.Catalog.SaveTracks(ctx, tracks); err != nil {
		t.Fatalf("SaveTracks upsert: %v", err)
	}

	got, err := adapter.Catalog.GetTrack(ctx, "t1")
	if err != nil {
		t.Fatalf("GetTrack: %v", err)
	}
	if got.Title != "New Title" || got.ImageURL != "https://img/t1" {
		t.Fatalf("upsert lost data: %+v", got)
	}
	if !reflect.DeepEqual(got.ArtistIDs, []string{"ar1"}) {
		t.Fatalf("artist ids %v", got.ArtistIDs)
	}

	artists := []domain.Artist{
		{ID: "ar1", Name: "Artist One", Genres: []string{"indie"}, Popularity: 55},
	}
	if err := adapter.Catalog.SaveArtists(ctx, artists); err != nil {
		t.Fatalf("SaveArtists: %v", err)
	}

	gotArtist, err := adapter.Catalog.GetArtist(ctx, "ar1")
	if err != nil {
		t.Fatalf("GetArtist: %v", err)
	}
	if gotArtist.Name != "Artist One" || gotArtist.Popularity != 55 {
		t.Fatalf("unexpected artist %+v", gotArtist)
	}
	if !reflect.DeepEqual(gotArtist.Genres, []string{"indie"}) {
		t.Fatalf("genres %v", gotArtist.Genres)
	}
}
