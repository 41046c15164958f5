package domain

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestSessionEntry_Complete(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	results := []SwipeResult{
		{ItemID: "a", Liked: true},
		{ItemID: "b", Liked: false},
		{ItemID: "c", Liked: true},
	}

	tests := []struct {
		name        string
		results     []SwipeResult
		deckSize    int
		preComplete bool
		wantErr     error
	}{
		{
			name:     "full deck completes",
			results:  results,
			deckSize: 3,
		},
		{
			name:     "short log rejected",
			results:  results[:2],
			deckSize: 3,
			wantErr:  ErrIncompleteDeck,
		},
		{
			name:     "overlong log rejected",
			results:  results,
			deckSize: 2,
			wantErr:  ErrIncompleteDeck,
		},
		{
			name:        "already completed rejected",
			results:     results,
			deckSize:    3,
			preComplete: true,
			wantErr:     ErrSessionComplete,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			entry, err := NewSessionEntry("s1", "u1", ModeSongs, now)
			if err != nil {
				t.Fatalf("NewSessionEntry: %v", err)
			}
			if tc.preComplete {
				if err := entry.Complete(results, 3, now); err != nil {
					t.Fatalf("pre-complete: %v", err)
				}
			}

			err = entry.Complete(tc.results, tc.deckSize, now)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("got err %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !entry.Completed() {
				t.Fatal("entry not marked completed")
			}
			if !reflect.DeepEqual(entry.SwipeResults, tc.results) {
				t.Fatalf("stored results %v, want %v", entry.SwipeResults, tc.results)
			}
		})
	}
}

func TestSessionEntry_LikedItemIDs_PreservesSwipeOrder(t *testing.T) {
	now := time.Now().UTC()
	entry, _ := NewSessionEntry("s1", "u1", ModeSongs, now)
	results := []SwipeResult{
		{ItemID: "t3", Liked: true},
		{ItemID: "t1", Liked: false},
		{ItemID: "t9", Liked: true},
		{ItemID: "t2", Liked: true},
	}
	if err := entry.Complete(results, 4, now); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	got := entry.LikedItemIDs()
	want := []string{"t3", "t9", "t2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSessionEntry_LinkPlaylist(t *testing.T) {
	now := time.Now().UTC()

	open, _ := NewSessionEntry("s1", "u1", ModeSongs, now)
	if err := open.LinkPlaylist("p1"); !errors.Is(err, ErrNotCompleted) {
		t.Fatalf("open session link: got %v, want ErrNotCompleted", err)
	}

	entry, _ := NewSessionEntry("s2", "u1", ModeSongs, now)
	if err := entry.Complete([]SwipeResult{{ItemID: "a", Liked: true}}, 1, now); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if err := entry.LinkPlaylist("p1"); err != nil {
		t.Fatalf("first link: %v", err)
	}
	if err := entry.LinkPlaylist("p1"); err != nil {
		t.Fatalf("idempotent relink: %v", err)
	}
	if err := entry.LinkPlaylist("p2"); !errors.Is(err, ErrAlreadyLinked) {
		t.Fatalf("relink to other playlist: got %v, want ErrAlreadyLinked", err)
	}
	if entry.PlaylistID != "p1" {
		t.Fatalf("playlist id %q, want p1", entry.PlaylistID)
	}
}

func TestParseMode(t *testing.T) {
	for _, raw := range []string{"songs", "artists", "genres"} {
		if _, err := ParseMode(raw); err != nil {
			t.Fatalf("ParseMode(%q): %v", raw, err)
		}
	}
	for _, raw := range []string{"", "Songs", "albums", "song"} {
		if _, err := ParseMode(raw); err == nil {
			t.Fatalf("ParseMode(%q): expected error", raw)
		}
	}
}
