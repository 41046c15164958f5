package domain

import (
	"errors"
	"time"
)

// DefaultCoverURL is the fallback playlist cover when no custom cover was
// generated or uploaded.
const DefaultCoverURL = "https://ierqhxlamotfahrwcsdz.supabase.co/storage/v1/object/public/playlistImage//DefaultPlaylistCover.png"

const maxPlaylistNameLen = 100

var ErrInvalidPlaylistName = errors.New("domain: playlist name must be 1-100 characters")

// Playlist is the local record of a materialized session. Songs is nil on
// purpose: track membership lives on the external platform and is not
// duplicated here.
type Playlist struct {
	ID          string
	Name        string
	CreatedBy   string
	Songs       []string
	Image       string
	ExternalID  string
	TimeCreated time.Time
	Description string
	Privacy     string
}

// ValidatePlaylistName checks the user-supplied name before any external
// call is made, so an invalid name can never strand an external playlist.
func ValidatePlaylistName(name string) error {
	if name == "" || len([]rune(name)) > maxPlaylistNameLen {
		return ErrInvalidPlaylistName
	}
	return nil
}

// NewPlaylist builds a local playlist record. The external id is mandatory:
// a Playlist row must never exist without a platform playlist behind it.
func NewPlaylist(id, name, createdBy, externalID string, now time.Time) (*Playlist, error) {
	if id == "" || createdBy == "" {
		return nil, errors.New("domain: invalid argument")
	}
	if err := ValidatePlaylistName(name); err != nil {
		return nil, err
	}
	if externalID == "" {
		return nil, errors.New("domain: external playlist id required")
	}
	return &Playlist{
		ID:          id,
		Name:        name,
		CreatedBy:   createdBy,
		Image:       DefaultCoverURL,
		ExternalID:  externalID,
		TimeCreated: now,
		Privacy:     "public",
	}, nil
}
