package spotify

import "github.com/vibecheck-labs/vibecheck/internal/core/domain"

type spotifyImage struct {
	URL string `json:"url"`
}

type spotifyArtistRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// spotifyTrack is the platform's wire shape for a track.
type spotifyTrack struct {
	ID      string             `json:"id"`
	Name    string             `json:"name"`
	Artists []spotifyArtistRef `json:"artists"`
	Album   struct {
		Name   string         `json:"name"`
		Images []spotifyImage `json:"images"`
	} `json:"album"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
}

// toDomain flattens the wire track into the local catalog shape. The first
// album image is the cover; the platform orders images largest first.
func (st spotifyTrack) toDomain() domain.Track {
	artistIDs := make([]string, 0, len(st.Artists))
	for _, a := range st.Artists {
		artistIDs = append(artistIDs, a.ID)
	}

	imageURL := ""
	if len(st.Album.Images) > 0 {
		imageURL = st.Album.Images[0].URL
	}

	return domain.Track{
		ID:         st.ID,
		Title:      st.Name,
		SpotifyURL: st.ExternalURLs.Spotify,
		ImageURL:   imageURL,
		ArtistIDs:  artistIDs,
	}
}

// spotifyArtist is the platform's wire shape for a full artist object.
type spotifyArtist struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Genres       []string       `json:"genres"`
	Popularity   int            `json:"popularity"`
	Images       []spotifyImage `json:"images"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
}

func (sa spotifyArtist) toDomain() domain.Artist {
	imageURL := ""
	if len(sa.Images) > 0 {
		imageURL = sa.Images[0].URL
	}

	return domain.Artist{
		ID:         sa.ID,
		Name:       sa.Name,
		Genres:     sa.Genres,
		Popularity: sa.Popularity,
		SpotifyURL: sa.ExternalURLs.Spotify,
		ImageURL:   imageURL,
	}
}

// addTracksRequest is the request body for appending tracks to a playlist.
type addTracksRequest struct {
	Uris []string `json:"uris"`
}

// createPlaylistRequest is the request body for creating a playlist.
type createPlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Public      bool   `json:"public"`
}
