package domain

// Track is cached platform metadata for a song.
type Track struct {
	ID         string
	Title      string
	SpotifyURL string
	ImageURL   string
	ArtistIDs  []string
}

// Artist is cached platform metadata for an artist. Genres live on artists,
// not tracks; the genres deck is assembled from artist metadata.
type Artist struct {
	ID         string
	Name       string
	Genres     []string
	Popularity int
	SpotifyURL string
	ImageURL   string
}
