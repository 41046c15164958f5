package domain

// TasteProfile is the accumulated like/dislike state on the user aggregate.
// Artists and genres materialization seed from the whole profile, not just
// the triggering session, so past dislikes keep suppressing recommendations.
type TasteProfile struct {
	UserID          string
	LikedArtists    []string
	DislikedArtists []string
	LikedSongs      []string
	DislikedSongs   []string
}
