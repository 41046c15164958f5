package domain

// Candidate is an item offered during swiping. Candidates are ephemeral:
// they exist for the duration of one deck and are never persisted as part
// of a session.
type Candidate struct {
	ID          string
	DisplayName string
	ImageURL    string
	Genres      []string
}
