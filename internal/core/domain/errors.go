package domain

import "errors"

var (
	ErrNotFound       = errors.New("domain: not found")
	ErrIncompleteDeck = errors.New("domain: deck not fully swiped")

	// ErrSessionComplete is returned when an operation that requires an open
	// session hits one whose deck was already exhausted.
	ErrSessionComplete = errors.New("domain: session already completed")

	// ErrNotCompleted guards materialization: only a Completed session may
	// be turned into a playlist.
	ErrNotCompleted = errors.New("domain: session not completed")

	// ErrAlreadyLinked means the session is already tied to a different
	// playlist. Linking the same playlist twice is a no-op, not an error.
	ErrAlreadyLinked = errors.New("domain: session already linked to another playlist")

	// ErrRevisionConflict reports a compare-and-swap failure on a session
	// row: someone else updated the entry since it was read.
	ErrRevisionConflict = errors.New("domain: revision conflict")
)
