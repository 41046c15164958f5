package domain

import "fmt"

// Mode identifies what kind of candidates a swipe session offers.
type Mode string

const (
	ModeSongs   Mode = "songs"
	ModeArtists Mode = "artists"
	ModeGenres  Mode = "genres"
)

// ParseMode validates a raw mode string coming in from the client.
func ParseMode(raw string) (Mode, error) {
	switch Mode(raw) {
	case ModeSongs, ModeArtists, ModeGenres:
		return Mode(raw), nil
	}
	return "", fmt.Errorf("domain: unknown mode %q", raw)
}
