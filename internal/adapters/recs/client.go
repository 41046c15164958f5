// Package recs is the client for the swipe recommendation service. The
// service deals purely in id lists: it hands out candidate decks and turns
// accumulated swipe signals into ordered playlist track ids.
package recs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
	"github.com/vibecheck-labs/vibecheck/internal/core/ports"
)

const defaultBaseURL = "http://localhost:5000"

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// compile-time interface assertion
var _ ports.CandidateSource = (*Client)(nil)

func NewClient(baseURL string) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// sessionPayload is the wire shape the service expects for a swipe session.
type sessionPayload struct {
	ID           string        `json:"_id"`
	Mode         string        `json:"mode"`
	SwipeResults []swipeResult `json:"swipeResults"`
}

type swipeResult struct {
	ID    string `json:"id"`
	Liked bool   `json:"liked"`
}

// DeckIDs fetches the ordered candidate ids for one swipe session. Songs
// decks come from the personalized recommendation endpoint; artists and
// genres decks both draw from the randomized artist pool, with the genre
// spread derived from artist metadata downstream.
func (c *Client) DeckIDs(ctx context.Context, mode domain.Mode, userID string) ([]string, error) {
	switch mode {
	case domain.ModeSongs:
		return c.postIDs(ctx, "deck", "/swipe-recommendations", map[string]string{"user_id": userID})
	case domain.ModeArtists, domain.ModeGenres:
		return c.getIDs(ctx, "deck", "/random-artists?user_id="+url.QueryEscape(userID))
	}
	return nil, ports.RecommendationError{Op: "deck", Err: fmt.Errorf("unknown mode %q", mode)}
}

// TracksForSession sends the completed session's decision log and receives
// the ordered track ids for a songs-mode playlist.
func (c *Client) TracksForSession(ctx context.Context, entry domain.SessionEntry) ([]string, error) {
	results := make([]swipeResult, 0, len(entry.SwipeResults))
	for _, r := range entry.SwipeResults {
		results = append(results, swipeResult{ID: r.ItemID, Liked: r.Liked})
	}

	payload := map[string]sessionPayload{
		"activityLog": {
			ID:           entry.ID,
			Mode:         string(entry.Mode),
			SwipeResults: results,
		},
	}
	return c.postIDs(ctx, "tracks for session", "/create-playlist", payload)
}

// TracksForArtists generates track ids from the accumulated artist sets.
// Both lists travel: dislikes are a negative signal on the service side.
func (c *Client) TracksForArtists(ctx context.Context, liked, disliked []string) ([]string, error) {
	payload := map[string][]string{
		"liked_artists":    liked,
		"disliked_artists": disliked,
	}
	return c.postIDs(ctx, "tracks for artists", "/generate-playlist", payload)
}

func (c *Client) postIDs(ctx context.Context, op, path string, payload any) ([]string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, ports.RecommendationError{Op: op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, ports.RecommendationError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	return c.doIDs(op, req)
}

func (c *Client) getIDs(ctx context.Context, op, path string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, ports.RecommendationError{Op: op, Err: err}
	}
	return c.doIDs(op, req)
}

func (c *Client) doIDs(op string, req *http.Request) ([]string, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ports.RecommendationError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// The service reports failures as {"error": "..."}.
		var failure struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&failure); decodeErr == nil && failure.Error != "" {
			return nil, ports.RecommendationError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("%s", failure.Error)}
		}
		return nil, ports.RecommendationError{Op: op, Status: resp.StatusCode}
	}

	var ids []string
	if err := json.NewDecoder(resp.Body).Decode(&ids); err != nil {
		return nil, ports.RecommendationError{Op: op, Err: fmt.Errorf("decode: %w", err)}
	}
	return ids, nil
}
