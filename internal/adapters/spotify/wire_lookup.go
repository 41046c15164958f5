package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
	"github.com/vibecheck-labs/vibecheck/internal/core/ports"
)

// GetTracks looks up track metadata by id. The platform caps id-batch
// lookups at 50 per call, so larger inputs are chunked and the responses
// flattened back in request order.
func (c *Client) GetTracks(ctx context.Context, trackIDs []string) ([]domain.Track, error) {
	out := make([]domain.Track, 0, len(trackIDs))
	for start := 0; start < len(trackIDs); start += batchLimit {
		end := min(start+batchLimit, len(trackIDs))

		var body struct {
			Tracks []spotifyTrack `json:"tracks"`
		}
		if err := c.getBatch(ctx, "get tracks", "/tracks", trackIDs[start:end], &body); err != nil {
			return nil, err
		}
		for _, st := range body.Tracks {
			out = append(out, st.toDomain())
		}
	}
	return out, nil
}

// GetArtists looks up artist metadata by id, chunked and flattened the same
// way as GetTracks.
func (c *Client) GetArtists(ctx context.Context, artistIDs []string) ([]domain.Artist, error) {
	out := make([]domain.Artist, 0, len(artistIDs))
	for start := 0; start < len(artistIDs); start += batchLimit {
		end := min(start+batchLimit, len(artistIDs))

		var body struct {
			Artists []spotifyArtist `json:"artists"`
		}
		if err := c.getBatch(ctx, "get artists", "/artists", artistIDs[start:end], &body); err != nil {
			return nil, err
		}
		for _, sa := range body.Artists {
			out = append(out, sa.toDomain())
		}
	}
	return out, nil
}

// getBatch issues one ids= lookup and decodes the response into dst.
func (c *Client) getBatch(ctx context.Context, op, path string, ids []string, dst any) error {
	if len(ids) == 0 {
		return nil
	}
	if len(ids) > batchLimit {
		return fmt.Errorf("spotify adapter: batch of %d exceeds platform limit %d", len(ids), batchLimit)
	}

	u := fmt.Sprintf("%s%s?ids=%s", c.baseURL, path, url.QueryEscape(strings.Join(ids, ",")))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return ports.PlatformAPIError{Op: op, Err: err}
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return ports.PlatformAPIError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.PlatformAPIError{Op: op, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return ports.PlatformAPIError{Op: op, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}
