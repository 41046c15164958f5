package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/vibecheck-labs/vibecheck/internal/core/ports"
)

// CreatePlaylist creates an empty playlist owned by the authenticated user
// and returns the platform's playlist id.
func (c *Client) CreatePlaylist(ctx context.Context, name, description string) (string, error) {
	body, err := json.Marshal(createPlaylistRequest{
		Name:        name,
		Description: description,
		Public:      true,
	})
	if err != nil {
		return "", ports.PlatformAPIError{Op: "create playlist", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/me/playlists", bytes.NewReader(body))
	if err != nil {
		return "", ports.PlatformAPIError{Op: "create playlist", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return "", ports.PlatformAPIError{Op: "create playlist", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", ports.PlatformAPIError{Op: "create playlist", Status: resp.StatusCode}
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", ports.PlatformAPIError{Op: "create playlist", Err: fmt.Errorf("decode: %w", err)}
	}
	if created.ID == "" {
		return "", ports.PlatformAPIError{Op: "create playlist", Err: fmt.Errorf("response carried no playlist id")}
	}

	return created.ID, nil
}

// AddTracks appends tracks to a playlist in the given order. URIs are
// batched at the platform ceiling; ids are forwarded verbatim, duplicates
// included. Dedup here would second-guess the recommendation service.
func (c *Client) AddTracks(ctx context.Context, playlistID string, trackIDs []string) error {
	for start := 0; start < len(trackIDs); start += batchLimit {
		end := min(start+batchLimit, len(trackIDs))

		uris := make([]string, 0, end-start)
		for _, id := range trackIDs[start:end] {
			uris = append(uris, "spotify:track:"+id)
		}

		body, err := json.Marshal(addTracksRequest{Uris: uris})
		if err != nil {
			return ports.PlatformAPIError{Op: "add tracks", Err: err}
		}

		u := fmt.Sprintf("%s/playlists/%s/tracks", c.baseURL, playlistID)
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
		if err != nil {
			return ports.PlatformAPIError{Op: "add tracks", Err: err}
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.doRequestWithRetry(req)
		if err != nil {
			return ports.PlatformAPIError{Op: "add tracks", Err: err}
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
			return ports.PlatformAPIError{Op: "add tracks", Status: resp.StatusCode}
		}
	}
	return nil
}

// RemoveTrack deletes one track occurrence from a playlist. It reads the
// playlist's current snapshot id first and sends it with the delete, the
// platform's optimistic-concurrency token, so a concurrent playlist edit
// fails cleanly instead of being clobbered.
func (c *Client) RemoveTrack(ctx context.Context, playlistID, trackID string) error {
	snapshotID, err := c.getSnapshotID(ctx, playlistID)
	if err != nil {
		return err
	}

	payload := struct {
		Tracks []struct {
			URI string `json:"uri"`
		} `json:"tracks"`
		SnapshotID string `json:"snapshot_id"`
	}{
		Tracks: []struct {
			URI string `json:"uri"`
		}{{URI: "spotify:track:" + trackID}},
		SnapshotID: snapshotID,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return ports.PlatformAPIError{Op: "remove track", Err: err}
	}

	u := fmt.Sprintf("%s/playlists/%s/tracks", c.baseURL, playlistID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, bytes.NewReader(body))
	if err != nil {
		return ports.PlatformAPIError{Op: "remove track", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return ports.PlatformAPIError{Op: "remove track", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.PlatformAPIError{Op: "remove track", Status: resp.StatusCode}
	}
	return nil
}

func (c *Client) getSnapshotID(ctx context.Context, playlistID string) (string, error) {
	u := fmt.Sprintf("%s/playlists/%s", c.baseURL, playlistID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", ports.PlatformAPIError{Op: "get playlist snapshot", Err: err}
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return "", ports.PlatformAPIError{Op: "get playlist snapshot", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", ports.PlatformAPIError{Op: "get playlist snapshot", Status: resp.StatusCode}
	}

	var playlist struct {
		SnapshotID string `json:"snapshot_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&playlist); err != nil {
		return "", ports.PlatformAPIError{Op: "get playlist snapshot", Err: fmt.Errorf("decode: %w", err)}
	}
	return playlist.SnapshotID, nil
}
