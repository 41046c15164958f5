package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/vibecheck-labs/vibecheck/internal/core/ports"
)

// StartPlayback starts playback of the playlist on the user's active
// device. The platform answers 204 on success; playback is fire-and-forget.
func (c *Client) StartPlayback(ctx context.Context, playlistID string) error {
	body, err := json.Marshal(map[string]string{
		"context_uri": "spotify:playlist:" + playlistID,
	})
	if err != nil {
		return ports.PlatformAPIError{Op: "start playback", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/me/player/play", bytes.NewReader(body))
	if err != nil {
		return ports.PlatformAPIError{Op: "start playback", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return ports.PlatformAPIError{Op: "start playback", Err: err}
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return ports.PlatformAPIError{Op: "start playback", Status: resp.StatusCode}
	}
	return nil
}

// SetShuffle toggles shuffle on the active device. Non-premium accounts get
// a 403 from the platform; that surfaces like any other non-204.
func (c *Client) SetShuffle(ctx context.Context, on bool) error {
	u := c.baseURL + "/me/player/shuffle?state=" + strconv.FormatBool(on)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, nil)
	if err != nil {
		return ports.PlatformAPIError{Op: "set shuffle", Err: err}
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return ports.PlatformAPIError{Op: "set shuffle", Err: err}
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return ports.PlatformAPIError{Op: "set shuffle", Status: resp.StatusCode}
	}
	return nil
}
