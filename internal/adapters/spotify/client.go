// Package spotify is the HTTP adapter for the external music platform.
package spotify

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/vibecheck-labs/vibecheck/internal/core/ports"
)

const defaultBaseURL = "https://api.spotify.com/v1"

// batchLimit is the platform's documented ceiling for id-batch lookups.
const batchLimit = 50

// Client is the authenticated HTTP client for the music platform.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	maxRetries  int
	baseBackoff time.Duration
}

// compile-time interface assertion
var _ ports.MusicPlatform = (*Client)(nil)

// NewClient constructs a platform client. The token source supplies the
// bearer token on every request, so refreshes stay transparent to callers.
// A nil token source leaves requests unauthenticated (tests).
func NewClient(ts oauth2.TokenSource, baseURL string) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	if ts != nil {
		httpClient.Transport = &oauth2.Transport{Source: ts}
	}

	maxRetries, baseBackoff := getRetryConfig()
	return &Client{
		httpClient:  httpClient,
		baseURL:     baseURL,
		maxRetries:  maxRetries,
		baseBackoff: baseBackoff,
	}
}
