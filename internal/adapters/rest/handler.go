// Package rest is the HTTP facade for the swipe-to-playlist services. It
// owns no logic: decode, delegate, map errors to statuses in one place.
package rest

import (
	"net/http"

	"github.com/vibecheck-labs/vibecheck/internal/core/ports"
	"github.com/vibecheck-labs/vibecheck/internal/core/services"
)

// Handler manages the HTTP interface for our application.
type Handler struct {
	sessions     *services.SessionManager
	materializer *services.Materializer
	platform     ports.MusicPlatform
	router       *http.ServeMux
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(sessions *services.SessionManager, materializer *services.Materializer, platform ports.MusicPlatform) *Handler {
	h := &Handler{
		sessions:     sessions,
		materializer: materializer,
		platform:     platform,
		router:       http.NewServeMux(),
	}

	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// routes defines the mapping between URLs and methods.
func (h *Handler) routes() {
	h.router.HandleFunc("GET /health", h.HealthCheck)

	h.router.HandleFunc("POST /users/{userID}/sessions", h.CreateSession)
	h.router.HandleFunc("GET /users/{userID}/sessions/{id}", h.GetSession)
	h.router.HandleFunc("GET /users/{userID}/sessions/{id}/deck", h.GetDeck)
	h.router.HandleFunc("POST /users/{userID}/sessions/{id}/decisions", h.RecordDecision)
	h.router.HandleFunc("POST /users/{userID}/sessions/{id}/complete", h.CompleteSession)
	h.router.HandleFunc("POST /users/{userID}/sessions/{id}/playlist", h.MaterializePlaylist)

	h.router.HandleFunc("POST /playlists/{externalID}/play", h.StartPlayback)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "vibecheck is live 🎧"})
}
