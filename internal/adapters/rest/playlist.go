package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
)

type materializeRequest struct {
	Name string `json:"name"`
}

type playlistResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CreatedBy   string    `json:"created_by"`
	Image       string    `json:"image"`
	ExternalID  string    `json:"external_id"`
	TimeCreated time.Time `json:"time_created"`
	Description string    `json:"description"`
	Privacy     string    `json:"privacy"`
}

func toPlaylistResponse(p domain.Playlist) playlistResponse {
	return playlistResponse{
		ID:          p.ID,
		Name:        p.Name,
		CreatedBy:   p.CreatedBy,
		Image:       p.Image,
		ExternalID:  p.ExternalID,
		TimeCreated: p.TimeCreated,
		Description: p.Description,
		Privacy:     p.Privacy,
	}
}

// MaterializePlaylist handles POST /users/{userID}/sessions/{id}/playlist
func (h *Handler) MaterializePlaylist(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	userID := r.PathValue("userID")
	sessionID := r.PathValue("id")

	var req materializeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	playlist, err := h.materializer.Materialize(r.Context(), userID, sessionID, req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPlaylistResponse(playlist))
}

type startPlaybackRequest struct {
	Shuffle bool `json:"shuffle"`
}

// StartPlayback handles POST /playlists/{externalID}/play. The optional
// body toggles shuffle before playback starts.
func (h *Handler) StartPlayback(w http.ResponseWriter, r *http.Request) {
	externalID := r.PathValue("externalID")
	if externalID == "" {
		writeError(w, http.StatusBadRequest, "playlist id is required")
		return
	}

	var req startPlaybackRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	if req.Shuffle {
		if err := h.platform.SetShuffle(r.Context(), true); err != nil {
			writeServiceError(w, err)
			return
		}
	}

	if err := h.platform.StartPlayback(r.Context(), externalID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
