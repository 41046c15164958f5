package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
)

type createSessionRequest struct {
	Mode string `json:"mode"`
}

type sessionResponse struct {
	ID           string               `json:"id"`
	UserID       string               `json:"user_id"`
	Mode         string               `json:"mode"`
	SwipeResults []domain.SwipeResult `json:"swipe_results"`
	PlaylistID   string               `json:"playlist_id,omitempty"`
	CompletedAt  *time.Time           `json:"completed_at,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}

func toSessionResponse(entry domain.SessionEntry) sessionResponse {
	return sessionResponse{
		ID:           entry.ID,
		UserID:       entry.UserID,
		Mode:         string(entry.Mode),
		SwipeResults: entry.SwipeResults,
		PlaylistID:   entry.PlaylistID,
		CompletedAt:  entry.CompletedAt,
		CreatedAt:    entry.CreatedAt,
	}
}

// CreateSession handles POST /users/{userID}/sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	userID := r.PathValue("userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user id is required")
		return
	}

	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	mode, err := domain.ParseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.sessions.CreateSession(r.Context(), userID, mode)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Location", "/users/"+userID+"/sessions/"+entry.ID)
	writeJSON(w, http.StatusCreated, toSessionResponse(entry))
}

// GetSession handles GET /users/{userID}/sessions/{id}. It resumes the
// session: completed sessions answer 409.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	sessionID := r.PathValue("id")

	entry, err := h.sessions.ResumeSession(r.Context(), userID, sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(entry))
}

// GetDeck handles GET /users/{userID}/sessions/{id}/deck
func (h *Handler) GetDeck(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	sessionID := r.PathValue("id")

	deck, err := h.sessions.Deck(r.Context(), userID, sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, deck)
}

type recordDecisionRequest struct {
	ItemID string `json:"item_id"`
	Liked  bool   `json:"liked"`
}

// RecordDecision handles POST /users/{userID}/sessions/{id}/decisions
func (h *Handler) RecordDecision(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	sessionID := r.PathValue("id")

	var req recordDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ItemID == "" {
		writeError(w, http.StatusBadRequest, "item_id is required")
		return
	}

	if err := h.sessions.RecordDecision(sessionID, req.ItemID, req.Liked); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

type completeSessionRequest struct {
	DeckSize int `json:"deck_size"`
}

// CompleteSession handles POST /users/{userID}/sessions/{id}/complete
func (h *Handler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	userID := r.PathValue("userID")
	sessionID := r.PathValue("id")

	var req completeSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.DeckSize < 1 {
		writeError(w, http.StatusBadRequest, "deck_size must be positive")
		return
	}

	entry, err := h.sessions.CompleteSession(r.Context(), userID, sessionID, req.DeckSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(entry))
}
