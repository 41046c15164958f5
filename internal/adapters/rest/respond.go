package rest

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
	"github.com/vibecheck-labs/vibecheck/internal/core/ports"
)

const errCodeIncompleteDeck = "INCOMPLETE_DECK"

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeErrorWithCode(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

func isJSONContentType(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}

// writeServiceError is the single mapping point from the error taxonomy to
// HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrIncompleteDeck):
		writeErrorWithCode(w, http.StatusConflict, err.Error(), errCodeIncompleteDeck)
	case errors.Is(err, domain.ErrRevisionConflict),
		errors.Is(err, domain.ErrSessionComplete),
		errors.Is(err, domain.ErrAlreadyLinked),
		errors.Is(err, domain.ErrNotCompleted):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidPlaylistName):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ports.ErrRecommendation), errors.Is(err, ports.ErrPlatform):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
