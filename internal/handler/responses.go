package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/redditdevs/VerifyBot_Go/internal/domain"
	"github.com/redditdevs/VerifyBot_Go/internal/logger"
)

// MessageResponse is a generic success payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is a generic error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps domain errors onto HTTP statuses. Anticipated
// conditions (member not found, invalid code, no record) become 4xx with the
// user-facing message; configuration and remote failures become 5xx.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	switch {
	case errors.Is(err, domain.ErrMemberNotFound):
		writeError(w, http.StatusNotFound, ErrMsgMemberNotFound)
	case errors.Is(err, domain.ErrInvalidCode):
		writeError(w, http.StatusBadRequest, ErrMsgInvalidCode)
	case errors.Is(err, domain.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, ErrMsgNoLinkedUser)
	case errors.Is(err, domain.ErrConfigMissing):
		log.Error("Configuration incomplete", "error", err)
		writeError(w, http.StatusInternalServerError, ErrMsgConfigIncomplete)
	case errors.Is(err, domain.ErrRemoteCallFailed):
		log.Error("Remote call failed", "error", err)
		writeError(w, http.StatusBadGateway, ErrMsgDiscordFailed)
	default:
		log.Error("Unexpected error", "error", err)
		writeError(w, http.StatusInternalServerError, ErrMsgInternal)
	}
}
