package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/vibelink/feedback-service/internal/models"
	"github.com/vibelink/feedback-service/internal/services"
	"github.com/vibelink/feedback-service/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeFailure maps domain errors onto client responses. Anything unrecognized
// is a server-side failure and gets logged.
func writeFailure(w http.ResponseWriter, err error) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, services.ErrInvalidCursor):
		writeError(w, http.StatusBadRequest, "Invalid cursor")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, store.ErrConflict):
		writeError(w, http.StatusConflict, "Feedback already exists for this (match_id, reviewer)")
	default:
		log.Printf("request failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
