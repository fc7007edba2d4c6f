package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vibelink/feedback-service/internal/models"
	"github.com/vibelink/feedback-service/internal/services"
)

// pathID parses the {id} path parameter as a UUID.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, &models.ValidationError{Message: "id must be a valid UUID"}
	}
	return id, nil
}

// queryUUID parses an optional UUID query parameter. Absent means nil.
func queryUUID(r *http.Request, name string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, &models.ValidationError{Message: name + " must be a valid UUID"}
	}
	return &id, nil
}

// queryRating parses an optional 1..5 integer query parameter.
func queryRating(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 || v > 5 {
		return nil, &models.ValidationError{Message: name + " must be an integer between 1 and 5"}
	}
	return &v, nil
}

// queryTime parses an optional timestamp query parameter. RFC3339 is the
// canonical form; a zone-less ISO timestamp is accepted and read as UTC.
func queryTime(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, &models.ValidationError{Message: name + " must be an RFC 3339 timestamp"}
}

// queryLimit parses the limit query parameter, bounded to [1, 100], default 20.
func queryLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return services.DefaultLimit, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &models.ValidationError{Message: "limit must be an integer"}
	}
	return services.ValidateLimit(v)
}
