package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vibelink/feedback-service/internal/models"
	"github.com/vibelink/feedback-service/internal/services"
	"github.com/vibelink/feedback-service/internal/store"
)

// AppFeedbackHandler serves the /feedback/app resource.
type AppFeedbackHandler struct {
	store store.AppFeedbackStore
}

func NewAppFeedbackHandler(s store.AppFeedbackStore) *AppFeedbackHandler {
	return &AppFeedbackHandler{store: s}
}

// ListAppFeedbackResponse is one page of app feedback
type ListAppFeedbackResponse struct {
	Items      []*models.AppFeedback `json:"items"`
	NextCursor *string               `json:"next_cursor"`
	Count      int                   `json:"count"`
}

// Create handles POST /feedback/app
func (h *AppFeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload models.AppFeedbackCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := payload.Validate(); err != nil {
		writeFailure(w, err)
		return
	}

	rec := payload.NewRecord(time.Now().UTC())
	if err := h.store.Insert(r.Context(), rec); err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

// Get handles GET /feedback/app/{id}
func (h *AppFeedbackHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeFailure(w, err)
		return
	}

	rec, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// Update handles PATCH /feedback/app/{id}
func (h *AppFeedbackHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeFailure(w, err)
		return
	}

	var patch models.AppFeedbackPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := patch.Validate(); err != nil {
		writeFailure(w, err)
		return
	}

	rec, err := h.store.Update(r.Context(), id, &patch)
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// Delete handles DELETE /feedback/app/{id}; idempotent 204 like the profile resource.
func (h *AppFeedbackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeFailure(w, err)
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		writeFailure(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /feedback/app with filtering, sorting and cursor pagination
func (h *AppFeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		writeFailure(w, err)
		return
	}
	sortKey, err := services.ParseAppSortKey(r.URL.Query().Get("sort"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	order, err := services.ParseOrder(r.URL.Query().Get("order"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	limit, err := queryLimit(r)
	if err != nil {
		writeFailure(w, err)
		return
	}

	items, err := h.store.Scan(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}

	matched := services.FilterAppFeedback(items, filter)
	services.SortAppFeedback(matched, sortKey, order)

	page, nextCursor, err := services.Paginate(matched, limit, r.URL.Query().Get("cursor"))
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ListAppFeedbackResponse{
		Items:      page,
		NextCursor: nextCursor,
		Count:      len(page),
	})
}

// Stats handles GET /feedback/app/stats
func (h *AppFeedbackHandler) Stats(w http.ResponseWriter, r *http.Request) {
	since, err := queryTime(r, "since")
	if err != nil {
		writeFailure(w, err)
		return
	}

	items, err := h.store.Scan(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}

	matched := services.FilterAppFeedback(items, services.AppFilter{
		Since: since,
		Tags:  services.ParseTagFilter(r.URL.Query().Get("tags")),
	})

	writeJSON(w, http.StatusOK, services.ComputeAppStats(matched))
}

func (h *AppFeedbackHandler) parseFilter(r *http.Request) (services.AppFilter, error) {
	var filter services.AppFilter
	var err error

	if filter.AuthorProfileID, err = queryUUID(r, "author_profile_id"); err != nil {
		return filter, err
	}
	if filter.MinOverall, err = queryRating(r, "min_overall"); err != nil {
		return filter, err
	}
	if filter.MaxOverall, err = queryRating(r, "max_overall"); err != nil {
		return filter, err
	}
	if filter.Since, err = queryTime(r, "since"); err != nil {
		return filter, err
	}
	filter.Tags = services.ParseTagFilter(r.URL.Query().Get("tags"))
	return filter, nil
}
