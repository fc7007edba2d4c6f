package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vibelink/feedback-service/internal/models"
	"github.com/vibelink/feedback-service/internal/services"
	"github.com/vibelink/feedback-service/internal/store"
)

// ProfileFeedbackHandler serves the /feedback/profile resource.
type ProfileFeedbackHandler struct {
	store store.ProfileFeedbackStore
}

func NewProfileFeedbackHandler(s store.ProfileFeedbackStore) *ProfileFeedbackHandler {
	return &ProfileFeedbackHandler{store: s}
}

// ListProfileFeedbackResponse is one page of profile feedback
type ListProfileFeedbackResponse struct {
	Items      []*models.ProfileFeedback `json:"items"`
	NextCursor *string                   `json:"next_cursor"`
	Count      int                       `json:"count"`
}

// Create handles POST /feedback/profile
func (h *ProfileFeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload models.ProfileFeedbackCreate
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

// Get handles GET /feedback/profile/{id}
func (h *ProfileFeedbackHandler) Get(w http.ResponseWriter, r *http.Request) {
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

// Update handles PATCH /feedback/profile/{id}
func (h *ProfileFeedbackHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeFailure(w, err)
		return
	}

	var patch models.ProfileFeedbackPatch
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

// Delete handles DELETE /feedback/profile/{id}. Deleting an unknown id is an
// idempotent no-op, so the response is 204 either way.
func (h *ProfileFeedbackHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// List handles GET /feedback/profile with filtering, sorting and cursor pagination
func (h *ProfileFeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		writeFailure(w, err)
		return
	}
	sortKey, err := services.ParseProfileSortKey(r.URL.Query().Get("sort"))
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

	matched := services.FilterProfileFeedback(items, filter)
	services.SortProfileFeedback(matched, sortKey, order)

	page, nextCursor, err := services.Paginate(matched, limit, r.URL.Query().Get("cursor"))
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ListProfileFeedbackResponse{
		Items:      page,
		NextCursor: nextCursor,
		Count:      len(page),
	})
}

// Stats handles GET /feedback/profile/stats; reviewee_profile_id is required.
func (h *ProfileFeedbackHandler) Stats(w http.ResponseWriter, r *http.Request) {
	reviewee, err := queryUUID(r, "reviewee_profile_id")
	if err != nil {
		writeFailure(w, err)
		return
	}
	if reviewee == nil {
		writeError(w, http.StatusBadRequest, "reviewee_profile_id is required")
		return
	}
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

	matched := services.FilterProfileFeedback(items, services.ProfileFilter{
		RevieweeProfileID: reviewee,
		Since:             since,
		Tags:              services.ParseTagFilter(r.URL.Query().Get("tags")),
	})

	writeJSON(w, http.StatusOK, services.ComputeProfileStats(*reviewee, matched))
}

func (h *ProfileFeedbackHandler) parseFilter(r *http.Request) (services.ProfileFilter, error) {
	var filter services.ProfileFilter
	var err error

	if filter.RevieweeProfileID, err = queryUUID(r, "reviewee_profile_id"); err != nil {
		return filter, err
	}
	if filter.ReviewerProfileID, err = queryUUID(r, "reviewer_profile_id"); err != nil {
		return filter, err
	}
	if filter.MatchID, err = queryUUID(r, "match_id"); err != nil {
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
