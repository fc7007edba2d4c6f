package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppFeedbackCRUDFlow(t *testing.T) {
	router := newTestRouter()
	author := uuid.New()

	rec := doJSON(t, router, http.MethodPost, "/feedback/app", map[string]any{
		"author_profile_id": author.String(),
		"overall":           3,
		"usability":         4,
		"comment":           "search is slow on long lists",
		"tags":              []string{"Search", "performance"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]any
	decodeBody(t, rec, &created)
	id := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, author.String(), created["author_profile_id"])
	assert.Equal(t, float64(3), created["overall"])
	assert.Equal(t, []any{"search", "performance"}, created["tags"])
	assert.Nil(t, created["reliability"])

	rec = doJSON(t, router, http.MethodGet, "/feedback/app/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPatch, "/feedback/app/"+id, map[string]any{
		"overall":     5,
		"reliability": 4,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var patched map[string]any
	decodeBody(t, rec, &patched)
	assert.Equal(t, float64(5), patched["overall"])
	assert.Equal(t, float64(4), patched["reliability"])
	assert.Equal(t, float64(4), patched["usability"])

	rec = doJSON(t, router, http.MethodDelete, "/feedback/app/"+id, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/feedback/app/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAppFeedbackAnonymousCreate(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/feedback/app", map[string]any{
		"overall": 2,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]any
	decodeBody(t, rec, &created)
	assert.Nil(t, created["author_profile_id"])
}

func TestAppFeedbackValidation(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/feedback/app", map[string]any{
		"overall": 0,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/feedback/app", map[string]any{
		"overall":   3,
		"usability": 6,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPatch, "/feedback/app/"+uuid.New().String(), map[string]any{
		"overall": 9,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Valid patch against an unknown id is a 404, not a 400
	rec = doJSON(t, router, http.MethodPatch, "/feedback/app/"+uuid.New().String(), map[string]any{
		"overall": 4,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAppFeedbackListFilterByAuthor(t *testing.T) {
	router := newTestRouter()
	author := uuid.New()

	for i := 0; i < 3; i++ {
		rec := doJSON(t, router, http.MethodPost, "/feedback/app", map[string]any{
			"author_profile_id": author.String(),
			"overall":           3 + i,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	// One anonymous submission, excluded by the author filter
	rec := doJSON(t, router, http.MethodPost, "/feedback/app", map[string]any{"overall": 1})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/feedback/app?author_profile_id="+author.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Items []map[string]any `json:"items"`
		Count int              `json:"count"`
	}
	decodeBody(t, rec, &page)
	assert.Equal(t, 3, page.Count)
	for _, item := range page.Items {
		assert.Equal(t, author.String(), item["author_profile_id"])
	}

	rec = doJSON(t, router, http.MethodGet, "/feedback/app?min_overall=4", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &page)
	assert.Equal(t, 2, page.Count)
}

func TestAppFeedbackListSortedByOverall(t *testing.T) {
	router := newTestRouter()
	for _, overall := range []int{2, 5, 1, 4} {
		rec := doJSON(t, router, http.MethodPost, "/feedback/app", map[string]any{"overall": overall})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/feedback/app?sort=overall&order=desc", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Items []map[string]any `json:"items"`
	}
	decodeBody(t, rec, &page)
	require.Len(t, page.Items, 4)
	expected := []float64{5, 4, 2, 1}
	for i, item := range page.Items {
		assert.Equal(t, expected[i], item["overall"])
	}

	// The profile resource's sort key is not valid here
	rec = doJSON(t, router, http.MethodGet, "/feedback/app?sort=overall_experience", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAppFeedbackStats(t *testing.T) {
	router := newTestRouter()

	for _, c := range []struct {
		overall   int
		usability *int
		tags      []string
	}{
		{5, intPtr(4), []string{"onboarding"}},
		{4, intPtr(2), []string{"onboarding", "search"}},
		{4, nil, nil},
	} {
		payload := map[string]any{"overall": c.overall}
		if c.usability != nil {
			payload["usability"] = *c.usability
		}
		if c.tags != nil {
			payload["tags"] = c.tags
		}
		rec := doJSON(t, router, http.MethodPost, "/feedback/app", payload)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/feedback/app/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats struct {
		CountTotal    int                 `json:"count_total"`
		AvgOverall    *float64            `json:"avg_overall"`
		Distribution  map[string]int      `json:"distribution_overall"`
		FacetAverages map[string]*float64 `json:"facet_averages"`
		TopTags       []map[string]any    `json:"top_tags"`
	}
	decodeBody(t, rec, &stats)
	assert.Equal(t, 3, stats.CountTotal)
	require.NotNil(t, stats.AvgOverall)
	assert.InDelta(t, 4.333, *stats.AvgOverall, 1e-9)
	assert.Equal(t, map[string]int{"1": 0, "2": 0, "3": 0, "4": 2, "5": 1}, stats.Distribution)

	// usability averages only the two records that supplied it
	require.NotNil(t, stats.FacetAverages["usability"])
	assert.InDelta(t, 3.0, *stats.FacetAverages["usability"], 1e-9)
	assert.Nil(t, stats.FacetAverages["reliability"])

	require.Len(t, stats.TopTags, 2)
	assert.Equal(t, "onboarding", stats.TopTags[0]["tag"])
	assert.Equal(t, float64(2), stats.TopTags[0]["count"])

	// Tag filter narrows the aggregate
	rec = doJSON(t, router, http.MethodGet, "/feedback/app/stats?tags=search", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &stats)
	assert.Equal(t, 1, stats.CountTotal)
	assert.InDelta(t, 4.0, *stats.AvgOverall, 1e-9)
}

func TestAppFeedbackStatsEmpty(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodGet, "/feedback/app/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats struct {
		CountTotal   int            `json:"count_total"`
		AvgOverall   *float64       `json:"avg_overall"`
		Distribution map[string]int `json:"distribution_overall"`
		TopTags      []any          `json:"top_tags"`
	}
	decodeBody(t, rec, &stats)
	assert.Equal(t, 0, stats.CountTotal)
	assert.Nil(t, stats.AvgOverall)
	assert.Equal(t, map[string]int{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0}, stats.Distribution)
	assert.NotNil(t, stats.TopTags)
	assert.Len(t, stats.TopTags, 0)
}

func TestAppFeedbackListSince(t *testing.T) {
	router := newTestRouter()
	rec := doJSON(t, router, http.MethodPost, "/feedback/app", map[string]any{"overall": 3})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/feedback/app?since=2000-01-01", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Count int `json:"count"`
	}
	decodeBody(t, rec, &page)
	assert.Equal(t, 1, page.Count)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/feedback/app?since=%d-01-01", 2100), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &page)
	assert.Equal(t, 0, page.Count)

	rec = doJSON(t, router, http.MethodGet, "/feedback/app?since=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func intPtr(v int) *int { return &v }
