package services

import (
	"math"
	"sort"
	"strconv"

	"github.com/google/uuid"

	"github.com/vibelink/feedback-service/internal/models"
)

// TagCount is one entry of a top-tags ranking.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// ProfileStats summarizes a filtered set of profile feedback for one reviewee.
type ProfileStats struct {
	RevieweeProfileID             uuid.UUID           `json:"reviewee_profile_id"`
	CountTotal                    int                 `json:"count_total"`
	AvgOverallExperience          *float64            `json:"avg_overall_experience"`
	DistributionOverallExperience map[string]int      `json:"distribution_overall_experience"`
	FacetAverages                 map[string]*float64 `json:"facet_averages"`
	TopTags                       []TagCount          `json:"top_tags"`
}

// AppStats summarizes a filtered set of app feedback.
type AppStats struct {
	CountTotal          int                 `json:"count_total"`
	AvgOverall          *float64            `json:"avg_overall"`
	DistributionOverall map[string]int      `json:"distribution_overall"`
	FacetAverages       map[string]*float64 `json:"facet_averages"`
	TopTags             []TagCount          `json:"top_tags"`
}

// Round3 rounds to three decimal places, halves away from zero.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// ratingDistribution counts occurrences of each rating value 1..5.
// Every key is present even when the input is empty.
func ratingDistribution(values []int) map[string]int {
	dist := make(map[string]int, 5)
	for k := 1; k <= 5; k++ {
		dist[strconv.Itoa(k)] = 0
	}
	for _, v := range values {
		if v >= 1 && v <= 5 {
			dist[strconv.Itoa(v)]++
		}
	}
	return dist
}

// average returns the rounded mean of the values, or nil when there are none.
func average(values []int) *float64 {
	if len(values) == 0 {
		return nil
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	avg := Round3(float64(sum) / float64(len(values)))
	return &avg
}

// facetValues collects the present values of an optional rating dimension,
// skipping records that did not supply it.
func facetValues[T any](items []T, get func(T) *int) []int {
	values := make([]int, 0, len(items))
	for _, item := range items {
		if v := get(item); v != nil {
			values = append(values, *v)
		}
	}
	return values
}

// topTags ranks tags by frequency, ties broken by tag string ascending,
// capped at ten entries. Always returns a non-nil slice.
func topTags(counts map[string]int) []TagCount {
	ranked := make([]TagCount, 0, len(counts))
	for tag, count := range counts {
		ranked = append(ranked, TagCount{Tag: tag, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Tag < ranked[j].Tag
	})
	if len(ranked) > 10 {
		ranked = ranked[:10]
	}
	return ranked
}

// ComputeProfileStats aggregates an already-filtered profile feedback collection.
func ComputeProfileStats(reviewee uuid.UUID, items []*models.ProfileFeedback) ProfileStats {
	overall := make([]int, 0, len(items))
	tagCounts := make(map[string]int)
	for _, rec := range items {
		overall = append(overall, rec.OverallExperience)
		for _, tag := range rec.Tags {
			tagCounts[tag]++
		}
	}

	return ProfileStats{
		RevieweeProfileID:             reviewee,
		CountTotal:                    len(items),
		AvgOverallExperience:          average(overall),
		DistributionOverallExperience: ratingDistribution(overall),
		FacetAverages: map[string]*float64{
			"safety_feeling": average(facetValues(items, func(r *models.ProfileFeedback) *int { return r.SafetyFeeling })),
			"respectfulness": average(facetValues(items, func(r *models.ProfileFeedback) *int { return r.Respectfulness })),
		},
		TopTags: topTags(tagCounts),
	}
}

// ComputeAppStats aggregates an already-filtered app feedback collection.
func ComputeAppStats(items []*models.AppFeedback) AppStats {
	overall := make([]int, 0, len(items))
	tagCounts := make(map[string]int)
	for _, rec := range items {
		overall = append(overall, rec.Overall)
		for _, tag := range rec.Tags {
			tagCounts[tag]++
		}
	}

	return AppStats{
		CountTotal:          len(items),
		AvgOverall:          average(overall),
		DistributionOverall: ratingDistribution(overall),
		FacetAverages: map[string]*float64{
			"usability":          average(facetValues(items, func(r *models.AppFeedback) *int { return r.Usability })),
			"reliability":        average(facetValues(items, func(r *models.AppFeedback) *int { return r.Reliability })),
			"performance":        average(facetValues(items, func(r *models.AppFeedback) *int { return r.Performance })),
			"support_experience": average(facetValues(items, func(r *models.AppFeedback) *int { return r.SupportExperience })),
		},
		TopTags: topTags(tagCounts),
	}
}
