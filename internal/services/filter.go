package services

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vibelink/feedback-service/internal/models"
)

// Order is a sort direction.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// ParseOrder parses the order query parameter. Empty defaults to descending,
// matching "newest first" list behavior.
func ParseOrder(s string) (Order, error) {
	switch s {
	case "":
		return OrderDesc, nil
	case string(OrderAsc):
		return OrderAsc, nil
	case string(OrderDesc):
		return OrderDesc, nil
	}
	return "", &models.ValidationError{Message: "order must be one of: asc, desc"}
}

// ProfileSortKey selects the ordering field for profile feedback lists.
type ProfileSortKey string

const (
	ProfileSortCreatedAt         ProfileSortKey = "created_at"
	ProfileSortOverallExperience ProfileSortKey = "overall_experience"
)

// ParseProfileSortKey parses the sort query parameter for profile feedback.
func ParseProfileSortKey(s string) (ProfileSortKey, error) {
	switch s {
	case "":
		return ProfileSortCreatedAt, nil
	case string(ProfileSortCreatedAt):
		return ProfileSortCreatedAt, nil
	case string(ProfileSortOverallExperience):
		return ProfileSortOverallExperience, nil
	}
	return "", &models.ValidationError{Message: "sort must be one of: created_at, overall_experience"}
}

// AppSortKey selects the ordering field for app feedback lists.
type AppSortKey string

const (
	AppSortCreatedAt AppSortKey = "created_at"
	AppSortOverall   AppSortKey = "overall"
)

// ParseAppSortKey parses the sort query parameter for app feedback.
func ParseAppSortKey(s string) (AppSortKey, error) {
	switch s {
	case "":
		return AppSortCreatedAt, nil
	case string(AppSortCreatedAt):
		return AppSortCreatedAt, nil
	case string(AppSortOverall):
		return AppSortOverall, nil
	}
	return "", &models.ValidationError{Message: "sort must be one of: created_at, overall"}
}

const (
	// DefaultLimit is the page size when the limit parameter is absent
	DefaultLimit = 20
	// MaxLimit is the largest accepted page size
	MaxLimit = 100
)

// ValidateLimit bounds a page size to [1, MaxLimit].
func ValidateLimit(limit int) (int, error) {
	if limit < 1 || limit > MaxLimit {
		return 0, &models.ValidationError{Message: "limit must be between 1 and 100"}
	}
	return limit, nil
}

// ParseTagFilter splits a comma-separated tag parameter into a normalized set.
// Returns nil when no usable tags remain, meaning "no tag constraint".
func ParseTagFilter(s string) []string {
	if s == "" {
		return nil
	}
	var tags []string
	for _, part := range strings.Split(s, ",") {
		token := strings.ToLower(strings.TrimSpace(part))
		if token != "" {
			tags = append(tags, token)
		}
	}
	return tags
}

// tagsIntersect reports whether any requested tag appears in the record's tag set.
// Record tags are stored normalized, so comparison is exact.
func tagsIntersect(recordTags, requested []string) bool {
	for _, want := range requested {
		for _, have := range recordTags {
			if have == want {
				return true
			}
		}
	}
	return false
}

// ProfileFilter is the constraint set for profile feedback lists and stats.
type ProfileFilter struct {
	RevieweeProfileID *uuid.UUID
	ReviewerProfileID *uuid.UUID
	MatchID           *uuid.UUID
	MinOverall        *int
	MaxOverall        *int
	Since             *time.Time
	Tags              []string
}

// Match reports whether a record satisfies every supplied constraint.
func (f *ProfileFilter) Match(rec *models.ProfileFeedback) bool {
	if f.RevieweeProfileID != nil && rec.RevieweeProfileID != *f.RevieweeProfileID {
		return false
	}
	if f.ReviewerProfileID != nil && rec.ReviewerProfileID != *f.ReviewerProfileID {
		return false
	}
	if f.MatchID != nil && (rec.MatchID == nil || *rec.MatchID != *f.MatchID) {
		return false
	}
	if f.Since != nil && rec.CreatedAt.Before(*f.Since) {
		return false
	}
	if f.MinOverall != nil && rec.OverallExperience < *f.MinOverall {
		return false
	}
	if f.MaxOverall != nil && rec.OverallExperience > *f.MaxOverall {
		return false
	}
	if len(f.Tags) > 0 && !tagsIntersect(rec.Tags, f.Tags) {
		return false
	}
	return true
}

// FilterProfileFeedback returns the records matching the filter, in input order.
func FilterProfileFeedback(items []*models.ProfileFeedback, f ProfileFilter) []*models.ProfileFeedback {
	out := make([]*models.ProfileFeedback, 0, len(items))
	for _, rec := range items {
		if f.Match(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// SortProfileFeedback orders records by the sort key, ties broken by ID string.
// The direction applies to the whole comparison so page sequences stay stable
// under pagination in either order.
func SortProfileFeedback(items []*models.ProfileFeedback, key ProfileSortKey, order Order) {
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		var cmp int
		switch key {
		case ProfileSortOverallExperience:
			cmp = compareInt(a.OverallExperience, b.OverallExperience)
		default:
			cmp = a.CreatedAt.Compare(b.CreatedAt)
		}
		if cmp == 0 {
			cmp = strings.Compare(a.ID.String(), b.ID.String())
		}
		if order == OrderDesc {
			return cmp > 0
		}
		return cmp < 0
	})
}

// AppFilter is the constraint set for app feedback lists and stats.
type AppFilter struct {
	AuthorProfileID *uuid.UUID
	MinOverall      *int
	MaxOverall      *int
	Since           *time.Time
	Tags            []string
}

// Match reports whether a record satisfies every supplied constraint.
func (f *AppFilter) Match(rec *models.AppFeedback) bool {
	if f.AuthorProfileID != nil && (rec.AuthorProfileID == nil || *rec.AuthorProfileID != *f.AuthorProfileID) {
		return false
	}
	if f.Since != nil && rec.CreatedAt.Before(*f.Since) {
		return false
	}
	if f.MinOverall != nil && rec.Overall < *f.MinOverall {
		return false
	}
	if f.MaxOverall != nil && rec.Overall > *f.MaxOverall {
		return false
	}
	if len(f.Tags) > 0 && !tagsIntersect(rec.Tags, f.Tags) {
		return false
	}
	return true
}

// FilterAppFeedback returns the records matching the filter, in input order.
func FilterAppFeedback(items []*models.AppFeedback, f AppFilter) []*models.AppFeedback {
	out := make([]*models.AppFeedback, 0, len(items))
	for _, rec := range items {
		if f.Match(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// SortAppFeedback orders records by the sort key, ties broken by ID string.
func SortAppFeedback(items []*models.AppFeedback, key AppSortKey, order Order) {
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		var cmp int
		switch key {
		case AppSortOverall:
			cmp = compareInt(a.Overall, b.Overall)
		default:
			cmp = a.CreatedAt.Compare(b.CreatedAt)
		}
		if cmp == 0 {
			cmp = strings.Compare(a.ID.String(), b.ID.String())
		}
		if order == OrderDesc {
			return cmp > 0
		}
		return cmp < 0
	})
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Paginate slices [offset, offset+limit) out of an ordered sequence and emits a
// next-page cursor only when the page came back full, i.e. more data may follow.
func Paginate[T any](items []T, limit int, cursor string) ([]T, *string, error) {
	offset, err := DecodeCursor(cursor)
	if err != nil {
		return nil, nil, err
	}
	if offset > len(items) {
		offset = len(items)
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	page := items[offset:end]
	if len(page) == limit {
		next := EncodeCursor(offset + limit)
		return page, &next, nil
	}
	return page, nil, nil
}
