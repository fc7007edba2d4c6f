package models

import (
	"fmt"
	"strings"
)

const (
	// MaxTags is the maximum number of tags on a single feedback record
	MaxTags = 20
	// MaxTagLength is the maximum length of a single tag
	MaxTagLength = 64
	// MaxHeadlineLength is the maximum length of the headline field
	MaxHeadlineLength = 120
	// MaxCommentLength is the maximum length of the comment field
	MaxCommentLength = 2000
)

// ValidationError reports a client-supplied value that failed validation.
// Handlers map it to a 400 response.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// validateRating checks an optional 1..5 rating field.
func validateRating(field string, v *int) error {
	if v == nil {
		return nil
	}
	if *v < 1 || *v > 5 {
		return validationErrorf("%s must be between 1 and 5", field)
	}
	return nil
}

func validateShortText(field string, v *string, max int) error {
	if v == nil {
		return nil
	}
	if len(*v) < 1 || len(*v) > max {
		return validationErrorf("%s must be between 1 and %d characters", field, max)
	}
	return nil
}

// NormalizeTags trims and lowercases each tag, dropping empty tokens.
// An emptied list normalizes to nil so absent and empty look the same downstream.
func NormalizeTags(tags []string) ([]string, error) {
	if tags == nil {
		return nil, nil
	}
	if len(tags) > MaxTags {
		return nil, validationErrorf("tags cannot contain more than %d entries", MaxTags)
	}
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		token := strings.ToLower(strings.TrimSpace(t))
		if token == "" {
			continue
		}
		if len(token) > MaxTagLength {
			return nil, validationErrorf("each tag must be at most %d characters", MaxTagLength)
		}
		cleaned = append(cleaned, token)
	}
	if len(cleaned) == 0 {
		return nil, nil
	}
	return cleaned, nil
}
