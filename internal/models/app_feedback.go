package models

import (
	"time"

	"github.com/google/uuid"
)

// AppFeedback is feedback about the application itself. The author is optional
// so anonymous submissions are possible.
type AppFeedback struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	AuthorProfileID *uuid.UUID `json:"author_profile_id"`

	// Ratings
	Overall           int  `json:"overall"`
	Usability         *int `json:"usability"`
	Reliability       *int `json:"reliability"`
	Performance       *int `json:"performance"`
	SupportExperience *int `json:"support_experience"`

	// Qualitative
	Headline *string  `json:"headline"`
	Comment  *string  `json:"comment"`
	Tags     []string `json:"tags"`
}

// Clone returns a deep copy so store internals never leak shared pointers.
func (f *AppFeedback) Clone() *AppFeedback {
	c := *f
	c.AuthorProfileID = cloneUUIDPtr(f.AuthorProfileID)
	c.Usability = cloneIntPtr(f.Usability)
	c.Reliability = cloneIntPtr(f.Reliability)
	c.Performance = cloneIntPtr(f.Performance)
	c.SupportExperience = cloneIntPtr(f.SupportExperience)
	c.Headline = cloneStringPtr(f.Headline)
	c.Comment = cloneStringPtr(f.Comment)
	if f.Tags != nil {
		c.Tags = append([]string(nil), f.Tags...)
	}
	return &c
}

// AppFeedbackCreate is the payload for creating app feedback.
type AppFeedbackCreate struct {
	AuthorProfileID *uuid.UUID `json:"author_profile_id"`

	Overall           int  `json:"overall"`
	Usability         *int `json:"usability"`
	Reliability       *int `json:"reliability"`
	Performance       *int `json:"performance"`
	SupportExperience *int `json:"support_experience"`

	Headline *string  `json:"headline"`
	Comment  *string  `json:"comment"`
	Tags     []string `json:"tags"`
}

// Validate checks ranges and normalizes tags in place.
func (p *AppFeedbackCreate) Validate() error {
	if p.Overall < 1 || p.Overall > 5 {
		return validationErrorf("overall must be between 1 and 5")
	}
	for _, facet := range []struct {
		name string
		v    *int
	}{
		{"usability", p.Usability},
		{"reliability", p.Reliability},
		{"performance", p.Performance},
		{"support_experience", p.SupportExperience},
	} {
		if err := validateRating(facet.name, facet.v); err != nil {
			return err
		}
	}
	if err := validateShortText("headline", p.Headline, MaxHeadlineLength); err != nil {
		return err
	}
	if err := validateShortText("comment", p.Comment, MaxCommentLength); err != nil {
		return err
	}
	tags, err := NormalizeTags(p.Tags)
	if err != nil {
		return err
	}
	p.Tags = tags
	return nil
}

// NewRecord builds the stored record, assigning identity and timestamps.
func (p *AppFeedbackCreate) NewRecord(now time.Time) *AppFeedback {
	return &AppFeedback{
		ID:                uuid.New(),
		CreatedAt:         now,
		UpdatedAt:         now,
		AuthorProfileID:   p.AuthorProfileID,
		Overall:           p.Overall,
		Usability:         p.Usability,
		Reliability:       p.Reliability,
		Performance:       p.Performance,
		SupportExperience: p.SupportExperience,
		Headline:          p.Headline,
		Comment:           p.Comment,
		Tags:              p.Tags,
	}
}

// AppFeedbackPatch is a partial update. Nil fields are left unchanged.
type AppFeedbackPatch struct {
	AuthorProfileID *uuid.UUID `json:"author_profile_id"`

	Overall           *int `json:"overall"`
	Usability         *int `json:"usability"`
	Reliability       *int `json:"reliability"`
	Performance       *int `json:"performance"`
	SupportExperience *int `json:"support_experience"`

	Headline *string  `json:"headline"`
	Comment  *string  `json:"comment"`
	Tags     []string `json:"tags"`
}

// Validate checks the supplied subset and normalizes tags in place.
func (p *AppFeedbackPatch) Validate() error {
	for _, facet := range []struct {
		name string
		v    *int
	}{
		{"overall", p.Overall},
		{"usability", p.Usability},
		{"reliability", p.Reliability},
		{"performance", p.Performance},
		{"support_experience", p.SupportExperience},
	} {
		if err := validateRating(facet.name, facet.v); err != nil {
			return err
		}
	}
	if err := validateShortText("headline", p.Headline, MaxHeadlineLength); err != nil {
		return err
	}
	if err := validateShortText("comment", p.Comment, MaxCommentLength); err != nil {
		return err
	}
	tags, err := NormalizeTags(p.Tags)
	if err != nil {
		return err
	}
	p.Tags = tags
	return nil
}

// Apply copies the supplied fields onto the record and refreshes the update timestamp.
func (p *AppFeedbackPatch) Apply(f *AppFeedback, now time.Time) {
	if p.AuthorProfileID != nil {
		f.AuthorProfileID = p.AuthorProfileID
	}
	if p.Overall != nil {
		f.Overall = *p.Overall
	}
	if p.Usability != nil {
		f.Usability = p.Usability
	}
	if p.Reliability != nil {
		f.Reliability = p.Reliability
	}
	if p.Performance != nil {
		f.Performance = p.Performance
	}
	if p.SupportExperience != nil {
		f.SupportExperience = p.SupportExperience
	}
	if p.Headline != nil {
		f.Headline = p.Headline
	}
	if p.Comment != nil {
		f.Comment = p.Comment
	}
	if p.Tags != nil {
		f.Tags = p.Tags
	}
	f.UpdatedAt = now
}
