package models

import (
	"time"

	"github.com/google/uuid"
)

// ProfileFeedback is one profile's feedback about another, optionally tied to a match.
type ProfileFeedback struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ReviewerProfileID uuid.UUID  `json:"reviewer_profile_id"`
	RevieweeProfileID uuid.UUID  `json:"reviewee_profile_id"`
	MatchID           *uuid.UUID `json:"match_id"`

	// Ratings / outcomes
	OverallExperience int   `json:"overall_experience"`
	WouldMeetAgain    *bool `json:"would_meet_again"`
	SafetyFeeling     *int  `json:"safety_feeling"`
	Respectfulness    *int  `json:"respectfulness"`

	// Qualitative
	Headline *string  `json:"headline"`
	Comment  *string  `json:"comment"`
	Tags     []string `json:"tags"`
}

// Clone returns a deep copy so store internals never leak shared pointers.
func (f *ProfileFeedback) Clone() *ProfileFeedback {
	c := *f
	c.MatchID = cloneUUIDPtr(f.MatchID)
	c.WouldMeetAgain = cloneBoolPtr(f.WouldMeetAgain)
	c.SafetyFeeling = cloneIntPtr(f.SafetyFeeling)
	c.Respectfulness = cloneIntPtr(f.Respectfulness)
	c.Headline = cloneStringPtr(f.Headline)
	c.Comment = cloneStringPtr(f.Comment)
	if f.Tags != nil {
		c.Tags = append([]string(nil), f.Tags...)
	}
	return &c
}

// ProfileFeedbackCreate is the payload for creating profile feedback.
type ProfileFeedbackCreate struct {
	ReviewerProfileID uuid.UUID  `json:"reviewer_profile_id"`
	RevieweeProfileID uuid.UUID  `json:"reviewee_profile_id"`
	MatchID           *uuid.UUID `json:"match_id"`

	OverallExperience int   `json:"overall_experience"`
	WouldMeetAgain    *bool `json:"would_meet_again"`
	SafetyFeeling     *int  `json:"safety_feeling"`
	Respectfulness    *int  `json:"respectfulness"`

	Headline *string  `json:"headline"`
	Comment  *string  `json:"comment"`
	Tags     []string `json:"tags"`
}

// Validate checks ranges and normalizes tags in place.
func (p *ProfileFeedbackCreate) Validate() error {
	if p.ReviewerProfileID == uuid.Nil {
		return validationErrorf("reviewer_profile_id is required")
	}
	if p.RevieweeProfileID == uuid.Nil {
		return validationErrorf("reviewee_profile_id is required")
	}
	if p.ReviewerProfileID == p.RevieweeProfileID {
		return validationErrorf("reviewer_profile_id must not equal reviewee_profile_id")
	}
	if p.OverallExperience < 1 || p.OverallExperience > 5 {
		return validationErrorf("overall_experience must be between 1 and 5")
	}
	if err := validateRating("safety_feeling", p.SafetyFeeling); err != nil {
		return err
	}
	if err := validateRating("respectfulness", p.Respectfulness); err != nil {
		return err
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
func (p *ProfileFeedbackCreate) NewRecord(now time.Time) *ProfileFeedback {
	return &ProfileFeedback{
		ID:                uuid.New(),
		CreatedAt:         now,
		UpdatedAt:         now,
		ReviewerProfileID: p.ReviewerProfileID,
		RevieweeProfileID: p.RevieweeProfileID,
		MatchID:           p.MatchID,
		OverallExperience: p.OverallExperience,
		WouldMeetAgain:    p.WouldMeetAgain,
		SafetyFeeling:     p.SafetyFeeling,
		Respectfulness:    p.Respectfulness,
		Headline:          p.Headline,
		Comment:           p.Comment,
		Tags:              p.Tags,
	}
}

// ProfileFeedbackPatch is a partial update. Nil fields are left unchanged.
type ProfileFeedbackPatch struct {
	ReviewerProfileID *uuid.UUID `json:"reviewer_profile_id"`
	RevieweeProfileID *uuid.UUID `json:"reviewee_profile_id"`
	MatchID           *uuid.UUID `json:"match_id"`

	OverallExperience *int  `json:"overall_experience"`
	WouldMeetAgain    *bool `json:"would_meet_again"`
	SafetyFeeling     *int  `json:"safety_feeling"`
	Respectfulness    *int  `json:"respectfulness"`

	Headline *string  `json:"headline"`
	Comment  *string  `json:"comment"`
	Tags     []string `json:"tags"`
}

// Validate checks the supplied subset and normalizes tags in place.
func (p *ProfileFeedbackPatch) Validate() error {
	if p.ReviewerProfileID != nil && p.RevieweeProfileID != nil &&
		*p.ReviewerProfileID == *p.RevieweeProfileID {
		return validationErrorf("reviewer_profile_id must not equal reviewee_profile_id")
	}
	if err := validateRating("overall_experience", p.OverallExperience); err != nil {
		return err
	}
	if err := validateRating("safety_feeling", p.SafetyFeeling); err != nil {
		return err
	}
	if err := validateRating("respectfulness", p.Respectfulness); err != nil {
		return err
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
func (p *ProfileFeedbackPatch) Apply(f *ProfileFeedback, now time.Time) {
	if p.ReviewerProfileID != nil {
		f.ReviewerProfileID = *p.ReviewerProfileID
	}
	if p.RevieweeProfileID != nil {
		f.RevieweeProfileID = *p.RevieweeProfileID
	}
	if p.MatchID != nil {
		f.MatchID = p.MatchID
	}
	if p.OverallExperience != nil {
		f.OverallExperience = *p.OverallExperience
	}
	if p.WouldMeetAgain != nil {
		f.WouldMeetAgain = p.WouldMeetAgain
	}
	if p.SafetyFeeling != nil {
		f.SafetyFeeling = p.SafetyFeeling
	}
	if p.Respectfulness != nil {
		f.Respectfulness = p.Respectfulness
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

func cloneUUIDPtr(v *uuid.UUID) *uuid.UUID {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneBoolPtr(v *bool) *bool {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneIntPtr(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneStringPtr(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
