package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibelink/feedback-service/internal/models"
)

func newProfileRecord(reviewer, reviewee uuid.UUID, matchID *uuid.UUID) *models.ProfileFeedback {
	now := time.Now().UTC()
	return &models.ProfileFeedback{
		ID:                uuid.New(),
		CreatedAt:         now,
		UpdatedAt:         now,
		ReviewerProfileID: reviewer,
		RevieweeProfileID: reviewee,
		MatchID:           matchID,
		OverallExperience: 4,
		Tags:              []string{"punctual"},
	}
}

func TestMemoryProfileCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryProfileFeedbackStore()
	rec := newProfileRecord(uuid.New(), uuid.New(), nil)

	require.NoError(t, s.Insert(ctx, rec))

	got, err := s.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.OverallExperience, got.OverallExperience)

	comment := "updated after a second meetup"
	updated, err := s.Update(ctx, rec.ID, &models.ProfileFeedbackPatch{Comment: &comment})
	require.NoError(t, err)
	require.NotNil(t, updated.Comment)
	assert.Equal(t, comment, *updated.Comment)
	assert.Equal(t, rec.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(rec.UpdatedAt))

	require.NoError(t, s.Delete(ctx, rec.ID))
	_, err = s.GetByID(ctx, rec.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryProfileUniqueness(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryProfileFeedbackStore()
	matchID := uuid.New()
	reviewer := uuid.New()

	first := newProfileRecord(reviewer, uuid.New(), &matchID)
	require.NoError(t, s.Insert(ctx, first))

	// Same (match_id, reviewer) pair conflicts
	second := newProfileRecord(reviewer, uuid.New(), &matchID)
	assert.ErrorIs(t, s.Insert(ctx, second), ErrConflict)

	// A different reviewer on the same match is fine
	third := newProfileRecord(uuid.New(), uuid.New(), &matchID)
	assert.NoError(t, s.Insert(ctx, third))

	// No match id means no constraint at all
	assert.NoError(t, s.Insert(ctx, newProfileRecord(reviewer, uuid.New(), nil)))
	assert.NoError(t, s.Insert(ctx, newProfileRecord(reviewer, uuid.New(), nil)))

	// After deleting the first, the previously conflicting insert succeeds
	require.NoError(t, s.Delete(ctx, first.ID))
	assert.NoError(t, s.Insert(ctx, second))
}

func TestMemoryProfileUpdateConflict(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryProfileFeedbackStore()
	matchID := uuid.New()
	reviewer := uuid.New()

	occupied := newProfileRecord(reviewer, uuid.New(), &matchID)
	require.NoError(t, s.Insert(ctx, occupied))

	free := newProfileRecord(reviewer, uuid.New(), nil)
	require.NoError(t, s.Insert(ctx, free))

	// Patching into the occupied (match_id, reviewer) pair must conflict
	_, err := s.Update(ctx, free.ID, &models.ProfileFeedbackPatch{MatchID: &matchID})
	assert.ErrorIs(t, err, ErrConflict)

	// A record may keep its own pair through an unrelated patch
	overall := 5
	_, err = s.Update(ctx, occupied.ID, &models.ProfileFeedbackPatch{OverallExperience: &overall})
	assert.NoError(t, err)
}

func TestMemoryProfileUpdateNotFound(t *testing.T) {
	s := NewMemoryProfileFeedbackStore()
	_, err := s.Update(context.Background(), uuid.New(), &models.ProfileFeedbackPatch{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryProfileDeleteIdempotent(t *testing.T) {
	s := NewMemoryProfileFeedbackStore()
	assert.NoError(t, s.Delete(context.Background(), uuid.New()))
}

func TestMemoryProfileReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryProfileFeedbackStore()
	rec := newProfileRecord(uuid.New(), uuid.New(), nil)
	require.NoError(t, s.Insert(ctx, rec))

	got, err := s.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	got.Tags[0] = "mutated"
	got.OverallExperience = 1

	again, err := s.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"punctual"}, again.Tags)
	assert.Equal(t, 4, again.OverallExperience)

	// The caller's record is also not shared with the store
	rec.OverallExperience = 2
	again, err = s.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, again.OverallExperience)
}

func TestMemoryProfileScan(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryProfileFeedbackStore()
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Insert(ctx, newProfileRecord(uuid.New(), uuid.New(), nil)))
	}

	all, err := s.Scan(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestMemoryAppCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryAppFeedbackStore()
	now := time.Now().UTC()
	author := uuid.New()
	rec := &models.AppFeedback{
		ID:              uuid.New(),
		CreatedAt:       now,
		UpdatedAt:       now,
		AuthorProfileID: &author,
		Overall:         3,
	}

	require.NoError(t, s.Insert(ctx, rec))

	// No uniqueness constraint: the same author may submit repeatedly
	dup := *rec
	dup.ID = uuid.New()
	assert.NoError(t, s.Insert(ctx, &dup))

	overall := 5
	updated, err := s.Update(ctx, rec.ID, &models.AppFeedbackPatch{Overall: &overall})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Overall)

	require.NoError(t, s.Delete(ctx, rec.ID))
	require.NoError(t, s.Delete(ctx, rec.ID)) // idempotent
	_, err = s.GetByID(ctx, rec.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := s.Scan(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
