// Package store defines the record-store contract for both feedback resources
// and provides a memory-backed and a PostgreSQL-backed implementation. Handlers
// only ever see copies of stored records.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/vibelink/feedback-service/internal/models"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("feedback not found")

	// ErrConflict indicates a uniqueness violation: profile feedback already
	// exists for the (match_id, reviewer_profile_id) pair.
	ErrConflict = errors.New("feedback already exists for this (match_id, reviewer)")
)

// ProfileFeedbackStore is the record store for profile-to-profile feedback.
// Delete is an idempotent no-op for unknown ids.
type ProfileFeedbackStore interface {
	Insert(ctx context.Context, rec *models.ProfileFeedback) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ProfileFeedback, error)
	Update(ctx context.Context, id uuid.UUID, patch *models.ProfileFeedbackPatch) (*models.ProfileFeedback, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Scan(ctx context.Context) ([]*models.ProfileFeedback, error)
}

// AppFeedbackStore is the record store for app-level feedback.
// No uniqueness constraint applies.
type AppFeedbackStore interface {
	Insert(ctx context.Context, rec *models.AppFeedback) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.AppFeedback, error)
	Update(ctx context.Context, id uuid.UUID, patch *models.AppFeedbackPatch) (*models.AppFeedback, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Scan(ctx context.Context) ([]*models.AppFeedback, error)
}
