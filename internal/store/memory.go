package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vibelink/feedback-service/internal/models"
)

// MemoryProfileFeedbackStore keeps profile feedback in a mutex-guarded map.
// The read-modify-write cycle of Update runs entirely under the write lock, so
// concurrent patches cannot lose updates.
type MemoryProfileFeedbackStore struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*models.ProfileFeedback
}

// NewMemoryProfileFeedbackStore creates an empty memory-backed store.
func NewMemoryProfileFeedbackStore() *MemoryProfileFeedbackStore {
	return &MemoryProfileFeedbackStore{
		items: make(map[uuid.UUID]*models.ProfileFeedback),
	}
}

// conflictsLocked reports whether another record already holds the
// (match_id, reviewer) pair. Caller must hold at least a read lock.
func (s *MemoryProfileFeedbackStore) conflictsLocked(matchID *uuid.UUID, reviewer uuid.UUID, exclude uuid.UUID) bool {
	if matchID == nil {
		return false
	}
	for _, other := range s.items {
		if other.ID == exclude {
			continue
		}
		if other.MatchID != nil && *other.MatchID == *matchID && other.ReviewerProfileID == reviewer {
			return true
		}
	}
	return false
}

func (s *MemoryProfileFeedbackStore) Insert(ctx context.Context, rec *models.ProfileFeedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conflictsLocked(rec.MatchID, rec.ReviewerProfileID, rec.ID) {
		return ErrConflict
	}
	s.items[rec.ID] = rec.Clone()
	return nil
}

func (s *MemoryProfileFeedbackStore) GetByID(ctx context.Context, id uuid.UUID) (*models.ProfileFeedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return rec.Clone(), nil
}

func (s *MemoryProfileFeedbackStore) Update(ctx context.Context, id uuid.UUID, patch *models.ProfileFeedbackPatch) (*models.ProfileFeedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}

	updated := rec.Clone()
	patch.Apply(updated, time.Now().UTC())

	if s.conflictsLocked(updated.MatchID, updated.ReviewerProfileID, id) {
		return nil, ErrConflict
	}

	s.items[id] = updated
	return updated.Clone(), nil
}

func (s *MemoryProfileFeedbackStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, id)
	return nil
}

func (s *MemoryProfileFeedbackStore) Scan(ctx context.Context) ([]*models.ProfileFeedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.ProfileFeedback, 0, len(s.items))
	for _, rec := range s.items {
		out = append(out, rec.Clone())
	}
	return out, nil
}

// MemoryAppFeedbackStore keeps app feedback in a mutex-guarded map.
type MemoryAppFeedbackStore struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*models.AppFeedback
}

// NewMemoryAppFeedbackStore creates an empty memory-backed store.
func NewMemoryAppFeedbackStore() *MemoryAppFeedbackStore {
	return &MemoryAppFeedbackStore{
		items: make(map[uuid.UUID]*models.AppFeedback),
	}
}

func (s *MemoryAppFeedbackStore) Insert(ctx context.Context, rec *models.AppFeedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[rec.ID] = rec.Clone()
	return nil
}

func (s *MemoryAppFeedbackStore) GetByID(ctx context.Context, id uuid.UUID) (*models.AppFeedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return rec.Clone(), nil
}

func (s *MemoryAppFeedbackStore) Update(ctx context.Context, id uuid.UUID, patch *models.AppFeedbackPatch) (*models.AppFeedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}

	updated := rec.Clone()
	patch.Apply(updated, time.Now().UTC())

	s.items[id] = updated
	return updated.Clone(), nil
}

func (s *MemoryAppFeedbackStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, id)
	return nil
}

func (s *MemoryAppFeedbackStore) Scan(ctx context.Context) ([]*models.AppFeedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.AppFeedback, 0, len(s.items))
	for _, rec := range s.items {
		out = append(out, rec.Clone())
	}
	return out, nil
}
