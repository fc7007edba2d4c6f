package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/vibelink/feedback-service/internal/models"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// PostgresProfileFeedbackStore persists profile feedback in the
// profile_feedback table. The (match_id, reviewer_profile_id) uniqueness is
// enforced by a partial unique index, so Insert and Update just map error code
// 23505 to ErrConflict.
type PostgresProfileFeedbackStore struct {
	db *sql.DB
}

// NewPostgresProfileFeedbackStore creates a store backed by the given database.
func NewPostgresProfileFeedbackStore(db *sql.DB) *PostgresProfileFeedbackStore {
	return &PostgresProfileFeedbackStore{db: db}
}

const profileFeedbackColumns = `id, created_at, updated_at, reviewer_profile_id, reviewee_profile_id, match_id,
	overall_experience, would_meet_again, safety_feeling, respectfulness, headline, comment, tags`

func scanProfileFeedback(row rowScanner) (*models.ProfileFeedback, error) {
	var (
		rec       models.ProfileFeedback
		matchID   uuid.NullUUID
		wouldMeet sql.NullBool
		safety    sql.NullInt64
		respect   sql.NullInt64
		headline  sql.NullString
		comment   sql.NullString
		tags      pq.StringArray
	)
	err := row.Scan(
		&rec.ID, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.ReviewerProfileID, &rec.RevieweeProfileID, &matchID,
		&rec.OverallExperience, &wouldMeet, &safety, &respect,
		&headline, &comment, &tags,
	)
	if err != nil {
		return nil, err
	}
	if matchID.Valid {
		rec.MatchID = &matchID.UUID
	}
	if wouldMeet.Valid {
		rec.WouldMeetAgain = &wouldMeet.Bool
	}
	if safety.Valid {
		v := int(safety.Int64)
		rec.SafetyFeeling = &v
	}
	if respect.Valid {
		v := int(respect.Int64)
		rec.Respectfulness = &v
	}
	if headline.Valid {
		rec.Headline = &headline.String
	}
	if comment.Valid {
		rec.Comment = &comment.String
	}
	if len(tags) > 0 {
		rec.Tags = []string(tags)
	}
	return &rec, nil
}

func (s *PostgresProfileFeedbackStore) Insert(ctx context.Context, rec *models.ProfileFeedback) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profile_feedback (`+profileFeedbackColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		rec.ID, rec.CreatedAt, rec.UpdatedAt,
		rec.ReviewerProfileID, rec.RevieweeProfileID, rec.MatchID,
		rec.OverallExperience, rec.WouldMeetAgain, rec.SafetyFeeling, rec.Respectfulness,
		rec.Headline, rec.Comment, pq.Array(rec.Tags),
	)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

func (s *PostgresProfileFeedbackStore) GetByID(ctx context.Context, id uuid.UUID) (*models.ProfileFeedback, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+profileFeedbackColumns+` FROM profile_feedback WHERE id = $1`, id)
	rec, err := scanProfileFeedback(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rec, err
}

func (s *PostgresProfileFeedbackStore) Update(ctx context.Context, id uuid.UUID, patch *models.ProfileFeedbackPatch) (*models.ProfileFeedback, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		SELECT `+profileFeedbackColumns+` FROM profile_feedback WHERE id = $1 FOR UPDATE`, id)
	rec, err := scanProfileFeedback(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	patch.Apply(rec, time.Now().UTC())

	_, err = tx.ExecContext(ctx, `
		UPDATE profile_feedback
		SET updated_at = $2, reviewer_profile_id = $3, reviewee_profile_id = $4, match_id = $5,
			overall_experience = $6, would_meet_again = $7, safety_feeling = $8, respectfulness = $9,
			headline = $10, comment = $11, tags = $12
		WHERE id = $1`,
		id, rec.UpdatedAt, rec.ReviewerProfileID, rec.RevieweeProfileID, rec.MatchID,
		rec.OverallExperience, rec.WouldMeetAgain, rec.SafetyFeeling, rec.Respectfulness,
		rec.Headline, rec.Comment, pq.Array(rec.Tags),
	)
	if isUniqueViolation(err) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *PostgresProfileFeedbackStore) Delete(ctx context.Context, id uuid.UUID) error {
	// Deleting an absent id is a no-op so delete stays idempotent
	_, err := s.db.ExecContext(ctx, `DELETE FROM profile_feedback WHERE id = $1`, id)
	return err
}

func (s *PostgresProfileFeedbackStore) Scan(ctx context.Context) ([]*models.ProfileFeedback, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+profileFeedbackColumns+` FROM profile_feedback`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.ProfileFeedback
	for rows.Next() {
		rec, err := scanProfileFeedback(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// PostgresAppFeedbackStore persists app feedback in the app_feedback table.
type PostgresAppFeedbackStore struct {
	db *sql.DB
}

// NewPostgresAppFeedbackStore creates a store backed by the given database.
func NewPostgresAppFeedbackStore(db *sql.DB) *PostgresAppFeedbackStore {
	return &PostgresAppFeedbackStore{db: db}
}

const appFeedbackColumns = `id, created_at, updated_at, author_profile_id,
	overall, usability, reliability, performance, support_experience, headline, comment, tags`

func scanAppFeedback(row rowScanner) (*models.AppFeedback, error) {
	var (
		rec         models.AppFeedback
		author      uuid.NullUUID
		usability   sql.NullInt64
		reliability sql.NullInt64
		performance sql.NullInt64
		support     sql.NullInt64
		headline    sql.NullString
		comment     sql.NullString
		tags        pq.StringArray
	)
	err := row.Scan(
		&rec.ID, &rec.CreatedAt, &rec.UpdatedAt, &author,
		&rec.Overall, &usability, &reliability, &performance, &support,
		&headline, &comment, &tags,
	)
	if err != nil {
		return nil, err
	}
	if author.Valid {
		rec.AuthorProfileID = &author.UUID
	}
	for _, facet := range []struct {
		src sql.NullInt64
		dst **int
	}{
		{usability, &rec.Usability},
		{reliability, &rec.Reliability},
		{performance, &rec.Performance},
		{support, &rec.SupportExperience},
	} {
		if facet.src.Valid {
			v := int(facet.src.Int64)
			*facet.dst = &v
		}
	}
	if headline.Valid {
		rec.Headline = &headline.String
	}
	if comment.Valid {
		rec.Comment = &comment.String
	}
	if len(tags) > 0 {
		rec.Tags = []string(tags)
	}
	return &rec, nil
}

func (s *PostgresAppFeedbackStore) Insert(ctx context.Context, rec *models.AppFeedback) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO app_feedback (`+appFeedbackColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		rec.ID, rec.CreatedAt, rec.UpdatedAt, rec.AuthorProfileID,
		rec.Overall, rec.Usability, rec.Reliability, rec.Performance, rec.SupportExperience,
		rec.Headline, rec.Comment, pq.Array(rec.Tags),
	)
	return err
}

func (s *PostgresAppFeedbackStore) GetByID(ctx context.Context, id uuid.UUID) (*models.AppFeedback, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+appFeedbackColumns+` FROM app_feedback WHERE id = $1`, id)
	rec, err := scanAppFeedback(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rec, err
}

func (s *PostgresAppFeedbackStore) Update(ctx context.Context, id uuid.UUID, patch *models.AppFeedbackPatch) (*models.AppFeedback, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		SELECT `+appFeedbackColumns+` FROM app_feedback WHERE id = $1 FOR UPDATE`, id)
	rec, err := scanAppFeedback(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	patch.Apply(rec, time.Now().UTC())

	_, err = tx.ExecContext(ctx, `
		UPDATE app_feedback
		SET updated_at = $2, author_profile_id = $3, overall = $4, usability = $5,
			reliability = $6, performance = $7, support_experience = $8,
			headline = $9, comment = $10, tags = $11
		WHERE id = $1`,
		id, rec.UpdatedAt, rec.AuthorProfileID, rec.Overall, rec.Usability,
		rec.Reliability, rec.Performance, rec.SupportExperience,
		rec.Headline, rec.Comment, pq.Array(rec.Tags),
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *PostgresAppFeedbackStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM app_feedback WHERE id = $1`, id)
	return err
}

func (s *PostgresAppFeedbackStore) Scan(ctx context.Context) ([]*models.AppFeedback, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+appFeedbackColumns+` FROM app_feedback`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.AppFeedback
	for rows.Next() {
		rec, err := scanAppFeedback(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
