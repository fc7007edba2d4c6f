package database

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/lib/pq"
)

var PostgresDB *sql.DB

// ConnectPostgres connects to PostgreSQL database
func ConnectPostgres(postgresURI string) error {
	var err error

	PostgresDB, err = sql.Open("postgres", postgresURI)
	if err != nil {
		return err
	}

	// Set connection pool settings
	PostgresDB.SetMaxOpenConns(25)
	PostgresDB.SetMaxIdleConns(5)
	PostgresDB.SetConnMaxLifetime(5 * time.Minute)

	// Test connection
	if err = PostgresDB.Ping(); err != nil {
		return err
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize tables
	if err = InitPostgresTables(); err != nil {
		return err
	}

	return nil
}

// InitPostgresTables creates all necessary tables if they don't exist
func InitPostgresTables() error {
	queries := []string{
		// Profile-to-profile feedback table
		`CREATE TABLE IF NOT EXISTS profile_feedback (
			id UUID PRIMARY KEY,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
			reviewer_profile_id UUID NOT NULL,
			reviewee_profile_id UUID NOT NULL,
			match_id UUID,
			overall_experience INTEGER NOT NULL,
			would_meet_again BOOLEAN,
			safety_feeling INTEGER,
			respectfulness INTEGER,
			headline VARCHAR(120),
			comment TEXT,
			tags TEXT[]
		)`,

		// App-level feedback table
		`CREATE TABLE IF NOT EXISTS app_feedback (
			id UUID PRIMARY KEY,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
			author_profile_id UUID,
			overall INTEGER NOT NULL,
			usability INTEGER,
			reliability INTEGER,
			performance INTEGER,
			support_experience INTEGER,
			headline VARCHAR(120),
			comment TEXT,
			tags TEXT[]
		)`,

		// One feedback per (match, reviewer); only enforced when a match is linked
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_profile_feedback_match_reviewer
			ON profile_feedback(match_id, reviewer_profile_id) WHERE match_id IS NOT NULL`,

		// Create indexes for better performance
		`CREATE INDEX IF NOT EXISTS idx_profile_feedback_reviewee ON profile_feedback(reviewee_profile_id)`,
		`CREATE INDEX IF NOT EXISTS idx_profile_feedback_reviewer ON profile_feedback(reviewer_profile_id)`,
		`CREATE INDEX IF NOT EXISTS idx_profile_feedback_created_at ON profile_feedback(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_app_feedback_author ON app_feedback(author_profile_id)`,
		`CREATE INDEX IF NOT EXISTS idx_app_feedback_created_at ON app_feedback(created_at)`,
	}

	for _, query := range queries {
		if _, err := PostgresDB.Exec(query); err != nil {
			return err
		}
	}

	log.Println("✅ PostgreSQL tables initialized")
	return nil
}

// DisconnectPostgres closes the PostgreSQL connection
func DisconnectPostgres() error {
	if PostgresDB != nil {
		return PostgresDB.Close()
	}
	return nil
}
