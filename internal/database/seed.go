package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"inkwell/internal/models"
)

// Seed populates the database with initial development data: a default
// admin user if no users exist, and the settings singleton if absent.
// Safe to call on every startup.
func Seed(db *sql.DB) error {
	if err := seedAdmin(db); err != nil {
		return err
	}
	return seedSettings(db)
}

func seedAdmin(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("users already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (name, password_hash, admin)
		VALUES ($1, $2, TRUE)
	`, "admin", string(hash))
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	slog.Info("database seeded with default admin user",
		"name", "admin",
		"password", "password",
	)
	return nil
}

func seedSettings(db *sql.DB) error {
	_, err := db.Exec(`
		INSERT INTO settings (id, blog_title, posts_per_page, number_of_recent_posts,
		                      max_synopsis_chars, table_entries_per_page, initialized)
		VALUES (1, $1, $2, $3, $4, $5, TRUE)
		ON CONFLICT (id) DO NOTHING
	`, "Inkwell",
		models.DefaultPostsPerPage,
		models.DefaultNumberOfRecentPosts,
		models.DefaultMaxSynopsisChars,
		models.DefaultTableEntriesPerPage,
	)
	if err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	return nil
}
