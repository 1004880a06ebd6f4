package store

import (
	"database/sql"
	"fmt"

	"inkwell/internal/models"
)

// SettingsStore manages the site configuration singleton (the row with
// id = 1). There is no cache in front of it: every list and search request
// reads it fresh.
type SettingsStore struct {
	db *sql.DB
}

// NewSettingsStore returns a new SettingsStore backed by the given database.
func NewSettingsStore(db *sql.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

const settingsColumns = `id, blog_title, icon_1_link, icon_1_icon_type, icon_2_link,
	icon_2_icon_type, posts_per_page, number_of_recent_posts, max_synopsis_chars,
	table_entries_per_page, initialized`

// Get reads the singleton row. Returns nil if it does not exist, which
// means the system was never initialized.
func (s *SettingsStore) Get() (*models.Settings, error) {
	var st models.Settings
	err := s.db.QueryRow(`SELECT `+settingsColumns+` FROM settings WHERE id = 1`).Scan(
		&st.ID, &st.BlogTitle, &st.Icon1Link, &st.Icon1IconType, &st.Icon2Link,
		&st.Icon2IconType, &st.PostsPerPage, &st.NumberOfRecentPosts,
		&st.MaxSynopsisChars, &st.TableEntriesPerPage, &st.Initialized,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &st, nil
}

// Save updates the singleton row in place. Returns false if the row is
// absent — the caller surfaces that as a missing-settings condition rather
// than creating one implicitly.
func (s *SettingsStore) Save(st *models.Settings) (bool, error) {
	res, err := s.db.Exec(`
		UPDATE settings SET
			blog_title = $1,
			icon_1_link = $2, icon_1_icon_type = $3,
			icon_2_link = $4, icon_2_icon_type = $5,
			posts_per_page = $6, number_of_recent_posts = $7,
			max_synopsis_chars = $8, table_entries_per_page = $9,
			initialized = $10
		WHERE id = 1
	`, st.BlogTitle,
		st.Icon1Link, st.Icon1IconType,
		st.Icon2Link, st.Icon2IconType,
		st.PostsPerPage, st.NumberOfRecentPosts,
		st.MaxSynopsisChars, st.TableEntriesPerPage,
		st.Initialized,
	)
	if err != nil {
		return false, fmt.Errorf("save settings: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("save settings rows: %w", err)
	}
	return n > 0, nil
}

// Init creates the singleton row with defaults if it does not exist yet.
// Reports whether a new row was created.
func (s *SettingsStore) Init(blogTitle string) (bool, error) {
	res, err := s.db.Exec(`
		INSERT INTO settings (id, blog_title, posts_per_page, number_of_recent_posts,
		                      max_synopsis_chars, table_entries_per_page, initialized)
		VALUES (1, $1, $2, $3, $4, $5, TRUE)
		ON CONFLICT (id) DO NOTHING
	`, blogTitle,
		models.DefaultPostsPerPage,
		models.DefaultNumberOfRecentPosts,
		models.DefaultMaxSynopsisChars,
		models.DefaultTableEntriesPerPage,
	)
	if err != nil {
		return false, fmt.Errorf("init settings: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("init settings rows: %w", err)
	}
	return n > 0, nil
}
