package store

import (
	"database/sql"
	"fmt"

	"inkwell/internal/models"
)

// TagStore handles tag lookups and admin tag management. Associations
// between tags and posts are owned by AssociationStore.
type TagStore struct {
	db *sql.DB
}

// NewTagStore creates a new TagStore with the given database connection.
func NewTagStore(db *sql.DB) *TagStore {
	return &TagStore{db: db}
}

// FindByID retrieves a tag by id. Returns nil if not found.
func (s *TagStore) FindByID(id int64) (*models.Tag, error) {
	var t models.Tag
	err := s.db.QueryRow(`SELECT id, name, created_at FROM tags WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find tag by id: %w", err)
	}
	return &t, nil
}

// FindByName retrieves a tag by its exact, case-sensitive name.
// Returns nil if not found.
func (s *TagStore) FindByName(name string) (*models.Tag, error) {
	var t models.Tag
	err := s.db.QueryRow(`SELECT id, name, created_at FROM tags WHERE name = $1`, name).
		Scan(&t.ID, &t.Name, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find tag by name: %w", err)
	}
	return &t, nil
}

// GetOrCreate returns the tag with the given name, creating it if absent.
// The second result reports whether a new tag was created. Concurrent
// creation races are resolved by the unique constraint: the insert is a
// no-op on conflict and the follow-up read returns the winner's row.
func (s *TagStore) GetOrCreate(name string) (*models.Tag, bool, error) {
	var t models.Tag
	err := s.db.QueryRow(`
		INSERT INTO tags (name) VALUES ($1)
		ON CONFLICT (name) DO NOTHING
		RETURNING id, name, created_at
	`, name).Scan(&t.ID, &t.Name, &t.CreatedAt)
	if err == nil {
		return &t, true, nil
	}
	if err != sql.ErrNoRows {
		return nil, false, fmt.Errorf("create tag: %w", err)
	}

	existing, err := s.FindByName(name)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, fmt.Errorf("get or create tag %q: tag vanished after conflict", name)
	}
	return existing, false, nil
}

// Rename changes a tag's name in place, keeping all post associations.
// Returns false if no tag with that id exists.
func (s *TagStore) Rename(id int64, name string) (bool, error) {
	res, err := s.db.Exec(`UPDATE tags SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return false, fmt.Errorf("rename tag: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rename tag rows: %w", err)
	}
	return n > 0, nil
}

// ListWithPostCounts returns up to limit tags with the number of posts
// carrying each, for the admin tag table. Tags with zero posts are included.
func (s *TagStore) ListWithPostCounts(limit int) ([]models.Tag, error) {
	rows, err := s.db.Query(`
		SELECT t.id, t.name, t.created_at, COUNT(pt.id) AS post_count
		FROM tags t
		LEFT JOIN post_tags pt ON pt.tag_id = t.id
		GROUP BY t.id
		ORDER BY t.name
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.PostCount); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
