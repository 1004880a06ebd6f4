// Package store provides database access methods for all inkwell entities.
// Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"database/sql"
	"fmt"

	"inkwell/internal/models"
)

// PostStore handles all post-related database operations.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `id, title, slug, description, content, published, created_at, updated_at`

// scanPost scans a row into a Post struct.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Description, &p.Content,
		&p.Published, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectPosts(rows *sql.Rows) ([]models.Post, error) {
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// FindByID retrieves a post by id. Returns nil if not found.
func (s *PostStore) FindByID(id int64) (*models.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// List returns a page of posts ordered by most recent update or creation,
// newest first. Drafts are included only when includeDrafts is set (admin
// viewers).
func (s *PostStore) List(includeDrafts bool, limit, offset int) ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT `+postColumns+`
		FROM posts
		WHERE published OR $1
		ORDER BY GREATEST(created_at, updated_at) DESC
		LIMIT $2 OFFSET $3
	`, includeDrafts, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return collectPosts(rows)
}

// Count returns the number of posts visible to the viewer.
func (s *PostStore) Count(includeDrafts bool) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM posts WHERE published OR $1`, includeDrafts).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

// ListByTag returns a page of posts carrying the named tag (exact,
// case-sensitive match), newest first.
func (s *PostStore) ListByTag(tagName string, includeDrafts bool, limit, offset int) ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT p.id, p.title, p.slug, p.description, p.content, p.published, p.created_at, p.updated_at
		FROM posts p
		JOIN post_tags pt ON pt.post_id = p.id
		JOIN tags t ON t.id = pt.tag_id
		WHERE t.name = $1 AND (p.published OR $2)
		ORDER BY GREATEST(p.created_at, p.updated_at) DESC
		LIMIT $3 OFFSET $4
	`, tagName, includeDrafts, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts by tag: %w", err)
	}
	return collectPosts(rows)
}

// CountByTag returns the number of visible posts carrying the named tag.
func (s *PostStore) CountByTag(tagName string, includeDrafts bool) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*)
		FROM posts p
		JOIN post_tags pt ON pt.post_id = p.id
		JOIN tags t ON t.id = pt.tag_id
		WHERE t.name = $1 AND (p.published OR $2)
	`, tagName, includeDrafts).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count posts by tag: %w", err)
	}
	return count, nil
}

// ListByAuthor returns a page of posts authored by the named user, newest first.
func (s *PostStore) ListByAuthor(userName string, includeDrafts bool, limit, offset int) ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT p.id, p.title, p.slug, p.description, p.content, p.published, p.created_at, p.updated_at
		FROM posts p
		JOIN post_users pu ON pu.post_id = p.id
		JOIN users u ON u.id = pu.user_id
		WHERE u.name = $1 AND (p.published OR $2)
		ORDER BY GREATEST(p.created_at, p.updated_at) DESC
		LIMIT $3 OFFSET $4
	`, userName, includeDrafts, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts by author: %w", err)
	}
	return collectPosts(rows)
}

// CountByAuthor returns the number of visible posts authored by the named user.
func (s *PostStore) CountByAuthor(userName string, includeDrafts bool) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*)
		FROM posts p
		JOIN post_users pu ON pu.post_id = p.id
		JOIN users u ON u.id = pu.user_id
		WHERE u.name = $1 AND (p.published OR $2)
	`, userName, includeDrafts).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count posts by author: %w", err)
	}
	return count, nil
}

// Recent returns the n newest published posts. Backs the recent-posts
// block rendered alongside every list view.
func (s *PostStore) Recent(n int) ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT `+postColumns+`
		FROM posts
		WHERE published
		ORDER BY created_at DESC
		LIMIT $1
	`, n)
	if err != nil {
		return nil, fmt.Errorf("recent posts: %w", err)
	}
	return collectPosts(rows)
}

// Create inserts a new post and returns it with the generated id and
// timestamps.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	row := s.db.QueryRow(`
		INSERT INTO posts (title, slug, description, content, published)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+postColumns,
		p.Title, p.Slug, p.Description, p.Content, p.Published,
	)
	result, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return result, nil
}

// Update replaces all scalar fields of an existing post. Returns false if
// no post with that id exists.
func (s *PostStore) Update(p *models.Post) (bool, error) {
	res, err := s.db.Exec(`
		UPDATE posts SET
			title = $1, slug = $2, description = $3, content = $4,
			published = $5, updated_at = NOW()
		WHERE id = $6
	`, p.Title, p.Slug, p.Description, p.Content, p.Published, p.ID)
	if err != nil {
		return false, fmt.Errorf("update post: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update post rows: %w", err)
	}
	return n > 0, nil
}

// TagsForPost returns the tags attached to a post, ordered by name.
func (s *PostStore) TagsForPost(postID int64) ([]models.Tag, error) {
	rows, err := s.db.Query(`
		SELECT t.id, t.name, t.created_at
		FROM tags t
		JOIN post_tags pt ON pt.tag_id = t.id
		WHERE pt.post_id = $1
		ORDER BY t.name
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("tags for post: %w", err)
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// AuthorForPost returns the post's author, or nil when no authorship row
// exists (posts created before authorship tracking).
func (s *PostStore) AuthorForPost(postID int64) (*models.User, error) {
	u := &models.User{}
	err := s.db.QueryRow(`
		SELECT u.id, u.name, u.password_hash, u.admin, u.active, u.created_at, u.updated_at
		FROM users u
		JOIN post_users pu ON pu.user_id = u.id
		WHERE pu.post_id = $1
	`, postID).Scan(
		&u.ID, &u.Name, &u.PasswordHash, &u.Admin, &u.Active, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("author for post: %w", err)
	}
	return u, nil
}
