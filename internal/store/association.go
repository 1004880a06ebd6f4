package store

import (
	"database/sql"
	"fmt"
)

// AssociationStore owns the many-to-many links between posts, tags, and
// users (authorship), including their cascade-delete discipline. Every
// multi-row mutation runs inside a single transaction: a crash mid-sequence
// must never leave association rows referencing a deleted entity.
type AssociationStore struct {
	db *sql.DB
}

// NewAssociationStore creates a new AssociationStore with the given
// database connection.
func NewAssociationStore(db *sql.DB) *AssociationStore {
	return &AssociationStore{db: db}
}

// AttachTags get-or-creates a tag for each name and links it to the post.
// Names match tags exactly and case-sensitively. Idempotent: attaching a
// name twice leaves a single association, enforced by the (post, tag)
// unique constraint. Blank names are skipped.
func (s *AssociationStore) AttachTags(postID int64, names []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := attachTagsTx(tx, postID, names); err != nil {
		return err
	}

	return tx.Commit()
}

// attachTagsTx performs the get-or-create sequence for each tag name
// within an existing transaction. A unique-constraint conflict on either
// insert means a concurrent writer got there first; both inserts are
// conflict-tolerant, so the race resolves as normal control flow.
func attachTagsTx(tx *sql.Tx, postID int64, names []string) error {
	for _, name := range names {
		if name == "" {
			continue
		}

		var tagID int64
		err := tx.QueryRow(`
			INSERT INTO tags (name) VALUES ($1)
			ON CONFLICT (name) DO NOTHING
			RETURNING id
		`, name).Scan(&tagID)
		if err == sql.ErrNoRows {
			// Tag already existed — read it.
			err = tx.QueryRow(`SELECT id FROM tags WHERE name = $1`, name).Scan(&tagID)
		}
		if err != nil {
			return fmt.Errorf("get or create tag %q: %w", name, err)
		}

		if _, err := tx.Exec(`
			INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)
			ON CONFLICT (post_id, tag_id) DO NOTHING
		`, postID, tagID); err != nil {
			return fmt.Errorf("attach tag %q: %w", name, err)
		}
	}
	return nil
}

// SyncTags makes the post's tag set exactly desired: names not yet attached
// are get-or-create'd, associations for tags no longer desired are removed.
// Tag entities themselves are never deleted here — a tag orphaned by the
// last post dropping it stays in the tags table.
func (s *AssociationStore) SyncTags(postID int64, desired []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query(`
		SELECT t.name
		FROM tags t
		JOIN post_tags pt ON pt.tag_id = t.id
		WHERE pt.post_id = $1
	`, postID)
	if err != nil {
		return fmt.Errorf("current tags: %w", err)
	}

	current := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return fmt.Errorf("scan tag name: %w", err)
		}
		current[name] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("current tags: %w", err)
	}

	want := make(map[string]bool, len(desired))
	var toAdd []string
	for _, name := range desired {
		if name == "" {
			continue
		}
		want[name] = true
		if !current[name] {
			toAdd = append(toAdd, name)
		}
	}

	if err := attachTagsTx(tx, postID, toAdd); err != nil {
		return err
	}

	for name := range current {
		if want[name] {
			continue
		}
		if _, err := tx.Exec(`
			DELETE FROM post_tags
			USING tags
			WHERE post_tags.tag_id = tags.id
			  AND post_tags.post_id = $1
			  AND tags.name = $2
		`, postID, name); err != nil {
			return fmt.Errorf("detach tag %q: %w", name, err)
		}
	}

	return tx.Commit()
}

// SetAuthor records the post's author. Called exactly once, at post
// creation; authorship is never updated afterward. The conflict clause
// makes a duplicate call a no-op rather than an error.
func (s *AssociationStore) SetAuthor(postID, userID int64) error {
	_, err := s.db.Exec(`
		INSERT INTO post_users (post_id, user_id) VALUES ($1, $2)
		ON CONFLICT (post_id, user_id) DO NOTHING
	`, postID, userID)
	if err != nil {
		return fmt.Errorf("set author: %w", err)
	}
	return nil
}

// DeletePost removes a post together with its tag associations and
// authorship row, atomically. The tags themselves survive. Returns false
// if no post with that id exists; nothing is deleted in that case.
func (s *AssociationStore) DeletePost(postID int64) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
		return false, fmt.Errorf("delete post tags: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM post_users WHERE post_id = $1`, postID); err != nil {
		return false, fmt.Errorf("delete post author: %w", err)
	}

	res, err := tx.Exec(`DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return false, fmt.Errorf("delete post: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete post rows: %w", err)
	}
	if n == 0 {
		// Nothing to delete — roll back the (empty) association deletes too.
		return false, nil
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit delete post: %w", err)
	}
	return true, nil
}

// DeleteTag removes a tag and every association referencing it, atomically.
// Posts that carried the tag are untouched. Returns false if no tag with
// that id exists.
func (s *AssociationStore) DeleteTag(tagID int64) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM post_tags WHERE tag_id = $1`, tagID); err != nil {
		return false, fmt.Errorf("delete tag associations: %w", err)
	}

	res, err := tx.Exec(`DELETE FROM tags WHERE id = $1`, tagID)
	if err != nil {
		return false, fmt.Errorf("delete tag: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete tag rows: %w", err)
	}
	if n == 0 {
		return false, nil
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit delete tag: %w", err)
	}
	return true, nil
}

// DeleteUser removes a user and every authorship row referencing them,
// atomically. Their posts survive, authorless. Returns false if no user
// with that id exists. The caller is responsible for rejecting an actor
// deleting their own account through the bulk-admin path.
func (s *AssociationStore) DeleteUser(userID int64) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM post_users WHERE user_id = $1`, userID); err != nil {
		return false, fmt.Errorf("delete user authorships: %w", err)
	}

	res, err := tx.Exec(`DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete user rows: %w", err)
	}
	if n == 0 {
		return false, nil
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit delete user: %w", err)
	}
	return true, nil
}
