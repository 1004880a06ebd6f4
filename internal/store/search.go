package store

import (
	"database/sql"
	"fmt"

	"inkwell/internal/models"
)

// SearchStore runs tiered full-text search over posts. A post is ranked by
// the highest-priority field it matches — content first, then title, then
// any attached tag name — and appears exactly once: each lower tier
// explicitly excludes posts already matched by the tiers above it, so the
// union needs no separate dedup step.
//
// Matching uses PostgreSQL text search (plainto_tsquery) with a configured
// language for stemming and stopword removal, not substring comparison.
type SearchStore struct {
	db *sql.DB

	// language is the regconfig name, e.g. "english".
	language string
}

// NewSearchStore creates a SearchStore using the given text-search language.
func NewSearchStore(db *sql.DB, language string) *SearchStore {
	if language == "" {
		language = "english"
	}
	return &SearchStore{db: db, language: language}
}

// searchTiers is the three-tier union. Tier exclusions double as the
// dedup mechanism. The published filter sits inside every tier so drafts
// never leak to non-admin viewers regardless of tier logic.
//
// Parameters: $1 language, $2 query text, $3 include drafts.
const searchTiers = `
	SELECT p.id, p.title, p.slug, p.description, p.content, p.published,
	       p.created_at, p.updated_at, 1 AS tier
	FROM posts p
	WHERE to_tsvector($1::regconfig, p.content) @@ plainto_tsquery($1::regconfig, $2)
	  AND (p.published OR $3)

	UNION ALL

	SELECT p.id, p.title, p.slug, p.description, p.content, p.published,
	       p.created_at, p.updated_at, 2 AS tier
	FROM posts p
	WHERE to_tsvector($1::regconfig, p.title) @@ plainto_tsquery($1::regconfig, $2)
	  AND NOT to_tsvector($1::regconfig, p.content) @@ plainto_tsquery($1::regconfig, $2)
	  AND (p.published OR $3)

	UNION ALL

	SELECT p.id, p.title, p.slug, p.description, p.content, p.published,
	       p.created_at, p.updated_at, 3 AS tier
	FROM posts p
	WHERE EXISTS (
	        SELECT 1
	        FROM post_tags pt
	        JOIN tags t ON t.id = pt.tag_id
	        WHERE pt.post_id = p.id
	          AND to_tsvector($1::regconfig, t.name) @@ plainto_tsquery($1::regconfig, $2)
	      )
	  AND NOT to_tsvector($1::regconfig, p.title) @@ plainto_tsquery($1::regconfig, $2)
	  AND NOT to_tsvector($1::regconfig, p.content) @@ plainto_tsquery($1::regconfig, $2)
	  AND (p.published OR $3)
`

// Result is one ranked search hit.
type Result struct {
	models.Post

	// Tier records which field matched: 1 content, 2 title, 3 tag name.
	Tier int `json:"tier"`
}

// Search returns one page of ranked hits for the query, highest tier
// first, newest first within a tier. Drafts are included only when
// includeDrafts is set (admin viewers). An empty result is a normal
// outcome, not an error.
func (s *SearchStore) Search(query string, includeDrafts bool, limit, offset int) ([]Result, error) {
	rows, err := s.db.Query(`
		SELECT * FROM (`+searchTiers+`) ranked
		ORDER BY tier, created_at DESC
		LIMIT $4 OFFSET $5
	`, s.language, query, includeDrafts, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(
			&r.ID, &r.Title, &r.Slug, &r.Description, &r.Content,
			&r.Published, &r.CreatedAt, &r.UpdatedAt, &r.Tier,
		); err != nil {
			return nil, fmt.Errorf("scan search result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Count returns the total number of hits across all three tiers, for
// pagination.
func (s *SearchStore) Count(query string, includeDrafts bool) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM (`+searchTiers+`) ranked
	`, s.language, query, includeDrafts).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count search results: %w", err)
	}
	return count, nil
}
