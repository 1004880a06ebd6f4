// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import "time"

// Post is a Markdown blog post. Content holds raw Markdown source; HTML
// conversion happens at the presentation boundary, never in the core.
// Slug is derived from Title and is NOT unique — posts are looked up by
// numeric id, duplicate slugs are tolerated.
type Post struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Virtual fields populated by store methods.
	Tags   []Tag  `json:"tags,omitempty"`
	Author *User  `json:"author,omitempty"`
}

// Synopsis returns the post description truncated to at most max runes,
// with an ellipsis appended when anything was cut. Used for list views.
func (p *Post) Synopsis(max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(p.Description)
	if len(runes) <= max {
		return p.Description
	}
	return string(runes[:max]) + "…"
}
