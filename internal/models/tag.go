package models

import "time"

// Tag labels posts. Names are unique and case-sensitive: "Go" and "go"
// are distinct tags.
type Tag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`

	// PostCount is populated by TagStore.ListWithPostCounts.
	PostCount int `json:"post_count,omitempty"`
}

// PostTag links a post to a tag. The (post, tag) pair is unique; rows are
// created on demand when a post is saved with a tag name.
type PostTag struct {
	ID     int64 `json:"id"`
	PostID int64 `json:"post_id"`
	TagID  int64 `json:"tag_id"`
}

// PostUser links a post to its author. The schema permits several authors
// per post but the application only ever creates one row, at post-creation
// time. Single-author is the supported model; multi-author remains open.
type PostUser struct {
	ID     int64 `json:"id"`
	PostID int64 `json:"post_id"`
	UserID int64 `json:"user_id"`
}
