package models

import "time"

// User is an account that can sign in to the admin area. A single boolean
// flag distinguishes administrators from regular users — there is no role
// hierarchy.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	Admin        bool      `json:"admin"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// PostCount is populated by UserStore.ListWithPostCounts.
	PostCount int `json:"post_count,omitempty"`
}
