package models

// Settings is the site-wide configuration singleton, stored as the single
// row with id = 1. It is read on every list and search request — there is
// no in-process cache in front of it.
type Settings struct {
	ID                  int64  `json:"id"`
	BlogTitle           string `json:"blog_title"`
	Icon1Link           string `json:"icon_1_link"`
	Icon1IconType       string `json:"icon_1_icon_type"`
	Icon2Link           string `json:"icon_2_link"`
	Icon2IconType       string `json:"icon_2_icon_type"`
	PostsPerPage        int    `json:"posts_per_page"`
	NumberOfRecentPosts int    `json:"number_of_recent_posts"`
	MaxSynopsisChars    int    `json:"max_synopsis_chars"`
	TableEntriesPerPage int    `json:"table_entries_per_page"`
	Initialized         bool   `json:"initialized"`
}

// Defaults used when the singleton is first created.
const (
	DefaultPostsPerPage        = 10
	DefaultNumberOfRecentPosts = 5
	DefaultMaxSynopsisChars    = 300
	DefaultTableEntriesPerPage = 20
)
