package service

import (
	"inkwell/internal/models"
	"inkwell/internal/pagination"
)

// PostTable is one page of the admin post table: every post including
// drafts, with author and tags per row.
type PostTable struct {
	Posts  []models.Post     `json:"posts"`
	Window pagination.Window `json:"window"`
}

// PostTablePage pages through all posts for the admin table. Rows carry
// the author and tag set but not the Markdown body.
func (s *Service) PostTablePage(page int) (*PostTable, error) {
	settings, err := s.Settings()
	if err != nil {
		return nil, err
	}

	total, err := s.posts.Count(true)
	if err != nil {
		return nil, err
	}

	perPage := settings.TableEntriesPerPage
	offset := pagination.Offset(page, perPage, total)
	posts, err := s.posts.List(true, perPage, offset)
	if err != nil {
		return nil, err
	}

	for i := range posts {
		tags, err := s.posts.TagsForPost(posts[i].ID)
		if err != nil {
			return nil, err
		}
		posts[i].Tags = tags

		author, err := s.posts.AuthorForPost(posts[i].ID)
		if err != nil {
			return nil, err
		}
		posts[i].Author = author
		posts[i].Content = ""
	}

	return &PostTable{
		Posts:  posts,
		Window: pagination.Compute(page, perPage, total, pagination.DefaultWindowWidth),
	}, nil
}

// ListTags returns tags with their post counts for the admin table,
// capped at the configured table size.
func (s *Service) ListTags() ([]models.Tag, error) {
	settings, err := s.Settings()
	if err != nil {
		return nil, err
	}
	return s.tags.ListWithPostCounts(settings.TableEntriesPerPage)
}

// ListUsers returns users with their post counts for the admin table.
func (s *Service) ListUsers() ([]models.User, error) {
	settings, err := s.Settings()
	if err != nil {
		return nil, err
	}
	return s.users.ListWithPostCounts(settings.TableEntriesPerPage)
}

// SaveSettings replaces the configuration singleton. Numeric fields that
// arrive non-positive fall back to the defaults rather than persisting a
// broken page size.
func (s *Service) SaveSettings(st *models.Settings) (*models.Settings, error) {
	if st.PostsPerPage < 1 {
		st.PostsPerPage = models.DefaultPostsPerPage
	}
	if st.NumberOfRecentPosts < 1 {
		st.NumberOfRecentPosts = models.DefaultNumberOfRecentPosts
	}
	if st.MaxSynopsisChars < 1 {
		st.MaxSynopsisChars = models.DefaultMaxSynopsisChars
	}
	if st.TableEntriesPerPage < 1 {
		st.TableEntriesPerPage = models.DefaultTableEntriesPerPage
	}

	found, err := s.settings.Save(st)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrSettingsMissing
	}
	return s.settings.Get()
}

// Initialize bootstraps the site on first run: creates the settings
// singleton and the first admin user. Returns ErrValidation when the
// site is already initialized or the credentials are blank.
func (s *Service) Initialize(blogTitle, adminName, adminPassword string) (*models.User, error) {
	if adminName == "" || adminPassword == "" {
		return nil, ErrValidation
	}

	settings, err := s.settings.Get()
	if err != nil {
		return nil, err
	}
	if settings != nil && settings.Initialized {
		return nil, ErrValidation
	}

	if settings == nil {
		if _, err := s.settings.Init(blogTitle); err != nil {
			return nil, err
		}
	}

	user, err := s.users.Create(adminName, adminPassword, true)
	if err != nil {
		return nil, err
	}

	current, err := s.Settings()
	if err != nil {
		return nil, err
	}
	current.Initialized = true
	if blogTitle != "" {
		current.BlogTitle = blogTitle
	}
	if _, err := s.settings.Save(current); err != nil {
		return nil, err
	}

	return user, nil
}

// Login checks the credentials and returns the matching user, or
// ErrNotFound for a bad name or password. The two failures are not
// distinguished.
func (s *Service) Login(name, password string) (*models.User, error) {
	user, err := s.users.FindByName(name)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active || !s.users.CheckPassword(user, password) {
		return nil, ErrNotFound
	}
	return user, nil
}
