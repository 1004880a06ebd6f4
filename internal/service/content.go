// Package service orchestrates the stores behind the HTTP surface: list,
// detail, and search views, post/tag/user persistence with its cascade
// rules, and the error taxonomy the handlers translate to HTTP statuses.
package service

import (
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/pagination"
	"inkwell/internal/slug"
	"inkwell/internal/store"
)

// Actor identifies the caller of an operation, as supplied by the auth
// layer. The zero value is an anonymous visitor.
type Actor struct {
	ID    int64
	Admin bool
}

// Anonymous is the actor for unauthenticated requests.
var Anonymous = Actor{}

// Service wires the stores into the operations the handlers consume.
type Service struct {
	posts    *store.PostStore
	tags     *store.TagStore
	users    *store.UserStore
	assoc    *store.AssociationStore
	search   *store.SearchStore
	settings *store.SettingsStore
}

// New creates a Service over the given stores.
func New(
	posts *store.PostStore,
	tags *store.TagStore,
	users *store.UserStore,
	assoc *store.AssociationStore,
	search *store.SearchStore,
	settings *store.SettingsStore,
) *Service {
	return &Service{
		posts:    posts,
		tags:     tags,
		users:    users,
		assoc:    assoc,
		search:   search,
		settings: settings,
	}
}

// PostPage is one page of a post list view, ready for the rendering layer.
type PostPage struct {
	Posts  []models.Post     `json:"posts"`
	Window pagination.Window `json:"window"`
	Recent []models.Post     `json:"recent_posts"`

	// BlogTitle and the icon fields come along so the rendering layer
	// needs no separate settings fetch.
	Settings *models.Settings `json:"settings"`
}

// Settings reads the configuration singleton, which must exist after first
// run. Returns ErrSettingsMissing when it is absent — the system needs
// re-initialization, this is not auto-recovered.
func (s *Service) Settings() (*models.Settings, error) {
	st, err := s.settings.Get()
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrSettingsMissing
	}
	return st, nil
}

// ListPosts returns one page of posts for the blog view, newest activity
// first, with tags attached. Admin actors see drafts; everyone else sees
// published posts only. Settings are read fresh on every call.
func (s *Service) ListPosts(actor Actor, page int) (*PostPage, error) {
	return s.listPage(actor, page,
		func(limit, offset int) ([]models.Post, error) {
			return s.posts.List(actor.Admin, limit, offset)
		},
		func() (int, error) {
			return s.posts.Count(actor.Admin)
		})
}

// ListByTag returns one page of posts carrying the named tag.
func (s *Service) ListByTag(actor Actor, tagName string, page int) (*PostPage, error) {
	return s.listPage(actor, page,
		func(limit, offset int) ([]models.Post, error) {
			return s.posts.ListByTag(tagName, actor.Admin, limit, offset)
		},
		func() (int, error) {
			return s.posts.CountByTag(tagName, actor.Admin)
		})
}

// ListByAuthor returns one page of posts written by the named user.
func (s *Service) ListByAuthor(actor Actor, userName string, page int) (*PostPage, error) {
	return s.listPage(actor, page,
		func(limit, offset int) ([]models.Post, error) {
			return s.posts.ListByAuthor(userName, actor.Admin, limit, offset)
		},
		func() (int, error) {
			return s.posts.CountByAuthor(userName, actor.Admin)
		})
}

// listPage is the shared shape of every list view: settings, count,
// clamped offset, rows with tags, pagination window, recent posts.
func (s *Service) listPage(
	actor Actor,
	page int,
	list func(limit, offset int) ([]models.Post, error),
	count func() (int, error),
) (*PostPage, error) {
	settings, err := s.Settings()
	if err != nil {
		return nil, err
	}

	total, err := count()
	if err != nil {
		return nil, err
	}

	offset := pagination.Offset(page, settings.PostsPerPage, total)
	posts, err := list(settings.PostsPerPage, offset)
	if err != nil {
		return nil, err
	}

	for i := range posts {
		tags, err := s.posts.TagsForPost(posts[i].ID)
		if err != nil {
			return nil, err
		}
		posts[i].Tags = tags
		posts[i].Description = posts[i].Synopsis(settings.MaxSynopsisChars)
		// List views carry the synopsis only, not the full Markdown body.
		posts[i].Content = ""
	}

	recent, err := s.posts.Recent(settings.NumberOfRecentPosts)
	if err != nil {
		return nil, err
	}

	return &PostPage{
		Posts:    posts,
		Window:   pagination.Compute(page, settings.PostsPerPage, total, pagination.DefaultWindowWidth),
		Recent:   recent,
		Settings: settings,
	}, nil
}

// GetPost returns a post with its tags and author. Drafts are visible to
// admin actors only; for everyone else an unpublished post is ErrNotFound,
// indistinguishable from a missing one.
func (s *Service) GetPost(actor Actor, id int64) (*models.Post, error) {
	post, err := s.posts.FindByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil || (!post.Published && !actor.Admin) {
		return nil, ErrNotFound
	}

	tags, err := s.posts.TagsForPost(post.ID)
	if err != nil {
		return nil, err
	}
	post.Tags = tags

	author, err := s.posts.AuthorForPost(post.ID)
	if err != nil {
		return nil, err
	}
	post.Author = author

	return post, nil
}

// SaveInput carries the compose/edit form fields.
type SaveInput struct {
	// EditID is nil for a new post, otherwise the post being edited.
	EditID      *int64
	Title       string
	Description string
	Content     string
	TagNames    []string
	Publish     bool
}

// SavePost validates and persists a post. Editing replaces every scalar
// field and syncs the tag set against the submitted names; creating also
// records the acting user as the (permanent, single) author and attaches
// tags. The slug is recomputed from the title on every save.
//
// The single validation rule: a post whose title, description, and content
// are all blank is rejected with ErrValidation and nothing is persisted.
func (s *Service) SavePost(actor Actor, in SaveInput) (*models.Post, error) {
	if strings.TrimSpace(in.Title) == "" &&
		strings.TrimSpace(in.Description) == "" &&
		strings.TrimSpace(in.Content) == "" {
		return nil, ErrValidation
	}

	names := cleanTagNames(in.TagNames)

	if in.EditID != nil {
		post, err := s.posts.FindByID(*in.EditID)
		if err != nil {
			return nil, err
		}
		if post == nil {
			return nil, ErrNotFound
		}

		post.Title = in.Title
		post.Slug = slug.Generate(in.Title)
		post.Description = in.Description
		post.Content = in.Content
		post.Published = in.Publish

		found, err := s.posts.Update(post)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, ErrNotFound
		}
		if err := s.assoc.SyncTags(post.ID, names); err != nil {
			return nil, err
		}
		return s.GetPost(actor, post.ID)
	}

	post, err := s.posts.Create(&models.Post{
		Title:       in.Title,
		Slug:        slug.Generate(in.Title),
		Description: in.Description,
		Content:     in.Content,
		Published:   in.Publish,
	})
	if err != nil {
		return nil, err
	}

	if err := s.assoc.SetAuthor(post.ID, actor.ID); err != nil {
		return nil, err
	}
	if err := s.assoc.AttachTags(post.ID, names); err != nil {
		return nil, err
	}

	return s.GetPost(actor, post.ID)
}

// DeletePost removes a post with its associations. ErrNotFound is the soft
// failure; anything else is a storage-level hard failure.
func (s *Service) DeletePost(id int64) error {
	found, err := s.assoc.DeletePost(id)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

// SaveTag creates a tag or renames an existing one. Renaming keeps all
// post associations. The second result reports whether a tag was created
// (false for "already existed" on the create path).
func (s *Service) SaveTag(editID *int64, name string) (*models.Tag, bool, error) {
	if strings.TrimSpace(name) == "" {
		return nil, false, ErrValidation
	}

	if editID != nil {
		found, err := s.tags.Rename(*editID, name)
		if err != nil {
			return nil, false, err
		}
		if !found {
			return nil, false, ErrNotFound
		}
		tag, err := s.tags.FindByID(*editID)
		if err != nil {
			return nil, false, err
		}
		return tag, false, nil
	}

	return s.tags.GetOrCreate(name)
}

// DeleteTag removes a tag and its associations; the posts survive.
func (s *Service) DeleteTag(id int64) error {
	found, err := s.assoc.DeleteTag(id)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

// SaveUser creates a user or fully replaces an existing one's name,
// password, and admin flag.
func (s *Service) SaveUser(editID *int64, name, password string, admin bool) (*models.User, error) {
	if strings.TrimSpace(name) == "" || password == "" {
		return nil, ErrValidation
	}

	if editID != nil {
		found, err := s.users.Update(*editID, name, password, admin)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, ErrNotFound
		}
		return s.users.FindByID(*editID)
	}

	return s.users.Create(name, password, admin)
}

// DeleteUser removes a user through the bulk-admin path. An actor naming
// their own id gets ErrSelfDelete and the account is untouched — own
// accounts are deleted only through DeleteOwnAccount.
func (s *Service) DeleteUser(actor Actor, id int64) error {
	if actor.ID == id {
		return ErrSelfDelete
	}
	found, err := s.assoc.DeleteUser(id)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

// DeleteOwnAccount removes the acting user's account. This is the distinct
// profile path that self-deletion must go through.
func (s *Service) DeleteOwnAccount(actor Actor) error {
	found, err := s.assoc.DeleteUser(actor.ID)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

// cleanTagNames drops blank entries and surrounding whitespace from a
// submitted tag-name list.
func cleanTagNames(names []string) []string {
	var out []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}
