package service

import (
	"strings"

	"inkwell/internal/pagination"
	"inkwell/internal/store"
)

// SearchPage is one page of ranked search results. An empty Results slice
// with a nil error is the "no results" state for the rendering layer —
// distinct from a storage failure.
type SearchPage struct {
	Query   string            `json:"query"`
	Results []store.Result    `json:"results"`
	Window  pagination.Window `json:"window"`
}

// Search runs the tiered full-text search and paginates the combined
// result set. Admin actors search drafts too; everyone else only ever
// sees published posts. A blank query short-circuits to an empty page.
func (s *Service) Search(actor Actor, query string, page int) (*SearchPage, error) {
	settings, err := s.Settings()
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return &SearchPage{
			Query:  query,
			Window: pagination.Compute(1, settings.PostsPerPage, 0, pagination.DefaultWindowWidth),
		}, nil
	}

	total, err := s.search.Count(query, actor.Admin)
	if err != nil {
		return nil, err
	}

	offset := pagination.Offset(page, settings.PostsPerPage, total)
	results, err := s.search.Search(query, actor.Admin, settings.PostsPerPage, offset)
	if err != nil {
		return nil, err
	}

	for i := range results {
		tags, err := s.posts.TagsForPost(results[i].ID)
		if err != nil {
			return nil, err
		}
		results[i].Tags = tags
		results[i].Description = results[i].Synopsis(settings.MaxSynopsisChars)
		results[i].Content = ""
	}

	return &SearchPage{
		Query:   query,
		Results: results,
		Window:  pagination.Compute(page, settings.PostsPerPage, total, pagination.DefaultWindowWidth),
	}, nil
}
