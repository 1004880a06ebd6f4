package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/middleware"
	"inkwell/internal/service"
)

// Public serves the reader-facing views: the blog roll, post detail,
// tag and author archives, and search.
type Public struct {
	svc *service.Service
}

// NewPublic creates the public handler set.
func NewPublic(svc *service.Service) *Public {
	return &Public{svc: svc}
}

// Blog handles GET / and GET /blog/archive/{page}.
func (h *Public) Blog(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromCtx(r.Context())
	page, err := h.svc.ListPosts(actor, pathPage(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// Post handles GET /post/{id} and GET /post/{id}/{slug}. The slug is
// cosmetic: lookup is by id only, so stale links keep working after a
// title change.
func (h *Public) Post(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondStatus(w, http.StatusNotFound, false, "Not found.")
		return
	}

	actor := middleware.ActorFromCtx(r.Context())
	post, err := h.svc.GetPost(actor, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// Tag handles GET /tag/{tag} and GET /tag/{tag}/{page}.
func (h *Public) Tag(w http.ResponseWriter, r *http.Request) {
	tagName := chi.URLParam(r, "tag")
	actor := middleware.ActorFromCtx(r.Context())
	page, err := h.svc.ListByTag(actor, tagName, pathPage(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// Author handles GET /user/{name} and GET /user/{name}/{page}.
func (h *Public) Author(w http.ResponseWriter, r *http.Request) {
	userName := chi.URLParam(r, "name")
	actor := middleware.ActorFromCtx(r.Context())
	page, err := h.svc.ListByAuthor(actor, userName, pathPage(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// Search handles GET /search?q=...&page=N.
func (h *Public) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	actor := middleware.ActorFromCtx(r.Context())
	page, err := h.svc.Search(actor, query, queryPage(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// Health handles GET /health.
func (h *Public) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
