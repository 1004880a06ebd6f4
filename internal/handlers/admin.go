package handlers

import (
	"net/http"

	"inkwell/internal/markdown"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/service"
)

// Admin serves the authenticated management surface: post, tag, and user
// tables with their save/delete endpoints, the Markdown preview, and the
// settings form.
type Admin struct {
	svc *service.Service
}

// NewAdmin creates the admin handler set.
func NewAdmin(svc *service.Service) *Admin {
	return &Admin{svc: svc}
}

// editID reads the optional edit_id form field. A missing field means a
// create; a malformed one is treated the same as missing.
func editID(r *http.Request) *int64 {
	raw := formValue(r, "edit_id")
	if raw == "" {
		return nil
	}
	id, ok := pathIDValue(raw)
	if !ok {
		return nil
	}
	return &id
}

// Posts handles GET /admin/posts and GET /admin/posts/{page}.
func (h *Admin) Posts(w http.ResponseWriter, r *http.Request) {
	table, err := h.svc.PostTablePage(pathPage(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, table)
}

// SavePost handles POST /admin/posts: create when edit_id is absent,
// full replace when present.
func (h *Admin) SavePost(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromCtx(r.Context())
	post, err := h.svc.SavePost(actor, service.SaveInput{
		EditID:      editID(r),
		Title:       formValue(r, "title"),
		Description: formValue(r, "description"),
		Content:     r.FormValue("content"),
		TagNames:    splitTags(r.FormValue("tags")),
		Publish:     formBool(r, "published"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// DeletePost handles POST /admin/posts/{id}/delete.
func (h *Admin) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondStatus(w, http.StatusNotFound, false, "Not found.")
		return
	}
	if err := h.svc.DeletePost(id); err != nil {
		respondError(w, err)
		return
	}
	respondStatus(w, http.StatusOK, true, "Post deleted.")
}

// Tags handles GET /admin/tags.
func (h *Admin) Tags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.svc.ListTags()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"tags": tags})
}

// SaveTag handles POST /admin/tags: create when edit_id is absent,
// rename when present. Renaming keeps the tag's post associations.
func (h *Admin) SaveTag(w http.ResponseWriter, r *http.Request) {
	tag, created, err := h.svc.SaveTag(editID(r), formValue(r, "name"))
	if err != nil {
		respondError(w, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondJSON(w, status, tag)
}

// DeleteTag handles POST /admin/tags/{id}/delete. The tagged posts
// survive, only the tag and its links go.
func (h *Admin) DeleteTag(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondStatus(w, http.StatusNotFound, false, "Not found.")
		return
	}
	if err := h.svc.DeleteTag(id); err != nil {
		respondError(w, err)
		return
	}
	respondStatus(w, http.StatusOK, true, "Tag deleted.")
}

// Users handles GET /admin/users.
func (h *Admin) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"users": users})
}

// SaveUser handles POST /admin/users.
func (h *Admin) SaveUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.SaveUser(editID(r),
		formValue(r, "name"), r.FormValue("password"), formBool(r, "admin"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// DeleteUser handles POST /admin/users/{id}/delete. Deleting your own
// account through this table is refused.
func (h *Admin) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondStatus(w, http.StatusNotFound, false, "Not found.")
		return
	}
	actor := middleware.ActorFromCtx(r.Context())
	if err := h.svc.DeleteUser(actor, id); err != nil {
		respondError(w, err)
		return
	}
	respondStatus(w, http.StatusOK, true, "User deleted.")
}

// Preview handles POST /admin/preview: renders the submitted Markdown to
// sanitized HTML without persisting anything.
func (h *Admin) Preview(w http.ResponseWriter, r *http.Request) {
	html, err := markdown.ToHTML(r.FormValue("content"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"html": html})
}

// Settings handles GET /admin/settings.
func (h *Admin) Settings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.Settings()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

// SaveSettings handles POST /admin/settings: a full replace of the
// configuration singleton from the form.
func (h *Admin) SaveSettings(w http.ResponseWriter, r *http.Request) {
	current, err := h.svc.Settings()
	if err != nil {
		respondError(w, err)
		return
	}

	saved, err := h.svc.SaveSettings(&models.Settings{
		ID:                  current.ID,
		BlogTitle:           formValue(r, "blog_title"),
		Icon1Link:           formValue(r, "icon_1_link"),
		Icon1IconType:       formValue(r, "icon_1_icon_type"),
		Icon2Link:           formValue(r, "icon_2_link"),
		Icon2IconType:       formValue(r, "icon_2_icon_type"),
		PostsPerPage:        formInt(r, "posts_per_page", current.PostsPerPage),
		NumberOfRecentPosts: formInt(r, "number_of_recent_posts", current.NumberOfRecentPosts),
		MaxSynopsisChars:    formInt(r, "max_synopsis_chars", current.MaxSynopsisChars),
		TableEntriesPerPage: formInt(r, "table_entries_per_page", current.TableEntriesPerPage),
		Initialized:         current.Initialized,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, saved)
}
