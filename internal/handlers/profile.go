package handlers

import (
	"log/slog"
	"net/http"

	"inkwell/internal/middleware"
	"inkwell/internal/service"
	"inkwell/internal/session"
)

// Profile serves the logged-in user's own account: rename, password
// change, and self-deletion. This is the only path that may delete the
// acting user.
type Profile struct {
	svc      *service.Service
	sessions *session.Store
}

// NewProfile creates the profile handler set.
func NewProfile(svc *service.Service, sessions *session.Store) *Profile {
	return &Profile{svc: svc, sessions: sessions}
}

// Save handles POST /profile: updates the acting user's name and
// password. The admin flag is carried over from the session, never from
// the form.
func (h *Profile) Save(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromCtx(r.Context())
	user, err := h.svc.SaveUser(&actor.ID,
		formValue(r, "name"), r.FormValue("password"), actor.Admin)
	if err != nil {
		respondError(w, err)
		return
	}

	// The name may have changed; refresh the session so the new name
	// shows up without a re-login.
	if _, err := h.sessions.Create(r.Context(), w, &session.Data{
		UserID: user.ID,
		Name:   user.Name,
		Admin:  user.Admin,
	}); err != nil {
		slog.Error("session refresh failed", "error", err)
	}

	respondJSON(w, http.StatusOK, user)
}

// Delete handles POST /profile/delete: removes the acting user's account
// together with their authorship links, then ends the session.
func (h *Profile) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromCtx(r.Context())
	if err := h.svc.DeleteOwnAccount(actor); err != nil {
		respondError(w, err)
		return
	}
	if err := h.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Error("session destroy failed", "error", err)
	}
	respondStatus(w, http.StatusOK, true, "Account deleted.")
}
