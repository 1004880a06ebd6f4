package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"inkwell/internal/service"
	"inkwell/internal/session"
)

// Auth serves login, logout, and first-run initialization.
type Auth struct {
	svc      *service.Service
	sessions *session.Store
}

// NewAuth creates the auth handler set.
func NewAuth(svc *service.Service, sessions *session.Store) *Auth {
	return &Auth{svc: svc, sessions: sessions}
}

// Login handles POST /login with name and password form fields. A bad
// name and a bad password produce the same response.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	name := formValue(r, "name")
	password := r.FormValue("password")
	if name == "" || password == "" {
		respondStatus(w, http.StatusUnprocessableEntity, false, "Name and password are required.")
		return
	}

	user, err := h.svc.Login(name, password)
	if errors.Is(err, service.ErrNotFound) {
		respondStatus(w, http.StatusUnauthorized, false, "Invalid credentials.")
		return
	}
	if err != nil {
		respondError(w, err)
		return
	}

	if _, err := h.sessions.Create(r.Context(), w, &session.Data{
		UserID: user.ID,
		Name:   user.Name,
		Admin:  user.Admin,
	}); err != nil {
		respondError(w, err)
		return
	}

	slog.Info("user logged in", "user", user.Name)
	respondStatus(w, http.StatusOK, true, "Logged in.")
}

// Logout handles POST /logout.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Error("session destroy failed", "error", err)
	}
	respondStatus(w, http.StatusOK, true, "Logged out.")
}

// Init handles POST /init: first-run bootstrap of the settings singleton
// and the first admin account. Once the site is initialized the endpoint
// refuses further calls.
func (h *Auth) Init(w http.ResponseWriter, r *http.Request) {
	blogTitle := formValue(r, "blog_title")
	adminName := formValue(r, "name")
	adminPassword := r.FormValue("password")
	if adminName == "" || adminPassword == "" {
		respondStatus(w, http.StatusUnprocessableEntity, false, "Name and password are required.")
		return
	}

	user, err := h.svc.Initialize(blogTitle, adminName, adminPassword)
	if errors.Is(err, service.ErrValidation) {
		respondStatus(w, http.StatusConflict, false, "Site is already initialized.")
		return
	}
	if err != nil {
		respondError(w, err)
		return
	}

	if _, err := h.sessions.Create(r.Context(), w, &session.Data{
		UserID: user.ID,
		Name:   user.Name,
		Admin:  user.Admin,
	}); err != nil {
		respondError(w, err)
		return
	}

	slog.Info("site initialized", "admin", user.Name)
	respondStatus(w, http.StatusCreated, true, "Site initialized.")
}
