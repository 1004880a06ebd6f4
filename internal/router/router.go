// Package router sets up the HTTP routes and middleware chains: the
// public blog surface, the login/init endpoints, and the authenticated
// admin and profile groups.
package router

import (
	"github.com/go-chi/chi/v5"

	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
	"inkwell/internal/session"
)

// Options tunes router behavior that differs between environments.
type Options struct {
	// LoginLimiter throttles login attempts per client IP. The caller
	// owns it and stops it on shutdown; nil disables throttling.
	LoginLimiter *middleware.RateLimiter
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(
	sessionStore *session.Store,
	public *handlers.Public,
	auth *handlers.Auth,
	admin *handlers.Admin,
	profile *handlers.Profile,
	opts Options,
) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth, no CSRF.
	r.Get("/health", public.Health)

	// Public blog surface. Sessions are loaded (admins see drafts) but
	// never required.
	r.Get("/", public.Blog)
	r.Get("/blog/archive/{page}", public.Blog)
	r.Get("/post/{id}", public.Post)
	r.Get("/post/{id}/{slug}", public.Post)
	r.Get("/tag/{tag}", public.Tag)
	r.Get("/tag/{tag}/{page}", public.Tag)
	r.Get("/user/{name}", public.Author)
	r.Get("/user/{name}/{page}", public.Author)
	r.Get("/search", public.Search)

	// Login is rate-limited per IP; init only works on an uninitialized
	// site and then shuts itself off.
	if opts.LoginLimiter != nil {
		r.With(opts.LoginLimiter.Middleware).Post("/login", auth.Login)
	} else {
		r.Post("/login", auth.Login)
	}
	r.Post("/logout", auth.Logout)
	r.Post("/init", auth.Init)

	// Profile — any authenticated user, CSRF-protected.
	r.Route("/profile", func(r chi.Router) {
		r.Use(middleware.CSRF)
		r.Use(middleware.RequireAuth)
		r.Post("/", profile.Save)
		r.Post("/delete", profile.Delete)
	})

	// Admin area — authenticated admins only, CSRF-protected.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.CSRF)
		r.Use(middleware.RequireAuth)
		r.Use(middleware.RequireAdmin)

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", admin.Posts)
			r.Get("/{page:[0-9]+}", admin.Posts)
			r.Post("/", admin.SavePost)
			r.Post("/{id}/delete", admin.DeletePost)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", admin.Tags)
			r.Post("/", admin.SaveTag)
			r.Post("/{id}/delete", admin.DeleteTag)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", admin.Users)
			r.Post("/", admin.SaveUser)
			r.Post("/{id}/delete", admin.DeleteUser)
		})

		r.Post("/preview", admin.Preview)

		r.Get("/settings", admin.Settings)
		r.Post("/settings", admin.SaveSettings)
	})

	return r
}
