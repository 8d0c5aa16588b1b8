// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// GiveHub API. Public feed reads need no session; publishing and theme
// management sit behind the auth middleware stack.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"givehub/internal/handlers"
	"givehub/internal/middleware"
	"givehub/internal/session"
)

// Render rate limit: generating a card spawns a Chrome process, so each
// user gets a tight allowance.
const (
	renderLimit  = 10
	renderWindow = 1 * time.Minute
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, auth *handlers.Auth, textPosts *handlers.TextPostImages, posts *handlers.Posts, orgs *handlers.Organizations) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Auth endpoints — accessible without a completed session.
		r.Post("/auth/login", auth.Login)
		r.Post("/auth/logout", auth.Logout)

		// 2FA — requires auth but NOT completed verification.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/auth/2fa/setup", auth.TwoFASetup)
			r.Post("/auth/2fa/verify", auth.TwoFAVerify)
		})

		// Public reads.
		r.Get("/organizations", orgs.List)
		r.Get("/organizations/{id}", orgs.Get)
		r.Get("/organizations/{id}/posts", posts.ListByOrganization)
		r.Get("/posts/{id}", posts.Get)
		r.Get("/themes", orgs.ListThemes)

		// Authenticated + 2FA-verified area.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			r.Get("/auth/me", auth.Me)

			// Image generation is browser-backed; rate-limit it.
			renderLimiter := middleware.NewRateLimiter(renderLimit, renderWindow)
			r.With(renderLimiter.Middleware).Post("/text-post-image", textPosts.Generate)
			r.With(renderLimiter.Middleware).Post("/posts", posts.Create)
			r.Delete("/posts/{id}", posts.Delete)

			// Theme management — organization managers only.
			r.With(middleware.RequireManager).Put("/organizations/{id}/theme", orgs.SetTheme)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
