// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"givehub/internal/cache"
	"givehub/internal/middleware"
	"givehub/internal/store"
)

// Organizations serves organization and theme endpoints.
type Organizations struct {
	orgStore   *store.OrganizationStore
	themeStore *store.ThemeStore
	themeCache *cache.ThemeColorCache
}

// NewOrganizations creates the handler group. themeCache may be nil.
func NewOrganizations(orgStore *store.OrganizationStore, themeStore *store.ThemeStore, themeCache *cache.ThemeColorCache) *Organizations {
	return &Organizations{
		orgStore:   orgStore,
		themeStore: themeStore,
		themeCache: themeCache,
	}
}

// List handles GET /api/organizations.
func (h *Organizations) List(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.orgStore.List()
	if err != nil {
		slog.Error("organization list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"organizations": orgs})
}

// Get handles GET /api/organizations/{id}.
func (h *Organizations) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not-found", "organization not found")
		return
	}

	org, err := h.orgStore.FindByID(id)
	if err != nil {
		slog.Error("organization lookup failed", "error", err, "org_id", id)
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}
	if org == nil {
		writeError(w, http.StatusNotFound, "not-found", "organization not found")
		return
	}
	writeJSON(w, http.StatusOK, org)
}

// ListThemes handles GET /api/themes.
func (h *Organizations) ListThemes(w http.ResponseWriter, r *http.Request) {
	themes, err := h.themeStore.List()
	if err != nil {
		slog.Error("theme list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"themes": themes})
}

type setThemeRequest struct {
	ThemeID *string `json:"theme_id"` // null clears the theme
}

// SetTheme handles PUT /api/organizations/{id}/theme. Only a manager of
// the target organization may change its theme. The cached theme color is
// invalidated so the next render picks up the new color immediately.
func (h *Organizations) SetTheme(w http.ResponseWriter, r *http.Request) {
	orgID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not-found", "organization not found")
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil || sess.OrganizationID == nil || *sess.OrganizationID != orgID {
		writeError(w, http.StatusForbidden, "permission-denied", "you do not manage this organization")
		return
	}

	var req setThemeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid-argument", "malformed request body")
		return
	}

	org, err := h.orgStore.FindByID(orgID)
	if err != nil {
		slog.Error("organization lookup failed", "error", err, "org_id", orgID)
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}
	if org == nil {
		writeError(w, http.StatusNotFound, "not-found", "organization not found")
		return
	}

	var themeID *uuid.UUID
	if req.ThemeID != nil {
		id, err := uuid.Parse(*req.ThemeID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid-argument", "theme_id is not a valid id")
			return
		}
		theme, err := h.themeStore.FindByID(id)
		if err != nil {
			slog.Error("theme lookup failed", "error", err, "theme_id", id)
			writeError(w, http.StatusInternalServerError, "internal", "internal server error")
			return
		}
		if theme == nil {
			writeError(w, http.StatusNotFound, "not-found", "theme not found")
			return
		}
		themeID = &id
	}

	if err := h.orgStore.SetTheme(orgID, themeID); err != nil {
		slog.Error("set theme failed", "error", err, "org_id", orgID)
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}

	if h.themeCache != nil {
		h.themeCache.Invalidate(r.Context(), orgID)
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
