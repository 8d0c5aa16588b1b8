// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"givehub/internal/markdown"
	"givehub/internal/middleware"
	"givehub/internal/models"
	"givehub/internal/store"
	"givehub/internal/textpost"
)

// mediaRemover is the slice of the storage client needed to clean up a
// post's generated images on deletion. Implemented by storage.Client.
type mediaRemover interface {
	Delete(ctx context.Context, key string) error
	ExtractKey(rawURL string) (string, bool)
}

// Posts serves the feed endpoints. Creating a text post runs the full
// title-card generation pipeline before the row is written.
type Posts struct {
	postStore *store.PostStore
	generator *textpost.Service
	media     mediaRemover
}

// NewPosts creates the handler group.
func NewPosts(postStore *store.PostStore, generator *textpost.Service, media mediaRemover) *Posts {
	return &Posts{
		postStore: postStore,
		generator: generator,
		media:     media,
	}
}

type createPostRequest struct {
	Title          string `json:"title"`
	Body           string `json:"body"`
	OrganizationID string `json:"organization_id"`
}

// postView is a Post enriched with the rendered body for feed clients.
type postView struct {
	models.Post
	BodyHTML string `json:"body_html,omitempty"`
}

// Create handles POST /api/posts. The title is rendered into a themed
// image bound to the post; a generation failure rejects the whole post so
// the feed never shows an imageless text card.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}

	var req createPostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid-argument", "malformed request body")
		return
	}
	if msg := validatePost(req.Title, req.Body); msg != "" {
		writeError(w, http.StatusBadRequest, "invalid-argument", msg)
		return
	}

	result, err := h.generator.Generate(r.Context(), sess.UserID, req.Title, req.OrganizationID)
	if err != nil {
		writeGenerationError(w, err)
		return
	}

	orgID, err := uuid.Parse(req.OrganizationID)
	if err != nil {
		// Generate validated this; reaching here means the formats diverged.
		writeError(w, http.StatusBadRequest, "invalid-argument", "organization_id is not a valid id")
		return
	}

	post, err := h.postStore.Create(&models.Post{
		OrganizationID:     orgID,
		AuthorID:           sess.UserID,
		Kind:               models.PostKindText,
		Title:              req.Title,
		BodyMarkdown:       req.Body,
		ImageURL:           &result.ImageURL,
		ThumbURL:           optional(result.ThumbURL),
		BackgroundColorHex: &result.BackgroundColorHex,
	})
	if err != nil {
		slog.Error("post create failed", "error", err, "org_id", orgID)
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, renderPost(post))
}

// ListByOrganization handles GET /api/organizations/{id}/posts.
// Supports limit and offset query parameters.
func (h *Posts) ListByOrganization(w http.ResponseWriter, r *http.Request) {
	orgID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not-found", "organization not found")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	posts, err := h.postStore.ListByOrganization(orgID, limit, offset)
	if err != nil {
		slog.Error("post list failed", "error", err, "org_id", orgID)
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}

	views := make([]postView, 0, len(posts))
	for i := range posts {
		views = append(views, renderPost(&posts[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": views})
}

// Get handles GET /api/posts/{id}.
func (h *Posts) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not-found", "post not found")
		return
	}

	post, err := h.postStore.FindByID(id)
	if err != nil {
		slog.Error("post lookup failed", "error", err, "post_id", id)
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}
	if post == nil {
		writeError(w, http.StatusNotFound, "not-found", "post not found")
		return
	}
	writeJSON(w, http.StatusOK, renderPost(post))
}

// Delete handles DELETE /api/posts/{id}. The author may delete their own
// post; a manager may delete any post in their organization. The stored
// card and thumbnail are removed best-effort before the row goes.
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not-found", "post not found")
		return
	}

	post, err := h.postStore.FindByID(id)
	if err != nil {
		slog.Error("post lookup failed", "error", err, "post_id", id)
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}
	if post == nil {
		writeError(w, http.StatusNotFound, "not-found", "post not found")
		return
	}

	isAuthor := post.AuthorID == sess.UserID
	isOrgManager := sess.Role == string(models.RoleManager) &&
		sess.OrganizationID != nil && *sess.OrganizationID == post.OrganizationID
	if !isAuthor && !isOrgManager {
		writeError(w, http.StatusForbidden, "permission-denied", "you cannot delete this post")
		return
	}

	for _, rawURL := range []*string{post.ImageURL, post.ThumbURL} {
		if rawURL == nil {
			continue
		}
		key, ok := h.media.ExtractKey(*rawURL)
		if !ok {
			continue
		}
		if err := h.media.Delete(r.Context(), key); err != nil {
			slog.Warn("post media delete failed", "post_id", id, "key", key, "error", err)
		}
	}

	if err := h.postStore.Delete(id); err != nil {
		slog.Error("post delete failed", "error", err, "post_id", id)
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// renderPost attaches the HTML rendering of the Markdown body. A render
// failure degrades to the raw post rather than failing the request.
func renderPost(p *models.Post) postView {
	view := postView{Post: *p}
	if p.HasBody() {
		html, err := markdown.ToHTML(p.BodyMarkdown)
		if err != nil {
			slog.Warn("body render failed", "post_id", p.ID, "error", err)
		} else {
			view.BodyHTML = html
		}
	}
	return view
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
