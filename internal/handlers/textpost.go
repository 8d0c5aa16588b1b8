// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"givehub/internal/middleware"
	"givehub/internal/textpost"
)

// TextPostImages serves the title-card generation endpoint.
type TextPostImages struct {
	service *textpost.Service
}

// NewTextPostImages creates the handler group.
func NewTextPostImages(service *textpost.Service) *TextPostImages {
	return &TextPostImages{service: service}
}

type generateRequest struct {
	Title          string `json:"title"`
	OrganizationID string `json:"organization_id"`
}

type generateResponse struct {
	ImageURL           string `json:"image_url"`
	ThumbURL           string `json:"thumb_url,omitempty"`
	BackgroundColorHex string `json:"background_color_hex"`
}

// Generate handles POST /api/text-post-image. The session middleware
// guarantees a caller; the service re-checks and owns all validation.
func (h *TextPostImages) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid-argument", "malformed request body")
		return
	}

	callerID := uuid.Nil
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		callerID = sess.UserID
	}

	result, err := h.service.Generate(r.Context(), callerID, req.Title, req.OrganizationID)
	if err != nil {
		writeGenerationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		ImageURL:           result.ImageURL,
		ThumbURL:           result.ThumbURL,
		BackgroundColorHex: result.BackgroundColorHex,
	})
}
