// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package textpost generates themed title-card images for text-only posts.
// A caller-supplied title is laid out on the organization's theme color,
// rasterized to a 1080x1080 JPEG by a headless browser, uploaded to public
// object storage, and returned as a URL.
package textpost

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"givehub/internal/imaging"
)

// Renderer rasterizes an HTML document to a JPEG of the given dimensions.
// Implemented by browser.ChromeRenderer.
type Renderer interface {
	RenderJPEG(ctx context.Context, html string, width, height int) ([]byte, error)
}

// Uploader is the slice of the storage client the pipeline needs.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	FileURL(key string) string
}

// Result is the successful outcome of a generation run.
type Result struct {
	ImageURL string
	// ThumbURL is empty when thumbnail derivation failed or was skipped.
	ThumbURL string
	// BackgroundColorHex is the resolved primary color without the "#".
	BackgroundColorHex string
}

// Service runs the full generation pipeline. Each invocation is
// independent: the browser is launched fresh per call and owned
// exclusively by it, so concurrent generations share no state.
type Service struct {
	resolver *ThemeResolver
	layout   *Layout
	renderer Renderer
	storage  Uploader
	now      func() time.Time
}

// NewService wires the pipeline together.
func NewService(resolver *ThemeResolver, layout *Layout, renderer Renderer, storage Uploader) *Service {
	return &Service{
		resolver: resolver,
		layout:   layout,
		renderer: renderer,
		storage:  storage,
		now:      time.Now,
	}
}

// Generate produces a public title-card image for the given title and
// organization. callerID identifies the authenticated user and keys the
// storage path. All validation runs before any browser is launched.
//
// Failures surface as *Error with a stable code; no step is retried.
func (s *Service) Generate(ctx context.Context, callerID uuid.UUID, title, organizationID string) (*Result, error) {
	if callerID == uuid.Nil {
		return nil, failf(CodeUnauthenticated, "authentication required")
	}
	if strings.TrimSpace(title) == "" {
		return nil, failf(CodeInvalidArgument, "title must not be empty")
	}
	if strings.TrimSpace(organizationID) == "" {
		return nil, failf(CodeInvalidArgument, "organizationId must not be empty")
	}

	orgID, err := uuid.Parse(organizationID)
	if err != nil {
		return nil, failf(CodeNotFound, "organization %q not found", organizationID)
	}

	start := s.now()

	color, colorSource, err := s.resolver.Resolve(ctx, orgID)
	if err != nil {
		return nil, classify(err)
	}

	spec := s.layout.Plan(title, color)
	html := s.layout.HTML(spec)

	img, err := s.renderer.RenderJPEG(ctx, html, CanvasSize, CanvasSize)
	if err != nil {
		return nil, classify(err)
	}

	millis := s.now().UnixMilli()
	key := fmt.Sprintf("users/%s/post_media/text-posts/%d.jpg", callerID, millis)
	if err := s.storage.Upload(ctx, key, "image/jpeg", bytes.NewReader(img), int64(len(img))); err != nil {
		return nil, classify(err)
	}

	result := &Result{
		ImageURL:           s.storage.FileURL(key),
		BackgroundColorHex: strings.TrimPrefix(spec.BackgroundBottom, "#"),
	}

	// Thumbnail derivation is best-effort; the card itself is the product.
	if thumb, err := imaging.Thumbnail(img, imaging.ThumbMaxWidth); err != nil {
		slog.Warn("thumbnail generation failed", "key", key, "error", err)
	} else if thumb != nil {
		thumbKey := fmt.Sprintf("users/%s/post_media/text-posts/%d_thumb.jpg", callerID, millis)
		if err := s.storage.Upload(ctx, thumbKey, "image/jpeg", bytes.NewReader(thumb), int64(len(thumb))); err != nil {
			slog.Warn("thumbnail upload failed", "key", thumbKey, "error", err)
		} else {
			result.ThumbURL = s.storage.FileURL(thumbKey)
		}
	}

	slog.Info("text post image generated",
		"caller_id", callerID,
		"org_id", orgID,
		"title_length", len(strings.TrimSpace(title)),
		"font_size", spec.FontSizePx,
		"color_source", colorSource,
		"duration", time.Since(start),
	)

	return result, nil
}
