// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PostKind distinguishes how a post is presented in the feed.
type PostKind string

const (
	// PostKindText is a title rendered server-side into a themed image.
	PostKindText PostKind = "text"

	// PostKindMedia is a post with client-uploaded media.
	PostKindMedia PostKind = "media"
)

// Post represents a feed entry published by an organization. Text posts
// carry the URL of the server-rendered title image plus the theme color the
// image was rendered with.
type Post struct {
	ID                 uuid.UUID `json:"id"`
	OrganizationID     uuid.UUID `json:"organization_id"`
	AuthorID           uuid.UUID `json:"author_id"`
	Kind               PostKind  `json:"kind"`
	Title              string    `json:"title"`
	BodyMarkdown       string    `json:"body_markdown"`
	ImageURL           *string   `json:"image_url,omitempty"`             // Set for text posts
	ThumbURL           *string   `json:"thumb_url,omitempty"`             // Set when a thumbnail was derived
	BackgroundColorHex *string   `json:"background_color_hex,omitempty"`  // 6 hex digits, no leading #
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// IsText returns true for server-rendered text posts.
func (p *Post) IsText() bool {
	return p.Kind == PostKindText
}

// HasBody returns true if the post carries body text beyond its title.
func (p *Post) HasBody() bool {
	return strings.TrimSpace(p.BodyMarkdown) != ""
}
