// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Organization represents a nonprofit entity that owns posts, members,
// and an optional visual theme.
type Organization struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	Mission   string     `json:"mission"`
	ThemeID   *uuid.UUID `json:"theme_id,omitempty"` // Nullable; unthemed orgs use the default color
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// HasTheme returns true if the organization has a theme assigned.
func (o *Organization) HasTheme() bool {
	return o.ThemeID != nil
}
