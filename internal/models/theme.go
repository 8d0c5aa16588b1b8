// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Theme stores a named color scheme that organizations can adopt. Only the
// primary color drives text-post rendering today; the secondary color is
// reserved for client-side accents.
type Theme struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	PrimaryColor   *string   `json:"primary_color,omitempty"`   // Nullable hex string like "#2E5C8A"
	SecondaryColor *string   `json:"secondary_color,omitempty"` // Nullable
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
