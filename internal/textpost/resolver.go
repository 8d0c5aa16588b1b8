// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package textpost

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"givehub/internal/models"
)

// DefaultColor is the brand fallback used when an organization has no
// usable theme.
const DefaultColor = "#2E5C8A"

// organizationFinder is the slice of the organization store the resolver needs.
type organizationFinder interface {
	FindByID(id uuid.UUID) (*models.Organization, error)
}

// themeFinder is the slice of the theme store the resolver needs.
type themeFinder interface {
	FindByID(id uuid.UUID) (*models.Theme, error)
}

// colorCache caches resolved colors per organization. Implemented by
// cache.ThemeColorCache; nil-safe via the resolver.
type colorCache interface {
	Get(ctx context.Context, orgID uuid.UUID) (string, bool)
	Set(ctx context.Context, orgID uuid.UUID, color string)
}

// ThemeSource records which resolution path produced a color, so callers
// and tests can tell a themed organization from a fallback.
type ThemeSource string

const (
	ThemeSourceCache   ThemeSource = "cache"
	ThemeSourceTheme   ThemeSource = "theme"
	ThemeSourceDefault ThemeSource = "default"
)

// ThemeResolver produces the primary color for an organization. A missing
// organization is fatal; every theme-side gap (no theme assigned, theme
// record gone, theme without a primary color) degrades to DefaultColor.
type ThemeResolver struct {
	orgs   organizationFinder
	themes themeFinder
	cache  colorCache
}

// NewThemeResolver creates a resolver. cache may be nil, in which case
// every call resolves against the stores.
func NewThemeResolver(orgs organizationFinder, themes themeFinder, cache colorCache) *ThemeResolver {
	return &ThemeResolver{orgs: orgs, themes: themes, cache: cache}
}

// Resolve returns the organization's theme primary color, always prefixed
// with "#", and the path that produced it. Fails only when the organization
// itself does not exist.
func (r *ThemeResolver) Resolve(ctx context.Context, orgID uuid.UUID) (string, ThemeSource, error) {
	if r.cache != nil {
		if color, ok := r.cache.Get(ctx, orgID); ok {
			return color, ThemeSourceCache, nil
		}
	}

	org, err := r.orgs.FindByID(orgID)
	if err != nil {
		return "", ThemeSourceDefault, fmt.Errorf("find organization %s: %w", orgID, err)
	}
	if org == nil {
		return "", ThemeSourceDefault, failf(CodeNotFound, "organization %s not found", orgID)
	}

	color := DefaultColor
	source := ThemeSourceDefault
	if org.ThemeID != nil {
		theme, err := r.themes.FindByID(*org.ThemeID)
		switch {
		case err != nil:
			slog.Warn("theme lookup failed, using default color", "org_id", orgID, "theme_id", *org.ThemeID, "error", err)
		case theme == nil:
			slog.Warn("organization references missing theme", "org_id", orgID, "theme_id", *org.ThemeID)
		case theme.PrimaryColor == nil || *theme.PrimaryColor == "":
			slog.Warn("theme has no primary color, using default", "org_id", orgID, "theme_id", *org.ThemeID)
		default:
			color = normalizeColor(*theme.PrimaryColor)
			source = ThemeSourceTheme
		}
	}

	if r.cache != nil {
		r.cache.Set(ctx, orgID, color)
	}
	return color, source, nil
}

// normalizeColor guarantees a leading "#".
func normalizeColor(color string) string {
	if strings.HasPrefix(color, "#") {
		return color
	}
	return "#" + color
}
