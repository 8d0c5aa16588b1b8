// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// theme.go provides a Valkey-backed cache for resolved organization theme
// colors. Theme resolution hits PostgreSQL twice (organization, then theme);
// caching the final color lets repeated renders for the same organization
// skip both queries. Cache errors never fail a render — callers fall back
// to a direct resolution on any miss or error.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// themeKeyPrefix namespaces theme color keys in Valkey.
	themeKeyPrefix = "theme_color:"

	// DefaultThemeTTL is how long a resolved color stays cached. Theme
	// changes are infrequent; a short TTL keeps staleness bounded without
	// explicit invalidation on every write path.
	DefaultThemeTTL = 5 * time.Minute
)

// ThemeColorCache stores resolved theme colors per organization in Valkey.
type ThemeColorCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewThemeColorCache creates a theme color cache backed by the given Valkey client.
func NewThemeColorCache(client *redis.Client, ttl time.Duration) *ThemeColorCache {
	if ttl == 0 {
		ttl = DefaultThemeTTL
	}
	return &ThemeColorCache{client: client, ttl: ttl}
}

// Get retrieves the cached color for an organization. Returns "" on miss.
func (tc *ThemeColorCache) Get(ctx context.Context, orgID uuid.UUID) (string, bool) {
	val, err := tc.client.Get(ctx, themeKey(orgID)).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		slog.Warn("theme cache get error", "org_id", orgID, "error", err)
		return "", false
	}
	slog.Debug("theme cache hit", "org_id", orgID)
	return val, true
}

// Set stores the resolved color for an organization with the configured TTL.
func (tc *ThemeColorCache) Set(ctx context.Context, orgID uuid.UUID, color string) {
	if err := tc.client.Set(ctx, themeKey(orgID), color, tc.ttl).Err(); err != nil {
		slog.Warn("theme cache set error", "org_id", orgID, "error", err)
	}
}

// Invalidate removes an organization's cached color. Called when a manager
// changes the organization's theme so the next render picks up the new color.
func (tc *ThemeColorCache) Invalidate(ctx context.Context, orgID uuid.UUID) {
	if err := tc.client.Del(ctx, themeKey(orgID)).Err(); err != nil {
		slog.Warn("theme cache invalidate error", "org_id", orgID, "error", err)
	}
	slog.Debug("theme cache invalidated", "org_id", orgID)
}

func themeKey(orgID uuid.UUID) string {
	return fmt.Sprintf("%s%s", themeKeyPrefix, orgID)
}
