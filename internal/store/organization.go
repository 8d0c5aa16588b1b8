// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"givehub/internal/models"
	"givehub/internal/slug"
)

// OrganizationStore handles all organization database operations.
type OrganizationStore struct {
	db *sql.DB
}

// NewOrganizationStore creates a new OrganizationStore.
func NewOrganizationStore(db *sql.DB) *OrganizationStore {
	return &OrganizationStore{db: db}
}

// orgColumns lists the columns selected in organization queries.
const orgColumns = `id, name, slug, mission, theme_id, created_at, updated_at`

// scanOrganization scans an organization row from the result set.
func scanOrganization(scanner interface{ Scan(...any) error }) (*models.Organization, error) {
	var o models.Organization
	err := scanner.Scan(&o.ID, &o.Name, &o.Slug, &o.Mission, &o.ThemeID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// FindByID retrieves an organization by its UUID. Returns nil if not found.
func (s *OrganizationStore) FindByID(id uuid.UUID) (*models.Organization, error) {
	row := s.db.QueryRow(`SELECT `+orgColumns+` FROM organizations WHERE id = $1`, id)
	o, err := scanOrganization(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find organization by id: %w", err)
	}
	return o, nil
}

// FindBySlug retrieves an organization by its URL slug. Returns nil if not found.
func (s *OrganizationStore) FindBySlug(orgSlug string) (*models.Organization, error) {
	row := s.db.QueryRow(`SELECT `+orgColumns+` FROM organizations WHERE slug = $1`, orgSlug)
	o, err := scanOrganization(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find organization by slug: %w", err)
	}
	return o, nil
}

// List returns all organizations ordered by name.
func (s *OrganizationStore) List() ([]models.Organization, error) {
	rows, err := s.db.Query(`SELECT ` + orgColumns + ` FROM organizations ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	defer rows.Close()

	var items []models.Organization
	for rows.Next() {
		o, err := scanOrganization(rows)
		if err != nil {
			return nil, fmt.Errorf("scan organization: %w", err)
		}
		items = append(items, *o)
	}
	return items, rows.Err()
}

// Create inserts a new organization. The slug is derived from the name.
func (s *OrganizationStore) Create(o *models.Organization) (*models.Organization, error) {
	if o.Slug == "" {
		o.Slug = slug.Generate(o.Name)
	}

	err := s.db.QueryRow(`
		INSERT INTO organizations (name, slug, mission, theme_id)
		VALUES ($1, $2, $3, $4)
		RETURNING `+orgColumns,
		o.Name, o.Slug, o.Mission, o.ThemeID,
	).Scan(&o.ID, &o.Name, &o.Slug, &o.Mission, &o.ThemeID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create organization: %w", err)
	}
	return o, nil
}

// SetTheme assigns a theme to an organization. Pass nil to clear the theme.
func (s *OrganizationStore) SetTheme(orgID uuid.UUID, themeID *uuid.UUID) error {
	result, err := s.db.Exec(`
		UPDATE organizations SET theme_id = $1, updated_at = NOW() WHERE id = $2
	`, themeID, orgID)
	if err != nil {
		return fmt.Errorf("set organization theme: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("organization not found")
	}
	return nil
}

// Delete removes an organization by ID.
func (s *OrganizationStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM organizations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete organization: %w", err)
	}
	return nil
}
