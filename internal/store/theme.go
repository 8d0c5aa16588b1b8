// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"givehub/internal/models"
)

// ThemeStore handles all theme database operations.
type ThemeStore struct {
	db *sql.DB
}

// NewThemeStore creates a new ThemeStore.
func NewThemeStore(db *sql.DB) *ThemeStore {
	return &ThemeStore{db: db}
}

// themeColumns lists the columns selected in theme queries.
const themeColumns = `id, name, primary_color, secondary_color, created_at, updated_at`

// scanTheme scans a theme row from the result set.
func scanTheme(scanner interface{ Scan(...any) error }) (*models.Theme, error) {
	var t models.Theme
	err := scanner.Scan(&t.ID, &t.Name, &t.PrimaryColor, &t.SecondaryColor, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FindByID retrieves a theme by its UUID. Returns nil if not found.
func (s *ThemeStore) FindByID(id uuid.UUID) (*models.Theme, error) {
	row := s.db.QueryRow(`SELECT `+themeColumns+` FROM themes WHERE id = $1`, id)
	t, err := scanTheme(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find theme by id: %w", err)
	}
	return t, nil
}

// List returns all themes ordered by creation date descending.
func (s *ThemeStore) List() ([]models.Theme, error) {
	rows, err := s.db.Query(`
		SELECT ` + themeColumns + `
		FROM themes
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}
	defer rows.Close()

	var items []models.Theme
	for rows.Next() {
		t, err := scanTheme(rows)
		if err != nil {
			return nil, fmt.Errorf("scan theme: %w", err)
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

// Create inserts a new theme and returns it with the generated ID.
func (s *ThemeStore) Create(t *models.Theme) (*models.Theme, error) {
	err := s.db.QueryRow(`
		INSERT INTO themes (name, primary_color, secondary_color)
		VALUES ($1, $2, $3)
		RETURNING `+themeColumns,
		t.Name, t.PrimaryColor, t.SecondaryColor,
	).Scan(&t.ID, &t.Name, &t.PrimaryColor, &t.SecondaryColor, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create theme: %w", err)
	}
	return t, nil
}

// Update modifies a theme's name and colors.
func (s *ThemeStore) Update(id uuid.UUID, name string, primary, secondary *string) error {
	result, err := s.db.Exec(`
		UPDATE themes SET name = $1, primary_color = $2, secondary_color = $3, updated_at = NOW()
		WHERE id = $4
	`, name, primary, secondary, id)
	if err != nil {
		return fmt.Errorf("update theme: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("theme not found")
	}
	return nil
}

// Delete removes a theme. Organizations referencing it fall back to the
// default color (theme_id is set NULL by the foreign key).
func (s *ThemeStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM themes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete theme: %w", err)
	}
	return nil
}
