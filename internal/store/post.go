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

// PostStore handles all post database operations.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// postColumns lists the columns selected in post queries.
const postColumns = `id, organization_id, author_id, kind, title, body_markdown, image_url, thumb_url, background_color_hex, created_at, updated_at`

// scanPost scans a post row from the result set.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(
		&p.ID, &p.OrganizationID, &p.AuthorID, &p.Kind, &p.Title, &p.BodyMarkdown,
		&p.ImageURL, &p.ThumbURL, &p.BackgroundColorHex, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByID retrieves a post by its UUID. Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// ListByOrganization returns an organization's posts, newest first.
func (s *PostStore) ListByOrganization(orgID uuid.UUID, limit, offset int) ([]models.Post, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.Query(`
		SELECT `+postColumns+`
		FROM posts
		WHERE organization_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, orgID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var items []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// Create inserts a new post and returns it with the generated ID.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	err := s.db.QueryRow(`
		INSERT INTO posts (organization_id, author_id, kind, title, body_markdown, image_url, thumb_url, background_color_hex)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+postColumns,
		p.OrganizationID, p.AuthorID, p.Kind, p.Title, p.BodyMarkdown,
		p.ImageURL, p.ThumbURL, p.BackgroundColorHex,
	).Scan(
		&p.ID, &p.OrganizationID, &p.AuthorID, &p.Kind, &p.Title, &p.BodyMarkdown,
		&p.ImageURL, &p.ThumbURL, &p.BackgroundColorHex, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return p, nil
}

// Delete removes a post by ID.
func (s *PostStore) Delete(id uuid.UUID) error {
	result, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("post not found")
	}
	return nil
}
