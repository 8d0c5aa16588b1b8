package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: the default
// theme, a sample organization using it, and a manager account for that
// organization. The manager will be prompted to set up 2FA on first login.
func Seed(db *sql.DB) error {
	// Check if any organizations exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM organizations").Scan(&count); err != nil {
		return fmt.Errorf("seed check organizations: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	var themeID string
	err := db.QueryRow(`
		INSERT INTO themes (name, primary_color)
		VALUES ($1, $2)
		RETURNING id
	`, "Harbor Blue", "#2E5C8A").Scan(&themeID)
	if err != nil {
		return fmt.Errorf("seed insert theme: %w", err)
	}

	var orgID string
	err = db.QueryRow(`
		INSERT INTO organizations (name, slug, mission, theme_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, "River Valley Food Bank", "river-valley-food-bank",
		"Ending hunger in the River Valley, one meal at a time.", themeID).Scan(&orgID)
	if err != nil {
		return fmt.Errorf("seed insert organization: %w", err)
	}

	// Hash the default manager password.
	hash, err := bcrypt.GenerateFromPassword([]byte("manager"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	// Insert default manager user. 2FA is not enabled — they must set it up
	// on first login.
	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name, role, organization_id, totp_enabled)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, "manager@givehub.local", string(hash), "Sample Manager", "manager", orgID, false)
	if err != nil {
		return fmt.Errorf("seed insert manager: %w", err)
	}

	slog.Info("database seeded with default theme, organization, and manager",
		"email", "manager@givehub.local",
		"password", "manager",
	)

	return nil
}
