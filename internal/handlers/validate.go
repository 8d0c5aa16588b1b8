package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for post fields.
const (
	maxPostTitleLen = 300
	maxPostBodyLen  = 20_000
)

// validatePost checks post inputs and returns the first error found,
// or "" when the input is acceptable.
func validatePost(title, body string) string {
	if strings.TrimSpace(title) == "" {
		return "title is required"
	}
	if utf8.RuneCountInString(title) > maxPostTitleLen {
		return "title is too long (max 300 characters)"
	}
	if utf8.RuneCountInString(body) > maxPostBodyLen {
		return "body is too long (max 20,000 characters)"
	}
	return ""
}
