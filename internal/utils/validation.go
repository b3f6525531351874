package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// Region codes, metric slugs and field names
	validIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
)

// ValidateID validates that a route parameter is safe and within reasonable limits
func ValidateID(id string) error {
	if id == "" {
		return errors.New("id cannot be empty")
	}

	if len(id) > 64 {
		return errors.New("id too long (max 64 characters)")
	}

	if !validIDPattern.MatchString(id) {
		return errors.New("id contains invalid characters")
	}

	return nil
}

// ValidateDimension checks a chart width or height in pixels.
func ValidateDimension(n, lo, hi int) error {
	if n < lo || n > hi {
		return fmt.Errorf("must be between %d and %d", lo, hi)
	}
	return nil
}

// SanitizeInput removes HTML tags and other potentially dangerous content
func SanitizeInput(input string) string {
	sanitized := htmlTagPattern.ReplaceAllString(input, "")
	return strings.TrimSpace(sanitized)
}
