// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"hiddengems/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}

	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}

	return nil
}

// ValidatePassword checks if a password meets security requirements
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	// Prevent unreasonable inputs
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}

	hasLetter := false
	hasDigit := false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("password must contain at least one letter and one digit")
	}

	return nil
}

// ValidateName checks display name requirements.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < 2 {
		return fmt.Errorf("name must be at least 2 characters long")
	}

	if len(trimmed) > 60 {
		return fmt.Errorf("name must not exceed 60 characters")
	}

	return nil
}

// ValidateGemTitle checks gem title requirements.
func ValidateGemTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return fmt.Errorf("title is required")
	}

	if len(trimmed) > 120 {
		return fmt.Errorf("title must not exceed 120 characters")
	}

	return nil
}

// ValidateCategory checks that a category is one of the known values.
// The "All" sentinel is a query filter, not a storable category.
func ValidateCategory(category string) error {
	if category == models.CategoryAll {
		return fmt.Errorf("category %q is not assignable to a gem", category)
	}

	if !models.ValidCategory(category) {
		return fmt.Errorf("unknown category %q", category)
	}

	return nil
}

// ValidateVoteType checks that a vote type is UP or DOWN.
func ValidateVoteType(voteType string) error {
	if !models.ValidVoteType(voteType) {
		return fmt.Errorf("vote type must be %s or %s", models.VoteUp, models.VoteDown)
	}

	return nil
}

// ValidateRating checks that a review rating is within the allowed scale.
func ValidateRating(rating int) error {
	if rating < models.MinRating || rating > models.MaxRating {
		return fmt.Errorf("rating must be between %d and %d", models.MinRating, models.MaxRating)
	}

	return nil
}

// ValidateCoordinates checks latitude and longitude ranges.
func ValidateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}

	if lng < -180 || lng > 180 {
		return fmt.Errorf("longitude must be between -180 and 180")
	}

	return nil
}
