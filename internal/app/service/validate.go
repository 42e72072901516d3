package service

import (
	"fmt"
	"regexp"
	"time"

	"taskreg/internal/common"
	"taskreg/internal/domain/model"
)

// Field-length and format rules carried over from the form layer. Anything
// structural beyond these belongs to the database schema.

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

const dateLayout = "2006-01-02"

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, common.ErrValidation)...)
}

func validateName(name string) error {
	if n := len(name); n < 2 || n > 255 {
		return validationError("name must be between 2 and 255 characters")
	}
	return nil
}

func validateUsername(username string) error {
	if n := len(username); n < 3 || n > 100 {
		return validationError("username must be between 3 and 100 characters")
	}
	if !usernamePattern.MatchString(username) {
		return validationError("username may only contain letters, digits and underscore")
	}
	return nil
}

func validateRole(role model.Role) error {
	if !role.Valid() {
		return validationError("invalid role %q", role)
	}
	return nil
}

func validateDescription(description string) error {
	if len(description) > 1000 {
		return validationError("description must not exceed 1000 characters")
	}
	return nil
}

// parseEndDate accepts YYYY-MM-DD and rejects dates before today. The check
// runs only on submitted values; stored rows whose date has since passed are
// not re-validated.
func parseEndDate(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return time.Time{}, validationError("end_date is required")
	}
	endDate, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, validationError("end_date must use the YYYY-MM-DD format")
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if endDate.Before(today) {
		return time.Time{}, validationError("end_date must not be in the past")
	}
	return endDate, nil
}
