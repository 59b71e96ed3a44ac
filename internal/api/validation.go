package api

import (
	"net/mail"

	"github.com/mindflow/mindflow/internal/errors"
)

// validatePlayerInput enforces the intake form rules: name at least two
// characters, age between 3 and 18, email optional but well-formed when
// present. The aggregator itself does no validation.
func validatePlayerInput(name string, age int, email string) error {
	if len(name) < 2 {
		return errors.NewValidationError("name", "must be at least 2 characters")
	}
	if age < 3 || age > 18 {
		return errors.NewValidationError("age", "must be between 3 and 18")
	}
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return errors.NewValidationError("email", "invalid email address")
		}
	}
	return nil
}
