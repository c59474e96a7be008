package domain

import (
	"fmt"
	"strings"

	sharedDomain "github.com/felixgeelhaar/arcana/internal/shared/domain"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// Registration holds the account creation form.
type Registration struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// Validate checks the form before it is sent. ConfirmPassword is only
// compared when provided.
func (r Registration) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return sharedDomain.NewValidationError("name", "is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		return sharedDomain.NewValidationError("email", "is required")
	}
	if r.Password == "" {
		return sharedDomain.NewValidationError("password", "is required")
	}
	if len(r.Password) < MinPasswordLength {
		return sharedDomain.NewValidationError("password", fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	}
	if r.ConfirmPassword != "" && r.ConfirmPassword != r.Password {
		return sharedDomain.NewValidationError("password", "passwords do not match")
	}
	return nil
}
