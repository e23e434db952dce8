package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmailTaken is returned when a registration reuses an existing email.
// The store's uniqueness constraint is the source of truth; handlers map
// this to a generic user-facing message and keep the raw store detail in
// the logs only.
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidCredentials is returned for any failed login, regardless of
// role and regardless of whether the account exists.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError reports form fields that are missing or have the wrong
// type. It is produced before any store access is attempted.
type ValidationError struct {
	Missing []string
	Invalid []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", ")))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, fmt.Sprintf("invalid fields: %s", strings.Join(e.Invalid, ", ")))
	}
	if len(parts) == 0 {
		return "validation error"
	}
	return strings.Join(parts, "; ")
}
