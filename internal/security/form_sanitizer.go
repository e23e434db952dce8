// Package security provides input hardening for the portal.
//
// FormSanitizer strips markup from submitted form fields before they are
// persisted. Profile fields are stored as plain text; anything that looks
// like HTML in a name, address or designation is attacker noise, not data.
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// FieldSanitizer cleans a single form field value.
// Idempotent: sanitizing an already-clean value returns it unchanged.
type FieldSanitizer interface {
	Sanitize(value string) string
}

// formSanitizer implements FieldSanitizer with a bluemonday strict policy:
// every tag and attribute is removed, only text content survives.
type formSanitizer struct {
	policy *bluemonday.Policy
}

// NewFormSanitizer creates a FieldSanitizer for form fields.
func NewFormSanitizer() *formSanitizer {
	return &formSanitizer{policy: bluemonday.StrictPolicy()}
}

// Sanitize strips all markup and trims surrounding whitespace.
// bluemonday entity-escapes the surviving text; the output is stored as
// plain text, so escape sequences are folded back to their characters.
func (s *formSanitizer) Sanitize(value string) string {
	clean := s.policy.Sanitize(value)
	return strings.TrimSpace(html.UnescapeString(clean))
}
