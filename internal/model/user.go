// Package model defines the domain models of the portal.
package model

import "time"

// Roles an authenticated identity can hold.
const (
	RoleAuthority   = "authority"
	RoleInstitution = "institution"
)

// User is any account that can log in through the database.
// Authority accounts live only in the configured allow-list and never
// appear in this table.
type User struct {
	ID        int64
	Name      string
	Email     string
	Password  string // bcrypt hash, never the submitted plaintext
	Role      string
	CreatedAt time.Time
}

// Identity is the authenticated identity carried in the session cookie.
// Email is set for authority logins, UserID for institution logins.
type Identity struct {
	Role   string
	Email  string
	UserID int64
}

// IsInstitution reports whether the identity is an institution account.
func (i *Identity) IsInstitution() bool {
	return i != nil && i.Role == RoleInstitution && i.UserID != 0
}

// IsAuthority reports whether the identity is an authority account.
func (i *Identity) IsAuthority() bool {
	return i != nil && i.Role == RoleAuthority && i.Email != ""
}
