// Package auth provides login for both portal roles: the fixed authority
// allow-list and database-backed institution accounts.
package auth

import "crypto/subtle"

// AuthorityCredentials is the fixed authority allow-list, email -> password.
// It lives only in configuration, never in the store.
type AuthorityCredentials map[string]string

// Authenticate reports whether the pair matches an allow-list entry.
// Comparison is exact and case-sensitive.
func (c AuthorityCredentials) Authenticate(email, password string) bool {
	want, ok := c[email]
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(want), []byte(password)) == 1
}
