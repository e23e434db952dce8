// Package session carries the authenticated identity across requests in a
// signed cookie. The cookie is client-carried and server-secret-signed;
// rotating the secret invalidates every live session.
package session

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/hitoshi/instportal/internal/model"
)

const cookieName = "instportal_session"

// Value keys inside the session cookie.
const (
	keyRole   = "role"
	keyEmail  = "email"
	keyUserID = "user_id"
)

// Manager reads and writes the signed session cookie.
type Manager struct {
	store *sessions.CookieStore
}

// NewManager creates a Manager signing with secret.
// maxAge is the cookie lifetime in seconds.
func NewManager(secret string, maxAge int, secure bool) *Manager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store}
}

// Current returns the identity carried by the request's session cookie, or
// nil when there is none. A cookie signed with a different secret decodes
// to nothing and is treated as no session.
func (m *Manager) Current(r *http.Request) *model.Identity {
	s, err := m.store.Get(r, cookieName)
	if err != nil {
		// Tampered or stale cookie: fall through to whatever values
		// decoded, which for a fresh session is none.
		s, _ = m.store.New(r, cookieName)
	}

	role, _ := s.Values[keyRole].(string)
	switch role {
	case model.RoleAuthority:
		email, _ := s.Values[keyEmail].(string)
		if email == "" {
			return nil
		}
		return &model.Identity{Role: model.RoleAuthority, Email: email}
	case model.RoleInstitution:
		userID, _ := s.Values[keyUserID].(int64)
		if userID == 0 {
			return nil
		}
		return &model.Identity{Role: model.RoleInstitution, UserID: userID}
	default:
		return nil
	}
}

// SetAuthority establishes an authority session for email.
func (m *Manager) SetAuthority(w http.ResponseWriter, r *http.Request, email string) error {
	s, _ := m.store.Get(r, cookieName)
	s.Values[keyRole] = model.RoleAuthority
	s.Values[keyEmail] = email
	delete(s.Values, keyUserID)
	if err := s.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// SetInstitution establishes an institution session for userID.
func (m *Manager) SetInstitution(w http.ResponseWriter, r *http.Request, userID int64) error {
	s, _ := m.store.Get(r, cookieName)
	s.Values[keyRole] = model.RoleInstitution
	s.Values[keyUserID] = userID
	delete(s.Values, keyEmail)
	if err := s.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Clear discards all session state. Clearing an absent session is a no-op.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	s, _ := m.store.Get(r, cookieName)
	s.Values = make(map[interface{}]interface{})
	s.Options.MaxAge = -1
	if err := s.Save(r, w); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
