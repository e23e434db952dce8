// Package middleware provides the HTTP middleware chain of the portal.
package middleware

import (
	"context"
	"net/http"

	"github.com/hitoshi/instportal/internal/model"
	"github.com/hitoshi/instportal/internal/session"
)

// contextKey is a private type for request-context values.
type contextKey string

var identityContextKey = contextKey("identity")

// NewSessionMiddleware decodes the signed session cookie and, when it
// carries an identity, injects it into the request context. Requests
// without a session pass through untouched; enforcement is per-handler,
// since most of the portal's routes are public.
func NewSessionMiddleware(m *session.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id := m.Current(r); id != nil {
				r = r.WithContext(ContextWithIdentity(r.Context(), id))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IdentityFromContext returns the authenticated identity, or nil when the
// request carries no session.
func IdentityFromContext(ctx context.Context) *model.Identity {
	id, _ := ctx.Value(identityContextKey).(*model.Identity)
	return id
}

// ContextWithIdentity injects an identity into a context.
// Used by the session middleware and by tests.
func ContextWithIdentity(ctx context.Context, id *model.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}
