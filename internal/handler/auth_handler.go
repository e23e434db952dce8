package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/instportal/internal/metrics"
	"github.com/hitoshi/instportal/internal/model"
	"github.com/hitoshi/instportal/internal/session"
)

// AuthServiceInterface is the service interface the auth handler needs.
type AuthServiceInterface interface {
	Login(ctx context.Context, email, password, role string) (*model.Identity, error)
}

// LoginMetrics counts login attempts. May be nil.
type LoginMetrics interface {
	RecordLogin(role, outcome string)
}

// AuthHandler handles login and logout.
type AuthHandler struct {
	service  AuthServiceInterface
	sessions *session.Manager
	metrics  LoginMetrics
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(service AuthServiceInterface, sessions *session.Manager, m LoginMetrics) *AuthHandler {
	return &AuthHandler{
		service:  service,
		sessions: sessions,
		metrics:  m,
	}
}

// Login authenticates a form submission and establishes the session.
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	role := r.PostFormValue("role")

	// Field presence is checked before anything else; a missing field is a
	// client error, not a credential failure.
	verr := &model.ValidationError{}
	if email == "" {
		verr.Missing = append(verr.Missing, "email")
	}
	if password == "" {
		verr.Missing = append(verr.Missing, "password")
	}
	if role == "" {
		verr.Missing = append(verr.Missing, "role")
	}
	if len(verr.Missing) > 0 {
		http.Error(w, verr.Error(), http.StatusBadRequest)
		return
	}

	id, err := h.service.Login(r.Context(), email, password, role)
	if errors.Is(err, model.ErrInvalidCredentials) {
		// Session state is untouched on failure.
		h.recordLogin(role, metrics.OutcomeFailure)
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		slog.Error("login failed", slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	switch {
	case id.IsAuthority():
		if err := h.sessions.SetAuthority(w, r, id.Email); err != nil {
			slog.Error("failed to establish session", slog.String("error", err.Error()))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		h.recordLogin(role, metrics.OutcomeSuccess)
		http.Redirect(w, r, "/authority_dashboard", http.StatusSeeOther)
	case id.IsInstitution():
		if err := h.sessions.SetInstitution(w, r, id.UserID); err != nil {
			slog.Error("failed to establish session", slog.String("error", err.Error()))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		h.recordLogin(role, metrics.OutcomeSuccess)
		http.Redirect(w, r, "/institution_dashboard", http.StatusSeeOther)
	default:
		slog.Error("login returned an unusable identity", slog.String("role", id.Role))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// Logout discards the session unconditionally and returns to the login
// page. Logging out without a session is a no-op that still redirects.
// GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(w, r); err != nil {
		// The cookie is expired client-side even if encoding failed.
		slog.Error("failed to clear session", slog.String("error", err.Error()))
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *AuthHandler) recordLogin(role, outcome string) {
	if h.metrics != nil {
		h.metrics.RecordLogin(role, outcome)
	}
}
