package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hitoshi/instportal/internal/middleware"
	"github.com/hitoshi/instportal/internal/model"
	"github.com/hitoshi/instportal/internal/view"
)

// InstitutionViewerInterface is the read side of the institution service.
type InstitutionViewerInterface interface {
	Profile(ctx context.Context, userID int64) (*model.Institution, error)
	Latest(ctx context.Context) (*model.Institution, error)
}

// InstitutionHandler serves the profile and the two dashboards.
type InstitutionHandler struct {
	service InstitutionViewerInterface
	view    *view.Renderer
}

// NewInstitutionHandler creates an InstitutionHandler.
func NewInstitutionHandler(service InstitutionViewerInterface, v *view.Renderer) *InstitutionHandler {
	return &InstitutionHandler{
		service: service,
		view:    v,
	}
}

// Profile renders the institution profile of the logged-in account.
// Unauthenticated requests are redirected to the login page, not shown an
// error. A session without a profile row renders the empty state.
// GET /profile
func (h *InstitutionHandler) Profile(w http.ResponseWriter, r *http.Request) {
	id := middleware.IdentityFromContext(r.Context())
	if !id.IsInstitution() {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	inst, err := h.service.Profile(r.Context(), id.UserID)
	if err != nil {
		slog.Error("failed to load profile", slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.view.Render(w, view.TemplateProfile, map[string]any{
		"Institution": inst,
	})
}

// Dashboard renders the institution dashboard.
//
// A logged-in institution always sees its own data. Without a session the
// most recent registrant is shown; that keeps the sessionless redirect
// right after registration working, since registering does not log in.
// GET /institution_dashboard
func (h *InstitutionHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	var inst *model.Institution
	var err error

	if id := middleware.IdentityFromContext(r.Context()); id.IsInstitution() {
		inst, err = h.service.Profile(r.Context(), id.UserID)
	} else {
		inst, err = h.service.Latest(r.Context())
	}
	if err != nil {
		slog.Error("failed to load dashboard", slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.view.Render(w, view.TemplateInstitutionDashboard, map[string]any{
		"Institution": inst,
	})
}

// AuthorityDashboard renders the static authority view.
// GET /authority_dashboard
func (h *InstitutionHandler) AuthorityDashboard(w http.ResponseWriter, r *http.Request) {
	var email string
	if id := middleware.IdentityFromContext(r.Context()); id.IsAuthority() {
		email = id.Email
	}

	h.view.Render(w, view.TemplateAuthorityDashboard, map[string]any{
		"Email": email,
	})
}
