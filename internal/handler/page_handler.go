// Package handler provides the HTTP handlers of the portal.
package handler

import (
	"net/http"

	"github.com/hitoshi/instportal/internal/view"
)

// PageHandler serves the static form pages.
type PageHandler struct {
	view *view.Renderer
}

// NewPageHandler creates a PageHandler.
func NewPageHandler(v *view.Renderer) *PageHandler {
	return &PageHandler{view: v}
}

// Login renders the login page.
// GET /
func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, view.TemplateLogin, nil)
}

// Signup renders the registration form.
// GET /signup
func (h *PageHandler) Signup(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, view.TemplateSignup, nil)
}
