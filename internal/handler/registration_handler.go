package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/instportal/internal/metrics"
	"github.com/hitoshi/instportal/internal/model"
)

// RegistrationServiceInterface is the service interface the registration
// handler needs.
type RegistrationServiceInterface interface {
	Register(ctx context.Context, in *model.RegistrationInput) (int64, error)
}

// RegistrationMetrics counts registration attempts. May be nil.
type RegistrationMetrics interface {
	RecordRegistration(outcome string)
}

// RegistrationHandler handles institution signups.
type RegistrationHandler struct {
	service RegistrationServiceInterface
	metrics RegistrationMetrics
}

// NewRegistrationHandler creates a RegistrationHandler.
func NewRegistrationHandler(service RegistrationServiceInterface, m RegistrationMetrics) *RegistrationHandler {
	return &RegistrationHandler{
		service: service,
		metrics: m,
	}
}

// Register creates an institution account from the signup form.
// POST /register
//
// Registration does not establish a session; the dashboard redirect is
// reached unauthenticated.
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	in := parseRegistrationForm(r)

	_, err := h.service.Register(r.Context(), in)
	if err != nil {
		h.recordRegistration(metrics.OutcomeFailure)

		var verr *model.ValidationError
		switch {
		case errors.As(err, &verr):
			http.Error(w, verr.Error(), http.StatusBadRequest)
		case errors.Is(err, model.ErrEmailTaken):
			// The raw store detail stays in the logs; the caller gets a
			// generic message.
			slog.Warn("registration rejected, email taken",
				slog.String("email", in.Email),
			)
			http.Error(w, "email already registered", http.StatusConflict)
		default:
			slog.Error("registration failed", slog.String("error", err.Error()))
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	h.recordRegistration(metrics.OutcomeSuccess)
	http.Redirect(w, r, "/institution_dashboard", http.StatusSeeOther)
}

// parseRegistrationForm maps the signup form fields onto the input struct.
// Absent fields parse to "" and are reported by validation, never panicked on.
func parseRegistrationForm(r *http.Request) *model.RegistrationInput {
	return &model.RegistrationInput{
		InstitutionName:       r.PostFormValue("institution_name"),
		Email:                 r.PostFormValue("email"),
		Password:              r.PostFormValue("password"),
		InstituteType:         r.PostFormValue("institute_type"),
		InstituteID:           r.PostFormValue("institute_id"),
		AffiliatingUniversity: r.PostFormValue("affiliated_university"),
		EstablishedYear:       r.PostFormValue("established_year"),
		State:                 r.PostFormValue("state"),
		District:              r.PostFormValue("district"),
		City:                  r.PostFormValue("city"),
		PinCode:               r.PostFormValue("pincode"),
		Category:              r.PostFormValue("category"),
		Phone:                 r.PostFormValue("phone"),
		AuthorizedPerson:      r.PostFormValue("authorized_person"),
		Designation:           r.PostFormValue("designation"),
	}
}

func (h *RegistrationHandler) recordRegistration(outcome string) {
	if h.metrics != nil {
		h.metrics.RecordRegistration(outcome)
	}
}
