package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/hitoshi/instportal/internal/model"
)

type mockRegistrationService struct {
	registerFn func(ctx context.Context, in *model.RegistrationInput) (int64, error)
}

func (m *mockRegistrationService) Register(ctx context.Context, in *model.RegistrationInput) (int64, error) {
	return m.registerFn(ctx, in)
}

func signupForm() url.Values {
	return url.Values{
		"institution_name":      {"Sunrise College"},
		"email":                 {"office@sunrise.edu"},
		"password":              {"s3cret"},
		"institute_type":        {"College"},
		"institute_id":          {"CLG-104"},
		"affiliated_university": {"State University"},
		"established_year":      {"1998"},
		"state":                 {"Karnataka"},
		"district":              {"Udupi"},
		"city":                  {"Manipal"},
		"pincode":               {"576104"},
		"category":              {"Private"},
		"phone":                 {"0820-2571201"},
		"authorized_person":     {"R. Shetty"},
		"designation":           {"Principal"},
	}
}

func TestRegistrationHandler_Register_Success(t *testing.T) {
	svc := &mockRegistrationService{
		registerFn: func(ctx context.Context, in *model.RegistrationInput) (int64, error) {
			if in.InstitutionName != "Sunrise College" {
				t.Errorf("InstitutionName = %q", in.InstitutionName)
			}
			if in.AffiliatingUniversity != "State University" {
				t.Errorf("AffiliatingUniversity = %q", in.AffiliatingUniversity)
			}
			if in.PinCode != "576104" {
				t.Errorf("PinCode = %q", in.PinCode)
			}
			return 7, nil
		},
	}
	h := NewRegistrationHandler(svc, nil)

	w := httptest.NewRecorder()
	h.Register(w, postForm("/register", signupForm()))

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/institution_dashboard" {
		t.Errorf("Location = %q, want /institution_dashboard", loc)
	}
	// Registration must not log the caller in.
	if cookies := w.Result().Cookies(); len(cookies) != 0 {
		t.Errorf("expected no session cookie after registration, got %v", cookies)
	}
}

func TestRegistrationHandler_Register_ValidationError(t *testing.T) {
	svc := &mockRegistrationService{
		registerFn: func(ctx context.Context, in *model.RegistrationInput) (int64, error) {
			return 0, in.Validate()
		},
	}
	h := NewRegistrationHandler(svc, nil)

	form := signupForm()
	form.Del("email")
	form.Del("pincode")
	w := httptest.NewRecorder()
	h.Register(w, postForm("/register", form))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "email") || !strings.Contains(body, "pincode") {
		t.Errorf("body = %q, want the missing fields named", body)
	}
}

func TestRegistrationHandler_Register_EmailTaken(t *testing.T) {
	svc := &mockRegistrationService{
		registerFn: func(ctx context.Context, in *model.RegistrationInput) (int64, error) {
			return 0, model.ErrEmailTaken
		},
	}
	h := NewRegistrationHandler(svc, nil)

	w := httptest.NewRecorder()
	h.Register(w, postForm("/register", signupForm()))

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "email already registered") {
		t.Errorf("body = %q, want the generic conflict message", body)
	}
	// No constraint names or SQL detail in the response.
	if strings.Contains(body, "UNIQUE") || strings.Contains(body, "users.email") {
		t.Errorf("body leaks store detail: %q", body)
	}
}

func TestRegistrationHandler_Register_StoreError(t *testing.T) {
	svc := &mockRegistrationService{
		registerFn: func(ctx context.Context, in *model.RegistrationInput) (int64, error) {
			return 0, errors.New("database is locked")
		},
	}
	h := NewRegistrationHandler(svc, nil)

	w := httptest.NewRecorder()
	h.Register(w, postForm("/register", signupForm()))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "locked") {
		t.Error("internal error detail must not leak to the client")
	}
}
