package institution

import (
	"context"
	"errors"
	"testing"

	"github.com/hitoshi/instportal/internal/auth"
	"github.com/hitoshi/instportal/internal/model"
	"github.com/hitoshi/instportal/internal/security"
)

// --- mocks ---

type mockUserRepo struct {
	createFn func(ctx context.Context, user *model.User, inst *model.Institution) error
}

func (m *mockUserRepo) FindByEmailAndRole(ctx context.Context, email, role string) (*model.User, error) {
	return nil, nil
}

func (m *mockUserRepo) CreateWithInstitution(ctx context.Context, user *model.User, inst *model.Institution) error {
	if m.createFn != nil {
		return m.createFn(ctx, user, inst)
	}
	user.ID = 1
	inst.UserID = 1
	return nil
}

type mockInstitutionRepo struct {
	byUserFn func(ctx context.Context, userID int64) (*model.Institution, error)
	latestFn func(ctx context.Context) (*model.Institution, error)
}

func (m *mockInstitutionRepo) FindByUserID(ctx context.Context, userID int64) (*model.Institution, error) {
	if m.byUserFn != nil {
		return m.byUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockInstitutionRepo) FindLatest(ctx context.Context) (*model.Institution, error) {
	if m.latestFn != nil {
		return m.latestFn(ctx)
	}
	return nil, nil
}

func validInput() *model.RegistrationInput {
	return &model.RegistrationInput{
		InstitutionName:       "Sunrise Engineering College",
		Email:                 "office@sunrise.edu",
		Password:              "s3cret-pass",
		InstituteType:         "Engineering",
		InstituteID:           "SEC-042",
		AffiliatingUniversity: "State Technical University",
		EstablishedYear:       "1998",
		State:                 "Karnataka",
		District:              "Bengaluru Urban",
		City:                  "Bengaluru",
		PinCode:               "560001",
		Category:              "Private",
		Phone:                 "080-12345678",
		AuthorizedPerson:      "R. Iyer",
		Designation:           "Principal",
	}
}

// --- Register ---

func TestRegister_CreatesUserAndInstitution(t *testing.T) {
	var gotUser *model.User
	var gotInst *model.Institution
	users := &mockUserRepo{
		createFn: func(ctx context.Context, user *model.User, inst *model.Institution) error {
			gotUser = user
			gotInst = inst
			user.ID = 7
			inst.UserID = 7
			return nil
		},
	}
	svc := NewService(users, &mockInstitutionRepo{}, security.NewFormSanitizer())

	id, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if id != 7 {
		t.Errorf("id = %d, want 7", id)
	}

	if gotUser.Role != model.RoleInstitution {
		t.Errorf("role = %q, want institution", gotUser.Role)
	}
	if gotUser.Name != "Sunrise Engineering College" {
		t.Errorf("user name = %q", gotUser.Name)
	}
	if gotInst.OfficialEmail != "office@sunrise.edu" {
		t.Errorf("official email = %q", gotInst.OfficialEmail)
	}
	if gotInst.YearOfEstablishment != 1998 {
		t.Errorf("year = %d, want 1998", gotInst.YearOfEstablishment)
	}
}

func TestRegister_HashesPassword(t *testing.T) {
	var stored string
	users := &mockUserRepo{
		createFn: func(ctx context.Context, user *model.User, inst *model.Institution) error {
			stored = user.Password
			return nil
		},
	}
	svc := NewService(users, &mockInstitutionRepo{}, nil)

	if _, err := svc.Register(context.Background(), validInput()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if stored == "s3cret-pass" {
		t.Fatal("password must not be stored as plaintext")
	}
	if err := auth.CheckPassword(stored, "s3cret-pass"); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestRegister_MissingFields_NoStoreAccess(t *testing.T) {
	users := &mockUserRepo{
		createFn: func(ctx context.Context, user *model.User, inst *model.Institution) error {
			t.Error("store must not be touched for invalid input")
			return nil
		},
	}
	svc := NewService(users, &mockInstitutionRepo{}, nil)

	in := validInput()
	in.Email = ""
	in.Designation = ""

	_, err := svc.Register(context.Background(), in)
	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *model.ValidationError", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := &mockUserRepo{
		createFn: func(ctx context.Context, user *model.User, inst *model.Institution) error {
			return model.ErrEmailTaken
		},
	}
	svc := NewService(users, &mockInstitutionRepo{}, nil)

	_, err := svc.Register(context.Background(), validInput())
	if !errors.Is(err, model.ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestRegister_SanitizesFreeTextFields(t *testing.T) {
	var gotInst *model.Institution
	users := &mockUserRepo{
		createFn: func(ctx context.Context, user *model.User, inst *model.Institution) error {
			gotInst = inst
			return nil
		},
	}
	svc := NewService(users, &mockInstitutionRepo{}, security.NewFormSanitizer())

	in := validInput()
	in.InstitutionName = `<script>alert(1)</script>Sunrise`
	in.AuthorizedPerson = "<b>R. Iyer</b>"

	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if gotInst.InstitutionName != "Sunrise" {
		t.Errorf("InstitutionName = %q, want markup stripped", gotInst.InstitutionName)
	}
	if gotInst.AuthorizedPerson != "R. Iyer" {
		t.Errorf("AuthorizedPerson = %q, want markup stripped", gotInst.AuthorizedPerson)
	}
}

// --- Profile / Latest ---

func TestProfile_NoRow_ReturnsNil(t *testing.T) {
	svc := NewService(&mockUserRepo{}, &mockInstitutionRepo{}, nil)

	inst, err := svc.Profile(context.Background(), 99)
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if inst != nil {
		t.Errorf("expected nil, got %+v", inst)
	}
}

func TestLatest_ReturnsRepositoryResult(t *testing.T) {
	want := &model.Institution{ID: 3, InstitutionName: "Lakeside Polytechnic"}
	repo := &mockInstitutionRepo{
		latestFn: func(ctx context.Context) (*model.Institution, error) {
			return want, nil
		},
	}
	svc := NewService(&mockUserRepo{}, repo, nil)

	got, err := svc.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
