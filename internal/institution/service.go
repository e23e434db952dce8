// Package institution provides the registration and profile domain logic.
package institution

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/instportal/internal/auth"
	"github.com/hitoshi/instportal/internal/model"
	"github.com/hitoshi/instportal/internal/repository"
	"github.com/hitoshi/instportal/internal/security"
)

// Service implements institution registration and profile lookup.
type Service struct {
	users        repository.UserRepository
	institutions repository.InstitutionRepository
	sanitizer    security.FieldSanitizer
}

// NewService creates an institution Service.
func NewService(
	users repository.UserRepository,
	institutions repository.InstitutionRepository,
	sanitizer security.FieldSanitizer,
) *Service {
	return &Service{
		users:        users,
		institutions: institutions,
		sanitizer:    sanitizer,
	}
}

// Register validates and persists a new institution account.
//
// Validation happens before any store access; a missing or malformed field
// is a *model.ValidationError, never a store fault. The user row and the
// institution profile are created in one transaction, so a duplicate email
// (model.ErrEmailTaken) leaves both tables untouched. The returned id is
// the generated user id.
func (s *Service) Register(ctx context.Context, in *model.RegistrationInput) (int64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}

	clean := func(v string) string {
		if s.sanitizer == nil {
			return v
		}
		return s.sanitizer.Sanitize(v)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	name := clean(in.InstitutionName)
	email := clean(in.Email)

	user := &model.User{
		Name:      name,
		Email:     email,
		Password:  hash,
		Role:      model.RoleInstitution, // fixed, never taken from the client
		CreatedAt: now,
	}
	inst := &model.Institution{
		InstitutionName:       name,
		InstituteType:         clean(in.InstituteType),
		InstituteID:           clean(in.InstituteID),
		AffiliatingUniversity: clean(in.AffiliatingUniversity),
		YearOfEstablishment:   in.Year(),
		State:                 clean(in.State),
		District:              clean(in.District),
		City:                  clean(in.City),
		PinCode:               clean(in.PinCode),
		Category:              clean(in.Category),
		OfficialEmail:         email,
		Phone:                 clean(in.Phone),
		AuthorizedPerson:      clean(in.AuthorizedPerson),
		Designation:           clean(in.Designation),
		CreatedAt:             now,
	}

	if err := s.users.CreateWithInstitution(ctx, user, inst); err != nil {
		return 0, err
	}

	slog.Info("institution registered",
		slog.Int64("user_id", user.ID),
		slog.String("institution", inst.InstitutionName),
	)

	return user.ID, nil
}

// Profile returns the institution owned by userID, or nil when the user has
// no profile row. Callers render an empty context in that case instead of
// failing.
func (s *Service) Profile(ctx context.Context, userID int64) (*model.Institution, error) {
	inst, err := s.institutions.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load institution profile: %w", err)
	}
	return inst, nil
}

// Latest returns the most recently registered institution, or nil when none
// exists yet.
func (s *Service) Latest(ctx context.Context) (*model.Institution, error) {
	inst, err := s.institutions.FindLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest institution: %w", err)
	}
	return inst, nil
}
