package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/instportal/internal/model"
)

// UserFinder is the subset of repository.UserRepository that login needs.
type UserFinder interface {
	FindByEmailAndRole(ctx context.Context, email, role string) (*model.User, error)
}

// Service authenticates login attempts for both roles.
type Service struct {
	authority AuthorityCredentials
	users     UserFinder
}

// NewService creates an auth Service.
func NewService(authority AuthorityCredentials, users UserFinder) *Service {
	return &Service{
		authority: authority,
		users:     users,
	}
}

// Login authenticates the submitted email/password/role triple.
//
// Authority logins are checked against the configured allow-list and never
// touch the store. Any other role is looked up in the users table and the
// password verified against the stored hash. Every failure, whatever its
// cause, is model.ErrInvalidCredentials; a failed attempt changes no state.
func (s *Service) Login(ctx context.Context, email, password, role string) (*model.Identity, error) {
	if role == model.RoleAuthority {
		if !s.authority.Authenticate(email, password) {
			slog.Warn("authority login rejected", slog.String("email", email))
			return nil, model.ErrInvalidCredentials
		}
		return &model.Identity{Role: model.RoleAuthority, Email: email}, nil
	}

	user, err := s.users.FindByEmailAndRole(ctx, email, role)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, model.ErrInvalidCredentials
	}
	if err := CheckPassword(user.Password, password); err != nil {
		slog.Warn("institution login rejected",
			slog.String("email", email),
		)
		return nil, model.ErrInvalidCredentials
	}

	return &model.Identity{Role: model.RoleInstitution, UserID: user.ID}, nil
}
