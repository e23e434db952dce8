// Package repository defines the persistence interfaces of the portal.
package repository

import (
	"context"

	"github.com/hitoshi/instportal/internal/model"
)

// UserRepository persists user accounts.
type UserRepository interface {
	// FindByEmailAndRole looks up a user by email and role.
	// Returns nil when no such user exists.
	FindByEmailAndRole(ctx context.Context, email, role string) (*model.User, error)

	// CreateWithInstitution creates the user and its institution profile in
	// a single transaction: either both rows persist or neither does.
	// The generated user id is written back into user.ID and inst.UserID.
	// A duplicate email surfaces as model.ErrEmailTaken.
	CreateWithInstitution(ctx context.Context, user *model.User, inst *model.Institution) error
}

// InstitutionRepository persists institution profiles.
type InstitutionRepository interface {
	// FindByUserID returns the institution owned by the given user.
	// Returns nil when the user has no institution row.
	FindByUserID(ctx context.Context, userID int64) (*model.Institution, error)

	// FindLatest returns the most recently created institution, by
	// descending id. Returns nil when the table is empty.
	FindLatest(ctx context.Context) (*model.Institution, error)
}
