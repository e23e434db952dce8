package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/hitoshi/instportal/internal/model"
)

// SQLiteUserRepo is the SQLite-backed user repository.
type SQLiteUserRepo struct {
	db *sql.DB
}

// NewSQLiteUserRepo creates a SQLiteUserRepo.
func NewSQLiteUserRepo(db *sql.DB) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: db}
}

// FindByEmailAndRole looks up a user by email and role.
// Returns nil when no such user exists.
func (r *SQLiteUserRepo) FindByEmailAndRole(ctx context.Context, email, role string) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password, role, created_at
		 FROM users WHERE email = ? AND role = ?`,
		email, role,
	).Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Role, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	return user, nil
}

// CreateWithInstitution creates the user and its institution profile in a
// single transaction. The institution row references the generated user id;
// any failure rolls back both inserts.
func (r *SQLiteUserRepo) CreateWithInstitution(ctx context.Context, user *model.User, inst *model.Institution) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO users (name, email, password, role, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		user.Name, user.Email, user.Password, user.Role, user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrEmailTaken
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	userID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read generated user id: %w", err)
	}
	user.ID = userID
	inst.UserID = userID

	_, err = tx.ExecContext(ctx,
		`INSERT INTO institutions (
			user_id, institution_name, institute_type, institute_id,
			affiliating_university, year_of_establishment, state, district,
			city, pin_code, category, official_email, phone,
			authorized_person, designation, created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inst.UserID, inst.InstitutionName, inst.InstituteType, inst.InstituteID,
		inst.AffiliatingUniversity, inst.YearOfEstablishment, inst.State, inst.District,
		inst.City, inst.PinCode, inst.Category, inst.OfficialEmail, inst.Phone,
		inst.AuthorizedPerson, inst.Designation, inst.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert institution: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint error.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// compile-time interface check
var _ UserRepository = (*SQLiteUserRepo)(nil)
