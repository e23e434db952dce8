package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/instportal/internal/model"
)

const institutionColumns = `id, user_id, institution_name, institute_type, institute_id,
	affiliating_university, year_of_establishment, state, district, city,
	pin_code, category, official_email, phone, authorized_person, designation,
	created_at`

// SQLiteInstitutionRepo is the SQLite-backed institution repository.
type SQLiteInstitutionRepo struct {
	db *sql.DB
}

// NewSQLiteInstitutionRepo creates a SQLiteInstitutionRepo.
func NewSQLiteInstitutionRepo(db *sql.DB) *SQLiteInstitutionRepo {
	return &SQLiteInstitutionRepo{db: db}
}

// FindByUserID returns the institution owned by the given user.
// Returns nil when the user has no institution row.
func (r *SQLiteInstitutionRepo) FindByUserID(ctx context.Context, userID int64) (*model.Institution, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+institutionColumns+` FROM institutions WHERE user_id = ? LIMIT 1`,
		userID,
	)
	return scanInstitution(row)
}

// FindLatest returns the most recently created institution.
// Returns nil when the table is empty.
func (r *SQLiteInstitutionRepo) FindLatest(ctx context.Context) (*model.Institution, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT ` + institutionColumns + ` FROM institutions ORDER BY id DESC LIMIT 1`,
	)
	return scanInstitution(row)
}

func scanInstitution(row *sql.Row) (*model.Institution, error) {
	inst := &model.Institution{}
	err := row.Scan(
		&inst.ID, &inst.UserID, &inst.InstitutionName, &inst.InstituteType,
		&inst.InstituteID, &inst.AffiliatingUniversity, &inst.YearOfEstablishment,
		&inst.State, &inst.District, &inst.City, &inst.PinCode, &inst.Category,
		&inst.OfficialEmail, &inst.Phone, &inst.AuthorizedPerson,
		&inst.Designation, &inst.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan institution: %w", err)
	}
	return inst, nil
}

// compile-time interface check
var _ InstitutionRepository = (*SQLiteInstitutionRepo)(nil)
