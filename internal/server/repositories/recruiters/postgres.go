package recruiters

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/dmitrijs2005/jobtracker/internal/dbx"
	"github.com/dmitrijs2005/jobtracker/internal/server/models"
)

const columns = "id, name, email, phone, title, linkedin_url, firm_id, notes, created_at, updated_at"

var patchFields = []string{"email", "firm_id", "linkedin_url", "name", "notes", "phone", "title"}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecruiter(row scanner) (*models.Recruiter, error) {
	r := &models.Recruiter{}
	err := row.Scan(&r.ID, &r.Name, &r.Email, &r.Phone, &r.Title, &r.LinkedInURL, &r.FirmID, &r.Notes, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// translate maps driver errors shared by every statement of this repository.
func translate(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return common.ErrorNotFound
	case dbx.IsForeignKeyViolation(err):
		return common.ErrorReferenceNotFound
	default:
		return fmt.Errorf("db error: %w", err)
	}
}

func (r *PostgresRepository) Create(ctx context.Context, userID string, rec *models.Recruiter) (*models.Recruiter, error) {
	query :=
		`INSERT INTO recruiters (user_id, name, email, phone, title, linkedin_url, firm_id, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING ` + columns

	created, err := scanRecruiter(r.db.QueryRowContext(ctx, query,
		userID, rec.Name, rec.Email, rec.Phone, rec.Title, rec.LinkedInURL, rec.FirmID, rec.Notes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorInsertNoRow
		}
		return nil, translate(err)
	}
	return created, nil
}

func (r *PostgresRepository) Count(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM recruiters WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string, limit, offset int) ([]models.Recruiter, error) {
	query :=
		`SELECT ` + columns + ` FROM recruiters
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Recruiter, 0, limit)
	for rows.Next() {
		rec, err := scanRecruiter(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, id string) (*models.Recruiter, error) {
	query := `SELECT ` + columns + ` FROM recruiters WHERE id = $1 AND user_id = $2`

	rec, err := scanRecruiter(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		return nil, translate(err)
	}
	return rec, nil
}

func patchValues(p models.RecruiterPatch) map[string]any {
	m := make(map[string]any, len(patchFields))
	if p.Email != nil {
		m["email"] = *p.Email
	}
	if p.FirmID != nil {
		m["firm_id"] = *p.FirmID
	}
	if p.LinkedInURL != nil {
		m["linkedin_url"] = *p.LinkedInURL
	}
	if p.Name != nil {
		m["name"] = *p.Name
	}
	if p.Notes != nil {
		m["notes"] = *p.Notes
	}
	if p.Phone != nil {
		m["phone"] = *p.Phone
	}
	if p.Title != nil {
		m["title"] = *p.Title
	}
	return m
}

func (r *PostgresRepository) Update(ctx context.Context, userID, id string, patch models.RecruiterPatch) (*models.Recruiter, error) {
	clause, values := dbx.BuildUpdateClause(patchFields, patchValues(patch))
	if clause == "" {
		return nil, common.ErrorNoFields
	}

	n := len(values)
	query := fmt.Sprintf(
		`UPDATE recruiters SET %s
		 WHERE id = $%d AND user_id = $%d
		 RETURNING %s`, clause, n+1, n+2, columns)

	rec, err := scanRecruiter(r.db.QueryRowContext(ctx, query, append(values, id, userID)...))
	if err != nil {
		return nil, translate(err)
	}
	return rec, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	var deleted string
	err := r.db.QueryRowContext(ctx,
		`DELETE FROM recruiters WHERE id = $1 AND user_id = $2 RETURNING id`, id, userID).Scan(&deleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("db error: %w", err)
	}
	return true, nil
}
