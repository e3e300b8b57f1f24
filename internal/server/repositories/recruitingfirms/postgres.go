package recruitingfirms

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/dmitrijs2005/jobtracker/internal/dbx"
	"github.com/dmitrijs2005/jobtracker/internal/server/models"
)

const columns = "id, name, website, linkedin_url, notes, created_at, updated_at"

var patchFields = []string{"linkedin_url", "name", "notes", "website"}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFirm(row scanner) (*models.RecruitingFirm, error) {
	f := &models.RecruitingFirm{}
	err := row.Scan(&f.ID, &f.Name, &f.Website, &f.LinkedInURL, &f.Notes, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *PostgresRepository) Create(ctx context.Context, userID string, f *models.RecruitingFirm) (*models.RecruitingFirm, error) {
	query :=
		`INSERT INTO recruiting_firms (user_id, name, website, linkedin_url, notes)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING ` + columns

	created, err := scanFirm(r.db.QueryRowContext(ctx, query, userID, f.Name, f.Website, f.LinkedInURL, f.Notes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorInsertNoRow
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return created, nil
}

func (r *PostgresRepository) Count(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM recruiting_firms WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string, limit, offset int) ([]models.RecruitingFirm, error) {
	query :=
		`SELECT ` + columns + ` FROM recruiting_firms
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.RecruitingFirm, 0, limit)
	for rows.Next() {
		f, err := scanFirm(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, id string) (*models.RecruitingFirm, error) {
	query := `SELECT ` + columns + ` FROM recruiting_firms WHERE id = $1 AND user_id = $2`

	f, err := scanFirm(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

func patchValues(p models.RecruitingFirmPatch) map[string]any {
	m := make(map[string]any, len(patchFields))
	if p.LinkedInURL != nil {
		m["linkedin_url"] = *p.LinkedInURL
	}
	if p.Name != nil {
		m["name"] = *p.Name
	}
	if p.Notes != nil {
		m["notes"] = *p.Notes
	}
	if p.Website != nil {
		m["website"] = *p.Website
	}
	return m
}

func (r *PostgresRepository) Update(ctx context.Context, userID, id string, patch models.RecruitingFirmPatch) (*models.RecruitingFirm, error) {
	clause, values := dbx.BuildUpdateClause(patchFields, patchValues(patch))
	if clause == "" {
		return nil, common.ErrorNoFields
	}

	n := len(values)
	query := fmt.Sprintf(
		`UPDATE recruiting_firms SET %s
		 WHERE id = $%d AND user_id = $%d
		 RETURNING %s`, clause, n+1, n+2, columns)

	f, err := scanFirm(r.db.QueryRowContext(ctx, query, append(values, id, userID)...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	var deleted string
	err := r.db.QueryRowContext(ctx,
		`DELETE FROM recruiting_firms WHERE id = $1 AND user_id = $2 RETURNING id`, id, userID).Scan(&deleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("db error: %w", err)
	}
	return true, nil
}
