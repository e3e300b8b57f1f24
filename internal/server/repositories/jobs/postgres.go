package jobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/dmitrijs2005/jobtracker/internal/dbx"
	"github.com/dmitrijs2005/jobtracker/internal/server/models"
)

const columns = "id, company, role, status, applied_date, notes, created_at, updated_at"

// patchFields is the allow-list for partial updates, in SET order.
var patchFields = []string{"company", "role", "status", "applied_date", "notes"}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(row scanner) (*models.Job, error) {
	j := &models.Job{}
	err := row.Scan(&j.ID, &j.Company, &j.Role, &j.Status, &j.AppliedDate, &j.Notes, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return j, nil
}

func (r *PostgresRepository) Create(ctx context.Context, userID string, job *models.Job) (*models.Job, error) {
	query :=
		`INSERT INTO jobs (user_id, company, role, status, applied_date, notes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING ` + columns

	var appliedDate any
	if job.AppliedDate != nil {
		appliedDate = *job.AppliedDate
	}
	var status any
	if job.Status != nil {
		status = string(*job.Status)
	}

	created, err := scanJob(r.db.QueryRowContext(ctx, query,
		userID, job.Company, job.Role, status, appliedDate, job.Notes))
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
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string, limit, offset int) ([]models.Job, error) {
	query :=
		`SELECT ` + columns + ` FROM jobs
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Job, 0, limit)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, id string) (*models.Job, error) {
	query := `SELECT ` + columns + ` FROM jobs WHERE id = $1 AND user_id = $2`

	j, err := scanJob(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return j, nil
}

func patchValues(p models.JobPatch) map[string]any {
	m := make(map[string]any, len(patchFields))
	if p.Company != nil {
		m["company"] = *p.Company
	}
	if p.Role != nil {
		m["role"] = *p.Role
	}
	if p.Status != nil {
		m["status"] = string(*p.Status)
	}
	if p.AppliedDate != nil {
		m["applied_date"] = *p.AppliedDate
	}
	if p.Notes != nil {
		m["notes"] = *p.Notes
	}
	return m
}

func (r *PostgresRepository) Update(ctx context.Context, userID, id string, patch models.JobPatch) (*models.Job, error) {
	clause, values := dbx.BuildUpdateClause(patchFields, patchValues(patch))
	if clause == "" {
		return nil, common.ErrorNoFields
	}

	n := len(values)
	query := fmt.Sprintf(
		`UPDATE jobs SET %s
		 WHERE id = $%d AND user_id = $%d
		 RETURNING %s`, clause, n+1, n+2, columns)

	j, err := scanJob(r.db.QueryRowContext(ctx, query, append(values, id, userID)...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return j, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	query := `DELETE FROM jobs WHERE id = $1 AND user_id = $2 RETURNING id`

	var deleted string
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&deleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("db error: %w", err)
	}
	return true, nil
}
