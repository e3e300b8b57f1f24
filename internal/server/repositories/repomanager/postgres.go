package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/jobtracker/internal/dbx"
	"github.com/dmitrijs2005/jobtracker/internal/server/migrations"
	"github.com/dmitrijs2005/jobtracker/internal/server/repositories/jobs"
	"github.com/dmitrijs2005/jobtracker/internal/server/repositories/recruiters"
	"github.com/dmitrijs2005/jobtracker/internal/server/repositories/recruitingfirms"
	"github.com/dmitrijs2005/jobtracker/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/jobtracker/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories.
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Sessions(db dbx.DBTX) sessions.Repository {
	return sessions.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Jobs(db dbx.DBTX) jobs.Repository {
	return jobs.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Recruiters(db dbx.DBTX) recruiters.Repository {
	return recruiters.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RecruitingFirms(db dbx.DBTX) recruitingfirms.Repository {
	return recruitingfirms.NewPostgresRepository(db)
}

// goose seams for tests.
var (
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return goose.UpContext(ctx, db, dir, opts...)
	}
	gooseRunContext = func(ctx context.Context, command string, db *sql.DB, dir string, args ...string) error {
		return goose.RunContext(ctx, command, db, dir, args...)
	}
)

func setupGoose() error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	return nil
}

// RunMigrations applies every pending embedded migration.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	if err := setupGoose(); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

// Goose runs an arbitrary goose command (up, down, status, version, reset,
// ...) against the embedded migrations.
func (m *PostgresRepositoryManager) Goose(ctx context.Context, db *sql.DB, command string, args ...string) error {
	if err := setupGoose(); err != nil {
		return err
	}
	return gooseRunContext(ctx, command, db, ".", args...)
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}
