// Package repomanager vends repositories bound to a DBTX handle, so one
// service call can use the pool or a transaction interchangeably, and owns
// schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/jobtracker/internal/dbx"
	"github.com/dmitrijs2005/jobtracker/internal/server/repositories/jobs"
	"github.com/dmitrijs2005/jobtracker/internal/server/repositories/recruiters"
	"github.com/dmitrijs2005/jobtracker/internal/server/repositories/recruitingfirms"
	"github.com/dmitrijs2005/jobtracker/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/jobtracker/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	Jobs(db dbx.DBTX) jobs.Repository
	Recruiters(db dbx.DBTX) recruiters.Repository
	RecruitingFirms(db dbx.DBTX) recruitingfirms.Repository
}
