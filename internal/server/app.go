// Package server wires the job tracker together: it opens the database
// pool, applies migrations, builds the services and the HTTP transport,
// and runs until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/logging"
	"github.com/dmitrijs2005/jobtracker/internal/server/config"
	"github.com/dmitrijs2005/jobtracker/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jobtracker/internal/server/rest"
	"github.com/dmitrijs2005/jobtracker/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"
)

const pingTimeout = 5 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	server      *rest.HTTPServer
}

// OpenDB opens the pgx-backed pool described by c. No connection is made
// until first use.
func OpenDB(c *config.Config) (*sql.DB, error) {
	db, err := sql.Open("pgx", c.DSN())
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	db.SetMaxOpenConns(c.DBMaxOpenConns)
	db.SetMaxIdleConns(c.DBMaxOpenConns)
	db.SetConnMaxIdleTime(c.DBConnMaxIdleTime)
	return db, nil
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.New(c.IsProduction(), os.Stdout)

	db, err := OpenDB(c)
	if err != nil {
		return nil, err
	}

	rm := repomanager.NewPostgresRepositoryManager()

	srv := rest.NewHTTPServer(c, logger, rest.Services{
		Auth:            services.NewAuthService(db, rm, c),
		Jobs:            services.NewJobService(db, rm),
		Recruiters:      services.NewRecruiterService(db, rm),
		RecruitingFirms: services.NewRecruitingFirmService(db, rm),
		Health:          services.NewHealthService(db),
	})

	return &App{config: c, logger: logger, db: db, repomanager: rm, server: srv}, nil
}

// waitForSignal cancels the app on SIGINT, SIGTERM or SIGQUIT.
func (app *App) waitForSignal(ctx context.Context, cancelFunc context.CancelFunc) error {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer signal.Stop(sigs)

	select {
	case sig := <-sigs:
		app.logger.Info(ctx, "Shutting down gracefully", "signal", sig.String())
		cancelFunc()
	case <-ctx.Done():
	}
	return nil
}

// checkDB logs whether the database is reachable. An unreachable database
// is not fatal: /health reports it and requests fail until it comes back.
func (app *App) checkDB(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := app.db.PingContext(ctx); err != nil {
		app.logger.Error(ctx, "Database connection failed", "error", err)
		return
	}
	app.logger.Info(ctx, "Connected to database")
}

// Run blocks until ctx is cancelled, a signal arrives or the HTTP server
// fails. The pool is closed after in-flight requests have drained.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "env", app.config.Env)

	defer func() {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
			return
		}
		app.logger.Info(ctx, "Database pool closed")
	}()

	app.checkDB(ctx)

	if app.config.AutoMigrate {
		if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		app.logger.Info(ctx, "Migrations applied")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.waitForSignal(gctx, cancelFunc)
	})
	g.Go(func() error {
		defer cancelFunc()
		return app.server.Run(gctx)
	})

	return g.Wait()
}
