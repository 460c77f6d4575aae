// Package migrations applies and reverts the database schema with goose.
package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"user_identity/internal/crypto"
	"user_identity/internal/logger"
	"user_identity/internal/repository"
	"user_identity/internal/service"

	"github.com/pressly/goose/v3"
)

// CreateUserTableVersion is the goose version of the user table migration.
const CreateUserTableVersion int64 = 20220819015727

// Runner applies and reverts migrations on a SQLite database.
type Runner struct {
	provider *goose.Provider
	log      *logger.Logger
}

// createUserTable wraps the provisioner as a goose Go migration running inside a transaction.
func createUserTable(hasher crypto.PasswordHasher) *goose.Migration {
	provisioner := func(tx *sql.Tx) *service.Provisioner {
		return service.NewProvisioner(repository.NewSchemaSQLite(tx), hasher)
	}
	return goose.NewGoMigration(CreateUserTableVersion,
		&goose.GoFunc{RunTx: func(ctx context.Context, tx *sql.Tx) error {
			return provisioner(tx).Provision(ctx)
		}},
		&goose.GoFunc{RunTx: func(ctx context.Context, tx *sql.Tx) error {
			return provisioner(tx).Deprovision(ctx)
		}},
	)
}

// NewRunner builds a goose provider holding every migration of the application.
func NewRunner(db *sql.DB, hasher crypto.PasswordHasher, log *logger.Logger) (*Runner, error) {
	if log == nil {
		log = logger.Nop()
	}
	p, err := goose.NewProvider(goose.DialectSQLite3, db, nil,
		goose.WithDisableGlobalRegistry(true),
		goose.WithGoMigrations(createUserTable(hasher)),
	)
	if err != nil {
		return nil, fmt.Errorf("create migration provider: %w", err)
	}
	return &Runner{provider: p, log: log}, nil
}

// Up applies all pending migrations.
func (r *Runner) Up(ctx context.Context) error {
	results, err := r.provider.Up(ctx)
	for _, res := range results {
		r.logResult(res)
	}
	if err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	if len(results) == 0 {
		r.log.Infow("migrations up to date")
	}
	return nil
}

// Down reverts the most recently applied migration.
func (r *Runner) Down(ctx context.Context) error {
	res, err := r.provider.Down(ctx)
	if res != nil {
		r.logResult(res)
	}
	if err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

// Status reports every known migration and whether it is applied.
func (r *Runner) Status(ctx context.Context) ([]*goose.MigrationStatus, error) {
	st, err := r.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("migration status: %w", err)
	}
	return st, nil
}

// Version returns the current database version, 0 when nothing is applied.
func (r *Runner) Version(ctx context.Context) (int64, error) {
	v, err := r.provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("migration version: %w", err)
	}
	return v, nil
}

func (r *Runner) logResult(res *goose.MigrationResult) {
	if res.Error != nil {
		r.log.Errorw("migration failed",
			"version", res.Source.Version, "direction", res.Direction, "err", res.Error)
		return
	}
	r.log.Infow("migration applied",
		"version", res.Source.Version, "direction", res.Direction, "duration", res.Duration)
}
