// Package cli exposes the identity service as cobra commands.
package cli

import (
	"context"
	"database/sql"
	"fmt"

	"user_identity/internal/config"
	"user_identity/internal/crypto"
	"user_identity/internal/logger"
	"user_identity/internal/migrations"
	"user_identity/internal/repository"
	"user_identity/internal/repository/db"
	"user_identity/internal/service"

	"github.com/spf13/cobra"
)

// app holds what every subcommand needs once configuration is loaded.
type app struct {
	configPath string

	cfg    *config.Config
	log    *logger.Logger
	db     *sql.DB
	hasher crypto.PasswordHasher
}

// NewRootCmd builds the `identity` command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "identity",
		Short:         "User identity store and sign-in API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd.Context())
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to config file (default ./configs/config.yml)")

	root.AddCommand(
		newServeCmd(a),
		newMigrateCmd(a),
		newUserCmd(a),
	)
	return root
}

// Execute runs the command tree with ctx and returns the first error.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func (a *app) open(ctx context.Context) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.Get(cfg.LogLevel)
	a.hasher = crypto.NewBcryptHasher(cfg.BcryptCost)

	conn, err := db.InitDB(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database %q: %w", cfg.DBPath, err)
	}
	a.db = conn
	return nil
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

func (a *app) migrations() (*migrations.Runner, error) {
	return migrations.NewRunner(a.db, a.hasher, a.log)
}

func (a *app) services() *service.Service {
	return service.NewService(repository.NewRepository(a.db), a.hasher)
}
