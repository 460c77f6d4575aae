package cli

import (
	"context"
	"time"

	"user_identity/internal/handlers"
	"user_identity/internal/server"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Apply migrations and serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

// serve blocks until ctx is cancelled or the listener fails.
func (a *app) serve(ctx context.Context) error {
	runner, err := a.migrations()
	if err != nil {
		return err
	}
	if err := runner.Up(ctx); err != nil {
		return err
	}

	h := handlers.NewHandler(a.services(), a.log)
	srv := server.New(a.cfg.Port, h.InitRoutes())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()
	a.log.Infow("http server started", "addr", server.Addr(a.cfg.Port))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Infow("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
