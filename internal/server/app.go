// Package server initializes and runs the application server. It opens the
// database, runs migrations, wires the services, and serves the HTTP API
// with graceful shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/psemenov/passvault/internal/logging"
	"github.com/psemenov/passvault/internal/server/config"
	"github.com/psemenov/passvault/internal/server/httpapi"
	"github.com/psemenov/passvault/internal/server/repositories/repomanager"
	"github.com/psemenov/passvault/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	h := &httpapi.Handlers{
		Users:   services.NewUserService(db, rm),
		Vaults:  services.NewVaultService(db, rm),
		Items:   services.NewItemService(db, rm),
		Sharing: services.NewSharingService(db, rm),
		Search:  services.NewSearchService(db, rm),
		Logger:  logger,
	}

	srv := httpapi.NewServer(cfg.EndpointAddrHTTP, logger, h)

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
}

// Run serves until the context is cancelled or an OS signal arrives, then
// drains in-flight requests within the configured shutdown timeout.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "starting http server", "addr", app.config.EndpointAddrHTTP)
		errCh <- app.server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		app.logger.Info(ctx, "shutting down")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
		defer shutdownCancel()

		if err := app.server.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}

	return nil
}
