// Package server initializes and runs the auth service: it opens the
// database, applies migrations, wires the services, and serves HTTP until
// the process is signalled to stop.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/prathm201999/auth-service/internal/logging"
	"github.com/prathm201999/auth-service/internal/server/config"
	"github.com/prathm201999/auth-service/internal/server/httpapi"
	"github.com/prathm201999/auth-service/internal/server/repositories/repomanager"
	"github.com/prathm201999/auth-service/internal/server/services"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	repos      repomanager.RepositoryManager
	httpServer *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	repos, err := repomanager.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	tokenService := services.NewTokenService(repos.RefreshTokens(), cfg)
	authService := services.NewAuthService(repos.Users(), repos.RefreshTokens(), tokenService)
	httpServer := httpapi.NewServer(cfg.EndpointAddr, logger, authService)

	return &App{
		config:     cfg,
		logger:     logger,
		repos:      repos,
		httpServer: httpServer,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
