// Package server wires the task manager together: it selects the storage
// backend, builds the auth core and services, and runs the HTTP API and the
// gRPC health endpoint until a shutdown signal arrives.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/amanda-parkwaylabs/task-manager/internal/logging"
	"github.com/amanda-parkwaylabs/task-manager/internal/server/auth"
	"github.com/amanda-parkwaylabs/task-manager/internal/server/config"
	"github.com/amanda-parkwaylabs/task-manager/internal/server/httpapi"
	"github.com/amanda-parkwaylabs/task-manager/internal/server/repositories/repomanager"
	"github.com/amanda-parkwaylabs/task-manager/internal/server/services"

	gs "github.com/amanda-parkwaylabs/task-manager/internal/server/grpc"
)

const insecureDefaultSecret = "jwt_secret"

type App struct {
	config *config.Config
	logger logging.Logger
	repos  repomanager.RepositoryManager
	http   *httpapi.Server
	grpc   *gs.GRPCServer
}

// NewApp opens the configured store, applies migrations and builds both
// servers. Nothing is listening until Run is called.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(c.LogLevel))

	repos, err := repomanager.New(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := repos.RunMigrations(ctx); err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app, err := newApp(c, logger, repos)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}
	return app, nil
}

func newApp(c *config.Config, logger logging.Logger, repos repomanager.RepositoryManager) (*App, error) {
	mp, err := auth.ParseMutationPolicy(c.MutationPolicy)
	if err != nil {
		return nil, err
	}
	codec, err := auth.NewTokenCodec([]byte(c.SecretKey), c.TokenTTL)
	if err != nil {
		return nil, err
	}

	if c.SecretKey == insecureDefaultSecret {
		logger.Warn(context.Background(), "using the default signing key; set -s in production")
	}
	if c.DatabaseDSN == "" {
		logger.Warn(context.Background(), "no database configured; data is kept in memory only")
	}

	deps := httpapi.Deps{
		Users:  services.NewUserService(repos.Users(), auth.NewPasswordHasher(c.BcryptCost), codec, logger),
		Tasks:  services.NewTaskService(repos.Tasks(), logger),
		Tokens: codec,
		Policy: auth.NewPolicy(mp),
		Health: repos.Ping,
		Logger: logger,
	}

	app := &App{
		config: c,
		logger: logger,
		repos:  repos,
		http:   httpapi.New(c, deps),
	}
	if c.GRPCAddr != "" {
		app.grpc = gs.NewGRPCServer(c.GRPCAddr, logger, repos.Ping)
	}
	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	if err := app.http.Run(); err != nil {
		app.logger.Error(ctx, "http server failed", "error", err)
		cancelFunc()
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	if err := app.grpc.Run(ctx); err != nil {
		app.logger.Error(ctx, "grpc server failed", "error", err)
		cancelFunc()
		return fmt.Errorf("grpc server: %w", err)
	}
	return nil
}

// Run serves until ctx is canceled, a termination signal arrives or a
// server fails, then drains in-flight requests and closes the store.
// A server that failed to serve makes Run return its error.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "http_addr", app.config.HTTPAddr, "grpc_addr", app.config.GRPCAddr)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup
	serveErrs := make(chan error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		serveErrs <- app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.grpc != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			serveErrs <- app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	<-ctx.Done()
	app.logger.Info(ctx, "Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()
	errs := []error{app.http.Shutdown(shutdownCtx)}

	wg.Wait()
	close(serveErrs)
	for err := range serveErrs {
		errs = append(errs, err)
	}

	return errors.Join(append(errs, app.repos.Close())...)
}
