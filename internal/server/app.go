// Package server wires the todo API together: configuration, database,
// authentication, services and the HTTP and gRPC servers, and runs them until
// the process is signalled.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/todoapi/internal/logging"
	"github.com/dmitrijs2005/todoapi/internal/server/auth"
	"github.com/dmitrijs2005/todoapi/internal/server/config"
	"github.com/dmitrijs2005/todoapi/internal/server/httpapi"
	"github.com/dmitrijs2005/todoapi/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/todoapi/internal/server/services"
	"github.com/gin-gonic/gin"

	gs "github.com/dmitrijs2005/todoapi/internal/server/grpc"
)

// Seams for tests.
var (
	openDB         = repomanager.OpenDB
	newRepoManager = func() repomanager.RepositoryManager { return repomanager.NewPostgresRepositoryManager() }
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	http   *httpapi.Server
	grpc   *gs.GRPCServer
}

// NewApp validates cfg, connects to the database, applies migrations and
// builds every component. Configuration problems are reported as
// common.ErrInvalidConfig before any connection is made.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	secret := []byte(cfg.SecretKey)
	hasher, err := auth.NewBcryptHasher(cfg.BcryptCost, logger)
	if err != nil {
		return nil, err
	}
	issuer, err := auth.NewIssuer(secret, cfg.AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	verifier, err := auth.NewVerifier(secret, auth.WithLeeway(cfg.ClockSkew))
	if err != nil {
		return nil, err
	}

	db, err := openDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepoManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	guard := auth.NewGuard(verifier, auth.NewResolver(rm.Users(db)), logger)
	users := services.NewUserService(db, rm, hasher, issuer, logger)
	tasks := services.NewTaskService(db, rm, logger)

	if !strings.EqualFold(cfg.LogLevel, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpapi.NewRouter(httpapi.Deps{
		Users:       users,
		Tasks:       tasks,
		Auth:        guard,
		DB:          db,
		Logger:      logger,
		CORSOrigins: cfg.CORSOrigins,
	})

	return &App{
		config: cfg,
		logger: logger.With("module", "app"),
		db:     db,
		http:   httpapi.NewServer(cfg.HTTPAddr, router, logger),
		grpc:   gs.NewGRPCServer(cfg.GRPCAddr, logger, guard, db),
	}, nil
}

// Run serves HTTP and gRPC until ctx is cancelled, SIGINT/SIGTERM/SIGQUIT
// arrives or one of the servers fails. It returns the first server error.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	run := func(name string, fn func(context.Context) error) {
		defer wg.Done()
		if err := fn(ctx); err != nil {
			app.logger.Error(ctx, "server failed", "server", name, "error", err)
			once.Do(func() { firstErr = fmt.Errorf("%s: %w", name, err) })
			stop()
		}
	}

	wg.Add(2)
	go run("http", app.http.Run)
	go run("grpc", app.grpc.Run)
	wg.Wait()

	app.logger.Info(ctx, "App stopped")
	return firstErr
}

// Close releases the database pool.
func (app *App) Close() error {
	return app.db.Close()
}
