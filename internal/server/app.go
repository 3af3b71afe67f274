// Package server wires storage, services and transports together and runs
// the HTTP and gRPC servers until the process is asked to stop.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/poolkeeper/internal/logging"
	"github.com/dmitrijs2005/poolkeeper/internal/server/auth"
	"github.com/dmitrijs2005/poolkeeper/internal/server/authz"
	"github.com/dmitrijs2005/poolkeeper/internal/server/blob"
	"github.com/dmitrijs2005/poolkeeper/internal/server/config"
	"github.com/dmitrijs2005/poolkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/poolkeeper/internal/server/ratelimit"
	"github.com/dmitrijs2005/poolkeeper/internal/server/repositories/memory"
	"github.com/dmitrijs2005/poolkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/poolkeeper/internal/server/services"
	"github.com/gin-gonic/gin"

	gs "github.com/dmitrijs2005/poolkeeper/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	httpServer  *http.Server
	grpcServer  *gs.GRPCServer
	closers     []func() error
}

var openPostgres = func(ctx context.Context, dsn string) (repomanager.RepositoryManager, error) {
	return repomanager.OpenPostgres(ctx, dsn)
}

var newS3Store = func(ctx context.Context, c blob.S3Config) (blob.Store, error) {
	return blob.NewS3Store(ctx, c)
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger, closeLog, err := logging.New(logging.Options{Level: c.LogLevel, Format: c.LogFormat, File: c.LogFile})
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}
	app := &App{config: c, logger: logger, closers: []func() error{closeLog}}

	if err := app.init(ctx); err != nil {
		app.close(ctx)
		return nil, err
	}
	return app, nil
}

func (app *App) init(ctx context.Context) error {
	c := app.config

	rm, err := app.openStorage(ctx)
	if err != nil {
		return err
	}
	app.repomanager = rm
	app.closers = append(app.closers, rm.Close)

	store, err := app.openBlobStore(ctx)
	if err != nil {
		return err
	}

	limiter, err := app.openLimiter()
	if err != nil {
		return err
	}

	hasher := auth.NewPasswordHasher(c.BcryptCost)
	tokens, err := auth.NewTokenService(auth.TokenConfig{Secret: []byte(c.SecretKey), TTL: c.AccessTokenValidityDuration})
	if err != nil {
		return fmt.Errorf("token service: %w", err)
	}
	resolver := authz.NewResolver(tokens, rm.Repos().Users)

	users := services.NewUserService(rm, hasher, tokens, limiter, app.logger.With("module", "users"))
	svc := httpapi.Services{
		Users:      users,
		Admin:      services.NewAdminService(rm, hasher, app.logger.With("module", "admin")),
		Clients:    services.NewClientService(rm),
		Pools:      services.NewPoolService(rm),
		Services:   services.NewServiceRecordService(rm),
		Budgets:    services.NewBudgetService(rm),
		Projects:   services.NewProjectService(rm),
		Settings:   services.NewSettingsService(rm),
		SystemLogs: services.NewSystemLogService(c.LogFile),
		Uploads:    services.NewUploadService(store, c.UploadMaxBytes),
	}

	if c.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	handler := httpapi.NewHandler(svc, resolver, app.logger.With("module", "http_server"))
	app.httpServer = &http.Server{Addr: c.EndpointAddrHTTP, Handler: handler.InitRoutes()}
	app.grpcServer = gs.NewGRPCServer(c.EndpointAddrGRPC, app.logger, users, resolver)

	return nil
}

// openStorage picks the repository backend. Postgres is migrated on start.
func (app *App) openStorage(ctx context.Context) (repomanager.RepositoryManager, error) {
	if app.config.StorageBackend == config.BackendMemory {
		app.logger.Warn(ctx, "using in-memory storage; data is lost on restart")
		return memory.NewManager(), nil
	}

	rm, err := openPostgres(ctx, app.config.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := rm.RunMigrations(ctx); err != nil {
		rm.Close()
		return nil, fmt.Errorf("db migrations: %w", err)
	}
	return rm, nil
}

func (app *App) openBlobStore(ctx context.Context) (blob.Store, error) {
	c := app.config
	if c.UploadBackend == config.BackendMemory {
		return blob.NewMemoryStore(), nil
	}
	store, err := newS3Store(ctx, blob.S3Config{
		Region:    c.S3Region,
		AccessKey: c.S3RootUser,
		SecretKey: c.S3RootPassword,
		Endpoint:  c.S3BaseEndpoint,
		Bucket:    c.S3Bucket,
	})
	if err != nil {
		return nil, fmt.Errorf("upload store: %w", err)
	}
	return store, nil
}

func (app *App) openLimiter() (ratelimit.Limiter, error) {
	c := app.config
	if c.LoginRateLimit <= 0 {
		return ratelimit.Unlimited{}, nil
	}
	if c.RedisURL == "" {
		return ratelimit.NewMemoryLimiter(c.LoginRateLimit, c.LoginRateWindow), nil
	}
	l, err := ratelimit.NewRedisLimiter(c.RedisURL, c.LoginRateLimit, c.LoginRateWindow)
	if err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	app.closers = append(app.closers, l.Close)
	return l, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// startHTTPServer serves until ctx is done and then drains in-flight
// requests for up to ShutdownTimeout.
func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "Starting HTTP server", "address", app.httpServer.Addr)
		errCh <- app.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
		return
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), app.config.ShutdownTimeout)
	defer cancel()
	if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(ctx, "http shutdown", "error", err)
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.grpcServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a signal arrives or a server fails,
// then releases storage and the log file.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "environment", app.config.Environment, "storage", app.config.StorageBackend)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.close(context.WithoutCancel(ctx))
}

func (app *App) close(ctx context.Context) {
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i](); err != nil {
			app.logger.Error(ctx, "close", "error", err)
		}
	}
	app.closers = nil
}
