// Package server wires the filekeeper backends together and runs the HTTP
// API and the gRPC health endpoint until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/filex"
	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/dmitrijs2005/filekeeper/internal/server/cache"
	"github.com/dmitrijs2005/filekeeper/internal/server/config"
	"github.com/dmitrijs2005/filekeeper/internal/server/content"
	"github.com/dmitrijs2005/filekeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/filekeeper/internal/server/pagination"
	"github.com/dmitrijs2005/filekeeper/internal/server/repositories/files"
	"github.com/dmitrijs2005/filekeeper/internal/server/repositories/memory"
	"github.com/dmitrijs2005/filekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/filekeeper/internal/server/repositories/users"
	"github.com/dmitrijs2005/filekeeper/internal/server/services"
	"github.com/dmitrijs2005/filekeeper/internal/server/thumbnails"

	gs "github.com/dmitrijs2005/filekeeper/internal/server/grpc"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	healthInterval  = 5 * time.Second
	thumbnailQueue  = 256
	shutdownTimeout = 10 * time.Second
)

var (
	sqlOpen   = sql.Open
	dialRedis = func(ctx context.Context, addr, password string, db int) (cache.Cache, io.Closer, error) {
		c, err := cache.DialRedis(ctx, addr, password, db)
		if err != nil {
			return nil, nil, err
		}
		return c, c, nil
	}
	dialS3 = func(ctx context.Context, o content.S3Options) (content.Engine, error) {
		return content.DialS3(ctx, o)
	}
)

type App struct {
	config *config.Config
	logger logging.Logger

	http       *httpapi.HTTPServer
	health     *gs.HealthServer
	thumbnails *thumbnails.Generator

	closers []io.Closer
}

// NewApp opens every backend selected by c and builds the servers. Backends
// opened before a failure are closed again.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(c.LogLevel, c.LogFormat)
	app := &App{config: c, logger: logger}

	if err := app.init(ctx); err != nil {
		app.close(ctx)
		return nil, err
	}
	return app, nil
}

func (app *App) init(ctx context.Context) error {
	c := app.config

	userRepo, fileRepo, dbPinger, counter, err := app.initRecordStore(ctx)
	if err != nil {
		return err
	}

	tokens, err := app.initCache(ctx)
	if err != nil {
		return err
	}

	engine, err := app.initContent(ctx)
	if err != nil {
		return err
	}

	app.thumbnails = thumbnails.NewGenerator(engine, app.logger, c.ThumbnailWorkers, thumbnailQueue)

	userSvc := services.NewUserService(userRepo, tokens, c.TokenTTL, app.logger)
	fileSvc := services.NewFileService(fileRepo, engine, pagination.New(c.PageSize), app.thumbnails, app.logger)
	statusSvc := services.NewStatusService(tokens, dbPinger, counter)

	metrics := httpapi.NewMetrics()
	handlers := httpapi.NewHandlers(userSvc, fileSvc, statusSvc, app.logger)

	app.http = httpapi.NewHTTPServer(
		httpapi.Options{Address: c.HTTPAddr, BodyLimit: c.BodyLimit, ShutdownTimeout: shutdownTimeout},
		app.logger,
		[]httpapi.Middleware{
			httpapi.NewRequestLoggerMW(app.logger),
			metrics.Middleware(),
			httpapi.NewRecoveryMW(),
		},
		httpapi.Routes(handlers, userSvc, httpapi.RouteOptions{
			LoginRatePerSecond: c.LoginRatePerSecond,
			LoginBurst:         c.LoginBurst,
			Metrics:            metrics,
		}),
	)

	if c.GRPCHealthAddr != "" {
		app.health = gs.NewHealthServer(c.GRPCHealthAddr, app.logger, statusSvc, healthInterval)
	}

	return nil
}

// initRecordStore opens Postgres and applies migrations, or falls back to the
// in-memory store when no DSN is configured.
func (app *App) initRecordStore(ctx context.Context) (users.Repository, files.Repository, services.Pinger, services.Counter, error) {
	if app.config.DatabaseDSN == "" {
		app.logger.Warn(ctx, "no database configured, records are kept in memory")
		store := memory.NewStore()
		return store.Users(), store.Files(), store, services.CounterFunc(store.Counts), nil
	}

	db, err := sqlOpen("pgx", app.config.DatabaseDSN)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("db init error: %w", err)
	}
	app.closers = append(app.closers, db)

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("db migrations error: %w", err)
	}

	counter := services.CounterFunc(func(ctx context.Context) (repomanager.Counts, error) {
		return rm.Counts(ctx, db)
	})
	return rm.Users(db), rm.Files(db), services.PingerFunc(db.PingContext), counter, nil
}

func (app *App) initCache(ctx context.Context) (cache.Cache, error) {
	c := app.config
	if c.CacheBackend == config.CacheMemory {
		return cache.NewMemoryCache(), nil
	}

	tokens, closer, err := dialRedis(ctx, c.RedisAddr, c.RedisPassword, c.RedisDB)
	if err != nil {
		return nil, fmt.Errorf("cache init error: %w", err)
	}
	app.closers = append(app.closers, closer)
	return tokens, nil
}

func (app *App) initContent(ctx context.Context) (content.Engine, error) {
	c := app.config
	if c.StorageBackend == config.StorageS3 {
		engine, err := dialS3(ctx, content.S3Options{
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
		})
		if err != nil {
			return nil, fmt.Errorf("storage init error: %w", err)
		}
		return engine, nil
	}

	dir, err := filex.EnsureDir(c.FolderPath)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}
	app.logger.Info(ctx, "storing content on disk", "path", dir)
	return content.NewDiskEngine(dir), nil
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

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.http.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server stopped", "error", err)
		cancelFunc()
	}
}

func (app *App) startHealthServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.health.Run(ctx); err != nil {
		app.logger.Error(ctx, "health server stopped", "error", err)
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a shutdown signal arrives or one of the
// servers fails. It then drains the thumbnail queue and closes the backends.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)
	app.thumbnails.Start(ctx)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.health != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startHealthServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	app.thumbnails.Stop()
	app.close(context.Background())
	app.logger.Info(context.Background(), "App stopped")
}

func (app *App) close(ctx context.Context) {
	var errs []error
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	app.closers = nil
	if err := errors.Join(errs...); err != nil {
		app.logger.Error(ctx, "closing backends", "error", err)
	}
}
