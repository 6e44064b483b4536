// Package app wires configuration, storage, the group data store and the
// shell together and runs them until the user exits or a signal arrives.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/roomboard/internal/auth"
	"github.com/dmitrijs2005/roomboard/internal/cli"
	"github.com/dmitrijs2005/roomboard/internal/config"
	"github.com/dmitrijs2005/roomboard/internal/filex"
	"github.com/dmitrijs2005/roomboard/internal/gallery"
	"github.com/dmitrijs2005/roomboard/internal/groupdata"
	"github.com/dmitrijs2005/roomboard/internal/logging"
	"github.com/dmitrijs2005/roomboard/internal/metrics"
	"github.com/dmitrijs2005/roomboard/internal/remote"
	"github.com/dmitrijs2005/roomboard/internal/repositories/kv"
	"github.com/dmitrijs2005/roomboard/internal/repositories/repomanager"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const watchInterval = 3 * time.Second

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	cache    kv.Repository
	store    *groupdata.Store
	registry *prometheus.Registry
	shell    *cli.App
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewStderr(c.LogLevel)

	rm := repomanager.NewPostgresRepositoryManager()
	db, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migrations: %w", err)
	}

	cache, err := OpenCache(ctx, c.CacheBackend, c.CachePath)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	store := groupdata.New(remote.NewPostgresSource(db, rm), cache, logger,
		groupdata.WithCacheTTL(c.CacheTTL),
		groupdata.WithRefreshInterval(c.RefreshInterval),
		groupdata.WithRequestTimeout(c.RequestTimeout),
		groupdata.WithMetrics(metrics.New(reg)),
	)

	resolver := auth.NewGroupResolver(rm.Users(db), []byte(c.SecretKey))
	photos := gallery.NewService(db, rm, gallery.S3Config{
		Region:    c.S3.Region,
		AccessKey: c.S3.AccessKey,
		SecretKey: c.S3.SecretKey,
		Endpoint:  c.S3.Endpoint,
		Bucket:    c.S3.Bucket,
	}, store, logger)

	shell := cli.NewApp(store, resolver, photos, logger, c.SessionToken, os.Stdin, os.Stdout)

	return &App{
		config:   c,
		logger:   logger,
		db:       db,
		cache:    cache,
		store:    store,
		registry: reg,
		shell:    shell,
	}, nil
}

// OpenCache opens the local cache backend. An empty badger path keeps the
// cache in memory.
func OpenCache(ctx context.Context, backend, path string) (kv.Repository, error) {
	switch backend {
	case config.CacheSQLite:
		if path != ":memory:" && !strings.HasPrefix(path, "file:") {
			if err := filex.EnsureParentDir(path); err != nil {
				return nil, err
			}
		}
		return kv.InitSQLite(ctx, path)
	case config.CacheBadger:
		if path != "" {
			if _, err := filex.EnsureDir(path); err != nil {
				return nil, err
			}
		}
		return kv.OpenBadger(path)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startMetricsServer(ctx context.Context) {
	srv := &http.Server{
		Addr:              app.config.MetricsAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(app.registry))
	srv.Handler = mux

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(ctx, "serving metrics", "addr", app.config.MetricsAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, "metrics server failed", "error", err)
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Debug(ctx, "starting roomboard")
	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup
	if app.config.MetricsAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startMetricsServer(ctx)
		}()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		app.shell.Run(ctx, watchInterval)
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}
	cancelFunc()
	wg.Wait()

	app.close(context.Background())
}

func (app *App) close(ctx context.Context) {
	if err := app.store.Close(); err != nil {
		app.logger.Warn(ctx, "store close", "error", err)
	}
	if err := app.cache.Close(); err != nil {
		app.logger.Warn(ctx, "cache close", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close", "error", err)
	}
}
