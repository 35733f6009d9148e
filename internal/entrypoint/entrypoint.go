package entrypoint

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/covers"
	"github.com/mrlokans/bookshelf/internal/database"
	auditrepo "github.com/mrlokans/bookshelf/internal/database/audit"
	"github.com/mrlokans/bookshelf/internal/database/authors"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/categories"
	http_controllers "github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/logging"
	"github.com/mrlokans/bookshelf/internal/scheduler"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts it down
// gracefully. onShutdown runs before the server stops accepting requests
// so background workers drain first.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		zap.L().Info("starting server",
			zap.String("host", cfg.HTTP.Host),
			zap.Int32("port", cfg.HTTP.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	// kill (no param) sends syscall.SIGTERM, kill -2 is syscall.SIGINT.
	// SIGKILL cannot be caught, so there is no point registering it.
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("shutting down server", zap.Duration("timeout", timeout))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		zap.L().Fatal("server shutdown failed", zap.Error(err))
	}

	zap.L().Info("server exiting")
}

// Run wires the application together and serves it: database, cover
// storage, repositories, audit trail, task queue, maintenance scheduler
// and finally the HTTP router.
func Run(cfg *config.Config, version string) {
	logger, flush := logging.NewLogger(cfg.Logging.Debug)
	defer flush()
	zap.ReplaceGlobals(logger)

	zap.L().Info("starting bookshelf", zap.String("version", version))

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		zap.L().Fatal("failed to initialize database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			zap.L().Error("error closing database", zap.Error(err))
		}
	}()

	// Covers live under the static root so uploads are immediately
	// reachable at /static/covers/<filename>.
	coverStore, err := covers.NewStore(cfg.Static.CoversDir())
	if err != nil {
		zap.L().Fatal("failed to initialize cover storage", zap.Error(err))
	}

	authorRepo := authors.NewRepository(db.DB)
	categoryRepo := categories.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)

	// The audit service is constructed unconditionally so retention
	// cleanup keeps working on previously recorded events; the Enabled
	// flag only gates request logging and the admin endpoint.
	auditService := audit.NewService(auditrepo.NewRepository(db.DB))

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			zap.L().Fatal("failed to initialize task queue", zap.Error(err))
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				zap.L().Error("error closing task client", zap.Error(err))
			}
		}()

		taskClient.Register(
			tasks.NewCleanupOrphanCoversQueue(bookRepo, coverStore),
			tasks.NewCleanupAuditEventsQueue(auditService),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	var maintenance *scheduler.MaintenanceScheduler
	if cfg.Maintenance.Enabled {
		maintenance = scheduler.NewMaintenanceScheduler(
			taskClient,
			cfg.Maintenance.Schedule,
			cfg.Audit.RetentionDays,
			cfg.Maintenance.CoverSweepAge,
		)
		if err := maintenance.Start(context.Background()); err != nil {
			zap.L().Fatal("failed to start maintenance scheduler", zap.Error(err))
		}
	}

	routerCfg := http_controllers.RouterConfig{
		Database:      db,
		AuthorStore:   authorRepo,
		CategoryStore: categoryRepo,
		BookStore:     bookRepo,
		CoverStore:    coverStore,
		TaskClient:    taskClient,
		Logger:        logger,
		StaticDir:     cfg.Static.Dir,
		Version:       version,
	}
	if cfg.Audit.Enabled {
		routerCfg.AuditService = auditService
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if maintenance != nil {
			maintenance.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
