package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/berean-study/berean/internal/config"
	"github.com/berean-study/berean/internal/database"
	"github.com/berean-study/berean/internal/database/dberr"
	"github.com/berean-study/berean/internal/database/meta"
	"github.com/berean-study/berean/internal/database/notes"
	"github.com/berean-study/berean/internal/database/taggroups"
	"github.com/berean-study/berean/internal/database/tags"
	"github.com/berean-study/berean/internal/database/verses"
	http_controllers "github.com/berean-study/berean/internal/http"
	"github.com/berean-study/berean/internal/scheduler"
	"github.com/berean-study/berean/internal/services"
	"github.com/berean-study/berean/internal/stats"
	"github.com/berean-study/berean/internal/tasks"
	"github.com/berean-study/berean/internal/translations"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Berean v%s", version)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Build the repositories sharing one retry policy
	retry := dberr.RetryPolicy{Attempts: cfg.Retry.Attempts, Backoff: cfg.Retry.Backoff}

	ledger := meta.NewRepository(db.DB)
	versesRepo := verses.NewRepository(db.DB)
	versesRepo.SetRetryPolicy(retry)
	tagsRepo := tags.NewRepository(db.DB, versesRepo, ledger)
	tagsRepo.SetRetryPolicy(retry)
	tagsRepo.SetRecentLimit(cfg.Stats.RecentTagLimit)
	tagGroupsRepo := taggroups.NewRepository(db.DB, ledger)
	tagGroupsRepo.SetRetryPolicy(retry)
	notesRepo := notes.NewRepository(db.DB, versesRepo, ledger)
	notesRepo.SetRetryPolicy(retry)

	clusterer := stats.NewClusterer(cfg.Stats.MaxClusters, cfg.Stats.MinPercent)
	service := services.NewAnnotationService(tagsRepo, tagGroupsRepo, notesRepo, versesRepo, ledger, clusterer)

	// Translation text provider
	var provider translations.Provider
	if _, err := os.Stat(cfg.Translations.Dir); err == nil {
		provider = translations.NewDirectoryProvider(cfg.Translations.Dir)
		log.Printf("Translations directory: %s", cfg.Translations.Dir)
	} else {
		log.Printf("WARNING: translations directory %s not found, translation endpoints disabled", cfg.Translations.Dir)
	}

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxRetries:        cfg.Tasks.MaxRetries,
			RetryDelay:        cfg.Tasks.RetryDelay,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewTagRangeQueue(tagsRepo),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	// Start scheduled maintenance if enabled
	var maintenance *scheduler.MaintenanceScheduler
	if cfg.Maintenance.Enabled {
		maintenance = scheduler.NewMaintenanceScheduler(db, cfg.Maintenance.Schedule)
		if err := maintenance.Start(context.Background()); err != nil {
			log.Printf("WARNING: maintenance scheduler not started: %v", err)
		}
	}

	routerCfg := http_controllers.RouterConfig{
		Database:     db,
		Service:      service,
		Translations: provider,
		TaskClient:   taskClient,
		Version:      version,
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
