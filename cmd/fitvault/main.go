package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/mireo/fitvault/internal/config"
	"github.com/mireo/fitvault/internal/db"
	"github.com/mireo/fitvault/internal/filestore"
	"github.com/mireo/fitvault/internal/handler"
	"github.com/mireo/fitvault/internal/job"
	"github.com/mireo/fitvault/internal/middleware"
	"github.com/mireo/fitvault/internal/provider"
	"github.com/mireo/fitvault/internal/repo"
	"github.com/mireo/fitvault/internal/schedule"
	"github.com/mireo/fitvault/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "fitvault",
		Short: "fitvault backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run fitvault server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			conn, err := db.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := db.ApplyMigrations(conn); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, conn)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, conn *sql.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("file_store", cfg.FileStore.Type),
	)

	userRepo := repo.NewUserRepo(conn)
	exerciseRepo := repo.NewExerciseRepo(conn)
	workoutRepo := repo.NewWorkoutRepo(conn)
	associationRepo := repo.NewAssociationRepo(conn)
	metadataRepo := repo.NewMetadataRepo(conn)
	seenRepo := repo.NewSeenRepo(conn)
	reviewRepo := repo.NewReviewRepo(conn)
	collectionRepo := repo.NewCollectionRepo(conn)
	reportRepo := repo.NewImportReportRepo(conn)

	store, err := filestore.New(cfg.FileStore)
	if err != nil {
		return fmt.Errorf("init file store: %w", err)
	}
	catalog, err := provider.NewHTTPProvider(provider.HTTPProviderConfig{
		BaseURL:        cfg.Provider.BaseURL,
		PerItemTimeout: time.Duration(cfg.Provider.PerItemTimeoutSeconds) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("init catalog provider: %w", err)
	}
	cachedCatalog := provider.WrapLruCache(catalog, cfg.Provider.CacheSize,
		time.Duration(cfg.Provider.CacheTTLMinutes)*time.Minute)

	workoutService := service.NewWorkoutService(exerciseRepo, associationRepo, workoutRepo, userRepo)
	mediaService := service.NewMediaService(metadataRepo, seenRepo, reviewRepo, collectionRepo, associationRepo, cachedCatalog)
	importerService := service.NewImporterService(reportRepo, exerciseRepo, userRepo, workoutService, mediaService, store)

	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(job.NewImportInvalidateJob(importerService), cfg.Jobs.ImportInvalidateSpec); err != nil {
		return fmt.Errorf("schedule import invalidation: %w", err)
	}

	deps := handler.RouterDeps{
		Workouts:     handler.NewWorkoutHandler(workoutService),
		Imports:      handler.NewImportHandler(importerService),
		JWTSecret:    []byte(cfg.JWTSecret),
		DeployWindow: time.Duration(cfg.Jobs.DeployWindowSeconds) * time.Second,
	}

	engine, err := webapi.NewEngine(
		"/api",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.CORS(cfg.CORS),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler.Start(ctx)
	defer scheduler.Stop()

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
