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

	"github.com/xxxsen/draftshare/internal/config"
	"github.com/xxxsen/draftshare/internal/handler"
	"github.com/xxxsen/draftshare/internal/job"
	"github.com/xxxsen/draftshare/internal/middleware"
	"github.com/xxxsen/draftshare/internal/repo"
	"github.com/xxxsen/draftshare/internal/schedule"
	"github.com/xxxsen/draftshare/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "draftshare",
		Short: "draftshare backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run draftshare server",
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

			db, err := repo.Open(cfg.DB)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := repo.ApplyMigrations(db); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, db)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, db *sql.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("public_url", cfg.PublicURL),
	)

	userRepo := repo.NewUserRepo(db)
	postRepo := repo.NewPostRepo(db)
	shareRepo := repo.NewShareRepo(db)

	authService := service.NewAuthService(userRepo, []byte(cfg.JWTSecret), time.Hour*time.Duration(cfg.JWTTTLHours))
	postService := service.NewPostService(postRepo, shareRepo)
	shareService := service.NewShareService(postRepo, shareRepo, cfg.PublicURL)
	accessService := service.NewAccessService(shareRepo)
	previewService := service.NewPreviewService(postRepo, accessService)

	deps := handler.RouterDeps{
		Auth:      handler.NewAuthHandler(authService),
		Posts:     handler.NewPostHandler(postService),
		Shares:    handler.NewShareHandler(shareService),
		Preview:   handler.NewPreviewHandler(previewService),
		JWTSecret: []byte(cfg.JWTSecret),
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORSAllowlist),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(job.NewShareCleanupJob(shareRepo, cfg.Share.CleanupGraceHours), cfg.Share.CleanupSpec); err != nil {
		return fmt.Errorf("schedule cleanup: %w", err)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
