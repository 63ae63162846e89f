package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/redaction/config"
	"github.com/lshigami/redaction/database"
	_ "github.com/lshigami/redaction/docs" // Swagger docs
	"github.com/lshigami/redaction/internal/controller"
	"github.com/lshigami/redaction/internal/filename"
	"github.com/lshigami/redaction/internal/logger"
	"github.com/lshigami/redaction/internal/repository"
	"github.com/lshigami/redaction/internal/service"
	"github.com/lshigami/redaction/internal/storage"
	"github.com/lshigami/redaction/internal/storage/local"
	"github.com/lshigami/redaction/internal/storage/memory"
	"github.com/lshigami/redaction/internal/storage/s3"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Exam Content Redaction API
// @version 1.0
// @description CRUD API for examinations, subjects, levels and tasks with task image uploads.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
			NewFileStore,
			NewImageStore,
		),

		fx.Provide(
			repository.NewExaminationRepository,
			repository.NewSubjectRepository,
			repository.NewLevelRepository,
			repository.NewTaskRepository,
		),

		fx.Provide(
			service.NewExaminationService,
			service.NewSubjectService,
			service.NewLevelService,
			service.NewTaskService,
		),

		fx.Provide(controller.NewController),

		fx.Invoke(ConfigureLogger),
		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Failed to stop application cleanly")
	}
}

func ConfigureLogger(cfg *config.Config) {
	logger.Configure(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: !allowsAnyOrigin(cfg.Server.AllowOrigins),
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if cfg.Storage.Driver == "local" {
		r.Static(cfg.Storage.PublicPrefix, cfg.Storage.LocalRoot)
	}

	return r
}

// NewFileStore opens the task image backend selected by STORAGE_DRIVER.
func NewFileStore(cfg *config.Config) (storage.FileStore, error) {
	switch cfg.Storage.Driver {
	case "local":
		store, err := local.New(cfg.Storage.LocalRoot)
		if err != nil {
			return nil, err
		}
		log.Info().Str("root", store.Root()).Msg("Using local file storage")
		return store, nil
	case "s3":
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		store, err := s3.New(ctx, s3.Config{
			Bucket:          cfg.Storage.S3.Bucket,
			Region:          cfg.Storage.S3.Region,
			Endpoint:        cfg.Storage.S3.Endpoint,
			AccessKeyID:     cfg.Storage.S3.AccessKeyID,
			SecretAccessKey: cfg.Storage.S3.SecretAccessKey,
			UsePathStyle:    cfg.Storage.S3.UsePathStyle,
			PublicACL:       cfg.Storage.S3.PublicACL,
		})
		if err != nil {
			return nil, err
		}
		log.Info().Str("bucket", cfg.Storage.S3.Bucket).Msg("Using S3 file storage")
		return store, nil
	case "memory":
		log.Warn().Msg("Using in-memory file storage; uploads are lost on restart")
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}

func NewImageStore(cfg *config.Config, files storage.FileStore) (*service.ImageStore, error) {
	names, err := filename.New(cfg.Upload.FilenameStrategy)
	if err != nil {
		return nil, err
	}
	return service.NewImageStore(files, names, cfg.Upload.MaxBytes), nil
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	ctrl *controller.Controller,
) {
	ctrl.RegisterRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Redaction API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	if err := database.Migrate(db); err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}

func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
