package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"site-weaver.backend/internal/config"
	"site-weaver.backend/internal/infrastructure/jobs"
	"site-weaver.backend/internal/infrastructure/repositories"
	"site-weaver.backend/internal/interfaces/http/handlers"
	"site-weaver.backend/internal/interfaces/http/middleware"
	"site-weaver.backend/internal/usecases"
	"site-weaver.backend/pkg/jwt"
	"site-weaver.backend/pkg/logger"
	"site-weaver.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newSessionStore = redis.NewSessionStore
	runServer       = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB        = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("connected to PostgreSQL")
	}

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	orgRepo := repositories.NewOrganizationRepository(db)
	siteRepo := repositories.NewSiteRepository(db)
	apiKeyRepo := repositories.NewApiKeyRepository(db)
	contentTypeRepo := repositories.NewContentTypeRepository(db)
	entryRepo := repositories.NewEntryRepository(db)
	webhookRepo := repositories.NewWebhookRepository(db)

	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	// Usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService)
	orgUsecase := usecases.NewOrganizationUsecase(orgRepo)
	siteUsecase := usecases.NewSiteUsecase(siteRepo, orgRepo)
	apiKeyUsecase := usecases.NewApiKeyUsecase(apiKeyRepo)
	siteAccessUsecase := usecases.NewSiteAccessUsecase(siteRepo)
	webhookUsecase := usecases.NewWebhookUsecase(webhookRepo)
	contentUsecase := usecases.NewContentUsecase(contentTypeRepo, entryRepo, webhookUsecase)
	integrationUsecase := usecases.NewIntegrationUsecase()

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authUsecase, sessionStore)
	orgHandler := handlers.NewOrganizationHandler(orgUsecase)
	siteHandler := handlers.NewSiteHandler(siteUsecase, orgUsecase)
	apiKeyHandler := handlers.NewApiKeyHandler(apiKeyUsecase, orgUsecase)
	contentHandler := handlers.NewContentHandler(contentUsecase)
	webhookHandler := handlers.NewWebhookHandler(webhookUsecase)
	integrationHandler := handlers.NewIntegrationHandler(integrationUsecase)

	// Background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	expiryJob := jobs.NewApiKeyExpiryJob(apiKeyRepo)
	go expiryJob.Start(ctx)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	registerRoutes(r, routeDeps{
		healthHandler:      healthHandler,
		authHandler:        authHandler,
		orgHandler:         orgHandler,
		siteHandler:        siteHandler,
		apiKeyHandler:      apiKeyHandler,
		contentHandler:     contentHandler,
		webhookHandler:     webhookHandler,
		integrationHandler: integrationHandler,
		jwtAuth:            middleware.JWTAuthMiddleware(jwtService),
		apiKeyAuth:         middleware.ApiKeyAuthMiddleware(apiKeyUsecase),
		siteAccess:         middleware.SiteAccessMiddleware(siteAccessUsecase),
		rateLimit:          middleware.RateLimitMiddleware(cfg.RateLimit.Requests, cfg.RateLimit.Window),
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")
		expiryJob.Stop()
		cancel()
	}()

	log.Printf("SiteWeaver API starting on port %s", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
