// Package bootstrap assembles the application: configuration, logging,
// database, repositories, services, controllers and the HTTP router.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/schoolmate-bg/schoolmate-api/docs" // generated swagger docs
	appControllers "github.com/schoolmate-bg/schoolmate-api/internal/app/controllers"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/events"
	appMigrations "github.com/schoolmate-bg/schoolmate-api/internal/app/migrations"
	appRepos "github.com/schoolmate-bg/schoolmate-api/internal/app/repositories"
	appRoutes "github.com/schoolmate-bg/schoolmate-api/internal/app/routes"
	appServices "github.com/schoolmate-bg/schoolmate-api/internal/app/services"
	"github.com/schoolmate-bg/schoolmate-api/internal/config"
	"github.com/schoolmate-bg/schoolmate-api/internal/db"
	appMiddleware "github.com/schoolmate-bg/schoolmate-api/internal/middleware"
	pkgAuth "github.com/schoolmate-bg/schoolmate-api/internal/pkg/auth"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/email"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/helpers"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/logger"
	"github.com/schoolmate-bg/schoolmate-api/internal/scheduler"
	"github.com/schoolmate-bg/schoolmate-api/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos           *appRepos.Repositories
	Services        *appServices.Services
	JWTService      *pkgAuth.JWTService
	EmailService    email.EmailService
	EventBus        events.Bus
	RedisClient     *redis.Client
	Scheduler       *scheduler.Scheduler
	AuthMiddleware  *appMiddleware.AuthMiddleware
	AuditMiddleware *appMiddleware.AuditMiddleware
	Controllers     appRoutes.Controllers
	Logger          zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default records.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, cfg, lgr); err != nil {
		// Seeding problems should not block startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services, controllers and
// middleware.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.EmailService = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  "SchoolMate",
		FromEmail: cfg.SMTP.From,
		BaseURL:   cfg.SMTP.BaseURL,
	}, lgr)

	deps.EventBus = events.NewInMemoryBus()
	deps.RedisClient = db.NewRedisClient(cfg)

	deps.Services = appServices.NewServices(
		deps.Repos, deps.JWTService, deps.EmailService, deps.EventBus, deps.RedisClient)

	deps.Scheduler = scheduler.NewScheduler(
		deps.Repos.NotificationRepository, deps.Repos.TokenRepository)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
	deps.AuditMiddleware = appMiddleware.NewAuditMiddleware(deps.Repos.AuditLogRepository)

	deps.Controllers = appRoutes.Controllers{
		Auth:         appControllers.NewAuthController(deps.Services.AuthService),
		Student:      appControllers.NewStudentController(deps.Services.StudentService),
		Credit:       appControllers.NewCreditController(deps.Services.CreditService),
		Goal:         appControllers.NewGoalController(deps.Services.GoalService),
		Interest:     appControllers.NewInterestController(deps.Services.InterestService),
		Achievement:  appControllers.NewAchievementController(deps.Services.AchievementService),
		Sanction:     appControllers.NewSanctionController(deps.Services.SanctionService),
		Event:        appControllers.NewEventController(deps.Services.EventService),
		Portfolio:    appControllers.NewPortfolioController(deps.Services.PortfolioService),
		Notification: appControllers.NewNotificationController(deps.Services.NotificationService),
		Statistics:   appControllers.NewStatisticsController(deps.Services.StatisticsService),
		Report:       appControllers.NewReportController(deps.Services.ReportService),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, deps.AuditMiddleware)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
