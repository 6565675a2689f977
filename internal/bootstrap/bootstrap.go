// Package bootstrap assembles the application: configuration, logging,
// database, repositories, services, controllers and the router.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/emre/classtrack/internal/app/controllers"
	appMigrations "github.com/emre/classtrack/internal/app/migrations"
	appRepos "github.com/emre/classtrack/internal/app/repositories"
	appRoutes "github.com/emre/classtrack/internal/app/routes"
	appServices "github.com/emre/classtrack/internal/app/services"
	"github.com/emre/classtrack/internal/config"
	"github.com/emre/classtrack/internal/db"
	appMiddleware "github.com/emre/classtrack/internal/middleware"
	pkgAuth "github.com/emre/classtrack/internal/pkg/auth"
	"github.com/emre/classtrack/internal/pkg/logger"
	"github.com/emre/classtrack/internal/pkg/riskclient"
	"github.com/emre/classtrack/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	Classifier           riskclient.Classifier
	AuthService          *appServices.AuthService
	AccountService       *appServices.AccountService
	StudentService       *appServices.StudentService
	CourseService        *appServices.CourseService
	AttendanceService    *appServices.AttendanceService
	MarksService         *appServices.MarksService
	RiskService          *appServices.RiskService
	BulkImportService    *appServices.BulkImportService
	BulkExportService    *appServices.BulkExportService
	AuthController       *appControllers.AuthController
	StudentController    *appControllers.StudentController
	CourseController     *appControllers.CourseController
	AttendanceController *appControllers.AttendanceController
	MarksController      *appControllers.MarksController
	RiskController       *appControllers.RiskController
	ReportController     *appControllers.ReportController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Logger               zerolog.Logger
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
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), database.Pool, lgr); err != nil {
		// Seeding is best effort; the API still works for existing accounts
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	accessTokenExp, err := time.ParseDuration(cfg.JWT.AccessTokenExpiration)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access token expiration: %w", err)
	}
	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: accessTokenExp,
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Classifier = riskclient.NewHTTPClassifier(riskclient.Config{
		URL:     cfg.Classifier.URL,
		Token:   cfg.Classifier.Token,
		Timeout: cfg.ClassifierTimeout(),
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService, lgr)
	deps.AccountService = appServices.NewAccountService(database, lgr)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository)
	deps.CourseService = appServices.NewCourseService(deps.Repos.CourseRepository)
	deps.AttendanceService = appServices.NewAttendanceService(
		deps.Repos.AttendanceRepository,
		deps.Repos.StudentRepository,
		deps.Repos.CourseRepository,
	)
	deps.MarksService = appServices.NewMarksService(
		deps.Repos.MarksRepository,
		deps.Repos.StudentRepository,
		deps.Repos.CourseRepository,
	)
	deps.RiskService = appServices.NewRiskService(
		deps.Repos.StudentRepository,
		deps.Repos.CourseRepository,
		deps.Repos.AttendanceRepository,
		deps.Repos.MarksRepository,
		deps.Repos.StudentRiskRepository,
		deps.Classifier,
		lgr,
	)
	deps.BulkImportService = appServices.NewBulkImportService(database, lgr)
	deps.BulkExportService = appServices.NewBulkExportService(
		deps.Repos.StudentRepository,
		deps.Repos.AttendanceRepository,
		deps.Repos.MarksRepository,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.StudentController = appControllers.NewStudentController(deps.AccountService, deps.StudentService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService, deps.StudentService)
	deps.AttendanceController = appControllers.NewAttendanceController(deps.AttendanceService)
	deps.MarksController = appControllers.NewMarksController(deps.MarksService)
	deps.RiskController = appControllers.NewRiskController(deps.RiskService)
	deps.ReportController = appControllers.NewReportController(deps.BulkImportService, deps.BulkExportService, lgr)

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

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.StudentController,
		deps.CourseController,
		deps.AttendanceController,
		deps.MarksController,
		deps.RiskController,
		deps.ReportController,
		deps.AuthMiddleware,
	)

	return router
}
