package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/mdemir/coursedesk/internal/app/controllers"
	appMigrations "github.com/mdemir/coursedesk/internal/app/migrations"
	appRepos "github.com/mdemir/coursedesk/internal/app/repositories"
	appRoutes "github.com/mdemir/coursedesk/internal/app/routes"
	appServices "github.com/mdemir/coursedesk/internal/app/services"
	"github.com/mdemir/coursedesk/internal/config"
	"github.com/mdemir/coursedesk/internal/db"
	appMiddleware "github.com/mdemir/coursedesk/internal/middleware"
	pkgAuth "github.com/mdemir/coursedesk/internal/pkg/auth"
	"github.com/mdemir/coursedesk/internal/pkg/logger"
	"github.com/mdemir/coursedesk/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         *appServices.AuthService
	CourseService       *appServices.CourseService
	EnrollmentService   *appServices.EnrollmentService
	GradeService        *appServices.GradeService
	ProfessorService    *appServices.ProfessorService
	NoteService         *appServices.NoteService
	AuthController      *appControllers.AuthController
	CourseController    *appControllers.CourseController
	GradeController     *appControllers.GradeController
	ProfessorController *appControllers.ProfessorController
	NoteController      *appControllers.NoteController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Repos               *appRepos.Repositories
	JWTService          *pkgAuth.JWTService
	Logger              zerolog.Logger
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

// SetupDatabase establishes the database connection, runs migrations
// and seeds the department-head account.
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
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, cfg, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to seed default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services, controllers
// and middleware.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool, cfg.QueryTimeout())

	accessTokenExp, err := time.ParseDuration(cfg.JWT.AccessTokenExpiration)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access token expiration: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: accessTokenExp,
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.Professor, deps.Repos.Student, deps.JWTService, lgr)
	deps.CourseService = appServices.NewCourseService(deps.Repos.Course, deps.Repos.Professor, deps.Repos.Student, deps.Repos.Grade)
	deps.EnrollmentService = appServices.NewEnrollmentService(deps.Repos.Course, deps.Repos.Student, deps.Repos.Enrollment)
	deps.GradeService = appServices.NewGradeService(deps.Repos.Grade, deps.Repos.Course, deps.Repos.Enrollment)
	deps.ProfessorService = appServices.NewProfessorService(deps.Repos.Professor)
	deps.NoteService = appServices.NewNoteService(deps.Repos.Note, deps.Repos.Course)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService, deps.EnrollmentService)
	deps.GradeController = appControllers.NewGradeController(deps.GradeService)
	deps.ProfessorController = appControllers.NewProfessorController(deps.AuthService, deps.ProfessorService)
	deps.NoteController = appControllers.NewNoteController(deps.NoteService)

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
		deps.CourseController,
		deps.GradeController,
		deps.ProfessorController,
		deps.NoteController,
		deps.AuthMiddleware,
	)

	return router
}
