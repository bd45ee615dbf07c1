package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/unisession/internal/app/controllers"
	appMigrations "github.com/yigit/unisession/internal/app/migrations"
	appRepos "github.com/yigit/unisession/internal/app/repositories"
	"github.com/yigit/unisession/internal/app/repositories/memory"
	appRoutes "github.com/yigit/unisession/internal/app/routes"
	appServices "github.com/yigit/unisession/internal/app/services"
	"github.com/yigit/unisession/internal/config"
	"github.com/yigit/unisession/internal/db"
	appMiddleware "github.com/yigit/unisession/internal/middleware"
	"github.com/yigit/unisession/internal/pkg/logger"
	"github.com/yigit/unisession/internal/pkg/metrics"
	"github.com/yigit/unisession/internal/seed"
)

// DefaultConfigPath is read when no path is given
var DefaultConfigPath = filepath.Join("configs", "config.yaml")

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store       appServices.Store
	Services    *appServices.Services
	Controllers appRoutes.Controllers
	Metrics     *metrics.Metrics
	Logger      zerolog.Logger
	DB          *db.PostgresDB // nil with the memory driver
}

// Close releases the database pool, if any
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: cfg.PrettyLogs(),
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore opens the configured storage. For PostgreSQL it connects and
// applies the embedded migrations.
func SetupStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (appServices.Store, *db.PostgresDB, error) {
	if cfg.Database.Driver == config.DriverMemory {
		lgr.Warn().Msg("Using in-memory storage; data is lost on shutdown")
		return memory.NewStore(), nil, nil
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)
	if err := migrator.Migrate(ctx, appMigrations.Files, appMigrations.Dir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return appRepos.NewRepositories(database.Pool), database, nil
}

// BuildDependencies initializes services and controllers on top of a store.
func BuildDependencies(store appServices.Store, lgr zerolog.Logger) *Dependencies {
	svc := appServices.NewServices(store)
	return &Dependencies{
		Store:    store,
		Services: svc,
		Controllers: appRoutes.Controllers{
			Faculty:    appControllers.NewFacultyController(svc.Faculty),
			Department: appControllers.NewDepartmentController(svc.Department),
			Teacher:    appControllers.NewTeacherController(svc.Teacher),
			Group:      appControllers.NewGroupController(svc.Group),
			Subject:    appControllers.NewSubjectController(svc.Subject),
			Session:    appControllers.NewSessionController(svc.Session),
			Report:     appControllers.NewReportController(svc.Report),
		},
		Metrics: metrics.New(),
		Logger:  lgr,
	}
}

// SeedIfEnabled populates the store through the services when seeding is on
func SeedIfEnabled(ctx context.Context, cfg *config.Config, deps *Dependencies) error {
	if !cfg.Seed.Enabled {
		return nil
	}
	deps.Logger.Info().Msg("Seeding data...")
	summary, err := seed.Run(ctx, seed.NewServiceTarget(deps.Services), seed.Options{
		Groups:     cfg.Seed.Groups,
		Subjects:   cfg.Seed.Subjects,
		Sessions:   cfg.Seed.Sessions,
		RandomSeed: cfg.Seed.RandomSeed,
	}, deps.Logger)
	created, failed := summary.Total()
	deps.Logger.Info().Int("created", created).Int("failed", failed).Msg("Seeding finished")
	return err
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	switch strings.ToLower(cfg.Server.Mode) {
	case "production", "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(),
		appMiddleware.Metrics(deps.Metrics),
		appMiddleware.Recovery(),
	)
	router.NoRoute(appMiddleware.NotFound())

	appRoutes.SetupRouter(router, cfg.Server.BasePath, deps.Controllers, deps.Metrics)
	return router
}
