// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	router "sportsbook/internal/api"
	"sportsbook/internal/api/handler"
	"sportsbook/internal/config"
	"sportsbook/internal/quotes"
	"sportsbook/internal/repository"
	"sportsbook/internal/repository/postgres"
	"sportsbook/internal/service"
	"sportsbook/internal/util"
	"sportsbook/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB
	Redis  *redis.Client

	// Repositories
	UserRepository   repository.UserRepository
	LedgerRepository repository.LedgerRepository
	BetRepository    repository.BetRepository

	// Services
	AuthService    service.AuthService
	BettingService service.BettingService
	QuoteService   *quotes.Service

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	// 4. Optional quote cache
	if app.Config.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: app.Config.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		app.Redis = rdb
		app.Logger.Info("Redis connection established.")
	}

	// 5. Initialize Repositories
	app.UserRepository = postgres.NewUserRepository(app.DB)
	app.LedgerRepository = postgres.NewLedgerRepository(app.DB)
	app.BetRepository = postgres.NewBetRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	// 6. Initialize Services
	app.QuoteService = quotes.NewService(quotes.Config{
		APIKey:           app.Config.OddsAPIKey,
		Region:           app.Config.OddsRegion,
		CricketSportKey:  app.Config.OddsCricketSportKey,
		FootballSportKey: app.Config.OddsFootballSportKey,
		CacheTTL:         app.Config.QuotesCacheTTL,
	}, app.Redis, app.Logger)

	app.AuthService = service.NewAuthService(app.DB, app.UserRepository, app.Config.JWTSecret)

	app.BettingService = service.NewBettingService(
		app.DB, // This is the DBTxBeginner
		app.DB, // This is the DBExecutor
		app.UserRepository,
		app.LedgerRepository,
		app.BetRepository,
		app.QuoteService,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.Logger.Info("Services initialized.")

	// 7. Seed the administrator account
	if err := app.AuthService.EnsureAdmin(ctx, app.Config.AdminName, app.Config.AdminEmail, app.Config.AdminPassword); err != nil {
		return fmt.Errorf("failed to ensure admin account: %w", err)
	}

	// 8. Initialize HTTP Handlers and Router
	authHandler := handler.NewAuthHandler(app.AuthService, app.Logger)
	bettingHandler := handler.NewBettingHandler(app.BettingService, app.QuoteService, app.Logger)
	adminHandler := handler.NewAdminHandler(app.BettingService, app.Logger)
	app.HTTPHandler = router.NewRouter(app.AuthService, authHandler, bettingHandler, adminHandler, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.Redis != nil {
		if err := app.Redis.Close(); err != nil {
			app.Logger.Error("Failed to close redis connection", "error", err)
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
