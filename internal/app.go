// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	router "creator-wallet/internal/api"
	"creator-wallet/internal/api/handler"
	"creator-wallet/internal/config"
	"creator-wallet/internal/metrics"
	"creator-wallet/internal/repository"
	"creator-wallet/internal/repository/cache"
	"creator-wallet/internal/repository/postgres"
	"creator-wallet/internal/service"
	"creator-wallet/internal/util"
	"creator-wallet/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config   *config.AppConfig
	Logger   *slog.Logger
	DB       *sqlx.DB
	Redis    *redis.Client
	Registry *prometheus.Registry

	// Repositories
	LedgerRepository       repository.LedgerRepository
	VendorWalletRepository repository.VendorWalletRepository
	LedgerCache            repository.LedgerCache

	// Services
	WalletService service.WalletService

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
	util.InitLogger(cfg.LogLevel)
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	loc, err := cfg.PayoutLocation()
	if err != nil {
		return err
	}

	// 3. Connect to Database
	database, err := db.NewPostgresDB(ctx, cfg.Database())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	// 4. Optional Redis snapshot cache
	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(ctx, cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		app.Redis = client
		app.LedgerCache = cache.NewLedgerCache(client, cfg.Redis.TTL)
		app.Logger.Info("Ledger cache enabled.", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL.String())
	}

	// 5. Metrics
	app.Registry = prometheus.NewRegistry()
	app.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(app.DB.DB, cfg.DB.Name),
	)
	walletMetrics := metrics.NewWalletMetrics(app.Registry)

	// 6. Initialize Repositories
	app.LedgerRepository = postgres.NewLedgerRepository(app.DB)
	app.VendorWalletRepository = postgres.NewVendorWalletRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	// 7. Initialize Services
	// Pass the concrete db.BeginTx, db.CommitTx, db.RollbackTx functions from pkg/db
	opts := []service.Option{
		service.WithMetrics(walletMetrics),
		service.WithLocation(loc),
		service.WithLogger(app.Logger),
	}
	if app.LedgerCache != nil {
		opts = append(opts, service.WithCache(app.LedgerCache))
	}
	app.WalletService = service.NewWalletService(
		app.DB, // This is the DBTxBeginner
		app.DB, // This is the DBExecutor
		app.LedgerRepository,
		app.VendorWalletRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
		opts...,
	)
	app.Logger.Info("Services initialized.", "payout_timezone", loc.String())

	// 8. Initialize HTTP Handlers and Router
	walletHandler := handler.NewWalletHandler(app.WalletService, app.Logger, cfg.DefaultCurrency)
	app.HTTPHandler = router.NewRouter(walletHandler, app.Registry, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	logger := app.Logger
	if logger == nil {
		logger = util.GetLogger()
	}
	logger.Info("Shutting down application...")

	if app.Redis != nil {
		if err := app.Redis.Close(); err != nil {
			logger.Error("Failed to close redis connection", "error", err)
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		logger.Info("Database connection closed.")
	}
	logger.Info("Application shut down gracefully.")
	return nil
}
