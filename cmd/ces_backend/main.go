package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/temidayo/currency-exchange-service/internal/core/domain"
	"github.com/temidayo/currency-exchange-service/internal/core/services"
	"github.com/temidayo/currency-exchange-service/internal/handlers"
	"github.com/temidayo/currency-exchange-service/internal/middleware"
	"github.com/temidayo/currency-exchange-service/internal/platform/config"
	"github.com/temidayo/currency-exchange-service/internal/platform/metrics"
	"github.com/temidayo/currency-exchange-service/internal/platform/scheduler"
	"github.com/temidayo/currency-exchange-service/internal/provider/exchangerateapi"
	"github.com/temidayo/currency-exchange-service/internal/repositories/cache/rediscache"
	"github.com/temidayo/currency-exchange-service/internal/repositories/database/pgsql"
	"github.com/temidayo/currency-exchange-service/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const shutdownTimeout = 10 * time.Second

// @title Currency Exchange Service API
// @version 1.0
// @description Scheduled FX rate ingestion with margin-applying conversions and an immutable audit trail.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	registry, err := buildCurrencyRegistry(cfg)
	if err != nil {
		logger.Error("Failed to build currency registry", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Currency registry built",
		slog.String("pivot", string(registry.Pivot())),
		slog.Int("currencies", len(registry.Codes())))

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	// Defer closing the connection pool
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	runMigrations(logger, cfg.DatabaseURL)

	redisClient, err := database.NewRedisClient(context.Background(), cfg.RedisURL)
	if err != nil {
		logger.Error("Failed to connect to Redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if cerr := redisClient.Close(); cerr != nil {
			logger.Error("Error closing Redis client", slog.String("error", cerr.Error()))
		}
	}()

	repos := pgsql.NewRepositoryProvider(dbPool, registry)
	repos.RateCache = rediscache.NewRedisRateCache(redisClient, cfg.RateCacheTTL)

	source := exchangerateapi.NewClient(cfg.ProviderBaseURL, cfg.ProviderAPIKey, cfg.ProviderName)

	m := metrics.NewExchangeMetrics(prometheus.DefaultRegisterer)

	svcs := services.NewServiceContainer(cfg, registry, repos, source, m)

	// Root context cancelled on SIGINT/SIGTERM; stops the scheduler and
	// triggers the HTTP shutdown below.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched := scheduler.NewIngestionScheduler(cfg, svcs.Ingestion, m, logger)
	go sched.Start(ctx)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "X-Request-ID")
	r.Use(cors.New(corsConfig))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, registry, source, svcs)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received, stopping server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Server stopped cleanly")
}

// buildCurrencyRegistry parses the configured pivot and supported codes into
// the registry shared by every service.
func buildCurrencyRegistry(cfg *config.Config) (*domain.CurrencyRegistry, error) {
	pivot, err := domain.ParseCurrencyCode(cfg.PivotCurrency)
	if err != nil {
		return nil, fmt.Errorf("invalid pivot currency: %w", err)
	}
	supported := make([]domain.CurrencyCode, 0, len(cfg.SupportedCurrencies))
	for _, raw := range cfg.SupportedCurrencies {
		code, err := domain.ParseCurrencyCode(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid supported currency: %w", err)
		}
		supported = append(supported, code)
	}
	return domain.NewCurrencyRegistry(pivot, supported), nil
}

// runMigrations applies all pending schema migrations, exiting the process on
// any failure so the server never runs against a partial schema.
func runMigrations(logger *slog.Logger, databaseURL string) {
	logger.Info("Running database migrations...")
	// Open a temporary standard sql.DB connection for migrations
	// Using pgx/v5/stdlib driver to be compatible with the main pool
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := migrationDB.Ping(); err != nil {
		logger.Error("Failed to ping database for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	// Create a postgres driver instance for migrate
	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	migrationsPath := "file://migrations"

	m, err := migrate.NewWithDatabaseInstance(
		migrationsPath,
		"postgres", // Database name used by migrate
		driver,
	)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Apply all available "up" migrations
	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
		os.Exit(1)
	}
	if dbErr != nil {
		logger.Error("Migration database error", slog.String("error", dbErr.Error()))
		os.Exit(1)
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
}
