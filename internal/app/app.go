package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/sundayezeilo/websitio/internal/cache"
	"github.com/sundayezeilo/websitio/internal/config"
	"github.com/sundayezeilo/websitio/internal/db/migrations"
	db "github.com/sundayezeilo/websitio/internal/db/sqlc"
	"github.com/sundayezeilo/websitio/internal/server"
	"github.com/sundayezeilo/websitio/internal/siteconfig"
	"github.com/sundayezeilo/websitio/internal/telemetry"
)

// App holds the application dependencies and configuration.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Storage *Storage
	Server  *server.Server
	Handler *siteconfig.Handler

	shutdownTracing telemetry.ShutdownFunc
}

// New initializes and returns a new App instance with all dependencies wired up.
func New(ctx context.Context) (*App, error) {
	if err := LoadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := SetupLogger(cfg.App.LogLevel)

	logger.Info("starting application",
		"env", cfg.App.Environment,
		"version", cfg.Observability.ServiceVersion,
		"store", cfg.Store.Driver,
	)

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Observability)
	if err != nil {
		return nil, fmt.Errorf("failed to set up tracing: %w", err)
	}

	storage, err := OpenStorage(ctx, cfg, logger)
	if err != nil {
		_ = shutdownTracing(ctx)
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	svc := siteconfig.NewService(storage.Store, &siteconfig.ServiceConfig{
		BaseURL: cfg.Server.BaseURL,
		Logger:  logger,
	})
	handler := siteconfig.NewHandler(siteconfig.HandlerConfig{
		Service: svc,
		Logger:  logger,
	})

	srv := server.New(cfg, logger, handler, storage.ReadinessChecks()...)

	logger.Info("application initialized",
		"port", cfg.Server.Port,
		"base_url", cfg.Server.BaseURL,
		"cache", cfg.Cache.Enabled,
	)

	return &App{
		Config:          cfg,
		Logger:          logger,
		Storage:         storage,
		Server:          srv,
		Handler:         handler,
		shutdownTracing: shutdownTracing,
	}, nil
}

// Start starts the application server.
func (a *App) Start(ctx context.Context) error {
	a.Logger.Info("server starting",
		"port", a.Config.Server.Port,
		"base_url", a.Config.Server.BaseURL,
	)

	if err := a.Server.Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (a *App) Shutdown() error {
	a.Logger.Info("shutting down application")

	var errs []error
	if a.Storage != nil {
		errs = append(errs, a.Storage.Close())
	}
	if a.shutdownTracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
		defer cancel()
		errs = append(errs, a.shutdownTracing(ctx))
	}

	return errors.Join(errs...)
}

// Storage is the config store chosen by configuration plus the connections behind it.
type Storage struct {
	Store  siteconfig.Store
	DBPool *pgxpool.Pool
	Cache  *cache.Redis

	logger *slog.Logger
}

// OpenStorage builds the store selected by cfg.Store.Driver, applies pending
// migrations when enabled and puts the Redis cache in front when configured.
func OpenStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Storage, error) {
	s := &Storage{logger: logger}

	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pool, err := connectDatabase(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		s.DBPool = pool

		if cfg.Database.AutoMigrate {
			if err := migrations.Up(ctx, pool, logger); err != nil {
				pool.Close()
				return nil, fmt.Errorf("failed to migrate database: %w", err)
			}
		}
		s.Store = siteconfig.NewPostgresStore(db.New(pool))

	default:
		logger.Warn("using in-memory store; configs are lost on restart")
		s.Store = siteconfig.NewMemoryStore(nil)
	}

	if cfg.Cache.Enabled {
		rc, err := cache.NewRedis(ctx, cfg.Cache.RedisURL)
		if err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		s.Cache = rc
		s.Store = siteconfig.NewCachedStore(s.Store, rc, &siteconfig.CachedStoreConfig{
			TTL:    cfg.Cache.TTL,
			Prefix: cfg.Cache.Prefix,
			Logger: logger,
		})
		logger.Info("config cache enabled", "ttl", cfg.Cache.TTL.String())
	}

	return s, nil
}

// ReadinessChecks exposes the connections behind the store on /x/ready.
// The in-memory store has nothing to check.
func (s *Storage) ReadinessChecks() []server.Option {
	var opts []server.Option
	if s.DBPool != nil {
		opts = append(opts, server.WithReadinessCheck("postgres", s.DBPool.Ping))
	}
	if s.Cache != nil {
		opts = append(opts, server.WithReadinessCheck("redis", s.Cache.Ping))
	}
	return opts
}

// Close releases the database pool and the cache client.
func (s *Storage) Close() error {
	var errs []error
	if s.Cache != nil {
		errs = append(errs, s.Cache.Close())
	}
	if s.DBPool != nil {
		s.DBPool.Close()
		s.logger.Info("database connection closed")
	}
	return errors.Join(errs...)
}

// LoadEnv loads .env file only in non-production environments.
func LoadEnv() error {
	env := os.Getenv("APP_ENV")
	if env == "development" || env == "test" {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("no .env file found.")
		}
	}
	return nil
}

// SetupLogger creates a structured logger based on the log level.
func SetupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}

// connectDatabase establishes a connection to the PostgreSQL database.
func connectDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// Set pool configuration
	poolConfig.MaxConns = cfg.Database.MaxConns
	poolConfig.MinConns = cfg.Database.MinConns

	logger.Info("connecting to database",
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Name,
	)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established")

	return pool, nil
}
