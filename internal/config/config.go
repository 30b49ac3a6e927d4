package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server        ServerConfig
	Store         StoreConfig
	Database      DatabaseConfig
	Cache         CacheConfig
	App           AppConfig
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"SERVER_PORT" required:"true"`
	Host            string        `envconfig:"SERVER_HOST" required:"true"`
	BaseURL         string        `envconfig:"SERVER_BASE_URL" required:"true"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" required:"true"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" required:"true"`
	IdleTimeout     time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" required:"true"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" required:"true"`
	CORSOrigins     []string      `envconfig:"SERVER_CORS_ORIGINS"` // empty allows any origin
}

// Validate validates the server configuration.
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port cannot be empty")
	}
	if c.Host == "" {
		return fmt.Errorf("host cannot be empty")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}
	// Client links are built as BaseURL + "/" + slug.
	if u, err := url.Parse(c.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base URL must be an absolute http(s) URL, got %q", c.BaseURL)
	}
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive")
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive")
	}
	if c.IdleTimeout <= 0 {
		return fmt.Errorf("idle timeout must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}
	return nil
}

const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
)

// StoreConfig selects where website configs are kept.
type StoreConfig struct {
	Driver string `envconfig:"STORE_DRIVER" required:"true"` // memory, postgres
}

// Validate validates the store configuration.
func (c *StoreConfig) Validate() error {
	switch c.Driver {
	case StoreDriverMemory, StoreDriverPostgres:
		return nil
	default:
		return fmt.Errorf("invalid store driver: %s (must be one of: memory, postgres)", c.Driver)
	}
}

// DatabaseConfig holds database connection configuration.
// It is only loaded when the postgres store driver is selected.
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" required:"true"`
	Port     string `envconfig:"DB_PORT" required:"true"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	Name     string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSLMODE" required:"true"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" required:"true"`
	MinConns int32  `envconfig:"DB_MIN_CONNS" required:"true"`

	AutoMigrate bool `envconfig:"DB_AUTO_MIGRATE" default:"true"`
}

// Validate validates the database configuration.
func (c *DatabaseConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("host cannot be empty")
	}
	if c.Port == "" {
		return fmt.Errorf("port cannot be empty")
	}
	if c.User == "" {
		return fmt.Errorf("user cannot be empty")
	}
	if c.Password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	if c.Name == "" {
		return fmt.Errorf("database name cannot be empty")
	}
	if c.MaxConns <= 0 {
		return fmt.Errorf("max connections must be positive")
	}
	if c.MinConns <= 0 {
		return fmt.Errorf("min connections must be positive")
	}
	if c.MinConns > c.MaxConns {
		return fmt.Errorf("min connections (%d) cannot be greater than max connections (%d)", c.MinConns, c.MaxConns)
	}

	validSSLModes := map[string]bool{
		"disable":     true,
		"require":     true,
		"verify-ca":   true,
		"verify-full": true,
	}
	if !validSSLModes[c.SSLMode] {
		return fmt.Errorf("invalid SSL mode: %s (must be one of: disable, require, verify-ca, verify-full)", c.SSLMode)
	}
	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// CacheConfig holds the optional Redis read cache configuration.
type CacheConfig struct {
	Enabled  bool          `envconfig:"CACHE_ENABLED" default:"false"`
	RedisURL string        `envconfig:"CACHE_REDIS_URL"`
	TTL      time.Duration `envconfig:"CACHE_TTL" default:"5m"`
	Prefix   string        `envconfig:"CACHE_PREFIX" default:"websitio:config:"`
}

// Validate validates the cache configuration.
func (c *CacheConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.RedisURL == "" {
		return fmt.Errorf("redis URL is required when the cache is enabled")
	}
	if !strings.HasPrefix(c.RedisURL, "redis://") && !strings.HasPrefix(c.RedisURL, "rediss://") {
		return fmt.Errorf("redis URL must use the redis:// or rediss:// scheme")
	}
	if c.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive")
	}
	return nil
}

// AppConfig holds application-specific configuration.
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" required:"true"`   // development, staging, production, test
	LogLevel    string `envconfig:"LOG_LEVEL" required:"true"` // debug, info, warn, error
}

// Validate validates the app configuration.
func (c *AppConfig) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
		"test":        true,
	}
	if !validEnvs[c.Environment] {
		return fmt.Errorf("invalid environment: %s (must be one of: development, staging, production, test)", c.Environment)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}
	return nil
}

// ObservabilityConfig holds configuration for tracing/metrics.
type ObservabilityConfig struct {
	Enabled           bool    `envconfig:"OTEL_ENABLED" required:"true"`
	ServiceName       string  `envconfig:"OTEL_SERVICE_NAME"`
	ServiceVersion    string  `envconfig:"OTEL_SERVICE_VERSION"`
	OTelEndpoint      string  `envconfig:"OTEL_ENDPOINT"`
	OTelInsecure      bool    `envconfig:"OTEL_INSECURE"`
	TracingSampleRate float64 `envconfig:"OTEL_TRACING_SAMPLE_RATE"`
}

// Validate validates the observability configuration.
func (c *ObservabilityConfig) Validate() error {
	if c.TracingSampleRate < 0 || c.TracingSampleRate > 1 {
		return fmt.Errorf("tracing sample rate must be between 0 and 1, got %f", c.TracingSampleRate)
	}

	// Only require these when observability is enabled.
	if c.Enabled {
		if c.ServiceName == "" {
			return fmt.Errorf("service name is required when observability is enabled")
		}
		if c.OTelEndpoint == "" {
			return fmt.Errorf("OTEL endpoint is required when observability is enabled")
		}
		if c.ServiceVersion == "" {
			return fmt.Errorf("service version is required when observability is enabled")
		}
	}

	return nil
}

type section interface {
	Validate() error
}

// loadSection fills dst from the environment and validates it.
func loadSection(name string, dst section) error {
	if err := envconfig.Process("", dst); err != nil {
		return fmt.Errorf("failed to load %s config: %w", name, err)
	}
	if err := dst.Validate(); err != nil {
		return fmt.Errorf("invalid %s config: %w", name, err)
	}
	return nil
}

// Load reads the full server configuration from the environment.
// .env files are handled by the caller (app.LoadEnv).
func Load() (*Config, error) {
	cfg, err := LoadStorage()
	if err != nil {
		return nil, err
	}
	if err := loadSection("Server", &cfg.Server); err != nil {
		return nil, err
	}
	if err := loadSection("Observability", &cfg.Observability); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadStorage loads only the sections needed to reach the config store:
// App, Store, Database (postgres only) and Cache. The admin CLI uses it.
func LoadStorage() (*Config, error) {
	cfg := &Config{}

	if err := loadSection("App", &cfg.App); err != nil {
		return nil, err
	}
	if err := loadSection("Store", &cfg.Store); err != nil {
		return nil, err
	}
	if cfg.Store.Driver == StoreDriverPostgres {
		if err := loadSection("Database", &cfg.Database); err != nil {
			return nil, err
		}
	}
	if err := loadSection("Cache", &cfg.Cache); err != nil {
		return nil, err
	}
	return cfg, nil
}
