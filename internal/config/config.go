package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig    `mapstructure:",squash"`
	Database  DatabaseConfig  `mapstructure:",squash"`
	Redis     RedisConfig     `mapstructure:",squash"`
	Scheduler SchedulerConfig `mapstructure:",squash"`
	Logging   LoggingConfig   `mapstructure:",squash"`
	Business  BusinessConfig  `mapstructure:",squash"`
	Health    HealthConfig    `mapstructure:",squash"`
}

type ServerConfig struct {
	Port            string `mapstructure:"SERVER_PORT"`
	Host            string `mapstructure:"SERVER_HOST"`
	Env             string `mapstructure:"ENV"`
	ReadTimeout     string `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout    string `mapstructure:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout string `mapstructure:"SERVER_SHUTDOWN_TIMEOUT"`
}

type DatabaseConfig struct {
	Driver       string `mapstructure:"DATABASE_DRIVER"`
	URL          string `mapstructure:"DATABASE_URL"`
	MaxOpenConns int    `mapstructure:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns int    `mapstructure:"DATABASE_MAX_IDLE_CONNS"`
	AutoMigrate  bool   `mapstructure:"DATABASE_AUTO_MIGRATE"`
}

type RedisConfig struct {
	Addr      string `mapstructure:"REDIS_ADDR"`
	Password  string `mapstructure:"REDIS_PASSWORD"`
	DB        int    `mapstructure:"REDIS_DB"`
	TotalsTTL string `mapstructure:"REDIS_TOTALS_TTL"`
}

type SchedulerConfig struct {
	ReconcileSpec string `mapstructure:"SCHEDULER_RECONCILE_SPEC"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

type BusinessConfig struct {
	FallbackRatePct  string `mapstructure:"FALLBACK_RATE_PCT"`
	StrictTermLabels bool   `mapstructure:"STRICT_TERM_LABELS"`
	Timezone         string `mapstructure:"BUSINESS_TIMEZONE"`
}

type HealthConfig struct {
	Timeout string `mapstructure:"HEALTH_CHECK_TIMEOUT"`
}

var supportedDrivers = map[string]bool{"postgres": true, "sqlite3": true}

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("ENV", "development")
	v.SetDefault("SERVER_READ_TIMEOUT", "15s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "15s")
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "30s")
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	v.SetDefault("DATABASE_AUTO_MIGRATE", true)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_TOTALS_TTL", "10m")
	v.SetDefault("SCHEDULER_RECONCILE_SPEC", "0 5 0 * * *")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("FALLBACK_RATE_PCT", "0")
	v.SetDefault("STRICT_TERM_LABELS", true)
	v.SetDefault("BUSINESS_TIMEZONE", "Local")
	v.SetDefault("HEALTH_CHECK_TIMEOUT", "5s")

	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if !supportedDrivers[c.Database.Driver] {
		return fmt.Errorf("DATABASE_DRIVER must be postgres or sqlite3, got %q", c.Database.Driver)
	}

	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	rate, err := decimal.NewFromString(c.Business.FallbackRatePct)
	if err != nil {
		return fmt.Errorf("FALLBACK_RATE_PCT must be a valid decimal: %w", err)
	}
	if rate.IsNegative() {
		return fmt.Errorf("FALLBACK_RATE_PCT must not be negative")
	}

	if _, err := time.LoadLocation(c.Business.Timezone); err != nil {
		return fmt.Errorf("BUSINESS_TIMEZONE must be a valid IANA zone: %w", err)
	}

	if _, err := cron.NewParser(cronParseOptions).Parse(c.Scheduler.ReconcileSpec); err != nil {
		return fmt.Errorf("SCHEDULER_RECONCILE_SPEC must be a valid cron spec: %w", err)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error")
	}

	for name, value := range map[string]string{
		"SERVER_READ_TIMEOUT":     c.Server.ReadTimeout,
		"SERVER_WRITE_TIMEOUT":    c.Server.WriteTimeout,
		"SERVER_SHUTDOWN_TIMEOUT": c.Server.ShutdownTimeout,
		"REDIS_TOTALS_TTL":        c.Redis.TotalsTTL,
		"HEALTH_CHECK_TIMEOUT":    c.Health.Timeout,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("%s must be a valid duration: %w", name, err)
		}
	}

	return nil
}

// cronParseOptions accepts specs with a leading seconds field.
const cronParseOptions = cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor

// CronParser returns the parser matching the accepted scheduler spec format.
func CronParser() cron.Parser {
	return cron.NewParser(cronParseOptions)
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// RedisEnabled reports whether a Redis address was configured.
func (c *Config) RedisEnabled() bool {
	return c.Redis.Addr != ""
}

// GetFallbackRatePct returns the fallback rate in percent
func (c *Config) GetFallbackRatePct() float64 {
	rate, _ := decimal.NewFromString(c.Business.FallbackRatePct)
	return rate.InexactFloat64()
}

// GetLocation returns the business timezone
func (c *Config) GetLocation() *time.Location {
	loc, err := time.LoadLocation(c.Business.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) GetReadTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.ReadTimeout)
	return d
}

func (c *Config) GetWriteTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.WriteTimeout)
	return d
}

func (c *Config) GetShutdownTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.ShutdownTimeout)
	return d
}

// GetTotalsTTL returns how long dashboard totals stay cached
func (c *Config) GetTotalsTTL() time.Duration {
	d, _ := time.ParseDuration(c.Redis.TotalsTTL)
	return d
}

// GetHealthTimeout returns the health check timeout as duration
func (c *Config) GetHealthTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Health.Timeout)
	return timeout
}
