package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for the traffic API
type Config struct {
	// Server configuration
	HTTPPort int    `env:"TRAFFIC_HTTP_PORT" envDefault:"5000"`
	GRPCPort int    `env:"TRAFFIC_GRPC_PORT" envDefault:"9090"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Snapshot source: "random" or "fixed"
	Variant    string `env:"TRAFFIC_VARIANT" envDefault:"random"`
	RandomSeed int64  `env:"TRAFFIC_RANDOM_SEED" envDefault:"0"`

	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envDefault:"*" envSeparator:","`

	// Snapshot feed
	Feed FeedConfig

	// Redis configuration, used by the redis feed backend
	Redis RedisConfig

	// Timeouts
	Timeouts TimeoutConfig
}

// FeedConfig holds snapshot feed configuration
type FeedConfig struct {
	Enabled  bool          `env:"FEED_ENABLED" envDefault:"false"`
	Interval time.Duration `env:"FEED_INTERVAL" envDefault:"5s"`
	Backend  string        `env:"FEED_BACKEND" envDefault:"memory"`
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASS"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`

	// Connection pool settings
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	MaxRetries   int           `env:"REDIS_MAX_RETRIES" envDefault:"3"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`

	StreamMaxLen  int64  `env:"REDIS_STREAM_MAX_LEN" envDefault:"1000"`
	ConsumerGroup string `env:"REDIS_CONSUMER_GROUP" envDefault:"traffic-feed"`
}

// TimeoutConfig holds various timeout configurations
type TimeoutConfig struct {
	ShutdownTimeout time.Duration `env:"TIMEOUT_SHUTDOWN" envDefault:"15s"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	// 0 disables the gRPC health server
	if c.GRPCPort < 0 || c.GRPCPort > 65535 {
		return fmt.Errorf("invalid gRPC port: %d", c.GRPCPort)
	}
	if c.GRPCPort != 0 && c.GRPCPort == c.HTTPPort {
		return fmt.Errorf("HTTP and gRPC ports must differ: %d", c.HTTPPort)
	}

	if c.Variant != "random" && c.Variant != "fixed" {
		return fmt.Errorf("unsupported traffic variant: %s (must be random or fixed)", c.Variant)
	}

	if len(c.CORSAllowOrigins) == 0 {
		return fmt.Errorf("at least one CORS origin is required")
	}

	if c.Feed.Enabled {
		if c.Feed.Interval <= 0 {
			return fmt.Errorf("feed interval must be positive")
		}
		switch c.Feed.Backend {
		case "memory":
		case "redis":
			if c.Redis.Addr == "" {
				return fmt.Errorf("redis address is required for the redis feed backend")
			}
		default:
			return fmt.Errorf("unsupported feed backend: %s (must be memory or redis)", c.Feed.Backend)
		}
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// GetGRPCAddr returns the gRPC server address
func (c *Config) GetGRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}
