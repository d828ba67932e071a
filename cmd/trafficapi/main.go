package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aescanero/trafficapi/internal/application/feed"
	"github.com/aescanero/trafficapi/internal/application/traffic"
	"github.com/aescanero/trafficapi/internal/config"
	"github.com/aescanero/trafficapi/pkg/adapters/events/memory"
	"github.com/aescanero/trafficapi/pkg/adapters/events/redis"
	"github.com/aescanero/trafficapi/pkg/adapters/metrics/prometheus"
	"github.com/aescanero/trafficapi/pkg/api/grpc"
	"github.com/aescanero/trafficapi/pkg/api/http"
	"github.com/aescanero/trafficapi/pkg/api/websocket"
	"github.com/aescanero/trafficapi/pkg/ports"

	promclient "github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Version is set by build flags
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	logger.Info("starting Smart Traffic API",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("variant", cfg.Variant))

	metricsCollector := prometheus.NewCollector(promclient.DefaultRegisterer)

	source, err := traffic.NewSource(cfg.Variant, cfg.RandomSeed)
	if err != nil {
		logger.Fatal("failed to create snapshot source", zap.Error(err))
	}
	trafficService := traffic.NewService(source, metricsCollector, logger)

	httpCfg := &http.Config{
		Addr:         cfg.GetHTTPAddr(),
		Traffic:      trafficService,
		Metrics:      metricsCollector,
		AllowOrigins: cfg.CORSAllowOrigins,
		Logger:       logger,
	}

	// Snapshot feed
	var (
		publisher   *feed.Publisher
		eventBus    ports.EventBus
		redisClient *goredis.Client
	)
	if cfg.Feed.Enabled {
		eventBus, redisClient = newEventBus(cfg, logger)
		publisher = feed.NewPublisher(trafficService, eventBus, metricsCollector, logger, cfg.Feed.Interval)
		httpCfg.Publisher = publisher
	}

	httpServer := http.NewServer(httpCfg)

	if publisher != nil {
		httpServer.SetupWebSocket(websocket.NewHandler(eventBus, feed.Topic, cfg.CORSAllowOrigins, logger))

		if err := publisher.Start(); err != nil {
			logger.Fatal("failed to start feed publisher", zap.Error(err))
		}
	}

	var grpcServer *grpc.Server
	if cfg.GRPCPort != 0 {
		grpcServer, err = grpc.NewServer(&grpc.Config{
			Addr:   cfg.GetGRPCAddr(),
			Logger: logger,
		})
		if err != nil {
			logger.Fatal("failed to create gRPC server", zap.Error(err))
		}
	}

	// Start servers
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	if grpcServer != nil {
		go func() {
			if err := grpcServer.Start(); err != nil {
				logger.Fatal("gRPC server failed", zap.Error(err))
			}
		}()
	}

	logger.Info("Smart Traffic API started",
		zap.Int("http_port", cfg.HTTPPort),
		zap.Int("grpc_port", cfg.GRPCPort),
		zap.Bool("feed_enabled", cfg.Feed.Enabled))

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("received shutdown signal")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	if grpcServer != nil {
		if err := grpcServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("gRPC server shutdown error", zap.Error(err))
		}
	}

	if publisher != nil {
		if err := publisher.Shutdown(shutdownCtx); err != nil {
			logger.Error("feed publisher shutdown error", zap.Error(err))
		}
		if err := eventBus.Close(); err != nil {
			logger.Error("event bus close error", zap.Error(err))
		}
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error("Redis close error", zap.Error(err))
		}
	}

	logger.Info("Smart Traffic API shut down complete")
}

// newEventBus creates the feed event bus for the configured backend. The
// returned Redis client is nil for the memory backend.
func newEventBus(cfg *config.Config, logger *zap.Logger) (ports.EventBus, *goredis.Client) {
	if cfg.Feed.Backend != "redis" {
		return memory.NewInMemoryEventBus(logger), nil
	}

	redisClient := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})

	// Test Redis connection
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Fatal("failed to connect to Redis", zap.Error(err))
	}
	logger.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr))

	eventBus, err := redis.NewStreamsEventBus(
		redisClient,
		cfg.Redis.ConsumerGroup,
		fmt.Sprintf("traffic-%d", os.Getpid()),
		cfg.Redis.StreamMaxLen,
		logger,
	)
	if err != nil {
		logger.Fatal("failed to create event bus", zap.Error(err))
	}

	return eventBus, redisClient
}

// initLogger initializes the logger based on log level
func initLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	return logger
}
