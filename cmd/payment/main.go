package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/piresc/payrelay/internal/pkg/circuitbreaker"
	"github.com/piresc/payrelay/internal/pkg/config"
	"github.com/piresc/payrelay/internal/pkg/database"
	"github.com/piresc/payrelay/internal/pkg/health"
	"github.com/piresc/payrelay/internal/pkg/logger"
	"github.com/piresc/payrelay/internal/pkg/middleware"
	"github.com/piresc/payrelay/internal/pkg/models"
	natspkg "github.com/piresc/payrelay/internal/pkg/nats"
	nrpkg "github.com/piresc/payrelay/internal/pkg/newrelic"
	"github.com/piresc/payrelay/internal/pkg/retry"
	"github.com/piresc/payrelay/internal/pkg/server"
	"github.com/piresc/payrelay/services/payment"
	"github.com/piresc/payrelay/services/payment/gateway"
	"github.com/piresc/payrelay/services/payment/handler"
	"github.com/piresc/payrelay/services/payment/repository"
	"github.com/piresc/payrelay/services/payment/usecase"
	"go.uber.org/zap"
)

const paymentAPIBreaker = "payment-api"

func main() {
	configPath := "config/payment.env"
	configs := config.InitConfig(configPath)
	appName := configs.App.Name

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)
	if nrApp != nil {
		if err := nrApp.WaitForConnection(10 * time.Second); err != nil {
			log.Printf("Warning: New Relic connection timeout: %v", err)
		}
	}

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		zap.String("app", appName),
		zap.String("version", configs.App.Version),
		zap.String("environment", configs.App.Environment),
		zap.String("ledger", configs.Ledger.Backend),
	)
	warnOnMissingConfig(zapLogger, configs)

	healthService := health.NewHealthService(zapLogger)
	var cleanups []func(context.Context) error

	// Redis backs the redis ledger and the create rate limiter
	var redisClient *database.RedisClient
	if configs.Ledger.Backend == models.LedgerBackendRedis || configs.RateLimit.CreatePerMinute > 0 {
		redisClient, err = database.NewRedisClient(configs.Redis)
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		healthService.AddChecker("redis", health.NewRedisHealthChecker(redisClient))
		cleanups = append(cleanups, func(context.Context) error { return redisClient.Close() })
	}

	// Initialize repository
	var paymentRepo payment.PaymentRepo
	switch configs.Ledger.Backend {
	case models.LedgerBackendRedis:
		paymentRepo = repository.NewRedisRepository(redisClient.GetClient())
	case models.LedgerBackendPostgres:
		postgresClient, err := database.NewPostgresClient(configs.Database)
		if err != nil {
			zapLogger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		pgRepo := repository.NewPostgresRepository(postgresClient.GetDB())
		if err := pgRepo.EnsureSchema(context.Background()); err != nil {
			zapLogger.Fatal("Failed to prepare payments table", zap.Error(err))
		}
		paymentRepo = pgRepo
		healthService.AddChecker("postgres", health.NewPostgresHealthChecker(postgresClient))
		cleanups = append(cleanups, func(context.Context) error { return postgresClient.Close() })
	case models.LedgerBackendMemory:
		paymentRepo = repository.NewMemoryRepository()
	default:
		zapLogger.Fatal("Unknown ledger backend", zap.String("backend", configs.Ledger.Backend))
	}

	// Initialize event publisher
	eventGW := gateway.NewNopEventGW()
	if configs.NATS.URL != "" {
		natsClient, err := natspkg.NewClient(configs.NATS.URL, appName)
		if err != nil {
			zapLogger.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		eventGW = gateway.NewEventGW(natsClient, retry.NewWithDefaults(zapLogger))
		healthService.AddChecker("nats", health.NewNATSHealthChecker(natsClient))
		cleanups = append(cleanups, func(context.Context) error {
			natsClient.Close()
			return nil
		})
	}

	// Initialize upstream gateway
	breakers := circuitbreaker.NewManager(zapLogger)
	breakerCfg := circuitbreaker.DefaultConfig(paymentAPIBreaker)
	breakerCfg.Timeout = 30 * time.Second
	paymentGW := gateway.NewPaymentAPIGW(configs.PaymentAPI, breakers.GetOrCreate(breakerCfg))
	healthService.AddChecker("circuit_breakers", health.NewCircuitBreakerHealthChecker(breakers))

	// Initialize usecase
	paymentUC := usecase.NewPaymentUC(configs, paymentRepo, paymentGW, eventGW)

	// Initialize handlers
	var rawRedis *redis.Client
	if redisClient != nil {
		rawRedis = redisClient.GetClient()
	}
	paymentHandler := handler.NewHandler(paymentUC, configs, rawRedis)

	// Initialize Echo router
	e := echo.New()
	e.HideBanner = true
	if configs.Server.ReadTimeout > 0 {
		e.Server.ReadTimeout = time.Duration(configs.Server.ReadTimeout) * time.Second
	}
	if configs.Server.WriteTimeout > 0 {
		e.Server.WriteTimeout = time.Duration(configs.Server.WriteTimeout) * time.Second
	}

	// Add middlewares
	e.Use(nrpkg.Middleware(nrApp))
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.ZapEchoMiddleware(zapLogger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: configs.Server.AllowedOrigins,
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			middleware.APIKeyHeader,
		},
	}))

	// Register health endpoints
	health.RegisterEnhancedHealthEndpoints(e, appName, configs.App.Version, healthService)

	// Register service routes
	paymentHandler.RegisterRoutes(e)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Host, configs.Server.Port,
		time.Duration(configs.Server.ShutdownTimeout)*time.Second)
	for _, cleanup := range cleanups {
		srv.Components().Register(cleanup)
	}
	if nrApp != nil {
		srv.Components().Register(func(context.Context) error {
			nrApp.Shutdown(10 * time.Second)
			return nil
		})
	}

	if err := srv.Start(); err != nil {
		zapLogger.Fatal("Server stopped with error",
			zap.String("app", appName),
			zap.Error(err),
		)
	}
}

// warnOnMissingConfig logs the settings the upstream payment API needs to be usable
func warnOnMissingConfig(l *logger.ZapLogger, configs *models.Config) {
	if configs.PaymentAPI.ClientID == "" || configs.PaymentAPI.ClientSecret == "" {
		l.Warn("CLIENT_ID or CLIENT_SECRET is not set, upstream calls will be rejected")
	}
	serverURL := configs.Callback.ServerURL
	if serverURL == "" || strings.Contains(serverURL, "localhost") || strings.Contains(serverURL, "127.0.0.1") {
		l.Warn("SERVER_URL must be publicly accessible for payment callbacks, expose this server with ngrok or similar",
			zap.String("server_url", serverURL))
	}
}
