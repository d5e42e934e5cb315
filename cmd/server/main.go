package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/seu-repo/callguard/internal/adapter/cache"
	"github.com/seu-repo/callguard/internal/adapter/http/fiber/handlers"
	"github.com/seu-repo/callguard/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/callguard/internal/adapter/queue"
	"github.com/seu-repo/callguard/internal/adapter/storage/postgres"
	"github.com/seu-repo/callguard/internal/adapter/vault"
	wsAdapter "github.com/seu-repo/callguard/internal/adapter/websocket"
	"github.com/seu-repo/callguard/internal/infrastructure/circuitbreaker"
	"github.com/seu-repo/callguard/internal/observability/telemetry"
	"github.com/seu-repo/callguard/internal/ports"
	"github.com/seu-repo/callguard/internal/service/auth"
	"github.com/seu-repo/callguard/internal/service/contact"
	"github.com/seu-repo/callguard/internal/service/email"
	"github.com/seu-repo/callguard/internal/service/report"
	"github.com/seu-repo/callguard/internal/service/score"
	"github.com/seu-repo/callguard/internal/service/search"
	"github.com/seu-repo/callguard/pkg/config"
)

const (
	serviceName    = "callguard"
	serviceVersion = "v1.0.0"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	logger.Info("Starting CallGuard",
		zap.String("service", serviceName),
		zap.String("version", serviceVersion),
	)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Secrets from Vault override config when enabled.
	if cfg.Vault.Enabled {
		secrets, err := vault.NewSecretManager(cfg.Vault.Address, cfg.Vault.Token)
		if err != nil {
			logger.Fatal("Failed to connect to Vault", zap.Error(err))
		}
		if dsn, err := secrets.GetDatabaseURL(); err == nil {
			cfg.Database.URL = dsn
		}
		if secret, err := secrets.GetJWTSecret(); err == nil {
			cfg.JWT.Secret = secret
		}
		if key, err := secrets.GetSendGridAPIKey(); err == nil {
			cfg.Email.APIKey = key
		}
	}

	if cfg.Tracing.Enabled {
		tracerProvider, err := telemetry.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.JaegerEndpoint)
		if err != nil {
			logger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				logger.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
	}

	// PostgreSQL
	db, err := postgres.NewConnection(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get underlying SQL DB", zap.Error(err))
	}
	defer sqlDB.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.RunMigrations(db); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	// Redis, with an in-process fallback so the API still serves when the
	// cache tier is absent in development.
	var cacheStore ports.Cache
	redisCache, err := cache.NewRedisCache(cfg.Redis.URL, logger)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to local cache", zap.Error(err))
		cacheStore = cache.NewLocalCache(time.Minute, logger)
	} else {
		cacheStore = circuitbreaker.NewGuardedCache(redisCache, logger)
	}
	defer cacheStore.Close()

	// Message queue
	messageQueue, err := queue.New(cfg.Queue.Driver, cfg.Queue.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to message queue", zap.Error(err))
	}
	defer messageQueue.Close()

	// Repositories
	userRepo := postgres.NewUserRepository(db, logger)
	contactRepo := postgres.NewContactRepository(db, logger)
	reportRepo := postgres.NewReportRepository(db, logger)

	// Services
	emailService, err := email.NewService(&email.Config{
		Provider:       cfg.Email.Provider,
		FromEmail:      cfg.Email.From,
		FromName:       cfg.Email.FromName,
		SendGridAPIKey: cfg.Email.APIKey,
		SMTPHost:       cfg.Email.SMTPHost,
		SMTPPort:       cfg.Email.SMTPPort,
		SMTPUsername:   cfg.Email.SMTPUsername,
		SMTPPassword:   cfg.Email.SMTPPassword,
		SMTPUseTLS:     cfg.Email.SMTPUseTLS,
		BaseURL:        cfg.Email.BaseURL,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize email service", zap.Error(err))
	}

	authService := auth.NewService(userRepo, emailService, cfg.JWT.Secret, cfg.JWT.AccessTokenDuration, cfg.JWT.RefreshTokenDuration, logger)
	scoreService := score.NewEngineWithTTL(reportRepo, cacheStore, cfg.Cache.SpamScoreTTL, logger)
	searchService := search.NewServiceWithTTL(userRepo, contactRepo, scoreService, cacheStore, cfg.Cache.SearchResultsTTL, logger)
	contactService := contact.NewService(contactRepo, cacheStore, logger)
	reportService := report.NewServiceWithThreshold(reportRepo, userRepo, scoreService, cacheStore, messageQueue, emailService, cfg.Reporting.AlertThreshold, logger)

	// WebSocket hub for the live report feed
	wsHub := wsAdapter.NewHub()
	go wsHub.Run()
	if err := messageQueue.Subscribe(queue.SubjectReportCreated, func(data []byte) error {
		wsHub.Broadcast(data)
		return nil
	}); err != nil {
		logger.Warn("Failed to subscribe to report feed", zap.Error(err))
	}

	// Fiber HTTP server
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ServerHeader:          serviceName,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		IdleTimeout:           cfg.HTTP.IdleTimeout,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	if cfg.CORS.Enabled {
		app.Use(middleware.NewCORS(cfg.CORS))
	} else {
		app.Use(middleware.DefaultCORS())
	}
	app.Use(middleware.CircuitBreaker(logger))
	app.Use(limiter.New(limiter.Config{
		Max:        300,
		Expiration: time.Minute,
	}))

	// Health checks
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		if err := sqlDB.Ping(); err != nil {
			return c.Status(503).SendString("Database not ready")
		}
		if err := cacheStore.Ping(); err != nil {
			return c.Status(503).SendString("Cache not ready")
		}
		return c.SendString("Ready")
	})

	// Prometheus metrics
	app.Get("/metrics", func(c *fiber.Ctx) error {
		handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
		handler(c.Context())
		return nil
	})

	// API v1 routes
	v1 := app.Group("/api/v1")

	authHandler := handlers.NewAuthHandler(authService, logger)
	v1.Post("/auth/login", authHandler.Login)
	v1.Post("/auth/register", authHandler.Register)
	v1.Post("/auth/refresh", authHandler.RefreshToken)

	protected := v1.Group("", middleware.AuthRequired(authService))
	protected.Get("/auth/me", authHandler.Me)

	searchHandler := handlers.NewSearchHandler(searchService, logger)
	protected.Get("/search", searchHandler.Search)

	contactHandler := handlers.NewContactHandler(contactService, logger)
	protected.Post("/contacts", contactHandler.Create)
	protected.Get("/contacts", contactHandler.List)
	protected.Get("/contacts/:id", contactHandler.Get)
	protected.Put("/contacts/:id", contactHandler.Update)
	protected.Delete("/contacts/:id", contactHandler.Delete)

	reportHandler := handlers.NewReportHandler(reportService, logger)
	protected.Post("/reports", reportHandler.Create)
	protected.Get("/numbers/:number/check", reportHandler.Check)
	protected.Get("/numbers/:number/reports", reportHandler.ListByNumber)

	// WebSocket report feed
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/reports", websocket.New(func(c *websocket.Conn) {
		userID := c.Query("userId", "guest")
		wsHub.AddClient(c, userID)
	}))

	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}
