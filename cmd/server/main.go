package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/jam-build-appstore/internal/cache"
	"github.com/localnerve/jam-build-appstore/internal/config"
	"github.com/localnerve/jam-build-appstore/internal/database"
	"github.com/localnerve/jam-build-appstore/internal/handlers"
	"github.com/localnerve/jam-build-appstore/internal/logging"
	"github.com/localnerve/jam-build-appstore/internal/services"
	"go.uber.org/zap"

	_ "github.com/localnerve/jam-build-appstore/docs/api" // Swagger docs
)

// @title AppStore API
// @version 1.0.0
// @description Hierarchical app and store resolution service with multi-database support
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/jam-build-appstore
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

// @securityDefinitions.apikey GuestAuth
// @in header
// @name X-Guest-Id

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logging.NewOrNop(logging.Config{Level: "info"}).Fatal("failed to load configuration", zap.Error(err))
	}

	log, err := logging.New(logging.Config{Level: cfg.LogLevel, Development: cfg.LogDev})
	if err != nil {
		log = logging.NewOrNop(logging.Config{Level: "info"})
		log.Warn("bad log configuration, using defaults", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	// Connect to database
	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Result cache, left nil when disabled so the catalog skips it
	var resultCache cache.Cache
	if cfg.CacheEnabled {
		redisCache, err := cache.NewRedis(cfg.RedisURL)
		if err != nil {
			log.Fatal("failed to connect to cache", zap.Error(err))
		}
		defer redisCache.Close()
		resultCache = redisCache
	}

	catalog := services.NewCatalog(db, resultCache, log, services.Options{
		AnchorSlug:        cfg.AnchorAppSlug,
		MaxDepth:          cfg.MaxExpandDepth,
		ExpansionPageSize: cfg.ExpandPageSize,
	})

	// Member sessions are only honored with an Authorizer configured
	var validator services.SessionValidator
	if cfg.AuthzURL != "" {
		authz, err := services.NewAuthorizer(cfg, cfg.AuthzRedirect, log)
		if err != nil {
			log.Fatal("failed to initialize authorizer", zap.Error(err))
		}
		validator = authz
	} else {
		log.Warn("AUTHZ_URL not set, member sessions disabled")
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(log),
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("appstore")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	health := &handlers.HealthHandler{Config: cfg, DB: db, Cache: resultCache, Logger: log}
	app.Get("/healthz", health.Health)

	// API routes under /api
	handlers.Register(app.Group("/api"), catalog, validator, log)

	// 404 handler
	app.Use(handlers.NotFoundHandler)

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("gracefully shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = app.ShutdownWithContext(ctx)
	}()

	// Start server
	log.Info("starting server", zap.String("port", cfg.Port), zap.String("dbType", cfg.DBType))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}

	log.Info("server stopped")
}
