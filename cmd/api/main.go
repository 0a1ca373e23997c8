// @title AlltagsLabor API
// @version 1.0
// @description Catalog of everyday science experiments: categories, search, tutorials and browse sessions.
// @contact.name AlltagsLabor
// @host localhost:8001
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"alltagslabor/cmd/api/docs"
	"alltagslabor/internal/adapter"
	"alltagslabor/internal/adapter/source"
	"alltagslabor/internal/cache"
	"alltagslabor/internal/catalog"
	"alltagslabor/internal/config"
	"alltagslabor/internal/domain"
	"alltagslabor/internal/handler"
	"alltagslabor/internal/logger"
	"alltagslabor/internal/middleware"
	"alltagslabor/internal/repository"
	"alltagslabor/internal/service"
	"alltagslabor/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis is optional; without it every load goes to the catalog source.
	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		appLogger.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
	} else {
		appLogger.Info("Redis address not set, catalog cache disabled")
	}

	catalogSource, err := source.FromConfig(cfg.Catalog)
	if err != nil {
		appLogger.Fatal("Failed to create catalog source", zap.Error(err))
	}
	appLogger.Info("Catalog source initialized", zap.String("source", cfg.Catalog.Source))

	experimentRepository := repository.NewExperimentRepository(catalogSource, cacheAdapter, cfg.Cache.TTL)
	resourceRepository := repository.NewResourceRepository(catalogSource, cacheAdapter, cfg.Cache.TTL)

	if cfg.Catalog.Preload {
		preload(ctx, experimentRepository)
	}

	if cfg.Catalog.Source == config.SourceDir && cfg.Catalog.Watch {
		// Refresh keeps serving the last good dataset when the changed file
		// does not load.
		watcher := source.NewWatcher(cfg.Catalog.Dir, source.DefaultDebounce, func(lang domain.Language) {
			if _, err := experimentRepository.Refresh(ctx, lang); err != nil {
				appLogger.Warn("Reload after file change failed", zap.String("language", string(lang.Code)), zap.Error(err))
				return
			}
			appLogger.Info("Dataset reloaded", zap.String("language", string(lang.Code)))
		})
		if err := watcher.Start(ctx); err != nil {
			appLogger.Fatal("Failed to watch catalog directory", zap.Error(err))
		}
		defer watcher.Stop()
	}

	renderer := catalog.NewRenderer(cfg.Catalog.AssetBaseURL)
	sessionStore := session.NewStore(cfg.Session.TTL)
	go sessionStore.Run(ctx, cfg.Session.SweepInterval)

	// Initialize services
	catalogService := service.NewCatalogService(experimentRepository, resourceRepository, renderer)
	sessionService := service.NewSessionService(experimentRepository, sessionStore, renderer)

	// Initialize handlers
	catalogHandler := handler.NewCatalogHandler(catalogService)
	sessionHandler := handler.NewSessionHandler(sessionService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	backendURL := cfg.BackendURL()
	if u, err := url.Parse(backendURL); err == nil && u.Host != "" {
		docs.SwaggerInfo.Host = u.Host
	}
	app.Get("/swagger/*", swagger.HandlerDefault)

	handler.RegisterRoutes(app, catalogHandler, sessionHandler)

	go func() {
		appLogger.Info("Starting server",
			zap.Int("port", cfg.Server.Port),
			zap.String("backend_url", backendURL),
			zap.String("env", cfg.Logger.Env),
		)
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}
	appLogger.Info("Server exited gracefully")
}

// preload fetches every language once so the first requests are served from
// memory. Failures are logged; the language is retried on first use.
func preload(ctx context.Context, repo repository.ExperimentRepository) {
	for _, lang := range domain.Languages() {
		start := time.Now()
		ds, err := repo.Load(ctx, lang)
		if err != nil {
			logger.Get().Warn("Preload failed", zap.String("language", string(lang.Code)), zap.Error(err))
			continue
		}
		logger.Get().Info("Dataset preloaded",
			zap.String("language", string(lang.Code)),
			zap.Int("records", len(ds.All)),
			zap.Int("visible", len(ds.Visible)),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
