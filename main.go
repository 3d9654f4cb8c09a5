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
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"podcatalog/internal/config"
	"podcatalog/internal/database"
	"podcatalog/internal/handlers"
	"podcatalog/internal/middleware"
	"podcatalog/internal/repositories"
	"podcatalog/internal/services"
	"podcatalog/pkg/cache"
	"podcatalog/pkg/rabbitmq"
)

const serviceName = "podcatalog"

// App bundles the HTTP server with the resources it owns.
type App struct {
	Fiber   *fiber.App
	MQ      *rabbitmq.Client
	closers []func() error
}

// Close releases every resource opened by NewApp, newest first.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}
}

// NewApp wires storage, cache, messaging and HTTP routes from cfg.
func NewApp(cfg *config.Config) (*App, error) {
	app := &App{}

	// --- Storage ---
	var (
		productRepo repositories.ProductRepository
		ping        func() error
	)
	if cfg.DatabaseDriver == database.DriverMemory {
		productRepo = repositories.NewMockProductRepository()
		ping = func() error { return nil }
	} else {
		db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, func() error { return database.Close(db) })
		if err := database.Migrate(db); err != nil {
			app.Close()
			return nil, err
		}
		productRepo = repositories.NewGORMProductRepository(db)
		ping = func() error { return database.Ping(db) }
	}

	// --- Product list cache ---
	switch cfg.CacheDriver {
	case cache.DriverMemory:
		productRepo = repositories.NewCachedProductRepository(productRepo, cache.NewMemoryCache(), cfg.CacheTTL)
	case cache.DriverRedis:
		// Redis caching stays off until an address is configured.
		if cfg.RedisAddr == "" {
			break
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rdb, err := cache.NewRedisClient(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			app.Close()
			return nil, err
		}
		app.closers = append(app.closers, rdb.Close)
		productRepo = repositories.NewCachedProductRepository(productRepo, cache.NewRedisCache(rdb, serviceName+":"), cfg.CacheTTL)
	case cache.DriverNone, "":
	default:
		app.Close()
		return nil, fmt.Errorf("unsupported cache driver %q", cfg.CacheDriver)
	}

	// --- Catalog events ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			app.Close()
			return nil, err
		}
		app.closers = append(app.closers, mqClient.Close)
		app.MQ = mqClient
		publisher = mqClient
	}

	// --- Services and handlers ---
	productService := services.NewProductService(productRepo, publisher)
	productHandler := handlers.NewProductHandler(productService)
	dashboardHandler := handlers.NewDashboardHandler(productService)

	f := fiber.New(fiber.Config{AppName: serviceName})
	f.Use(recover.New())
	f.Use(logger.New())
	f.Use(middleware.Metrics(serviceName))

	api := f.Group("/api")
	productHandler.RegisterRoutes(api)
	dashboardHandler.RegisterRoutes(api)

	f.Get("/metrics", middleware.MetricsHandler())
	f.Get("/health", func(c *fiber.Ctx) error {
		status, dbStatus := "healthy", "connected"
		code := fiber.StatusOK
		if err := ping(); err != nil {
			log.Printf("Health check database ping failed: %v", err)
			status, dbStatus = "unhealthy", "unreachable"
			code = fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{
			"status":   status,
			"time":     time.Now().Format(time.RFC3339),
			"database": dbStatus,
			"rabbitMQ": app.MQ != nil,
		})
	})

	app.Fiber = f
	return app, nil
}

func main() {
	cfg := config.Load()

	app, err := NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.Close()

	if app.MQ != nil {
		log.Println("Starting RabbitMQ consumer for catalog events...")
		if err := app.MQ.Consume(rabbitmq.LogCatalogEvent); err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
	}

	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Fiber.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Fiber.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
