package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"inventario/internal/config"
	"inventario/internal/database"
	"inventario/internal/handlers"
	"inventario/internal/middleware"
	"inventario/internal/repositories"
	"inventario/internal/services"
	"inventario/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Database ---
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// --- RabbitMQ share target (optional) ---
	var sharer services.Sharer
	if cfg.RabbitMQURL == "" {
		log.Println("RABBITMQ_URL is not set, export sharing is disabled.")
	} else {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.ExportQueue})
		if err != nil {
			log.Printf("Export sharing is disabled: %v", err)
		} else {
			sharer = mqClient
			defer mqClient.Close()
		}
	}

	app := newApp(context.Background(), cfg, db, sharer)

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// newApp wires storage, services and handlers into a Fiber app. A nil sharer
// leaves export sharing unavailable.
func newApp(ctx context.Context, cfg config.Config, db *gorm.DB, sharer services.Sharer) *fiber.App {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}

	// --- Repositories ---
	storage := repositories.NewGORMProductStorage(db, cfg.StorageKey)
	operatorRepo := repositories.NewGORMOperatorRepository(db)

	// --- Services ---
	productService := services.NewProductService(storage,
		services.WithSeedCount(cfg.SeedCount),
		services.WithClock(func() time.Time { return time.Now().In(loc) }),
	)
	if err := productService.Load(ctx); err != nil {
		// The service keeps running on the in-memory catalog.
		log.Printf("[ALERT] %v", err)
	}
	exportService := services.NewExportService(productService, sharer)
	authService := services.NewAuthService(operatorRepo, cfg.JWTSecret)

	// --- Handlers ---
	productHandler := handlers.NewProductHandler(productService, loc)
	exportHandler := handlers.NewExportHandler(exportService)
	authHandler := handlers.NewAuthHandler(authService)

	app := fiber.New(fiber.Config{AppName: "inventario"})
	app.Use(logger.New())

	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)

	protectedRoutes := apiV1.Group("", middleware.AuthRequired(authService))
	productHandler.RegisterRoutes(protectedRoutes)
	exportHandler.RegisterRoutes(protectedRoutes)

	sharing := "disabled"
	if sharer != nil {
		sharing = "enabled"
	}
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"time":    time.Now().In(loc).Format(time.RFC3339),
			"sharing": sharing,
		})
	})

	return app
}
