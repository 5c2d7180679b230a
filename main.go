package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"artisanhub/internal/config"
	"artisanhub/internal/handlers"
	"artisanhub/internal/middleware"
	"artisanhub/internal/models"
	"artisanhub/internal/repositories"
	"artisanhub/internal/services"
	"artisanhub/pkg/events"
	"artisanhub/pkg/storage"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()

	// --- Database ---
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Artisan{},
		&models.GalleryImage{},
		&models.Award{},
		&models.Product{},
		&models.AuditLog{},
		&models.VisitLog{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Event broker (optional) ---
	// Audit records always land in the database; the broker is a best-effort
	// fan-out for external consumers and the app runs fine without it.
	var eventsClient *events.Client
	if cfg.RabbitMQURL != "" {
		eventsClient, err = events.NewClient(events.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, audit fan-out disabled: %v", err)
			eventsClient = nil
		} else {
			defer eventsClient.Close()
		}
	}

	// --- File storage ---
	store := storage.New(cfg.UploadDir, cfg.PublicBaseURL)

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	artisanRepo := repositories.NewGORMArtisanRepository(db)
	galleryRepo := repositories.NewGORMGalleryRepository(db)
	awardRepo := repositories.NewGORMAwardRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	logRepo := repositories.NewGORMLogRepository(db)

	// --- Services ---
	auditService := services.NewAuditService(logRepo, eventsClient)
	authService := services.NewAuthService(userRepo, auditService, cfg.JWTSecret)
	artisanService := services.NewArtisanService(artisanRepo, store, auditService)
	categoryService := services.NewCategoryService(categoryRepo, auditService)
	galleryService := services.NewGalleryService(galleryRepo, store, auditService)
	awardService := services.NewAwardService(awardRepo, store)
	productService := services.NewProductService(productRepo)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService, store)
	adminHandler := handlers.NewAdminHandler(artisanService, authService, store)
	artisanHandler := handlers.NewArtisanHandler(artisanService, categoryService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	galleryHandler := handlers.NewGalleryHandler(galleryService, store)
	awardHandler := handlers.NewAwardHandler(awardService, store)
	productHandler := handlers.NewProductHandler(productService, categoryService)
	searchHandler := handlers.NewSearchHandler(artisanService)
	logHandler := handlers.NewLogHandler(auditService)
	activityHandler := handlers.NewActivityHandler(artisanService, categoryService)

	// --- Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowCredentials: true,
		AllowOriginsFunc: func(origin string) bool { return true },
	}))

	// Uploaded files are served straight off disk.
	app.Static("/uploads", cfg.UploadDir)

	// --- Routes ---
	auth := middleware.AuthRequired(authService)

	authHandler.RegisterRoutes(app, auth)
	adminHandler.RegisterRoutes(app, auth)
	artisanHandler.RegisterRoutes(app, auth)
	categoryHandler.RegisterRoutes(app, auth)
	galleryHandler.RegisterRoutes(app, auth)
	awardHandler.RegisterRoutes(app, auth)
	productHandler.RegisterRoutes(app, auth)
	searchHandler.RegisterRoutes(app)
	logHandler.RegisterRoutes(app, auth)
	activityHandler.RegisterRoutes(app, auth)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

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

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
