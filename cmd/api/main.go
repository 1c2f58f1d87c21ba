package main

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/planningkart/planningkart/internal/config"
	"github.com/planningkart/planningkart/internal/handler"
	"github.com/planningkart/planningkart/internal/middleware"
	"github.com/planningkart/planningkart/internal/models"
	"github.com/planningkart/planningkart/internal/repository"
	"github.com/planningkart/planningkart/internal/service"
	"github.com/planningkart/planningkart/pkg/database"
	"github.com/planningkart/planningkart/pkg/email"
	"github.com/planningkart/planningkart/pkg/logger"
	"github.com/planningkart/planningkart/pkg/storage"
	"github.com/planningkart/planningkart/pkg/utils"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	zapLogger := logger.Init()
	defer zapLogger.Sync()

	cfg := config.LoadConfig()

	// Initialize database (runs migrations and seeds categories)
	db := database.NewDatabase()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	planRepo := repository.NewPlanRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	// Storage service
	r2Storage, err := storage.NewR2Storage(cfg)
	if err != nil {
		log.Fatal("Failed to initialize R2 storage:", err)
	}

	// Email service
	emailService := email.NewEmailService()

	// Services
	authService := service.NewAuthService(userRepo, emailService)
	eventService := service.NewEventService(eventRepo, userRepo, mediaRepo, planRepo, zapLogger)
	mediaService := service.NewMediaService(mediaRepo, eventRepo, userRepo, r2Storage, zapLogger)
	planService := service.NewPlanService(planRepo, eventRepo, userRepo)
	categoryService := service.NewCategoryService(categoryRepo)

	validator := utils.NewValidator()

	// Handlers
	authHandler := handler.NewAuthHandler(authService, validator)
	eventHandler := handler.NewEventHandler(eventService, validator)
	mediaHandler := handler.NewMediaHandler(mediaService)
	planHandler := handler.NewPlanHandler(planService, validator)
	categoryHandler := handler.NewCategoryHandler(categoryService)

	// Router
	app := fiber.New(fiber.Config{
		BodyLimit: 12 * 1024 * 1024, // media uploads are capped at 10MB
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "https://planningkart.com, https://www.planningkart.com, http://localhost:5173",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE",
		AllowCredentials: true,
	}))
	app.Use(fiberLogger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	v1 := app.Group("/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/organizer/signup", authHandler.SignupOrganizer)
	auth.Post("/login", authHandler.Login)
	auth.Post("/signout", authHandler.Signout)

	v1.Get("/event-categories", categoryHandler.GetAllCategories)

	// Protected routes
	v1.Use(middleware.AuthMiddleware())
	{
		organizer := middleware.RequireRole(models.RoleOrganizer, models.RoleAdmin)
		admin := middleware.RequireRole(models.RoleAdmin)

		events := v1.Group("/events")
		events.Post("/", organizer, eventHandler.CreateEvent)
		events.Get("/", organizer, eventHandler.GetOrganizerEvents)
		events.Get("/:id", eventHandler.GetEvent)
		events.Put("/:id", organizer, eventHandler.UpdateEvent)
		events.Delete("/:id", organizer, eventHandler.DeleteEvent)
		events.Get("/:id/validate", organizer, eventHandler.ValidateEvent)
		events.Post("/:id/ready", organizer, eventHandler.MarkReady)
		events.Post("/:id/publish", admin, eventHandler.PublishEvent)
		events.Post("/:id/unpublish", admin, eventHandler.UnpublishEvent)

		// Media routes
		events.Post("/:id/media", organizer, mediaHandler.UploadMedia)
		events.Get("/:id/media", mediaHandler.GetEventMedia)
		events.Delete("/:id/media/:mediaId", organizer, mediaHandler.DeleteMedia)
		events.Put("/:id/media/:mediaId/primary", organizer, mediaHandler.SetPrimaryMedia)

		// Plan routes
		plans := v1.Group("/event-plans")
		plans.Post("/", organizer, planHandler.CreatePlan)
		plans.Get("/", organizer, planHandler.GetEventPlans)
		plans.Delete("/:id", organizer, planHandler.DeletePlan)
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Fatal(app.Listen(":" + port))
}
