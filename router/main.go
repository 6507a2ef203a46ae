package router

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/studysavvy-api/database"
	"github.com/sahilchouksey/studysavvy-api/handlers"
	auth_handlers "github.com/sahilchouksey/studysavvy-api/handlers/auth"
	availability_handlers "github.com/sahilchouksey/studysavvy-api/handlers/availability"
	note_handlers "github.com/sahilchouksey/studysavvy-api/handlers/note"
	plan_handlers "github.com/sahilchouksey/studysavvy-api/handlers/plan"
	subject_handlers "github.com/sahilchouksey/studysavvy-api/handlers/subject"
	todo_handlers "github.com/sahilchouksey/studysavvy-api/handlers/todo"
	"github.com/sahilchouksey/studysavvy-api/services"
	"github.com/sahilchouksey/studysavvy-api/utils/auth"
	"github.com/sahilchouksey/studysavvy-api/utils/cache"
	"github.com/sahilchouksey/studysavvy-api/utils/middleware"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, store database.Storage) {
	// Get JWT secret from environment
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := os.Getenv("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "studysavvy-api"
	}

	// Initialize JWT manager with config
	jwtConfig := auth.JWTConfig{
		Secret:        jwtSecret,
		Expiry:        24 * time.Hour,     // Access token expires in 24 hours
		RefreshExpiry: 7 * 24 * time.Hour, // Refresh token expires in 7 days
		Issuer:        jwtIssuer,
	}
	jwtManager := auth.NewJWTManager(jwtConfig)

	// Get DB instance (type assert from interface)
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	// Initialize Redis cache for brute force protection and progress caching
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Brute force protection and progress caching will be disabled.", err)
	}

	// Initialize brute force protection
	var bruteForceProtection *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
	}

	// Initialize auth middleware with DB for blacklist checking
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	// Initialize auth handler with brute force protection
	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, bruteForceProtection)

	// Initialize domain services and handlers
	subjectService := services.NewSubjectService(db)
	subjectHandler := subject_handlers.NewSubjectHandler(db, subjectService)

	availabilityHandler := availability_handlers.NewAvailabilityHandler(db)

	plannerService := services.NewPlannerService(db)
	progressService := services.NewProgressService(db)
	planHandler := plan_handlers.NewPlanHandler(db, plannerService, progressService, redisCache)

	todoHandler := todo_handlers.NewTodoHandler(db)
	noteHandler := note_handlers.NewNoteHandler(db)

	// Apply security middleware
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,             // 100 requests
		RateLimitWindow:   1 * time.Minute, // per minute
	})

	// Health check endpoint (public)
	app.Get("/ping", func(c *fiber.Ctx) error { return handlers.HandleCheckHealth(c, store) })

	// API v1 group
	api := app.Group("/api/v1")

	// Auth routes (public)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)

	// Login with brute force protection
	if bruteForceProtection != nil {
		authGroup.Post("/login", bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}

	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Protected auth routes
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)
	authGroup.Post("/change-password", authMiddleware.Required(), authHandler.ChangePassword)

	// Profile routes (protected)
	profileGroup := api.Group("/profile", authMiddleware.Required())
	profileGroup.Get("/", authHandler.GetProfile)
	profileGroup.Put("/", authHandler.UpdateProfile)

	// Subjects routes (protected, user-scoped)
	subjects := api.Group("/subjects", authMiddleware.Required())
	subjects.Get("/", subjectHandler.ListSubjects)
	subjects.Get("/:id", subjectHandler.GetSubject)
	subjects.Post("/", subjectHandler.CreateSubject)
	subjects.Put("/:id", subjectHandler.UpdateSubject)
	subjects.Delete("/:id", subjectHandler.DeleteSubject)

	// Chapters routes (nested under subjects)
	chapters := api.Group("/subjects/:subject_id/chapters", authMiddleware.Required())
	chapters.Get("/", subjectHandler.ListChapters)
	chapters.Post("/", subjectHandler.CreateChapter)
	chapters.Put("/:id", subjectHandler.UpdateChapter)
	chapters.Delete("/:id", subjectHandler.DeleteChapter)

	// Availability routes (protected)
	availability := api.Group("/availability", authMiddleware.Required())
	availability.Get("/", availabilityHandler.GetAvailability)
	availability.Put("/", availabilityHandler.ReplaceAvailability)

	// Plan routes (protected)
	plans := api.Group("/plans", authMiddleware.Required())
	plans.Post("/generate", planHandler.GeneratePlan)
	plans.Get("/current", planHandler.GetCurrentPlan)
	plans.Get("/progress", planHandler.GetProgress)

	// Session routes (protected)
	sessions := api.Group("/sessions", authMiddleware.Required())
	sessions.Get("/", planHandler.ListSessions)
	sessions.Patch("/:uuid", planHandler.UpdateSession)

	// Todo routes (protected)
	todos := api.Group("/todos", authMiddleware.Required())
	todos.Get("/", todoHandler.ListTodos)
	todos.Post("/", todoHandler.CreateTodo)
	todos.Put("/:id", todoHandler.UpdateTodo)
	todos.Delete("/:id", todoHandler.DeleteTodo)

	// Note routes (protected)
	notes := api.Group("/notes", authMiddleware.Required())
	notes.Get("/", noteHandler.ListNotes)
	notes.Get("/:id", noteHandler.GetNote)
	notes.Post("/", noteHandler.CreateNote)
	notes.Put("/:id", noteHandler.UpdateNote)
	notes.Delete("/:id", noteHandler.DeleteNote)
}
