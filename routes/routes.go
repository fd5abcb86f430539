package routes

import (
	"PharmaTrack/cache"
	"PharmaTrack/config"
	"PharmaTrack/controllers"
	"PharmaTrack/handlers"
	"PharmaTrack/middlewares"
	"PharmaTrack/repositories"
	"PharmaTrack/services"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, db *gorm.DB) http.Handler {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	// Create a Gin router
	router := gin.Default()

	// Apply Bearer token validation to all routes
	router.Use(middlewares.ValidateBearerToken(config.GetBearerToken()))

	// Create and apply CORS middleware configuration
	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   []string{"http://localhost:3000", "https://pharmatrack.example.com"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	// Apply rate limiter middleware
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15,
		Burst:             30,
	}))

	// Apply logging middleware
	router.Use(middlewares.LoggingMiddleware())

	// Initialize repositories, services, and handlers
	batchRepo := repositories.NewBatchRepository(cache)
	patientRepo := repositories.NewPatientRepository(cache)
	dispensingRepo := repositories.NewDispensingRepository(cache)
	userRepo := repositories.NewUserRepository(db, cache)

	batchService := services.NewBatchService(batchRepo)
	patientService := services.NewPatientService(patientRepo)
	dispensingService := services.NewDispensingService(dispensingRepo, batchRepo, patientRepo)
	userService := services.NewUserService(userRepo)

	batchHandler := handlers.NewBatchHandler(batchService)
	patientHandler := handlers.NewPatientHandler(patientService)
	dispensingHandler := handlers.NewDispensingHandler(dispensingService)
	authHandler := handlers.NewAuthHandler(userService)

	// Register routes
	controllers.SetupPharmacyRoutes(router, batchHandler, patientHandler, dispensingHandler)

	authController := controllers.NewAuthController(authHandler)
	authController.RegisterRoutes(router)

	controllers.SetupRootRoute(router)

	return router
}
