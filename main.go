package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/rentora/rentora_backend/config"
	"github.com/rentora/rentora_backend/controllers"
	"github.com/rentora/rentora_backend/middleware"
	"github.com/rentora/rentora_backend/repositories"
	"github.com/rentora/rentora_backend/routes"
	"github.com/rentora/rentora_backend/services"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found")
	}

	// Connect to Redis (policy cache; optional)
	redisClient := config.ConnectRedis()

	// Connect to database
	client := config.ConnectDB()
	db := client.Database(config.GetDatabaseName())

	// Create a new Echo instance
	e := echo.New()

	// Initialize custom validator
	customValidator := &CustomValidator{validator: validator.New()}
	e.Validator = customValidator

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter()

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.Secure())
	e.Use(rateLimiter.RateLimit())

	e.Match([]string{"GET", "HEAD"}, "/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "OK",
			"message": "Rentora Backend is running",
			"version": "1.0",
		})
	})

	e.Match([]string{"GET", "HEAD"}, "/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":   "healthy",
			"database": "connected",
		})
	})

	// Clean up blacklisted tokens in the background
	go middleware.CleanupBlacklist()

	// Initialize repositories
	ledgerStore := repositories.NewMongoLedgerStore(db)
	policyRepo := repositories.NewPolicyRepository(db, redisClient)

	// Commission engine
	ledgerService := services.NewCommissionLedgerService(ledgerStore, policyRepo, nil)
	statusGate := services.NewPaymentStatusGate(ledgerService)

	// Initialize controllers
	authController := controllers.NewAuthController(db)
	propertyController := controllers.NewPropertyController(db, policyRepo)
	leaseController := controllers.NewLeaseController(db)
	paymentController := controllers.NewPaymentController(db, statusGate, ledgerService)
	commissionController := controllers.NewCommissionController(db, ledgerService)

	// Register routes
	routes.RegisterAuthRoutes(e, authController)
	routes.RegisterPropertyRoutes(e, propertyController, leaseController)
	routes.RegisterPaymentRoutes(e, paymentController)
	routes.RegisterCommissionRoutes(e, commissionController)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting server on port %s", port)
	e.Logger.Fatal(e.Start(":" + port))
}
