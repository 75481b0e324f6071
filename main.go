// main.go
package main

import (
	"os"
	"strconv"
	"time"

	"campusquest/database"
	"campusquest/handlers"
	"campusquest/handlers/admin"
	"campusquest/middleware"
	"campusquest/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logrus.Warn(".env file not found, using system environment variables")
	}

	validateEnvironment()

	// Initialize database
	database.InitDB()
	db := database.GetDB()

	// Optional leaderboard cache
	var cache *redis.Client
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			logrus.WithError(err).Fatal("invalid REDIS_URL")
		}
		cache = redis.NewClient(opts)
		logrus.Info("leaderboard cache enabled")
	}

	// Engine services
	challengeSvc := services.NewChallengeService(db)
	achievementSvc := services.NewAchievementService(db)
	pointsSvc := services.NewPointsService(db, achievementSvc)
	progressSvc := services.NewProgressService(db, challengeSvc)
	leaderboardSvc := services.NewLeaderboardService(db, cache)

	// Content generator collaborator, injected into the handlers that need it
	var generator services.QuizGenerator
	if endpoint := os.Getenv("GENERATOR_URL"); endpoint != "" {
		timeout := time.Duration(getEnvInt("GENERATOR_TIMEOUT_MS", 10000)) * time.Millisecond
		generator = services.NewHTTPQuizGenerator(endpoint, os.Getenv("GENERATOR_API_KEY"), timeout)
		logrus.Info("remote quiz generator configured")
	} else {
		generator = &services.TemplateQuizGenerator{}
	}

	challengeHandler := handlers.NewChallengeHandler(challengeSvc, generator)
	progressHandler := handlers.NewProgressHandler(progressSvc, challengeSvc, pointsSvc)
	pointsHandler := handlers.NewPointsHandler(pointsSvc)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardSvc)
	achievementHandler := handlers.NewAchievementHandler(achievementSvc, pointsSvc)
	adminAchievements := admin.NewAchievementHandler(achievementSvc)
	adminChallenges := admin.NewChallengeHandler(challengeSvc)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    4 * 1024 * 1024, // 4MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	app.Use(middleware.RateLimitMiddleware())

	// API Routes
	api := app.Group("/api")

	// Auth routes with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.AuthRateLimitMiddleware())
	authGroup.Post("/guest", handlers.GuestLogin)
	authGroup.Post("/login", handlers.Login)
	authGroup.Post("/register", handlers.Register)

	// Challenge catalog
	api.Get("/events/:eventId/challenges", challengeHandler.ListActive)
	api.Get("/challenges/:id", challengeHandler.Get)
	api.Post("/challenges", middleware.AuthMiddleware, challengeHandler.Create)
	api.Post("/challenges/generate", middleware.AuthMiddleware, challengeHandler.Generate)

	// Challenge progress
	api.Post("/challenges/:id/start", middleware.AuthMiddleware, progressHandler.Start)
	api.Post("/challenges/:id/submit", middleware.AuthMiddleware, progressHandler.SubmitQuiz)
	api.Post("/challenges/:id/checkin", middleware.AuthMiddleware, progressHandler.CheckIn)
	api.Get("/challenges/:id/progress", middleware.AuthMiddleware, progressHandler.Get)
	api.Get("/progress", middleware.AuthMiddleware, progressHandler.List)

	// Points ledger
	api.Get("/events/:eventId/points", middleware.AuthMiddleware, pointsHandler.Get)
	api.Post("/events/:eventId/points", middleware.AuthMiddleware, pointsHandler.Add)

	// Leaderboard
	api.Get("/events/:eventId/leaderboard", leaderboardHandler.Get)

	// Achievements
	api.Get("/achievements", achievementHandler.List)
	api.Get("/events/:eventId/achievements", middleware.AuthMiddleware, achievementHandler.ListOwned)

	// Admin routes
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AdminAuthMiddleware)
	adminGroup.Get("/achievements", adminAchievements.List)
	adminGroup.Post("/achievements", adminAchievements.Create)
	adminGroup.Put("/achievements/:id", adminAchievements.Update)
	adminGroup.Delete("/achievements/:id", adminAchievements.Delete)
	adminGroup.Post("/challenges", adminChallenges.Create)
	adminGroup.Post("/challenges/:id/deactivate", adminChallenges.Deactivate)

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	logrus.WithFields(logrus.Fields{
		"port": port,
		"env":  getEnv("APP_ENV", "development"),
	}).Info("HTTP server starting")

	if err := app.Listen(":" + port); err != nil {
		logrus.WithError(err).Fatal("failed to start HTTP server")
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logrus.Fatal("JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(jwtSecret) < 32 {
		logrus.Fatal("JWT_SECRET must be at least 32 characters long")
	}

	if os.Getenv("APP_ENV") == "production" {
		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "http://localhost:3000" {
			logrus.Warn("CORS_ORIGINS not properly configured for production")
		}
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return def
}
