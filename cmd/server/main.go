package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/openbounty/bounty-board-api/internal/config"
	"github.com/openbounty/bounty-board-api/internal/constants"
	"github.com/openbounty/bounty-board-api/internal/database"
	"github.com/openbounty/bounty-board-api/internal/handlers"
	"github.com/openbounty/bounty-board-api/internal/middleware"
	"github.com/openbounty/bounty-board-api/internal/repository"
	"github.com/openbounty/bounty-board-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,                        // Redis pool size
		"tcp",                     // network type
		redisAddr,                 // Redis address from config
		"",                        // username (empty for default user)
		"",                        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	bountyRepo := repository.NewBountyRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)

	// Initialize AI service
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Initialize services
	authService := services.NewAuthService(userRepo)
	bountyService := services.NewBountyService(bountyRepo)
	submissionService := services.NewSubmissionService(submissionRepo, bountyRepo)
	statsService := services.NewStatsService(userRepo, bountyRepo, submissionRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	bountyHandler := handlers.NewBountyHandler(bountyService, aiService)
	submissionHandler := handlers.NewSubmissionHandler(submissionService)
	statsHandler := handlers.NewStatsHandler(statsService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Bounty Board API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
			auth.PATCH("/me", middleware.RequireAuth(), authHandler.UpdateProfile)
		}

		// Bounty routes (browsing is public, mutations require auth)
		bounties := api.Group("/bounties")
		{
			bounties.GET("", bountyHandler.ListBounties)
			bounties.GET("/:id", bountyHandler.GetBounty)
			bounties.POST("", middleware.RequireAuth(), bountyHandler.CreateBounty)
			bounties.PATCH("/:id", middleware.RequireAuth(), bountyHandler.UpdateBounty)
			bounties.POST("/generate", middleware.RequireAuth(), bountyHandler.GenerateBountyDraft)
		}

		// Submission routes
		submissions := api.Group("/submissions")
		{
			submissions.GET("", submissionHandler.ListSubmissions)
			submissions.POST("", middleware.RequireAuth(), submissionHandler.CreateSubmission)
			submissions.POST("/:id/review", middleware.RequireAuth(), submissionHandler.ReviewSubmission)
		}

		// Stats and leaderboard
		api.GET("/stats", middleware.RequireAuth(), statsHandler.GetStats)
		api.GET("/leaderboard", statsHandler.GetLeaderboard)
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ServerAddr)
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
