package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/czdteam-copilot/LuckyDraw/internal/auth"
	"github.com/czdteam-copilot/LuckyDraw/internal/config"
	"github.com/czdteam-copilot/LuckyDraw/internal/database"
	"github.com/czdteam-copilot/LuckyDraw/internal/handlers"
	"github.com/czdteam-copilot/LuckyDraw/internal/jobs"
	"github.com/czdteam-copilot/LuckyDraw/internal/repository"
	"github.com/czdteam-copilot/LuckyDraw/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize JWT
	auth.InitJWT(cfg.App.JWTSecret)

	// Connect to database
	db, err := database.Connect(cfg.GetDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repository
	repo := repository.NewRepository(db)

	// Initialize services
	allocator := services.NewPoolAllocator()
	drawService := services.NewDrawService(db, allocator, cfg.App.DrawMaxRetries)
	winnerService := services.NewWinnerService(repo)

	// Initialize handlers
	drawHandler := handlers.NewDrawHandler(drawService, repo)
	winnerHandler := handlers.NewWinnerHandler(winnerService)
	adminHandler := handlers.NewAdminHandler(winnerService, cfg.App.AdminPassword)

	// Start pool monitor job (logs remaining stock every 10 minutes)
	monitorJob := jobs.NewPoolMonitorJob(db)
	monitorJob.Start(10 * time.Minute)
	log.Println("Pool monitor job started")

	// Set up Gin router
	router := gin.Default()

	// CORS middleware
	allowedOrigins := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	// Add additional frontend URL from environment if provided
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Public routes
	router.POST("/api/draw", drawHandler.Draw)
	router.GET("/api/prizes", drawHandler.GetPrizes)
	router.POST("/api/winners", winnerHandler.AttachPayout)
	router.POST("/api/admin/login", adminHandler.Login)

	// Admin routes (operator only)
	admin := router.Group("/api/admin")
	admin.Use(auth.OperatorMiddleware())
	{
		admin.GET("/winners", adminHandler.GetWinners)
		admin.PATCH("/winners/:id/paid", adminHandler.SetPaid)
		admin.GET("/stats", adminHandler.GetStats)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		log.Printf("Health check: http://localhost:%s/health", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
