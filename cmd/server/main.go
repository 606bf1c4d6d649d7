package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hsaito/project-tracking-api/internal/auth"
	"github.com/hsaito/project-tracking-api/internal/config"
	"github.com/hsaito/project-tracking-api/internal/database"
	"github.com/hsaito/project-tracking-api/internal/handlers"
	"github.com/hsaito/project-tracking-api/internal/middleware"
	"github.com/hsaito/project-tracking-api/internal/repository"
	"github.com/hsaito/project-tracking-api/internal/services"
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

	db := database.GetDB()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	tokenRepo := repository.NewTokenRepository(db)

	// Purge blacklist rows for refresh tokens that have expired anyway
	if err := tokenRepo.DeleteExpired(time.Now()); err != nil {
		log.Printf("Failed to purge expired blacklist entries: %v", err)
	}

	// Initialize services
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authService := services.NewAuthService(userRepo, tokenRepo, tokens)
	projectService := services.NewProjectService(projectRepo)
	taskService := services.NewTaskService(taskRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Project Tracking API is running",
		})
	})

	// Auth routes
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.GET("/me", middleware.RequireAuth(tokens), authHandler.GetCurrentUser)
	}

	// Project routes (protected, owner-scoped)
	projects := r.Group("/projects")
	projects.Use(middleware.RequireAuth(tokens))
	{
		projects.GET("", projectHandler.ListProjects)
		projects.POST("", projectHandler.CreateProject)

		detail := projects.Group("/:project_id")
		detail.Use(middleware.RequireProjectAccess())
		{
			detail.GET("", projectHandler.GetProject)
			detail.PUT("", projectHandler.UpdateProject)
			detail.PATCH("", projectHandler.UpdateProject)
			detail.DELETE("", projectHandler.DeleteProject)

			// Task routes, reachable only through an owned project
			tasks := detail.Group("/tasks")
			{
				tasks.GET("", taskHandler.ListTasks)
				tasks.POST("", taskHandler.CreateTask)

				taskDetail := tasks.Group("/:id")
				taskDetail.Use(middleware.RequireTaskAccess())
				{
					taskDetail.GET("", taskHandler.GetTask)
					taskDetail.PUT("", taskHandler.UpdateTask)
					taskDetail.PATCH("", taskHandler.UpdateTask)
					taskDetail.DELETE("", taskHandler.DeleteTask)
				}
			}
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
