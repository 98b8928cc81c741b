package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"taskhub/internal/config"
	"taskhub/internal/database"
	"taskhub/internal/handlers"
	"taskhub/internal/logger"
	"taskhub/internal/middleware"
	"taskhub/internal/models"
	"taskhub/internal/scheduler"
	"taskhub/internal/services"
	"taskhub/internal/validator"

	_ "taskhub/internal/docs" // Import swagger docs
)

// @title           Taskhub API
// @version         1.0
// @description     Taskhub is a task-management application: users register, authenticate, and manage personal to-do items; administrators manage user accounts.

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager. Failure here is fatal by design.
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	auditService := services.NewAuditService()
	userService := services.NewUserService(db, auditService)
	taskService := services.NewTaskService(db, auditService)
	adminService := services.NewAdminService(db, auditService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Task routes: any authenticated, active user
	tasks := api.Group("/tasks")
	tasks.Use(middleware.Auth(userService))
	tasks.GET("", taskHandler.GetTasks)
	tasks.POST("", taskHandler.CreateTask)
	tasks.GET("/dashboard-data", taskHandler.GetDashboardData)
	tasks.PUT("/:id", taskHandler.UpdateTask)
	tasks.DELETE("/:id", taskHandler.DeleteTask)

	// Admin routes: admin role only
	admin := api.Group("/admin")
	admin.Use(middleware.Auth(userService), middleware.RequireRoles(models.RoleAdmin))
	admin.GET("/users", adminHandler.GetAllUsers)
	admin.POST("/users", adminHandler.CreateUserAccount)
	admin.PUT("/users/deactivate/:id", adminHandler.DeactivateUserAccount)
	admin.PUT("/users/activate/:id", adminHandler.ActivateUserAccount)

	// Background overdue sweep
	if appConfig.OverdueCron != "" {
		cronRunner, err := scheduler.Start(taskService, appConfig.OverdueCron)
		if err != nil {
			return fmt.Errorf("failed to start overdue scheduler: %w", err)
		}
		defer cronRunner.Stop()
	}

	log.Infof("Starting Taskhub backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
