package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shubhshah23/emesa-digital/config"
	"github.com/shubhshah23/emesa-digital/controllers"
	"github.com/shubhshah23/emesa-digital/middleware"
	"github.com/shubhshah23/emesa-digital/models"
	"github.com/shubhshah23/emesa-digital/services"
)

func main() {
	// Basic logging
	log.Println("Starting Emesa Digital manufacturing API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.Supplier{},
		&models.Machine{},
		&models.Order{},
		&models.Message{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize external collaborators
	s3Service, err := services.InitS3Service()
	if err != nil {
		log.Fatalf("Failed to initialize S3 service: %v", err)
	}
	services.InitArtifactService(s3Service)
	services.InitMachineRegistry(db)

	// Initialize Gin router
	router := gin.Default()

	// CORS for the dashboard frontends
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Authenticated routes
		authorized := v1.Group("")
		authorized.Use(middleware.EnsureValidToken(cfg))
		{
			// User profile bootstrap
			authorized.POST("/users", controllers.CreateUser)
			authorized.GET("/users/me", controllers.GetMyProfile)
			authorized.PUT("/users/me", controllers.UpdateMyProfile)

			// Orders
			authorized.POST("/orders", controllers.CreateOrder)
			authorized.GET("/orders", controllers.ListOrders)
			authorized.GET("/orders/:id", controllers.GetOrder)

			// Negotiation log
			authorized.GET("/orders/:id/messages", controllers.ListMessages)
			authorized.POST("/orders/:id/messages", controllers.SendMessage)
			authorized.POST("/orders/:id/counter-offer", controllers.SendCounterOffer)
			authorized.POST("/orders/:id/accept-offer", controllers.AcceptOffer)

			// Lifecycle actions
			authorized.POST("/orders/:id/approve", controllers.ApproveOrder)
			authorized.POST("/orders/:id/reject", controllers.RejectOrder)
			authorized.POST("/orders/:id/confirm-payment", controllers.ConfirmPayment)
			authorized.POST("/orders/:id/assign-machine", controllers.AssignMachine)
			authorized.POST("/orders/:id/start-production", controllers.StartProduction)
			authorized.POST("/orders/:id/complete", controllers.CompleteOrder)

			// Machine registry (read only)
			authorized.GET("/machines", controllers.ListMachines)

			// Design artifacts
			authorized.POST("/uploads/artifacts", controllers.UploadArtifact)
			authorized.GET("/uploads/artifacts/url", controllers.GetArtifactURL)
		}
	}

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Emesa Digital API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
