package main

import (
	"log"
	"net/http"
	"os"

	"flight-catering-api/config"
	"flight-catering-api/events"
	"flight-catering-api/handlers"
	"flight-catering-api/middleware"
	"flight-catering-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database
	config.InitDB()

	// Order event publisher (disabled when RABBITMQ_URL is unset)
	publisher, err := events.NewPublisher(config.RabbitMQURL(), config.OrderExchange())
	if err != nil {
		log.Printf("⚠️  Order events disabled, broker unreachable: %v", err)
	}
	defer publisher.Close()
	handlers.SetPublisher(publisher)

	// Custom binding rules (kitchen location)
	routes.RegisterValidators()

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// Prometheus request metrics
	r.Use(middleware.PrometheusMiddleware())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Flight Catering Order API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":   "✈️ Welcome to the Flight Catering Order API",
			"docs":      "/api/state-machine",
			"health":    "/health",
			"locations": []string{"thessaloniki", "mykonos"},
			"roles":     []string{"customer", "kitchen", "admin"},
		})
	})

	// Register all routes
	routes.SetupRoutes(r)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
