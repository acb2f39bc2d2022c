package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"resto-system/config"
	"resto-system/internal/database"
	"resto-system/internal/fulfillment"
	"resto-system/internal/handlers"
	"resto-system/internal/middleware"
	"resto-system/internal/reports"
	"resto-system/internal/stock"
)

func main() {
	cfg := config.LoadConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.NewConnection(cfg.DB.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	redisClient := config.NewRedisClient(cfg.Redis)

	ledger := stock.NewLedger(db)
	reportsService := reports.NewService(db, redisClient, logger)
	fulfillmentService := fulfillment.NewService(db, logger)

	supplierHandler := handlers.NewSupplierHandler(db, reportsService, logger)
	ingredientHandler := handlers.NewIngredientHandler(db, ledger, reportsService, logger)
	menuHandler := handlers.NewMenuHandler(db, reportsService, logger)
	orderHandler := handlers.NewOrderHandler(db, fulfillmentService, reportsService, logger)

	r := gin.New()
	r.Use(middleware.CORS())
	r.Use(middleware.RequestLogger(logger))
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit("100-M"))

	api := r.Group("/api/v1")
	{
		suppliers := api.Group("/suppliers")
		{
			suppliers.GET("", supplierHandler.List)
			suppliers.POST("", supplierHandler.Create)
			suppliers.GET("/low-rating", supplierHandler.LowRating)
			suppliers.GET("/:id", supplierHandler.Get)
			suppliers.PUT("/:id", supplierHandler.Update)
			suppliers.DELETE("/:id", supplierHandler.Delete)
			suppliers.POST("/:id/deactivate", supplierHandler.Deactivate)
		}

		ingredients := api.Group("/ingredients")
		{
			ingredients.GET("", ingredientHandler.List)
			ingredients.POST("", ingredientHandler.Create)
			ingredients.GET("/low-stock", ingredientHandler.LowStock)
			ingredients.GET("/:id", ingredientHandler.Get)
			ingredients.PUT("/:id", ingredientHandler.Update)
			ingredients.DELETE("/:id", ingredientHandler.Delete)
			ingredients.POST("/:id/adjust-stock", ingredientHandler.AdjustStock)
		}

		menuItems := api.Group("/menu-items")
		{
			menuItems.GET("", menuHandler.List)
			menuItems.POST("", menuHandler.Create)
			menuItems.GET("/unavailable", menuHandler.Unavailable)
			menuItems.GET("/:id", menuHandler.Get)
			menuItems.PUT("/:id", menuHandler.Update)
			menuItems.DELETE("/:id", menuHandler.Delete)
			menuItems.POST("/:id/toggle-availability", menuHandler.ToggleAvailability)
		}

		orders := api.Group("/orders")
		{
			orders.GET("", orderHandler.List)
			orders.POST("", orderHandler.Create)
			orders.GET("/pending", orderHandler.Pending)
			orders.GET("/daily-sales", orderHandler.DailySales)
			orders.GET("/:id", orderHandler.Get)
			orders.PUT("/:id", orderHandler.Update)
			orders.DELETE("/:id", orderHandler.Delete)
			orders.POST("/:id/update-status", orderHandler.UpdateStatus)
		}
	}

	r.GET("/health", healthCheckHandler(db, redisClient))

	addr := ":" + cfg.Server.Port
	log.Printf("Starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func healthCheckHandler(db *gorm.DB, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		status := "healthy"
		httpStatus := http.StatusOK
		services := gin.H{
			"database": "healthy",
			"redis":    "healthy",
		}

		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			services["database"] = "unavailable"
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
		}

		if err := redisClient.Ping(ctx).Err(); err != nil {
			services["redis"] = "unavailable"
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
		}

		c.JSON(httpStatus, gin.H{
			"status":    status,
			"services":  services,
			"timestamp": time.Now(),
		})
	}
}
