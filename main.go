package main

import (
	"log"
	"time"

	"checkout-service/internal/config"
	"checkout-service/internal/database"
	"checkout-service/internal/handlers"
	"checkout-service/internal/services"
	"checkout-service/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found in current directory, trying parent")
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found, using system environment variables")
		}
	}

	cfg := config.Load()
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	// Initialize Database
	database.Connect(cfg)
	database.Migrate()
	database.ConnectRedis(cfg)
	db := database.DB

	// Gateway client gets its keys and URLs once, at construction.
	gatewayCfg := config.LoadGateway()
	if gatewayCfg.BaseUrl == "" {
		log.Println("WARNING: PAYMENT_GATEWAY_BASE_URL not set, payments will fail")
	}
	common.SetHTTPTimeout(time.Duration(gatewayCfg.TimeoutSeconds) * time.Second)
	gatewayService := services.NewGatewayService(gatewayCfg)

	productService := services.NewProductService(db, database.RedisClient)

	// Redis/Asynq Client for the stock reconciliation alert queue
	var asynqClient *asynq.Client
	if cfg.RedisURL != "" {
		asynqClient = asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisURL})
		defer asynqClient.Close()
	} else {
		log.Println("REDIS_URL not set, reconciliation alerts stay local")
	}

	paymentService := services.NewPaymentService(db, productService, gatewayService, asynqClient)

	// Handlers
	handlers.RegisterValidators()
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	productHandler := handlers.NewProductHandler(productService)

	// Initialize Gin
	r := gin.Default()

	// Ping endpoint
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Welcome to the checkout service",
		})
	})

	// Payment Routes
	r.POST("/payments/process", paymentHandler.ProcessPayment)
	r.GET("/payments/status/:transactionNumber", paymentHandler.GetTransactionStatus)

	// Catalog Routes
	r.GET("/products", productHandler.List)
	r.GET("/products/:id", productHandler.Get)
	r.POST("/products", productHandler.Create)
	r.PUT("/products/:id", productHandler.Update)
	r.DELETE("/products/:id", productHandler.Delete)

	// Start Cron Schedulers
	archiveService := services.NewTransactionArchiveService(db)
	archiveService.StartScheduler()

	log.Printf("HTTP Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
