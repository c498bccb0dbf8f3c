package main

import (
	"log"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"checkout-service/internal/config"
	"checkout-service/internal/consumers"
	"checkout-service/internal/database"
	"checkout-service/internal/services"
	"checkout-service/internal/worker"
)

func main() {
	// Load env
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found in ../../.env, trying .env")
		if err := godotenv.Load(".env"); err != nil {
			log.Println("No .env file found, using system env")
		}
	}

	cfg := config.Load()

	// Connect DB
	database.Connect(cfg)
	db := database.DB

	productService := services.NewProductService(db, nil)
	reconciler := consumers.NewStockReconciler(db, productService)

	// Redis
	redisAddr := cfg.RedisURL
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisOpt := asynq.RedisClientOpt{Addr: redisAddr}

	log.Println("Starting Asynq Worker...")
	worker.StartWorker(redisOpt, reconciler)
}
