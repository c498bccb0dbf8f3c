package main

import (
	"log"
	"os"

	"checkout-service/internal/config"
	"checkout-service/internal/database"
	"checkout-service/internal/models"

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

	// Initialize Database
	database.Connect(cfg)

	// Run Migrations
	log.Println("Running database migrations...")
	database.Migrate()

	if os.Getenv("SEED") == "true" {
		seedProducts()
	}

	log.Println("Migrations completed successfully!")
}

func seedProducts() {
	log.Println("Seeding sample products...")

	sampleProducts := []models.Product{
		{
			Name:        "iPhone 15 Pro",
			Description: "El iPhone más avanzado con chip A17 Pro y cámara de 48MP",
			Price:       4500000,
			ImageUrl:    "https://via.placeholder.com/300x300?text=iPhone+15+Pro",
			Stock:       10,
			IsActive:    true,
		},
		{
			Name:        "Samsung Galaxy S24 Ultra",
			Description: "Smartphone premium con S Pen y cámara de 200MP",
			Price:       4200000,
			ImageUrl:    "https://via.placeholder.com/300x300?text=Galaxy+S24+Ultra",
			Stock:       8,
			IsActive:    true,
		},
		{
			Name:        "MacBook Air M3",
			Description: "Laptop ultradelgada con chip M3 y pantalla Liquid Retina",
			Price:       6500000,
			ImageUrl:    "https://via.placeholder.com/300x300?text=MacBook+Air+M3",
			Stock:       5,
			IsActive:    true,
		},
		{
			Name:        "AirPods Pro 2",
			Description: "Auriculares inalámbricos con cancelación de ruido activa",
			Price:       1200000,
			ImageUrl:    "https://via.placeholder.com/300x300?text=AirPods+Pro+2",
			Stock:       15,
			IsActive:    true,
		},
		{
			Name:        "Apple Watch Series 9",
			Description: "Reloj inteligente con GPS y monitor de salud avanzado",
			Price:       2800000,
			ImageUrl:    "https://via.placeholder.com/300x300?text=Apple+Watch+9",
			Stock:       12,
			IsActive:    true,
		},
	}

	for _, product := range sampleProducts {
		result := database.DB.Where("name = ?", product.Name).FirstOrCreate(&product)
		if result.Error != nil {
			log.Printf("Error creating product %s: %v", product.Name, result.Error)
			continue
		}
		log.Printf("Created product: %s", product.Name)
	}
}
