package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"checkout-service/internal/config"
	"checkout-service/internal/models"
)

var (
	DB          *gorm.DB
	RedisClient *redis.Client
)

func Connect(cfg *config.Config) {
	var err error

	// TranslateError lets the payment service detect transaction-number
	// collisions as gorm.ErrDuplicatedKey on both drivers.
	gormCfg := &gorm.Config{TranslateError: true}

	if cfg.DBHost == "" {
		log.Printf("DB_HOST not set, using sqlite at %s", cfg.SQLitePath)
		DB, err = gorm.Open(sqlite.Open(cfg.SQLitePath), gormCfg)
	} else {
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBName,
		)
		DB, err = gorm.Open(mysql.Open(dsn), gormCfg)
	}

	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	log.Println("Database connection established")
}

// ConnectRedis initializes the optional product cache. The service runs
// without it; callers must tolerate a nil client.
func ConnectRedis(cfg *config.Config) {
	if cfg.RedisURL == "" {
		log.Println("REDIS_URL not set, product cache disabled")
		return
	}

	// REDIS_URL is a host:port pair, same shape asynq consumes.
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unreachable, product cache disabled: %v", err)
		return
	}

	RedisClient = client
	log.Println("Redis connection established")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.Product{},
		&models.Transaction{},
		&models.ArchivedTransaction{},
		&models.ReconciliationAlert{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}
	log.Println("Database migration completed")
}
