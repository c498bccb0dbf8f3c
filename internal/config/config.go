package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port     string
	GinMode  string
	RedisURL string

	// Database configuration. When DB_HOST is empty the service falls back
	// to a local sqlite file, which keeps development setup to zero steps.
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	SQLitePath string
}

// GatewayConfig carries everything the payment gateway client needs. It is
// built once at startup and injected into the client constructor; nothing
// inside orchestration reads the environment.
type GatewayConfig struct {
	BaseUrl         string
	PublicKey       string
	PrivateKey      string
	IntegrityKey    string
	Currency        string
	Installments    int
	PaymentSourceId int
	TimeoutSeconds  int
}

func Load() *Config {
	return &Config{
		Port:       getEnv("PORT", "8080"),
		GinMode:    getEnv("GIN_MODE", ""),
		RedisURL:   getEnv("REDIS_URL", ""),
		DBUser:     getEnv("DB_USER", ""),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBHost:     getEnv("DB_HOST", ""),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBName:     getEnv("DB_NAME", "checkout"),
		SQLitePath: getEnv("SQLITE_PATH", "checkout.db"),
	}
}

func LoadGateway() GatewayConfig {
	return GatewayConfig{
		BaseUrl:         getEnv("PAYMENT_GATEWAY_BASE_URL", ""),
		PublicKey:       getEnv("PAYMENT_GATEWAY_PUBLIC_KEY", ""),
		PrivateKey:      getEnv("PAYMENT_GATEWAY_PRIVATE_KEY", ""),
		IntegrityKey:    getEnv("PAYMENT_GATEWAY_INTEGRITY_KEY", ""),
		Currency:        getEnv("PAYMENT_GATEWAY_CURRENCY", "COP"),
		Installments:    getEnvInt("PAYMENT_GATEWAY_INSTALLMENTS", 1),
		PaymentSourceId: getEnvInt("PAYMENT_GATEWAY_SOURCE_ID", 1),
		TimeoutSeconds:  getEnvInt("GATEWAY_TIMEOUT_SECONDS", 15),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
