package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"flight-catering-api/models"
	"flight-catering-api/pricing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to sign tokens — read from env or fallback
var JWTSecret = []byte(getEnvFromFile("JWT_SECRET_FILE", "JWT_SECRET", "flight_catering_super_secret_2024"))

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvFromFile reads a secret from a file path given in fileKey (docker
// secrets style), falling back to the plain env var.
func getEnvFromFile(fileKey, envKey, fallback string) string {
	if path := os.Getenv(fileKey); path != "" {
		if content, err := os.ReadFile(path); err == nil {
			return strings.TrimSpace(string(content))
		}
	}
	return getEnv(envKey, fallback)
}

// DeliveryFeeCents returns the flat delivery fee in cents. Location-independent
// per the business rule in effect.
func DeliveryFeeCents() int64 {
	if v := os.Getenv("DELIVERY_FEE_CENTS"); v != "" {
		if cents, err := strconv.ParseInt(v, 10, 64); err == nil && cents >= 0 {
			return cents
		}
		log.Printf("Ignoring invalid DELIVERY_FEE_CENTS=%q", v)
	}
	return pricing.DefaultDeliveryFeeCents
}

// VATRate returns the VAT rate in effect.
func VATRate() float64 {
	if v := os.Getenv("VAT_RATE"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil && rate >= 0 && rate < 1 {
			return rate
		}
		log.Printf("Ignoring invalid VAT_RATE=%q", v)
	}
	return pricing.DefaultVATRate
}

// RabbitMQURL returns the broker URL for order events, empty when events are
// disabled.
func RabbitMQURL() string {
	return os.Getenv("RABBITMQ_URL")
}

// OrderExchange is the exchange order events are published to.
func OrderExchange() string {
	return getEnv("ORDER_EXCHANGE", "catering_orders")
}

func InitDB() {
	dsn := getEnv("DB_PATH", "flight_catering.db")
	openDB(dsn)
}

// InitTestDB opens an isolated in-memory database, used by handler tests.
func InitTestDB() {
	openDB("file::memory:?cache=shared")
}

func openDB(dsn string) {
	var err error
	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate all models
	err = DB.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.MenuItemPrice{},
		&models.Order{},
		&models.OrderLineItem{},
		&models.OrderStatusHistory{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("✅ Database connected and migrated successfully")
}
