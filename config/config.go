package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	Env              string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string
	PostgresTimeZone string
	JWTSecret        string
	MerchantID       string
	MerchantSecret   string
	Currency         string
	PaymentReturnURL string
	PaymentCancelURL string
	PaymentNotifyURL string
	KafkaBrokers     []string
	PaymentTopic     string
	AllowedOrigins   string
}

// Load reads configuration from the environment (and an optional .env file).
// Merchant credentials are resolved here once and threaded into the payment
// services explicitly; nothing reads them from the environment afterwards.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("APP_ENV", "development"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresTimeZone: getEnv("POSTGRES_TIMEZONE", "Asia/Colombo"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		MerchantID:       os.Getenv("PAYMENT_MERCHANT_ID"),
		MerchantSecret:   os.Getenv("PAYMENT_MERCHANT_SECRET"),
		Currency:         getEnv("PAYMENT_CURRENCY", "LKR"),
		PaymentReturnURL: getEnv("PAYMENT_RETURN_URL", "http://localhost:3000/payment/return"),
		PaymentCancelURL: getEnv("PAYMENT_CANCEL_URL", "http://localhost:3000/payment/cancel"),
		PaymentNotifyURL: getEnv("PAYMENT_NOTIFY_URL", "http://localhost:8080/payments/notify"),
		PaymentTopic:     getEnv("PAYMENT_EVENTS_TOPIC", "payment.events"),
		AllowedOrigins:   os.Getenv("ALLOWED_ORIGINS"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			cfg.KafkaBrokers = append(cfg.KafkaBrokers, strings.TrimSpace(b))
		}
	}

	if cfg.PostgresUser == "" || cfg.PostgresPassword == "" || cfg.PostgresDB == "" {
		return nil, fmt.Errorf("database config incomplete")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.MerchantID == "" || cfg.MerchantSecret == "" {
		return nil, fmt.Errorf("payment merchant credentials are required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
