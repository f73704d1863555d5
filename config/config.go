package config

import (
	"fmt"
	"os"
)

// Config holds all environment-backed settings, loaded once at startup.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	ClientURL   string

	// Payment gateway (hosted checkout)
	PaymentAPIURL        string
	PaymentSecretKey     string
	PaymentWebhookSecret string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		ClientURL:            getEnv("CLIENT_URL", "http://localhost:3000"),
		PaymentAPIURL:        getEnv("PAYMENT_API_URL", "https://api.payment-gateway.test/v1"),
		PaymentSecretKey:     os.Getenv("PAYMENT_SECRET_KEY"),
		PaymentWebhookSecret: os.Getenv("PAYMENT_WEBHOOK_SECRET"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	if cfg.PaymentSecretKey == "" || cfg.PaymentWebhookSecret == "" {
		return nil, fmt.Errorf("payment gateway configuration missing")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
