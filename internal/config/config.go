package config

import (
	"os"
	"time"
)

type Config struct {
	Addr         string
	DatabaseURL  string
	RedisAddr    string
	JWTSecret    string
	AdminEmail   string
	ChatAPIKey   string
	ChatAPIURL   string
	ChatModel    string
	PaymentDelay time.Duration
}

func Load() Config {
	cfg := Config{
		Addr:         getenv("CARHUB_ADDR", ":8080"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		AdminEmail:   os.Getenv("ADMIN_EMAIL"),
		ChatAPIKey:   os.Getenv("CHAT_API_KEY"),
		ChatAPIURL:   getenv("CHAT_API_URL", "https://api.openai.com/v1/chat/completions"),
		ChatModel:    getenv("CHAT_MODEL", "gpt-4o-mini"),
		PaymentDelay: 1500 * time.Millisecond,
	}

	if raw := os.Getenv("PAYMENT_DELAY_MS"); raw != "" {
		if d, err := time.ParseDuration(raw + "ms"); err == nil {
			cfg.PaymentDelay = d
		}
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
