package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment. It is built
// once at startup and handed to the services that need it, so nothing else in
// the codebase touches os.Getenv.
type Config struct {
	Port            string
	JWTSecret       string
	MongoURI        string
	DBName          string
	FrontendBaseURL string

	// SMTP settings are optional; assignment notifications are skipped
	// when SMTPHost is empty.
	SMTPHost      string
	SMTPPort      string
	EmailFrom     string
	EmailPassword string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default env")
	}

	cfg := &Config{
		Port:            getEnv("PORT", "5000"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		MongoURI:        os.Getenv("MONGODB_URI"),
		DBName:          getEnv("DB_NAME", "task_manager"),
		FrontendBaseURL: getEnv("FRONTEND_BASE_URL", "http://localhost:3000"),
		SMTPHost:        os.Getenv("SMTP_HOST"),
		SMTPPort:        getEnv("SMTP_PORT", "587"),
		EmailFrom:       os.Getenv("EMAIL_FROM"),
		EmailPassword:   os.Getenv("EMAIL_PASSWORD"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}
	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGODB_URI not set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
