package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the API server
type Config struct {
	Port     string
	MongoURI string
	MongoDB  string
	RedisURL string

	// Shared secret used to verify bearer tokens issued by the identity provider
	JWTSecret string

	LogLevel     string
	AllowOrigins string
}

// Variables that have no usable default
var requiredEnvs = []string{
	"MONGODB_URI",
	"REDIS_URL",
	"JWT_SECRET",
}

// Load reads configuration from the environment, optionally seeded from a .env file
func Load() (*Config, error) {
	// A missing .env file is fine; real deployments set the environment directly
	_ = godotenv.Load()

	for _, env := range requiredEnvs {
		if os.Getenv(env) == "" {
			return nil, fmt.Errorf("missing required environment variable: %s", env)
		}
	}

	return &Config{
		Port:         getEnv("PORT", "3000"),
		MongoURI:     os.Getenv("MONGODB_URI"),
		MongoDB:      getEnv("MONGODB_DB", "nexus"),
		RedisURL:     os.Getenv("REDIS_URL"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		AllowOrigins: getEnv("ALLOW_ORIGINS", "*"),
	}, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
