package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort     string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	RabbitURL      string
	LogLevel       string
	MusicSearchURL string
}

// Load reads .env if present, then the environment, with local defaults.
// RABBIT_URL may be empty; the service then runs without notifications.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBName:         getEnv("DB_NAME", "wedding"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		RabbitURL:      os.Getenv("RABBIT_URL"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		MusicSearchURL: os.Getenv("MUSIC_SEARCH_URL"),
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
