package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DATABASE_URL        string
	DATABASE_KEY        string
	LOCAL_STORE_PATH    string
	HTTP_ADDR           string
	LOG_LEVEL           string
	KAFKA_ADDRESS       string
	JWT_SECRET          string
	ADMIN_USERNAME      string
	ADMIN_PASSWORD_HASH string
	FetchTimeout        time.Duration
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		DATABASE_URL:        os.Getenv("DATABASE_URL"),
		DATABASE_KEY:        os.Getenv("DATABASE_KEY"),
		LOCAL_STORE_PATH:    getDefault("LOCAL_STORE_PATH", "storefront.db"),
		HTTP_ADDR:           getDefault("HTTP_ADDR", ":8080"),
		LOG_LEVEL:           getDefault("LOG_LEVEL", "info"),
		KAFKA_ADDRESS:       os.Getenv("KAFKA_ADDRESS"),
		JWT_SECRET:          os.Getenv("JWT_SECRET"),
		ADMIN_USERNAME:      getDefault("ADMIN_USERNAME", "admin"),
		ADMIN_PASSWORD_HASH: os.Getenv("ADMIN_PASSWORD_HASH"),
		FetchTimeout:        fetchTimeout(),
	}

	return config, nil
}

// RemoteConfigured reports whether both values the remote gateway needs
// are present. When false the whole session runs on the local store.
func (c *Config) RemoteConfigured() bool {
	return c.DATABASE_URL != "" && c.DATABASE_KEY != ""
}

func getDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func fetchTimeout() time.Duration {
	const def = 5 * time.Second
	raw := os.Getenv("FETCH_TIMEOUT")
	if raw == "" {
		return def
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return def
	}
	return time.Duration(secs) * time.Second
}
