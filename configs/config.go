package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMongo  = "mongo"
	DriverBadger = "badger"
)

type Config struct {
	Port            string
	MongoURI        string
	DBName          string
	BookCollection  string
	StoreDriver     string
	BadgerPath      string
	AuditEnabled    bool
	LogLevel        string
	LogFormat       string
	ConnectTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func LoadConfig() (Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:           getEnv("PORT", "5555"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:         getEnv("DB_NAME", "books-collection"),
		BookCollection: getEnv("BOOK_COLLECTION", "books"),
		StoreDriver:    getEnv("STORE_DRIVER", DriverMongo),
		BadgerPath:     getEnv("BADGER_PATH", "./data/badger"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
	}

	if cfg.StoreDriver != DriverMongo && cfg.StoreDriver != DriverBadger {
		return Config{}, fmt.Errorf("invalid STORE_DRIVER %q: want %q or %q", cfg.StoreDriver, DriverMongo, DriverBadger)
	}

	var err error
	if _, err = strconv.Atoi(cfg.Port); err != nil {
		return Config{}, fmt.Errorf("invalid PORT: %w", err)
	}

	cfg.AuditEnabled, err = strconv.ParseBool(getEnv("AUDIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid AUDIT_ENABLED: %w", err)
	}

	if cfg.ConnectTimeout, err = time.ParseDuration(getEnv("CONNECT_TIMEOUT", "10s")); err != nil {
		return Config{}, fmt.Errorf("invalid CONNECT_TIMEOUT: %w", err)
	}
	if cfg.ShutdownTimeout, err = time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s")); err != nil {
		return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
