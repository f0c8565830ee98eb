package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backend selectors. Both variants expose identical behaviour; the
// in-memory one keeps everything in process and loses it on shutdown.
const (
	StorageBackendPostgres = "postgres"
	StorageBackendMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	StorageBackend string
	RateLimit      string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("STORAGE_BACKEND", StorageBackendPostgres)
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:    viper.GetString("PGSQL_URL"),
		Port:           viper.GetString("PORT"),
		IsProduction:   viper.GetBool("IS_PRODUCTION"),
		StorageBackend: viper.GetString("STORAGE_BACKEND"),
		RateLimit:      viper.GetString("RATE_LIMIT"),
	}

	switch cfg.StorageBackend {
	case StorageBackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL must be set when STORAGE_BACKEND is %q", StorageBackendPostgres)
		}
	case StorageBackendMemory:
		if cfg.DatabaseURL != "" {
			log.Println("Warning: PGSQL_URL is set but STORAGE_BACKEND is memory; the database will not be used.")
		}
	default:
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q: must be %q or %q",
			cfg.StorageBackend, StorageBackendPostgres, StorageBackendMemory)
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	return cfg, nil
}
