package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	StorageDriver string
	DatabaseURL   string
	EnableDBCheck bool
	SQLitePath    string

	// AdminAccountID is installed as the single admin when the ledger is created.
	AdminAccountID string

	JWTSecret string
	JWTIssuer string

	// RateLimit uses the limiter format "<limit>-<period>", e.g. "100-M".
	RateLimit          string
	CORSAllowedOrigins []string
	MetricsEnabled     bool
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("STORAGE_DRIVER", StorageMemory)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("SQLITE_PATH", "data/milk_ledger.db")
	v.SetDefault("ADMIN_ACCOUNT_ID", "admin")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ISSUER", "milk-supply-chain")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("METRICS_ENABLED", true)
	v.AutomaticEnv()

	cfg := &Config{
		Port:           v.GetString("PORT"),
		IsProduction:   v.GetBool("IS_PRODUCTION"),
		StorageDriver:  strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
		DatabaseURL:    v.GetString("PGSQL_URL"),
		EnableDBCheck:  v.GetBool("ENABLE_DB_CHECK"),
		SQLitePath:     v.GetString("SQLITE_PATH"),
		AdminAccountID: strings.TrimSpace(v.GetString("ADMIN_ACCOUNT_ID")),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTIssuer:      v.GetString("JWT_ISSUER"),
		RateLimit:      v.GetString("RATE_LIMIT"),
		MetricsEnabled: v.GetBool("METRICS_ENABLED"),
	}
	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StorageDriver {
	case StorageMemory:
		log.Println("Warning: STORAGE_DRIVER is memory. Ledger state is lost on restart.")
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORAGE_DRIVER is %s", StoragePostgres)
		}
	case StorageSQLite:
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("SQLITE_PATH is required when STORAGE_DRIVER is %s", StorageSQLite)
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q (want %s, %s or %s)",
			cfg.StorageDriver, StorageMemory, StoragePostgres, StorageSQLite)
	}

	if cfg.AdminAccountID == "" {
		return nil, fmt.Errorf("ADMIN_ACCOUNT_ID must not be empty")
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = defaultJWTSecret
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	if cfg.RateLimit == "" {
		log.Println("Warning: RATE_LIMIT is empty. Requests are not rate limited.")
	}

	return cfg, nil
}
