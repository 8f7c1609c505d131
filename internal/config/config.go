// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server Configuration
	GinMode       string        `mapstructure:"GIN_MODE"`
	ServerHost    string        `mapstructure:"SERVER_HOST"`
	ServerPort    string        `mapstructure:"SERVER_PORT"`
	ServerTimeout time.Duration `mapstructure:"SERVER_TIMEOUT_SECONDS"`

	// Database Configuration
	DBHost            string        `mapstructure:"DB_HOST"`
	DBPort            string        `mapstructure:"DB_PORT"`
	DBUser            string        `mapstructure:"DB_USER"`
	DBPassword        string        `mapstructure:"DB_PASSWORD"`
	DBName            string        `mapstructure:"DB_NAME"`
	DBSSLMode         string        `mapstructure:"DB_SSL_MODE"`
	DBTimezone        string        `mapstructure:"DB_TIMEZONE"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME_MINUTES"`
	DBSource          string        `mapstructure:"DB_SOURCE"`

	// Logging Configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Firebase Configuration
	FirebaseServiceAccountKeyPath string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_KEY_PATH"`
	FirebaseProjectID             string `mapstructure:"FIREBASE_PROJECT_ID"`
	FirebaseWebAPIKey             string `mapstructure:"FIREBASE_WEB_API_KEY"`

	// Google Maps / Geocoding Configuration
	GoogleMapsAPIKey string `mapstructure:"GOOGLE_MAPS_API_KEY"`

	// Address Editing Sessions
	AddressSessionTTL         time.Duration `mapstructure:"ADDRESS_SESSION_TTL_MINUTES"`
	AddressSessionSweepSpec   string        `mapstructure:"ADDRESS_SESSION_SWEEP_SCHEDULE"`
	GeolocationSeedTimeout    time.Duration `mapstructure:"GEOLOCATION_SEED_TIMEOUT_SECONDS"`
	DefaultMapCenterLatitude  float64       `mapstructure:"DEFAULT_MAP_CENTER_LATITUDE"`
	DefaultMapCenterLongitude float64       `mapstructure:"DEFAULT_MAP_CENTER_LONGITUDE"`

	// Company Directory
	SeedCompanies bool `mapstructure:"SEED_COMPANIES"`
}

// Load attempts to load configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()

	// Set default values
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "company_portal_db")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 60)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	// Firebase
	v.SetDefault("FIREBASE_PROJECT_ID", "") // Optional, SDK can infer from credentials
	v.SetDefault("FIREBASE_SERVICE_ACCOUNT_KEY_PATH", "")
	v.SetDefault("FIREBASE_WEB_API_KEY", "")

	// Google Maps
	v.SetDefault("GOOGLE_MAPS_API_KEY", "")

	// Address editing sessions
	v.SetDefault("ADDRESS_SESSION_TTL_MINUTES", 30)
	v.SetDefault("ADDRESS_SESSION_SWEEP_SCHEDULE", "@every 10m")
	v.SetDefault("GEOLOCATION_SEED_TIMEOUT_SECONDS", 10)
	// Map center used when no device location is available (New York City).
	v.SetDefault("DEFAULT_MAP_CENTER_LATITUDE", 40.7128)
	v.SetDefault("DEFAULT_MAP_CENTER_LONGITUDE", -74.0060)

	v.SetDefault("SEED_COMPANIES", true)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	// Convert duration fields
	cfg.ServerTimeout = time.Duration(v.GetInt("SERVER_TIMEOUT_SECONDS")) * time.Second
	cfg.DBConnMaxLifetime = time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME_MINUTES")) * time.Minute
	cfg.AddressSessionTTL = time.Duration(v.GetInt("ADDRESS_SESSION_TTL_MINUTES")) * time.Minute
	cfg.GeolocationSeedTimeout = time.Duration(v.GetInt("GEOLOCATION_SEED_TIMEOUT_SECONDS")) * time.Second

	// Construct the GORM DSN from the individual DB_* params.
	cfg.DBSource = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode, cfg.DBTimezone)

	// Basic validation for critical configs. The process must not come up
	// without credentials for the two external services it fronts.
	if strings.TrimSpace(cfg.FirebaseServiceAccountKeyPath) == "" {
		return nil, fmt.Errorf("FATAL: FIREBASE_SERVICE_ACCOUNT_KEY_PATH is not set. This is required for Firebase Admin SDK initialization")
	}
	if _, err := os.Stat(cfg.FirebaseServiceAccountKeyPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("FATAL: Firebase service account key file specified in FIREBASE_SERVICE_ACCOUNT_KEY_PATH (%s) not found", cfg.FirebaseServiceAccountKeyPath)
	}
	if strings.TrimSpace(cfg.FirebaseWebAPIKey) == "" {
		return nil, fmt.Errorf("FATAL: FIREBASE_WEB_API_KEY is not set. This is required for email/password sign-in")
	}
	if strings.TrimSpace(cfg.GoogleMapsAPIKey) == "" {
		return nil, fmt.Errorf("FATAL: GOOGLE_MAPS_API_KEY is not set. This is required for address geocoding")
	}

	return &cfg, nil
}
