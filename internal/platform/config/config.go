package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers understood by STORAGE_DRIVER.
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	StorageDriver string

	DatabaseURL    string
	EnableDBCheck  bool
	MigrationsPath string

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string

	SQLitePath string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	OTPTTL         time.Duration
	OTPMaxAttempts int

	// Location decides which calendar day an expense falls on for streaks.
	Location *time.Location

	PosthogAPIKey   string
	PosthogEndpoint string

	CORSAllowedOrigins []string
	AuthRateLimit      string

	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("STORAGE_DRIVER", StorageMemory)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_KEY_PREFIX", "et:")
	viper.SetDefault("SQLITE_PATH", "expense_tracker.db")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_EXPIRY_DURATION", "720h")
	viper.SetDefault("JWT_ISSUER", "expense-tracker-app")
	viper.SetDefault("OTP_TTL", "5m")
	viper.SetDefault("OTP_MAX_ATTEMPTS", 5)
	viper.SetDefault("APP_TIMEZONE", "UTC")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("AUTH_RATE_LIMIT", "5-M")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")

	viper.AutomaticEnv()

	cfg := &Config{
		Port:            viper.GetString("PORT"),
		IsProduction:    viper.GetBool("IS_PRODUCTION"),
		StorageDriver:   strings.ToLower(strings.TrimSpace(viper.GetString("STORAGE_DRIVER"))),
		DatabaseURL:     viper.GetString("PGSQL_URL"),
		EnableDBCheck:   viper.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:  viper.GetString("MIGRATIONS_PATH"),
		RedisAddr:       viper.GetString("REDIS_ADDR"),
		RedisPassword:   viper.GetString("REDIS_PASSWORD"),
		RedisDB:         viper.GetInt("REDIS_DB"),
		RedisKeyPrefix:  viper.GetString("REDIS_KEY_PREFIX"),
		SQLitePath:      viper.GetString("SQLITE_PATH"),
		JWTSecret:       viper.GetString("JWT_SECRET"),
		JWTIssuer:       viper.GetString("JWT_ISSUER"),
		OTPMaxAttempts:  viper.GetInt("OTP_MAX_ATTEMPTS"),
		PosthogAPIKey:   viper.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint: viper.GetString("POSTHOG_ENDPOINT"),
		AuthRateLimit:   viper.GetString("AUTH_RATE_LIMIT"),
		LogLevel:        strings.ToLower(viper.GetString("LOG_LEVEL")),
		LogFormat:       strings.ToLower(viper.GetString("LOG_FORMAT")),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StorageDriver {
	case StorageMemory, StorageRedis, StorageSQLite:
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("STORAGE_DRIVER=postgres requires PGSQL_URL")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	// Load JWT Expiry Duration (e.g., "60m", "720h")
	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil || jwtExpiryDuration <= 0 {
		jwtExpiryDuration = 30 * 24 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	otpTTLStr := viper.GetString("OTP_TTL")
	otpTTL, err := time.ParseDuration(otpTTLStr)
	if err != nil || otpTTL <= 0 {
		otpTTL = 5 * time.Minute
		log.Printf("Warning: Invalid value for OTP_TTL ('%s'). Defaulting to %s.\n", otpTTLStr, otpTTL.String())
	}
	cfg.OTPTTL = otpTTL

	if cfg.OTPMaxAttempts <= 0 {
		cfg.OTPMaxAttempts = 5
		log.Printf("Warning: OTP_MAX_ATTEMPTS must be positive. Defaulting to %d.\n", cfg.OTPMaxAttempts)
	}

	tz := viper.GetString("APP_TIMEZONE")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", tz, err)
	}
	cfg.Location = loc

	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
