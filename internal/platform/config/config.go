package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Defaults applied when the environment leaves a setting unset or invalid.
const (
	DefaultPort             = "8080"
	DefaultRateProviderURL  = "https://api.frankfurter.app"
	DefaultRateCacheTTL     = time.Hour
	DefaultRateFetchTimeout = 5 * time.Second
	DefaultRateProviderRPS  = 5.0
	DefaultCurrency         = "THB"
	DefaultUpcomingDays     = 7
	DefaultUrgentDays       = 7
	DefaultRateLimit        = "100-M"
	DefaultRollInterval     = time.Hour
	DefaultMigrationsPath   = "file://migrations"
	defaultJWTSecret        = "a-very-secret-key-should-be-longer-and-random"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	MigrationsPath string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	JWTSecret      string

	// Exchange rate provider
	RateProviderURL  string
	RateCacheTTL     time.Duration
	RateFetchTimeout time.Duration
	RateProviderRPS  float64

	DefaultCurrency string
	UpcomingDays    int
	UrgentDays      int

	CORSAllowedOrigins []string
	RateLimit          string // ulule limiter format, e.g. "100-M"
	PostHogAPIKey      string
	RollInterval       time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("MIGRATIONS_PATH", DefaultMigrationsPath)
	v.SetDefault("PORT", DefaultPort)
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("RATE_PROVIDER_URL", DefaultRateProviderURL)
	v.SetDefault("RATE_CACHE_TTL", DefaultRateCacheTTL.String())
	v.SetDefault("RATE_FETCH_TIMEOUT", DefaultRateFetchTimeout.String())
	v.SetDefault("RATE_PROVIDER_RPS", DefaultRateProviderRPS)
	v.SetDefault("DEFAULT_CURRENCY", DefaultCurrency)
	v.SetDefault("UPCOMING_DAYS", DefaultUpcomingDays)
	v.SetDefault("URGENT_DAYS", DefaultUrgentDays)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", DefaultRateLimit)
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("ROLL_INTERVAL", DefaultRollInterval.String())

	v.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	cfg.MigrationsPath = v.GetString("MIGRATIONS_PATH")

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = DefaultPort
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.IsProduction = v.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = v.GetBool("ENABLE_DB_CHECK")

	cfg.RateProviderURL = strings.TrimRight(v.GetString("RATE_PROVIDER_URL"), "/")
	if cfg.RateProviderURL == "" {
		cfg.RateProviderURL = DefaultRateProviderURL
	}
	cfg.RateCacheTTL = durationOrDefault(v, "RATE_CACHE_TTL", DefaultRateCacheTTL)
	cfg.RateFetchTimeout = durationOrDefault(v, "RATE_FETCH_TIMEOUT", DefaultRateFetchTimeout)
	cfg.RateProviderRPS = v.GetFloat64("RATE_PROVIDER_RPS")
	if cfg.RateProviderRPS <= 0 {
		log.Printf("Warning: Invalid value for RATE_PROVIDER_RPS. Defaulting to %.0f.\n", DefaultRateProviderRPS)
		cfg.RateProviderRPS = DefaultRateProviderRPS
	}

	cfg.DefaultCurrency = strings.ToUpper(strings.TrimSpace(v.GetString("DEFAULT_CURRENCY")))
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = DefaultCurrency
	}
	cfg.UpcomingDays = positiveOrDefault(v, "UPCOMING_DAYS", DefaultUpcomingDays)
	cfg.UrgentDays = positiveOrDefault(v, "URGENT_DAYS", DefaultUrgentDays)

	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.RateLimit = v.GetString("RATE_LIMIT")
	cfg.PostHogAPIKey = v.GetString("POSTHOG_API_KEY")
	cfg.RollInterval = durationOrDefault(v, "ROLL_INTERVAL", DefaultRollInterval)

	return cfg, nil
}

func durationOrDefault(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

func positiveOrDefault(v *viper.Viper, key string, def int) int {
	n := v.GetInt(key)
	if n <= 0 {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %d.\n", key, v.GetString(key), def)
		return def
	}
	return n
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
