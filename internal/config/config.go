package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/weather-lookup/internal/weather/providers"
)

type AppConfig struct {
	Port string `validate:"required,numeric"`

	// Upstream endpoints.
	GeocodingBaseURL string `validate:"required,url"`
	ForecastBaseURL  string `validate:"required,url"`

	// Optional Google geocoding backend; Open-Meteo is used when empty.
	GoogleGeocoderAPIKey string

	// Outbound HTTP. Zero timeout keeps the transport default; zero retries means one attempt.
	HTTPTimeout    time.Duration `validate:"gte=0"`
	HTTPMaxRetries int           `validate:"gte=0,lte=5"`

	// Page sessions.
	SessionMaxAge        time.Duration `validate:"gte=0"`
	SessionMaxCount      int           `validate:"gte=0"`
	SessionSweepInterval time.Duration `validate:"gt=0"`

	LogDevelopment bool

	// DotEnvErr is the result of loading .env, nil when the file was read.
	DotEnvErr error `validate:"-"`
}

var validate = validator.New()

// Load reads configuration from the environment (and .env if present) with sensible defaults.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}

	// A missing .env file is normal in production; the caller logs it at debug.
	cfg.DotEnvErr = godotenv.Load()
	var err error

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.GeocodingBaseURL = getenvDefault("GEOCODING_BASE_URL", providers.DefaultGeocodingURL)
	cfg.ForecastBaseURL = getenvDefault("FORECAST_BASE_URL", providers.DefaultForecastURL)
	cfg.GoogleGeocoderAPIKey = os.Getenv("GOOGLE_GEOCODER_API_KEY")

	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", 0); err != nil {
		return nil, err
	}
	cfg.HTTPMaxRetries = getenvInt("HTTP_MAX_RETRIES", 0)

	if cfg.SessionMaxAge, err = getenvDuration("SESSION_MAX_AGE", 30*time.Minute); err != nil {
		return nil, err
	}
	cfg.SessionMaxCount = getenvInt("SESSION_MAX_COUNT", 10000)
	if cfg.SessionSweepInterval, err = getenvDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute); err != nil {
		return nil, err
	}

	cfg.LogDevelopment = getenvBool("LOG_DEVELOPMENT", false)

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
