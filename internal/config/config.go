package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	OpenWeatherAPIKey string
	ProviderTimeout   time.Duration

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// DBPath is the SQLite file holding persisted dashboard state.
	DBPath string

	// GeoIP lookup used as the device-location capability.
	GeoIPEndpoint string
	GeoIPTimeout  time.Duration
	GeoIPEnabled  bool
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is merged in first when
// present.
func Load() (*Config, error) {
	// Missing .env is the common case outside local development.
	_ = godotenv.Load()

	providerTimeout, err := parseDurationVar("OPENWEATHER_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := parseDurationVar("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	geoIPTimeout, err := parseDurationVar("GEOIP_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	// An explicitly empty GEOIP_ENDPOINT disables the capability; only an
	// unset variable gets the default.
	geoIPEndpoint, endpointSet := os.LookupEnv("GEOIP_ENDPOINT")
	if !endpointSet {
		geoIPEndpoint = "http://ip-api.com/json"
	}
	geoIPEnabled := geoIPEndpoint != ""
	if v := os.Getenv("GEOIP_ENABLED"); v != "" {
		geoIPEnabled = v == "true"
	}

	cfg := &Config{
		OpenWeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),
		ProviderTimeout:   providerTimeout,
		HTTPAddr:          envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:          envOrDefault("LOG_LEVEL", "info"),
		LogFormat:         envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:   shutdownTimeout,
		DBPath:            envOrDefault("WEATHERDASH_DB", "data/weatherdash.db"),
		GeoIPEndpoint:     geoIPEndpoint,
		GeoIPTimeout:      geoIPTimeout,
		GeoIPEnabled:      geoIPEnabled,
	}

	if cfg.OpenWeatherAPIKey == "" {
		return nil, errors.New("OPENWEATHER_API_KEY is required")
	}
	if cfg.GeoIPEnabled && cfg.GeoIPEndpoint == "" {
		return nil, errors.New("GEOIP_ENABLED is true but GEOIP_ENDPOINT is not set")
	}

	return cfg, nil
}

// envOrDefault returns the value of the environment variable, or fallback
// when unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parseDurationVar parses a positive duration from the environment variable,
// falling back to def when unset.
func parseDurationVar(key, def string) (time.Duration, error) {
	s := envOrDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}
