package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"skycast.app/errors"
)

// Config represents the application configuration structure
type Config struct {
	Server   ServerConfig   `split_words:"true"`
	Database DatabaseConfig `split_words:"true"`
	Weather  WeatherConfig  `split_words:"true"`
	Cache    CacheConfig    `split_words:"true"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// DatabaseConfig contains settings for the preferences/favorites store.
// The default is an embedded sqlite file; postgres is available for shared
// deployments.
type DatabaseConfig struct {
	Driver   string `envconfig:"DB_DRIVER" default:"sqlite"`
	Path     string `envconfig:"DB_PATH" default:"skycast.db"`
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"skycast"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

// GetDSN returns a formatted postgres connection string
func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// WeatherConfig contains settings for the upstream weather data sources.
// All four services are free and keyless.
type WeatherConfig struct {
	ForecastBaseURL   string `envconfig:"WEATHER_FORECAST_BASE_URL" default:"https://api.open-meteo.com/v1"`
	AirQualityBaseURL string `envconfig:"WEATHER_AIR_QUALITY_BASE_URL" default:"https://air-quality-api.open-meteo.com/v1"`
	GeocodingBaseURL  string `envconfig:"WEATHER_GEOCODING_BASE_URL" default:"https://geocoding-api.open-meteo.com/v1"`
	ReverseGeoBaseURL string `envconfig:"WEATHER_REVERSE_GEO_BASE_URL" default:"https://api.bigdatacloud.net/data"`
	MaxRetries        int    `envconfig:"WEATHER_MAX_RETRIES" default:"3"`
	RetryDelayMs      int    `envconfig:"WEATHER_RETRY_DELAY_MS" default:"1000"`
	ThrottleMs        int    `envconfig:"WEATHER_THROTTLE_MS" default:"1000"`
	DebounceMs        int    `envconfig:"WEATHER_DEBOUNCE_MS" default:"300"`
	RequestTimeoutSec int    `envconfig:"WEATHER_REQUEST_TIMEOUT_SEC" default:"10"`
	EnableBreaker     bool   `envconfig:"WEATHER_ENABLE_BREAKER" default:"true"`
	EnableLogging     bool   `envconfig:"WEATHER_ENABLE_LOGGING" default:"true"`
}

// CacheConfig contains settings for the snapshot cache
type CacheConfig struct {
	Type              string `envconfig:"CACHE_TYPE" default:"memory"`
	TTLMinutes        int    `envconfig:"CACHE_TTL_MINUTES" default:"10"`
	MaxEntries        int    `envconfig:"CACHE_MAX_ENTRIES" default:"50"`
	SweepIntervalMins int    `envconfig:"CACHE_SWEEP_INTERVAL_MINUTES" default:"5"`
	RedisAddr         string `envconfig:"CACHE_REDIS_ADDR" default:"localhost:6379"`
	RedisPassword     string `envconfig:"CACHE_REDIS_PASSWORD" default:""`
	RedisDB           int    `envconfig:"CACHE_REDIS_DB" default:"0"`
	RedisTimeoutSec   int    `envconfig:"CACHE_REDIS_TIMEOUT_SEC" default:"3"`
}

// LoadConfig loads and validates application configuration from environment variables
func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks server configuration
func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

// Validate checks database configuration
func (d *DatabaseConfig) Validate() error {
	switch d.Driver {
	case "sqlite":
		if d.Path == "" {
			return errors.NewConfigurationError("DB_PATH cannot be empty for the sqlite driver", nil)
		}
	case "postgres":
		if d.Host == "" {
			return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
		}
		if d.Port < 1 || d.Port > 65535 {
			return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
		}
		if d.User == "" {
			return errors.NewConfigurationError("DB_USER cannot be empty", nil)
		}
		if d.Name == "" {
			return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
		}
		if err := d.validateSSLMode(); err != nil {
			return err
		}
	default:
		return errors.NewConfigurationError("DB_DRIVER must be one of: sqlite, postgres", nil)
	}
	return nil
}

func (d *DatabaseConfig) validateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

// Validate checks weather data source configuration
func (w *WeatherConfig) Validate() error {
	baseURLs := map[string]string{
		"WEATHER_FORECAST_BASE_URL":    w.ForecastBaseURL,
		"WEATHER_AIR_QUALITY_BASE_URL": w.AirQualityBaseURL,
		"WEATHER_GEOCODING_BASE_URL":   w.GeocodingBaseURL,
		"WEATHER_REVERSE_GEO_BASE_URL": w.ReverseGeoBaseURL,
	}
	for name, value := range baseURLs {
		if value == "" {
			return errors.NewConfigurationError(fmt.Sprintf("%s cannot be empty", name), nil)
		}
		if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			return errors.NewConfigurationError(fmt.Sprintf("%s must start with http:// or https://", name), nil)
		}
	}
	if w.MaxRetries < 0 || w.MaxRetries > 10 {
		return errors.NewConfigurationError("WEATHER_MAX_RETRIES must be between 0 and 10", nil)
	}
	if w.RetryDelayMs < 0 {
		return errors.NewConfigurationError("WEATHER_RETRY_DELAY_MS cannot be negative", nil)
	}
	if w.ThrottleMs < 0 {
		return errors.NewConfigurationError("WEATHER_THROTTLE_MS cannot be negative", nil)
	}
	if w.RequestTimeoutSec < 1 {
		return errors.NewConfigurationError("WEATHER_REQUEST_TIMEOUT_SEC must be at least 1 second", nil)
	}
	return nil
}

// Validate checks cache configuration
func (c *CacheConfig) Validate() error {
	if c.Type != "memory" && c.Type != "redis" {
		return errors.NewConfigurationError("CACHE_TYPE must be one of: memory, redis", nil)
	}
	if c.TTLMinutes < 1 {
		return errors.NewConfigurationError("CACHE_TTL_MINUTES must be at least 1 minute", nil)
	}
	if c.MaxEntries < 1 {
		return errors.NewConfigurationError("CACHE_MAX_ENTRIES must be at least 1", nil)
	}
	if c.SweepIntervalMins < 1 {
		return errors.NewConfigurationError("CACHE_SWEEP_INTERVAL_MINUTES must be at least 1 minute", nil)
	}
	return nil
}
