package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	DBSource      string `mapstructure:"DB_SOURCE"`

	SearchBackend      string  `mapstructure:"SEARCH_BACKEND"`
	SearchQuery        string  `mapstructure:"SEARCH_QUERY"`
	SearchLimit        int     `mapstructure:"SEARCH_LIMIT"`
	RegionRadiusMeters float64 `mapstructure:"REGION_RADIUS_METERS"`

	OverpassURL  string `mapstructure:"OVERPASS_URL"`
	ElasticURL   string `mapstructure:"ELASTIC_URL"`
	ElasticIndex string `mapstructure:"ELASTIC_INDEX"`
	OSRMURL      string `mapstructure:"OSRM_URL"`

	HTTPTimeout time.Duration `mapstructure:"HTTP_TIMEOUT"`
	SessionTTL  time.Duration `mapstructure:"SESSION_TTL"`
	PinIcon     string        `mapstructure:"PIN_ICON"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogPretty bool   `mapstructure:"LOG_PRETTY"`
}

const (
	BackendPostgres = "postgres"
	BackendOverpass = "overpass"
	BackendElastic  = "elastic"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	v.SetDefault("DB_SOURCE", "")
	v.SetDefault("SEARCH_BACKEND", BackendOverpass)
	v.SetDefault("SEARCH_QUERY", "coffee")
	v.SetDefault("SEARCH_LIMIT", 25)
	v.SetDefault("REGION_RADIUS_METERS", 1000.0)
	v.SetDefault("OVERPASS_URL", "https://overpass-api.de/api/interpreter")
	v.SetDefault("ELASTIC_URL", "http://localhost:9200")
	v.SetDefault("ELASTIC_INDEX", "coffee_shops")
	v.SetDefault("OSRM_URL", "https://router.project-osrm.org")
	v.SetDefault("HTTP_TIMEOUT", 10*time.Second)
	v.SetDefault("SESSION_TTL", 30*time.Minute)
	v.SetDefault("PIN_ICON", "coffee-pin")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)
}

// LoadConfig reads configuration from app.env under path, a local .env file and the environment.
// Environment variables take precedence over the file.
func LoadConfig(path string) (config Config, err error) {
	if err := loadDotEnv(); err != nil {
		log.Debug().Err(err).Msg("config: ignoring unreadable .env")
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("config: failed to read config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("config: failed to decode config: %w", err)
	}

	if err = config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// loadDotEnv loads the given files (.env by default) into the environment.
// A missing file is not an error; the variables may be set directly.
func loadDotEnv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("config: failed to load env file: %w", err)
	}
	return nil
}

// Validate checks the values that the rest of the application relies on.
func (c Config) Validate() error {
	switch c.SearchBackend {
	case BackendPostgres:
		if c.DBSource == "" {
			return fmt.Errorf("config: DB_SOURCE is required for the %q search backend", c.SearchBackend)
		}
	case BackendOverpass, BackendElastic:
	default:
		return fmt.Errorf("config: unknown SEARCH_BACKEND %q", c.SearchBackend)
	}
	if c.SearchQuery == "" {
		return fmt.Errorf("config: SEARCH_QUERY cannot be empty")
	}
	if c.RegionRadiusMeters <= 0 {
		return fmt.Errorf("config: REGION_RADIUS_METERS must be positive, got %f", c.RegionRadiusMeters)
	}
	if c.SearchLimit <= 0 {
		return fmt.Errorf("config: SEARCH_LIMIT must be positive, got %d", c.SearchLimit)
	}
	return nil
}
