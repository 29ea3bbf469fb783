package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Port the HTTP server listens on
	Port string `env:"PORT" envDefault:"5250"`

	// GinMode is passed to gin.SetMode (debug, release or test)
	GinMode string `env:"GIN_MODE" envDefault:"release"`

	Dataset struct {
		// Path to a dataset JSON file. Empty uses the dataset built into the binary.
		Path string `env:"DATASET_PATH"`

		// Path to a SQLite snapshot. Takes precedence over Path when set.
		SQLitePath string `env:"DATASET_SQLITE_PATH"`
	}

	// CityConfigPath points at a YAML file replacing the built-in city map settings
	CityConfigPath string `env:"CITY_CONFIG_PATH"`

	Log struct {
		Level  string `env:"LOG_LEVEL" envDefault:"info"`
		Format string `env:"LOG_FORMAT" envDefault:"json"`
	}

	CORS struct {
		AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	}

	// ResponseDelay adds an artificial random latency to API responses, in
	// milliseconds. Both zero disables it.
	ResponseDelay struct {
		MinMs int `env:"RESPONSE_DELAY_MIN_MS" envDefault:"0"`
		MaxMs int `env:"RESPONSE_DELAY_MAX_MS" envDefault:"0"`
	}

	Cache struct {
		// Maximum number of cached search results; 0 disables the cache, as does a TTL of 0
		MaxEntries int64 `env:"CACHE_MAX_ENTRIES" envDefault:"1000"`
		TTLSeconds int   `env:"CACHE_TTL_SECONDS" envDefault:"300"`
	}
}

// CacheTTL returns the search cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

func (c *Config) Validate() error {
	if c.ResponseDelay.MinMs < 0 || c.ResponseDelay.MaxMs < 0 {
		return errors.New("response delay must not be negative")
	}
	if c.ResponseDelay.MaxMs < c.ResponseDelay.MinMs {
		return fmt.Errorf("RESPONSE_DELAY_MAX_MS (%d) is below RESPONSE_DELAY_MIN_MS (%d)",
			c.ResponseDelay.MaxMs, c.ResponseDelay.MinMs)
	}
	if c.Cache.TTLSeconds < 0 {
		return errors.New("CACHE_TTL_SECONDS must not be negative")
	}
	return nil
}

// LoadConfig reads an optional .env file, then parses the environment.
// Variables already set in the environment win over the .env file.
func LoadConfig(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
