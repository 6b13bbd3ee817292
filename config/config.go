package config

import (
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-product-compare/cache"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvHTTPAddr    = "COMPARE_HTTP_ADDR"
	EnvDatabaseDSN = "COMPARE_DB_DSN"
	EnvCacheDriver = "COMPARE_CACHE_DRIVER"
	EnvRedisAddr   = "COMPARE_REDIS_ADDR"
)

// Config is the full service configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Cache    cache.Config   `yaml:"cache"`
	Log      LogConfig      `yaml:"log"`
}

// HTTPConfig configures the listener and route prefix.
type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	BasePath        string        `yaml:"base_path"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig selects the store backend and its bootstrap steps.
type DatabaseConfig struct {
	Driver      string `yaml:"driver"`
	DSN         string `yaml:"dsn"`
	SeedFile    string `yaml:"seed_file"`
	AutoMigrate bool   `yaml:"auto_migrate"`
}

// LogConfig selects the log level and handler format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:            ":8080",
			BasePath:        "/api/product-service",
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:      "sqlite",
			DSN:         "file:products.db?cache=shared",
			AutoMigrate: true,
		},
		Cache: cache.DefaultConfig(),
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads path on top of the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, goerrors.Wrap(err, goerrors.CategoryNotFound, "failed to read config file").
				WithMetadata(map[string]any{"path": path})
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse config file").
				WithMetadata(map[string]any{"path": path})
		}
	}

	cfg.applyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvHTTPAddr); ok && v != "" {
		c.HTTP.Addr = v
	}
	if v, ok := lookup(EnvDatabaseDSN); ok && v != "" {
		c.Database.DSN = v
	}
	if v, ok := lookup(EnvCacheDriver); ok && v != "" {
		c.Cache.Driver = strings.ToLower(v)
	}
	if v, ok := lookup(EnvRedisAddr); ok && v != "" {
		c.Cache.Redis.Addr = v
	}
}

// Validate checks every section, stopping at the first invalid one.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c.HTTP,
		validation.Field(&c.HTTP.Addr, validation.Required),
		validation.Field(&c.HTTP.BasePath, validation.By(func(any) error {
			if c.HTTP.BasePath != "" && !strings.HasPrefix(c.HTTP.BasePath, "/") {
				return validation.NewError("validation_base_path", "must start with /")
			}
			return nil
		})),
		validation.Field(&c.HTTP.ShutdownTimeout, validation.Min(time.Duration(0))),
	)
	if err != nil {
		return goerrors.FromOzzoValidation(err, "invalid http configuration")
	}

	err = validation.ValidateStruct(&c.Database,
		validation.Field(&c.Database.Driver, validation.Required, validation.In("sqlite", "postgres")),
		validation.Field(&c.Database.DSN, validation.Required),
	)
	if err != nil {
		return goerrors.FromOzzoValidation(err, "invalid database configuration")
	}

	err = validation.ValidateStruct(&c.Log,
		validation.Field(&c.Log.Level, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.Log.Format, validation.In("json", "text")),
	)
	if err != nil {
		return goerrors.FromOzzoValidation(err, "invalid log configuration")
	}

	return c.Cache.Validate()
}
