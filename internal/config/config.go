package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// insecureJWTSecret is the built-in default; it is only accepted when
// SKILLBRIDGE_ENV=development.
const insecureJWTSecret = "supersecretkey"

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
	DriverMemory   = "memory"
)

type Config struct {
	Addr          string        `yaml:"addr"`
	JWTSecret     string        `yaml:"jwt_secret"`
	APITimeout    time.Duration `yaml:"timeout"`
	DatabasePath  string        `yaml:"database_path"`
	TokenDuration time.Duration `yaml:"token_duration"`
	Storage       StorageConfig `yaml:"storage"`
	SeedOnStart   bool          `yaml:"seed_on_start"`
	Log           LogConfig     `yaml:"log"`
}

// StorageConfig selects the backing store. An empty DSN for the sqlite
// driver falls back to DatabasePath.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// LogConfig selects level and format. A non-empty File sends output to a
// size-rotated file instead of stdout.
type LogConfig struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	File      string `yaml:"file"`
	MaxSizeMB int    `yaml:"max_size_mb"`
	MaxFiles  int    `yaml:"max_files"`
}

func LoadConfig(path string) (*Config, error) {
	apiTimeout := 15 * time.Second
	tokenDuration := 1 * time.Hour

	cfg := &Config{
		Addr:          getEnv("SKILLBRIDGE_ADDR", ":8000"),
		JWTSecret:     getEnv("SKILLBRIDGE_JWT_SECRET", insecureJWTSecret),
		APITimeout:    apiTimeout,
		DatabasePath:  getEnv("SKILLBRIDGE_DATABASE_PATH", "skillbridge.db"),
		TokenDuration: tokenDuration,
		Storage: StorageConfig{
			Driver: getEnv("SKILLBRIDGE_STORAGE_DRIVER", DriverSQLite),
			DSN:    os.Getenv("SKILLBRIDGE_STORAGE_DSN"),
		},
		SeedOnStart: true,
		Log: LogConfig{
			Level:  getEnv("SKILLBRIDGE_LOG_LEVEL", "info"),
			Format: getEnv("SKILLBRIDGE_LOG_FORMAT", "json"),
			File:   os.Getenv("SKILLBRIDGE_LOG_FILE"),
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.Storage.DSN != "" {
		return c.Storage.DSN
	}
	if c.Storage.Driver == DriverSQLite || c.Storage.Driver == "" {
		return c.DatabasePath
	}
	return ""
}

// Validate checks the loaded configuration and fills unset optional values.
func (c *Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if c.APITimeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %v", c.APITimeout))
	}
	if c.TokenDuration <= 0 {
		errs = append(errs, fmt.Errorf("token_duration must be positive, got %v", c.TokenDuration))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("jwt_secret is required"))
	} else if c.JWTSecret == insecureJWTSecret && os.Getenv("SKILLBRIDGE_ENV") != "development" {
		errs = append(errs, errors.New("jwt_secret uses the insecure default; set SKILLBRIDGE_JWT_SECRET or SKILLBRIDGE_ENV=development"))
	}

	switch c.Storage.Driver {
	case "":
		c.Storage.Driver = DriverSQLite
	case DriverSQLite, DriverPostgres, DriverMemory:
	case "postgres":
		c.Storage.Driver = DriverPostgres
	default:
		errs = append(errs, fmt.Errorf("unknown storage driver %q", c.Storage.Driver))
	}
	if c.Storage.Driver != DriverMemory && c.DSN() == "" {
		errs = append(errs, fmt.Errorf("storage dsn is required for driver %q", c.Storage.Driver))
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxFiles < 0 {
		errs = append(errs, errors.New("log max_size_mb and max_files must not be negative"))
	}

	return errors.Join(errs...)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
