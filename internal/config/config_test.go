package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/garnizeh/skillbridge/internal/config"
)

func validConfig() *config.Config {
	return &config.Config{
		Addr:          ":8000",
		JWTSecret:     "strongsecret",
		APITimeout:    5 * time.Second,
		DatabasePath:  "skillbridge.db",
		TokenDuration: 1 * time.Hour,
		Storage:       config.StorageConfig{Driver: config.DriverSQLite},
	}
}

func TestValidate_InsecureJWT_FailsWhenNotDevelopment(t *testing.T) {
	t.Setenv("SKILLBRIDGE_ENV", "production")

	cfg := validConfig()
	cfg.JWTSecret = "supersecretkey"

	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected Validate to fail for insecure JWT in non-development env")
	}
}

func TestValidate_InsecureJWT_AllowsDevelopment(t *testing.T) {
	t.Setenv("SKILLBRIDGE_ENV", "development")

	cfg := validConfig()
	cfg.JWTSecret = "supersecretkey"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected Validate to succeed in development env, got: %v", err)
	}
}

func TestValidate_Table(t *testing.T) {
	t.Setenv("SKILLBRIDGE_ENV", "development")

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{"valid sqlite", func(c *config.Config) {}, false},
		{"memory needs no dsn", func(c *config.Config) { c.Storage.Driver = config.DriverMemory; c.DatabasePath = "" }, false},
		{"postgres alias", func(c *config.Config) { c.Storage = config.StorageConfig{Driver: "postgres", DSN: "postgres://x"} }, false},
		{"postgres without dsn", func(c *config.Config) { c.Storage.Driver = config.DriverPostgres }, true},
		{"unknown driver", func(c *config.Config) { c.Storage.Driver = "mongo" }, true},
		{"sqlite without path", func(c *config.Config) { c.DatabasePath = "" }, true},
		{"zero timeout", func(c *config.Config) { c.APITimeout = 0 }, true},
		{"negative token duration", func(c *config.Config) { c.TokenDuration = -time.Second }, true},
		{"empty secret", func(c *config.Config) { c.JWTSecret = "" }, true},
		{"negative log rotation", func(c *config.Config) { c.Log.MaxFiles = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_FillsDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Driver = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed unexpectedly: %v", err)
	}
	if cfg.Storage.Driver != config.DriverSQLite {
		t.Fatalf("expected sqlite default driver, got %q", cfg.Storage.Driver)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Fatalf("expected log defaults, got %#v", cfg.Log)
	}
}

func TestDSN(t *testing.T) {
	cfg := validConfig()
	if got := cfg.DSN(); got != "skillbridge.db" {
		t.Fatalf("sqlite DSN should fall back to database_path, got %q", got)
	}
	cfg.Storage.DSN = "file:other.db"
	if got := cfg.DSN(); got != "file:other.db" {
		t.Fatalf("explicit DSN should win, got %q", got)
	}
	cfg.Storage = config.StorageConfig{Driver: config.DriverPostgres}
	if got := cfg.DSN(); got != "" {
		t.Fatalf("postgres without dsn should be empty, got %q", got)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	// Ensure environment does not interfere
	for _, k := range []string{"SKILLBRIDGE_ADDR", "SKILLBRIDGE_JWT_SECRET", "SKILLBRIDGE_DATABASE_PATH", "SKILLBRIDGE_STORAGE_DRIVER", "SKILLBRIDGE_STORAGE_DSN", "SKILLBRIDGE_LOG_LEVEL", "SKILLBRIDGE_LOG_FORMAT", "SKILLBRIDGE_LOG_FILE"} {
		t.Setenv(k, "")
	}

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error for empty path: %v", err)
	}

	if cfg.Addr != ":8000" {
		t.Fatalf("unexpected Addr: got %q want %q", cfg.Addr, ":8000")
	}
	if cfg.JWTSecret != "supersecretkey" {
		t.Fatalf("unexpected JWTSecret: got %q want %q", cfg.JWTSecret, "supersecretkey")
	}
	if cfg.DatabasePath != "skillbridge.db" {
		t.Fatalf("unexpected DatabasePath: got %q want %q", cfg.DatabasePath, "skillbridge.db")
	}
	if cfg.Storage.Driver != config.DriverSQLite {
		t.Fatalf("unexpected driver: got %q", cfg.Storage.Driver)
	}
	if cfg.APITimeout != 15*time.Second {
		t.Fatalf("unexpected APITimeout: got %v want %v", cfg.APITimeout, 15*time.Second)
	}
	if cfg.TokenDuration != 1*time.Hour {
		t.Fatalf("unexpected TokenDuration: got %v want %v", cfg.TokenDuration, 1*time.Hour)
	}
	if !cfg.SeedOnStart {
		t.Fatalf("expected seed_on_start default true")
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("unexpected log level %q", cfg.Log.Level)
	}
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("SKILLBRIDGE_ADDR", ":9999")
	t.Setenv("SKILLBRIDGE_STORAGE_DRIVER", "memory")
	t.Setenv("SKILLBRIDGE_LOG_LEVEL", "debug")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.Storage.Driver != "memory" || cfg.Log.Level != "debug" {
		t.Fatalf("env overrides not applied: %#v", cfg)
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("addr: \":9090\"\njwt_secret: \"filekey\"\ntimeout: \"30s\"\ndatabase_path: \"test.db\"\ntoken_duration: \"2h\"\nseed_on_start: false\nstorage:\n  driver: pgx\n  dsn: \"postgres://localhost/skillbridge\"\nlog:\n  level: warn\n  format: text\n  file: /var/log/skillbridge.log\n  max_files: 3\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error for file: %v", err)
	}

	if cfg.Addr != ":9090" {
		t.Fatalf("unexpected Addr: got %q want %q", cfg.Addr, ":9090")
	}
	if cfg.JWTSecret != "filekey" {
		t.Fatalf("unexpected JWTSecret: got %q want %q", cfg.JWTSecret, "filekey")
	}
	if cfg.DatabasePath != "test.db" {
		t.Fatalf("unexpected DatabasePath: got %q want %q", cfg.DatabasePath, "test.db")
	}
	if cfg.APITimeout != 30*time.Second {
		t.Fatalf("unexpected APITimeout: got %v want %v", cfg.APITimeout, 30*time.Second)
	}
	if cfg.TokenDuration != 2*time.Hour {
		t.Fatalf("unexpected TokenDuration: got %v want %v", cfg.TokenDuration, 2*time.Hour)
	}
	if cfg.SeedOnStart {
		t.Fatalf("expected seed_on_start false from file")
	}
	if cfg.Storage.Driver != "pgx" || cfg.DSN() != "postgres://localhost/skillbridge" {
		t.Fatalf("unexpected storage %#v", cfg.Storage)
	}
	if cfg.Log.Level != "warn" || cfg.Log.Format != "text" || cfg.Log.File != "/var/log/skillbridge.log" || cfg.Log.MaxFiles != 3 {
		t.Fatalf("unexpected log config %#v", cfg.Log)
	}
}

func TestLoadConfig_BadPath(t *testing.T) {
	if _, err := config.LoadConfig("/path/that/does/not/exist.yaml"); err == nil {
		t.Fatalf("expected error for nonexistent path, got nil")
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("::: not yaml :::"), 0o600); err != nil {
		t.Fatalf("failed to write bad yaml: %v", err)
	}

	if _, err := config.LoadConfig(path); err == nil {
		t.Fatalf("expected YAML decode error, got nil")
	}
}
