package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type Config struct {
	Environment string         `yaml:"environment"`
	Port        int            `yaml:"port"`
	MetricsPort int            `yaml:"metrics_port"`
	JWTSecret   string         `yaml:"jwt_secret"`
	Database    DatabaseConfig `yaml:"database"`
	CORS        CORSConfig     `yaml:"cors"`

	// Seeding credentials come from the environment only.
	AdminUsername string `yaml:"-"`
	AdminPassword string `yaml:"-"`
}

// LoadConfig reads the optional YAML file at path and applies environment
// overrides on top. The environment always wins, so a deployment can run
// without any config file at all.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Environment: "development",
		Port:        8080,
		MetricsPort: 2112,
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "app.db",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	cfg.Environment = envOr("ENV", cfg.Environment)
	cfg.Port = envIntOr("PORT", cfg.Port)
	cfg.MetricsPort = envIntOr("METRICS_PORT", cfg.MetricsPort)
	cfg.JWTSecret = envOr("JWT_SECRET", cfg.JWTSecret)
	cfg.Database.Driver = envOr("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.DSN = envOr("DB_DSN", cfg.Database.DSN)
	if origins := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); origins != "" {
		cfg.CORS.AllowedOrigins = splitCSV(origins)
	}
	cfg.AdminUsername = envOr("ADMIN_USERNAME", "admin")
	cfg.AdminPassword = strings.TrimSpace(os.Getenv("ADMIN_PASSWORD"))

	// Development gets a fixed signing key so the service runs out of the
	// box; production refuses to start without an operator-supplied one.
	if cfg.JWTSecret == "" && cfg.Environment != "production" {
		cfg.JWTSecret = "dev-secret"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.MetricsPort < 1 || c.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", c.MetricsPort)
	}
	switch c.Database.Driver {
	case "sqlite", "mysql":
	default:
		return fmt.Errorf("invalid db driver: %s", c.Database.Driver)
	}
	if c.JWTSecret == "" && c.Environment == "production" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	return nil
}

// IsDev reports whether the service runs in a development environment.
func (c *Config) IsDev() bool {
	return c.Environment != "production"
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
