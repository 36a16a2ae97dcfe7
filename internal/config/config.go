// Package config loads and validates the application configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/forno-app/forno/internal/notify"
)

// Config represents the application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Store    StoreConfig    `yaml:"store"`
	Auth     AuthConfig     `yaml:"auth"`
	Security SecurityConfig `yaml:"security"`
	Notify   NotifyConfig   `yaml:"notify"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `yaml:"addr"` // defaults to ":8080"
}

// StoreConfig holds Firestore settings.
type StoreConfig struct {
	ProjectID   string `yaml:"project_id"`
	Database    string `yaml:"database"`    // optional, defaults to "(default)"
	Credentials string `yaml:"credentials"` // optional service account path
}

// AuthConfig holds Firebase Auth settings.
type AuthConfig struct {
	ProjectID   string `yaml:"project_id"` // defaults to store.project_id
	Credentials string `yaml:"credentials"`
}

// SecurityConfig holds CORS, rate limiting and webhook safety settings.
type SecurityConfig struct {
	CORSAllowedOrigins []string        `yaml:"cors_allowed_origins"`
	AllowLocalWebhooks bool            `yaml:"allow_local_webhooks"`
	RateLimit          RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig holds per-client rate limit settings.
type RateLimitConfig struct {
	Enabled                bool `yaml:"enabled"`
	RequestsPerMinute      int  `yaml:"requests_per_minute"`       // default 120
	Burst                  int  `yaml:"burst"`                     // default 60
	OrderRequestsPerMinute int  `yaml:"order_requests_per_minute"` // default 10
}

// NotifyConfig holds webhook notification settings.
type NotifyConfig struct {
	TimeoutSeconds int             `yaml:"timeout_seconds"` // default 120
	MaxRetries     int             `yaml:"max_retries"`     // default 3
	Targets        []notify.Target `yaml:"targets"`
}

// Load reads configuration from the given YAML file and applies environment
// variable overrides:
//
//	FORNO_ADDR                overrides server.addr
//	FORNO_STORE_PROJECT_ID    overrides store.project_id
//	FORNO_STORE_DATABASE      overrides store.database
//	FORNO_STORE_CREDENTIALS   overrides store.credentials
//	FORNO_AUTH_PROJECT_ID     overrides auth.project_id
//	FORNO_AUTH_CREDENTIALS    overrides auth.credentials
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyEnvOverrides() {
	overrides := []struct {
		env    string
		target *string
	}{
		{"FORNO_ADDR", &c.Server.Addr},
		{"FORNO_STORE_PROJECT_ID", &c.Store.ProjectID},
		{"FORNO_STORE_DATABASE", &c.Store.Database},
		{"FORNO_STORE_CREDENTIALS", &c.Store.Credentials},
		{"FORNO_AUTH_PROJECT_ID", &c.Auth.ProjectID},
		{"FORNO_AUTH_CREDENTIALS", &c.Auth.Credentials},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.target = v
		}
	}
}

// Validate checks the configuration and fills in defaults.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}

	if c.Store.ProjectID == "" {
		return fmt.Errorf("store.project_id is required")
	}

	if c.Auth.ProjectID == "" {
		c.Auth.ProjectID = c.Store.ProjectID
	}
	if c.Auth.Credentials == "" {
		c.Auth.Credentials = c.Store.Credentials
	}

	if c.Security.RateLimit.RequestsPerMinute <= 0 {
		c.Security.RateLimit.RequestsPerMinute = 120
	}
	if c.Security.RateLimit.Burst <= 0 {
		c.Security.RateLimit.Burst = 60
	}
	if c.Security.RateLimit.OrderRequestsPerMinute <= 0 {
		c.Security.RateLimit.OrderRequestsPerMinute = 10
	}

	if c.Notify.TimeoutSeconds <= 0 {
		c.Notify.TimeoutSeconds = 120
	}
	if c.Notify.MaxRetries <= 0 {
		c.Notify.MaxRetries = 3
	}

	for i, target := range c.Notify.Targets {
		if target.Name == "" {
			return fmt.Errorf("notify.targets[%d].name is required", i)
		}
		if err := notify.ValidateTarget(target, c.Security.AllowLocalWebhooks); err != nil {
			return fmt.Errorf("notify.targets[%d]: %w", i, err)
		}
	}

	return nil
}
