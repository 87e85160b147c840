// Package config provides configuration loading and defaults for the fly-mcp server.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ResourceFilter holds allowlist and denylist entries for a resource category.
type ResourceFilter struct {
	Allowlist []string `yaml:"allowlist"`
	Denylist  []string `yaml:"denylist"`
}

// SafetyConfig groups filters applied to mutating operations. The Apps filter
// restricts which application names may be targeted by restart, secrets
// set/delete, and machine scale methods.
type SafetyConfig struct {
	Apps ResourceFilter `yaml:"apps"`
}

// AuditConfig controls audit logging behaviour.
type AuditConfig struct {
	Enabled   bool   `yaml:"enabled"`
	LogPath   string `yaml:"log_path"`
	MaxSizeMB int    `yaml:"max_size_mb"`
}

// ServerConfig holds network and authentication settings for the host-facing
// HTTP surface.
type ServerConfig struct {
	Port      int    `yaml:"port"`
	AuthToken string `yaml:"auth_token"`
}

// FlyConfig holds connection details for the Fly.io GraphQL API.
type FlyConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
	// Timeout is the HTTP request timeout in seconds.
	Timeout int `yaml:"timeout"`
	// MaxIdlePerHost caps the idle connection pool per remote host.
	MaxIdlePerHost int `yaml:"max_idle_per_host"`
}

// Config is the top-level configuration structure for the fly-mcp server.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Safety SafetyConfig `yaml:"safety"`
	Audit  AuditConfig  `yaml:"audit"`
	Fly    FlyConfig    `yaml:"fly"`
}

// LoadConfig reads and parses a YAML configuration file from the given path.
// It returns a pointer to the populated Config and any error encountered.
// On error, nil is returned for the config pointer.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// DefaultConfig returns a new Config populated with sensible default values.
// Each call returns a distinct instance.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
		},
		Audit: AuditConfig{
			Enabled: true,
			LogPath: "/config/audit.log",
		},
		Fly: FlyConfig{
			URL:            "https://api.fly.io/graphql",
			Timeout:        30,
			MaxIdlePerHost: 5,
		},
	}
}

// ApplyEnvOverrides updates cfg in place with values from environment variables.
// Recognized variables:
//   - FLY_MCP_AUTH_TOKEN overrides cfg.Server.AuthToken
//   - FLY_GRAPHQL_URL overrides cfg.Fly.URL
//   - FLY_API_TOKEN overrides cfg.Fly.Token
func ApplyEnvOverrides(cfg *Config) {
	if token := os.Getenv("FLY_MCP_AUTH_TOKEN"); token != "" {
		cfg.Server.AuthToken = token
	}
	if url := os.Getenv("FLY_GRAPHQL_URL"); url != "" {
		cfg.Fly.URL = url
	}
	if token := os.Getenv("FLY_API_TOKEN"); token != "" {
		cfg.Fly.Token = token
	}
}

// EnsureAuthToken generates a random auth token and sets it on cfg if
// cfg.Server.AuthToken is empty. It returns the token (existing or generated)
// and any error encountered during generation.
func EnsureAuthToken(cfg *Config) (string, error) {
	if cfg.Server.AuthToken != "" {
		return cfg.Server.AuthToken, nil
	}
	token, err := GenerateRandomToken()
	if err != nil {
		return "", fmt.Errorf("generate auth token: %w", err)
	}
	cfg.Server.AuthToken = token
	return token, nil
}

// GenerateRandomToken returns a 32-character hex-encoded cryptographically
// random token string.
func GenerateRandomToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand.Read: %w", err)
	}
	return hex.EncodeToString(b), nil
}
