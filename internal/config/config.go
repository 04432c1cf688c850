package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all bridge configuration.
type Config struct {
	Server    ServerConfig
	Agents    AgentsConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Script    ScriptConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8700" toml:"port"`
	Host string `envconfig:"HOST" default:"0.0.0.0" toml:"host"`
}

// AgentsConfig holds remote agent service configuration.
type AgentsConfig struct {
	BookURL  string `envconfig:"BOOK_AGENT_URL" default:"http://localhost:8710" toml:"book_url"`
	ScrapeOn bool   `envconfig:"SCRAPE_AGENT_ENABLED" default:"true" toml:"scrape_enabled"`
	ThumbURL string `envconfig:"THUMB_AGENT_URL" default:"http://localhost:8712" toml:"thumb_url"`
	APIKey   string `envconfig:"AGENT_API_KEY" default:"" toml:"api_key"`
	Quota    int    `envconfig:"THUMB_QUOTA" default:"50" toml:"thumb_quota"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info" toml:"level"`
	Development bool   `envconfig:"LOG_DEV" default:"false" toml:"development"`
}

// RateLimitConfig holds outbound agent-call rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond float64 `envconfig:"AGENT_RATE_RPS" default:"10" toml:"requests_per_second"`
	Enabled           bool    `envconfig:"AGENT_RATE_ENABLED" default:"true" toml:"enabled"`
}

// ScriptConfig holds script runner configuration.
type ScriptConfig struct {
	TimeoutSeconds int `envconfig:"SCRIPT_TIMEOUT" default:"30" toml:"timeout_seconds"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("BRIDGE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8700",
			Host: "0.0.0.0",
		},
		Agents: AgentsConfig{
			BookURL:  "http://localhost:8710",
			ScrapeOn: true,
			ThumbURL: "http://localhost:8712",
			Quota:    50,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 10,
			Enabled:           true,
		},
		Script: ScriptConfig{
			TimeoutSeconds: 30,
		},
	}
}
