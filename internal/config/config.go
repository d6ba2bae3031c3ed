// Package config provides configuration loading and validation for the service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Default values applied when neither file nor environment provides one
const (
	DefaultPort              = 8080
	DefaultAgentTimeout      = 10 * time.Minute
	DefaultMaxResearchQueries = 3
)

// Config represents the service configuration. It can be loaded from a JSON
// file; environment variables override file values for secrets and the
// database URL.
type Config struct {
	Port        int    `json:"port,omitempty"`
	DatabaseURL string `json:"database_url,omitempty"`

	// LLM
	GeminiAPIKey string `json:"gemini_api_key,omitempty"`
	Model        string `json:"model,omitempty"`

	// Web search (Google Custom Search)
	SearchAPIKey   string `json:"search_api_key,omitempty"`
	SearchEngineID string `json:"search_engine_id,omitempty"`

	// Behavior
	AgentTimeoutMinutes int  `json:"agent_timeout_minutes,omitempty"`
	MaxResearchQueries  int  `json:"max_research_queries,omitempty"`
	UseBrowser          bool `json:"use_browser,omitempty"`
	Verbose             bool `json:"verbose,omitempty"`
}

// Load reads configuration from a JSON file (optional, pass "" to skip) and
// applies environment overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if !filepath.IsAbs(path) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get current directory: %w", err)
			}
			path = filepath.Join(cwd, path)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.GeminiAPIKey = v
	}
	if v := os.Getenv("SEARCH_API_KEY"); v != "" {
		c.SearchAPIKey = v
	}
	if v := os.Getenv("SEARCH_ENGINE_ID"); v != "" {
		c.SearchEngineID = v
	}
}

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.MaxResearchQueries == 0 {
		c.MaxResearchQueries = DefaultMaxResearchQueries
	}
}

// AgentTimeout returns the configured agent timeout as a duration
func (c *Config) AgentTimeout() time.Duration {
	if c.AgentTimeoutMinutes <= 0 {
		return DefaultAgentTimeout
	}
	return time.Duration(c.AgentTimeoutMinutes) * time.Minute
}

// SearchEnabled reports whether web research is configured
func (c *Config) SearchEnabled() bool {
	return c.SearchAPIKey != "" && c.SearchEngineID != ""
}

// Validate checks that required values are present for running the server
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: database_url is required (set DATABASE_URL)")
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("config error: gemini_api_key is required (set GEMINI_API_KEY)")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: port %d out of range", c.Port)
	}
	if c.AgentTimeoutMinutes < 0 {
		return fmt.Errorf("config error: agent_timeout_minutes must be non-negative")
	}
	if c.MaxResearchQueries < 0 {
		return fmt.Errorf("config error: max_research_queries must be non-negative")
	}
	return nil
}
