// Package models defines data structures shared across the summarizer:
// configuration, coordinator state, settings and the saved-summary archive.
package models

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultListenAddr   = "127.0.0.1:8765"
	DefaultFetchTimeout = 30 * time.Second
	DefaultUserAgent    = "readmoo-summary/1.0"

	// APIKeyEnv is consulted when the config file carries no API key.
	APIKeyEnv = "READMOO_SUMMARY_AI_KEY"
)

// AIConfig selects the summarization provider.
type AIConfig struct {
	Provider string `yaml:"provider"` // "claude" or "openai"
	Model    string `yaml:"model,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
	BaseURL  string `yaml:"base_url,omitempty"`
}

// Config holds runtime configuration loaded from config.yaml.
// CLI flags override individual values after loading.
type Config struct {
	Listen       string    `yaml:"listen"`
	DBPath       string    `yaml:"db_path"`
	FetchTimeout string    `yaml:"fetch_timeout"`
	UserAgent    string    `yaml:"user_agent"`
	Languages    []string  `yaml:"languages,omitempty"` // ISO-639-1 codes for the detector
	AI           *AIConfig `yaml:"ai,omitempty"`
}

// LoadConfig reads a YAML config file. A missing file yields defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.applyDefaults()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = DefaultListenAddr
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if len(c.Languages) == 0 {
		c.Languages = []string{"zh", "en", "ja", "ko"}
	}
}

// FetchTimeoutDuration parses FetchTimeout, falling back to the default.
func (c *Config) FetchTimeoutDuration() time.Duration {
	if c.FetchTimeout == "" {
		return DefaultFetchTimeout
	}
	d, err := time.ParseDuration(c.FetchTimeout)
	if err != nil || d <= 0 {
		return DefaultFetchTimeout
	}
	return d
}

// AIKey returns the configured API key, or the environment fallback.
func (c *Config) AIKey() string {
	if c.AI != nil && c.AI.APIKey != "" {
		return c.AI.APIKey
	}
	return os.Getenv(APIKeyEnv)
}
