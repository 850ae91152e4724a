package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/iqbaldf/chatline/internal/logger"
)

// Environment variables carrying provider secrets. Keys never live in the
// YAML file.
const (
	EnvGeminiAPIKey = "GOOGLE_API_KEY"
	EnvClaudeAPIKey = "ANTHROPIC_API_KEY"
	EnvGLMAPIKey    = "GLM_API_KEY"
)

// loadConfig loads configuration from the specified file path using viper
func loadConfig(configPath string) (Config, error) {
	var c Config

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return c, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := viper.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&c)
	applyEnvOverrides(&c)

	if err := c.Validate(); err != nil {
		return c, err
	}

	logger.Info("loaded config")

	return c, nil
}

// MustLoadConfig loads configuration and panics if there's an error
func MustLoadConfig(configPath string) Config {
	c, err := loadConfig(configPath)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return c
}

func applyDefaults(c *Config) {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.Chat.MaxTokens == 0 {
		c.Chat.MaxTokens = 1000
	}
	if c.Chat.Temperature == 0 {
		c.Chat.Temperature = 0.7
	}
	if c.Chat.RequestTimeoutSec == 0 {
		c.Chat.RequestTimeoutSec = 30
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "memory"
	}
	if c.Providers.Gemini.Endpoint == "" {
		c.Providers.Gemini.Endpoint = "https://generativelanguage.googleapis.com/v1beta"
	}
	if c.Providers.Gemini.Model == "" {
		c.Providers.Gemini.Model = "gemini-1.5-flash"
	}
	if c.Providers.Claude.Endpoint == "" {
		c.Providers.Claude.Endpoint = "https://api.anthropic.com/v1/messages"
	}
	if c.Providers.Claude.Model == "" {
		c.Providers.Claude.Model = "claude-3-haiku-20240307"
	}
	if c.Providers.GLM.Endpoint == "" {
		c.Providers.GLM.Endpoint = "https://open.bigmodel.cn/api/paas/v4"
	}
	if c.Providers.GLM.Model == "" {
		c.Providers.GLM.Model = "glm-4.5-flash"
	}
}

func applyEnvOverrides(c *Config) {
	if v := os.Getenv(EnvGeminiAPIKey); v != "" {
		c.Providers.Gemini.APIKey = v
	}
	if v := os.Getenv(EnvClaudeAPIKey); v != "" {
		c.Providers.Claude.APIKey = v
	}
	if v := os.Getenv(EnvGLMAPIKey); v != "" {
		c.Providers.GLM.APIKey = v
	}
}

// Validate enforces startup invariants. The primary provider (Gemini) must
// have a key; missing keys for the other providers only disable them.
func (c *Config) Validate() error {
	if c.Providers.Gemini.APIKey == "" {
		return fmt.Errorf("primary provider key is missing: set %s", EnvGeminiAPIKey)
	}
	switch c.Storage.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	return nil
}
