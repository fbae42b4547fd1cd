package config

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Database DatabaseConfig `mapstructure:"database"`
	Search   SearchConfig   `mapstructure:"search"`
	NATS     NATSConfig     `mapstructure:"nats"`
	Handoff  HandoffConfig  `mapstructure:"handoff"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig holds the HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// LLMConfig holds the chat-completion provider configuration
type LLMConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
}

// DatabaseConfig holds the SQLite database configuration
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// SearchConfig holds the Google Custom Search credentials.
// When either field is empty the synthetic results provider is used instead.
type SearchConfig struct {
	GoogleAPIKey string `mapstructure:"google_api_key"`
	GoogleCSEID  string `mapstructure:"google_cse_id"`
}

// NATSConfig holds the optional event publisher configuration.
// Events are disabled when URL is empty.
type NATSConfig struct {
	URL string `mapstructure:"url"`
}

// HandoffConfig holds the one-shot snapshot store configuration
type HandoffConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds the logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads the configuration from the config.yaml file.
// A missing file is not an error; defaults and environment overrides apply.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("llm.model", "llama-3.3-70b-versatile")
	viper.SetDefault("database.path", "ideacrafter.db")
	viper.SetDefault("handoff.path", "handoff.bolt")
	viper.SetDefault("log.level", "info")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Secrets can be supplied via environment without a config file.
	if v := os.Getenv("IDEACRAFTER_LLM_API_KEY"); v != "" {
		config.LLM.APIKey = v
	}
	if v := os.Getenv("IDEACRAFTER_LLM_BASE_URL"); v != "" {
		config.LLM.BaseURL = v
	}
	if v := os.Getenv("IDEACRAFTER_GOOGLE_API_KEY"); v != "" {
		config.Search.GoogleAPIKey = v
	}
	if v := os.Getenv("IDEACRAFTER_GOOGLE_CSE_ID"); v != "" {
		config.Search.GoogleCSEID = v
	}

	return &config, nil
}
