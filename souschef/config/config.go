package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	internal "github.com/hearthware/souschef/souschef"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Generation GenerationConfig `mapstructure:"generation"`
	Assistant  AssistantConfig  `mapstructure:"assistant"`
	Retrieval  RetrievalConfig  `mapstructure:"retrieval"`
}

// ServerConfig stores HTTP surface settings.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DatabaseConfig stores the embedded recipe database location.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// GenerationConfig stores generation backend settings.
type GenerationConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	Model          string        `mapstructure:"model"`
	Temperature    float32       `mapstructure:"temperature"`
	TopP           float32       `mapstructure:"top_p"`
	NumPredict     int           `mapstructure:"num_predict"`     // output-length budget
	NumCtx         int           `mapstructure:"num_ctx"`         // backend context window
	RepeatPenalty  float32       `mapstructure:"repeat_penalty"`  // discourage repetition
	Stop           []string      `mapstructure:"stop"`            // turn-boundary stop sequences
	RequestTimeout time.Duration `mapstructure:"request_timeout"` // bound on one generate call
	HealthTimeout  time.Duration `mapstructure:"health_timeout"`  // short status probe
	WarmUpOnStart  bool          `mapstructure:"warm_up_on_start"`
}

// AssistantConfig stores conversation and prompt settings.
type AssistantConfig struct {
	HistoryWindow    int  `mapstructure:"history_window"`    // entries kept per user
	EnhancerWindow   int  `mapstructure:"enhancer_window"`   // entries scanned for context carry
	DescriptionLimit int  `mapstructure:"description_limit"` // prompt field truncation
	IngredientLimit  int  `mapstructure:"ingredient_limit"`
	MaxOutputSize    int  `mapstructure:"max_output_size"` // response size clamp, runes
	EnableTracing    bool `mapstructure:"enable_tracing"`
}

// RetrievalConfig stores cascade settings.
type RetrievalConfig struct {
	Limit int `mapstructure:"limit"` // per-strategy candidate cap
}

// LoadConfig reads configuration from file or environment variables.
// Without a config file every value falls back to its default.
func LoadConfig(configPath string) (*Config, error) {
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath(filepath.Join("etc", internal.DefaultAppName))
		viper.AddConfigPath(internal.DefaultConfigPath)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetDefault("server.port", 8000)

	viper.SetDefault("database.path", internal.DefaultDatabasePath)

	viper.SetDefault("generation.base_url", internal.DefaultOllamaBaseURL)
	viper.SetDefault("generation.model", "mistral:7b-instruct-q4_0")
	viper.SetDefault("generation.temperature", 0.3)
	viper.SetDefault("generation.top_p", 0.8)
	viper.SetDefault("generation.num_predict", 300)
	viper.SetDefault("generation.num_ctx", 2048)
	viper.SetDefault("generation.repeat_penalty", 1.1)
	viper.SetDefault("generation.stop", []string{"\n\n\n", "User:", "Human:"})
	viper.SetDefault("generation.request_timeout", "60s")
	viper.SetDefault("generation.health_timeout", "3s")
	viper.SetDefault("generation.warm_up_on_start", true)

	viper.SetDefault("assistant.history_window", 5)
	viper.SetDefault("assistant.enhancer_window", 2)
	viper.SetDefault("assistant.description_limit", 80)
	viper.SetDefault("assistant.ingredient_limit", 120)
	viper.SetDefault("assistant.max_output_size", 4000)
	viper.SetDefault("assistant.enable_tracing", true)

	viper.SetDefault("retrieval.limit", 2)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
