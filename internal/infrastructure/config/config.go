// Package config provides centralized configuration management using
// Viper for loading and validation.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Server ServerConfig `mapstructure:"server"`
	AI     AIConfig     `mapstructure:"ai"`
	Images ImagesConfig `mapstructure:"images"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Chat   ChatConfig   `mapstructure:"chat"`
}

// AppConfig contains application-level configuration.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	SessionMaxAge   time.Duration `mapstructure:"session_max_age"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
}

// AIConfig contains generative provider configuration.
type AIConfig struct {
	APIKey         string        `mapstructure:"api_key"`
	Model          string        `mapstructure:"model"`
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// ImagesConfig contains stock-photo service configuration.
type ImagesConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Width   int    `mapstructure:"width"`
	Height  int    `mapstructure:"height"`
	Tags    string `mapstructure:"tags"`
}

// CacheConfig bounds the per-panel query caches.
type CacheConfig struct {
	MaxEntries int `mapstructure:"max_entries"`
}

// ChatConfig contains the assistant persona strings.
type ChatConfig struct {
	SystemInstruction string `mapstructure:"system_instruction"`
	Greeting          string `mapstructure:"greeting"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/culinaglass")
	}

	v.SetEnvPrefix("CULINAGLASS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Defaults plus environment cover the common case.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "CulinaGlass")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "json")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.session_max_age", "12h")
	v.SetDefault("server.max_upload_bytes", 8<<20) // 8MB pantry photos

	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("ai.request_timeout", "45s")

	v.SetDefault("images.base_url", "https://loremflickr.com")
	v.SetDefault("images.width", 800)
	v.SetDefault("images.height", 600)
	v.SetDefault("images.tags", "food,meal,cooked,dish")

	v.SetDefault("cache.max_entries", 256)

	v.SetDefault("chat.system_instruction",
		"Eres un chef experto, amable y creativo. Ayudas a los usuarios con recetas, "+
			"técnicas culinarias y sugerencias de ingredientes de forma concisa y profesional.")
	v.SetDefault("chat.greeting",
		"¡Hola! Soy tu Chef Personal con IA. ¿En qué puedo ayudarte hoy? "+
			"¿Buscas una receta o necesitas sustituir un ingrediente?")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.AI.APIKey == "" && c.App.Environment == "production" {
		return fmt.Errorf("ai.api_key is required in production")
	}
	if c.AI.Model == "" {
		return fmt.Errorf("ai.model is required")
	}
	return nil
}

// IsProduction returns true if running in production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
