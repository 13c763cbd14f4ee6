package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Steam    SteamConfig    `mapstructure:"steam"`
	Scanner  ScannerConfig  `mapstructure:"scanner"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Host string `mapstructure:"host"`
}

// SteamConfig holds Steam API configuration
type SteamConfig struct {
	StoreBaseURL      string `mapstructure:"store_base_url"`
	APIBaseURL        string `mapstructure:"api_base_url"`
	Timeout           int    `mapstructure:"timeout"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute"`
}

// ScannerConfig holds the scan loop tuning knobs. Quota stops the search;
// Limit caps how many deals a page returns. They are deliberately separate.
type ScannerConfig struct {
	WindowSize    int `mapstructure:"window_size"`
	Quota         int `mapstructure:"quota"`
	Limit         int `mapstructure:"limit"`
	MaxAttempts   int `mapstructure:"max_attempts"`
	BaseBackoffMS int `mapstructure:"base_backoff_ms"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// RedisConfig holds Redis connection details
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

// Load loads configuration from YAML file with environment variable overrides
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")

	viper.SetDefault("steam.store_base_url", "https://store.steampowered.com")
	viper.SetDefault("steam.api_base_url", "https://api.steampowered.com")
	viper.SetDefault("steam.timeout", 30)
	viper.SetDefault("steam.requests_per_minute", 40)

	viper.SetDefault("scanner.window_size", 20)
	viper.SetDefault("scanner.quota", 10)
	viper.SetDefault("scanner.limit", 9)
	viper.SetDefault("scanner.max_attempts", 3)
	viper.SetDefault("scanner.base_backoff_ms", 2000)

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "steamdeals")
	viper.SetDefault("database.user", "steamdeals_user")
	viper.SetDefault("database.password", "steamdeals_pass")

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.database", 0)
}
