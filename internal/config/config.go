// Package config resolves cookme's on-disk locations and runtime settings.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Viper keys.
const (
	KeyDataDir        = "data_dir"
	KeyDBPath         = "db_path"
	KeyLogLevel       = "log.level"
	KeyLogFormat      = "log.format"
	KeyServerAddr     = "server.addr"
	KeyServerRate     = "server.rate_limit"
	KeyMaxQueryLength = "search.max_query_length"
)

// DefaultMaxQueryLength bounds a search query at the presentation boundary.
const DefaultMaxQueryLength = 500

// Config is the resolved runtime configuration.
type Config struct {
	DataDir string       `mapstructure:"data_dir"`
	DBPath  string       `mapstructure:"db_path"`
	Log     LogConfig    `mapstructure:"log"`
	Server  ServerConfig `mapstructure:"server"`
	Search  SearchConfig `mapstructure:"search"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	// RateLimit is the number of requests per minute allowed per client IP.
	RateLimit int `mapstructure:"rate_limit"`
}

// SearchConfig holds search boundary settings.
type SearchConfig struct {
	MaxQueryLength int `mapstructure:"max_query_length"`
}

// SetDefaults registers default values and env bindings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyServerAddr, ":8080")
	v.SetDefault(KeyServerRate, 120)
	v.SetDefault(KeyMaxQueryLength, DefaultMaxQueryLength)

	v.SetEnvPrefix("COOKME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// LoadDotEnv loads a .env file from the working directory when one exists.
func LoadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Load reads the config from the global viper instance.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Search.MaxQueryLength <= 0 {
		cfg.Search.MaxQueryLength = DefaultMaxQueryLength
	}
	return &cfg, nil
}
