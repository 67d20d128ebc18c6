// Package config holds runtime settings for the scannorm CLI. The library
// core takes no configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config captures CLI settings: logging and the optional downstream
// publisher.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	NATS    NATSConfig    `mapstructure:"nats"`
}

// LoggingConfig controls log verbosity and encoding.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// NATSConfig holds the connection settings for --publish.
type NATSConfig struct {
	URL     string `mapstructure:"url"`
	Subject string `mapstructure:"subject"`
}

// Load reads configuration from an optional YAML file and SCANNORM_*
// environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.subject", "scannorm.records")

	v.SetEnvPrefix("SCANNORM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg, _ := Load("")
	return cfg
}
