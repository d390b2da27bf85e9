package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App      AppConfig      `koanf:"app"`
	Database DatabaseConfig `koanf:"database"`
	RabbitMQ RabbitMQConfig `koanf:"rabbitmq"`
}

type AppConfig struct {
	Name     string `koanf:"name"`
	LogLevel string `koanf:"log_level"`
	Currency string `koanf:"currency"`
}

type DatabaseConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Database string `koanf:"database"`
}

type RabbitMQConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	VHost    string `koanf:"vhost"`
	UseTLS   bool   `koanf:"use_tls"`
}

// Load reads the YAML config file and overlays environment variables
// prefixed with STOCKSYS_, nested keys separated by __
// (e.g. STOCKSYS_DATABASE__PASSWORD).
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load config file: %w", err)
	}

	if err := k.Load(env.Provider("STOCKSYS_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "STOCKSYS_")
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database.host required")
	}
	if c.RabbitMQ.Host == "" {
		return fmt.Errorf("rabbitmq.host required")
	}
	return nil
}
