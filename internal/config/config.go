package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"
)

type ServerConfig struct {
	Port string `yaml:"port"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type SessionConfig struct {
	TTLMinutes int `yaml:"ttl_minutes"`
}

type AuthConfig struct {
	// Failed-login throttle, per email address.
	LoginAttemptsPerMinute int `yaml:"login_attempts_per_minute"`
	LoginBurst             int `yaml:"login_burst"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Session  SessionConfig  `yaml:"session"`
	Auth     AuthConfig     `yaml:"auth"`
}

// Load reads the optional YAML config file, then applies environment
// overrides. Environment variables always win so deployments can keep
// secrets out of the file.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server:  ServerConfig{Port: "5050"},
		Redis:   RedisConfig{Addr: "localhost:6379"},
		Session: SessionConfig{TTLMinutes: 60},
		Auth:    AuthConfig{LoginAttemptsPerMinute: 10, LoginBurst: 5},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("SESSION_TTL_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("SESSION_TTL_MINUTES: %w", err)
		}
		cfg.Session.TTLMinutes = n
	}

	if cfg.Session.TTLMinutes <= 0 {
		cfg.Session.TTLMinutes = 60
	}

	return cfg, nil
}

// SessionTTL returns the configured session lifetime.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLMinutes) * time.Minute
}
