package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Logging    LoggingConfig    `yaml:"logging"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Reports    ReportConfig     `yaml:"reports"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type HTTPConfig struct {
	Port int `yaml:"port"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type RateLimitConfig struct {
	RPS           float64 `yaml:"rps"`
	Burst         int     `yaml:"burst"`
	PerUserLimit  int     `yaml:"per_user_limit"`
	PerUserWindow int     `yaml:"per_user_window_seconds"`
}

type ReportConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Load reads the YAML config, layering a .env file (if present) and
// environment overrides for deploy-specific values on top.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SHARENT_DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("SHARENT_HTTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.HTTP.Port = port
		}
	}
	if v := os.Getenv("REDIS_ADDRESS"); v != "" {
		c.Redis.Address = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "sharent"
	}
	if c.App.Environment == "" {
		c.App.Environment = "development"
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.Redis.PoolSize == 0 {
		c.Redis.PoolSize = 10
	}
	if c.RateLimit.RPS == 0 {
		c.RateLimit.RPS = 50
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 100
	}
	if c.RateLimit.PerUserLimit == 0 {
		c.RateLimit.PerUserLimit = 30
	}
	if c.RateLimit.PerUserWindow == 0 {
		c.RateLimit.PerUserWindow = 60
	}
	if c.Reports.Path == "" {
		c.Reports.Path = "reports/bookings.xlsx"
	}
}

func (c *Config) validate() error {
	if c.Database.Path == "" {
		return errors.New("database.path is required")
	}
	if c.Redis.Enabled && c.Redis.Address == "" {
		return errors.New("redis.address is required when redis is enabled")
	}
	return nil
}
