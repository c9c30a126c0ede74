package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Analytics struct {
		BaseURL      string        `yaml:"base_url"`
		Timeout      time.Duration `yaml:"timeout"`
		PollInterval time.Duration `yaml:"poll_interval"`
		Limit        int           `yaml:"limit"`
		MaxLag       int           `yaml:"max_lag"`
		Intervals    []string      `yaml:"intervals"`
		Symbols      []string      `yaml:"symbols"`
	} `yaml:"analytics"`
	Trading struct {
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"trading"`
	Arbitrage struct {
		BaseURL      string        `yaml:"base_url"`
		Timeout      time.Duration `yaml:"timeout"`
		PollInterval time.Duration `yaml:"poll_interval"`
	} `yaml:"arbitrage"`
	Gate struct {
		Namespace string `yaml:"namespace"`
		Redis     struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"gate"`
	Audit struct {
		Enabled      bool          `yaml:"enabled"`
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic"`
		Compression  string        `yaml:"compression"`
		RequiredAcks int           `yaml:"required_acks"`
		MaxAttempts  int           `yaml:"max_attempts"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"audit"`
	Journal struct {
		Enabled     bool          `yaml:"enabled"`
		Host        string        `yaml:"host"`
		Port        int           `yaml:"port"`
		Database    string        `yaml:"database"`
		User        string        `yaml:"user"`
		Password    string        `yaml:"password"`
		DialTimeout time.Duration `yaml:"dial_timeout"`
		ReadTimeout time.Duration `yaml:"read_timeout"`
	} `yaml:"journal"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	c.applyDefaults()
	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("ANALYTICS_URL"); v != "" {
		c.Analytics.BaseURL = v
	}
	if v := os.Getenv("TRADING_URL"); v != "" {
		c.Trading.BaseURL = v
	}
	if v := os.Getenv("ARBITRAGE_URL"); v != "" {
		c.Arbitrage.BaseURL = v
	}
	if v := os.Getenv("SYMBOLS"); v != "" {
		c.Analytics.Symbols = strings.Split(v, ",")
	}
	if v := os.Getenv("GATE_REDIS_HOST"); v != "" {
		c.Gate.Redis.Host = v
	}
	if v := os.Getenv("AUDIT_BROKERS"); v != "" {
		c.Audit.Brokers = strings.Split(v, ",")
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Analytics.BaseURL == "" {
		return fmt.Errorf("analytics.base_url is required")
	}
	if c.Trading.BaseURL == "" {
		return fmt.Errorf("trading.base_url is required")
	}
	if c.Arbitrage.BaseURL == "" {
		return fmt.Errorf("arbitrage.base_url is required")
	}
	if c.Audit.Enabled && len(c.Audit.Brokers) == 0 {
		return fmt.Errorf("audit.brokers is required when audit is enabled")
	}
	if c.Journal.Enabled && c.Journal.Host == "" {
		return fmt.Errorf("journal.host is required when journal is enabled")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Analytics.PollInterval <= 0 {
		c.Analytics.PollInterval = 30 * time.Second
	}
	if c.Analytics.Timeout <= 0 {
		c.Analytics.Timeout = 10 * time.Second
	}
	if c.Analytics.Limit <= 0 {
		c.Analytics.Limit = 50
	}
	if c.Trading.Timeout <= 0 {
		c.Trading.Timeout = 15 * time.Second
	}
	if c.Arbitrage.Timeout <= 0 {
		c.Arbitrage.Timeout = 15 * time.Second
	}
	if c.Arbitrage.PollInterval <= 0 {
		c.Arbitrage.PollInterval = 20 * time.Second
	}
	if c.Gate.Namespace == "" {
		c.Gate.Namespace = "3omla_gate"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
