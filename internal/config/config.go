package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the restaurant system
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Redis    RedisConfig    `yaml:"redis"`
	Pricing  PricingConfig  `yaml:"pricing"`
	Notify   NotifyConfig   `yaml:"notify"`
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// DatabaseConfig holds database connection and pool configuration
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// RabbitMQConfig holds RabbitMQ connection configuration
type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr    string `yaml:"addr"`
	Channel string `yaml:"channel"`
}

// PricingConfig holds the discount policy parameters
type PricingConfig struct {
	Tiers     map[string]int  `yaml:"tiers"`
	Promo     PromoConfig     `yaml:"promo"`
	Voucher   VoucherConfig   `yaml:"voucher"`
	HappyHour HappyHourConfig `yaml:"happy_hour"`
}

// PromoConfig holds the flat promo discount parameters
type PromoConfig struct {
	Amount      int64 `yaml:"amount"`
	MinSubtotal int64 `yaml:"min_subtotal"`
}

// VoucherConfig holds the capped percentage voucher parameters
type VoucherConfig struct {
	Percent   int   `yaml:"percent"`
	MaxAmount int64 `yaml:"max_amount"`
}

// HappyHourConfig holds the time-window discount parameters
type HappyHourConfig struct {
	Percent   int `yaml:"percent"`
	StartHour int `yaml:"start_hour"`
	EndHour   int `yaml:"end_hour"`
}

// NotifyConfig holds notification hub settings
type NotifyConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Load reads configuration from a YAML file and applies environment overrides
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		HTTP: HTTPConfig{Port: 3000},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "warung",
			MaxConns: 25,
			MinConns: 5,
		},
		RabbitMQ: RabbitMQConfig{
			Host:     "localhost",
			Port:     5672,
			User:     "guest",
			Password: "guest",
		},
		Redis: RedisConfig{
			Addr:    "localhost:6379",
			Channel: "kitchen_display",
		},
		Pricing: PricingConfig{
			Tiers: map[string]int{
				"silver":   5,
				"gold":     10,
				"platinum": 15,
			},
			Promo:     PromoConfig{Amount: 20000, MinSubtotal: 100000},
			Voucher:   VoucherConfig{Percent: 20, MaxAmount: 50000},
			HappyHour: HappyHourConfig{Percent: 25, StartHour: 14, EndHour: 16},
		},
		Notify: NotifyConfig{TimeoutSeconds: 5},
	}
}

// applyEnv overrides connection settings from the environment, so deployments
// can keep credentials out of the config file
func (c *Config) applyEnv() {
	c.Database.Host = getenv("DATABASE_HOST", c.Database.Host)
	c.Database.Port = getenvInt("DATABASE_PORT", c.Database.Port)
	c.Database.User = getenv("DATABASE_USER", c.Database.User)
	c.Database.Password = getenv("DATABASE_PASSWORD", c.Database.Password)
	c.Database.Database = getenv("DATABASE_NAME", c.Database.Database)

	c.RabbitMQ.Host = getenv("RABBITMQ_HOST", c.RabbitMQ.Host)
	c.RabbitMQ.Port = getenvInt("RABBITMQ_PORT", c.RabbitMQ.Port)
	c.RabbitMQ.User = getenv("RABBITMQ_USER", c.RabbitMQ.User)
	c.RabbitMQ.Password = getenv("RABBITMQ_PASSWORD", c.RabbitMQ.Password)

	c.Redis.Addr = getenv("REDIS_ADDR", c.Redis.Addr)
}

func (c *Config) validate() error {
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("database.max_conns must be positive, got %d", c.Database.MaxConns)
	}
	if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns must be between 0 and max_conns, got %d", c.Database.MinConns)
	}
	if c.Pricing.HappyHour.StartHour < 0 || c.Pricing.HappyHour.StartHour > 23 {
		return fmt.Errorf("pricing.happy_hour.start_hour must be 0-23, got %d", c.Pricing.HappyHour.StartHour)
	}
	if c.Pricing.HappyHour.EndHour < 0 || c.Pricing.HappyHour.EndHour > 24 {
		return fmt.Errorf("pricing.happy_hour.end_hour must be 0-24, got %d", c.Pricing.HappyHour.EndHour)
	}
	if c.Pricing.Voucher.MaxAmount < 0 {
		return fmt.Errorf("pricing.voucher.max_amount must be non-negative")
	}
	if c.Notify.TimeoutSeconds <= 0 {
		return fmt.Errorf("notify.timeout_seconds must be positive")
	}
	return nil
}

// NotifyTimeout returns the per-subscriber delivery timeout
func (c *Config) NotifyTimeout() time.Duration {
	return time.Duration(c.Notify.TimeoutSeconds) * time.Second
}

// DatabaseURL returns a PostgreSQL connection URL
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Database)
}

// RabbitMQURL returns an AMQP connection URL
func (c *Config) RabbitMQURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/",
		c.RabbitMQ.User, c.RabbitMQ.Password, c.RabbitMQ.Host, c.RabbitMQ.Port)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
