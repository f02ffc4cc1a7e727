package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port        int           `yaml:"port"`
	AdminAPIKey string        `yaml:"admin_api_key"`
	CallTimeout time.Duration `yaml:"call_timeout"` // bound on gateway/store calls per request
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type PaymentConfig struct {
	Stripe struct {
		SecretKey   string `yaml:"secret_key"`
		Currency    string `yaml:"currency"`
		AppBaseURL  string `yaml:"app_base_url"` // redirect targets are built from this
		SuccessPath string `yaml:"success_path"` // carries the session id back as a query param
		CancelPath  string `yaml:"cancel_path"`  // back to the landing page
	} `yaml:"stripe"`
}

type MailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Sender   string `yaml:"sender"`
}

type DeliveryConfig struct {
	Interval time.Duration `yaml:"interval"` // how often the worker looks for due chapters
	Cadence  time.Duration `yaml:"cadence"`  // spacing between chapters per subscription
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Payment  PaymentConfig  `yaml:"payment"`
	Mail     MailConfig     `yaml:"mail"`
	Delivery DeliveryConfig `yaml:"delivery"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.CallTimeout <= 0 {
		cfg.Server.CallTimeout = 10 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Redis.TTL <= 0 {
		cfg.Redis.TTL = time.Hour
	}
	if cfg.Payment.Stripe.Currency == "" {
		cfg.Payment.Stripe.Currency = "usd"
	}
	if cfg.Payment.Stripe.SuccessPath == "" {
		cfg.Payment.Stripe.SuccessPath = "/success"
	}
	if cfg.Payment.Stripe.CancelPath == "" {
		cfg.Payment.Stripe.CancelPath = "/"
	}
	if cfg.Delivery.Interval <= 0 {
		cfg.Delivery.Interval = 15 * time.Minute
	}
	if cfg.Delivery.Cadence <= 0 {
		cfg.Delivery.Cadence = 24 * time.Hour
	}

	// Minimal validation
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}
	if cfg.Payment.Stripe.SecretKey == "" {
		return nil, errors.New("payment.stripe.secret_key is required")
	}
	if cfg.Payment.Stripe.AppBaseURL == "" {
		return nil, errors.New("payment.stripe.app_base_url is required")
	}
	cfg.Payment.Stripe.AppBaseURL = strings.TrimRight(cfg.Payment.Stripe.AppBaseURL, "/")

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
