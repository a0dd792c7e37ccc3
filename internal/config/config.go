// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// DatabaseURL is the Postgres DSN.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// DBMaxOpenConns caps the Postgres connection pool; default 10.
	DBMaxOpenConns int `mapstructure:"DB_MAX_OPEN_CONNS"`
	// BcryptCost is the bcrypt cost factor (4–31); default 10, matching the
	// cost the existing verification hashes were generated with.
	BcryptCost int `mapstructure:"BCRYPT_COST"`
	// JWTSecret is the HMAC secret for signing session tokens.
	JWTSecret string `mapstructure:"JWT_SECRET"`
	// JWTAccessTTL is the session token lifetime (e.g. "24h").
	JWTAccessTTL string `mapstructure:"JWT_ACCESS_TTL"`
	// SMTPHost is the SMTP relay host for welcome mail; empty disables mail.
	SMTPHost string `mapstructure:"SMTP_HOST"`
	// SMTPPort is the SMTP relay port.
	SMTPPort int `mapstructure:"SMTP_PORT"`
	// SMTPFrom is the From address on outgoing mail.
	SMTPFrom string `mapstructure:"SMTP_FROM"`
	// FeedKafkaBrokers is a comma-separated list of Kafka broker addresses
	// (e.g. "localhost:9092"); empty disables feed events.
	FeedKafkaBrokers string `mapstructure:"FEED_KAFKA_BROKERS"`
	// FeedKafkaTopic is the Kafka topic for account-created feed events.
	FeedKafkaTopic string `mapstructure:"FEED_KAFKA_TOPIC"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`
}

// Load reads .env (if present), then builds and validates Config from the
// environment via Viper. Missing .env is ignored (e.g. in CI). Env vars
// override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ACCESS_TTL", "24h")
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 25)
	v.SetDefault("SMTP_FROM", "noreply@soapee.com")
	v.SetDefault("FEED_KAFKA_BROKERS", "")
	v.SetDefault("FEED_KAFKA_TOPIC", "soapee-feed")
	v.SetDefault("APP_ENV", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = 10
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, errors.New("config: BCRYPT_COST must be between 4 and 31")
	}
	if cfg.SMTPPort <= 0 || cfg.SMTPPort > 65535 {
		return nil, errors.New("config: SMTP_PORT must be a valid port")
	}
	if cfg.Env == "production" && cfg.JWTSecret == "" {
		return nil, errors.New("config: JWT_SECRET must be set when APP_ENV=production")
	}

	return &cfg, nil
}

// AccessTTL parses JWTAccessTTL as a time.Duration. Returns 24h if unset or invalid.
func (c *Config) AccessTTL() time.Duration {
	d, err := time.ParseDuration(c.JWTAccessTTL)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// BrokerList splits FeedKafkaBrokers on commas, trimming whitespace and
// dropping empty entries. Returns nil when no brokers are configured.
func (c *Config) BrokerList() []string {
	if strings.TrimSpace(c.FeedKafkaBrokers) == "" {
		return nil
	}
	parts := strings.Split(c.FeedKafkaBrokers, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
