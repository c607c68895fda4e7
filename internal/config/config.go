// Package config reads the runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/moneyhealth/backend/internal/advisor"
)

type Config struct {
	// HTTP server
	APIURL       *url.URL
	Port         string
	AllowOrigins []string
	EnablePprof  bool

	// Database
	DBPath string

	// Narrative service
	AIBaseURL string
	AITimeout time.Duration

	// AMQP
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	errs []error
}

// LoadDotenv loads variables from a .env file in the working directory if
// there is one. Variables already set in the environment take precedence.
func LoadDotenv() {
	_ = godotenv.Load()
}

// Load reads the configuration from the environment. Problems are collected
// and reported by Validate.
func Load() *Config {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DBPath:      getEnv("DB_PATH", "data/money-health.db"),
		EnablePprof: getEnv("ENABLE_PPROF", "false") == "true",

		AIBaseURL: getEnv("AI_BASE_URL", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "money-health"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "ledger-changes"),
	}

	if origins, ok := os.LookupEnv("CORS_ALLOW_ORIGINS"); ok {
		cfg.AllowOrigins = strings.Fields(origins)
	}

	apiURL, ok := os.LookupEnv("API_URL")
	if !ok {
		cfg.errs = append(cfg.errs, errors.New("environment variable API_URL must be set"))
	} else {
		u, err := url.Parse(apiURL)
		if err != nil {
			cfg.errs = append(cfg.errs, fmt.Errorf("environment variable API_URL must be a valid URL: %w", err))
		}
		cfg.APIURL = u
	}

	timeout, err := time.ParseDuration(getEnv("AI_TIMEOUT", advisor.DefaultTimeout.String()))
	if err != nil {
		cfg.errs = append(cfg.errs, fmt.Errorf("invalid AI_TIMEOUT: %w", err))
	}
	cfg.AITimeout = timeout

	return cfg
}

// Validate returns all problems with the configuration joined into one
// error.
func (c *Config) Validate() error {
	errs := append([]error{}, c.errs...)

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Errorf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.APIURL != nil && c.APIURL.Scheme != "http" && c.APIURL.Scheme != "https" {
		errs = append(errs, fmt.Errorf("invalid API_URL scheme '%s': must be 'http' or 'https'", c.APIURL.Scheme))
	}

	if c.DBPath == "" {
		errs = append(errs, errors.New("DB_PATH must not be empty"))
	}

	if c.AIBaseURL != "" {
		if u, err := url.Parse(c.AIBaseURL); err != nil {
			errs = append(errs, fmt.Errorf("invalid AI_BASE_URL '%s': %w", c.AIBaseURL, err))
		} else if u.Scheme != "http" && u.Scheme != "https" {
			errs = append(errs, fmt.Errorf("invalid AI_BASE_URL scheme '%s': must be 'http' or 'https'", u.Scheme))
		}
	}

	if c.AITimeout <= 0 {
		errs = append(errs, fmt.Errorf("invalid AI_TIMEOUT %s: must be positive", c.AITimeout))
	}

	if c.AMQPURL != "" {
		if u, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Errorf("invalid AMQP URL: %w", err))
		} else if u.Scheme != "amqp" && u.Scheme != "amqps" {
			errs = append(errs, fmt.Errorf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", u.Scheme))
		}

		if c.AMQPExchange == "" {
			errs = append(errs, errors.New("AMQP exchange name cannot be empty when AMQP URL is provided"))
		}

		if c.AMQPQueue == "" {
			errs = append(errs, errors.New("AMQP queue name cannot be empty when AMQP URL is provided"))
		}
	}

	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
