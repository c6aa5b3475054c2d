// internal/config/config.go
//
// Runtime configuration.
// Load order (later wins):
//   1. Defaults.
//   2. Optional YAML file.
//   3. Environment variables (a .env file is loaded by main beforehand).
//
// The merged result is checked with struct tags before use.

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the full set of tunables.
type Config struct {
	Port         string `yaml:"port" validate:"required,numeric"`
	LogLevel     string `yaml:"log_level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	WordsFile    string `yaml:"words_file"`
	DailySalt    string `yaml:"daily_salt" validate:"required"`
	ClientOrigin string `yaml:"client_origin" validate:"required"`
	TrustProxy   bool   `yaml:"trust_proxy"` // honor X-Forwarded-For / X-Real-IP

	MaxAttempts     int           `yaml:"max_attempts" validate:"gte=1,lte=26"`
	RevealDelay     time.Duration `yaml:"reveal_delay" validate:"gte=0"`
	Seed            uint64        `yaml:"seed"`
	DistinctTargets bool          `yaml:"distinct_targets"`
	ShareFeedback   bool          `yaml:"share_feedback"`

	RateLimit float64       `yaml:"rate_limit" validate:"gte=0"`
	RateBurst int           `yaml:"rate_burst" validate:"gte=1"`
	IdleTTL   time.Duration `yaml:"idle_ttl" validate:"gte=1s"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:            "5175",
		LogLevel:        "info",
		DailySalt:       "local_dev_salt",
		ClientOrigin:    "http://localhost:5173",
		MaxAttempts:     6,
		RevealDelay:     150 * time.Millisecond,
		DistinctTargets: true,
		ShareFeedback:   true,
		RateLimit:       5,
		RateBurst:       10,
		IdleTTL:         time.Hour,
	}
}

var validate = validator.New()

// Load builds a Config from defaults, the YAML file at path (if non-empty) and
// the environment, then validates it.
func Load(path string) (Config, error) {
	c := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return c, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return c, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := c.applyEnv(os.LookupEnv); err != nil {
		return c, err
	}
	if err := validate.Struct(c); err != nil {
		return c, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

// applyEnv overrides fields from environment variables found by lookup.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	str := func(k string, dst *string) {
		if v, ok := lookup(k); ok && v != "" {
			*dst = v
		}
	}
	str("PORT", &c.Port)
	str("LOG_LEVEL", &c.LogLevel)
	str("WORDS_FILE", &c.WordsFile)
	str("DAILY_SALT", &c.DailySalt)
	str("CLIENT_ORIGIN", &c.ClientOrigin)

	parse := func(k string, fn func(string) error) {
		v, ok := lookup(k)
		if !ok || strings.TrimSpace(v) == "" {
			return
		}
		if err := fn(strings.TrimSpace(v)); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", k, err))
		}
	}
	parse("MAX_ATTEMPTS", func(v string) (err error) { c.MaxAttempts, err = strconv.Atoi(v); return })
	parse("REVEAL_DELAY", func(v string) (err error) { c.RevealDelay, err = time.ParseDuration(v); return })
	parse("WARDLE_SEED", func(v string) (err error) { c.Seed, err = strconv.ParseUint(v, 10, 64); return })
	parse("DISTINCT_TARGETS", func(v string) (err error) { c.DistinctTargets, err = strconv.ParseBool(v); return })
	parse("SHARE_FEEDBACK", func(v string) (err error) { c.ShareFeedback, err = strconv.ParseBool(v); return })
	parse("RATE_LIMIT", func(v string) (err error) { c.RateLimit, err = strconv.ParseFloat(v, 64); return })
	parse("RATE_BURST", func(v string) (err error) { c.RateBurst, err = strconv.Atoi(v); return })
	parse("TRUST_PROXY", func(v string) (err error) { c.TrustProxy, err = strconv.ParseBool(v); return })
	parse("IDLE_TTL", func(v string) (err error) { c.IdleTTL, err = time.ParseDuration(v); return })
	return errors.Join(errs...)
}

// Addr is the listen address for Port.
func (c Config) Addr() string { return ":" + c.Port }
