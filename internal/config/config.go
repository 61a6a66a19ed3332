package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	customerrors "github.com/axellelanca/refcheck/internal/errors"
)

// Config represents the main structure mapping the entire application configuration.
// This struct uses mapstructure tags to map YAML keys and environment variables to Go struct fields.
type Config struct {
	// Check configures the direct-request status checker
	Check struct {
		DelayMS               int    `mapstructure:"delay_ms"`                // Pause between checks and retry backoff unit
		MaxRetries            int    `mapstructure:"max_retries"`             // Total attempts per code
		Endpoint              string `mapstructure:"endpoint"`                // Status authority URL
		Cookie                string `mapstructure:"cookie"`                  // Forwarded verbatim on every request
		RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds"` // Per-request HTTP client timeout
	} `mapstructure:"check"`

	// Browser configures the headless Chrome checker
	Browser struct {
		TimeoutSeconds int    `mapstructure:"timeout_seconds"` // Wall-clock bound per check
		Headless       bool   `mapstructure:"headless"`
		ExecPath       string `mapstructure:"exec_path"`     // Chrome binary; empty lets chromedp find one
		UserDataDir    string `mapstructure:"user_data_dir"` // Profile holding a logged-in session
		StatusPath     string `mapstructure:"status_path"`   // Path of the exchange to observe
	} `mapstructure:"browser"`

	// Report configures the Markdown outputs
	Report struct {
		SummaryFile string  `mapstructure:"summary_file"` // Written next to the input file
		UnitValue   float64 `mapstructure:"unit_value"`   // Credit per active referral
		Currency    string  `mapstructure:"currency"`
	} `mapstructure:"report"`

	// Scrape configures the page-text checker
	Scrape struct {
		AltValues []float64 `mapstructure:"alt_values"` // Older credit amounts still accepted in headings
	} `mapstructure:"scrape"`

	// Metrics configures the optional Prometheus textfile export
	Metrics struct {
		Textfile string `mapstructure:"textfile"`
	} `mapstructure:"metrics"`

	// Server configures the read-only report server
	Server struct {
		Port int `mapstructure:"port"`
	} `mapstructure:"server"`

	Log struct {
		Level       string `mapstructure:"level"`
		Development bool   `mapstructure:"development"`
	} `mapstructure:"log"`
}

// Delay is Check.DelayMS as a duration.
func (c *Config) Delay() time.Duration {
	return time.Duration(c.Check.DelayMS) * time.Millisecond
}

// RequestTimeout is Check.RequestTimeoutSeconds as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Check.RequestTimeoutSeconds) * time.Second
}

// BrowserTimeout is Browser.TimeoutSeconds as a duration.
func (c *Config) BrowserTimeout() time.Duration {
	return time.Duration(c.Browser.TimeoutSeconds) * time.Second
}

// LoadConfig loads the application configuration using Viper.
// Precedence: environment variables, then ./configs/config.yaml, then defaults.
// A missing config file is not an error.
func LoadConfig() (*Config, error) {
	return load(viper.New(), "./configs")
}

func load(v *viper.Viper, configPath string) (*Config, error) {
	// Enable environment variable overrides for every key
	v.AutomaticEnv()

	// Replace dots with underscores in environment variable names
	// e.g. "check.delay_ms" becomes "CHECK_DELAY_MS"
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Look for config.yaml in configPath
	v.AddConfigPath(configPath)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Default values, used when the config file is missing or omits a key

	v.SetDefault("check.delay_ms", 1000)
	v.SetDefault("check.max_retries", 3)
	v.SetDefault("check.endpoint", "https://cursor.com/api/dashboard/check-referral-code")
	v.SetDefault("check.cookie", "")
	v.SetDefault("check.request_timeout_seconds", 10)
	v.SetDefault("browser.timeout_seconds", 15)
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.exec_path", "")
	v.SetDefault("browser.user_data_dir", "")
	v.SetDefault("browser.status_path", "/api/dashboard/check-referral-code")
	v.SetDefault("report.summary_file", "ACTIVE_REFERRALS.md")
	v.SetDefault("report.unit_value", 50)
	v.SetDefault("report.currency", "$")
	v.SetDefault("scrape.alt_values", []float64{20})
	v.SetDefault("metrics.textfile", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	// Short aliases for the two knobs users set most.
	if err := v.BindEnv("check.delay_ms", "CHECK_DELAY_MS", "DELAY_MS"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("check.cookie", "CHECK_COOKIE", "AUTH_COOKIE"); err != nil {
		return nil, err
	}

	// Attempt to read the config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// A missing file is fine; a malformed or unreadable one is not
			return nil, customerrors.ErrConfigLoad{Path: configPath, Reason: err.Error()}
		}
	}

	// Unmarshal the merged configuration into our strongly-typed struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// At least one attempt per code, and no negative pauses
	if cfg.Check.MaxRetries < 1 {
		cfg.Check.MaxRetries = 1
	}
	if cfg.Check.DelayMS < 0 {
		cfg.Check.DelayMS = 0
	}

	return &cfg, nil
}
