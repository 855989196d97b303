package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable override, e.g. REPORT_TRACKER_API_BASE_URL
const EnvPrefix = "REPORT_TRACKER"

// DefaultBanks are the institutions offered when creating a report
var DefaultBanks = []string{
	"HDFC Home Loans",
	"Axis Home Loans",
	"IDFC Life",
	"SBI Home Loans",
	"ICICI Home Loans",
	"Kotak Home Loans",
	"PNB Home Loans",
	"BOI Home Loans",
	"Canara Home Loans",
	"Union Home Loans",
}

// Config represents the application configuration
type Config struct {
	API   APIConfig   `mapstructure:"api"`
	Share ShareConfig `mapstructure:"share"`
	Log   LogConfig   `mapstructure:"log"`
	Banks []string    `mapstructure:"banks"`
}

// APIConfig points at the spreadsheet API holding the reports
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ShareConfig defines the messaging deep link used to share summaries
type ShareConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// LogConfig controls the logger
type LogConfig struct {
	Level  string `mapstructure:"level"`  // logrus level name
	Format string `mapstructure:"format"` // "text" or "json"
}

// LoadConfig loads configuration from file and environment variables.
// An empty configPath skips the file; a .env file in the working directory
// is loaded into the environment when present.
func LoadConfig(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("toml")

	// Set defaults
	v.SetDefault("api.base_url", "")
	v.SetDefault("api.timeout", 15*time.Second)
	v.SetDefault("share.base_url", "https://wa.me/")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("banks", DefaultBanks)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// Validate reports settings the client cannot run without
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return errors.New("api.base_url is not set")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %v", c.API.Timeout)
	}
	return nil
}
