package configloader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL     = "https://api.coingecko.com/api/v3"
	DefaultStoragePath = "data/coinboard.db"

	StorageDriverBolt   = "bolt"
	StorageDriverMemory = "memory"
)

// Config is the top-level configuration structure.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	CoinGecko CoinGeckoConfig `yaml:"coinGecko"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Storage   StorageConfig   `yaml:"storage"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// ServerConfig holds the REST server configuration. Timeouts are in seconds.
type ServerConfig struct {
	Port         string   `yaml:"port"`
	ReadTimeout  int      `yaml:"readTimeout"`
	WriteTimeout int      `yaml:"writeTimeout"`
	IdleTimeout  int      `yaml:"idleTimeout"`
	AllowOrigins []string `yaml:"allowOrigins"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level      string `yaml:"level"`     // e.g., "debug", "info", "warn", "error"
	Console    bool   `yaml:"console"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMB"` // rotation applies only when File is set
	MaxBackups int    `yaml:"maxBackups"`
}

// CoinGeckoConfig holds the configuration for the market-data client.
type CoinGeckoConfig struct {
	BaseURL                  string `yaml:"baseURL"`
	APIKey                   string `yaml:"apiKey"`
	RequestTimeoutMillis     int64  `yaml:"requestTimeoutMillis"`
	MaxAttempts              int    `yaml:"maxAttempts"`
	RetryDelayMillis         int64  `yaml:"retryDelayMillis"`
	RateLimitBaseDelayMillis int64  `yaml:"rateLimitBaseDelayMillis"`
	RequestsPerMinute        int    `yaml:"requestsPerMinute"`
}

// DashboardConfig holds the market table and asset view settings.
type DashboardConfig struct {
	PageSize             int   `yaml:"pageSize"`
	WatchlistFetchSize   int   `yaml:"watchlistFetchSize"`
	SearchDebounceMillis int64 `yaml:"searchDebounceMillis"`
	DefaultChartDays     int   `yaml:"defaultChartDays"`
}

// StorageConfig selects the key-value driver holding the watchlist.
type StorageConfig struct {
	Driver string `yaml:"driver"` // "bolt" or "memory"
	Path   string `yaml:"path"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// envOverrides are read from the process environment after the YAML file.
type envOverrides struct {
	APIKey      string `env:"COINGECKO_API_KEY"`
	Port        string `env:"COINBOARD_PORT"`
	LogLevel    string `env:"LOG_LEVEL"`
	StoragePath string `env:"STORAGE_PATH"`
}

func (c CoinGeckoConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMillis) * time.Millisecond
}

func (c CoinGeckoConfig) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMillis) * time.Millisecond
}

func (c CoinGeckoConfig) RateLimitBaseDelay() time.Duration {
	return time.Duration(c.RateLimitBaseDelayMillis) * time.Millisecond
}

func (d DashboardConfig) SearchDebounce() time.Duration {
	return time.Duration(d.SearchDebounceMillis) * time.Millisecond
}

// Load reads the YAML file at path, loads a .env file from the working directory if there is one,
// applies environment overrides and defaults, and validates the result.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return fmt.Errorf("failed to parse environment overrides: %w", err)
	}
	if overrides.APIKey != "" {
		cfg.CoinGecko.APIKey = overrides.APIKey
		logrus.Info("CoinGecko.APIKey taken from COINGECKO_API_KEY")
	}
	if overrides.Port != "" {
		cfg.Server.Port = overrides.Port
		logrus.Infof("Server.Port overridden by COINBOARD_PORT: %s", overrides.Port)
	}
	if overrides.LogLevel != "" {
		cfg.Logging.Level = overrides.LogLevel
	}
	if overrides.StoragePath != "" {
		cfg.Storage.Path = overrides.StoragePath
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 30
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if cfg.CoinGecko.BaseURL == "" {
		cfg.CoinGecko.BaseURL = DefaultBaseURL
		logrus.Infof("CoinGecko.BaseURL not set, defaulting to %s", cfg.CoinGecko.BaseURL)
	}
	if cfg.CoinGecko.RequestTimeoutMillis == 0 {
		cfg.CoinGecko.RequestTimeoutMillis = 10000
		logrus.Infof("CoinGecko.RequestTimeoutMillis not set, defaulting to %d ms", cfg.CoinGecko.RequestTimeoutMillis)
	}
	if cfg.CoinGecko.MaxAttempts == 0 {
		cfg.CoinGecko.MaxAttempts = 3
	}
	if cfg.CoinGecko.RetryDelayMillis == 0 {
		cfg.CoinGecko.RetryDelayMillis = 1000
	}
	if cfg.CoinGecko.RateLimitBaseDelayMillis == 0 {
		cfg.CoinGecko.RateLimitBaseDelayMillis = 1000
	}
	if cfg.CoinGecko.APIKey == "" {
		logrus.Warn("CoinGecko.APIKey is empty, requests go out without a demo key and are rate limited harder")
	}

	if cfg.Dashboard.PageSize == 0 {
		cfg.Dashboard.PageSize = 50
	}
	if cfg.Dashboard.WatchlistFetchSize == 0 {
		cfg.Dashboard.WatchlistFetchSize = 250
	}
	if cfg.Dashboard.SearchDebounceMillis == 0 {
		cfg.Dashboard.SearchDebounceMillis = 300
	}
	if cfg.Dashboard.DefaultChartDays == 0 {
		cfg.Dashboard.DefaultChartDays = 7
	}

	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = StorageDriverBolt
	}
	cfg.Storage.Driver = strings.ToLower(cfg.Storage.Driver)
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultStoragePath
		logrus.Infof("Storage.Path not set, defaulting to %s", cfg.Storage.Path)
	}
}

// Validate rejects values the services cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.CoinGecko.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("coinGecko.maxAttempts must be at least 1, got %d", c.CoinGecko.MaxAttempts))
	}
	if c.CoinGecko.RequestTimeoutMillis < 0 || c.CoinGecko.RetryDelayMillis < 0 || c.CoinGecko.RateLimitBaseDelayMillis < 0 {
		errs = append(errs, errors.New("coinGecko durations must not be negative"))
	}
	if c.CoinGecko.RequestsPerMinute < 0 {
		errs = append(errs, fmt.Errorf("coinGecko.requestsPerMinute must not be negative, got %d", c.CoinGecko.RequestsPerMinute))
	}
	if c.Dashboard.PageSize < 1 || c.Dashboard.PageSize > 250 {
		errs = append(errs, fmt.Errorf("dashboard.pageSize must be within 1..250, got %d", c.Dashboard.PageSize))
	}
	if c.Dashboard.WatchlistFetchSize < 1 || c.Dashboard.WatchlistFetchSize > 250 {
		errs = append(errs, fmt.Errorf("dashboard.watchlistFetchSize must be within 1..250, got %d", c.Dashboard.WatchlistFetchSize))
	}
	if c.Dashboard.SearchDebounceMillis < 0 {
		errs = append(errs, fmt.Errorf("dashboard.searchDebounceMillis must not be negative, got %d", c.Dashboard.SearchDebounceMillis))
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 {
		errs = append(errs, errors.New("logging.maxSizeMB and logging.maxBackups must not be negative"))
	}
	switch c.Dashboard.DefaultChartDays {
	case 1, 7, 30, 90:
	default:
		errs = append(errs, fmt.Errorf("dashboard.defaultChartDays must be one of 1, 7, 30, 90, got %d", c.Dashboard.DefaultChartDays))
	}
	switch c.Storage.Driver {
	case StorageDriverBolt, StorageDriverMemory:
	default:
		errs = append(errs, fmt.Errorf("storage.driver must be %q or %q, got %q", StorageDriverBolt, StorageDriverMemory, c.Storage.Driver))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
