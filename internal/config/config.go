package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort             = "8080"
	defaultRateLimitRPS     = 25.0
	defaultRateLimitBurst   = 50
	defaultExportRPS        = 1.0
	defaultExportBurst      = 3
	defaultLogLevel         = "info"
	defaultBatchMaxSize     = 100
	defaultBatchConcurrency = 4
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	Port                 string
	RateTablesFile       string
	ShutdownGracePeriod  time.Duration
	ReadHeaderTimeout    time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	EnableRequestLogging bool
	RateLimitRPS         float64
	RateLimitBurst       int
	ExportRateLimitRPS   float64
	ExportRateLimitBurst int
	LogLevel             string
	BatchMaxSize         int
	BatchConcurrency     int
}

// envConfig mirrors Config for caarlos0/env. Unset variables leave the
// seeded value untouched.
type envConfig struct {
	Port                 string        `env:"PORT"`
	RateTablesFile       string        `env:"RATE_TABLES_FILE"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD"`
	ReadHeaderTimeout    time.Duration `env:"READ_HEADER_TIMEOUT"`
	WriteTimeout         time.Duration `env:"WRITE_TIMEOUT"`
	IdleTimeout          time.Duration `env:"IDLE_TIMEOUT"`
	EnableRequestLogging bool          `env:"ENABLE_REQUEST_LOGGING"`
	RateLimitRPS         float64       `env:"RATE_LIMIT_RPS"`
	RateLimitBurst       int           `env:"RATE_LIMIT_BURST"`
	ExportRateLimitRPS   float64       `env:"EXPORT_RATE_LIMIT_RPS"`
	ExportRateLimitBurst int           `env:"EXPORT_RATE_LIMIT_BURST"`
	LogLevel             string        `env:"LOG_LEVEL"`
	BatchMaxSize         int           `env:"BATCH_MAX_SIZE"`
	BatchConcurrency     int           `env:"BATCH_CONCURRENCY"`
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	Port                 string        `yaml:"port"`
	RateTablesFile       string        `yaml:"rate_tables_file"`
	ShutdownGracePeriod  string        `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    string        `yaml:"read_header_timeout"`
	WriteTimeout         string        `yaml:"write_timeout"`
	IdleTimeout          string        `yaml:"idle_timeout"`
	EnableRequestLogging *bool         `yaml:"enable_request_logging"`
	LogLevel             string        `yaml:"log_level"`
	RateLimit            yamlRateLimit `yaml:"rate_limit"`
	Batch                yamlBatch     `yaml:"batch"`
}

// yamlRateLimit represents the rate limit section in YAML.
type yamlRateLimit struct {
	RPS         *float64 `yaml:"rps"`
	Burst       *int     `yaml:"burst"`
	ExportRPS   *float64 `yaml:"export_rps"`
	ExportBurst *int     `yaml:"export_burst"`
}

type yamlBatch struct {
	MaxSize     int `yaml:"max_size"`
	Concurrency int `yaml:"concurrency"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile     string
	EnvFile        string
	Port           *string
	RateTablesFile *string
	RateLimitRPS   *float64
	RateLimitBurst *int
	LogLevel       *string
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	const op = "config.Load"

	cfg := defaultConfig()

	if overrides != nil && overrides.EnvFile != "" {
		// godotenv never overrides variables already present in the process.
		if err := godotenv.Load(overrides.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("%s: load env file: %w", op, err)
		}
	}

	if err := applyEnvConfig(&cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}

	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("%s: load YAML config: %w", op, err)
		}
		if err := applyYAMLConfig(&cfg, yamlCfg); err != nil {
			return Config{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		Port:                 defaultPort,
		ShutdownGracePeriod:  10 * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         15 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
		RateLimitRPS:         defaultRateLimitRPS,
		RateLimitBurst:       defaultRateLimitBurst,
		ExportRateLimitRPS:   defaultExportRPS,
		ExportRateLimitBurst: defaultExportBurst,
		LogLevel:             defaultLogLevel,
		BatchMaxSize:         defaultBatchMaxSize,
		BatchConcurrency:     defaultBatchConcurrency,
	}
}

// applyEnvConfig seeds the env struct with the current values so that only
// variables which are actually set change anything.
func applyEnvConfig(cfg *Config) error {
	raw := envConfig(*cfg)
	if err := env.Parse(&raw); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	raw.Port = strings.TrimSpace(raw.Port)
	if raw.Port == "" {
		raw.Port = cfg.Port
	}
	*cfg = Config(raw)
	return nil
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) error {
	if yamlCfg.Port != "" {
		cfg.Port = yamlCfg.Port
	}
	if yamlCfg.RateTablesFile != "" {
		cfg.RateTablesFile = yamlCfg.RateTablesFile
	}

	durations := []struct {
		key   string
		raw   string
		value *time.Duration
	}{
		{"shutdown_grace_period", yamlCfg.ShutdownGracePeriod, &cfg.ShutdownGracePeriod},
		{"read_header_timeout", yamlCfg.ReadHeaderTimeout, &cfg.ReadHeaderTimeout},
		{"write_timeout", yamlCfg.WriteTimeout, &cfg.WriteTimeout},
		{"idle_timeout", yamlCfg.IdleTimeout, &cfg.IdleTimeout},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("parse %s: %w", d.key, err)
		}
		*d.value = parsed
	}

	if yamlCfg.EnableRequestLogging != nil {
		cfg.EnableRequestLogging = *yamlCfg.EnableRequestLogging
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.RateLimit.RPS != nil {
		cfg.RateLimitRPS = *yamlCfg.RateLimit.RPS
	}
	if yamlCfg.RateLimit.Burst != nil {
		cfg.RateLimitBurst = *yamlCfg.RateLimit.Burst
	}
	if yamlCfg.RateLimit.ExportRPS != nil {
		cfg.ExportRateLimitRPS = *yamlCfg.RateLimit.ExportRPS
	}
	if yamlCfg.RateLimit.ExportBurst != nil {
		cfg.ExportRateLimitBurst = *yamlCfg.RateLimit.ExportBurst
	}
	if yamlCfg.Batch.MaxSize != 0 {
		cfg.BatchMaxSize = yamlCfg.Batch.MaxSize
	}
	if yamlCfg.Batch.Concurrency != 0 {
		cfg.BatchConcurrency = yamlCfg.Batch.Concurrency
	}

	return nil
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.Port != nil && *overrides.Port != "" {
		cfg.Port = *overrides.Port
	}
	if overrides.RateTablesFile != nil && *overrides.RateTablesFile != "" {
		cfg.RateTablesFile = *overrides.RateTablesFile
	}
	if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS >= 0 {
		cfg.RateLimitRPS = *overrides.RateLimitRPS
	}
	if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst >= 0 {
		cfg.RateLimitBurst = *overrides.RateLimitBurst
	}
	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if cfg.Port == "" {
		return fmt.Errorf("port cannot be empty")
	}
	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be >= 0")
	}
	if cfg.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be >= 0")
	}
	if cfg.ExportRateLimitRPS < 0 {
		return fmt.Errorf("EXPORT_RATE_LIMIT_RPS must be >= 0")
	}
	if cfg.ExportRateLimitBurst < 0 {
		return fmt.Errorf("EXPORT_RATE_LIMIT_BURST must be >= 0")
	}
	if cfg.BatchMaxSize <= 0 {
		return fmt.Errorf("BATCH_MAX_SIZE must be > 0")
	}
	if cfg.BatchConcurrency <= 0 {
		return fmt.Errorf("BATCH_CONCURRENCY must be > 0")
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	return nil
}
