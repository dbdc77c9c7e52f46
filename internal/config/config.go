package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultPort           = "8080"
	defaultRateLimitRPS   = 25.0
	defaultRateLimitBurst = 50
	defaultLogLevel       = "info"
	defaultRedisOrdinal   = 200

	// CoercionParse and CoercionIdentity name the provider coercion policies.
	CoercionParse    = "parse"
	CoercionIdentity = "identity"
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	Port                 string
	ShutdownGracePeriod  time.Duration
	ReadHeaderTimeout    time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	EnableRequestLogging bool
	RateLimitRPS         float64
	RateLimitBurst       int
	LogLevel             string
	Sources              SourcesConfig
}

// SourcesConfig selects the property sources layered into the provider.
type SourcesConfig struct {
	Fixture       bool
	PropertyFiles []string
	Env           bool
	Redis         RedisConfig
	Coercion      string
}

// RedisConfig points at a Redis hash whose fields are property names.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
	Ordinal  int
}

// Enabled reports whether a Redis source was requested.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	Port                 string        `yaml:"port"`
	ShutdownGracePeriod  string        `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    string        `yaml:"read_header_timeout"`
	WriteTimeout         string        `yaml:"write_timeout"`
	IdleTimeout          string        `yaml:"idle_timeout"`
	EnableRequestLogging *bool         `yaml:"enable_request_logging"`
	RateLimit            yamlRateLimit `yaml:"rate_limit"`
	LogLevel             string        `yaml:"log_level"`
	Sources              yamlSources   `yaml:"sources"`
}

// yamlRateLimit represents the rate limit section in YAML.
type yamlRateLimit struct {
	RPS   *float64 `yaml:"rps"`
	Burst *int     `yaml:"burst"`
}

type yamlSources struct {
	Fixture       *bool     `yaml:"fixture"`
	PropertyFiles []string  `yaml:"property_files"`
	Env           *bool     `yaml:"env"`
	Coercion      string    `yaml:"coercion"`
	Redis         yamlRedis `yaml:"redis"`
}

type yamlRedis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
	Ordinal  int    `yaml:"ordinal"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile     string
	Port           *string
	RateLimitRPS   *float64
	RateLimitBurst *int
	LogLevel       *string
	Fixture        *bool
	Env            *bool
	PropertyFiles  []string
	RedisAddr      *string
	RedisKey       *string
	Coercion       *string
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	// Apply environment variables first so YAML and CLI can override them
	applyEnvConfig(&cfg)

	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		if err := applyYAMLConfig(&cfg, yamlCfg); err != nil {
			return Config{}, fmt.Errorf("apply YAML config: %w", err)
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
		LogLevel:             defaultLogLevel,
		Sources: SourcesConfig{
			Fixture:  true,
			Coercion: CoercionParse,
			Redis:    RedisConfig{Ordinal: defaultRedisOrdinal},
		},
	}
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

	durations := []struct {
		raw  string
		dest *time.Duration
		name string
	}{
		{yamlCfg.ShutdownGracePeriod, &cfg.ShutdownGracePeriod, "shutdown_grace_period"},
		{yamlCfg.ReadHeaderTimeout, &cfg.ReadHeaderTimeout, "read_header_timeout"},
		{yamlCfg.WriteTimeout, &cfg.WriteTimeout, "write_timeout"},
		{yamlCfg.IdleTimeout, &cfg.IdleTimeout, "idle_timeout"},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("%s: %w", d.name, err)
		}
		*d.dest = parsed
	}

	if yamlCfg.EnableRequestLogging != nil {
		cfg.EnableRequestLogging = *yamlCfg.EnableRequestLogging
	}
	if yamlCfg.RateLimit.RPS != nil {
		cfg.RateLimitRPS = *yamlCfg.RateLimit.RPS
	}
	if yamlCfg.RateLimit.Burst != nil {
		cfg.RateLimitBurst = *yamlCfg.RateLimit.Burst
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}

	src := yamlCfg.Sources
	if src.Fixture != nil {
		cfg.Sources.Fixture = *src.Fixture
	}
	if src.Env != nil {
		cfg.Sources.Env = *src.Env
	}
	if len(src.PropertyFiles) > 0 {
		cfg.Sources.PropertyFiles = src.PropertyFiles
	}
	if src.Coercion != "" {
		cfg.Sources.Coercion = src.Coercion
	}
	if src.Redis.Addr != "" {
		cfg.Sources.Redis.Addr = src.Redis.Addr
		cfg.Sources.Redis.Password = src.Redis.Password
		cfg.Sources.Redis.DB = src.Redis.DB
	}
	if src.Redis.Key != "" {
		cfg.Sources.Redis.Key = src.Redis.Key
	}
	if src.Redis.Ordinal != 0 {
		cfg.Sources.Redis.Ordinal = src.Redis.Ordinal
	}
	return nil
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) {
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Port = port
	}

	if rps := strings.TrimSpace(os.Getenv("RATE_LIMIT_RPS")); rps != "" {
		if value, err := strconv.ParseFloat(rps, 64); err == nil && value >= 0 {
			cfg.RateLimitRPS = value
		}
	}

	if burst := strings.TrimSpace(os.Getenv("RATE_LIMIT_BURST")); burst != "" {
		if value, err := strconv.Atoi(burst); err == nil && value >= 0 {
			cfg.RateLimitBurst = value
		}
	}

	if level := strings.TrimSpace(os.Getenv("LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}

	if files := strings.TrimSpace(os.Getenv("PROPERTY_FILES")); files != "" {
		cfg.Sources.PropertyFiles = parsePropertyFiles(files)
	}

	if addr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); addr != "" {
		cfg.Sources.Redis.Addr = addr
		cfg.Sources.Redis.Password = os.Getenv("REDIS_PASSWORD")
	}

	if key := strings.TrimSpace(os.Getenv("REDIS_KEY")); key != "" {
		cfg.Sources.Redis.Key = key
	}
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.Port != nil && *overrides.Port != "" {
		cfg.Port = *overrides.Port
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

	if overrides.Fixture != nil {
		cfg.Sources.Fixture = *overrides.Fixture
	}

	if overrides.Env != nil {
		cfg.Sources.Env = *overrides.Env
	}

	if len(overrides.PropertyFiles) > 0 {
		cfg.Sources.PropertyFiles = overrides.PropertyFiles
	}

	if overrides.RedisAddr != nil && *overrides.RedisAddr != "" {
		cfg.Sources.Redis.Addr = *overrides.RedisAddr
	}

	if overrides.RedisKey != nil && *overrides.RedisKey != "" {
		cfg.Sources.Redis.Key = *overrides.RedisKey
	}

	if overrides.Coercion != nil && *overrides.Coercion != "" {
		cfg.Sources.Coercion = *overrides.Coercion
	}
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be >= 0")
	}
	if cfg.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be >= 0")
	}
	switch cfg.Sources.Coercion {
	case CoercionParse, CoercionIdentity:
	default:
		return fmt.Errorf("unknown coercion %q, expected %s or %s", cfg.Sources.Coercion, CoercionParse, CoercionIdentity)
	}
	if cfg.Sources.Redis.Enabled() && cfg.Sources.Redis.Key == "" {
		return fmt.Errorf("redis source requires a hash key")
	}
	src := cfg.Sources
	if !src.Fixture && !src.Env && len(src.PropertyFiles) == 0 && !src.Redis.Enabled() {
		return fmt.Errorf("no property sources configured")
	}
	return nil
}

// parsePropertyFiles splits a comma-separated list of property file paths.
func parsePropertyFiles(raw string) []string {
	parts := strings.Split(raw, ",")
	files := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		files = append(files, part)
	}
	return files
}
