package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	defaultHost                  = "localhost"
	defaultPort                  = 9000
	defaultLogLevel              = "info"
	defaultPlanStartDate         = "2023-03-31"
	defaultUserID                = 1
	defaultRedisPort             = "6379"
	defaultRateLimitPerMin       = 120
	defaultMetricsHost           = "localhost"
	defaultMetricsPort           = "9002"
	defaultCatalogCacheSizeMB    = 1
	defaultServerShutdownSeconds = 15
)

type Config struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// plan
	PlanStartDate string `toml:"plan_start_date"`
	UserID        int    `toml:"user_id"`
	// redis, rate limiting is off when the host is empty
	RedisHost              string `toml:"redis_host"`
	RedisPort              string `toml:"redis_port"`
	RateLimitAllowedPerMin int    `toml:"rate_limit_allowed_per_min"`
	// prometheus
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// http
	CatalogCacheSizeMB     int      `toml:"catalog_cache_size_mb"`
	AllowedOrigins         []string `toml:"allowed_origins"`
	ShutdownTimeoutSeconds int      `toml:"shutdown_timeout_seconds"`

	// set from the selected toml table
	Environment string `toml:"-"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var (
		cfg  *Config
		name string
	)
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg, name = t.Development, "development"
	case "prod", "production":
		cfg, name = t.Production, "production"
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no [%s] table in config", name)
	}
	cfg.Environment = name
	return cfg, nil
}

// Load reads the toml file at path and returns the env's table with
// defaults filled in.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}
	return fromToml(&t, env)
}

// Parse is Load for an in-memory document.
func Parse(env, doc string) (*Config, error) {
	var t Toml
	if _, err := toml.Decode(doc, &t); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return fromToml(&t, env)
}

func fromToml(t *Toml, env string) (*Config, error) {
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = defaultHost
	}
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.PlanStartDate == "" {
		c.PlanStartDate = defaultPlanStartDate
	}
	if c.UserID == 0 {
		c.UserID = defaultUserID
	}
	if c.RedisHost != "" && c.RedisPort == "" {
		c.RedisPort = defaultRedisPort
	}
	if c.RateLimitAllowedPerMin == 0 {
		c.RateLimitAllowedPerMin = defaultRateLimitPerMin
	}
	if c.PrometheusMetricsHost == "" {
		c.PrometheusMetricsHost = defaultMetricsHost
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = defaultMetricsPort
	}
	if c.CatalogCacheSizeMB == 0 {
		c.CatalogCacheSizeMB = defaultCatalogCacheSizeMB
	}
	if c.ShutdownTimeoutSeconds == 0 {
		c.ShutdownTimeoutSeconds = defaultServerShutdownSeconds
	}
}

func (c *Config) validate() error {
	var errs []error
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port: %d", c.Port))
	}
	if c.UserID < 0 {
		errs = append(errs, fmt.Errorf("invalid user id: %d", c.UserID))
	}
	if c.RateLimitAllowedPerMin < 0 {
		errs = append(errs, fmt.Errorf("invalid rate limit: %d", c.RateLimitAllowedPerMin))
	}
	if c.CatalogCacheSizeMB < 0 {
		errs = append(errs, fmt.Errorf("invalid catalog cache size: %d", c.CatalogCacheSizeMB))
	}
	return errors.Join(errs...)
}

// RedisEnabled reports whether a redis host is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}
