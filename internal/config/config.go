// Package config assembles the API server settings. Values come from
// built-in defaults, then an optional YAML file named by CONFIG_FILE, then
// environment variables, each layer overriding the previous one.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/netip"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	envcfg "newsdesk/pkg/config"
)

// Store drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// News providers.
const (
	ProviderNewsAPI = "newsapi"
	ProviderRSS     = "rss"
)

// Config is the full server configuration. The yaml keys match the lowercase
// form of the corresponding environment variables.
type Config struct {
	Port                int    `yaml:"port"`
	AppEnv              string `yaml:"app_env"`
	Version             string `yaml:"version"`
	LogLevel            string `yaml:"log_level"`
	LogFormat           string `yaml:"log_format"`
	DevEndpointsEnabled bool   `yaml:"dev_endpoints_enabled"`

	News      NewsConfig      `yaml:",inline"`
	Store     StoreConfig     `yaml:",inline"`
	RateLimit RateLimitConfig `yaml:",inline"`
	Notify    NotifyConfig    `yaml:",inline"`

	CORSAllowedOrigins []string      `yaml:"cors_allowed_origins"`
	RequestTimeout     time.Duration `yaml:"request_timeout"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout"`
	StatsSchedule      string        `yaml:"stats_schedule"`
	TraceSampleRatio   float64       `yaml:"trace_sample_ratio"`
}

// NewsConfig selects and configures the headline provider.
type NewsConfig struct {
	Provider        string              `yaml:"news_provider"`
	APIKey          string              `yaml:"news_api_key"`
	BaseURL         string              `yaml:"news_api_base_url"`
	UpstreamTimeout time.Duration       `yaml:"upstream_timeout"`
	RSSFeeds        map[string][]string `yaml:"rss_feeds"`
}

// StoreConfig selects the bookmark store.
type StoreConfig struct {
	Driver        string `yaml:"store_driver"`
	MongoURI      string `yaml:"mongodb_uri"`
	MongoDatabase string `yaml:"mongodb_database"`
	DatabaseURL   string `yaml:"database_url"`
}

// RateLimitConfig sizes the per-client token buckets. RPS <= 0 disables limiting.
// Forwarding headers are honoured only from TrustedProxies (IPs or CIDRs).
type RateLimitConfig struct {
	RPS            float64  `yaml:"rate_limit_rps"`
	Burst          int      `yaml:"rate_limit_burst"`
	TrustedProxies []string `yaml:"trusted_proxies"`
}

// NotifyConfig enables the bookmark event channels. A channel is enabled
// when its endpoint is configured.
type NotifyConfig struct {
	DiscordWebhookURL string   `yaml:"discord_webhook_url"`
	KafkaBrokers      []string `yaml:"kafka_brokers"`
	KafkaTopic        string   `yaml:"kafka_topic"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Port:      3001,
		AppEnv:    "production",
		Version:   "dev",
		LogLevel:  "info",
		LogFormat: "json",
		News: NewsConfig{
			Provider:        ProviderNewsAPI,
			BaseURL:         "https://newsapi.org",
			UpstreamTimeout: 10 * time.Second,
		},
		Store: StoreConfig{
			MongoDatabase: "newsdesk",
		},
		RateLimit: RateLimitConfig{
			RPS:   10,
			Burst: 20,
		},
		Notify: NotifyConfig{
			KafkaTopic: "bookmark-events",
		},
		CORSAllowedOrigins: []string{"*"},
		RequestTimeout:     30 * time.Second,
		ShutdownTimeout:    10 * time.Second,
		StatsSchedule:      "@every 1m",
		TraceSampleRatio:   1.0,
	}
}

// IsDevelopment reports whether APP_ENV is "development".
func (c Config) IsDevelopment() bool { return c.AppEnv == "development" }

// Load builds the configuration from defaults, the CONFIG_FILE overlay and
// the environment, then validates it.
func Load() (Config, error) {
	cfg := Default()

	if path := envcfg.GetEnvString("CONFIG_FILE", ""); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.applyEnv()
	cfg.Store.Driver = cfg.inferDriver()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	if cfg.News.Provider == ProviderNewsAPI && cfg.News.APIKey == "" {
		slog.Warn("NEWS_API_KEY is not set; upstream requests will be rejected")
	}
	return cfg, nil
}

// overlayFile decodes a YAML file over cfg. Keys absent from the file keep
// their current values.
func (c *Config) overlayFile(path string) error {
	// #nosec G304 -- path comes from the operator's CONFIG_FILE
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = envcfg.GetEnvInt("PORT", c.Port)
	c.AppEnv = envcfg.GetEnvString("APP_ENV", c.AppEnv)
	c.Version = envcfg.GetEnvString("VERSION", c.Version)
	c.LogLevel = envcfg.GetEnvString("LOG_LEVEL", c.LogLevel)
	c.LogFormat = envcfg.GetEnvString("LOG_FORMAT", c.LogFormat)
	c.DevEndpointsEnabled = envcfg.GetEnvBool("DEV_ENDPOINTS_ENABLED", c.DevEndpointsEnabled)

	c.News.Provider = strings.ToLower(envcfg.GetEnvString("NEWS_PROVIDER", c.News.Provider))
	c.News.APIKey = envcfg.GetEnvString("NEWS_API_KEY", c.News.APIKey)
	c.News.BaseURL = envcfg.GetEnvString("NEWS_API_BASE_URL", c.News.BaseURL)
	c.News.UpstreamTimeout = envcfg.GetEnvDuration("UPSTREAM_TIMEOUT", c.News.UpstreamTimeout)

	c.Store.Driver = strings.ToLower(envcfg.GetEnvString("STORE_DRIVER", c.Store.Driver))
	c.Store.MongoURI = envcfg.GetEnvString("MONGODB_URI", c.Store.MongoURI)
	c.Store.MongoDatabase = envcfg.GetEnvString("MONGODB_DATABASE", c.Store.MongoDatabase)
	c.Store.DatabaseURL = envcfg.GetEnvString("DATABASE_URL", c.Store.DatabaseURL)

	c.RateLimit.RPS = envcfg.GetEnvFloat("RATE_LIMIT_RPS", c.RateLimit.RPS)
	c.RateLimit.Burst = envcfg.GetEnvInt("RATE_LIMIT_BURST", c.RateLimit.Burst)
	c.RateLimit.TrustedProxies = envcfg.GetEnvStringList("TRUSTED_PROXIES", c.RateLimit.TrustedProxies)

	c.Notify.DiscordWebhookURL = envcfg.GetEnvString("DISCORD_WEBHOOK_URL", c.Notify.DiscordWebhookURL)
	c.Notify.KafkaBrokers = envcfg.GetEnvStringList("KAFKA_BROKERS", c.Notify.KafkaBrokers)
	c.Notify.KafkaTopic = envcfg.GetEnvString("KAFKA_TOPIC", c.Notify.KafkaTopic)

	c.CORSAllowedOrigins = envcfg.GetEnvStringList("CORS_ALLOWED_ORIGINS", c.CORSAllowedOrigins)
	c.RequestTimeout = envcfg.GetEnvDuration("REQUEST_TIMEOUT", c.RequestTimeout)
	c.ShutdownTimeout = envcfg.GetEnvDuration("SHUTDOWN_TIMEOUT", c.ShutdownTimeout)
	c.StatsSchedule = envcfg.GetEnvString("STATS_SCHEDULE", c.StatsSchedule)
	c.TraceSampleRatio = envcfg.GetEnvFloat("TRACE_SAMPLE_RATIO", c.TraceSampleRatio)
}

// inferDriver picks mongo or postgres from whichever connection string is
// present when no driver is set explicitly. Mongo wins when both are set.
func (c Config) inferDriver() string {
	if c.Store.Driver != "" {
		return c.Store.Driver
	}
	switch {
	case c.Store.MongoURI != "":
		return DriverMongo
	case c.Store.DatabaseURL != "":
		return DriverPostgres
	default:
		return DriverMemory
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if err := envcfg.ValidateIntRange(c.Port, 1, 65535); err != nil {
		errs = append(errs, fmt.Errorf("PORT: %w", err))
	}

	switch c.News.Provider {
	case ProviderNewsAPI:
		if c.News.BaseURL == "" {
			errs = append(errs, errors.New("NEWS_API_BASE_URL must not be empty"))
		}
	case ProviderRSS:
		if len(c.News.RSSFeeds) == 0 {
			errs = append(errs, errors.New("rss provider requires rss_feeds in CONFIG_FILE"))
		}
	default:
		errs = append(errs, fmt.Errorf("NEWS_PROVIDER %q must be %s or %s", c.News.Provider, ProviderNewsAPI, ProviderRSS))
	}
	if err := envcfg.ValidateDurationRange(c.News.UpstreamTimeout, 100*time.Millisecond, 2*time.Minute); err != nil {
		errs = append(errs, fmt.Errorf("UPSTREAM_TIMEOUT: %w", err))
	}

	switch c.Store.Driver {
	case DriverMongo:
		if c.Store.MongoURI == "" {
			errs = append(errs, errors.New("STORE_DRIVER=mongo requires MONGODB_URI"))
		}
	case DriverPostgres:
		if c.Store.DatabaseURL == "" {
			errs = append(errs, errors.New("STORE_DRIVER=postgres requires DATABASE_URL"))
		}
	case DriverMemory, "":
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER %q must be mongo, postgres or memory", c.Store.Driver))
	}

	if c.RateLimit.RPS > 0 && c.RateLimit.Burst < 1 {
		errs = append(errs, errors.New("RATE_LIMIT_BURST must be at least 1 when rate limiting is enabled"))
	}
	for _, p := range c.RateLimit.TrustedProxies {
		if !validProxy(p) {
			errs = append(errs, fmt.Errorf("TRUSTED_PROXIES: %q is not an IP address or CIDR range", p))
		}
	}
	if err := envcfg.ValidatePositiveDuration(c.RequestTimeout); err != nil {
		errs = append(errs, fmt.Errorf("REQUEST_TIMEOUT: %w", err))
	}
	if err := envcfg.ValidatePositiveDuration(c.ShutdownTimeout); err != nil {
		errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err))
	}
	if err := envcfg.ValidateCronSchedule(c.StatsSchedule); err != nil {
		errs = append(errs, fmt.Errorf("STATS_SCHEDULE: %w", err))
	}
	if c.TraceSampleRatio < 0 || c.TraceSampleRatio > 1 {
		errs = append(errs, fmt.Errorf("TRACE_SAMPLE_RATIO %v must be within [0, 1]", c.TraceSampleRatio))
	}
	if len(c.Notify.KafkaBrokers) > 0 && c.Notify.KafkaTopic == "" {
		errs = append(errs, errors.New("KAFKA_TOPIC must not be empty when KAFKA_BROKERS is set"))
	}

	return errors.Join(errs...)
}

func validProxy(s string) bool {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "/") {
		_, err := netip.ParsePrefix(s)
		return err == nil
	}
	_, err := netip.ParseAddr(s)
	return err == nil
}
