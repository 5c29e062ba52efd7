package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "PAYGATE"

const (
	BackendRedis  = "redis"
	BackendBolt   = "bolt"
	BackendSQL    = "sql"
	BackendMemory = "memory"
)

type Config struct {
	Server   Server   `mapstructure:"server"`
	Ledger   Ledger   `mapstructure:"ledger"`
	Provider Provider `mapstructure:"provider"`
	App      App      `mapstructure:"app"`
	Log      Log      `mapstructure:"log"`
}

type Server struct {
	Port            string        `mapstructure:"port"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type Ledger struct {
	Backend string `mapstructure:"backend"`
	Redis   Redis  `mapstructure:"redis"`
	Bolt    Bolt   `mapstructure:"bolt"`
	SQL     SQL    `mapstructure:"sql"`
}

type Redis struct {
	// URL takes precedence over Addr/Password/DB when set.
	URL          string        `mapstructure:"url"`
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type Bolt struct {
	Path string `mapstructure:"path"`
}

type SQL struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type Provider struct {
	WebhookSecrets     []string      `mapstructure:"webhook_secrets"`
	SignatureTolerance time.Duration `mapstructure:"signature_tolerance"`
	PaymentLink        string        `mapstructure:"payment_link"`
	MetadataKey        string        `mapstructure:"metadata_key"`
}

type App struct {
	Name              string        `mapstructure:"name"`
	URL               string        `mapstructure:"url"`
	CorrelationHeader string        `mapstructure:"correlation_header"`
	HealthInterval    time.Duration `mapstructure:"health_interval"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.max_body_bytes", int64(65536))
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 15*time.Second)

	v.SetDefault("ledger.backend", BackendRedis)
	v.SetDefault("ledger.redis.url", "")
	v.SetDefault("ledger.redis.addr", "localhost:6379")
	v.SetDefault("ledger.redis.password", "")
	v.SetDefault("ledger.redis.db", 0)
	v.SetDefault("ledger.redis.key_prefix", "paygate:status:")
	v.SetDefault("ledger.redis.pool_size", 10)
	v.SetDefault("ledger.redis.dial_timeout", 5*time.Second)
	v.SetDefault("ledger.redis.read_timeout", 3*time.Second)
	v.SetDefault("ledger.redis.write_timeout", 3*time.Second)
	v.SetDefault("ledger.bolt.path", "paygate.db")
	v.SetDefault("ledger.sql.driver", "sqlite3")
	v.SetDefault("ledger.sql.dsn", "file:paygate.sqlite?cache=shared")

	v.SetDefault("provider.webhook_secrets", []string{})
	v.SetDefault("provider.signature_tolerance", 5*time.Minute)
	v.SetDefault("provider.payment_link", "https://buy.stripe.com/test_payment_link")
	v.SetDefault("provider.metadata_key", "correlation_id")

	v.SetDefault("app.name", "Paygate")
	v.SetDefault("app.url", "http://localhost:8080/")
	v.SetDefault("app.correlation_header", "openai-conversation-id")
	v.SetDefault("app.health_interval", 5*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Load resolves defaults, then the optional YAML file at path, then PAYGATE_*
// environment variables (PAYGATE_LEDGER_REDIS_ADDR for ledger.redis.addr).
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	cfg.Provider.WebhookSecrets = compact(cfg.Provider.WebhookSecrets)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if len(c.Provider.WebhookSecrets) == 0 {
		errs = append(errs, errors.New("provider.webhook_secrets: at least one secret is required"))
	}
	if c.Provider.SignatureTolerance <= 0 {
		errs = append(errs, errors.New("provider.signature_tolerance: must be positive"))
	}
	if c.Provider.PaymentLink == "" {
		errs = append(errs, errors.New("provider.payment_link: is required"))
	} else if u, err := url.Parse(c.Provider.PaymentLink); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("provider.payment_link: %q is not an absolute url", c.Provider.PaymentLink))
	}
	if c.App.CorrelationHeader == "" {
		errs = append(errs, errors.New("app.correlation_header: is required"))
	}

	switch c.Ledger.Backend {
	case BackendRedis, BackendBolt, BackendSQL, BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("ledger.backend: unknown backend %q", c.Ledger.Backend))
	}

	switch c.Log.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}

	return nil
}

// compact drops blank entries left over from comma separated env values.
func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			out = append(out, value)
		}
	}

	return out
}
