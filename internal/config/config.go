// Package config loads gateway configuration via Viper.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config captures every knob of the quote gateway.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Mail      MailConfig      `mapstructure:"mail"`
	Webhook   WebhookConfig   `mapstructure:"webhook"`
	RabbitMQ  RabbitMQConfig  `mapstructure:"rabbitmq"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	CRM       CRMConfig       `mapstructure:"crm"`
	Notify    NotifyConfig    `mapstructure:"notify"`
	Content   ContentConfig   `mapstructure:"content"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
	// AllowedOrigin is echoed in CORS responses. Empty means reflect the
	// request's Origin header.
	AllowedOrigin   string        `mapstructure:"allowed_origin"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"` // postgres | sqlite
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int32  `mapstructure:"max_open_conns"`
	MinConns     int32  `mapstructure:"min_conns"`
	Migrate      bool   `mapstructure:"migrate"`
}

type WindowConfig struct {
	Limit  int           `mapstructure:"limit"`
	Window time.Duration `mapstructure:"window"`
}

type RateLimitConfig struct {
	Backend       string        `mapstructure:"backend"` // memory | redis
	Quote         WindowConfig  `mapstructure:"quote"`
	Contact       WindowConfig  `mapstructure:"contact"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MailConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	FromName string `mapstructure:"from_name"`
	To       string `mapstructure:"to"`
}

// Enabled reports whether an SMTP relay is configured.
func (m MailConfig) Enabled() bool {
	return m.Host != ""
}

type WebhookConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type RabbitMQConfig struct {
	URL string `mapstructure:"url"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// CRMConfig points at a Kommo account. An empty token disables the channel.
type CRMConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	Token    string        `mapstructure:"token"`
	StatusID int           `mapstructure:"status_id"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type NotifyConfig struct {
	Mode    string        `mapstructure:"mode"` // direct | queue
	Async   bool          `mapstructure:"async"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type ContentConfig struct {
	Source string `mapstructure:"source"` // files | database
	Dir    string `mapstructure:"dir"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// legacyEnv maps keys to the variable names the site was deployed with.
var legacyEnv = map[string]string{
	"database.dsn":          "DATABASE_URL",
	"server.allowed_origin": "ALLOWED_CORS_ORIGIN",
	"webhook.url":           "QUOTE_WEBHOOK_URL",
	"mail.to":               "NOTIFICATION_EMAIL",
}

// Load builds a Config from an optional .env file, an optional config file and
// the environment.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("AGENCY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindEnvs(v, reflect.TypeOf(Config{}), ""); err != nil {
		return Config{}, err
	}
	for key, env := range legacyEnv {
		if err := v.BindEnv(key, envName(key), env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// bindEnvs registers AGENCY_* for every leaf key of t. AutomaticEnv alone
// only reaches Unmarshal for keys viper already knows about.
func bindEnvs(v *viper.Viper, t reflect.Type, prefix string) error {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			continue
		}
		key := prefix + tag
		if f.Type.Kind() == reflect.Struct {
			if err := bindEnvs(v, f.Type, key+"."); err != nil {
				return err
			}
			continue
		}
		if err := v.BindEnv(key, envName(key)); err != nil {
			return fmt.Errorf("bind %s: %w", key, err)
		}
	}
	return nil
}

func envName(key string) string {
	return "AGENCY_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 15*time.Second)
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.migrate", true)
	v.SetDefault("ratelimit.backend", "memory")
	v.SetDefault("ratelimit.quote.limit", 5)
	v.SetDefault("ratelimit.quote.window", time.Hour)
	v.SetDefault("ratelimit.contact.limit", 10)
	v.SetDefault("ratelimit.contact.window", time.Hour)
	v.SetDefault("ratelimit.sweep_interval", 10*time.Minute)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.from", "noreply@tgiagency.com")
	v.SetDefault("mail.from_name", "TGI Agency Website")
	v.SetDefault("mail.to", "quotes@tgiagency.com")
	v.SetDefault("webhook.timeout", 10*time.Second)
	v.SetDefault("kafka.topic", "agency.submissions")
	v.SetDefault("crm.timeout", 10*time.Second)
	v.SetDefault("notify.mode", "direct")
	v.SetDefault("notify.async", true)
	v.SetDefault("notify.timeout", 30*time.Second)
	v.SetDefault("content.source", "files")
	v.SetDefault("content.dir", "docs/content/blogs")
	v.SetDefault("logging.development", false)
}

// Validate enforces required values and known enum settings.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("database.driver must be postgres or sqlite, got %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	switch c.RateLimit.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("ratelimit.backend must be memory or redis, got %q", c.RateLimit.Backend)
	}
	if c.RateLimit.Quote.Limit <= 0 || c.RateLimit.Quote.Window <= 0 {
		return fmt.Errorf("ratelimit.quote limit and window must be > 0")
	}
	if c.RateLimit.Contact.Limit <= 0 || c.RateLimit.Contact.Window <= 0 {
		return fmt.Errorf("ratelimit.contact limit and window must be > 0")
	}
	switch c.Notify.Mode {
	case "direct":
	case "queue":
		if c.RabbitMQ.URL == "" {
			return fmt.Errorf("rabbitmq.url is required when notify.mode is queue")
		}
	default:
		return fmt.Errorf("notify.mode must be direct or queue, got %q", c.Notify.Mode)
	}
	if c.CRM.Token != "" && c.CRM.BaseURL == "" {
		return fmt.Errorf("crm.base_url is required when crm.token is set")
	}
	switch c.Content.Source {
	case "files", "database":
	default:
		return fmt.Errorf("content.source must be files or database, got %q", c.Content.Source)
	}
	return nil
}
