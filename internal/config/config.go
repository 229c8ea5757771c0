package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/alexanderramin/shiftclock/internal/notify"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when SHIFTCLOCK_CONFIG is
// unset.
const DefaultFile = "shiftclock.yaml"

type WebhookConfig struct {
	TimeoutMs    int `yaml:"timeout_ms"`
	MaxRetries   int `yaml:"max_retries"`
	RetryDelayMs int `yaml:"retry_delay_ms"`
}

type DispatchConfig struct {
	IntervalMs    int `yaml:"interval_ms"`
	MaxAttempts   int `yaml:"max_attempts"`
	BatchSize     int `yaml:"batch_size"`
	BaseBackoffMs int `yaml:"base_backoff_ms"`
	MaxBackoffMs  int `yaml:"max_backoff_ms"`
}

// Config holds everything the binary needs. Values come from defaults, then
// the YAML file, then environment variables.
type Config struct {
	DBPath      string   `yaml:"db"`
	Addr        string   `yaml:"addr"`
	LogLevel    string   `yaml:"log_level"`
	Timezone    string   `yaml:"timezone"`
	CORSOrigins []string `yaml:"cors_origins"`
	BcryptCost  int      `yaml:"bcrypt_cost"`

	Webhook  WebhookConfig `yaml:"webhook"`
	Dispatch DispatchConfig `yaml:"dispatch"`

	// Webhooks maps locale then kind (time_log, sales_log) to a URL.
	Webhooks map[string]map[string]string `yaml:"webhooks"`
}

// DefaultConfig returns a Config with sensible defaults. No webhooks are
// configured, so nothing is announced until URLs are supplied.
func DefaultConfig() Config {
	client := notify.DefaultClientConfig()
	dispatch := notify.DefaultDispatchConfig()
	return Config{
		Addr:        ":3001",
		LogLevel:    "info",
		Timezone:    "UTC",
		CORSOrigins: []string{"*"},
		BcryptCost:  10,
		Webhook: WebhookConfig{
			TimeoutMs:    client.TimeoutMs,
			MaxRetries:   client.MaxRetries,
			RetryDelayMs: client.RetryDelayMs,
		},
		Dispatch: DispatchConfig{
			IntervalMs:    int(dispatch.Interval / time.Millisecond),
			MaxAttempts:   dispatch.MaxAttempts,
			BatchSize:     dispatch.BatchSize,
			BaseBackoffMs: int(dispatch.BaseBackoff / time.Millisecond),
			MaxBackoffMs:  int(dispatch.MaxBackoff / time.Millisecond),
		},
		Webhooks: map[string]map[string]string{},
	}
}

// LoadConfig builds the configuration. A .env file in the working
// directory is loaded into the environment first when present.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	path := os.Getenv("SHIFTCLOCK_CONFIG")
	required := path != ""
	if !required {
		path = DefaultFile
	}
	if err := cfg.loadFile(path); err != nil {
		if required || !errors.Is(err, fs.ErrNotExist) {
			return cfg, err
		}
	}

	cfg.applyEnv()

	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".shiftclock", "shiftclock.db")
	}
	if _, err := cfg.Location(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SHIFTCLOCK_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("SHIFTCLOCK_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("SHIFTCLOCK_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("SHIFTCLOCK_TZ"); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv("SHIFTCLOCK_CORS_ORIGINS"); v != "" {
		c.CORSOrigins = splitList(v)
	}
	envInt("SHIFTCLOCK_BCRYPT_COST", &c.BcryptCost)
	envInt("SHIFTCLOCK_WEBHOOK_TIMEOUT_MS", &c.Webhook.TimeoutMs)
	envInt("SHIFTCLOCK_WEBHOOK_MAX_RETRIES", &c.Webhook.MaxRetries)
	envInt("SHIFTCLOCK_DISPATCH_INTERVAL_MS", &c.Dispatch.IntervalMs)
	envInt("SHIFTCLOCK_DISPATCH_MAX_ATTEMPTS", &c.Dispatch.MaxAttempts)

	// SHIFTCLOCK_WEBHOOK_YUMMY_TIME_LOG, SHIFTCLOCK_WEBHOOK_UWU_SALES_LOG, ...
	for _, locale := range domain.Locales {
		for _, kind := range []domain.NotificationKind{domain.KindTimeLog, domain.KindSalesLog} {
			key := "SHIFTCLOCK_WEBHOOK_" + strings.ToUpper(string(locale)) + "_" + strings.ToUpper(string(kind))
			if v := os.Getenv(key); v != "" {
				if c.Webhooks == nil {
					c.Webhooks = map[string]map[string]string{}
				}
				if c.Webhooks[string(locale)] == nil {
					c.Webhooks[string(locale)] = map[string]string{}
				}
				c.Webhooks[string(locale)][string(kind)] = v
			}
		}
	}
}

// envInt overwrites *dst with a non-negative integer from the environment.
// Malformed values are ignored.
func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			*dst = n
		}
	}
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Location resolves Timezone, used to render local times in announcements
// and exports.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Directory returns the configured webhook URLs. Unknown locales and kinds
// in the file are dropped.
func (c Config) Directory() notify.Webhooks {
	hooks := notify.Webhooks{}
	for l, kinds := range c.Webhooks {
		locale, err := domain.ParseLocale(l)
		if err != nil {
			continue
		}
		for k, u := range kinds {
			kind := domain.NotificationKind(strings.ToLower(strings.TrimSpace(k)))
			if kind != domain.KindTimeLog && kind != domain.KindSalesLog {
				continue
			}
			hooks.Set(locale, kind, u)
		}
	}
	return hooks
}

func (c Config) ClientConfig() notify.ClientConfig {
	return notify.ClientConfig{
		TimeoutMs:    c.Webhook.TimeoutMs,
		MaxRetries:   c.Webhook.MaxRetries,
		RetryDelayMs: c.Webhook.RetryDelayMs,
	}
}

func (c Config) DispatchConfig() notify.DispatchConfig {
	return notify.DispatchConfig{
		BatchSize:   c.Dispatch.BatchSize,
		Interval:    time.Duration(c.Dispatch.IntervalMs) * time.Millisecond,
		MaxAttempts: c.Dispatch.MaxAttempts,
		BaseBackoff: time.Duration(c.Dispatch.BaseBackoffMs) * time.Millisecond,
		MaxBackoff:  time.Duration(c.Dispatch.MaxBackoffMs) * time.Millisecond,
	}
}

// SlogLevel maps LogLevel onto slog. Unknown names mean info.
func (c Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
