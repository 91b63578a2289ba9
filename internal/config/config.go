package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/deeds/internal/logging"
	"github.com/aretw0/deeds/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
	DriverBadger = "badger"
)

// DataDir holds file based stores unless a path is configured.
const DataDir = ".deeds"

type Config struct {
	Document  DocumentConfig  `yaml:"document" mapstructure:"document"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
	HTTP      HTTPConfig      `yaml:"http" mapstructure:"http"`
	Telegram  TelegramConfig  `yaml:"telegram" mapstructure:"telegram"`
	Redis     RedisConfig     `yaml:"redis" mapstructure:"redis"`
	Sessions  StoreConfig     `yaml:"sessions" mapstructure:"sessions"`
	Questions StoreConfig     `yaml:"questions" mapstructure:"questions"`
	Privacy   PrivacyConfig   `yaml:"privacy" mapstructure:"privacy"`
	Messages  domain.Messages `yaml:"messages" mapstructure:"messages"`
}

type DocumentConfig struct {
	Path  string `yaml:"path" mapstructure:"path"`
	Watch bool   `yaml:"watch" mapstructure:"watch"`
}

type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

type TelegramConfig struct {
	Token   string `yaml:"token" mapstructure:"token"`
	Timeout int    `yaml:"timeout" mapstructure:"timeout"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr" mapstructure:"addr"`
	Password string        `yaml:"password" mapstructure:"password"`
	DB       int           `yaml:"db" mapstructure:"db"`
	Prefix   string        `yaml:"prefix" mapstructure:"prefix"`
	TTL      time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

type StoreConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver"`
	Path   string `yaml:"path" mapstructure:"path"`
}

// PrivacyConfig protects what users type before it is persisted.
type PrivacyConfig struct {
	// EncryptionKey is a base64 AES-256 key sealing pending questions in the session store.
	EncryptionKey string `yaml:"encryption_key" mapstructure:"encryption_key"`
	// FallbackKeys still decrypt sessions sealed before a key rotation.
	FallbackKeys []string `yaml:"fallback_keys" mapstructure:"fallback_keys"`
	// Redact lists regular expressions masked in saved questions.
	Redact []string `yaml:"redact" mapstructure:"redact"`
}

func DefaultConfig() *Config {
	return &Config{
		Log:       LogConfig{Level: "info"},
		HTTP:      HTTPConfig{Addr: ":8080"},
		Telegram:  TelegramConfig{Timeout: 60},
		Redis:     RedisConfig{Addr: "localhost:6379", Prefix: "deeds:"},
		Sessions:  StoreConfig{Driver: DriverMemory},
		Questions: StoreConfig{Driver: DriverSQLite},
		Messages:  domain.DefaultMessages(),
	}
}

// LoadOption customises the viper instance before the file is read.
type LoadOption func(*viper.Viper) error

// WithFlag lets a command line flag override key when it is set.
func WithFlag(key string, flag *pflag.Flag) LoadOption {
	return func(v *viper.Viper) error {
		if flag == nil {
			return nil
		}
		return v.BindPFlag(key, flag)
	}
}

// Load reads the file at path, or deeds.yaml from the search paths when path is
// empty. Environment variables (DEEDS_HTTP_ADDR, ...) override the file.
func Load(path string, opts ...LoadOption) (*Config, error) {
	v := viper.New()
	if err := setDefaults(v, DefaultConfig()); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("deeds")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "deeds"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "deeds"))
		}
	}

	v.SetEnvPrefix("DEEDS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, fmt.Errorf("failed to bind config option: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Messages = cfg.Messages.WithDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so that AutomaticEnv can see it on Unmarshal.
func setDefaults(v *viper.Viper, cfg *Config) error {
	var flat map[string]any
	if err := mapstructure.Decode(cfg, &flat); err != nil {
		return fmt.Errorf("failed to flatten defaults: %w", err)
	}
	walk("", flat, v.SetDefault)
	return nil
}

func walk(prefix string, m map[string]any, set func(string, any)) {
	for k, val := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := val.(map[string]any); ok {
			walk(key, nested, set)
			continue
		}
		set(key, val)
	}
}

// Validate checks drivers and fills in default store paths.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	switch c.Sessions.Driver {
	case DriverMemory, DriverRedis:
	case DriverFile:
		if c.Sessions.Path == "" {
			c.Sessions.Path = filepath.Join(DataDir, "sessions")
		}
	default:
		return fmt.Errorf("config: sessions.driver %q is invalid (must be memory, file or redis)", c.Sessions.Driver)
	}

	switch c.Questions.Driver {
	case DriverMemory, DriverRedis:
	case DriverFile:
		if c.Questions.Path == "" {
			c.Questions.Path = filepath.Join(DataDir, "questions.jsonl")
		}
	case DriverSQLite:
		if c.Questions.Path == "" {
			c.Questions.Path = filepath.Join(DataDir, "questions.db")
		}
	case DriverBadger:
		if c.Questions.Path == "" {
			c.Questions.Path = filepath.Join(DataDir, "questions.badger")
		}
	default:
		return fmt.Errorf("config: questions.driver %q is invalid (must be memory, file, sqlite, badger or redis)", c.Questions.Driver)
	}

	if c.UsesRedis() && c.Redis.Addr == "" {
		return fmt.Errorf("config: redis.addr is required by the redis driver")
	}
	if c.Redis.TTL < 0 {
		return fmt.Errorf("config: redis.ttl must not be negative")
	}
	if c.Telegram.Timeout < 1 {
		c.Telegram.Timeout = 60
	}
	return nil
}

// UsesRedis reports whether any store is backed by Redis.
func (c *Config) UsesRedis() bool {
	return c.Sessions.Driver == DriverRedis || c.Questions.Driver == DriverRedis
}

// RequireDocument fails when no document path is configured.
func (c *Config) RequireDocument() error {
	if c.Document.Path == "" {
		return errors.New("config: document.path is required (set it in deeds.yaml, DEEDS_DOCUMENT_PATH or --doc)")
	}
	return nil
}
