package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deeds.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, DriverMemory, cfg.Sessions.Driver)
	assert.Equal(t, DriverSQLite, cfg.Questions.Driver)
	assert.Equal(t, filepath.Join(DataDir, "questions.db"), cfg.Questions.Path)
	assert.Equal(t, 60, cfg.Telegram.Timeout)
	assert.Equal(t, "Hi! I'm a bot!", cfg.Messages.Greeting)
	assert.Error(t, cfg.RequireDocument())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
document:
  path: faq.yaml
  watch: true
log:
  level: debug
redis:
  addr: redis:6379
  ttl: 24h
sessions:
  driver: redis
questions:
  driver: badger
  path: /var/lib/deeds/questions
messages:
  greeting: Hello there
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "faq.yaml", cfg.Document.Path)
	assert.True(t, cfg.Document.Watch)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 24*time.Hour, cfg.Redis.TTL)
	assert.Equal(t, "deeds:", cfg.Redis.Prefix)
	assert.True(t, cfg.UsesRedis())
	assert.Equal(t, "/var/lib/deeds/questions", cfg.Questions.Path)
	assert.Equal(t, "Hello there", cfg.Messages.Greeting)
	assert.Equal(t, "Back to the beginning.", cfg.Messages.Reset, "unset messages keep their defaults")
	assert.NoError(t, cfg.RequireDocument())
}

func TestEnvAndFlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, `
document:
  path: faq.yaml
http:
  addr: ":9000"
log:
  level: warn
`)
	t.Setenv("DEEDS_HTTP_ADDR", ":9100")
	t.Setenv("DEEDS_TELEGRAM_TOKEN", "secret")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("doc", "", "")
	flags.String("log-level", "", "")
	require.NoError(t, flags.Parse([]string{"--doc", "other.json"}))

	cfg, err := Load(path,
		WithFlag("document.path", flags.Lookup("doc")),
		WithFlag("log.level", flags.Lookup("log-level")),
	)
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.HTTP.Addr)
	assert.Equal(t, "secret", cfg.Telegram.Token)
	assert.Equal(t, "other.json", cfg.Document.Path)
	assert.Equal(t, "warn", cfg.Log.Level, "an unset flag does not override the file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"Defaults", func(*Config) {}, false},
		{"Bad level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"Bad session driver", func(c *Config) { c.Sessions.Driver = "sqlite" }, true},
		{"Bad question driver", func(c *Config) { c.Questions.Driver = "postgres" }, true},
		{"Redis without addr", func(c *Config) { c.Questions.Driver = DriverRedis; c.Redis.Addr = "" }, true},
		{"Negative ttl", func(c *Config) { c.Redis.TTL = -time.Second }, true},
		{"File sessions", func(c *Config) { c.Sessions.Driver = DriverFile }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	cfg := DefaultConfig()
	cfg.Sessions.Driver = DriverFile
	cfg.Telegram.Timeout = 0
	require.NoError(t, cfg.Validate())
	assert.Equal(t, filepath.Join(DataDir, "sessions"), cfg.Sessions.Path)
	assert.Equal(t, 60, cfg.Telegram.Timeout)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadPrivacy(t *testing.T) {
	path := writeConfig(t, `
privacy:
  encryption_key: a2V5
  fallback_keys: [b2xk]
  redact:
    - '\d{4,}'
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "a2V5", cfg.Privacy.EncryptionKey)
	assert.Equal(t, []string{"b2xk"}, cfg.Privacy.FallbackKeys)
	assert.Equal(t, []string{`\d{4,}`}, cfg.Privacy.Redact)
}
