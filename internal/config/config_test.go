package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Jevon1999/api-presensi/internal/domain/command"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBotFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MemoryDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("ADMIN_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "jwt-secret")
	t.Setenv("BOT_API_KEY", "bot-key")
	t.Setenv("BOT_TYPING_DELAY", "1500")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageDriverMemory, cfg.App.StorageDriver)
	assert.Equal(t, "Asia/Jakarta", cfg.App.Location.String())
	assert.Equal(t, "62", cfg.App.CountryCode)
	assert.Equal(t, 1500*time.Millisecond, cfg.Bot.TypingDelay)
	assert.Equal(t, 10*time.Second, cfg.Bot.SendTimeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.App.CORSOrigins)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			App:       AppConfig{StorageDriver: StorageDriverPostgres},
			Database:  DatabaseConfig{Password: "pw"},
			JWT:       JWTConfig{Secret: "s", AccessExpiration: "1h"},
			Bot:       BotEnvConfig{APIKey: "k", SendTimeout: 5 * time.Second, ReminderCheckIn: "07:30", ReminderCheckOut: "17:00"},
			RateLimit: RateLimitConfig{RPS: 1, Burst: 5},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing db password", mutate: func(c *Config) { c.Database.Password = "" }, wantErr: true},
		{name: "database url instead of password", mutate: func(c *Config) { c.Database.Password = ""; c.Database.URL = "postgres://x" }},
		{name: "unknown driver", mutate: func(c *Config) { c.App.StorageDriver = "sqlite" }, wantErr: true},
		{name: "missing jwt secret", mutate: func(c *Config) { c.JWT.Secret = "" }, wantErr: true},
		{name: "send timeout above 10s", mutate: func(c *Config) { c.Bot.SendTimeout = 11 * time.Second }, wantErr: true},
		{name: "bad reminder time", mutate: func(c *Config) { c.Bot.ReminderCheckOut = "5pm" }, wantErr: true},
		{name: "missing bot key", mutate: func(c *Config) { c.Bot.APIKey = "" }, wantErr: true},
		{name: "production without webhook secret", mutate: func(c *Config) { c.App.Env = EnvProduction }, wantErr: true},
		{name: "production with webhook secret", mutate: func(c *Config) { c.App.Env = EnvProduction; c.Bot.WebhookSecret = "hmac" }},
		{name: "development without webhook secret", mutate: func(c *Config) { c.App.Env = "development" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBuildBotConfig_FileOverrides(t *testing.T) {
	path := writeBotFile(t, `
mark_messages_read: false
typing_delay_ms: 800
templates:
  help: "Custom help"
  unknown: ""
`)

	cfg, err := BuildBotConfig(BotEnvConfig{
		WAHASession:      "default",
		SendTimeout:      5 * time.Second,
		MarkMessagesRead: true,
		TemplatesFile:    path,
	})
	require.NoError(t, err)

	assert.False(t, cfg.MarkMessagesRead)
	assert.Equal(t, 800*time.Millisecond, cfg.TypingDelay)

	help, ok := cfg.Template(command.MsgHelp)
	require.True(t, ok)
	assert.Equal(t, "Custom help", help)

	unknown, ok := cfg.Template(command.MsgUnknown)
	require.True(t, ok)
	assert.NotEmpty(t, unknown)
}

func TestBuildBotConfig_Errors(t *testing.T) {
	_, err := BuildBotConfig(BotEnvConfig{TemplatesFile: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)

	_, err = BuildBotConfig(BotEnvConfig{TemplatesFile: writeBotFile(t, "templates: [not, a, map]")})
	assert.Error(t, err)

	_, err = BuildBotConfig(BotEnvConfig{SendTimeout: time.Second, TypingDelay: 2 * time.Second})
	assert.Error(t, err)
}

func TestBotConfigStore_Reload(t *testing.T) {
	calls := 0
	loader := func() (*BotConfig, error) {
		calls++
		if calls == 3 {
			return nil, errors.New("broken file")
		}
		return BuildBotConfig(BotEnvConfig{WAHASession: "s", SendTimeout: time.Second, MarkMessagesRead: calls == 1})
	}

	store, err := NewBotConfigStore(loader)
	require.NoError(t, err)
	first := store.Current()
	assert.True(t, first.MarkMessagesRead)

	second, err := store.Reload()
	require.NoError(t, err)
	assert.False(t, second.MarkMessagesRead)
	assert.Same(t, second, store.Current())
	assert.True(t, first.MarkMessagesRead, "old snapshot must not change")

	kept, err := store.Reload()
	assert.Error(t, err)
	assert.Same(t, second, kept)
	assert.Same(t, second, store.Current())
}
