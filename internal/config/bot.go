package config

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// BotConfig is an immutable snapshot of the chat bot settings. A reload
// builds a new value and swaps it in, readers never see a partial update.
type BotConfig struct {
	Session          string
	SendTimeout      time.Duration
	TypingDelay      time.Duration
	MarkMessagesRead bool
	ReminderEnabled  bool
	ReminderCheckIn  string
	ReminderCheckOut string
	LoadedAt         time.Time

	templates map[string]string
}

// Template returns the text for key and whether it exists.
func (c *BotConfig) Template(key string) (string, bool) {
	text, ok := c.templates[key]
	return text, ok
}

// TemplateKeys lists the configured template keys.
func (c *BotConfig) TemplateKeys() []string {
	keys := make([]string, 0, len(c.templates))
	for k := range c.templates {
		keys = append(keys, k)
	}
	return keys
}

// BuildBotConfig combines environment settings with the optional bot file.
func BuildBotConfig(env BotEnvConfig) (*BotConfig, error) {
	cfg := &BotConfig{
		Session:          env.WAHASession,
		SendTimeout:      env.SendTimeout,
		TypingDelay:      env.TypingDelay,
		MarkMessagesRead: env.MarkMessagesRead,
		ReminderEnabled:  env.ReminderEnabled,
		ReminderCheckIn:  env.ReminderCheckIn,
		ReminderCheckOut: env.ReminderCheckOut,
		LoadedAt:         time.Now(),
	}

	var overrides map[string]string
	if env.TemplatesFile != "" {
		file, err := LoadBotFile(env.TemplatesFile)
		if err != nil {
			return nil, err
		}
		overrides = file.Templates
		if file.MarkMessagesRead != nil {
			cfg.MarkMessagesRead = *file.MarkMessagesRead
		}
		if file.TypingDelayMS != nil {
			cfg.TypingDelay = time.Duration(*file.TypingDelayMS) * time.Millisecond
		}
	}
	cfg.templates = MergeTemplates(overrides)

	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 10 * time.Second
	}
	if cfg.TypingDelay >= cfg.SendTimeout {
		return nil, fmt.Errorf("typing delay %s must be shorter than send timeout %s", cfg.TypingDelay, cfg.SendTimeout)
	}
	return cfg, nil
}

// BotConfigStore hands out the current BotConfig snapshot.
type BotConfigStore interface {
	Current() *BotConfig
	Reload() (*BotConfig, error)
}

type botConfigStore struct {
	current atomic.Pointer[BotConfig]
	loader  func() (*BotConfig, error)
	mu      sync.Mutex
}

// NewBotConfigStore loads the first snapshot with loader and reuses loader
// for every Reload.
func NewBotConfigStore(loader func() (*BotConfig, error)) (BotConfigStore, error) {
	cfg, err := loader()
	if err != nil {
		return nil, err
	}
	s := &botConfigStore{loader: loader}
	s.current.Store(cfg)
	return s, nil
}

// EnvBotConfigLoader re-reads the environment and the bot file on each call.
func EnvBotConfigLoader() (*BotConfig, error) {
	env, err := LoadBotEnv()
	if err != nil {
		return nil, err
	}
	return BuildBotConfig(env)
}

func (s *botConfigStore) Current() *BotConfig {
	return s.current.Load()
}

// Reload keeps the previous snapshot when loading fails.
func (s *botConfigStore) Reload() (*BotConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.loader()
	if err != nil {
		slog.Error("bot config reload failed, keeping previous snapshot", "error", err)
		return s.current.Load(), err
	}
	s.current.Store(cfg)
	slog.Info("bot config reloaded", "templates", len(cfg.templates), "mark_messages_read", cfg.MarkMessagesRead)
	return cfg, nil
}
