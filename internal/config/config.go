package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "time/tzdata"
)

const EnvProduction = "production"

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	Admin     AdminConfig
	Bot       BotEnvConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type DatabaseConfig struct {
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port          int
	Env           string
	LogLevel      string
	Timezone      string
	Location      *time.Location
	CountryCode   string
	StorageDriver string
	CORSOrigins   []string
}

// AdminConfig seeds the dashboard account for the memory driver.
type AdminConfig struct {
	Email    string
	Password string
}

// BotEnvConfig is the part of the bot setup that comes from the
// environment. It is re-read on every bot reload.
type BotEnvConfig struct {
	APIKey           string
	WebhookSecret    string
	WAHABaseURL      string
	WAHAAPIKey       string
	WAHASession      string
	SendTimeout      time.Duration
	TypingDelay      time.Duration
	MarkMessagesRead bool
	TemplatesFile    string
	ReminderEnabled  bool
	ReminderCheckIn  string
	ReminderCheckOut string
}

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	DedupeTTL time.Duration
}

// RateLimitConfig is a per-key token bucket: RPS tokens per second, Burst capacity.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := getEnvInt("DB_MAX_CONNS", 25)
	if err != nil {
		return nil, err
	}
	minConns, err := getEnvInt("DB_MIN_CONNS", 5)
	if err != nil {
		return nil, err
	}

	config.Database = DatabaseConfig{
		URL:      getEnv("DATABASE_URL", ""),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "api_presensi"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	timezone := getEnv("APP_TIMEZONE", "Asia/Jakarta")
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}

	config.App = AppConfig{
		Port:          appPort,
		Env:           getEnv("APP_ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		Timezone:      timezone,
		Location:      location,
		CountryCode:   getEnv("PHONE_COUNTRY_CODE", "62"),
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverPostgres)),
		CORSOrigins:   getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "24h"),
	}

	config.Admin = AdminConfig{
		Email:    getEnv("ADMIN_EMAIL", "admin@presensi.local"),
		Password: getEnv("ADMIN_PASSWORD", ""),
	}

	config.Bot, err = LoadBotEnv()
	if err != nil {
		return nil, err
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	dedupeTTL, err := getEnvDuration("WEBHOOK_DEDUPE_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}
	config.Redis = RedisConfig{
		Addr:      getEnv("REDIS_ADDR", ""),
		Password:  getEnv("REDIS_PASSWORD", ""),
		DB:        redisDB,
		DedupeTTL: dedupeTTL,
	}

	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "1"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}
	burst, err := getEnvInt("RATE_LIMIT_BURST", 5)
	if err != nil {
		return nil, err
	}
	config.RateLimit = RateLimitConfig{RPS: rps, Burst: burst}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// LoadBotEnv reads the BOT_* and WAHA_* variables.
func LoadBotEnv() (BotEnvConfig, error) {
	sendTimeout, err := getEnvDuration("BOT_SEND_TIMEOUT", 10*time.Second)
	if err != nil {
		return BotEnvConfig{}, err
	}
	typingDelay, err := getEnvDuration("BOT_TYPING_DELAY", 0)
	if err != nil {
		return BotEnvConfig{}, err
	}

	return BotEnvConfig{
		APIKey:           getEnv("BOT_API_KEY", ""),
		WebhookSecret:    getEnv("WEBHOOK_SECRET", ""),
		WAHABaseURL:      strings.TrimRight(getEnv("WAHA_BASE_URL", "http://localhost:3000"), "/"),
		WAHAAPIKey:       getEnv("WAHA_API_KEY", ""),
		WAHASession:      getEnv("WAHA_SESSION", "default"),
		SendTimeout:      sendTimeout,
		TypingDelay:      typingDelay,
		MarkMessagesRead: getEnvBool("BOT_MARK_MESSAGES_READ", true),
		TemplatesFile:    getEnv("BOT_TEMPLATES_FILE", ""),
		ReminderEnabled:  getEnvBool("REMINDER_ENABLED", false),
		ReminderCheckIn:  getEnv("REMINDER_CHECK_IN_TIME", "07:30"),
		ReminderCheckOut: getEnv("REMINDER_CHECK_OUT_TIME", "17:00"),
	}, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.App.StorageDriver {
	case StorageDriverPostgres:
		if c.Database.URL == "" && c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD or DATABASE_URL is required")
		}
	case StorageDriverMemory:
		if c.Admin.Password == "" {
			return fmt.Errorf("ADMIN_PASSWORD is required for the memory driver")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q", StorageDriverPostgres, StorageDriverMemory)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if c.Bot.APIKey == "" {
		return fmt.Errorf("BOT_API_KEY is required")
	}
	if c.App.Env == EnvProduction && c.Bot.WebhookSecret == "" {
		return fmt.Errorf("WEBHOOK_SECRET is required when APP_ENV=%s", EnvProduction)
	}
	if c.Bot.SendTimeout <= 0 || c.Bot.SendTimeout > 10*time.Second {
		return fmt.Errorf("BOT_SEND_TIMEOUT must be between 0 and 10s")
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return validateClock("REMINDER_CHECK_IN_TIME", c.Bot.ReminderCheckIn, "REMINDER_CHECK_OUT_TIME", c.Bot.ReminderCheckOut)
}

func validateClock(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if _, err := time.Parse("15:04", pairs[i+1]); err != nil {
			return fmt.Errorf("%s must be HH:MM", pairs[i])
		}
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}

// getEnvDuration accepts Go durations ("1500ms") and bare milliseconds ("1500").
func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
