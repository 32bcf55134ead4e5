package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DiscordToken      string        `yaml:"discord_token"`
	DatabasePath      string        `yaml:"database_path"`
	LogLevel          string        `yaml:"log_level"`
	DefaultLogChannel string        `yaml:"default_log_channel"`
	DefaultLanguage   string        `yaml:"default_language"`
	RetentionDays     int           `yaml:"retention_days"`
	Alerts            AlertsConfig  `yaml:"alerts"`
	Weather           WeatherConfig `yaml:"weather"`
	Tickets           TicketsConfig `yaml:"tickets"`
	Verify            VerifyConfig  `yaml:"verify"`
	Reminders         RemindConfig  `yaml:"reminders"`
	Notifications     NotifyConfig  `yaml:"notifications"`
}

type AlertsConfig struct {
	Enabled               bool   `yaml:"enabled"`
	FeedURL               string `yaml:"feed_url"`
	Referer               string `yaml:"referer"`
	UserAgent             string `yaml:"user_agent"`
	PollSeconds           int    `yaml:"poll_seconds"`
	CooldownSeconds       int    `yaml:"cooldown_seconds"`
	FetchAttempts         int    `yaml:"fetch_attempts"`
	RetryStepSeconds      int    `yaml:"retry_step_seconds"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
}

type WeatherConfig struct {
	Enabled        bool   `yaml:"enabled"`
	GeocodeURL     string `yaml:"geocode_url"`
	ForecastURL    string `yaml:"forecast_url"`
	DefaultCity    string `yaml:"default_city"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type TicketsConfig struct {
	MaxOpenPerUser int `yaml:"max_open_per_user"`
}

type VerifyConfig struct {
	CodeTTLMinutes int `yaml:"code_ttl_minutes"`
	CodeLength     int `yaml:"code_length"`
}

type RemindConfig struct {
	ScanSeconds int `yaml:"scan_seconds"`
	MaxPerUser  int `yaml:"max_per_user"`
}

type NotifyConfig struct {
	AuditToChannel bool        `yaml:"audit_to_channel"`
	EmbedColors    EmbedColors `yaml:"embed_colors"`
}

type EmbedColors struct {
	Alert int `yaml:"alert"`
	Info  int `yaml:"info"`
	Error int `yaml:"error"`
}

func DefaultConfig() Config {
	return Config{
		DatabasePath:      "/data/shomer.db",
		LogLevel:          "info",
		RetentionDays:     30,
		DefaultLogChannel: "",
		DefaultLanguage:   "he",
		Alerts: AlertsConfig{
			Enabled:               true,
			FeedURL:               "https://www.oref.org.il/WarningMessages/alert/alerts.json",
			Referer:               "https://www.oref.org.il/",
			UserAgent:             "Mozilla/5.0 (compatible; ShomerBot/1.0)",
			PollSeconds:           10,
			CooldownSeconds:       45,
			FetchAttempts:         3,
			RetryStepSeconds:      1,
			RequestTimeoutSeconds: 12,
		},
		Weather: WeatherConfig{
			Enabled:        true,
			GeocodeURL:     "https://geocoding-api.open-meteo.com/v1/search",
			ForecastURL:    "https://api.open-meteo.com/v1/forecast",
			DefaultCity:    "Tel Aviv",
			TimeoutSeconds: 10,
		},
		Tickets:   TicketsConfig{MaxOpenPerUser: 3},
		Verify:    VerifyConfig{CodeTTLMinutes: 10, CodeLength: 6},
		Reminders: RemindConfig{ScanSeconds: 30, MaxPerUser: 25},
		Notifications: NotifyConfig{
			AuditToChannel: true,
			EmbedColors: EmbedColors{
				Alert: 0xEF4444,
				Info:  0x3B82F6,
				Error: 0xF97316,
			},
		},
	}
}

func Load() (Config, error) {
	cfg := DefaultConfig()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)
	if cfg.DiscordToken == "" {
		return Config{}, errors.New("DISCORD_TOKEN is required")
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.DiscordToken = envString("DISCORD_TOKEN", cfg.DiscordToken)
	cfg.DatabasePath = envString("DATABASE_PATH", cfg.DatabasePath)
	cfg.LogLevel = envString("LOG_LEVEL", cfg.LogLevel)
	cfg.DefaultLogChannel = envString("DEFAULT_LOG_CHANNEL", cfg.DefaultLogChannel)
	cfg.DefaultLanguage = envString("DEFAULT_LANGUAGE", cfg.DefaultLanguage)
	cfg.RetentionDays = envInt("RETENTION_DAYS", cfg.RetentionDays)
	cfg.Alerts.Enabled = envBool("ALERTS_ENABLED", cfg.Alerts.Enabled)
	cfg.Alerts.FeedURL = envString("ALERTS_FEED_URL", cfg.Alerts.FeedURL)
	cfg.Alerts.Referer = envString("ALERTS_REFERER", cfg.Alerts.Referer)
	cfg.Alerts.UserAgent = envString("ALERTS_USER_AGENT", cfg.Alerts.UserAgent)
	cfg.Alerts.PollSeconds = envInt("ALERTS_POLL_SECONDS", cfg.Alerts.PollSeconds)
	cfg.Alerts.CooldownSeconds = envInt("ALERTS_COOLDOWN_SECONDS", cfg.Alerts.CooldownSeconds)
	cfg.Alerts.FetchAttempts = envInt("ALERTS_FETCH_ATTEMPTS", cfg.Alerts.FetchAttempts)
	cfg.Alerts.RetryStepSeconds = envInt("ALERTS_RETRY_STEP_SECONDS", cfg.Alerts.RetryStepSeconds)
	cfg.Alerts.RequestTimeoutSeconds = envInt("ALERTS_REQUEST_TIMEOUT_SECONDS", cfg.Alerts.RequestTimeoutSeconds)
	cfg.Weather.Enabled = envBool("WEATHER_ENABLED", cfg.Weather.Enabled)
	cfg.Weather.DefaultCity = envString("WEATHER_DEFAULT_CITY", cfg.Weather.DefaultCity)
	cfg.Weather.TimeoutSeconds = envInt("WEATHER_TIMEOUT_SECONDS", cfg.Weather.TimeoutSeconds)
	cfg.Tickets.MaxOpenPerUser = envInt("TICKETS_MAX_OPEN_PER_USER", cfg.Tickets.MaxOpenPerUser)
	cfg.Verify.CodeTTLMinutes = envInt("VERIFY_CODE_TTL_MINUTES", cfg.Verify.CodeTTLMinutes)
	cfg.Reminders.ScanSeconds = envInt("REMINDERS_SCAN_SECONDS", cfg.Reminders.ScanSeconds)
	cfg.Reminders.MaxPerUser = envInt("REMINDERS_MAX_PER_USER", cfg.Reminders.MaxPerUser)
	cfg.Notifications.AuditToChannel = envBool("AUDIT_TO_CHANNEL", cfg.Notifications.AuditToChannel)
	cfg.Notifications.EmbedColors.Alert = envInt("EMBED_COLOR_ALERT", cfg.Notifications.EmbedColors.Alert)
	cfg.Notifications.EmbedColors.Info = envInt("EMBED_COLOR_INFO", cfg.Notifications.EmbedColors.Info)
	cfg.Notifications.EmbedColors.Error = envInt("EMBED_COLOR_ERROR", cfg.Notifications.EmbedColors.Error)
}

func (a AlertsConfig) PollInterval() time.Duration {
	return time.Duration(a.PollSeconds) * time.Second
}

func (a AlertsConfig) Cooldown() time.Duration {
	return time.Duration(a.CooldownSeconds) * time.Second
}

func (a AlertsConfig) RetryStep() time.Duration {
	return time.Duration(a.RetryStepSeconds) * time.Second
}

func (a AlertsConfig) RequestTimeout() time.Duration {
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

func BuildLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.MessageKey = "message"
	cfg.EncoderConfig.LevelKey = "level"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	lvl := strings.ToLower(level)
	switch lvl {
	case "debug", "info", "warn", "error":
		cfg.Level = zap.NewAtomicLevelAt(parseLevel(lvl))
	default:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	return cfg.Build()
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		lower := strings.ToLower(value)
		return lower == "1" || lower == "true" || lower == "yes"
	}
	return fallback
}
