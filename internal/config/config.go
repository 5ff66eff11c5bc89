package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"modwarden/internal/polls"
	"modwarden/internal/reminders"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DiscordToken string         `yaml:"discord_token"`
	DatabasePath string         `yaml:"database_path"`
	LogLevel     string         `yaml:"log_level"`
	Prefix       string         `yaml:"prefix"`
	Health       HealthConfig   `yaml:"health"`
	Moderation   ModConfig      `yaml:"moderation"`
	Filter       FilterConfig   `yaml:"filter"`
	ModLog       ModLogConfig   `yaml:"mod_log"`
}

type HealthConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

type ModConfig struct {
	MuteRoleName       string `yaml:"mute_role_name"`
	DefaultMuteMinutes int    `yaml:"default_mute_minutes"`
	AutomodMuteMinutes int    `yaml:"automod_mute_minutes"`
	SpamThreshold      int    `yaml:"spam_threshold"`
	SpamWindowSeconds  int    `yaml:"spam_window_seconds"`
	SpamMuteMinutes    int    `yaml:"spam_mute_minutes"`
	NapMinutes         int    `yaml:"nap_minutes"`
	DedupeCapacity     int    `yaml:"dedupe_capacity"`
	PollWindowSeconds  int    `yaml:"poll_window_seconds"`
	ReminderMinSeconds int    `yaml:"reminder_min_seconds"`
	ReminderMaxDays    int    `yaml:"reminder_max_days"`
}

type FilterConfig struct {
	BannedWords   []string `yaml:"banned_words"`
	AllowLinks    bool     `yaml:"allow_links"`
	LinkAllowlist []string `yaml:"link_allowlist"`
}

type ModLogConfig struct {
	RetentionDays int `yaml:"retention_days"`
}

func DefaultConfig() Config {
	return Config{
		DatabasePath: "/data/modwarden.db",
		LogLevel:     "info",
		Prefix:       "!",
		Health:       HealthConfig{Enabled: false, Addr: ":8080"},
		Moderation: ModConfig{
			MuteRoleName:       "Muted",
			DefaultMuteMinutes: 10,
			AutomodMuteMinutes: 60,
			SpamThreshold:      5,
			SpamWindowSeconds:  10,
			SpamMuteMinutes:    5,
			NapMinutes:         2,
			DedupeCapacity:     1000,
			PollWindowSeconds:  int(polls.Window / time.Second),
			ReminderMinSeconds: int(reminders.MinDelay / time.Second),
			ReminderMaxDays:    int(reminders.MaxDelay / (24 * time.Hour)),
		},
		Filter: FilterConfig{
			BannedWords:   []string{"free nitro", "scam", "discord.gg/"},
			AllowLinks:    false,
			LinkAllowlist: []string{"discord.com", "github.com", "youtube.com", "youtu.be"},
		},
		ModLog: ModLogConfig{RetentionDays: 14},
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
	if cfg.Prefix == "" {
		cfg.Prefix = "!"
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.DiscordToken = envString("DISCORD_TOKEN", cfg.DiscordToken)
	cfg.DatabasePath = envString("DATABASE_PATH", cfg.DatabasePath)
	cfg.LogLevel = envString("LOG_LEVEL", cfg.LogLevel)
	cfg.Prefix = envString("COMMAND_PREFIX", cfg.Prefix)
	cfg.Health.Enabled = envBool("HEALTH_ENABLED", cfg.Health.Enabled)
	cfg.Health.Addr = envString("HEALTH_ADDR", cfg.Health.Addr)
	cfg.Moderation.MuteRoleName = envString("MUTE_ROLE_NAME", cfg.Moderation.MuteRoleName)
	cfg.Moderation.DefaultMuteMinutes = envInt("DEFAULT_MUTE_MINUTES", cfg.Moderation.DefaultMuteMinutes)
	cfg.Moderation.AutomodMuteMinutes = envInt("AUTOMOD_MUTE_MINUTES", cfg.Moderation.AutomodMuteMinutes)
	cfg.Moderation.SpamThreshold = envInt("SPAM_THRESHOLD", cfg.Moderation.SpamThreshold)
	cfg.Moderation.SpamWindowSeconds = envInt("SPAM_WINDOW_SECONDS", cfg.Moderation.SpamWindowSeconds)
	cfg.Moderation.SpamMuteMinutes = envInt("SPAM_MUTE_MINUTES", cfg.Moderation.SpamMuteMinutes)
	cfg.Moderation.NapMinutes = envInt("NAP_MINUTES", cfg.Moderation.NapMinutes)
	cfg.Moderation.DedupeCapacity = envInt("DEDUPE_CAPACITY", cfg.Moderation.DedupeCapacity)
	cfg.Moderation.PollWindowSeconds = envInt("POLL_WINDOW_SECONDS", cfg.Moderation.PollWindowSeconds)
	cfg.Moderation.ReminderMinSeconds = envInt("REMINDER_MIN_SECONDS", cfg.Moderation.ReminderMinSeconds)
	cfg.Moderation.ReminderMaxDays = envInt("REMINDER_MAX_DAYS", cfg.Moderation.ReminderMaxDays)
	cfg.ModLog.RetentionDays = envInt("MOD_LOG_RETENTION_DAYS", cfg.ModLog.RetentionDays)
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
