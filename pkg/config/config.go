// Package config reads lyfocus settings from .lyfocus.yaml and the
// environment, and builds the process logger.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/lyfocus/pkg/store"
)

// Settings is everything lyfocus reads from configuration.
type Settings struct {
	Store store.Config

	KafkaBrokers []string
	KafkaTopic   string

	BackupSchedule string
	BackupDir      string

	QuoteURL     string
	QuoteTimeout time.Duration

	LogLevel  string
	LogFormat string
}

// Defaults are applied before the config file and environment.
var Defaults = map[string]any{
	"store.backend":      store.BackendDiskv,
	"store.path":         "~/.lyfocus.db",
	"store.namespace":    "lyfocus",
	"store.redis.addr":   "localhost:6379",
	"store.redis.db":     0,
	"store.sqlite.path":  "~/.lyfocus.sqlite",
	"events.kafka.topic": "lyfocus.events",
	"backup.dir":         "~/.lyfocus-backups",
	"quote.url":          "https://zenquotes.io/api/random",
	"quote.timeout":      5 * time.Second,
	"log.level":          "info",
	"log.format":         "text",
}

// Load reads .lyfocus.yaml from $LYFOCUS_CONFIG_PATH, the working directory
// or $HOME, then applies LYFOCUS_* environment overrides such as
// LYFOCUS_STORE_BACKEND.
func Load() (*Settings, error) {
	return load(viper.New())
}

func setDefaults(v *viper.Viper) {
	for k, d := range Defaults {
		v.SetDefault(k, d)
	}
}

func load(v *viper.Viper) (*Settings, error) {
	setDefaults(v)
	v.SetConfigName(".lyfocus") // .yaml is implicit
	v.SetEnvPrefix("LYFOCUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("LYFOCUS_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Settings, error) {
	s := &Settings{
		Store: store.Config{
			Backend:       v.GetString("store.backend"),
			Namespace:     v.GetString("store.namespace"),
			RedisAddr:     v.GetString("store.redis.addr"),
			RedisPassword: v.GetString("store.redis.password"),
			RedisDB:       v.GetInt("store.redis.db"),
			PostgresDSN:   v.GetString("store.postgres.dsn"),
		},
		KafkaBrokers:   brokers(v.GetStringSlice("events.kafka.brokers")),
		KafkaTopic:     v.GetString("events.kafka.topic"),
		BackupSchedule: v.GetString("backup.schedule"),
		QuoteURL:       v.GetString("quote.url"),
		QuoteTimeout:   v.GetDuration("quote.timeout"),
		LogLevel:       v.GetString("log.level"),
		LogFormat:      v.GetString("log.format"),
	}
	if s.Store.Namespace == "" {
		return nil, errors.New("config: store.namespace must not be empty")
	}
	var err error
	if s.Store.Path, err = homedir.Expand(v.GetString("store.path")); err != nil {
		return nil, fmt.Errorf("config: store.path: %w", err)
	}
	if s.Store.SQLitePath, err = homedir.Expand(v.GetString("store.sqlite.path")); err != nil {
		return nil, fmt.Errorf("config: store.sqlite.path: %w", err)
	}
	if s.BackupDir, err = homedir.Expand(v.GetString("backup.dir")); err != nil {
		return nil, fmt.Errorf("config: backup.dir: %w", err)
	}
	return s, nil
}

// brokers accepts both a YAML list and a comma separated env value.
func brokers(in []string) []string {
	var out []string
	for _, b := range in {
		for _, part := range strings.Split(b, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Logger builds the process logger writing to w.
func (s *Settings) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(s.LogLevel)}
	if strings.EqualFold(s.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel maps debug|info|warn|error to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
