package config

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fromYAML(t *testing.T, doc string) *Settings {
	t.Helper()
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(doc)))
	s, err := fromViper(v)
	require.NoError(t, err)
	return s
}

func TestDefaults(t *testing.T) {
	s := fromYAML(t, "")
	home, err := homedir.Dir()
	require.NoError(t, err)

	assert.Equal(t, "diskv", s.Store.Backend)
	assert.Equal(t, "lyfocus", s.Store.Namespace)
	assert.Equal(t, filepath.Join(home, ".lyfocus.db"), s.Store.Path)
	assert.Equal(t, "lyfocus.events", s.KafkaTopic)
	assert.Empty(t, s.KafkaBrokers)
	assert.Empty(t, s.BackupSchedule)
	assert.Equal(t, "https://zenquotes.io/api/random", s.QuoteURL)
	assert.Equal(t, 5*time.Second, s.QuoteTimeout)
}

func TestFileValues(t *testing.T) {
	s := fromYAML(t, `
store:
  backend: redis
  namespace: work
  redis:
    addr: cache:6379
    db: 2
events:
  kafka:
    brokers: ["k1:9092", "k2:9092"]
backup:
  schedule: "@daily"
  dir: /var/backups/lyfocus
quote:
  timeout: 250ms
log:
  level: debug
  format: json
`)
	assert.Equal(t, "redis", s.Store.Backend)
	assert.Equal(t, "work", s.Store.Namespace)
	assert.Equal(t, "cache:6379", s.Store.RedisAddr)
	assert.Equal(t, 2, s.Store.RedisDB)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, s.KafkaBrokers)
	assert.Equal(t, "@daily", s.BackupSchedule)
	assert.Equal(t, "/var/backups/lyfocus", s.BackupDir)
	assert.Equal(t, 250*time.Millisecond, s.QuoteTimeout)
	assert.Equal(t, "debug", s.LogLevel)
}

func TestEmptyNamespaceRejected(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("store.namespace", "")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestBrokersSplitsCommaLists(t *testing.T) {
	assert.Equal(t, []string{"a:1", "b:2", "c:3"}, brokers([]string{"a:1, b:2", "", "c:3"}))
	assert.Nil(t, brokers(nil))
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	s := &Settings{LogLevel: "warn", LogFormat: "json"}
	log := s.Logger(&buf)
	log.Info("hidden")
	log.Warn("shown", "key", "lyfocus_todos")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"key":"lyfocus_todos"`)

	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
}
