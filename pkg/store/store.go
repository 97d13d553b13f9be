// Package store persists lyfocus state as independent key->string records.
// Keys are namespaced as "<namespace>_<field>", for example "lyfocus_todos".
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Read when a key has never been written.
var ErrNotFound = errors.New("store: key not found")

// Persistence defines the key->string contract every backend implements.
type Persistence interface {
	Read(ctx context.Context, key string) (string, error)
	Write(ctx context.Context, key, value string) error
	// Erase removes key. Erasing a missing key is not an error.
	Erase(ctx context.Context, key string) error
	// Keys lists every stored key starting with prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

// Watcher is implemented by backends that can report writes made by other
// processes.
type Watcher interface {
	Watch(ctx context.Context) (<-chan Event, error)
}

// Backend names accepted by Config.Backend.
const (
	BackendDiskv    = "diskv"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config selects and configures a backend.
type Config struct {
	Backend string
	// Path is the diskv base directory.
	Path string
	// Namespace prefixes every key.
	Namespace string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SQLitePath  string
	PostgresDSN string
}

// Load opens the backend named by cfg.Backend. An empty backend means diskv.
func Load(ctx context.Context, cfg Config) (Persistence, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", BackendDiskv:
		if cfg.Path == "" {
			return nil, errors.New("store: diskv path required")
		}
		return NewDiskv(cfg.Path), nil
	case BackendMemory:
		return NewMemory(), nil
	case BackendRedis:
		return NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB), nil
	case BackendSQLite:
		return NewSQLite(ctx, cfg.SQLitePath)
	case BackendPostgres:
		return NewPostgres(ctx, cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend)
	}
}

// Key joins namespace and field into a persisted key.
func Key(namespace, field string) string {
	return namespace + "_" + field
}

// Field strips the namespace from key. ok is false when key does not belong
// to namespace.
func Field(namespace, key string) (string, bool) {
	return strings.CutPrefix(key, namespace+"_")
}
