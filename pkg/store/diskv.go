package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// NewDiskv creates a Persistence backed by diskv under basePath. A key such
// as "lyfocus_todos" is stored at <basePath>/lyfocus/todos. Reads are not
// cached since the CLI and the MCP server write the same files.
func NewDiskv(basePath string) *DiskvStore {
	return &DiskvStore{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
	}), basePath: basePath}
}

type DiskvStore struct {
	d        *diskv.Diskv
	basePath string
}

var _ Persistence = (*DiskvStore)(nil)
var _ Watcher = (*DiskvStore)(nil)

func (p *DiskvStore) Read(_ context.Context, key string) (string, error) {
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("store: read %s: %w", key, err)
	}
	return string(val), nil
}

func (p *DiskvStore) Write(_ context.Context, key, value string) error {
	if err := p.d.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *DiskvStore) Erase(_ context.Context, key string) error {
	if err := p.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	return nil
}

// Keys walks the namespace directory of prefix, so prefix should be a whole
// namespace such as "lyfocus_".
func (p *DiskvStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys := make([]string, 0)
	for key := range p.d.KeysPrefix(prefix, ctx.Done()) {
		keys = append(keys, key)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

func (p *DiskvStore) Close() error { return nil }

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "_")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s_%s", strings.Join(pathKey.Path, "_"), pathKey.FileName)
}
