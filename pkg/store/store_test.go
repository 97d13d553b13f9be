package store

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exercise runs the shared contract against one backend.
func exercise(t *testing.T, p Persistence) {
	t.Helper()
	ctx := context.Background()

	_, err := p.Read(ctx, "lyfocus_todos")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, p.Write(ctx, "lyfocus_todos", `[{"id":1}]`))
	require.NoError(t, p.Write(ctx, "lyfocus_xp", "25"))
	require.NoError(t, p.Write(ctx, "other_xp", "7"))
	require.NoError(t, p.Write(ctx, "lyfocus_xp", "35"))

	got, err := p.Read(ctx, "lyfocus_xp")
	require.NoError(t, err)
	assert.Equal(t, "35", got)

	keys, err := p.Keys(ctx, "lyfocus_")
	require.NoError(t, err)
	assert.Equal(t, []string{"lyfocus_todos", "lyfocus_xp"}, keys)

	require.NoError(t, p.Erase(ctx, "lyfocus_todos"))
	require.NoError(t, p.Erase(ctx, "lyfocus_todos"), "erasing twice is fine")
	_, err = p.Read(ctx, "lyfocus_todos")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, p.Close())
}

func TestMemoryStore(t *testing.T) {
	exercise(t, NewMemory())
}

func TestDiskvStore(t *testing.T) {
	exercise(t, NewDiskv(t.TempDir()))
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	exercise(t, s)
}

func TestLoadSelectsBackend(t *testing.T) {
	ctx := context.Background()

	p, err := Load(ctx, Config{Path: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &DiskvStore{}, p)

	p, err = Load(ctx, Config{Backend: "MEMORY"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, p)

	p, err = Load(ctx, Config{Backend: BackendSQLite, SQLitePath: ":memory:"})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, p)
	require.NoError(t, p.Close())

	_, err = Load(ctx, Config{Backend: "etcd"})
	assert.Error(t, err)
	_, err = Load(ctx, Config{})
	assert.Error(t, err, "diskv needs a path")
}

func TestKeyHelpers(t *testing.T) {
	assert.Equal(t, "lyfocus_todos", Key("lyfocus", "todos"))
	f, ok := Field("lyfocus", "lyfocus_energyLevels")
	assert.True(t, ok)
	assert.Equal(t, "energyLevels", f)
	_, ok = Field("lyfocus", "other_energyLevels")
	assert.False(t, ok)
}

// fakeRedis answers commands from a map the way a Redis server would.
type fakeRedis struct {
	data   map[string]string
	closed bool
	fail   error
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.fail != nil {
		return redis.NewStringResult("", f.fail)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	if f.fail != nil {
		return redis.NewStatusResult("", f.fail)
	}
	f.data[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	n := 0
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(int64(n), nil)
}

// Scan pages one key at a time to exercise the cursor loop.
func (f *fakeRedis) Scan(_ context.Context, cursor uint64, match string, _ int64) *redis.ScanCmd {
	prefix := strings.TrimSuffix(match, "*")
	var all []string
	for k := range f.data {
		if strings.HasPrefix(k, prefix) {
			all = append(all, k)
		}
	}
	sort.Strings(all)
	if int(cursor) >= len(all) {
		return redis.NewScanCmdResult(nil, 0, nil)
	}
	next := cursor + 1
	if int(next) >= len(all) {
		next = 0
	}
	return redis.NewScanCmdResult(all[cursor:cursor+1], next, nil)
}

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func TestRedisStore(t *testing.T) {
	f := &fakeRedis{data: map[string]string{}}
	exercise(t, newRedisWithClient(f))
	assert.True(t, f.closed)

	f = &fakeRedis{data: map[string]string{}, fail: errors.New("connection refused")}
	s := newRedisWithClient(f)
	_, err := s.Read(context.Background(), "lyfocus_xp")
	assert.ErrorContains(t, err, "connection refused")
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Error(t, s.Write(context.Background(), "lyfocus_xp", "1"))
}

func TestPostgresStore(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	conn.ExpectExec(regexp.QuoteMeta(pgSchema)).WillReturnResult(pgxmock.NewResult("CREATE", 0))
	s, err := NewPostgresWithConn(ctx, conn)
	require.NoError(t, err)

	t.Run("read", func(t *testing.T) {
		conn.ExpectQuery(regexp.QuoteMeta(pgRead)).
			WithArgs("lyfocus_xp").
			WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow("35"))
		v, err := s.Read(ctx, "lyfocus_xp")
		assert.NoError(t, err)
		assert.Equal(t, "35", v)
	})
	t.Run("read missing", func(t *testing.T) {
		conn.ExpectQuery(regexp.QuoteMeta(pgRead)).
			WithArgs("lyfocus_todos").
			WillReturnError(pgx.ErrNoRows)
		_, err := s.Read(ctx, "lyfocus_todos")
		assert.ErrorIs(t, err, ErrNotFound)
	})
	t.Run("write", func(t *testing.T) {
		conn.ExpectExec(regexp.QuoteMeta(pgWrite)).
			WithArgs("lyfocus_xp", "45").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		assert.NoError(t, s.Write(ctx, "lyfocus_xp", "45"))
	})
	t.Run("write error", func(t *testing.T) {
		conn.ExpectExec(regexp.QuoteMeta(pgWrite)).
			WithArgs("lyfocus_xp", "45").
			WillReturnError(errors.New("db error"))
		assert.Error(t, s.Write(ctx, "lyfocus_xp", "45"))
	})
	t.Run("erase", func(t *testing.T) {
		conn.ExpectExec(regexp.QuoteMeta(pgErase)).
			WithArgs("lyfocus_xp").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		assert.NoError(t, s.Erase(ctx, "lyfocus_xp"))
	})
	t.Run("keys", func(t *testing.T) {
		conn.ExpectQuery(regexp.QuoteMeta(pgKeys)).
			WithArgs("lyfocus_").
			WillReturnRows(pgxmock.NewRows([]string{"key"}).AddRow("lyfocus_theme").AddRow("lyfocus_xp"))
		keys, err := s.Keys(ctx, "lyfocus_")
		assert.NoError(t, err)
		assert.Equal(t, []string{"lyfocus_theme", "lyfocus_xp"}, keys)
	})

	conn.ExpectClose()
	require.NoError(t, s.Close())
	assert.NoError(t, conn.ExpectationsWereMet())
}
