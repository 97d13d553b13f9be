package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgConnection is satisfied by *pgxpool.Pool and by pgxmock pools.
type PgConnection interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

const (
	pgSchema = `CREATE TABLE IF NOT EXISTS lyfocus_kv (key TEXT PRIMARY KEY, value TEXT NOT NULL);`
	pgRead   = `SELECT value FROM lyfocus_kv WHERE key = $1;`
	pgWrite  = `INSERT INTO lyfocus_kv (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value;`
	pgErase  = `DELETE FROM lyfocus_kv WHERE key = $1;`
	pgKeys   = `SELECT key FROM lyfocus_kv WHERE starts_with(key, $1) ORDER BY key;`
)

// PostgresStore keeps every record as a row of the lyfocus_kv table.
type PostgresStore struct {
	conn PgConnection
}

var _ Persistence = (*PostgresStore)(nil)

// NewPostgres connects to dsn and creates the table when missing.
func NewPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	if dsn == "" {
		return nil, errors.New("store: postgres dsn required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store: ping postgres: %w", err)
	}
	s, err := NewPostgresWithConn(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// NewPostgresWithConn uses an existing connection and creates the table when
// missing.
func NewPostgresWithConn(ctx context.Context, conn PgConnection) (*PostgresStore, error) {
	if _, err := conn.Exec(ctx, pgSchema); err != nil {
		return nil, fmt.Errorf("store: create kv table: %w", err)
	}
	return &PostgresStore{conn: conn}, nil
}

func (s *PostgresStore) Read(ctx context.Context, key string) (string, error) {
	var v string
	if err := s.conn.QueryRow(ctx, pgRead, key).Scan(&v); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("store: read %s: %w", key, err)
	}
	return v, nil
}

func (s *PostgresStore) Write(ctx context.Context, key, value string) error {
	if _, err := s.conn.Exec(ctx, pgWrite, key, value); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Erase(ctx context.Context, key string) error {
	if _, err := s.conn.Exec(ctx, pgErase, key); err != nil {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.conn.Query(ctx, pgKeys, prefix)
	if err != nil {
		return nil, fmt.Errorf("store: list %s*: %w", prefix, err)
	}
	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("store: list %s*: %w", prefix, err)
	}
	return keys, nil
}

func (s *PostgresStore) Close() error {
	s.conn.Close()
	return nil
}
