package store

import (
	"context"
	"errors"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PostgresKV implements KV on a Postgres table through a pgx pool.
type PostgresKV struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

var _ KV = (*PostgresKV)(nil)

// OpenPostgresKV connects to dsn and creates the kv table when missing.
func OpenPostgresKV(ctx context.Context, dsn string, logger *zap.Logger) (*PostgresKV, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	_, err = pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS `+kvTable+` (
		name TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at BIGINT NOT NULL
	)`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}

	return &PostgresKV{pool: pool, logger: logger}, nil
}

// Close releases the connection pool.
func (p *PostgresKV) Close() {
	p.pool.Close()
}

func (p *PostgresKV) Get(ctx context.Context, key string) (string, bool) {
	query, args := entsql.Dialect(dialect.Postgres).
		Select("value").
		From(entsql.Table(kvTable)).
		Where(entsql.EQ("name", key)).
		Query()

	var value string
	err := p.pool.QueryRow(ctx, query, args...).Scan(&value)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			p.logger.Warn("kv get failed", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return value, true
}

func (p *PostgresKV) Set(ctx context.Context, key, value string) {
	query, args := entsql.Dialect(dialect.Postgres).
		Insert(kvTable).
		Columns("name", "value", "updated_at").
		Values(key, value, nowMillis()).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := p.pool.Exec(ctx, query, args...); err != nil {
		p.logger.Error("kv set failed", zap.String("key", key), zap.Error(err))
	}
}

func (p *PostgresKV) Remove(ctx context.Context, key string) {
	query, args := entsql.Dialect(dialect.Postgres).
		Delete(kvTable).
		Where(entsql.EQ("name", key)).
		Query()

	if _, err := p.pool.Exec(ctx, query, args...); err != nil {
		p.logger.Error("kv remove failed", zap.String("key", key), zap.Error(err))
	}
}
