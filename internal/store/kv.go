package store

import (
	"context"
	"sync"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"go.uber.org/zap"
)

const kvTable = "kv"

// KV is a string key-value store. Implementations never fail the caller:
// read errors are reported as absence and write errors are logged and dropped.
type KV interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
	Remove(ctx context.Context, key string)
}

// SQLiteKV implements KV on the store's kv table.
type SQLiteKV struct {
	drv    *entsql.Driver
	logger *zap.Logger
}

var _ KV = (*SQLiteKV)(nil)

func (k *SQLiteKV) Get(ctx context.Context, key string) (string, bool) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("value").
		From(entsql.Table(kvTable)).
		Where(entsql.EQ("name", key)).
		Query()

	var rows entsql.Rows
	if err := k.drv.Query(ctx, query, args, &rows); err != nil {
		k.logger.Warn("kv get failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	defer rows.Close()

	if !rows.Next() {
		return "", false
	}
	var value string
	if err := rows.Scan(&value); err != nil {
		k.logger.Warn("kv scan failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return value, true
}

func (k *SQLiteKV) Set(ctx context.Context, key, value string) {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(kvTable).
		Columns("name", "value", "updated_at").
		Values(key, value, nowMillis()).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := k.drv.Exec(ctx, query, args, nil); err != nil {
		k.logger.Error("kv set failed", zap.String("key", key), zap.Error(err))
	}
}

func (k *SQLiteKV) Remove(ctx context.Context, key string) {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(kvTable).
		Where(entsql.EQ("name", key)).
		Query()

	if err := k.drv.Exec(ctx, query, args, nil); err != nil {
		k.logger.Error("kv remove failed", zap.String("key", key), zap.Error(err))
	}
}

// MemoryKV is an in-process KV, used by tests and when no database is
// configured.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

var _ KV = (*MemoryKV)(nil)

// NewMemoryKV creates an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *MemoryKV) Set(_ context.Context, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

func (m *MemoryKV) Remove(_ context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}
