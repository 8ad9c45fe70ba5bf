package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// sqliteKV implements KV on the kv table. Expired rows are removed lazily
// when read.
type sqliteKV struct {
	db  *sql.DB
	now func() time.Time
}

func (k *sqliteKV) clock() time.Time {
	if k.now != nil {
		return k.now()
	}
	return time.Now()
}

func (k *sqliteKV) Get(ctx context.Context, key string) (string, bool, error) {
	query, args := builder().Select("value", "expires_at").
		From(entsql.Table(tableKV)).
		Where(entsql.EQ("key", key)).
		Query()

	var (
		value     string
		expiresAt sql.NullInt64
	)
	err := k.db.QueryRowContext(ctx, query, args...).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}

	if expiresAt.Valid && expiresAt.Int64 <= k.clock().UnixMilli() {
		del, dargs := builder().Delete(tableKV).Where(entsql.EQ("key", key)).Query()
		if _, err := k.db.ExecContext(ctx, del, dargs...); err != nil {
			return "", false, fmt.Errorf("expire %q: %w", key, err)
		}
		return "", false, nil
	}
	return value, true, nil
}

func (k *sqliteKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	var expiresAt any
	if ttl > 0 {
		expiresAt = k.clock().Add(ttl).UnixMilli()
	}

	query, args := builder().Insert(tableKV).
		Columns("key", "value", "expires_at").
		Values(key, value, expiresAt).
		OnConflict(entsql.ConflictColumns("key"), entsql.ResolveWithNewValues()).
		Query()

	if _, err := k.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}
