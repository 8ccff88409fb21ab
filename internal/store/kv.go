package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type kvRepo struct {
	s *Store
}

func (r *kvRepo) Get(ctx context.Context, key string) (string, error) {
	query, args := builder().Select("value", "expires_at").
		From(entsql.Table(KvTable.Name)).
		Where(entsql.EQ("key", key)).
		Query()

	var (
		value   string
		expires sql.NullString
	)
	err := r.s.db.QueryRowContext(ctx, query, args...).Scan(&value, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %q: %w", key, err)
	}

	if expires.Valid && expires.String != "" {
		if at := parseTime(expires.String); !at.IsZero() && !r.s.now().Before(at) {
			return "", ErrNotFound
		}
	}
	return value, nil
}

func (r *kvRepo) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	var expires any
	if ttl > 0 {
		expires = formatTime(r.s.now().Add(ttl))
	}

	query, args := builder().Insert(KvTable.Name).
		Columns("key", "value", "expires_at").
		Values(key, value, expires).
		OnConflict(entsql.ConflictColumns("key"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (r *kvRepo) Delete(ctx context.Context, key string) error {
	query, args := builder().Delete(KvTable.Name).Where(entsql.EQ("key", key)).Query()
	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}
