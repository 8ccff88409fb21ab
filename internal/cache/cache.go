// Package cache stores short-lived text such as the dashboard news digest.
// A Redis (or Dragonfly) server is used when ACADEMY_CACHE_URL is set;
// otherwise entries live in the local SQLite key/value table.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/abhisek/academy/internal/store"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Cache is a string cache with per-entry expiry.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Close() error
}

// Key builds a namespaced key from arbitrary text, hashing it so long
// inputs make short keys.
func Key(namespace, text string) string {
	sum := sha256.Sum256([]byte(text))
	return namespace + ":" + hex.EncodeToString(sum[:8])
}

// ParseURL validates a Redis connection URL.
func ParseURL(url string) (*redis.Options, error) {
	if url == "" {
		return nil, fmt.Errorf("cache URL is empty")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid cache URL: %w", err)
	}
	return opts, nil
}

// Redis is a Cache backed by a Redis-protocol server.
type Redis struct {
	Client *redis.Client
	prefix string
}

// NewRedis connects and pings the server.
func NewRedis(ctx context.Context, url string) (*Redis, error) {
	opts, err := ParseURL(url)
	if err != nil {
		return nil, err
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging cache: %w", err)
	}
	return &Redis{Client: client, prefix: "academy:"}, nil
}

func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	v, err := r.Client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	return v, err
}

func (r *Redis) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.Client.Set(ctx, r.prefix+key, value, ttl).Err()
}

func (r *Redis) Close() error {
	return r.Client.Close()
}

// Local is a Cache over the store's key/value table.
type Local struct {
	kv store.KVRepo
}

// NewLocal wraps a key/value repository.
func NewLocal(kv store.KVRepo) *Local {
	return &Local{kv: kv}
}

func (l *Local) Get(ctx context.Context, key string) (string, error) {
	v, err := l.kv.Get(ctx, "cache:"+key)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrMiss
	}
	return v, err
}

func (l *Local) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return l.kv.Set(ctx, "cache:"+key, value, ttl)
}

// Close is a no-op; the store owns the database.
func (l *Local) Close() error { return nil }

// Open picks Redis when url is set and reachable, falling back to the
// local table. The returned error reports why Redis was skipped, if it was.
func Open(ctx context.Context, url string, kv store.KVRepo) (Cache, error) {
	if url == "" {
		return NewLocal(kv), nil
	}
	r, err := NewRedis(ctx, url)
	if err != nil {
		return NewLocal(kv), err
	}
	return r, nil
}
