// Package cache provides the read-through cache used for recipe detail reads.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Get when the key is not cached.
var ErrMiss = errors.New("cache miss")

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// RecipeKey is the cache key of a recipe detail view.
func RecipeKey(id string) string {
	return "recipe:" + id
}

type Redis struct {
	rdb *goredis.Client
	ttl time.Duration
}

var _ Cache = (*Redis)(nil)

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedis connects to redis and verifies the connection with a ping.
func NewRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Redis{rdb: rdb, ttl: opts.TTL}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrMiss
	} else if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return val, nil
}

func (r *Redis) Set(ctx context.Context, key string, val []byte) error {
	if err := r.rdb.Set(ctx, key, val, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}

// Memory is an in-process cache without expiry.
type Memory struct {
	entries sync.Map
}

var _ Cache = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	val, ok := m.entries.Load(key)
	if !ok {
		return nil, ErrMiss
	}
	b := val.([]byte)
	return append([]byte(nil), b...), nil
}

func (m *Memory) Set(_ context.Context, key string, val []byte) error {
	m.entries.Store(key, append([]byte(nil), val...))
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		m.entries.Delete(key)
	}
	return nil
}

func (m *Memory) Close() error { return nil }

// Null never stores anything. Every Get is a miss.
type Null struct{}

var _ Cache = Null{}

func (Null) Get(context.Context, string) ([]byte, error) { return nil, ErrMiss }
func (Null) Set(context.Context, string, []byte) error   { return nil }
func (Null) Delete(context.Context, ...string) error     { return nil }
func (Null) Close() error                                { return nil }
