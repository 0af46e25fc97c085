package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/redis/go-redis/v9"

	"github.com/xxld0125/low-code-ai-sub004/pkg/component"
)

// redisKeyPrefix namespaces page documents in a shared Redis instance.
const redisKeyPrefix = "pagecore:page:"

// Redis is a Store backed by a Redis instance. Documents are stored as JSON
// under a namespaced key per page name.
type Redis struct {
	client *redis.Client
}

// RedisConfig configures a Redis store connection.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// NewRedis connects to Redis and verifies the connection with a ping.
func NewRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}
	return &Redis{client: client}, nil
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error { return r.client.Close() }

// Get implements Store.
func (r *Redis) Get(ctx context.Context, name string) (component.Document, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+name).Bytes()
	if errors.Is(err, redis.Nil) {
		return component.Document{}, ErrNotFound
	}
	if err != nil {
		return component.Document{}, fmt.Errorf("redis get %s: %w", name, err)
	}
	var doc component.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return component.Document{}, fmt.Errorf("decode page %s: %w", name, err)
	}
	return doc, nil
}

// Put implements Store.
func (r *Redis) Put(ctx context.Context, doc component.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode page %s: %w", doc.Name, err)
	}
	if err := r.client.Set(ctx, redisKeyPrefix+doc.Name, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", doc.Name, err)
	}
	return nil
}

// Delete implements Store.
func (r *Redis) Delete(ctx context.Context, name string) error {
	n, err := r.client.Del(ctx, redisKeyPrefix+name).Result()
	if err != nil {
		return fmt.Errorf("redis del %s: %w", name, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List implements Store. It scans the namespaced keys, so cost grows with
// the number of stored pages.
func (r *Redis) List(ctx context.Context) ([]string, error) {
	var names []string
	iter := r.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		names = append(names, iter.Val()[len(redisKeyPrefix):])
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	slices.Sort(names)
	return names, nil
}
