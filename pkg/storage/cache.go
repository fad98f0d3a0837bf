package storage

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(addr, password string, db int) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisCache{client: rdb}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return data, err
}

func (c *RedisCache) Set(ctx context.Context, key string, data []byte, expiration time.Duration) error {
	return c.client.Set(ctx, key, data, expiration).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// CachedSource keeps fetched files in a cache until the end of the day.
type CachedSource struct {
	Source Source
	Cache  Cache
	Prefix string
	Now    func() time.Time
}

func NewCachedSource(source Source, cache Cache) *CachedSource {
	return &CachedSource{
		Source: source,
		Cache:  cache,
		Prefix: "energy:",
		Now:    time.Now,
	}
}

func (s *CachedSource) Key(name string) string {
	return s.Prefix + DateStamp(s.Now()) + ":" + name
}

func (s *CachedSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	key := s.Key(name)
	data, err := s.Cache.Get(ctx, key)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		log.Printf("cache get %s failed: %v", key, err)
	}

	data, err = s.Source.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	if err = s.Cache.Set(ctx, key, data, UntilEndOfDay(s.Now())); err != nil {
		log.Printf("cache set %s failed: %v", key, err)
	}
	return data, nil
}
