package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/example/freshmart/pkg/config"
	"github.com/go-redis/redis/v8"
)

// ErrCacheMiss is returned by cache lookups when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

const categoriesKey = "catalog:categories"

func productKey(id uint) string {
	return fmt.Sprintf("catalog:product:%d", id)
}

type RedisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRepository(cfg *config.RedisConfig) *RedisRepository {
	return NewRedisRepositoryFromClient(redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}), cfg.TTL)
}

func NewRedisRepositoryFromClient(client *redis.Client, ttl time.Duration) *RedisRepository {
	return &RedisRepository{client: client, ttl: ttl}
}

func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}

func (r *RedisRepository) setJSON(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, r.ttl).Err()
}

func (r *RedisRepository) getJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// GetCategories loads the cached category list into dest.
func (r *RedisRepository) GetCategories(ctx context.Context, dest interface{}) error {
	return r.getJSON(ctx, categoriesKey, dest)
}

func (r *RedisRepository) SetCategories(ctx context.Context, value interface{}) error {
	return r.setJSON(ctx, categoriesKey, value)
}

// GetProduct loads the cached product detail for id into dest.
func (r *RedisRepository) GetProduct(ctx context.Context, id uint, dest interface{}) error {
	return r.getJSON(ctx, productKey(id), dest)
}

func (r *RedisRepository) SetProduct(ctx context.Context, id uint, value interface{}) error {
	return r.setJSON(ctx, productKey(id), value)
}

func (r *RedisRepository) InvalidateProduct(ctx context.Context, id uint) error {
	return r.client.Del(ctx, productKey(id)).Err()
}

func (r *RedisRepository) InvalidateCategories(ctx context.Context) error {
	return r.client.Del(ctx, categoriesKey).Err()
}

// InvalidateAll drops every catalog key. Product views embed the category
// name, so a category rename or delete has to flush them too.
func (r *RedisRepository) InvalidateAll(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, "catalog:*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}
