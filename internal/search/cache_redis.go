package search

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"playdex/searchservice/internal/domain"
)

const redisCachePrefix = "playdex:plays:"

// RedisPlayCache stores play batches in Redis with JSON serialization.
// A corrupt entry is treated as a miss and removed.
type RedisPlayCache struct {
	client *redis.Client
}

func NewRedisPlayCache(client *redis.Client) *RedisPlayCache {
	return &RedisPlayCache{client: client}
}

func (r *RedisPlayCache) Get(ctx context.Context, key string) ([]domain.Clip, bool, error) {
	data, err := r.client.Get(ctx, redisCachePrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	var clips []domain.Clip
	if err := json.Unmarshal(data, &clips); err != nil {
		_ = r.client.Del(ctx, redisCachePrefix+key).Err()
		return nil, false, nil
	}
	return clips, true, nil
}

func (r *RedisPlayCache) Set(ctx context.Context, key string, clips []domain.Clip, ttl time.Duration) error {
	data, err := json.Marshal(clips)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, redisCachePrefix+key, data, ttl).Err()
}

func (r *RedisPlayCache) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, redisCachePrefix+key).Err()
}

func (r *RedisPlayCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
