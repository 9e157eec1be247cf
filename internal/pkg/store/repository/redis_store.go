package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"collections-service/internal/pkg/consts"
)

type RedisStoreAdapter struct {
	client *redis.Client
}

func NewRedisStoreAdapter(client *redis.Client) *RedisStoreAdapter {
	return &RedisStoreAdapter{client: client}
}

func (a *RedisStoreAdapter) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return a.client.Set(ctx, key, value, expiration).Err()
}

func (a *RedisStoreAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	return a.client.Get(ctx, key).Bytes()
}

func (a *RedisStoreAdapter) Delete(ctx context.Context, key string) error {
	return a.client.Del(ctx, key).Err()
}

// CacheLeadTotal stores a projection total under the active/closed key.
func (a *RedisStoreAdapter) CacheLeadTotal(ctx context.Context, key string, total int64, ttl time.Duration) error {
	return a.Set(ctx, key, strconv.FormatInt(total, 10), ttl)
}

// CachedLeadTotal reads a projection total back; redis.Nil on a cold key.
func (a *RedisStoreAdapter) CachedLeadTotal(ctx context.Context, key string) (int64, error) {
	raw, err := a.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(string(raw), 10, 64)
}

// InvalidateLeadTotals drops both cached totals after a write.
func (a *RedisStoreAdapter) InvalidateLeadTotals(ctx context.Context) error {
	if err := a.Delete(ctx, consts.ActiveLeadsTotalCacheKey); err != nil {
		return err
	}
	return a.Delete(ctx, consts.ClosedLeadsTotalCacheKey)
}
