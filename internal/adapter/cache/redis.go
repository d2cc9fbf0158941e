package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/simaogato/wealthflow-planner/internal/domain"
)

// KeyPrefix namespaces plan entries in a shared Redis
const KeyPrefix = "wealthflow:plan:"

// RedisCache implements domain.PlanCache on Redis, storing plans as JSON
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects lazily to the Redis server at addr.
// Entries expire after ttl; zero keeps them until evicted.
func NewRedisCache(addr string, ttl time.Duration) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return NewRedisCacheWithClient(rdb, ttl)
}

// NewRedisCacheWithClient wraps an existing client
func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Get returns the cached plan, or nil on a miss
func (r *RedisCache) Get(ctx context.Context, key string) (*domain.MonthlyPlan, error) {
	data, err := r.client.Get(ctx, KeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return decodePlan(data)
}

// Set stores plan under key
func (r *RedisCache) Set(ctx context.Context, key string, plan *domain.MonthlyPlan) error {
	data, err := encodePlan(plan)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, KeyPrefix+key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Ping checks the connection
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the connection pool
func (r *RedisCache) Close() error {
	return r.client.Close()
}

func encodePlan(plan *domain.MonthlyPlan) ([]byte, error) {
	if plan == nil {
		return nil, errors.New("plan cannot be nil")
	}
	data, err := json.Marshal(plan)
	if err != nil {
		return nil, fmt.Errorf("encode plan: %w", err)
	}
	return data, nil
}

func decodePlan(data []byte) (*domain.MonthlyPlan, error) {
	var plan domain.MonthlyPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	return &plan, nil
}
