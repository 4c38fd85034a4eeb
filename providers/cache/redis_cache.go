package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"skycast.app/models"
)

// RedisCache is the shared SnapshotCache implementation. Expiry is delegated
// to Redis key TTLs, so SweepExpired is a no-op; the size bound is delegated
// to the server's maxmemory eviction policy.
type RedisCache struct {
	client *redis.Client
	ctx    context.Context
	ttl    time.Duration
}

type RedisCacheConfig struct {
	Addr         string
	Password     string
	DB           int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	TTL          time.Duration
}

// NewRedisCache connects to Redis and returns a snapshot cache backed by it
func NewRedisCache(config *RedisCacheConfig) (*RedisCache, error) {
	ctx := context.Background()

	client := redis.NewClient(&redis.Options{
		Addr:         config.Addr,
		Password:     config.Password,
		DB:           config.DB,
		DialTimeout:  config.DialTimeout,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	ttl := config.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	slog.Info("Redis cache connected successfully", "addr", config.Addr)

	return &RedisCache{
		client: client,
		ctx:    ctx,
		ttl:    ttl,
	}, nil
}

func (r *RedisCache) Get(key string) (Entry, bool) {
	val, err := r.client.Get(r.ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			slog.Error("Redis get error", "error", err, "key", key)
		}
		return Entry{}, false
	}

	var entry Entry
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		slog.Error("Redis unmarshal error", "error", err, "key", key)
		return Entry{}, false
	}

	return entry, true
}

func (r *RedisCache) Put(key string, snapshot models.WeatherSnapshot) {
	now := time.Now()
	entry := Entry{
		Key:            key,
		Snapshot:       snapshot,
		CreatedAt:      now,
		LastAccessedAt: now,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		slog.Error("Redis marshal error", "error", err, "key", key)
		return
	}

	if err := r.client.Set(r.ctx, key, data, r.ttl).Err(); err != nil {
		slog.Error("Redis set error", "error", err, "key", key)
	}
}

// Touch rewrites the entry with a fresh LastAccessedAt while keeping the
// remaining key TTL intact.
func (r *RedisCache) Touch(key string) {
	entry, found := r.Get(key)
	if !found {
		return
	}

	entry.LastAccessedAt = time.Now()
	data, err := json.Marshal(entry)
	if err != nil {
		slog.Error("Redis marshal error", "error", err, "key", key)
		return
	}

	if err := r.client.Set(r.ctx, key, data, redis.KeepTTL).Err(); err != nil {
		slog.Error("Redis touch error", "error", err, "key", key)
	}
}

// SweepExpired is a no-op: Redis expires keys natively.
func (r *RedisCache) SweepExpired() int {
	return 0
}

func (r *RedisCache) Clear() {
	if err := r.client.FlushDB(r.ctx).Err(); err != nil {
		slog.Error("Redis clear error", "error", err)
	}
}

func (r *RedisCache) Len() int {
	size, err := r.client.DBSize(r.ctx).Result()
	if err != nil {
		slog.Error("Redis dbsize error", "error", err)
		return 0
	}
	return int(size)
}
