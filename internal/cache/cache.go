// Package cache 响应缓存，支持内存 LRU 与 Redis 两种后端
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ashwinyue/osint-framework/internal/config"
)

// 缓存后端
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

const defaultSize = 512

// Entry 一条缓存的 HTTP 响应
type Entry struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

// Store 缓存存储
type Store interface {
	Get(ctx context.Context, key string) (*Entry, bool, error)
	Set(ctx context.Context, key string, e *Entry) error
	// Purge 清空全部缓存（目录重载后调用）
	Purge(ctx context.Context) error
	Close() error
}

// New 根据配置创建缓存存储
func New(cfg *config.Config) (Store, error) {
	ttl := cfg.Cache.TTL()
	if ttl <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive, got %s", ttl)
	}
	switch cfg.Cache.Backend {
	case BackendMemory, "":
		return NewMemoryStore(cfg.Cache.Size, ttl), nil
	case BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to connect redis: %w", err)
		}
		return NewRedisStore(client, ttl), nil
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", cfg.Cache.Backend)
	}
}
