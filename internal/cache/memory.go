package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryStore 进程内 LRU 缓存，条目按 TTL 过期
type MemoryStore struct {
	lru *expirable.LRU[string, *Entry]
}

// NewMemoryStore 创建内存缓存
func NewMemoryStore(size int, ttl time.Duration) *MemoryStore {
	if size <= 0 {
		size = defaultSize
	}
	return &MemoryStore{lru: expirable.NewLRU[string, *Entry](size, nil, ttl)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (*Entry, bool, error) {
	e, ok := s.lru.Get(key)
	return e, ok, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, e *Entry) error {
	s.lru.Add(key, e)
	return nil
}

func (s *MemoryStore) Purge(ctx context.Context) error {
	s.lru.Purge()
	return nil
}

// Len 当前条目数
func (s *MemoryStore) Len() int {
	return s.lru.Len()
}

func (s *MemoryStore) Close() error { return nil }
