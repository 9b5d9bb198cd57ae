package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ashwinyue/osint-framework/internal/model"
)

var favoritesBucket = []byte("favorites")

// BoltFavoriteRepository bbolt 收藏存储，每条收藏一个 key
type BoltFavoriteRepository struct {
	db *bolt.DB
}

// OpenBoltFavoriteRepository 打开或创建 bbolt 数据库
func OpenBoltFavoriteRepository(path string) (*BoltFavoriteRepository, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, fmt.Errorf("bolt path is required")
	}
	if err := os.MkdirAll(filepath.Dir(trimmed), 0o755); err != nil {
		return nil, fmt.Errorf("ensure favorites dir: %w", err)
	}
	db, err := bolt.Open(trimmed, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open favorites db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(favoritesBucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init favorites bucket: %w", err)
	}
	return &BoltFavoriteRepository{db: db}, nil
}

// Load 读取全部收藏，按添加时间排序
func (r *BoltFavoriteRepository) Load(ctx context.Context) ([]*model.Favorite, error) {
	var list []*model.Favorite
	err := r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(favoritesBucket)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var f model.Favorite
			if err := json.Unmarshal(v, &f); err != nil {
				return fmt.Errorf("decode favorite %s: %w", k, err)
			}
			list = append(list, &f)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].AddedAt.Equal(list[j].AddedAt) {
			return list[i].AddedAt.Before(list[j].AddedAt)
		}
		return list[i].ID < list[j].ID
	})
	if list == nil {
		list = []*model.Favorite{}
	}
	return list, nil
}

// Save 在一个事务内替换整个 bucket
func (r *BoltFavoriteRepository) Save(ctx context.Context, favorites []*model.Favorite) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(favoritesBucket) != nil {
			if err := tx.DeleteBucket(favoritesBucket); err != nil {
				return fmt.Errorf("reset favorites bucket: %w", err)
			}
		}
		b, err := tx.CreateBucket(favoritesBucket)
		if err != nil {
			return fmt.Errorf("create favorites bucket: %w", err)
		}
		for _, f := range favorites {
			data, err := json.Marshal(f)
			if err != nil {
				return fmt.Errorf("encode favorite %s: %w", f.ID, err)
			}
			if err := b.Put([]byte(f.ID), data); err != nil {
				return fmt.Errorf("write favorite %s: %w", f.ID, err)
			}
		}
		return nil
	})
}

// Close 关闭数据库
func (r *BoltFavoriteRepository) Close() error {
	return r.db.Close()
}
