package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ashwinyue/osint-framework/internal/model"
)

// favoritesFile data/favorites.json 的结构
type favoritesFile struct {
	Favorites   []*model.Favorite `json:"favorites"`
	LastUpdated time.Time         `json:"lastUpdated"`
}

// FileFavoriteRepository JSON 文件收藏存储
type FileFavoriteRepository struct {
	path string
}

// NewFileFavoriteRepository 创建文件存储，文件在首次写入时创建
func NewFileFavoriteRepository(path string) *FileFavoriteRepository {
	return &FileFavoriteRepository{path: path}
}

// Path 文件路径
func (r *FileFavoriteRepository) Path() string {
	return r.path
}

// Load 读取全部收藏，文件不存在时返回空列表
func (r *FileFavoriteRepository) Load(ctx context.Context) ([]*model.Favorite, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []*model.Favorite{}, nil
		}
		return nil, fmt.Errorf("failed to read favorites: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []*model.Favorite{}, nil
	}

	// 兼容直接保存数组的旧格式
	if data[0] == '[' {
		var list []*model.Favorite
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("failed to parse favorites: %w", err)
		}
		return compact(list), nil
	}

	var f favoritesFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse favorites: %w", err)
	}
	return compact(f.Favorites), nil
}

// Save 写入临时文件后 rename，避免写到一半的文件
func (r *FileFavoriteRepository) Save(ctx context.Context, favorites []*model.Favorite) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if favorites == nil {
		favorites = []*model.Favorite{}
	}
	data, err := json.MarshalIndent(favoritesFile{
		Favorites:   favorites,
		LastUpdated: time.Now().UTC(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal favorites: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create favorites dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".favorites-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write favorites: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close favorites: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace favorites: %w", err)
	}
	return nil
}

// Close 文件存储无需释放资源
func (r *FileFavoriteRepository) Close() error {
	return nil
}

func compact(list []*model.Favorite) []*model.Favorite {
	out := make([]*model.Favorite, 0, len(list))
	for _, f := range list {
		if f != nil && f.ID != "" {
			out = append(out, f)
		}
	}
	return out
}
