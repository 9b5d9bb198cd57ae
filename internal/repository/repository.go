package repository

import (
	"fmt"

	"github.com/ashwinyue/osint-framework/internal/config"
)

// 收藏存储后端
const (
	BackendFile     = "file"
	BackendBolt     = "bolt"
	BackendPostgres = "postgres"
)

// NewFavoriteRepository 根据配置创建收藏存储
func NewFavoriteRepository(cfg *config.Config) (FavoriteRepository, error) {
	switch cfg.Favorites.Backend {
	case BackendFile, "":
		return NewFileFavoriteRepository(cfg.Favorites.Path), nil
	case BackendBolt:
		return OpenBoltFavoriteRepository(cfg.Favorites.BoltPath)
	case BackendPostgres:
		db, err := NewDB(cfg)
		if err != nil {
			return nil, err
		}
		return NewGormFavoriteRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported favorites backend: %s", cfg.Favorites.Backend)
	}
}
