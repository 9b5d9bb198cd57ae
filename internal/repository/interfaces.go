// Package repository 定义数据访问接口
// 接口抽象使依赖注入和单元测试成为可能
package repository

import (
	"context"

	"github.com/ashwinyue/osint-framework/internal/model"
)

// FavoriteRepository 收藏持久化接口
// Save 以整表替换的方式写入，调用方负责串行化
type FavoriteRepository interface {
	Load(ctx context.Context) ([]*model.Favorite, error)
	Save(ctx context.Context, favorites []*model.Favorite) error
	Close() error
}

// 确保各后端实现了接口
var (
	_ FavoriteRepository = (*FileFavoriteRepository)(nil)
	_ FavoriteRepository = (*BoltFavoriteRepository)(nil)
	_ FavoriteRepository = (*GormFavoriteRepository)(nil)
)
