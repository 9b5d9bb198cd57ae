package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/ashwinyue/osint-framework/internal/model"
)

// GormFavoriteRepository postgres 收藏存储
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewGormFavoriteRepository 创建收藏仓库
func NewGormFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

// Load 读取全部收藏
func (r *GormFavoriteRepository) Load(ctx context.Context) ([]*model.Favorite, error) {
	var list []*model.Favorite
	err := r.db.WithContext(ctx).Order("added_at ASC, id ASC").Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	return list, nil
}

// Save 在事务内整表替换
func (r *GormFavoriteRepository) Save(ctx context.Context, favorites []*model.Favorite) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Favorite{}).Error; err != nil {
			return fmt.Errorf("failed to clear favorites: %w", err)
		}
		if len(favorites) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(favorites, 100).Error; err != nil {
			return fmt.Errorf("failed to save favorites: %w", err)
		}
		return nil
	})
}

// Close 关闭连接池
func (r *GormFavoriteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
