package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ashwinyue/osint-framework/internal/cache"
	"github.com/ashwinyue/osint-framework/internal/config"
	"github.com/ashwinyue/osint-framework/internal/logger"
	"github.com/ashwinyue/osint-framework/internal/metrics"
	"github.com/ashwinyue/osint-framework/internal/repository"
	"github.com/ashwinyue/osint-framework/internal/service/catalog"
	"github.com/ashwinyue/osint-framework/internal/service/execute"
	"github.com/ashwinyue/osint-framework/internal/service/favorite"
	"github.com/ashwinyue/osint-framework/internal/service/search"
)

// Services 服务集合，由 main 创建后传给处理器，不使用全局状态
type Services struct {
	Config    *config.Config
	Logger    *zap.Logger
	Catalog   *catalog.Provider
	Favorites *favorite.Service
	Executor  *execute.Dispatcher

	// 未启用时为 nil
	Cache   cache.Store
	Metrics *metrics.Metrics

	repo repository.FavoriteRepository
}

// NewServices 创建所有服务
func NewServices(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Services, error) {
	l = logger.OrNop(l)
	s := &Services{Config: cfg, Logger: l}

	if cfg.Metrics.Enabled {
		s.Metrics = metrics.New()
	}

	s.Catalog = catalog.NewProvider(catalog.NewLoader(l), cfg.Catalog.Path, cfg.Catalog.ExtraDir, l)

	repo, err := repository.NewFavoriteRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open favorites repository: %w", err)
	}
	s.repo = repo

	var opts []favorite.Option
	if s.Metrics != nil {
		opts = append(opts, favorite.WithObserver(s.Metrics))
	}
	s.Favorites = favorite.NewService(ctx, repo, s.Catalog, l, opts...)
	s.Executor = execute.NewDispatcher(s.Catalog, s.Favorites, l)

	if cfg.Cache.Enabled {
		store, err := cache.New(cfg)
		if err != nil {
			_ = repo.Close()
			return nil, fmt.Errorf("failed to create response cache: %w", err)
		}
		s.Cache = store
	}

	if s.Metrics != nil {
		s.Metrics.SetCatalog(s.Catalog.Snapshot(), false)
	}
	s.Catalog.OnReload(s.onCatalogReload)

	return s, nil
}

// onCatalogReload 新快照生效后清空响应缓存并更新指标
func (s *Services) onCatalogReload(c *catalog.Catalog) {
	if s.Cache != nil {
		if err := s.Cache.Purge(context.Background()); err != nil {
			s.Logger.Warn("failed to purge response cache", zap.Error(err))
		}
	}
	if s.Metrics != nil {
		s.Metrics.SetCatalog(c, true)
	}
}

// WatchCatalog 按配置启动目录文件监听，ctx 结束时停止
func (s *Services) WatchCatalog(ctx context.Context) {
	if !s.Config.Catalog.Watch {
		return
	}
	go func() {
		if err := s.Catalog.Watch(ctx, s.Config.Catalog.ReloadDebounce()); err != nil {
			s.Logger.Error("catalog watcher stopped", zap.Error(err))
		}
	}()
}

// Search 在当前快照上执行组合查询
func (s *Services) Search(q search.Query) *search.Page {
	return search.Run(s.Catalog.Snapshot().All(), q, search.Favorites(s.Favorites.Index()))
}

// Health 健康状态
type Health struct {
	Status          string `json:"status"`
	CatalogDegraded bool   `json:"catalogDegraded"`
	CatalogSource   string `json:"catalogSource"`
	TotalTools      int    `json:"totalTools"`
	Favorites       int    `json:"favorites"`
}

// Health 返回当前健康状态，目录降级时 status 为 degraded
func (s *Services) Health() *Health {
	c := s.Catalog.Snapshot()
	h := &Health{
		Status:          "ok",
		CatalogDegraded: c.Degraded,
		CatalogSource:   c.Source,
		TotalTools:      c.Len(),
		Favorites:       s.Favorites.Count(),
	}
	if c.Degraded {
		h.Status = "degraded"
	}
	return h
}

// Close 释放存储连接
func (s *Services) Close() error {
	var errs []error
	if s.repo != nil {
		errs = append(errs, s.repo.Close())
	}
	if s.Cache != nil {
		errs = append(errs, s.Cache.Close())
	}
	return errors.Join(errs...)
}
