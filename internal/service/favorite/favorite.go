// Package favorite 收藏服务：内存列表 + 每次修改后整体持久化
package favorite

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ashwinyue/osint-framework/internal/logger"
	"github.com/ashwinyue/osint-framework/internal/model"
	"github.com/ashwinyue/osint-framework/internal/repository"
	"github.com/ashwinyue/osint-framework/internal/service/catalog"
)

// CatalogSource 提供当前目录快照
type CatalogSource interface {
	Snapshot() *catalog.Catalog
}

// Observer 接收收藏修改结果，用于指标统计
type Observer interface {
	ObserveFavoriteOp(op string, err error)
}

// Option 服务选项
type Option func(*Service)

// WithClock 替换时间源
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithObserver 设置修改观察者
func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

// Service 收藏服务
// 所有修改在同一把锁内完成 读-改-写盘，避免并发请求互相覆盖
type Service struct {
	mu        sync.Mutex
	favorites []*model.Favorite

	repo     repository.FavoriteRepository
	catalog  CatalogSource
	logger   *zap.Logger
	observer Observer
	now      func() time.Time
}

// NewService 创建收藏服务并从存储加载已有收藏，加载失败时从空列表开始
func NewService(ctx context.Context, repo repository.FavoriteRepository, src CatalogSource, l *zap.Logger, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		catalog: src,
		logger:  logger.OrNop(l).Named("favorites"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	list, err := repo.Load(ctx)
	if err != nil {
		s.logger.Warn("failed to load favorites, starting empty", zap.Error(err))
		list = nil
	}
	s.favorites = make([]*model.Favorite, 0, len(list))
	seen := make(map[string]bool, len(list))
	for _, f := range list {
		if seen[f.ID] {
			continue
		}
		seen[f.ID] = true
		s.favorites = append(s.favorites, f)
	}
	s.logger.Info("favorites loaded", zap.Int("count", len(s.favorites)))
	return s
}

// Add 收藏工具，已存在时合并元数据
func (s *Service) Add(ctx context.Context, category, toolID string, meta model.FavoriteMetadata) (fav *model.Favorite, err error) {
	defer func() { s.observe("add", err) }()

	if err := validateKey(category, toolID); err != nil {
		return nil, err
	}
	if err := validateMetadata(meta); err != nil {
		return nil, err
	}
	tool, err := s.catalog.Snapshot().Get(category, "", toolID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := model.FavoriteID(category, toolID)
	if i := s.indexOf(id); i >= 0 {
		applyMetadata(s.favorites[i], meta)
		return s.favorites[i].Clone(), s.persist(ctx, "add")
	}

	f := &model.Favorite{
		ID:          id,
		Category:    category,
		Subcategory: tool.Subcategory,
		ToolID:      toolID,
		Name:        tool.Name,
		URL:         tool.URL,
		Description: tool.Description,
		Icon:        tool.Icon,
		Type:        tool.Type,
		Tags:        append([]string(nil), tool.Tags...),
		AddedAt:     s.now(),
	}
	applyMetadata(f, meta)
	s.favorites = append(s.favorites, f)
	return f.Clone(), s.persist(ctx, "add")
}

// Update 修改已收藏工具的元数据
func (s *Service) Update(ctx context.Context, category, toolID string, meta model.FavoriteMetadata) (fav *model.Favorite, err error) {
	defer func() { s.observe("update", err) }()

	if err := validateKey(category, toolID); err != nil {
		return nil, err
	}
	if err := validateMetadata(meta); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(model.FavoriteID(category, toolID))
	if i < 0 {
		return nil, notFound(category, toolID)
	}
	applyMetadata(s.favorites[i], meta)
	return s.favorites[i].Clone(), s.persist(ctx, "update")
}

// Remove 取消收藏，返回被删除的记录
func (s *Service) Remove(ctx context.Context, category, toolID string) (fav *model.Favorite, err error) {
	defer func() { s.observe("remove", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(model.FavoriteID(category, toolID))
	if i < 0 {
		return nil, notFound(category, toolID)
	}
	removed := s.favorites[i]
	s.favorites = append(s.favorites[:i:i], s.favorites[i+1:]...)
	return removed.Clone(), s.persist(ctx, "remove")
}

// List 按添加顺序返回全部收藏
func (s *Service) List() []*model.Favorite {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cloneAll()
}

// Get 获取收藏记录
func (s *Service) Get(category, toolID string) (*model.Favorite, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(model.FavoriteID(category, toolID)); i >= 0 {
		return s.favorites[i].Clone(), true
	}
	return nil, false
}

// IsFavorited 是否已收藏
func (s *Service) IsFavorited(category, toolID string) bool {
	_, ok := s.Get(category, toolID)
	return ok
}

// Count 收藏数量
func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.favorites)
}

// IncrementUsage 记录一次使用，未收藏时忽略
func (s *Service) IncrementUsage(ctx context.Context, category, toolID string) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(model.FavoriteID(category, toolID))
	if i < 0 {
		return nil
	}
	defer func() { s.observe("usage", err) }()

	now := s.now()
	s.favorites[i].UsageCount++
	s.favorites[i].LastUsed = &now
	return s.persist(ctx, "usage")
}

// Clear 清空收藏，返回清除数量
func (s *Service) Clear(ctx context.Context) (n int, err error) {
	defer func() { s.observe("clear", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	n = len(s.favorites)
	s.favorites = []*model.Favorite{}
	return n, s.persist(ctx, "clear")
}

// Export 导出全部收藏及统计
func (s *Service) Export() *model.FavoritesExport {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.cloneAll()
	return &model.FavoritesExport{
		Favorites:  list,
		Analytics:  computeAnalytics(list),
		ExportedAt: s.now(),
	}
}

// Import 按 ID 合并导入，已存在的 ID 跳过
func (s *Service) Import(ctx context.Context, payload *model.FavoritesExport) (res *model.ImportResult, err error) {
	defer func() { s.observe("import", err) }()

	if payload == nil {
		return nil, fmt.Errorf("%w: import payload is required", model.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res = &model.ImportResult{Total: len(payload.Favorites)}
	for _, in := range payload.Favorites {
		if in == nil {
			continue
		}
		f := in.Clone()
		if f.ID == "" && f.Category != "" && f.ToolID != "" {
			f.ID = model.FavoriteID(f.Category, f.ToolID)
		}
		if f.ID == "" || s.indexOf(f.ID) >= 0 {
			continue
		}
		if f.AddedAt.IsZero() {
			f.AddedAt = s.now()
		}
		f.Rating = clampRating(f.Rating)
		if f.UsageCount < 0 {
			f.UsageCount = 0
		}
		s.favorites = append(s.favorites, f)
		res.Imported++
	}
	if res.Imported == 0 {
		return res, nil
	}
	return res, s.persist(ctx, "import")
}

// Analytics 收藏统计
func (s *Service) Analytics() *model.FavoriteAnalytics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return computeAnalytics(s.favorites)
}

// Index 返回 ID -> 收藏 的副本，供筛选排序使用
func (s *Service) Index() map[string]*model.Favorite {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]*model.Favorite, len(s.favorites))
	for _, f := range s.favorites {
		out[f.ID] = f.Clone()
	}
	return out
}

// persist 调用方需持有锁
// 内存已修改，客户端断开不应中断写盘；写盘失败时内存状态保留修改，下次成功写入会覆盖磁盘内容
func (s *Service) persist(ctx context.Context, op string) error {
	if err := s.repo.Save(context.WithoutCancel(ctx), s.favorites); err != nil {
		s.logger.Error("failed to persist favorites",
			zap.String("op", op), zap.Int("count", len(s.favorites)), zap.Error(err))
		return fmt.Errorf("%w: %v", model.ErrPersistence, err)
	}
	return nil
}

func (s *Service) observe(op string, err error) {
	if s.observer != nil {
		s.observer.ObserveFavoriteOp(op, err)
	}
}

func (s *Service) indexOf(id string) int {
	for i, f := range s.favorites {
		if f.ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) cloneAll() []*model.Favorite {
	out := make([]*model.Favorite, len(s.favorites))
	for i, f := range s.favorites {
		out[i] = f.Clone()
	}
	return out
}

func validateKey(category, toolID string) error {
	var missing []string
	if strings.TrimSpace(category) == "" {
		missing = append(missing, "category")
	}
	if strings.TrimSpace(toolID) == "" {
		missing = append(missing, "toolId")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s required", model.ErrValidation, strings.Join(missing, " and "))
	}
	return nil
}

func validateMetadata(meta model.FavoriteMetadata) error {
	if meta.Rating != nil && (*meta.Rating < 0 || *meta.Rating > model.MaxRating) {
		return fmt.Errorf("%w: rating must be between 0 and %d", model.ErrValidation, model.MaxRating)
	}
	return nil
}

func applyMetadata(f *model.Favorite, meta model.FavoriteMetadata) {
	if meta.Notes != nil {
		f.Notes = *meta.Notes
	}
	if meta.Rating != nil {
		f.Rating = *meta.Rating
	}
}

func clampRating(r int) int {
	if r < 0 {
		return 0
	}
	if r > model.MaxRating {
		return model.MaxRating
	}
	return r
}

func notFound(category, toolID string) error {
	return fmt.Errorf("%w: favorite %s", model.ErrNotFound, model.FavoriteID(category, toolID))
}
