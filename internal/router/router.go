package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/osint-framework/internal/handler"
	"github.com/ashwinyue/osint-framework/internal/middleware"
	"github.com/ashwinyue/osint-framework/internal/service"
)

// SetupRouter 设置路由
func SetupRouter(svc *service.Services, h *handler.Handlers) *gin.Engine {
	cfg := svc.Config
	log := svc.Logger.Named("http")

	r := gin.New()

	// 中间件
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RecoveryMiddleware(log))
	r.Use(middleware.LoggingMiddleware(log))
	if svc.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(svc.Metrics))
	}

	// 健康检查与指标不参与限流
	r.GET("/health", h.System.Health)
	if svc.Metrics != nil {
		r.GET(cfg.Metrics.Path, h.System.Metrics)
	}

	api := r.Group("/api")
	if cfg.RateLimit.Enabled {
		var onLimited func()
		if svc.Metrics != nil {
			onLimited = svc.Metrics.ObserveRateLimited
		}
		rl := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window(), cfg.RateLimit.Burst)
		api.Use(middleware.RateLimitMiddleware(rl, onLimited))
	}

	// 目录只读接口可缓存，重载时清空
	cached := []gin.HandlerFunc{}
	if svc.Cache != nil {
		var onLookup func(bool)
		if svc.Metrics != nil {
			onLookup = svc.Metrics.ObserveCache
		}
		cached = append(cached, middleware.CacheMiddleware(svc.Cache, log, svc.Catalog.Generation, onLookup))
	}
	withCache := func(fn gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, cached...), fn)
	}

	tools := api.Group("/tools")
	{
		tools.GET("", withCache(h.Tools.ListTools)...)
		tools.GET("/categories", withCache(h.Tools.Categories)...)
		tools.GET("/search", h.Tools.Search)
		tools.GET("/category/:category", withCache(h.Tools.Category)...)
		tools.POST("/reload", h.Tools.Reload)

		// Favorites 收藏
		favorites := tools.Group("/favorites")
		{
			favorites.GET("", h.Favorites.List)
			favorites.POST("", h.Favorites.Add)
			favorites.DELETE("", h.Favorites.Clear)
			favorites.GET("/analytics", h.Favorites.Analytics)
			favorites.GET("/export", h.Favorites.Export)
			favorites.POST("/import", h.Favorites.Import)
			favorites.GET("/:category/:toolId", h.Favorites.Status)
			favorites.PUT("/:category/:toolId", h.Favorites.Update)
			favorites.DELETE("/:category/:toolId", h.Favorites.Remove)
		}

		tools.GET("/:category/:toolId", withCache(h.Tools.GetTool)...)
		tools.POST("/:category/:toolId/execute", h.Tools.Execute)
	}

	return r
}
