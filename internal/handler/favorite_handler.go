package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/osint-framework/internal/model"
	"github.com/ashwinyue/osint-framework/internal/service"
)

// FavoritesHandler 收藏处理器
type FavoritesHandler struct {
	svc *service.Services
}

// NewFavoritesHandler 创建收藏处理器
func NewFavoritesHandler(svc *service.Services) *FavoritesHandler {
	return &FavoritesHandler{svc: svc}
}

// AddFavoriteRequest 收藏请求
type AddFavoriteRequest struct {
	Category string                 `json:"category" binding:"required"`
	ToolID   string                 `json:"toolId" binding:"required"`
	Metadata model.FavoriteMetadata `json:"metadata"`
}

// List 收藏列表
// GET /api/tools/favorites
func (h *FavoritesHandler) List(c *gin.Context) {
	Success(c, h.svc.Favorites.List())
}

// Analytics 收藏统计
// GET /api/tools/favorites/analytics
func (h *FavoritesHandler) Analytics(c *gin.Context) {
	Success(c, h.svc.Favorites.Analytics())
}

// Add 添加收藏
// POST /api/tools/favorites
func (h *FavoritesHandler) Add(c *gin.Context) {
	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}

	fav, err := h.svc.Favorites.Add(c.Request.Context(), req.Category, req.ToolID, req.Metadata)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, fav)
}

// Update 修改收藏备注与评分
// PUT /api/tools/favorites/:category/:toolId
func (h *FavoritesHandler) Update(c *gin.Context) {
	var meta model.FavoriteMetadata
	if err := c.ShouldBindJSON(&meta); err != nil {
		BindError(c, err)
		return
	}

	fav, err := h.svc.Favorites.Update(c.Request.Context(), c.Param("category"), c.Param("toolId"), meta)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, fav)
}

// Remove 取消收藏
// DELETE /api/tools/favorites/:category/:toolId
func (h *FavoritesHandler) Remove(c *gin.Context) {
	fav, err := h.svc.Favorites.Remove(c.Request.Context(), c.Param("category"), c.Param("toolId"))
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, fav)
}

// Status 收藏状态
// GET /api/tools/favorites/:category/:toolId
func (h *FavoritesHandler) Status(c *gin.Context) {
	fav, ok := h.svc.Favorites.Get(c.Param("category"), c.Param("toolId"))
	Success(c, gin.H{
		"isFavorited": ok,
		"favorite":    fav,
	})
}

// Export 导出收藏
// GET /api/tools/favorites/export
func (h *FavoritesHandler) Export(c *gin.Context) {
	Success(c, h.svc.Favorites.Export())
}

// Import 导入收藏，已存在的 ID 跳过
// POST /api/tools/favorites/import
func (h *FavoritesHandler) Import(c *gin.Context) {
	var payload model.FavoritesExport
	if err := c.ShouldBindJSON(&payload); err != nil {
		BadRequest(c, "request body must be an export payload")
		return
	}

	res, err := h.svc.Favorites.Import(c.Request.Context(), &payload)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, res)
}

// Clear 清空收藏
// DELETE /api/tools/favorites
func (h *FavoritesHandler) Clear(c *gin.Context) {
	n, err := h.svc.Favorites.Clear(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, gin.H{"cleared": n})
}
