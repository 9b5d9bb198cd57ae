package handler

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/osint-framework/internal/model"
	"github.com/ashwinyue/osint-framework/internal/service"
	"github.com/ashwinyue/osint-framework/internal/service/execute"
	"github.com/ashwinyue/osint-framework/internal/service/search"
)

// ToolsHandler 工具目录处理器
type ToolsHandler struct {
	svc *service.Services
}

// NewToolsHandler 创建工具目录处理器
func NewToolsHandler(svc *service.Services) *ToolsHandler {
	return &ToolsHandler{svc: svc}
}

// ListTools 完整目录
// GET /api/tools
func (h *ToolsHandler) ListTools(c *gin.Context) {
	snap := h.svc.Catalog.Snapshot()
	Success(c, gin.H{
		"tools":           snap.All(),
		"toolsByCategory": snap.Tools,
		"categories":      snap.Categories,
		"totalTools":      snap.Len(),
		"categoryCount":   len(snap.Categories),
		"catalogDegraded": snap.Degraded,
	})
}

// Categories 分类索引
// GET /api/tools/categories
func (h *ToolsHandler) Categories(c *gin.Context) {
	Success(c, h.svc.Catalog.Snapshot().Categories)
}

// Category 分类下的工具
// GET /api/tools/category/:category
func (h *ToolsHandler) Category(c *gin.Context) {
	category := c.Param("category")
	tools, info, err := h.svc.Catalog.Snapshot().InCategory(category)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, gin.H{
		"category":     category,
		"tools":        tools,
		"categoryInfo": info,
	})
}

// GetTool 工具详情
// GET /api/tools/:category/:toolId
func (h *ToolsHandler) GetTool(c *gin.Context) {
	tool, err := h.svc.Catalog.Snapshot().Get(c.Param("category"), c.Query("subcategory"), c.Param("toolId"))
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, tool)
}

// Search 搜索与筛选
// GET /api/tools/search?q=&type=&api=&internal=&limit=&category=&subcategory=&tags=&sources=&favoritesOnly=&minRating=&sort=
func (h *ToolsHandler) Search(c *gin.Context) {
	q, err := parseSearchQuery(c)
	if err != nil {
		Error(c, err)
		return
	}
	page := h.svc.Search(*q)
	Success(c, page)
}

// Execute 执行工具
// POST /api/tools/:category/:toolId/execute
func (h *ToolsHandler) Execute(c *gin.Context) {
	params := execute.Parameters{}
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&params); err != nil && !errors.Is(err, io.EOF) {
			BadRequest(c, "request body must be a JSON object")
			return
		}
	}

	result, err := h.svc.Executor.Execute(c.Request.Context(),
		c.Param("category"), c.Query("subcategory"), c.Param("toolId"), params)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, result)
}

// Reload 重新加载目录
// POST /api/tools/reload
func (h *ToolsHandler) Reload(c *gin.Context) {
	snap := h.svc.Catalog.Reload()
	Success(c, gin.H{
		"totalTools": snap.Len(),
		"degraded":   snap.Degraded,
		"source":     snap.Source,
		"loadedAt":   snap.LoadedAt,
	})
}

func parseSearchQuery(c *gin.Context) (*search.Query, error) {
	q := &search.Query{
		Text: c.Query("q"),
		Filter: search.Filter{
			Category:    c.Query("category"),
			Subcategory: c.Query("subcategory"),
			Tags:        splitList(c.Query("tags")),
			Sources:     splitList(c.Query("sources")),
		},
	}

	if raw := c.Query("type"); raw != "" {
		t, ok := model.ParseToolType(raw)
		if !ok {
			return nil, fmt.Errorf("%w: unknown type %q", model.ErrValidation, raw)
		}
		q.Filter.Type = t
	}
	// internal=true 等价于 type=internal
	internal, err := parseBool(c, "internal")
	if err != nil {
		return nil, err
	}
	if internal {
		if q.Filter.Type != "" && q.Filter.Type != model.ToolTypeInternal {
			return nil, fmt.Errorf("%w: internal=true conflicts with type=%s", model.ErrValidation, q.Filter.Type)
		}
		q.Filter.Type = model.ToolTypeInternal
	}
	if q.Filter.APIOnly, err = parseBool(c, "api"); err != nil {
		return nil, err
	}
	if q.Filter.FavoritesOnly, err = parseBool(c, "favoritesOnly"); err != nil {
		return nil, err
	}
	if q.Filter.MinRating, err = parseInt(c, "minRating"); err != nil {
		return nil, err
	}
	if q.Filter.MinRating < 0 || q.Filter.MinRating > model.MaxRating {
		return nil, fmt.Errorf("%w: minRating must be between 0 and %d", model.ErrValidation, model.MaxRating)
	}
	if q.Limit, err = parseInt(c, "limit"); err != nil {
		return nil, err
	}
	if raw := c.Query("sort"); raw != "" {
		key, ok := search.ParseSortKey(raw)
		if !ok {
			return nil, fmt.Errorf("%w: unknown sort %q", model.ErrValidation, raw)
		}
		q.Sort = key
	}
	return q, nil
}

func parseBool(c *gin.Context, name string) (bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean", model.ErrValidation, name)
	}
	return v, nil
}

func parseInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", model.ErrValidation, name)
	}
	return v, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
