package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/osint-framework/internal/service"
)

// SystemHandler 系统处理器
type SystemHandler struct {
	svc *service.Services
}

// NewSystemHandler 创建系统处理器
func NewSystemHandler(svc *service.Services) *SystemHandler {
	return &SystemHandler{svc: svc}
}

// Health 健康检查，目录降级时仍返回 200
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Health())
}

// Metrics Prometheus 指标
// GET /metrics
func (h *SystemHandler) Metrics(c *gin.Context) {
	if h.svc.Metrics == nil {
		c.Status(http.StatusNotFound)
		return
	}
	h.svc.Metrics.Handler().ServeHTTP(c.Writer, c.Request)
}
