// Package execute 工具执行分发：CLI 返回命令提示，Web 返回外部链接，内置工具执行本地分析
package execute

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ashwinyue/osint-framework/internal/logger"
	"github.com/ashwinyue/osint-framework/internal/model"
	"github.com/ashwinyue/osint-framework/internal/service/catalog"
)

// CatalogSource 提供当前目录快照
type CatalogSource interface {
	Snapshot() *catalog.Catalog
}

// UsageRecorder 记录工具使用次数
type UsageRecorder interface {
	IncrementUsage(ctx context.Context, category, toolID string) error
}

// Parameters 执行参数（请求体）
type Parameters map[string]any

// String 读取字符串参数，非字符串值按 %v 格式化
func (p Parameters) String(key string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// first 返回第一个非空参数
func (p Parameters) first(keys ...string) string {
	for _, k := range keys {
		if v := p.String(k); v != "" {
			return v
		}
	}
	return ""
}

// Dispatcher 工具执行分发器
type Dispatcher struct {
	catalog CatalogSource
	usage   UsageRecorder
	logger  *zap.Logger
}

// NewDispatcher 创建分发器，usage 可为 nil
func NewDispatcher(src CatalogSource, usage UsageRecorder, l *zap.Logger) *Dispatcher {
	return &Dispatcher{
		catalog: src,
		usage:   usage,
		logger:  logger.OrNop(l).Named("execute"),
	}
}

// Execute 解析工具并按类型分发，不会启动任何外部进程
func (d *Dispatcher) Execute(ctx context.Context, category, subcategory, toolID string, params Parameters) (*model.ExecutionResult, error) {
	tool, err := d.catalog.Snapshot().Get(category, subcategory, toolID)
	if err != nil {
		return nil, err
	}

	var result *model.ExecutionResult
	switch tool.Type {
	case model.ToolTypeCLI:
		result = cliResult(tool, params)
	case model.ToolTypeInternal:
		result, err = internalResult(tool, params)
	default:
		result = webResult(tool)
	}
	if err != nil {
		return nil, err
	}

	d.logger.Debug("tool executed",
		zap.String("category", category), zap.String("tool", toolID), zap.String("type", string(tool.Type)))

	if d.usage != nil {
		if err := d.usage.IncrementUsage(ctx, category, toolID); err != nil {
			d.logger.Warn("failed to record usage", zap.String("tool", toolID), zap.Error(err))
		}
	}
	return result, nil
}

func webResult(tool *model.Tool) *model.ExecutionResult {
	return &model.ExecutionResult{
		ToolID:   tool.ID,
		Name:     tool.Name,
		Type:     model.ToolTypeWeb,
		URL:      tool.URL,
		External: true,
	}
}
