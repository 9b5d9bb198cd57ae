package model

import "strings"

// ToolType 工具类型，决定执行方式
type ToolType string

const (
	ToolTypeWeb      ToolType = "web"      // 外部链接
	ToolTypeCLI      ToolType = "cli"      // 命令行工具
	ToolTypeInternal ToolType = "internal" // 内置分析
)

// ParseToolType 解析工具类型，未知类型返回 false
func ParseToolType(s string) (ToolType, bool) {
	switch ToolType(strings.ToLower(strings.TrimSpace(s))) {
	case ToolTypeWeb:
		return ToolTypeWeb, true
	case ToolTypeCLI:
		return ToolTypeCLI, true
	case ToolTypeInternal:
		return ToolTypeInternal, true
	default:
		return ToolTypeWeb, false
	}
}

// Tool 目录中的一个工具
type Tool struct {
	ID              string   `json:"id" toml:"id"`
	Name            string   `json:"name" toml:"name"`
	URL             string   `json:"url" toml:"url"`
	Description     string   `json:"description" toml:"description"`
	Category        string   `json:"category" toml:"category"`
	Subcategory     string   `json:"subcategory" toml:"subcategory"`
	Icon            string   `json:"icon,omitempty" toml:"icon"`
	SubcategoryIcon string   `json:"subcategoryIcon,omitempty" toml:"subcategory_icon"`
	SourceRepo      string   `json:"sourceRepo,omitempty" toml:"source_repo"`
	Tags            []string `json:"tags" toml:"tags"`
	Type            ToolType `json:"type" toml:"type"`
}

// HasTag 判断是否包含标签（忽略大小写）
func (t *Tool) HasTag(tag string) bool {
	for _, v := range t.Tags {
		if strings.EqualFold(v, tag) {
			return true
		}
	}
	return false
}

// SubcategoryInfo 子分类信息
type SubcategoryInfo struct {
	Icon  string `json:"icon"`
	Count int    `json:"count"`
}

// CategoryInfo 分类信息
type CategoryInfo struct {
	Icon          string                      `json:"icon"`
	Subcategories map[string]*SubcategoryInfo `json:"subcategories"`
}

// CategoryIndex category -> 分类信息
type CategoryIndex map[string]*CategoryInfo

// ToolCount 分类下的工具总数
func (c *CategoryInfo) ToolCount() int {
	n := 0
	for _, sub := range c.Subcategories {
		n += sub.Count
	}
	return n
}

// CategoryMap category -> subcategory -> toolId -> Tool
type CategoryMap map[string]map[string]map[string]*Tool
