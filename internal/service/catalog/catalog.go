package catalog

import (
	"fmt"
	"sort"
	"time"

	"github.com/ashwinyue/osint-framework/internal/model"
)

// Catalog 一次加载得到的只读目录快照
type Catalog struct {
	Tools      model.CategoryMap
	Categories model.CategoryIndex
	Degraded   bool
	Source     string
	LoadedAt   time.Time

	list []*model.Tool
}

// newCatalog 由已规范化、去重的工具列表构建快照
func newCatalog(tools []*model.Tool, categories model.CategoryIndex) *Catalog {
	m := make(model.CategoryMap)
	for _, t := range tools {
		subs, ok := m[t.Category]
		if !ok {
			subs = make(map[string]map[string]*model.Tool)
			m[t.Category] = subs
		}
		byID, ok := subs[t.Subcategory]
		if !ok {
			byID = make(map[string]*model.Tool)
			subs[t.Subcategory] = byID
		}
		byID[t.ID] = t
	}
	if categories == nil {
		categories = BuildIndex(tools)
	}
	return &Catalog{
		Tools:      m,
		Categories: categories,
		LoadedAt:   time.Now(),
		list:       tools,
	}
}

// All 按加载顺序返回全部工具
func (c *Catalog) All() []*model.Tool {
	out := make([]*model.Tool, len(c.list))
	copy(out, c.list)
	return out
}

// Len 工具总数
func (c *Catalog) Len() int {
	return len(c.list)
}

// Get 查找工具，subcategory 为空时在整个分类中查找
func (c *Catalog) Get(category, subcategory, toolID string) (*model.Tool, error) {
	subs, ok := c.Tools[category]
	if !ok {
		return nil, fmt.Errorf("%w: category %q", model.ErrNotFound, category)
	}
	if subcategory != "" {
		byID, ok := subs[subcategory]
		if !ok {
			return nil, fmt.Errorf("%w: subcategory %q in %q", model.ErrNotFound, subcategory, category)
		}
		if t, ok := byID[toolID]; ok {
			return t, nil
		}
		return nil, fmt.Errorf("%w: tool %q in %s/%s", model.ErrNotFound, toolID, category, subcategory)
	}

	// 子分类按名称排序，保证同名 ID 时结果稳定
	names := make([]string, 0, len(subs))
	for name := range subs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if t, ok := subs[name][toolID]; ok {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: tool %q in %q", model.ErrNotFound, toolID, category)
}

// InCategory 返回分类下的工具（加载顺序）及分类信息
func (c *Catalog) InCategory(category string) ([]*model.Tool, *model.CategoryInfo, error) {
	if _, ok := c.Tools[category]; !ok {
		return nil, nil, fmt.Errorf("%w: category %q", model.ErrNotFound, category)
	}
	var tools []*model.Tool
	for _, t := range c.list {
		if t.Category == category {
			tools = append(tools, t)
		}
	}
	return tools, c.Categories[category], nil
}
