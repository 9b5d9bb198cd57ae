package catalog

import (
	"github.com/ashwinyue/osint-framework/internal/model"
)

// DefaultIcon 分类或子分类未指定图标时使用
const DefaultIcon = "🔧"

// BuildIndex 按 category / subcategory 分组统计工具数量
// 图标取分组内第一个指定了图标的工具
func BuildIndex(tools []*model.Tool) model.CategoryIndex {
	index := make(model.CategoryIndex)
	for _, t := range tools {
		cat, ok := index[t.Category]
		if !ok {
			cat = &model.CategoryInfo{Subcategories: make(map[string]*model.SubcategoryInfo)}
			index[t.Category] = cat
		}
		if cat.Icon == "" && t.Icon != "" {
			cat.Icon = t.Icon
		}

		sub, ok := cat.Subcategories[t.Subcategory]
		if !ok {
			sub = &model.SubcategoryInfo{}
			cat.Subcategories[t.Subcategory] = sub
		}
		if sub.Icon == "" && t.SubcategoryIcon != "" {
			sub.Icon = t.SubcategoryIcon
		}
		sub.Count++
	}

	for _, cat := range index {
		if cat.Icon == "" {
			cat.Icon = DefaultIcon
		}
		for _, sub := range cat.Subcategories {
			if sub.Icon == "" {
				sub.Icon = DefaultIcon
			}
		}
	}
	return index
}
