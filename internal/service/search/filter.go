package search

import (
	"strings"

	"github.com/ashwinyue/osint-framework/internal/model"
)

// Filter 结构化筛选条件，各字段之间为 AND 关系，零值表示不筛选
type Filter struct {
	Category    string
	Subcategory string
	Type        model.ToolType
	// Tags 与工具标签有任意交集即匹配
	Tags []string
	// Sources 任意一项是 sourceRepo 的子串即匹配
	Sources       []string
	FavoritesOnly bool
	// MinRating > 0 时生效，未收藏的工具被排除
	MinRating int
	// APIOnly 只保留带 api 标签的工具
	APIOnly bool
}

// Favorites 收藏索引，键为收藏 ID（category_toolId）
type Favorites map[string]*model.Favorite

// Lookup 查找工具对应的收藏
func (f Favorites) Lookup(t *model.Tool) (*model.Favorite, bool) {
	fav, ok := f[model.FavoriteID(t.Category, t.ID)]
	return fav, ok
}

// Match 判断工具是否满足全部条件
func (f *Filter) Match(t *model.Tool, favs Favorites) bool {
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.Subcategory != "" && t.Subcategory != f.Subcategory {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.APIOnly && !t.HasTag("api") {
		return false
	}
	if len(f.Tags) > 0 && !anyTag(t, f.Tags) {
		return false
	}
	if len(f.Sources) > 0 && !anySource(t.SourceRepo, f.Sources) {
		return false
	}
	if f.FavoritesOnly || f.MinRating > 0 {
		fav, ok := favs.Lookup(t)
		if !ok {
			return false
		}
		if f.MinRating > 0 && fav.Rating < f.MinRating {
			return false
		}
	}
	return true
}

// Apply 返回满足条件的工具，保持输入顺序
func Apply(tools []*model.Tool, f Filter, favs Favorites) []*model.Tool {
	out := make([]*model.Tool, 0, len(tools))
	for _, t := range tools {
		if f.Match(t, favs) {
			out = append(out, t)
		}
	}
	return out
}

func anyTag(t *model.Tool, tags []string) bool {
	for _, tag := range tags {
		if tag != "" && t.HasTag(tag) {
			return true
		}
	}
	return false
}

func anySource(repo string, sources []string) bool {
	repo = strings.ToLower(repo)
	for _, s := range sources {
		if s != "" && strings.Contains(repo, strings.ToLower(s)) {
			return true
		}
	}
	return false
}
