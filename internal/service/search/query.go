package search

import "github.com/ashwinyue/osint-framework/internal/model"

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// Query 一次组合查询：搜索 -> 筛选 -> 排序 -> 截断
type Query struct {
	Text   string
	Filter Filter
	Sort   SortKey
	Limit  int
}

// Page 查询结果，Total 为截断前的数量
type Page struct {
	Results []Result `json:"results"`
	Count   int      `json:"count"`
	Total   int      `json:"total"`
}

// NormalizeLimit 非正数取默认值，超过上限取上限
func NormalizeLimit(n int) int {
	if n <= 0 {
		return DefaultLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}

// Run 执行组合查询
func Run(tools []*model.Tool, q Query, favs Favorites) *Page {
	results := Search(tools, q.Text)

	filtered := make([]Result, 0, len(results))
	for _, r := range results {
		if q.Filter.Match(r.Tool, favs) {
			filtered = append(filtered, r)
		}
	}

	if q.Sort != SortRelevance {
		SortResults(filtered, q.Sort, SignalsFrom(favs))
	}

	total := len(filtered)
	if limit := NormalizeLimit(q.Limit); len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return &Page{Results: filtered, Count: len(filtered), Total: total}
}
