package search

import (
	"sort"
	"strings"

	"github.com/ashwinyue/osint-framework/internal/model"
)

// SortKey 排序方式
type SortKey string

const (
	SortRelevance  SortKey = ""
	SortName       SortKey = "name"
	SortCategory   SortKey = "category"
	SortType       SortKey = "type"
	SortPopularity SortKey = "popularity"
	SortRating     SortKey = "rating"
	SortRecent     SortKey = "recent"
)

// ParseSortKey 解析排序方式，未知值返回 false
func ParseSortKey(s string) (SortKey, bool) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortRelevance, SortName, SortCategory, SortType, SortPopularity, SortRating, SortRecent:
		return k, true
	default:
		return SortRelevance, false
	}
}

// Signals 排序用到的外部数据，键为收藏 ID
type Signals struct {
	Usage   map[string]int
	Ratings map[string]int
	// Recent 最近使用的收藏 ID，越靠前越新
	Recent []string
}

// SignalsFrom 由收藏索引生成排序数据，Recent 按 lastUsed 降序
func SignalsFrom(favs Favorites) Signals {
	s := Signals{
		Usage:   make(map[string]int, len(favs)),
		Ratings: make(map[string]int, len(favs)),
	}
	used := make([]*model.Favorite, 0, len(favs))
	for id, f := range favs {
		s.Usage[id] = f.UsageCount
		s.Ratings[id] = f.Rating
		if f.LastUsed != nil {
			used = append(used, f)
		}
	}
	sort.Slice(used, func(i, j int) bool {
		if !used[i].LastUsed.Equal(*used[j].LastUsed) {
			return used[i].LastUsed.After(*used[j].LastUsed)
		}
		return used[i].ID < used[j].ID
	})
	for _, f := range used {
		s.Recent = append(s.Recent, f.ID)
	}
	return s
}

// Sort 稳定排序，SortRelevance 保持原顺序
func Sort(tools []*model.Tool, key SortKey, sig Signals) {
	less := lessFunc(key, sig)
	if less == nil {
		return
	}
	sort.SliceStable(tools, func(i, j int) bool { return less(tools[i], tools[j]) })
}

// SortResults 与 Sort 相同，作用于搜索结果
func SortResults(results []Result, key SortKey, sig Signals) {
	less := lessFunc(key, sig)
	if less == nil {
		return
	}
	sort.SliceStable(results, func(i, j int) bool { return less(results[i].Tool, results[j].Tool) })
}

func lessFunc(key SortKey, sig Signals) func(a, b *model.Tool) bool {
	switch key {
	case SortName:
		return func(a, b *model.Tool) bool { return lower(a.Name) < lower(b.Name) }
	case SortCategory:
		return func(a, b *model.Tool) bool {
			if ca, cb := lower(a.Category), lower(b.Category); ca != cb {
				return ca < cb
			}
			return lower(a.Name) < lower(b.Name)
		}
	case SortType:
		return func(a, b *model.Tool) bool {
			if a.Type != b.Type {
				return a.Type < b.Type
			}
			return lower(a.Name) < lower(b.Name)
		}
	case SortPopularity:
		return func(a, b *model.Tool) bool { return sig.Usage[favID(a)] > sig.Usage[favID(b)] }
	case SortRating:
		return func(a, b *model.Tool) bool { return sig.Ratings[favID(a)] > sig.Ratings[favID(b)] }
	case SortRecent:
		pos := make(map[string]int, len(sig.Recent))
		for i, id := range sig.Recent {
			if _, ok := pos[id]; !ok {
				pos[id] = i
			}
		}
		rank := func(t *model.Tool) int {
			if p, ok := pos[favID(t)]; ok {
				return p
			}
			return len(sig.Recent)
		}
		return func(a, b *model.Tool) bool { return rank(a) < rank(b) }
	default:
		return nil
	}
}

func favID(t *model.Tool) string {
	return model.FavoriteID(t.Category, t.ID)
}

func lower(s string) string {
	return strings.ToLower(s)
}
