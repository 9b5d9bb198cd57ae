// Package search 目录搜索、筛选与排序，全部为快照上的纯函数
package search

import (
	"sort"
	"strings"

	"github.com/ashwinyue/osint-framework/internal/model"
)

// 相关度权重
const (
	weightName        = 10
	weightNameExact   = 10
	weightNamePrefix  = 5
	weightDescription = 6
	weightCategory    = 4
	weightSubcategory = 3
	weightTag         = 2
	weightWord        = 1
)

// Result 搜索结果，Score 为 0 表示未评分
type Result struct {
	*model.Tool
	Score int `json:"score,omitempty"`
}

// Search 大小写不敏感的子串搜索，按相关度降序返回
// 空查询返回全部工具且不评分
func Search(tools []*model.Tool, query string) []Result {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		out := make([]Result, len(tools))
		for i, t := range tools {
			out[i] = Result{Tool: t}
		}
		return out
	}

	words := strings.Fields(q)
	out := make([]Result, 0)
	for _, t := range tools {
		if s := Score(t, q, words); s > 0 {
			out = append(out, Result{Tool: t, Score: s})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// Score 计算单个工具的相关度，q 与 words 须已转小写
func Score(t *model.Tool, q string, words []string) int {
	name := strings.ToLower(t.Name)
	desc := strings.ToLower(t.Description)
	category := strings.ToLower(t.Category)
	subcategory := strings.ToLower(t.Subcategory)

	score := 0
	if strings.Contains(name, q) {
		score += weightName
		if name == q {
			score += weightNameExact
		} else if strings.HasPrefix(name, q) {
			score += weightNamePrefix
		}
	}
	if strings.Contains(desc, q) {
		score += weightDescription
	}
	if strings.Contains(category, q) {
		score += weightCategory
	}
	if strings.Contains(subcategory, q) {
		score += weightSubcategory
	}

	tags := make([]string, len(t.Tags))
	for i, tag := range t.Tags {
		tags[i] = strings.ToLower(tag)
		if strings.Contains(tags[i], q) {
			score += weightTag
		}
	}

	haystack := strings.Join([]string{name, desc, category, subcategory, strings.Join(tags, " ")}, " ")
	for _, w := range words {
		if strings.Contains(haystack, w) {
			score += weightWord
		}
	}
	return score
}
