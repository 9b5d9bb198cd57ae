package favorite

import (
	"sort"

	"github.com/ashwinyue/osint-framework/internal/model"
)

const (
	topTagsLimit  = 10
	recentLimit   = 5
	mostUsedLimit = 5
)

// computeAnalytics 平均评分只统计评过分（rating > 0）的收藏
func computeAnalytics(list []*model.Favorite) *model.FavoriteAnalytics {
	a := &model.FavoriteAnalytics{
		TotalFavorites: len(list),
		ByCategory:     make(map[string]int),
		ByType:         make(map[string]int),
		TopTags:        []model.TagCount{},
		RecentlyAdded:  []*model.Favorite{},
		MostUsed:       []*model.Favorite{},
	}
	if len(list) == 0 {
		return a
	}

	ratingSum, rated := 0, 0
	tagCounts := make(map[string]int)
	for _, f := range list {
		a.TotalUsage += f.UsageCount
		if f.Rating > 0 {
			ratingSum += f.Rating
			rated++
		}
		a.ByCategory[f.Category]++
		a.ByType[string(f.Type)]++
		for _, tag := range f.Tags {
			tagCounts[tag]++
		}
	}
	a.AverageUsage = float64(a.TotalUsage) / float64(len(list))
	if rated > 0 {
		a.AverageRating = float64(ratingSum) / float64(rated)
	}

	for tag, n := range tagCounts {
		a.TopTags = append(a.TopTags, model.TagCount{Tag: tag, Count: n})
	}
	sort.Slice(a.TopTags, func(i, j int) bool {
		if a.TopTags[i].Count != a.TopTags[j].Count {
			return a.TopTags[i].Count > a.TopTags[j].Count
		}
		return a.TopTags[i].Tag < a.TopTags[j].Tag
	})
	if len(a.TopTags) > topTagsLimit {
		a.TopTags = a.TopTags[:topTagsLimit]
	}

	recent := cloneList(list)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].AddedAt.After(recent[j].AddedAt)
	})
	a.RecentlyAdded = head(recent, recentLimit)

	used := cloneList(list)
	sort.SliceStable(used, func(i, j int) bool {
		return used[i].UsageCount > used[j].UsageCount
	})
	a.MostUsed = head(used, mostUsedLimit)

	return a
}

func cloneList(list []*model.Favorite) []*model.Favorite {
	out := make([]*model.Favorite, len(list))
	for i, f := range list {
		out[i] = f.Clone()
	}
	return out
}

func head(list []*model.Favorite, n int) []*model.Favorite {
	if len(list) > n {
		return list[:n]
	}
	return list
}
