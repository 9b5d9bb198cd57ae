package model

import "time"

// MaxRating 评分上限
const MaxRating = 5

// Favorite 收藏记录
type Favorite struct {
	ID          string     `json:"id" gorm:"primaryKey;size:255"`
	Category    string     `json:"category" gorm:"size:255;index"`
	Subcategory string     `json:"subcategory" gorm:"size:255"`
	ToolID      string     `json:"toolId" gorm:"size:255"`
	Name        string     `json:"name" gorm:"size:255"`
	URL         string     `json:"url" gorm:"type:text"`
	Description string     `json:"description" gorm:"type:text"`
	Icon        string     `json:"icon" gorm:"size:64"`
	Type        ToolType   `json:"type" gorm:"size:20"`
	Tags        []string   `json:"tags" gorm:"serializer:json"`
	Notes       string     `json:"notes" gorm:"type:text"`
	Rating      int        `json:"rating"`
	UsageCount  int        `json:"usageCount"`
	LastUsed    *time.Time `json:"lastUsed"`
	AddedAt     time.Time  `json:"addedAt"`
}

func (Favorite) TableName() string {
	return "favorites"
}

// FavoriteID 生成收藏 ID: {category}_{toolId}
func FavoriteID(category, toolID string) string {
	return category + "_" + toolID
}

// Clone 深拷贝，避免调用方修改内部状态
func (f *Favorite) Clone() *Favorite {
	if f == nil {
		return nil
	}
	c := *f
	if f.Tags != nil {
		c.Tags = append([]string(nil), f.Tags...)
	}
	if f.LastUsed != nil {
		t := *f.LastUsed
		c.LastUsed = &t
	}
	return &c
}

// FavoriteMetadata 用户提供的收藏元数据，nil 表示不修改
type FavoriteMetadata struct {
	Notes  *string `json:"notes"`
	Rating *int    `json:"rating" binding:"omitempty,min=0,max=5"`
}

// TagCount 标签频次
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// FavoriteAnalytics 收藏统计
type FavoriteAnalytics struct {
	TotalFavorites int            `json:"totalFavorites"`
	TotalUsage     int            `json:"totalUsage"`
	AverageUsage   float64        `json:"averageUsage"`
	AverageRating  float64        `json:"averageRating"`
	ByCategory     map[string]int `json:"byCategory"`
	ByType         map[string]int `json:"byType"`
	TopTags        []TagCount     `json:"topTags"`
	RecentlyAdded  []*Favorite    `json:"recentlyAdded"`
	MostUsed       []*Favorite    `json:"mostUsed"`
}

// FavoritesExport 导出数据
type FavoritesExport struct {
	Favorites  []*Favorite        `json:"favorites"`
	Analytics  *FavoriteAnalytics `json:"analytics,omitempty"`
	ExportedAt time.Time          `json:"exportedAt"`
}

// ImportResult 导入结果
type ImportResult struct {
	Imported int `json:"imported"`
	Total    int `json:"total"`
}
