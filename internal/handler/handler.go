package handler

import (
	"github.com/ashwinyue/osint-framework/internal/service"
)

// Handlers 处理器集合
type Handlers struct {
	Tools     *ToolsHandler
	Favorites *FavoritesHandler
	System    *SystemHandler
}

// NewHandlers 创建所有处理器
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Tools:     NewToolsHandler(svc),
		Favorites: NewFavoritesHandler(svc),
		System:    NewSystemHandler(svc),
	}
}
