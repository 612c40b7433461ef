package api

import "Townsquare/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler       *handler.UserHandler
	CategoryHandler   *handler.CategoryHandler
	PostHandler       *handler.PostHandler
	FeedHandler       *handler.FeedHandler
	PostActionHandler *handler.PostActionHandler
	ModerationHandler *handler.ModerationHandler
	MediaHandler      *handler.MediaHandler
}
