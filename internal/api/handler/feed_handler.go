package handler

import (
	"Townsquare/internal/pkg/response"
	"Townsquare/internal/service"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedSvc service.FeedService
}

func NewFeedHandler(feedSvc service.FeedService) *FeedHandler {
	return &FeedHandler{
		feedSvc: feedSvc,
	}
}

// GetFeed 订阅流：同城 + 已订阅分类的已发布帖子
func (s *FeedHandler) GetFeed(c *gin.Context) {
	userID := c.GetUint64("user_id")
	page, pageSize := parsePage(c)

	feed, err := s.feedSvc.GetFeed(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, feed)
}

// GetLikedFeed 我点赞过且仍可见的帖子
func (s *FeedHandler) GetLikedFeed(c *gin.Context) {
	userID := c.GetUint64("user_id")
	page, pageSize := parsePage(c)

	feed, err := s.feedSvc.GetLikedFeed(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, feed)
}
