package handler

import (
	"Townsquare/internal/api/dto"
	"Townsquare/internal/pkg/response"
	"Townsquare/internal/pkg/util"
	"Townsquare/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ModerationHandler struct {
	moderationSvc service.ModerationService
}

func NewModerationHandler(moderationSvc service.ModerationService) *ModerationHandler {
	return &ModerationHandler{
		moderationSvc: moderationSvc,
	}
}

// Decide 执行审核决定：approve / reject / request_changes
func (s *ModerationHandler) Decide(c *gin.Context) {
	moderatorID := c.GetUint64("user_id")
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || postID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var decisionDTO dto.ModerationDecisionDTO
	if err = c.ShouldBind(&decisionDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&decisionDTO); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.moderationSvc.Transition(c.Request.Context(), postID, decisionDTO.Action, moderatorID, decisionDTO.Comment)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{
		"post_id": post.ID,
		"status":  post.Status.String(),
	})
}

// GetQueue 待审核队列，按提交顺序排列
func (s *ModerationHandler) GetQueue(c *gin.Context) {
	page, pageSize := parsePage(c)
	posts, err := s.moderationSvc.GetQueue(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

// GetHistory 帖子的审核流水
func (s *ModerationHandler) GetHistory(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || postID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	records, err := s.moderationSvc.GetHistory(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, records)
}
