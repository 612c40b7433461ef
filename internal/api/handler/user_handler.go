package handler

import (
	"Townsquare/internal/api/dto"
	"Townsquare/internal/pkg/response"
	"Townsquare/internal/pkg/util"
	"Townsquare/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{
		userSvc: userSvc,
	}
}

// Register 登记用户。身份由网关下发的 X-User-ID 确定，重复调用幂等
func (s *UserHandler) Register(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var registerDTO dto.RegisterDTO
	if err := c.ShouldBind(&registerDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&registerDTO); err != nil {
		response.Error(c, err)
		return
	}
	profile, err := s.userSvc.Register(c.Request.Context(), userID, &registerDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

// SetCity 设置所在城市，写入前做归一化
func (s *UserHandler) SetCity(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var cityDTO dto.CityDTO
	if err := c.ShouldBind(&cityDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&cityDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := s.userSvc.SetCity(c.Request.Context(), userID, cityDTO.City); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// SetCategories 全量替换订阅分类
func (s *UserHandler) SetCategories(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var categoriesDTO dto.CategoriesDTO
	if err := c.ShouldBind(&categoriesDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&categoriesDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := s.userSvc.SetCategories(c.Request.Context(), userID, categoriesDTO.CategoryIDs); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) GetProfile(c *gin.Context) {
	userID := c.GetUint64("user_id")
	profile, err := s.userSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}
