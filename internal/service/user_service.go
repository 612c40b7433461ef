package service

import (
	"Townsquare/internal/api/dto"
	"Townsquare/internal/model"
	"Townsquare/internal/pkg/util"
	"Townsquare/internal/repository"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type UserService interface {
	Register(ctx context.Context, userID uint64, req *dto.RegisterDTO) (*dto.UserDTO, error)
	SetCity(ctx context.Context, userID uint64, city string) error
	SetCategories(ctx context.Context, userID uint64, categoryIDs []uint64) error
	GetProfile(ctx context.Context, userID uint64) (*dto.UserDTO, error)
}

type userServiceImpl struct {
	userRepo     repository.UserRepo
	categoryRepo repository.CategoryRepo
}

func NewUserService(userRepo repository.UserRepo, categoryRepo repository.CategoryRepo) UserService {
	return &userServiceImpl{
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
	}
}

// Register 按网关下发的数字 ID 登记用户，重复注册只刷新展示字段
func (s *userServiceImpl) Register(ctx context.Context, userID uint64, req *dto.RegisterDTO) (*dto.UserDTO, error) {
	if userID == 0 {
		return nil, ErrParamInvalid
	}
	now := time.Now()
	user := &model.User{
		ID:        userID,
		Username:  req.Username,
		FirstName: req.FirstName,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.userRepo.UpsertUser(ctx, user); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

func (s *userServiceImpl) SetCity(ctx context.Context, userID uint64, city string) error {
	normalized := util.NormalizeCity(city)
	if normalized == "" {
		return ErrParamInvalid
	}
	if _, err := s.userRepo.GetUser(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.userRepo.UpdateCity(ctx, userID, normalized)
}

// SetCategories 全量替换订阅分类，传入的分类必须全部存在且启用
func (s *userServiceImpl) SetCategories(ctx context.Context, userID uint64, categoryIDs []uint64) error {
	if len(categoryIDs) == 0 {
		return ErrCategoryRequired
	}
	if _, err := s.userRepo.GetUser(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	categories, err := s.categoryRepo.GetByIDs(ctx, categoryIDs)
	if err != nil {
		return err
	}
	active := make(map[uint64]struct{}, len(categories))
	for _, c := range categories {
		if c.IsActive {
			active[c.ID] = struct{}{}
		}
	}
	for _, id := range categoryIDs {
		if _, ok := active[id]; !ok {
			return ErrCategoryNotFound
		}
	}
	return s.userRepo.ReplaceCategories(ctx, userID, categoryIDs)
}

func (s *userServiceImpl) GetProfile(ctx context.Context, userID uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserWithCategories(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	res := &dto.UserDTO{
		ID:         user.ID,
		Username:   user.Username,
		FirstName:  user.FirstName,
		City:       user.City,
		Categories: make([]dto.CategoryDTO, 0, len(user.Categories)),
	}
	for _, c := range user.Categories {
		res.Categories = append(res.Categories, dto.CategoryDTO{ID: c.ID, Name: c.Name, Description: c.Description})
	}
	return res, nil
}
