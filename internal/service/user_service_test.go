package service

import (
	"Townsquare/internal/api/dto"
	"Townsquare/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("registers and returns profile", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewUserService(userRepo, new(MockCategoryRepo))

		userRepo.On("UpsertUser", ctx, mock.MatchedBy(func(u *model.User) bool {
			return u.ID == 100 && u.IsActive
		})).Return(nil)
		userRepo.On("GetUserWithCategories", ctx, uint64(100)).Return(&model.User{
			ID:        100,
			FirstName: strPtr("小王"),
		}, nil)

		profile, err := svc.Register(ctx, 100, &dto.RegisterDTO{FirstName: strPtr("小王")})

		assert.NoError(t, err)
		assert.Equal(t, uint64(100), profile.ID)
		userRepo.AssertExpectations(t)
	})

	t.Run("zero id is invalid", func(t *testing.T) {
		svc := NewUserService(new(MockUserRepo), new(MockCategoryRepo))

		_, err := svc.Register(ctx, 0, &dto.RegisterDTO{})

		assert.ErrorIs(t, err, ErrParamInvalid)
	})
}

func TestSetCity(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes before storing", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewUserService(userRepo, new(MockCategoryRepo))

		userRepo.On("GetUser", ctx, uint64(100)).Return(&model.User{ID: 100}, nil)
		userRepo.On("UpdateCity", ctx, uint64(100), "new york").Return(nil)

		err := svc.SetCity(ctx, 100, "  New   York ")

		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("blank city is invalid", func(t *testing.T) {
		svc := NewUserService(new(MockUserRepo), new(MockCategoryRepo))

		err := svc.SetCity(ctx, 100, "   ")

		assert.ErrorIs(t, err, ErrParamInvalid)
	})

	t.Run("unknown user", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewUserService(userRepo, new(MockCategoryRepo))
		userRepo.On("GetUser", ctx, uint64(404)).Return(nil, gorm.ErrRecordNotFound)

		err := svc.SetCity(ctx, 404, "上海")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestSetCategories(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces subscriptions", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		categoryRepo := new(MockCategoryRepo)
		svc := NewUserService(userRepo, categoryRepo)

		userRepo.On("GetUser", ctx, uint64(100)).Return(&model.User{ID: 100}, nil)
		categoryRepo.On("GetByIDs", ctx, []uint64{1, 2}).Return([]*model.Category{
			{ID: 1, Name: "运动", IsActive: true},
			{ID: 2, Name: "音乐", IsActive: true},
		}, nil)
		userRepo.On("ReplaceCategories", ctx, uint64(100), []uint64{1, 2}).Return(nil)

		err := svc.SetCategories(ctx, 100, []uint64{1, 2})

		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("inactive category rejected", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		categoryRepo := new(MockCategoryRepo)
		svc := NewUserService(userRepo, categoryRepo)

		userRepo.On("GetUser", ctx, uint64(100)).Return(&model.User{ID: 100}, nil)
		categoryRepo.On("GetByIDs", ctx, []uint64{3}).Return([]*model.Category{
			{ID: 3, Name: "已下线", IsActive: false},
		}, nil)

		err := svc.SetCategories(ctx, 100, []uint64{3})

		assert.ErrorIs(t, err, ErrCategoryNotFound)
		userRepo.AssertNotCalled(t, "ReplaceCategories", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty set rejected", func(t *testing.T) {
		svc := NewUserService(new(MockUserRepo), new(MockCategoryRepo))

		err := svc.SetCategories(ctx, 100, nil)

		assert.ErrorIs(t, err, ErrCategoryRequired)
	})
}
