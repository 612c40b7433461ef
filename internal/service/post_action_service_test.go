package service

import (
	"Townsquare/internal/model"
	"context"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestToggleLike(t *testing.T) {
	ctx := context.Background()

	t.Run("first toggle likes", func(t *testing.T) {
		actionRepo := new(MockPostActionRepo)
		postRepo := new(MockPostRepo)
		svc := NewPostActionService(actionRepo, postRepo)

		post := publishedPost()
		postRepo.On("GetPost", ctx, uint64(1)).Return(post, nil)
		actionRepo.On("CreateLike", ctx, mock.MatchedBy(func(l *model.Like) bool {
			return l.UserID == 200 && l.PostID == 1
		})).Return(nil)
		actionRepo.On("GetLikeCountByPostID", ctx, uint64(1)).Return(int64(1), nil)

		res, err := svc.ToggleLike(ctx, 200, 1)

		assert.NoError(t, err)
		assert.Equal(t, "liked", res.State)
		assert.Equal(t, int64(1), res.Count)
	})

	t.Run("second toggle unlikes on duplicate key", func(t *testing.T) {
		actionRepo := new(MockPostActionRepo)
		postRepo := new(MockPostRepo)
		svc := NewPostActionService(actionRepo, postRepo)

		postRepo.On("GetPost", ctx, uint64(1)).Return(publishedPost(), nil)
		actionRepo.On("CreateLike", ctx, mock.AnythingOfType("*model.Like")).
			Return(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
		actionRepo.On("DeleteLike", ctx, uint64(200), uint64(1)).Return(int64(1), nil)
		actionRepo.On("GetLikeCountByPostID", ctx, uint64(1)).Return(int64(0), nil)

		res, err := svc.ToggleLike(ctx, 200, 1)

		assert.NoError(t, err)
		assert.Equal(t, "unliked", res.State)
		assert.Equal(t, int64(0), res.Count)
		actionRepo.AssertExpectations(t)
	})

	t.Run("concurrent unlike already removed the row", func(t *testing.T) {
		actionRepo := new(MockPostActionRepo)
		postRepo := new(MockPostRepo)
		svc := NewPostActionService(actionRepo, postRepo)

		postRepo.On("GetPost", ctx, uint64(1)).Return(publishedPost(), nil)
		actionRepo.On("CreateLike", ctx, mock.AnythingOfType("*model.Like")).
			Return(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
		actionRepo.On("DeleteLike", ctx, uint64(200), uint64(1)).Return(int64(0), nil)
		actionRepo.On("GetLikeCountByPostID", ctx, uint64(1)).Return(int64(0), nil)

		res, err := svc.ToggleLike(ctx, 200, 1)

		assert.NoError(t, err)
		assert.Equal(t, "unliked", res.State)
	})

	t.Run("post not found", func(t *testing.T) {
		postRepo := new(MockPostRepo)
		svc := NewPostActionService(new(MockPostActionRepo), postRepo)
		postRepo.On("GetPost", ctx, uint64(404)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.ToggleLike(ctx, 200, 404)

		assert.ErrorIs(t, err, ErrPostNotFound)
	})

	t.Run("unpublished post is invisible", func(t *testing.T) {
		postRepo := new(MockPostRepo)
		svc := NewPostActionService(new(MockPostActionRepo), postRepo)

		pending := publishedPost()
		pending.Status = model.PostStatusPending
		postRepo.On("GetPost", ctx, uint64(1)).Return(pending, nil)

		_, err := svc.ToggleLike(ctx, 200, 1)

		assert.ErrorIs(t, err, ErrPostNotFound)
	})

	t.Run("unexpected insert error surfaces", func(t *testing.T) {
		actionRepo := new(MockPostActionRepo)
		postRepo := new(MockPostRepo)
		svc := NewPostActionService(actionRepo, postRepo)

		postRepo.On("GetPost", ctx, uint64(1)).Return(publishedPost(), nil)
		actionRepo.On("CreateLike", ctx, mock.AnythingOfType("*model.Like")).Return(assert.AnError)

		_, err := svc.ToggleLike(ctx, 200, 1)

		assert.Error(t, err)
		actionRepo.AssertNotCalled(t, "DeleteLike", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetLikeInfo(t *testing.T) {
	ctx := context.Background()

	actionRepo := new(MockPostActionRepo)
	svc := NewPostActionService(actionRepo, new(MockPostRepo))

	actionRepo.On("CheckLikeExists", ctx, uint64(200), uint64(1)).Return(true, nil)
	actionRepo.On("GetLikeCountByPostID", ctx, uint64(1)).Return(int64(7), nil)

	info, err := svc.GetLikeInfo(ctx, 200, 1)

	assert.NoError(t, err)
	assert.True(t, info.Liked)
	assert.Equal(t, int64(7), info.Count)
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, isDuplicateError(&mysql.MySQLError{Number: 1062}))
	assert.True(t, isDuplicateError(gorm.ErrDuplicatedKey))
	assert.False(t, isDuplicateError(&mysql.MySQLError{Number: 1213}))
	assert.False(t, isDuplicateError(assert.AnError))
}
