package repository

import (
	"Townsquare/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type PostActionRepo interface {
	CreateLike(ctx context.Context, like *model.Like) error
	DeleteLike(ctx context.Context, userID, postID uint64) (int64, error)
	CheckLikeExists(ctx context.Context, userID, postID uint64) (bool, error)
	GetLikeCountByPostID(ctx context.Context, postID uint64) (int64, error)
	GetLikedPosts(ctx context.Context, userID uint64, now time.Time, limit, offset int) ([]*model.Post, int64, error)
}

type PostActionRepoImpl struct {
	db *gorm.DB
}

func NewPostActionRepo(db *gorm.DB) PostActionRepo {
	return &PostActionRepoImpl{db}
}

func (s *PostActionRepoImpl) CreateLike(ctx context.Context, like *model.Like) error {
	return s.db.WithContext(ctx).Create(like).Error
}

func (s *PostActionRepoImpl) DeleteLike(ctx context.Context, userID, postID uint64) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.Like{})
	return res.RowsAffected, res.Error
}

func (s *PostActionRepoImpl) CheckLikeExists(ctx context.Context, userID, postID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (s *PostActionRepoImpl) GetLikeCountByPostID(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

// GetLikedPosts 收藏视图与信息流同一套新鲜度过滤和排序
func (s *PostActionRepoImpl) GetLikedPosts(ctx context.Context, userID uint64, now time.Time, limit, offset int) ([]*model.Post, int64, error) {
	base := s.db.WithContext(ctx).Model(&model.Post{}).
		Joins("JOIN likes ON likes.post_id = posts.id").
		Where("likes.user_id = ?", userID).
		Where("posts.status = ?", model.PostStatusPublished).
		Where("posts.event_at IS NULL OR posts.event_at > ?", now)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*model.Post
	err := base.Session(&gorm.Session{}).
		Preload("Author").Preload("Categories").
		Order("posts.published_at DESC, posts.id DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	return posts, total, err
}
