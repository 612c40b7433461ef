package repository

import (
	"Townsquare/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post, categories []*model.PostCategory) error
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	GetUserPosts(ctx context.Context, authorID uint64, limit, offset int) ([]*model.Post, error)
	GetPendingPosts(ctx context.Context, limit, offset int) ([]*model.Post, error)
	TransitionStatus(ctx context.Context, postID uint64, from, to model.PostStatus, publishedAt *time.Time, record *model.ModerationRecord) (bool, error)
	GetFeedPosts(ctx context.Context, city string, categoryIDs []uint64, now time.Time, limit, offset int) ([]*model.Post, int64, error)
	GetExpiredPosts(ctx context.Context, now time.Time) ([]*model.Post, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) PostRepo {
	return &PostRepoImpl{db: db}
}

func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post, categories []*model.PostCategory) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		for _, pc := range categories {
			pc.PostID = post.ID
		}
		return tx.Create(categories).Error
	})
}

func (s *PostRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).Preload("Author").Preload("Categories").First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostRepoImpl) GetUserPosts(ctx context.Context, authorID uint64, limit, offset int) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).Preload("Categories").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	return posts, err
}

// GetPendingPosts 审核队列，先进先出
func (s *PostRepoImpl) GetPendingPosts(ctx context.Context, limit, offset int) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).Preload("Author").Preload("Categories").
		Where("status = ?", model.PostStatusPending).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	return posts, err
}

// TransitionStatus 状态流转的原子 check-and-set。
// WHERE 带上当前状态，并发方只有一个能改成功；record 非空时与状态变更同事务落库。
// 返回 false 表示帖子不存在或当前状态已不是 from。
func (s *PostRepoImpl) TransitionStatus(ctx context.Context, postID uint64, from, to model.PostStatus, publishedAt *time.Time, record *model.ModerationRecord) (bool, error) {
	applied := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		}
		if publishedAt != nil {
			updates["published_at"] = *publishedAt
		}
		res := tx.Model(&model.Post{}).
			Where("id = ? AND status = ?", postID, from).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		applied = true
		if record == nil {
			return nil
		}
		return tx.Create(record).Error
	})
	return applied, err
}

// GetFeedPosts 信息流：同城、分类有交集、已发布、事件时刻未过。
// 新鲜度在读取时按传入的 now 判定，不落库。
func (s *PostRepoImpl) GetFeedPosts(ctx context.Context, city string, categoryIDs []uint64, now time.Time, limit, offset int) ([]*model.Post, int64, error) {
	base := s.db.WithContext(ctx).Model(&model.Post{}).
		Joins("JOIN post_categories ON post_categories.post_id = posts.id").
		Where("posts.city = ?", city).
		Where("post_categories.category_id IN ?", categoryIDs).
		Where("posts.status = ?", model.PostStatusPublished).
		Where("posts.event_at IS NULL OR posts.event_at > ?", now).
		Distinct("posts.id")

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ids []uint64
	err := base.Session(&gorm.Session{}).
		Order("posts.published_at DESC, posts.id DESC").
		Limit(limit).Offset(offset).
		Pluck("posts.id", &ids).Error
	if err != nil {
		return nil, 0, err
	}
	if len(ids) == 0 {
		return []*model.Post{}, total, nil
	}

	var posts []*model.Post
	err = s.db.WithContext(ctx).Preload("Author").Preload("Categories").
		Where("id IN ?", ids).
		Order("published_at DESC, id DESC").
		Find(&posts).Error
	return posts, total, err
}

func (s *PostRepoImpl) GetExpiredPosts(ctx context.Context, now time.Time) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).
		Where("status = ?", model.PostStatusPublished).
		Where("event_at IS NOT NULL AND event_at <= ?", now).
		Find(&posts).Error
	return posts, err
}
