package service

import (
	"Townsquare/internal/api/dto"
	"Townsquare/internal/model"
	"Townsquare/internal/pkg/consts"
	"Townsquare/internal/repository"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type FeedService interface {
	GetFeed(ctx context.Context, userID uint64, page, pageSize int) (*dto.PostPageDTO, error)
	GetLikedFeed(ctx context.Context, userID uint64, page, pageSize int) (*dto.PostPageDTO, error)
}

type feedServiceImpl struct {
	userRepo   repository.UserRepo
	postRepo   repository.PostRepo
	actionRepo repository.PostActionRepo
	nowFn      func() time.Time
}

func NewFeedService(userRepo repository.UserRepo, postRepo repository.PostRepo, actionRepo repository.PostActionRepo) FeedService {
	return &feedServiceImpl{
		userRepo:   userRepo,
		postRepo:   postRepo,
		actionRepo: actionRepo,
		nowFn:      time.Now,
	}
}

// GetFeed 订阅流：读者所在城市 + 已订阅分类下的已发布且未过期帖子。
// 未设置城市或未订阅任何分类时返回空页，不报错。
func (s *feedServiceImpl) GetFeed(ctx context.Context, userID uint64, page, pageSize int) (*dto.PostPageDTO, error) {
	pageSize = clampPageSize(pageSize)
	if page < 0 {
		page = 0
	}

	user, err := s.userRepo.GetUserWithCategories(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.City == nil || *user.City == "" || len(user.Categories) == 0 {
		return &dto.PostPageDTO{List: []*dto.PostDTO{}, Total: 0}, nil
	}

	categoryIDs := make([]uint64, 0, len(user.Categories))
	for _, c := range user.Categories {
		categoryIDs = append(categoryIDs, c.ID)
	}

	posts, total, err := s.postRepo.GetFeedPosts(ctx, *user.City, categoryIDs, s.nowFn(), pageSize, page*pageSize)
	if err != nil {
		return nil, err
	}
	return toPostPage(posts, total), nil
}

// GetLikedFeed 读者点过赞且仍然可见的帖子，按发布时间倒序
func (s *feedServiceImpl) GetLikedFeed(ctx context.Context, userID uint64, page, pageSize int) (*dto.PostPageDTO, error) {
	pageSize = clampPageSize(pageSize)
	if page < 0 {
		page = 0
	}

	posts, total, err := s.actionRepo.GetLikedPosts(ctx, userID, s.nowFn(), pageSize, page*pageSize)
	if err != nil {
		return nil, err
	}
	return toPostPage(posts, total), nil
}

func clampPageSize(pageSize int) int {
	if pageSize <= 0 {
		return consts.DefaultPageSize
	}
	if pageSize > consts.MaxPageSize {
		return consts.MaxPageSize
	}
	return pageSize
}

func toPostPage(posts []*model.Post, total int64) *dto.PostPageDTO {
	list := make([]*dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		list = append(list, toPostDTO(p))
	}
	return &dto.PostPageDTO{List: list, Total: total}
}
