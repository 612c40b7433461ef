package service

import (
	"Townsquare/internal/api/dto"
	"Townsquare/internal/model"
	"Townsquare/internal/pkg/consts"
	"Townsquare/internal/pkg/redis"
	"Townsquare/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

type PostActionService interface {
	ToggleLike(ctx context.Context, userID, postID uint64) (*dto.LikeToggleDTO, error)
	GetLikeInfo(ctx context.Context, userID, postID uint64) (*dto.LikeInfoDTO, error)
}

type postActionServiceImpl struct {
	actionRepo repository.PostActionRepo
	postRepo   repository.PostRepo
}

func NewPostActionService(actionRepo repository.PostActionRepo, postRepo repository.PostRepo) PostActionService {
	return &postActionServiceImpl{
		actionRepo: actionRepo,
		postRepo:   postRepo,
	}
}

// ToggleLike 点赞开关。先尝试插入，撞到唯一键说明已点过，转为取消;
// 并发双击最终落在两个状态之一，不会产生重复记录。
func (s *postActionServiceImpl) ToggleLike(ctx context.Context, userID, postID uint64) (*dto.LikeToggleDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if post.Status != model.PostStatusPublished {
		return nil, ErrPostNotFound
	}

	state := "liked"
	err = s.actionRepo.CreateLike(ctx, &model.Like{
		UserID:    userID,
		PostID:    postID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		if !isDuplicateError(err) {
			return nil, err
		}
		affected, delErr := s.actionRepo.DeleteLike(ctx, userID, postID)
		if delErr != nil {
			return nil, delErr
		}
		// affected == 0 说明另一个并发请求已经取消，视作本次取消成功
		_ = affected
		state = "unliked"
	}

	count, err := s.refreshLikeCount(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &dto.LikeToggleDTO{State: state, Count: count}, nil
}

func (s *postActionServiceImpl) GetLikeInfo(ctx context.Context, userID, postID uint64) (*dto.LikeInfoDTO, error) {
	liked, err := s.actionRepo.CheckLikeExists(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s%d", consts.PostLikeKey, postID)
	if cached, cacheErr := redis.GetValue(ctx, key); cacheErr == nil {
		if count, parseErr := strconv.ParseInt(cached, 10, 64); parseErr == nil {
			return &dto.LikeInfoDTO{Liked: liked, Count: count}, nil
		}
	}

	count, err := s.refreshLikeCount(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &dto.LikeInfoDTO{Liked: liked, Count: count}, nil
}

func (s *postActionServiceImpl) refreshLikeCount(ctx context.Context, postID uint64) (int64, error) {
	count, err := s.actionRepo.GetLikeCountByPostID(ctx, postID)
	if err != nil {
		return 0, err
	}
	key := fmt.Sprintf("%s%d", consts.PostLikeKey, postID)
	if err = redis.SetWithExpiration(ctx, key, count, 10*time.Minute); err != nil {
		log.WarnContext(ctx, "缓存点赞数失败", "post_id", postID, "err", err)
	}
	return count, nil
}

func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
