package service

import (
	"Townsquare/internal/api/dto"
	"Townsquare/internal/model"
	"Townsquare/internal/pkg/consts"
	"Townsquare/internal/pkg/redis"
	"Townsquare/internal/pkg/util"
	"Townsquare/internal/repository"
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

const (
	MaxTitleLen   = 100
	MaxContentLen = 2000
)

type PostService interface {
	CreatePost(ctx context.Context, userID uint64, req *dto.PostCreateDTO) (*dto.PostDTO, error)
	GetPost(ctx context.Context, postID uint64) (*dto.PostDTO, error)
	GetUserPosts(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.PostDTO, error)
}

type postServiceImpl struct {
	postRepo     repository.PostRepo
	userRepo     repository.UserRepo
	categoryRepo repository.CategoryRepo
	notifySvc    NotifyService
}

func NewPostService(postRepo repository.PostRepo, userRepo repository.UserRepo, categoryRepo repository.CategoryRepo, notifySvc NotifyService) PostService {
	return &postServiceImpl{
		postRepo:     postRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		notifySvc:    notifySvc,
	}
}

// CreatePost 投稿。校验失败不落任何数据；成功后帖子进入 Pending，
// 并向审核群播报一条（播报失败不影响投稿结果）。
func (s *postServiceImpl) CreatePost(ctx context.Context, userID uint64, req *dto.PostCreateDTO) (*dto.PostDTO, error) {
	if utf8.RuneCountInString(req.Title) == 0 || utf8.RuneCountInString(req.Title) > MaxTitleLen {
		return nil, ErrTitleTooLong
	}
	if utf8.RuneCountInString(req.Content) == 0 || utf8.RuneCountInString(req.Content) > MaxContentLen {
		return nil, ErrContentTooLong
	}
	if len(req.CategoryIDs) == 0 {
		return nil, ErrCategoryRequired
	}

	author, err := s.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	city := util.NormalizeCity(req.City)
	if city == "" && author.City != nil {
		city = *author.City
	}
	if city == "" {
		return nil, ErrCityNotSet
	}

	categories, err := s.categoryRepo.GetByIDs(ctx, req.CategoryIDs)
	if err != nil {
		return nil, err
	}
	active := make(map[uint64]model.Category, len(categories))
	for _, c := range categories {
		if c.IsActive {
			active[c.ID] = *c
		}
	}
	postCategories := make([]*model.PostCategory, 0, len(req.CategoryIDs))
	loaded := make([]model.Category, 0, len(req.CategoryIDs))
	for _, id := range req.CategoryIDs {
		c, ok := active[id]
		if !ok {
			return nil, ErrCategoryNotFound
		}
		postCategories = append(postCategories, &model.PostCategory{CategoryID: id})
		loaded = append(loaded, c)
	}

	now := time.Now()
	post := &model.Post{
		Title:     req.Title,
		Content:   req.Content,
		AuthorID:  userID,
		City:      city,
		MediaID:   req.MediaID,
		Status:    model.PostStatusPending,
		EventAt:   req.EventAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = s.postRepo.CreatePost(ctx, post, postCategories); err != nil {
		return nil, err
	}

	post.Author = *author
	post.Categories = loaded

	// 媒体已绑定到帖子，从待清理哈希中摘除
	if req.MediaID != nil && *req.MediaID != "" {
		go func(mediaID string) {
			_ = redis.HDel(context.Background(), consts.MediaPendingKey, mediaID)
		}(*req.MediaID)
	}

	go s.notifySvc.AnnounceToModeration(context.Background(), post)

	return toPostDTO(post), nil
}

func (s *postServiceImpl) GetPost(ctx context.Context, postID uint64) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return toPostDTO(post), nil
}

func (s *postServiceImpl) GetUserPosts(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.PostDTO, error) {
	posts, err := s.postRepo.GetUserPosts(ctx, userID, pageSize, page*pageSize)
	if err != nil {
		return nil, err
	}
	list := make([]*dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		list = append(list, toPostDTO(p))
	}
	return list, nil
}

func toPostDTO(post *model.Post) *dto.PostDTO {
	item := &dto.PostDTO{}
	_ = copier.Copy(item, post)

	item.Status = post.Status.String()
	item.Categories = make([]string, 0, len(post.Categories))
	for _, c := range post.Categories {
		item.Categories = append(item.Categories, c.Name)
	}
	item.CreatedAt = post.CreatedAt.Format("2006-01-02 15:04:05")
	if post.PublishedAt != nil {
		v := post.PublishedAt.Format("2006-01-02 15:04:05")
		item.PublishedAt = &v
	}
	if post.EventAt != nil {
		v := post.EventAt.Format("2006-01-02 15:04:05")
		item.EventAt = &v
	}
	if post.Author.ID > 0 {
		item.AuthorName = post.Author.DisplayName()
	}
	return item
}
