package service

import (
	"Townsquare/internal/api/dto"
	"Townsquare/internal/model"
	"Townsquare/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"

	"gorm.io/gorm"
)

// ModerationService 帖子生命周期引擎。
// 合法流转：
//
//	Pending --approve--> Published（通过即发布，一次审核动作）
//	Pending --reject--> Rejected
//	Pending --request_changes--> ChangesRequested
//	Published --expire--> Archived（仅由过期清扫触发，见 job 包）
//
// Rejected / ChangesRequested 为终态，修改后需重新投稿。
type ModerationService interface {
	Transition(ctx context.Context, postID uint64, action string, moderatorID uint64, comment *string) (*model.Post, error)
	GetQueue(ctx context.Context, page, pageSize int) ([]*dto.PostDTO, error)
	GetHistory(ctx context.Context, postID uint64) ([]*dto.ModerationRecordDTO, error)
}

type moderationServiceImpl struct {
	postRepo       repository.PostRepo
	moderationRepo repository.ModerationRepo
	notifySvc      NotifyService
}

func NewModerationService(postRepo repository.PostRepo, moderationRepo repository.ModerationRepo, notifySvc NotifyService) ModerationService {
	return &moderationServiceImpl{
		postRepo:       postRepo,
		moderationRepo: moderationRepo,
		notifySvc:      notifySvc,
	}
}

// Transition 执行一次审核决定。
// 状态变更和审核流水在同一事务内落库；WHERE 条件带上当前状态，
// 两个审核员抢同一帖时只有一个能成功，另一个得到 ErrInvalidTransition。
func (s *moderationServiceImpl) Transition(ctx context.Context, postID uint64, action string, moderatorID uint64, comment *string) (*model.Post, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	var target model.PostStatus
	switch action {
	case model.ModerationActionApprove:
		target = model.PostStatusPublished
	case model.ModerationActionReject:
		target = model.PostStatusRejected
	case model.ModerationActionRequestChanges:
		target = model.PostStatusChangesRequested
	default:
		return nil, ErrParamInvalid
	}

	if post.Status != model.PostStatusPending {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	var publishedAt *time.Time
	if target == model.PostStatusPublished {
		publishedAt = &now
	}
	record := &model.ModerationRecord{
		PostID:      postID,
		ModeratorID: moderatorID,
		Action:      action,
		Comment:     comment,
		CreatedAt:   now,
	}

	applied, err := s.postRepo.TransitionStatus(ctx, postID, model.PostStatusPending, target, publishedAt, record)
	if err != nil {
		return nil, err
	}
	if !applied {
		// 并发方先改了状态
		return nil, ErrInvalidTransition
	}

	post.Status = target
	post.PublishedAt = publishedAt
	post.UpdatedAt = now

	// 发布成功后触发一次订阅者扇出；投递结果只记日志，决不反向影响已落库的状态
	if target == model.PostStatusPublished {
		report, nErr := s.notifySvc.NotifyPublished(ctx, post)
		if nErr != nil {
			log.ErrorContext(ctx, "subscriber notification failed after publish", "post_id", post.ID, "err", nErr)
		} else {
			log.InfoContext(ctx, "post published", "post_id", post.ID,
				"delivered", report.Success, "failed", report.Failed)
		}
	}

	return post, nil
}

func (s *moderationServiceImpl) GetQueue(ctx context.Context, page, pageSize int) ([]*dto.PostDTO, error) {
	posts, err := s.postRepo.GetPendingPosts(ctx, pageSize, page*pageSize)
	if err != nil {
		return nil, err
	}
	list := make([]*dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		list = append(list, toPostDTO(p))
	}
	return list, nil
}

func (s *moderationServiceImpl) GetHistory(ctx context.Context, postID uint64) ([]*dto.ModerationRecordDTO, error) {
	if _, err := s.postRepo.GetPost(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	records, err := s.moderationRepo.GetHistory(ctx, postID)
	if err != nil {
		return nil, err
	}
	list := make([]*dto.ModerationRecordDTO, 0, len(records))
	for _, r := range records {
		list = append(list, &dto.ModerationRecordDTO{
			ID:          r.ID,
			PostID:      r.PostID,
			ModeratorID: r.ModeratorID,
			Action:      r.Action,
			Comment:     r.Comment,
			CreatedAt:   r.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return list, nil
}
