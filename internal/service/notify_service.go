package service

import (
	"Townsquare/internal/api/config"
	"Townsquare/internal/model"
	"Townsquare/internal/pkg/storage"
	"Townsquare/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// DeliveryChannel 出站消息通道，由 Telegram 客户端实现
type DeliveryChannel interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendPhoto(ctx context.Context, chatID int64, photoURL, caption string) error
}

// DeliveryReport 扇出结果，只聚合计数，不携带单个接收者的错误
type DeliveryReport struct {
	Success int
	Failed  int
}

type NotifyService interface {
	// NotifyPublished 向同城且分类有交集的订阅者扇出通知，作者除外。
	// 单个接收者投递失败只计数，不中断其他投递，也不回滚帖子状态。
	NotifyPublished(ctx context.Context, post *model.Post) (*DeliveryReport, error)
	// AnnounceToModeration 新帖进入审核队列时通知审核群，尽力而为
	AnnounceToModeration(ctx context.Context, post *model.Post)
	// NotifyAuthorArchived 帖子过期归档后告知作者，尽力而为
	NotifyAuthorArchived(ctx context.Context, post *model.Post)
}

type notifyServiceImpl struct {
	userRepo repository.UserRepo
	channel  DeliveryChannel
	storage  storage.FileStorage

	workers          int
	deliveryTimeout  time.Duration
	moderationChatID int64
}

func NewNotifyService(userRepo repository.UserRepo, channel DeliveryChannel, fileStorage storage.FileStorage, cfg config.Config) NotifyService {
	workers := cfg.Notify.Workers
	if workers <= 0 {
		workers = 8
	}
	timeout := time.Duration(cfg.Notify.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &notifyServiceImpl{
		userRepo:         userRepo,
		channel:          channel,
		storage:          fileStorage,
		workers:          workers,
		deliveryTimeout:  timeout,
		moderationChatID: cfg.Telegram.ModerationChatID,
	}
}

func (s *notifyServiceImpl) NotifyPublished(ctx context.Context, post *model.Post) (*DeliveryReport, error) {
	if len(post.Categories) == 0 {
		log.WarnContext(ctx, "post has no categories loaded, skip notification", "post_id", post.ID)
		return &DeliveryReport{}, nil
	}

	categoryIDs := make([]uint64, 0, len(post.Categories))
	for _, c := range post.Categories {
		categoryIDs = append(categoryIDs, c.ID)
	}

	recipients, err := s.userRepo.GetSubscribers(ctx, post.City, categoryIDs, post.AuthorID)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		log.InfoContext(ctx, "no subscribers matched", "post_id", post.ID, "city", post.City)
		return &DeliveryReport{}, nil
	}

	text := renderPostNotification(post)
	mediaURL := s.resolveMedia(ctx, post)

	var success, failed atomic.Int64
	g := new(errgroup.Group)
	g.SetLimit(s.workers)

	for _, recipient := range recipients {
		chatID := int64(recipient.ID)
		g.Go(func() error {
			deliverCtx, cancel := context.WithTimeout(ctx, s.deliveryTimeout)
			defer cancel()

			if err := s.deliver(deliverCtx, chatID, text, mediaURL); err != nil {
				failed.Add(1)
				log.WarnContext(ctx, "notification delivery failed", "post_id", post.ID, "recipient", chatID, "err", err)
				return nil
			}
			success.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	report := &DeliveryReport{Success: int(success.Load()), Failed: int(failed.Load())}
	log.InfoContext(ctx, "notification fan-out finished",
		"post_id", post.ID, "recipients", len(recipients),
		"success", report.Success, "failed", report.Failed)
	return report, nil
}

func (s *notifyServiceImpl) AnnounceToModeration(ctx context.Context, post *model.Post) {
	if s.moderationChatID == 0 {
		log.WarnContext(ctx, "moderation chat id is not configured, skip announcement", "post_id", post.ID)
		return
	}
	text := renderModerationAnnouncement(post)
	mediaURL := s.resolveMedia(ctx, post)

	announceCtx, cancel := context.WithTimeout(ctx, s.deliveryTimeout)
	defer cancel()
	if err := s.deliver(announceCtx, s.moderationChatID, text, mediaURL); err != nil {
		log.ErrorContext(ctx, "failed to announce post to moderation chat", "post_id", post.ID, "err", err)
	}
}

func (s *notifyServiceImpl) NotifyAuthorArchived(ctx context.Context, post *model.Post) {
	text := fmt.Sprintf("🗑️ 你的帖子《%s》对应的活动已结束，已自动归档。", post.Title)

	notifyCtx, cancel := context.WithTimeout(ctx, s.deliveryTimeout)
	defer cancel()
	if err := s.channel.SendMessage(notifyCtx, int64(post.AuthorID), text); err != nil {
		log.WarnContext(ctx, "failed to notify author about archival", "post_id", post.ID, "author", post.AuthorID, "err", err)
	}
}

// resolveMedia 把不透明媒体引用换成可投递的 URL；失效引用降级为纯文本
func (s *notifyServiceImpl) resolveMedia(ctx context.Context, post *model.Post) string {
	if post.MediaID == nil || *post.MediaID == "" {
		return ""
	}
	url, err := s.storage.Resolve(ctx, *post.MediaID)
	if err != nil {
		if errors.Is(err, storage.ErrMediaNotFound) {
			log.WarnContext(ctx, "media reference is stale, falling back to text", "post_id", post.ID, "media_id", *post.MediaID)
		} else {
			log.ErrorContext(ctx, "failed to resolve media", "post_id", post.ID, "media_id", *post.MediaID, "err", err)
		}
		return ""
	}
	return url
}

func (s *notifyServiceImpl) deliver(ctx context.Context, chatID int64, text, mediaURL string) error {
	if mediaURL != "" {
		return s.channel.SendPhoto(ctx, chatID, mediaURL, text)
	}
	return s.channel.SendMessage(ctx, chatID, text)
}

func renderPostNotification(post *model.Post) string {
	names := make([]string, 0, len(post.Categories))
	for _, c := range post.Categories {
		names = append(names, c.Name)
	}

	eventStr := "长期有效"
	if post.EventAt != nil {
		eventStr = post.EventAt.Format("2006-01-02 15:04")
	}

	return fmt.Sprintf(
		"📬 新活动 · %s\n\n%s\n\n%s\n\n👤 作者：%s\n📅 有效期至：%s",
		strings.Join(names, "、"),
		post.Title,
		post.Content,
		post.Author.DisplayName(),
		eventStr,
	)
}

func renderModerationAnnouncement(post *model.Post) string {
	names := make([]string, 0, len(post.Categories))
	for _, c := range post.Categories {
		names = append(names, c.Name)
	}

	eventStr := "长期有效"
	if post.EventAt != nil {
		eventStr = post.EventAt.Format("2006-01-02 15:04")
	}

	return fmt.Sprintf(
		"📬 新帖待审核 #%d\n📝 标题：%s\n👤 作者：%s\n🏙️ 城市：%s\n🏷️ 分类：%s\n📅 活动时间：%s",
		post.ID,
		post.Title,
		post.Author.DisplayName(),
		post.City,
		strings.Join(names, "、"),
		eventStr,
	)
}
