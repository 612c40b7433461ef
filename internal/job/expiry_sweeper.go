package job

import (
	"Townsquare/internal/api/dto"
	"Townsquare/internal/model"
	"Townsquare/internal/pkg/consts"
	"Townsquare/internal/pkg/logger"
	"Townsquare/internal/pkg/redis"
	"Townsquare/internal/repository"
	"Townsquare/internal/service"
	"context"
	log "log/slog"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

// ExpirySweeper 周期性把活动时刻已过的已发布帖子归档。
// 归档同样走带状态条件的更新，多实例部署时同一帖子只会被归档一次。
type ExpirySweeper struct {
	postRepo  repository.PostRepo
	notifySvc service.NotifyService

	interval time.Duration
	backoff  time.Duration
	nowFn    func() time.Time
}

func NewExpirySweeper(postRepo repository.PostRepo, notifySvc service.NotifyService, interval, backoff time.Duration) *ExpirySweeper {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	if backoff <= 0 {
		backoff = 30 * time.Minute
	}
	return &ExpirySweeper{
		postRepo:  postRepo,
		notifySvc: notifySvc,
		interval:  interval,
		backoff:   backoff,
		nowFn:     time.Now,
	}
}

// Start 跑扫描循环直到 ctx 取消。一轮失败后按退避间隔重试，
// 避免数据库抖动时打出密集错误。
func (s *ExpirySweeper) Start(ctx context.Context) {
	log.Info("expiry sweeper started", "interval", s.interval, "backoff", s.backoff)

	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("expiry sweeper stopped")
			return
		case <-timer.C:
		}

		next := s.interval
		if _, err := s.Sweep(ctx); err != nil {
			log.Error("sweep round failed", "err", err)
			next = s.backoff
		}
		timer.Reset(next)
	}
}

// Sweep 执行一轮扫描，返回本轮归档的帖子数
func (s *ExpirySweeper) Sweep(ctx context.Context) (int, error) {
	traceID := "job-sweep-" + uuid.NewString()
	ctx = context.WithValue(ctx, logger.TraceIDKey, traceID)

	now := s.nowFn()
	expired, err := s.postRepo.GetExpiredPosts(ctx, now)
	if err != nil {
		return 0, err
	}
	if len(expired) == 0 {
		return 0, nil
	}

	archived := 0
	for _, post := range expired {
		applied, err := s.postRepo.TransitionStatus(ctx, post.ID,
			model.PostStatusPublished, model.PostStatusArchived, nil, nil)
		if err != nil {
			log.ErrorContext(ctx, "failed to archive expired post", "post_id", post.ID, "err", err)
			continue
		}
		if !applied {
			// 其他实例已经处理过这一条
			continue
		}
		archived++
		log.InfoContext(ctx, "post archived", "post_id", post.ID, "event_at", post.EventAt)

		s.releaseMedia(ctx, post)
		s.notifySvc.NotifyAuthorArchived(ctx, post)
	}

	if archived > 0 {
		log.InfoContext(ctx, "sweep round finished", "scanned", len(expired), "archived", archived)
	}
	return archived, nil
}

// releaseMedia 归档后把媒体引用重新挂回待清理哈希，统一交给清理任务回收
func (s *ExpirySweeper) releaseMedia(ctx context.Context, post *model.Post) {
	if post.MediaID == nil || *post.MediaID == "" {
		return
	}
	meta, err := json.Marshal(dto.MediaPendingMeta{CreatedAt: 0})
	if err != nil {
		return
	}
	if err = redis.HSet(ctx, consts.MediaPendingKey, *post.MediaID, string(meta)); err != nil {
		log.WarnContext(ctx, "failed to queue media for cleanup", "post_id", post.ID, "err", err)
	}
}
