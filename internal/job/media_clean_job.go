package job

import (
	"Townsquare/internal/api/dto"
	"Townsquare/internal/pkg/consts"
	"Townsquare/internal/pkg/redis"
	"Townsquare/internal/pkg/storage"
	"context"
	log "log/slog"
	"time"

	json "github.com/goccy/go-json"
)

// MediaCleanupJob 清理上传后一直没有绑定到帖子的媒体文件
type MediaCleanupJob struct {
	storage storage.FileStorage
}

func NewMediaCleanupJob(fileStorage storage.FileStorage) *MediaCleanupJob {
	return &MediaCleanupJob{storage: fileStorage}
}

func (s *MediaCleanupJob) Run() {
	ctx := context.Background()
	log.Info("start media cleanup job")

	pending, err := redis.HGetAll(ctx, consts.MediaPendingKey)
	if err != nil {
		log.Error("failed to get pending media hash", "err", err)
		return
	}

	now := time.Now().Unix()
	expiration := int64(24 * 60 * 60)
	count := 0

	for mediaID, val := range pending {
		var meta dto.MediaPendingMeta
		if err := json.Unmarshal([]byte(val), &meta); err != nil {
			log.Warn("invalid media meta format", "mediaID", mediaID)
			continue
		}

		if now-meta.CreatedAt > expiration {
			if err = s.storage.Delete(ctx, mediaID); err != nil {
				log.Error("failed to delete orphan media file", "mediaID", mediaID, "err", err)
				continue
			}

			if err = redis.HDel(ctx, consts.MediaPendingKey, mediaID); err != nil {
				log.Error("failed to remove media token from redis", "mediaID", mediaID, "err", err)
			}

			count++
			log.Info("cleanup orphan media resource", "mediaID", mediaID, "mime", meta.ContentType)
		}
	}

	if count > 0 {
		log.Info("media cleanup job finished", "cleaned_count", count)
	}
}
