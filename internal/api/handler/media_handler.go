package handler

import (
	"Townsquare/internal/api/dto"
	"Townsquare/internal/pkg/consts"
	"Townsquare/internal/pkg/redis"
	"Townsquare/internal/pkg/response"
	"Townsquare/internal/pkg/storage"
	"Townsquare/internal/pkg/util"
	"Townsquare/internal/service"
	log "log/slog"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type MediaHandler struct {
	storage storage.FileStorage
}

func NewMediaHandler(fileStorage storage.FileStorage) *MediaHandler {
	return &MediaHandler{storage: fileStorage}
}

// Upload 上传图片，返回不透明的 media_id。
// 上传后 24 小时内没有绑定到帖子的文件由清理任务回收。
func (s *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	contentType, err := util.GetSafeContentType(reader)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		response.Error(c, service.ErrFileNotSupported)
		return
	}

	ext := path.Ext(file.Filename)
	mediaID, err := s.storage.Save(c.Request.Context(), reader, file.Size, contentType, ext)
	if err != nil {
		log.ErrorContext(c.Request.Context(), "media upload failed", "err", err)
		response.Error(c, service.ErrStorageFailure)
		return
	}

	meta, _ := json.Marshal(dto.MediaPendingMeta{
		ContentType: contentType,
		CreatedAt:   time.Now().Unix(),
	})
	if err = redis.HSet(c.Request.Context(), consts.MediaPendingKey, mediaID, string(meta)); err != nil {
		log.WarnContext(c.Request.Context(), "failed to track pending media", "mediaID", mediaID, "err", err)
	}

	response.Success(c, dto.MediaUploadDTO{MediaID: mediaID})
}
