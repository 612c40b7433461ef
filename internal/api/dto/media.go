package dto

// MediaUploadDTO 上传结果，media_id 为不透明引用
type MediaUploadDTO struct {
	MediaID string `json:"media_id"`
}

// MediaPendingMeta 挂在 redis 哈希上的待绑定媒体元数据
type MediaPendingMeta struct {
	ContentType string `json:"content_type"`
	CreatedAt   int64  `json:"created_at"`
}
