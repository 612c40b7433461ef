package consts

const (
	PostLikeKey     = "post:like:"
	MediaPendingKey = "media:pending"
)
