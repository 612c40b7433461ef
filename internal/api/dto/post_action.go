package dto

// LikeToggleDTO 点赞开关结果
type LikeToggleDTO struct {
	State string `json:"state"` // liked / unliked
	Count int64  `json:"count"`
}

// LikeInfoDTO 点赞只读状态
type LikeInfoDTO struct {
	Liked bool  `json:"liked"`
	Count int64 `json:"count"`
}
