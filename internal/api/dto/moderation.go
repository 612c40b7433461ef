package dto

// ModerationDecisionDTO 审核决定
type ModerationDecisionDTO struct {
	Action  string  `json:"action" binding:"required" validate:"oneof=approve reject request_changes"`
	Comment *string `json:"comment" validate:"omitempty,max=500"`
}

// ModerationRecordDTO 审核流水
type ModerationRecordDTO struct {
	ID          uint64  `json:"id"`
	PostID      uint64  `json:"post_id"`
	ModeratorID uint64  `json:"moderator_id"`
	Action      string  `json:"action"`
	Comment     *string `json:"comment,omitempty"`
	CreatedAt   string  `json:"created_at"`
}
