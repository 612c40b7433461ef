package model

import "time"

// 审核动作，对应 moderation_records.action
const (
	ModerationActionApprove        = "approve"
	ModerationActionReject         = "reject"
	ModerationActionRequestChanges = "request_changes"
)

// ModerationRecord 审核流水，只追加，不修改不删除
type ModerationRecord struct {
	ID          uint64  `gorm:"primaryKey"`
	PostID      uint64  `gorm:"not null;index:idx_post_id" json:"post_id"`
	ModeratorID uint64  `gorm:"not null" json:"moderator_id"`
	Action      string  `gorm:"type:varchar(20);not null" json:"action"`
	Comment     *string `gorm:"type:varchar(500)" json:"comment"`
	CreatedAt   time.Time
}

func (ModerationRecord) TableName() string {
	return "moderation_records"
}
