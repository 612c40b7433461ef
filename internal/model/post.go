package model

import (
	"time"
)

// PostStatus 帖子生命周期状态，闭合枚举
type PostStatus int8

const (
	PostStatusPending          PostStatus = 0 // 待审核
	PostStatusApproved         PostStatus = 1 // 已通过（瞬态：通过即发布）
	PostStatusPublished        PostStatus = 2 // 已发布
	PostStatusRejected         PostStatus = 3 // 已拒绝
	PostStatusChangesRequested PostStatus = 4 // 需修改
	PostStatusArchived         PostStatus = 5 // 已归档
)

func (s PostStatus) String() string {
	switch s {
	case PostStatusPending:
		return "pending"
	case PostStatusApproved:
		return "approved"
	case PostStatusPublished:
		return "published"
	case PostStatusRejected:
		return "rejected"
	case PostStatusChangesRequested:
		return "changes_requested"
	case PostStatusArchived:
		return "archived"
	}
	return "unknown"
}

type Post struct {
	ID          uint64     `gorm:"primaryKey"`
	Title       string     `gorm:"type:varchar(100);not null" json:"title"`
	Content     string     `gorm:"type:varchar(2000);not null" json:"content"`
	AuthorID    uint64     `gorm:"not null;index:idx_author_id" json:"author_id"`
	City        string     `gorm:"type:varchar(100);not null;index:idx_city" json:"city"`
	MediaID     *string    `gorm:"type:varchar(255)" json:"media_id"`
	Status      PostStatus `gorm:"type:tinyint;not null;default:0;index:idx_status" json:"status"`
	PublishedAt *time.Time `json:"published_at"`
	EventAt     *time.Time `json:"event_at"` // 事件时刻，过期后帖子不再进入信息流
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// 关联关系
	Author     User       `gorm:"foreignKey:AuthorID;references:ID"`
	Categories []Category `gorm:"many2many:post_categories"`
}

func (Post) TableName() string {
	return "posts"
}

