package model

import (
	"time"
)

// User ID 由上游聊天网关签发，不自增
type User struct {
	ID        uint64  `gorm:"primaryKey;autoIncrement:false"`
	Username  *string `gorm:"type:varchar(100)"`
	FirstName *string `gorm:"type:varchar(100)"`
	City      *string `gorm:"type:varchar(100);index:idx_city"` // 已归一化：小写、去首尾空格
	IsActive  bool    `gorm:"type:tinyint(1);not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Categories []Category `gorm:"many2many:user_categories"`
}

func (User) TableName() string {
	return "users"
}

// DisplayName 通知文案里的作者展示名
func (u *User) DisplayName() string {
	if u.FirstName != nil && *u.FirstName != "" {
		return *u.FirstName
	}
	if u.Username != nil && *u.Username != "" {
		return *u.Username
	}
	return "匿名用户"
}
