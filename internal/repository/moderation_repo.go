package repository

import (
	"Townsquare/internal/model"
	"context"

	"gorm.io/gorm"
)

type ModerationRepo interface {
	GetHistory(ctx context.Context, postID uint64) ([]*model.ModerationRecord, error)
}

type ModerationRepoImpl struct {
	db *gorm.DB
}

func NewModerationRepo(db *gorm.DB) ModerationRepo {
	return &ModerationRepoImpl{db: db}
}

// GetHistory 审核流水，按时间正序构成完整审计链
func (s *ModerationRepoImpl) GetHistory(ctx context.Context, postID uint64) ([]*model.ModerationRecord, error) {
	var records []*model.ModerationRecord
	err := s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&records).Error
	return records, err
}

