package repository

import (
	"Townsquare/internal/model"
	"context"

	"gorm.io/gorm"
)

type CategoryRepo interface {
	ListActive(ctx context.Context) ([]*model.Category, error)
	GetByIDs(ctx context.Context, ids []uint64) ([]*model.Category, error)
	Create(ctx context.Context, category *model.Category) error
}

type CategoryRepoImpl struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) CategoryRepo {
	return &CategoryRepoImpl{db: db}
}

func (s *CategoryRepoImpl) ListActive(ctx context.Context) ([]*model.Category, error) {
	var categories []*model.Category
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&categories).Error
	return categories, err
}

func (s *CategoryRepoImpl) GetByIDs(ctx context.Context, ids []uint64) ([]*model.Category, error) {
	var categories []*model.Category
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error
	return categories, err
}

func (s *CategoryRepoImpl) Create(ctx context.Context, category *model.Category) error {
	return s.db.WithContext(ctx).Create(category).Error
}
