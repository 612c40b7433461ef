package service

import (
	"Townsquare/internal/api/dto"
	"Townsquare/internal/repository"
	"context"
)

type CategoryService interface {
	ListCategories(ctx context.Context) ([]*dto.CategoryDTO, error)
}

type categoryServiceImpl struct {
	categoryRepo repository.CategoryRepo
}

func NewCategoryService(categoryRepo repository.CategoryRepo) CategoryService {
	return &categoryServiceImpl{categoryRepo: categoryRepo}
}

func (s *categoryServiceImpl) ListCategories(ctx context.Context) ([]*dto.CategoryDTO, error) {
	categories, err := s.categoryRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]*dto.CategoryDTO, 0, len(categories))
	for _, c := range categories {
		list = append(list, &dto.CategoryDTO{ID: c.ID, Name: c.Name, Description: c.Description})
	}
	return list, nil
}
