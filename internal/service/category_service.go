package service

import (
	"context"

	"product-catalog/internal/apperror"
	"product-catalog/internal/domain"
	"product-catalog/internal/repository"
)

// CategoryService defines the interface for category lookups
type CategoryService interface {
	GetCategories(ctx context.Context) ([]*domain.Category, error)
	GetCategoryByID(ctx context.Context, id domain.CategoryID) (*domain.Category, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) GetCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categoryRepo.FindAll(ctx)
}

// GetCategoryByID fails with a not-found error when no category has this id
func (s *categoryService) GetCategoryByID(ctx context.Context, id domain.CategoryID) (*domain.Category, error) {
	category, ok, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NotFound("category id:[%s] does not exist", id)
	}
	return category, nil
}
