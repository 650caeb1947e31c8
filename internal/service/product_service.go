package service

import (
	"context"

	"product-catalog/internal/apperror"
	"product-catalog/internal/domain"
	"product-catalog/internal/repository"
)

// ProductService defines the interface for product business logic
type ProductService interface {
	EnsureNameIsFree(ctx context.Context, name domain.ProductName) error
	GetProductByID(ctx context.Context, id domain.ProductID) (*domain.Product, error)
	GetProductByName(ctx context.Context, name domain.ProductName) (*domain.Product, error)
	AddProduct(ctx context.Context, product *domain.Product) error
}

type productService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new instance of ProductService
func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

// EnsureNameIsFree fails with a conflict error when the name is already in use
func (s *productService) EnsureNameIsFree(ctx context.Context, name domain.ProductName) error {
	exists, err := s.productRepo.ExistsByName(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return repository.DuplicateNameError(name)
	}
	return nil
}

func (s *productService) GetProductByID(ctx context.Context, id domain.ProductID) (*domain.Product, error) {
	product, ok, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NotFound("product id:[%s] does not exist", id)
	}
	return product, nil
}

func (s *productService) GetProductByName(ctx context.Context, name domain.ProductName) (*domain.Product, error) {
	product, ok, err := s.productRepo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NotFound("product name:[%s] does not exist", name)
	}
	return product, nil
}

func (s *productService) AddProduct(ctx context.Context, product *domain.Product) error {
	return s.productRepo.Create(ctx, product)
}
