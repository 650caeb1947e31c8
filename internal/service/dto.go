package service

import (
	"strings"

	"product-catalog/internal/apperror"
	"product-catalog/internal/domain"
)

// CategoryDTO is the wire form of a category
type CategoryDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StockDTO is the wire form of a stock
type StockDTO struct {
	ID       string `json:"id"`
	Quantity *int   `json:"quantity"`
}

// ProductDTO is the wire form of a product with its nested category and stock
type ProductDTO struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Price    *int         `json:"price"`
	Category *CategoryDTO `json:"category,omitempty"`
	Stock    *StockDTO    `json:"stock,omitempty"`
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func intPtr(n int) *int {
	return &n
}

// CategoryDTOToDomain restores the category when the DTO has an id, creates one otherwise
func CategoryDTOToDomain(dto *CategoryDTO) (*domain.Category, error) {
	if dto == nil {
		return nil, apperror.InvalidInput("category is required")
	}
	if isBlank(dto.Name) {
		return nil, apperror.InvalidInput("category name is required")
	}

	name, err := domain.NewCategoryName(dto.Name)
	if err != nil {
		return nil, err
	}
	if isBlank(dto.ID) {
		return domain.NewCategory(name)
	}

	id, err := domain.CategoryIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}
	return domain.RestoreCategory(id, name)
}

func CategoryDomainToDTO(category *domain.Category) (*CategoryDTO, error) {
	if category == nil {
		return nil, apperror.InvalidInput("category is required")
	}
	return &CategoryDTO{
		ID:   category.ID().String(),
		Name: category.Name().String(),
	}, nil
}

// StockDTOToDomain restores the stock when the DTO has an id, creates one otherwise
func StockDTOToDomain(dto *StockDTO) (*domain.Stock, error) {
	if dto == nil {
		return nil, apperror.InvalidInput("stock is required")
	}
	if dto.Quantity == nil {
		return nil, apperror.InvalidInput("stock quantity is required")
	}

	quantity, err := domain.NewStockQuantity(*dto.Quantity)
	if err != nil {
		return nil, err
	}
	if isBlank(dto.ID) {
		return domain.NewStock(quantity)
	}

	id, err := domain.StockIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}
	return domain.RestoreStock(id, quantity)
}

func StockDomainToDTO(stock *domain.Stock) (*StockDTO, error) {
	if stock == nil {
		return nil, apperror.InvalidInput("stock is required")
	}
	return &StockDTO{
		ID:       stock.ID().String(),
		Quantity: intPtr(stock.Quantity().Value()),
	}, nil
}

// ProductDTOToSkeleton maps id, name and price only. A blank id yields a new product id.
func ProductDTOToSkeleton(dto *ProductDTO) (*domain.Product, error) {
	if dto == nil {
		return nil, apperror.InvalidInput("product is required")
	}
	if isBlank(dto.Name) {
		return nil, apperror.InvalidInput("product name is required")
	}
	if dto.Price == nil {
		return nil, apperror.InvalidInput("product price is required")
	}

	name, err := domain.NewProductName(dto.Name)
	if err != nil {
		return nil, err
	}
	price, err := domain.NewProductPrice(*dto.Price)
	if err != nil {
		return nil, err
	}

	id := domain.NewProductID()
	if !isBlank(dto.ID) {
		if id, err = domain.ProductIDFromString(dto.ID); err != nil {
			return nil, err
		}
	}
	return domain.RestoreProductSkeleton(id, name, price)
}

// ProductDomainToDTO maps id, name and price; nested members are left to AssembleDTO
func ProductDomainToDTO(product *domain.Product) (*ProductDTO, error) {
	if product == nil {
		return nil, apperror.InvalidInput("product is required")
	}
	return &ProductDTO{
		ID:    product.ID().String(),
		Name:  product.Name().String(),
		Price: intPtr(product.Price().Value()),
	}, nil
}
