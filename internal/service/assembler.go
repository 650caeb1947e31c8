package service

import (
	"product-catalog/internal/apperror"
	"product-catalog/internal/domain"
)

// ProductDTOAssembler converts between ProductDTO trees and Product aggregates
type ProductDTOAssembler struct{}

// AssembleDomain builds a full aggregate. The nested category and stock are required.
func (ProductDTOAssembler) AssembleDomain(dto *ProductDTO) (*domain.Product, error) {
	if dto == nil {
		return nil, apperror.InvalidInput("product is required")
	}
	if dto.Category == nil {
		return nil, apperror.InvalidInput("product category is required")
	}
	if dto.Stock == nil {
		return nil, apperror.InvalidInput("product stock is required")
	}

	skeleton, err := ProductDTOToSkeleton(dto)
	if err != nil {
		return nil, err
	}
	category, err := CategoryDTOToDomain(dto.Category)
	if err != nil {
		return nil, err
	}
	stock, err := StockDTOToDomain(dto.Stock)
	if err != nil {
		return nil, err
	}

	return domain.RestoreProduct(skeleton.ID(), skeleton.Name(), skeleton.Price(), category, stock)
}

// AssembleDTO nests category and stock only when the product carries them
func (ProductDTOAssembler) AssembleDTO(product *domain.Product) (*ProductDTO, error) {
	dto, err := ProductDomainToDTO(product)
	if err != nil {
		return nil, err
	}

	if product.HasCategory() {
		if dto.Category, err = CategoryDomainToDTO(product.Category()); err != nil {
			return nil, err
		}
	}
	if product.HasStock() {
		if dto.Stock, err = StockDomainToDTO(product.Stock()); err != nil {
			return nil, err
		}
	}
	return dto, nil
}

func (ProductDTOAssembler) ToCategoryDTO(category *domain.Category) (*CategoryDTO, error) {
	return CategoryDomainToDTO(category)
}

func (a ProductDTOAssembler) ToCategoryDTOs(categories []*domain.Category) ([]*CategoryDTO, error) {
	dtos := make([]*CategoryDTO, 0, len(categories))
	for _, category := range categories {
		dto, err := a.ToCategoryDTO(category)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, dto)
	}
	return dtos, nil
}
