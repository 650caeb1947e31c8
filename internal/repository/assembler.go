package repository

import (
	"product-catalog/internal/apperror"
	"product-catalog/internal/domain"
)

// Assemble builds a full Product aggregate from the three joined rows
func Assemble(productRow *ProductRow, categoryRow *CategoryRow, stockRow *StockRow) (*domain.Product, error) {
	if productRow == nil || categoryRow == nil || stockRow == nil {
		return nil, apperror.Domain("product, category and stock rows are required")
	}
	if productRow.ID.Valid && stockRow.ProductID.Valid && productRow.ID.Int64 != stockRow.ProductID.Int64 {
		return nil, apperror.Domain("stock row belongs to product %d, not %d", stockRow.ProductID.Int64, productRow.ID.Int64)
	}
	if productRow.CategoryID.Valid && categoryRow.ID.Valid && productRow.CategoryID.Int64 != categoryRow.ID.Int64 {
		return nil, apperror.Domain("product row references category %d, not %d", productRow.CategoryID.Int64, categoryRow.ID.Int64)
	}

	skeleton, err := ProductRowToSkeleton(productRow)
	if err != nil {
		return nil, err
	}
	category, err := CategoryRowToEntity(categoryRow)
	if err != nil {
		return nil, err
	}
	stock, err := StockRowToEntity(stockRow)
	if err != nil {
		return nil, err
	}

	return domain.RestoreProduct(skeleton.ID(), skeleton.Name(), skeleton.Price(), category, stock)
}

// ExtractCategoryUUID returns the canonical id of the category attached to product
func ExtractCategoryUUID(product *domain.Product) (string, error) {
	if product == nil {
		return "", apperror.Domain("product is required")
	}
	if !product.HasCategory() {
		return "", apperror.Domain("product %s has no category attached", product.ID())
	}
	return product.Category().ID().String(), nil
}
