package repository

import (
	"database/sql"

	"product-catalog/internal/apperror"
	"product-catalog/internal/domain"
)

// CategoryRow mirrors a product_category record
type CategoryRow struct {
	ID           sql.NullInt64
	CategoryUUID sql.NullString
	Name         sql.NullString
}

// ProductRow mirrors a product record. CategoryID is the surrogate join key.
type ProductRow struct {
	ID          sql.NullInt64
	ProductUUID sql.NullString
	Name        sql.NullString
	Price       sql.NullInt64
	CategoryID  sql.NullInt64
}

// StockRow mirrors a product_stock record. ProductID is the surrogate join key.
type StockRow struct {
	ID        sql.NullInt64
	StockUUID sql.NullString
	Stock     sql.NullInt64
	ProductID sql.NullInt64
}

// CategoryRowToEntity rebuilds a Category from its row
func CategoryRowToEntity(row *CategoryRow) (*domain.Category, error) {
	if row == nil {
		return nil, apperror.Domain("category row is required")
	}
	if !row.CategoryUUID.Valid {
		return nil, apperror.Domain("category row has no category_uuid")
	}
	if !row.Name.Valid {
		return nil, apperror.Domain("category row has no name")
	}

	id, err := domain.CategoryIDFromString(row.CategoryUUID.String)
	if err != nil {
		return nil, err
	}
	name, err := domain.NewCategoryName(row.Name.String)
	if err != nil {
		return nil, err
	}
	return domain.RestoreCategory(id, name)
}

// CategoryEntityToRow leaves the surrogate id unset
func CategoryEntityToRow(category *domain.Category) (*CategoryRow, error) {
	if category == nil {
		return nil, apperror.Domain("category is required")
	}
	return &CategoryRow{
		CategoryUUID: validString(category.ID().String()),
		Name:         validString(category.Name().String()),
	}, nil
}

// ProductRowToSkeleton rebuilds the id, name and price of a product.
// Category and stock come from their own rows, see Assemble.
func ProductRowToSkeleton(row *ProductRow) (*domain.Product, error) {
	if row == nil {
		return nil, apperror.Domain("product row is required")
	}
	if !row.ProductUUID.Valid {
		return nil, apperror.Domain("product row has no product_uuid")
	}
	if !row.Name.Valid {
		return nil, apperror.Domain("product row has no name")
	}
	if !row.Price.Valid {
		return nil, apperror.Domain("product row has no price")
	}

	id, err := domain.ProductIDFromString(row.ProductUUID.String)
	if err != nil {
		return nil, err
	}
	name, err := domain.NewProductName(row.Name.String)
	if err != nil {
		return nil, err
	}
	price, err := domain.NewProductPrice(int(row.Price.Int64))
	if err != nil {
		return nil, err
	}
	return domain.RestoreProductSkeleton(id, name, price)
}

// ProductEntityToRow leaves the surrogate id and category_id unset
func ProductEntityToRow(product *domain.Product) (*ProductRow, error) {
	if product == nil {
		return nil, apperror.Domain("product is required")
	}
	return &ProductRow{
		ProductUUID: validString(product.ID().String()),
		Name:        validString(product.Name().String()),
		Price:       validInt(product.Price().Value()),
	}, nil
}

// StockRowToEntity rebuilds a Stock from its row
func StockRowToEntity(row *StockRow) (*domain.Stock, error) {
	if row == nil {
		return nil, apperror.Domain("stock row is required")
	}
	if !row.StockUUID.Valid {
		return nil, apperror.Domain("stock row has no stock_uuid")
	}
	if !row.Stock.Valid {
		return nil, apperror.Domain("stock row has no stock")
	}

	id, err := domain.StockIDFromString(row.StockUUID.String)
	if err != nil {
		return nil, err
	}
	quantity, err := domain.NewStockQuantity(int(row.Stock.Int64))
	if err != nil {
		return nil, err
	}
	return domain.RestoreStock(id, quantity)
}

// StockEntityToRow leaves the surrogate id and product_id unset
func StockEntityToRow(stock *domain.Stock) (*StockRow, error) {
	if stock == nil {
		return nil, apperror.Domain("stock is required")
	}
	return &StockRow{
		StockUUID: validString(stock.ID().String()),
		Stock:     validInt(stock.Quantity().Value()),
	}, nil
}

func validString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func validInt(n int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n), Valid: true}
}
