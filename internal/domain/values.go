package domain

import (
	"strings"
	"unicode/utf8"

	"product-catalog/internal/apperror"
)

const (
	CategoryNameMaxLength = 20
	ProductNameMaxLength  = 30

	ProductPriceMin = 50
	ProductPriceMax = 10000

	StockQuantityMin = 0
	StockQuantityMax = 100
)

// trimmedName applies the shared name rule: trim, non-empty, bounded rune length
func trimmedName(label, raw string, maxLength int) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", apperror.Domain("%s must not be empty", label)
	}
	if utf8.RuneCountInString(trimmed) > maxLength {
		return "", apperror.Domain("%s must be at most %d characters: %s", label, maxLength, trimmed)
	}
	return trimmed, nil
}

// CategoryName is a trimmed category name of at most 20 characters
type CategoryName struct {
	value string
}

func NewCategoryName(raw string) (CategoryName, error) {
	v, err := trimmedName("category name", raw, CategoryNameMaxLength)
	if err != nil {
		return CategoryName{}, err
	}
	return CategoryName{value: v}, nil
}

func (n CategoryName) String() string                 { return n.value }
func (n CategoryName) IsZero() bool                   { return n.value == "" }
func (n CategoryName) Equals(other CategoryName) bool { return n.value == other.value }

// ProductName is a trimmed product name of at most 30 characters
type ProductName struct {
	value string
}

func NewProductName(raw string) (ProductName, error) {
	v, err := trimmedName("product name", raw, ProductNameMaxLength)
	if err != nil {
		return ProductName{}, err
	}
	return ProductName{value: v}, nil
}

func (n ProductName) String() string                { return n.value }
func (n ProductName) IsZero() bool                  { return n.value == "" }
func (n ProductName) Equals(other ProductName) bool { return n.value == other.value }

// ProductPrice is a unit price between 50 and 10000 inclusive
type ProductPrice struct {
	value int
	valid bool
}

func NewProductPrice(raw int) (ProductPrice, error) {
	if raw < ProductPriceMin || raw > ProductPriceMax {
		return ProductPrice{}, apperror.Domain(
			"product price must be between %d and %d: %d", ProductPriceMin, ProductPriceMax, raw)
	}
	return ProductPrice{value: raw, valid: true}, nil
}

// ProductPriceFrom rejects an absent price before applying the range check
func ProductPriceFrom(raw *int) (ProductPrice, error) {
	if raw == nil {
		return ProductPrice{}, apperror.Domain("product price is required")
	}
	return NewProductPrice(*raw)
}

func (p ProductPrice) Value() int                     { return p.value }
func (p ProductPrice) IsZero() bool                   { return !p.valid }
func (p ProductPrice) Equals(other ProductPrice) bool { return p == other }

// StockQuantity is an on-hand quantity between 0 and 100 inclusive
type StockQuantity struct {
	value int
	valid bool
}

func NewStockQuantity(raw int) (StockQuantity, error) {
	if raw < StockQuantityMin || raw > StockQuantityMax {
		return StockQuantity{}, apperror.Domain(
			"stock quantity must be between %d and %d: %d", StockQuantityMin, StockQuantityMax, raw)
	}
	return StockQuantity{value: raw, valid: true}, nil
}

// StockQuantityFrom rejects an absent quantity before applying the range check
func StockQuantityFrom(raw *int) (StockQuantity, error) {
	if raw == nil {
		return StockQuantity{}, apperror.Domain("stock quantity is required")
	}
	return NewStockQuantity(*raw)
}

func (q StockQuantity) Value() int                      { return q.value }
func (q StockQuantity) IsZero() bool                    { return !q.valid }
func (q StockQuantity) Equals(other StockQuantity) bool { return q == other }
