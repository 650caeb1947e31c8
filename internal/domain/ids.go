// Package domain holds the catalog model: self-validating value objects,
// the Category and Stock entities and the Product aggregate.
// Every constructor is an admission path; code outside this package only
// ever sees instances that already passed validation.
package domain

import (
	"regexp"
	"strings"

	"product-catalog/internal/apperror"

	"github.com/google/uuid"
)

// uuidPattern is the strict 8-4-4-4-12 grammar. uuid.Parse alone also accepts
// braces, URNs and the 32 digit form, which identifiers must reject.
var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// parseCanonicalUUID trims raw, checks the grammar and returns the lowercase form
func parseCanonicalUUID(label, raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", apperror.Domain("%s is required", label)
	}
	if !uuidPattern.MatchString(s) {
		return "", apperror.Domain("%s must be a UUID: %s", label, raw)
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return "", apperror.Domain("%s must be a UUID: %s", label, raw)
	}
	return parsed.String(), nil
}

// CategoryID identifies a Category
type CategoryID struct {
	value string
}

// NewCategoryID generates a random identifier
func NewCategoryID() CategoryID {
	return CategoryID{value: uuid.NewString()}
}

// CategoryIDFromString parses raw in any letter case into its canonical form
func CategoryIDFromString(raw string) (CategoryID, error) {
	v, err := parseCanonicalUUID("category id", raw)
	if err != nil {
		return CategoryID{}, err
	}
	return CategoryID{value: v}, nil
}

func (id CategoryID) String() string               { return id.value }
func (id CategoryID) IsZero() bool                 { return id.value == "" }
func (id CategoryID) Equals(other CategoryID) bool { return id.value == other.value }

// ProductID identifies a Product
type ProductID struct {
	value string
}

// NewProductID generates a random identifier
func NewProductID() ProductID {
	return ProductID{value: uuid.NewString()}
}

// ProductIDFromString parses raw in any letter case into its canonical form
func ProductIDFromString(raw string) (ProductID, error) {
	v, err := parseCanonicalUUID("product id", raw)
	if err != nil {
		return ProductID{}, err
	}
	return ProductID{value: v}, nil
}

func (id ProductID) String() string              { return id.value }
func (id ProductID) IsZero() bool                { return id.value == "" }
func (id ProductID) Equals(other ProductID) bool { return id.value == other.value }

// StockID identifies a Stock
type StockID struct {
	value string
}

// NewStockID generates a random identifier
func NewStockID() StockID {
	return StockID{value: uuid.NewString()}
}

// StockIDFromString parses raw in any letter case into its canonical form
func StockIDFromString(raw string) (StockID, error) {
	v, err := parseCanonicalUUID("stock id", raw)
	if err != nil {
		return StockID{}, err
	}
	return StockID{value: v}, nil
}

func (id StockID) String() string            { return id.value }
func (id StockID) IsZero() bool              { return id.value == "" }
func (id StockID) Equals(other StockID) bool { return id.value == other.value }
