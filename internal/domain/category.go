package domain

import (
	"fmt"

	"product-catalog/internal/apperror"
)

// Category is a product category, identified by its CategoryID
type Category struct {
	id   CategoryID
	name CategoryName
}

// NewCategory creates a category with a freshly generated id
func NewCategory(name CategoryName) (*Category, error) {
	return newCategory(NewCategoryID(), name)
}

// RestoreCategory rebuilds a persisted category
func RestoreCategory(id CategoryID, name CategoryName) (*Category, error) {
	return newCategory(id, name)
}

func newCategory(id CategoryID, name CategoryName) (*Category, error) {
	if id.IsZero() {
		return nil, apperror.Domain("category id is required")
	}
	if name.IsZero() {
		return nil, apperror.Domain("category name is required")
	}
	return &Category{id: id, name: name}, nil
}

func (c *Category) ID() CategoryID     { return c.id }
func (c *Category) Name() CategoryName { return c.name }

// Rename replaces the category name
func (c *Category) Rename(newName CategoryName) error {
	if newName.IsZero() {
		return apperror.Domain("category name is required")
	}
	c.name = newName
	return nil
}

// Equals compares by identity
func (c *Category) Equals(other *Category) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.id.Equals(other.id)
}

func (c *Category) String() string {
	return fmt.Sprintf("Category{id=%s, name=%s}", c.id, c.name)
}
