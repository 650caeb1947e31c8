package domain

import (
	"fmt"

	"product-catalog/internal/apperror"
)

// Product is the aggregate root. It references its Category and owns its Stock.
//
// A product whose category and stock are both nil is a skeleton: it only
// exists while a DTO is being turned into an aggregate and must be completed
// with AttachCategory and AttachStock before it is persisted.
type Product struct {
	id       ProductID
	name     ProductName
	price    ProductPrice
	category *Category
	stock    *Stock
}

// NewProduct creates a product with a new id and a new stock holding initial
func NewProduct(name ProductName, price ProductPrice, category *Category, initial StockQuantity) (*Product, error) {
	if category == nil {
		return nil, apperror.Domain("product category is required")
	}
	if initial.IsZero() {
		return nil, apperror.Domain("stock quantity is required")
	}
	stock, err := NewStock(initial)
	if err != nil {
		return nil, err
	}
	return newProduct(NewProductID(), name, price, category, stock)
}

// RestoreProduct rebuilds a complete product
func RestoreProduct(id ProductID, name ProductName, price ProductPrice, category *Category, stock *Stock) (*Product, error) {
	if category == nil {
		return nil, apperror.Domain("product category is required")
	}
	if stock == nil {
		return nil, apperror.Domain("product stock is required")
	}
	return newProduct(id, name, price, category, stock)
}

// RestoreProductSkeleton rebuilds a product without category and stock
func RestoreProductSkeleton(id ProductID, name ProductName, price ProductPrice) (*Product, error) {
	return newProduct(id, name, price, nil, nil)
}

func newProduct(id ProductID, name ProductName, price ProductPrice, category *Category, stock *Stock) (*Product, error) {
	if id.IsZero() {
		return nil, apperror.Domain("product id is required")
	}
	if name.IsZero() {
		return nil, apperror.Domain("product name is required")
	}
	if price.IsZero() {
		return nil, apperror.Domain("product price is required")
	}
	if (category == nil) != (stock == nil) {
		return nil, apperror.Domain("product category and stock must be given together or not at all")
	}
	return &Product{id: id, name: name, price: price, category: category, stock: stock}, nil
}

func (p *Product) ID() ProductID       { return p.id }
func (p *Product) Name() ProductName   { return p.name }
func (p *Product) Price() ProductPrice { return p.price }
func (p *Product) Category() *Category { return p.category }
func (p *Product) Stock() *Stock       { return p.stock }
func (p *Product) IsSkeleton() bool    { return p.category == nil && p.stock == nil }
func (p *Product) HasCategory() bool   { return p.category != nil }
func (p *Product) HasStock() bool      { return p.stock != nil }

// CurrentStock returns the quantity on hand, zero value for a skeleton
func (p *Product) CurrentStock() StockQuantity {
	if p.stock == nil {
		return StockQuantity{}
	}
	return p.stock.Quantity()
}

// AttachCategory sets the referenced category
func (p *Product) AttachCategory(category *Category) error {
	if category == nil {
		return apperror.Domain("product category is required")
	}
	p.category = category
	return nil
}

// AttachStock sets the owned stock
func (p *Product) AttachStock(stock *Stock) error {
	if stock == nil {
		return apperror.Domain("product stock is required")
	}
	p.stock = stock
	return nil
}

func (p *Product) Rename(newName ProductName) error {
	if newName.IsZero() {
		return apperror.Domain("product name is required")
	}
	p.name = newName
	return nil
}

func (p *Product) Reprice(newPrice ProductPrice) error {
	if newPrice.IsZero() {
		return apperror.Domain("product price is required")
	}
	p.price = newPrice
	return nil
}

// ChangeStock replaces the quantity of the attached stock
func (p *Product) ChangeStock(newQuantity StockQuantity) error {
	if p.stock == nil {
		return apperror.Domain("product stock is not attached")
	}
	return p.stock.ChangeQuantity(newQuantity)
}

// Equals compares by identity
func (p *Product) Equals(other *Product) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.id.Equals(other.id)
}

func (p *Product) String() string {
	return fmt.Sprintf("Product{id=%s, name=%s, price=%d, category=%v, stock=%v}",
		p.id, p.name, p.price.Value(), p.category, p.stock)
}
