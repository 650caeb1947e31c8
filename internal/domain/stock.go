package domain

import (
	"fmt"

	"product-catalog/internal/apperror"
)

// Stock is the on-hand quantity owned by exactly one Product
type Stock struct {
	id       StockID
	quantity StockQuantity
}

// NewStock creates a stock with a freshly generated id
func NewStock(initial StockQuantity) (*Stock, error) {
	return newStock(NewStockID(), initial)
}

// RestoreStock rebuilds a persisted stock
func RestoreStock(id StockID, quantity StockQuantity) (*Stock, error) {
	return newStock(id, quantity)
}

func newStock(id StockID, quantity StockQuantity) (*Stock, error) {
	if id.IsZero() {
		return nil, apperror.Domain("stock id is required")
	}
	if quantity.IsZero() {
		return nil, apperror.Domain("stock quantity is required")
	}
	return &Stock{id: id, quantity: quantity}, nil
}

func (s *Stock) ID() StockID             { return s.id }
func (s *Stock) Quantity() StockQuantity { return s.quantity }

// IsEmpty reports whether nothing is left on hand
func (s *Stock) IsEmpty() bool { return s.quantity.Value() == StockQuantityMin }

// IsFull reports whether the stock is at capacity
func (s *Stock) IsFull() bool { return s.quantity.Value() == StockQuantityMax }

// Increase adds delta; the stock is unchanged when the result leaves 0..100
func (s *Stock) Increase(delta int) error {
	if delta < 0 {
		return apperror.Domain("stock increase must be zero or more: %d", delta)
	}
	next, err := NewStockQuantity(s.quantity.Value() + delta)
	if err != nil {
		return err
	}
	s.quantity = next
	return nil
}

// Decrease subtracts delta; the stock is unchanged when the result leaves 0..100
func (s *Stock) Decrease(delta int) error {
	if delta < 0 {
		return apperror.Domain("stock decrease must be zero or more: %d", delta)
	}
	next, err := NewStockQuantity(s.quantity.Value() - delta)
	if err != nil {
		return err
	}
	s.quantity = next
	return nil
}

// ChangeQuantity replaces the quantity
func (s *Stock) ChangeQuantity(newQuantity StockQuantity) error {
	if newQuantity.IsZero() {
		return apperror.Domain("stock quantity is required")
	}
	s.quantity = newQuantity
	return nil
}

// Equals compares by identity
func (s *Stock) Equals(other *Stock) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.id.Equals(other.id)
}

func (s *Stock) String() string {
	return fmt.Sprintf("Stock{id=%s, quantity=%d}", s.id, s.quantity.Value())
}
