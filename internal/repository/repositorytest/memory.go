// Package repositorytest provides in-memory repositories and a recording
// transactor for handler and service tests.
package repositorytest

import (
	"context"
	"sync"

	"product-catalog/internal/apperror"
	"product-catalog/internal/database"
	"product-catalog/internal/domain"
	"product-catalog/internal/repository"
)

// Store holds categories and products in insertion order
type Store struct {
	mu         sync.Mutex
	categories []*domain.Category
	products   []*domain.Product

	// Err, when set, is returned by every repository call
	Err error
}

func NewStore(categories ...*domain.Category) *Store {
	return &Store{categories: categories}
}

func (s *Store) Categories() repository.CategoryRepository { return (*categoryRepo)(s) }
func (s *Store) Products() repository.ProductRepository    { return (*productRepo)(s) }

// StoredProducts returns a snapshot of the stored products
func (s *Store) StoredProducts() []*domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*domain.Product(nil), s.products...)
}

type categoryRepo Store

func (r *categoryRepo) FindByID(_ context.Context, id domain.CategoryID) (*domain.Category, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, false, r.Err
	}
	for _, c := range r.categories {
		if c.ID().Equals(id) {
			return c, true, nil
		}
	}
	return nil, false, nil
}

func (r *categoryRepo) FindAll(_ context.Context) ([]*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	return append([]*domain.Category{}, r.categories...), nil
}

type productRepo Store

func (r *productRepo) Create(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if product == nil || product.IsSkeleton() {
		return apperror.Domain("product must have a category and a stock before it is stored")
	}

	known := false
	for _, c := range r.categories {
		if c.ID().Equals(product.Category().ID()) {
			known = true
			break
		}
	}
	if !known {
		return apperror.Domain("category does not exist")
	}
	for _, p := range r.products {
		if p.Name().Equals(product.Name()) {
			return repository.DuplicateNameError(product.Name())
		}
	}

	r.products = append(r.products, product)
	return nil
}

func (r *productRepo) ExistsByName(_ context.Context, name domain.ProductName) (bool, error) {
	_, ok, err := r.find(func(p *domain.Product) bool { return p.Name().Equals(name) })
	return ok, err
}

func (r *productRepo) FindByID(_ context.Context, id domain.ProductID) (*domain.Product, bool, error) {
	return r.find(func(p *domain.Product) bool { return p.ID().Equals(id) })
}

func (r *productRepo) FindByName(_ context.Context, name domain.ProductName) (*domain.Product, bool, error) {
	return r.find(func(p *domain.Product) bool { return p.Name().Equals(name) })
}

func (r *productRepo) find(match func(*domain.Product) bool) (*domain.Product, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, false, r.Err
	}
	for _, p := range r.products {
		if match(p) {
			return p, true, nil
		}
	}
	return nil, false, nil
}

// Transactor runs functions inline and records the options of every call
type Transactor struct {
	mu    sync.Mutex
	Calls []database.TxOptions
}

func (t *Transactor) WithinTx(ctx context.Context, opts database.TxOptions, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	t.Calls = append(t.Calls, opts)
	t.mu.Unlock()
	return fn(ctx)
}

// Last returns the options of the most recent call
func (t *Transactor) Last() database.TxOptions {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.Calls) == 0 {
		return database.TxOptions{}
	}
	return t.Calls[len(t.Calls)-1]
}
