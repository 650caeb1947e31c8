package repository

import (
	"context"
	"database/sql"
	"errors"

	"product-catalog/internal/apperror"
	"product-catalog/internal/database"
	"product-catalog/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation       = "23505"
	productNameConstraint = "product_name_key"
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	ExistsByName(ctx context.Context, name domain.ProductName) (bool, error)
	FindByID(ctx context.Context, id domain.ProductID) (*domain.Product, bool, error)
	FindByName(ctx context.Context, name domain.ProductName) (*domain.Product, bool, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// DuplicateNameError is reported for a product name that is already taken
func DuplicateNameError(name domain.ProductName) error {
	return apperror.Conflict("product name:[%s] is already registered", name)
}

const selectProductAggregate = `
	SELECT p.id, p.product_uuid, p.name, p.price, p.category_id,
	       c.id, c.category_uuid, c.name,
	       s.id, s.stock_uuid, s.stock, s.product_id
	FROM product p
	INNER JOIN product_stock s ON s.product_id = p.id
	INNER JOIN product_category c ON c.id = p.category_id
`

// Create inserts the product row and its stock row. Both statements run on
// the transaction in ctx, so a failed stock insert leaves no product behind.
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	if product == nil {
		return apperror.Domain("product is required")
	}
	if product.IsSkeleton() || !product.HasStock() {
		return apperror.Domain("product %s must have a category and a stock before it is stored", product.ID())
	}

	categoryUUID, err := ExtractCategoryUUID(product)
	if err != nil {
		return err
	}

	exec := database.ExecutorFrom(ctx, r.db)

	var categoryID int64
	err = exec.QueryRowContext(ctx,
		`SELECT id FROM product_category WHERE category_uuid = $1`,
		categoryUUID,
	).Scan(&categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperror.Domain("category does not exist")
		}
		return apperror.Infrastructure("failed to resolve product category", err)
	}

	productRow, err := ProductEntityToRow(product)
	if err != nil {
		return err
	}
	productRow.CategoryID = sql.NullInt64{Int64: categoryID, Valid: true}

	err = exec.QueryRowContext(ctx, `
		INSERT INTO product (product_uuid, name, price, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`,
		productRow.ProductUUID,
		productRow.Name,
		productRow.Price,
		productRow.CategoryID,
	).Scan(&productRow.ID)
	if err != nil {
		if isUniqueViolation(err, productNameConstraint) {
			return DuplicateNameError(product.Name())
		}
		return apperror.Infrastructure("failed to create product", err)
	}

	stockRow, err := StockEntityToRow(product.Stock())
	if err != nil {
		return err
	}
	stockRow.ProductID = productRow.ID

	_, err = exec.ExecContext(ctx, `
		INSERT INTO product_stock (stock_uuid, stock, product_id)
		VALUES ($1, $2, $3)
	`,
		stockRow.StockUUID,
		stockRow.Stock,
		stockRow.ProductID,
	)
	if err != nil {
		return apperror.Infrastructure("failed to create product stock", err)
	}

	return nil
}

// ExistsByName reports whether a product with exactly this name is stored
func (r *productRepository) ExistsByName(ctx context.Context, name domain.ProductName) (bool, error) {
	var exists bool
	err := database.ExecutorFrom(ctx, r.db).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM product WHERE name = $1)`,
		name.String(),
	).Scan(&exists)
	if err != nil {
		return false, apperror.Infrastructure("failed to check product name", err)
	}
	return exists, nil
}

// FindByID loads the full aggregate by product uuid
func (r *productRepository) FindByID(ctx context.Context, id domain.ProductID) (*domain.Product, bool, error) {
	return r.findOne(ctx, selectProductAggregate+`WHERE p.product_uuid = $1`, id.String())
}

// FindByName loads the full aggregate by exact product name
func (r *productRepository) FindByName(ctx context.Context, name domain.ProductName) (*domain.Product, bool, error) {
	return r.findOne(ctx, selectProductAggregate+`WHERE p.name = $1`, name.String())
}

func (r *productRepository) findOne(ctx context.Context, query string, arg string) (*domain.Product, bool, error) {
	var (
		productRow  ProductRow
		categoryRow CategoryRow
		stockRow    StockRow
	)

	err := database.ExecutorFrom(ctx, r.db).QueryRowContext(ctx, query, arg).Scan(
		&productRow.ID,
		&productRow.ProductUUID,
		&productRow.Name,
		&productRow.Price,
		&productRow.CategoryID,
		&categoryRow.ID,
		&categoryRow.CategoryUUID,
		&categoryRow.Name,
		&stockRow.ID,
		&stockRow.StockUUID,
		&stockRow.Stock,
		&stockRow.ProductID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, apperror.Infrastructure("failed to find product", err)
	}

	product, err := Assemble(&productRow, &categoryRow, &stockRow)
	if err != nil {
		return nil, false, apperror.Preserve("failed to assemble product", err)
	}
	return product, true, nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == uniqueViolation && pgErr.ConstraintName == constraint
}
