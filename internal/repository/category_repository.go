package repository

import (
	"context"
	"database/sql"
	"errors"

	"product-catalog/internal/apperror"
	"product-catalog/internal/database"
	"product-catalog/internal/domain"
)

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	FindByID(ctx context.Context, id domain.CategoryID) (*domain.Category, bool, error)
	FindAll(ctx context.Context) ([]*domain.Category, error)
}

type categoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new instance of CategoryRepository.
// Queries run on the transaction carried by ctx when there is one.
func NewCategoryRepository(db *sql.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// FindByID looks up a category by its uuid; ok is false when no row matches
func (r *categoryRepository) FindByID(ctx context.Context, id domain.CategoryID) (*domain.Category, bool, error) {
	query := `
		SELECT id, category_uuid, name
		FROM product_category
		WHERE category_uuid = $1
	`

	row := &CategoryRow{}
	err := database.ExecutorFrom(ctx, r.db).QueryRowContext(ctx, query, id.String()).Scan(
		&row.ID,
		&row.CategoryUUID,
		&row.Name,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, apperror.Infrastructure("failed to find category by id", err)
	}

	category, err := CategoryRowToEntity(row)
	if err != nil {
		return nil, false, apperror.Preserve("failed to map category row", err)
	}
	return category, true, nil
}

// FindAll lists every category in insertion order
func (r *categoryRepository) FindAll(ctx context.Context) ([]*domain.Category, error) {
	query := `
		SELECT id, category_uuid, name
		FROM product_category
		ORDER BY id ASC
	`

	rows, err := database.ExecutorFrom(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, apperror.Infrastructure("failed to list categories", err)
	}
	defer rows.Close()

	categories := []*domain.Category{}
	for rows.Next() {
		row := &CategoryRow{}
		if err := rows.Scan(&row.ID, &row.CategoryUUID, &row.Name); err != nil {
			return nil, apperror.Infrastructure("failed to scan category", err)
		}

		category, err := CategoryRowToEntity(row)
		if err != nil {
			return nil, apperror.Preserve("failed to map category row", err)
		}
		categories = append(categories, category)
	}

	if err = rows.Err(); err != nil {
		return nil, apperror.Infrastructure("error iterating categories", err)
	}

	return categories, nil
}
