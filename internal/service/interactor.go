package service

import (
	"context"

	"product-catalog/internal/apperror"
	"product-catalog/internal/database"
	"product-catalog/internal/domain"

	"go.uber.org/zap"
)

// RegisterProductInteractor backs the registration screen: category pickers,
// the name availability check and the registration itself.
type RegisterProductInteractor interface {
	GetCategories(ctx context.Context) ([]*CategoryDTO, error)
	GetCategoryByID(ctx context.Context, rawID string) (*CategoryDTO, error)
	EnsureNameIsFree(ctx context.Context, rawName string) error
	AddProduct(ctx context.Context, dto *ProductDTO) (*ProductDTO, error)
}

// SearchProductInteractor serves read-only product lookups
type SearchProductInteractor interface {
	SearchByName(ctx context.Context, rawName string) (*ProductDTO, error)
	GetProductByID(ctx context.Context, rawID string) (*ProductDTO, error)
}

type registerProductInteractor struct {
	tx         database.Transactor
	categories CategoryService
	products   ProductService
	assembler  ProductDTOAssembler
	logger     *zap.Logger
}

// NewRegisterProductInteractor creates a new instance of RegisterProductInteractor
func NewRegisterProductInteractor(
	tx database.Transactor,
	categories CategoryService,
	products ProductService,
	logger *zap.Logger,
) RegisterProductInteractor {
	return &registerProductInteractor{
		tx:         tx,
		categories: categories,
		products:   products,
		logger:     logger,
	}
}

func (i *registerProductInteractor) GetCategories(ctx context.Context) ([]*CategoryDTO, error) {
	var dtos []*CategoryDTO
	err := i.tx.WithinTx(ctx, database.ReadOnly, func(ctx context.Context) error {
		categories, err := i.categories.GetCategories(ctx)
		if err != nil {
			return err
		}
		dtos, err = i.assembler.ToCategoryDTOs(categories)
		return err
	})
	if err != nil {
		return nil, err
	}
	return dtos, nil
}

func (i *registerProductInteractor) GetCategoryByID(ctx context.Context, rawID string) (*CategoryDTO, error) {
	id, err := domain.CategoryIDFromString(rawID)
	if err != nil {
		return nil, err
	}

	var dto *CategoryDTO
	err = i.tx.WithinTx(ctx, database.ReadOnly, func(ctx context.Context) error {
		category, err := i.categories.GetCategoryByID(ctx, id)
		if err != nil {
			return err
		}
		dto, err = i.assembler.ToCategoryDTO(category)
		return err
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (i *registerProductInteractor) EnsureNameIsFree(ctx context.Context, rawName string) error {
	name, err := domain.NewProductName(rawName)
	if err != nil {
		return err
	}

	return i.tx.WithinTx(ctx, database.ReadOnly, func(ctx context.Context) error {
		return i.products.EnsureNameIsFree(ctx, name)
	})
}

// AddProduct registers the product described by dto and returns it as stored.
// The category named by dto.Category.ID replaces whatever category data the
// caller sent. Every step runs in one read-write transaction.
func (i *registerProductInteractor) AddProduct(ctx context.Context, dto *ProductDTO) (*ProductDTO, error) {
	if dto == nil {
		return nil, apperror.InvalidInput("product is required")
	}
	if dto.Category == nil || isBlank(dto.Category.ID) {
		return nil, apperror.InvalidInput("product category id is required")
	}

	categoryID, err := domain.CategoryIDFromString(dto.Category.ID)
	if err != nil {
		return nil, err
	}

	var registered *ProductDTO
	err = i.tx.WithinTx(ctx, database.ReadWrite, func(ctx context.Context) error {
		category, err := i.categories.GetCategoryByID(ctx, categoryID)
		if err != nil {
			return err
		}

		candidate := *dto
		if candidate.Category, err = i.assembler.ToCategoryDTO(category); err != nil {
			return err
		}

		product, err := i.assembler.AssembleDomain(&candidate)
		if err != nil {
			return err
		}

		if err := i.products.EnsureNameIsFree(ctx, product.Name()); err != nil {
			return err
		}
		if err := i.products.AddProduct(ctx, product); err != nil {
			return err
		}

		stored, err := i.products.GetProductByName(ctx, product.Name())
		if err != nil {
			return err
		}
		registered, err = i.assembler.AssembleDTO(stored)
		return err
	})
	if err != nil {
		return nil, err
	}

	i.logger.Info("Product registered",
		zap.String("product_id", registered.ID),
		zap.String("name", registered.Name),
		zap.String("category_id", registered.Category.ID),
	)
	return registered, nil
}

type searchProductInteractor struct {
	tx        database.Transactor
	products  ProductService
	assembler ProductDTOAssembler
}

// NewSearchProductInteractor creates a new instance of SearchProductInteractor
func NewSearchProductInteractor(tx database.Transactor, products ProductService) SearchProductInteractor {
	return &searchProductInteractor{tx: tx, products: products}
}

func (i *searchProductInteractor) SearchByName(ctx context.Context, rawName string) (*ProductDTO, error) {
	name, err := domain.NewProductName(rawName)
	if err != nil {
		return nil, err
	}

	var dto *ProductDTO
	err = i.tx.WithinTx(ctx, database.ReadOnly, func(ctx context.Context) error {
		product, err := i.products.GetProductByName(ctx, name)
		if err != nil {
			return err
		}
		dto, err = i.assembler.AssembleDTO(product)
		return err
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (i *searchProductInteractor) GetProductByID(ctx context.Context, rawID string) (*ProductDTO, error) {
	id, err := domain.ProductIDFromString(rawID)
	if err != nil {
		return nil, err
	}

	var dto *ProductDTO
	err = i.tx.WithinTx(ctx, database.ReadOnly, func(ctx context.Context) error {
		product, err := i.products.GetProductByID(ctx, id)
		if err != nil {
			return err
		}
		dto, err = i.assembler.AssembleDTO(product)
		return err
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}
