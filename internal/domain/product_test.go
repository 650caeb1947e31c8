package domain

import (
	"testing"

	"product-catalog/internal/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCategory(t *testing.T, name string) *Category {
	t.Helper()
	categoryName, err := NewCategoryName(name)
	require.NoError(t, err)
	category, err := NewCategory(categoryName)
	require.NoError(t, err)
	return category
}

func mustProductParts(t *testing.T) (ProductName, ProductPrice, StockQuantity) {
	t.Helper()
	name, err := NewProductName("蛍光ペン(赤)")
	require.NoError(t, err)
	price, err := NewProductPrice(130)
	require.NoError(t, err)
	quantity, err := NewStockQuantity(100)
	require.NoError(t, err)
	return name, price, quantity
}

func TestNewProduct(t *testing.T) {
	name, price, quantity := mustProductParts(t)
	category := mustCategory(t, "文房具")

	product, err := NewProduct(name, price, category, quantity)
	require.NoError(t, err)

	assert.False(t, product.ID().IsZero())
	assert.False(t, product.IsSkeleton())
	assert.True(t, product.Category().Equals(category))
	assert.Equal(t, 100, product.CurrentStock().Value())
	assert.True(t, product.Stock().IsFull())
}

func TestNewProductRequiresArguments(t *testing.T) {
	name, price, quantity := mustProductParts(t)
	category := mustCategory(t, "文房具")

	cases := []struct {
		name string
		call func() (*Product, error)
	}{
		{"missing name", func() (*Product, error) { return NewProduct(ProductName{}, price, category, quantity) }},
		{"missing price", func() (*Product, error) { return NewProduct(name, ProductPrice{}, category, quantity) }},
		{"missing category", func() (*Product, error) { return NewProduct(name, price, nil, quantity) }},
		{"missing quantity", func() (*Product, error) { return NewProduct(name, price, category, StockQuantity{}) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			product, err := tc.call()
			assert.Nil(t, product)
			assert.True(t, apperror.IsDomain(err), "expected domain error, got %v", err)
		})
	}
}

// Feature: product-catalog, Property V4: category and stock are both present or both absent
func TestRestoreProductCompleteness(t *testing.T) {
	name, price, quantity := mustProductParts(t)
	category := mustCategory(t, "文房具")
	stock, err := NewStock(quantity)
	require.NoError(t, err)
	id := NewProductID()

	product, err := RestoreProduct(id, name, price, category, stock)
	require.NoError(t, err)
	assert.True(t, product.HasCategory())
	assert.True(t, product.HasStock())

	_, err = RestoreProduct(id, name, price, category, nil)
	assert.True(t, apperror.IsDomain(err))

	_, err = RestoreProduct(id, name, price, nil, stock)
	assert.True(t, apperror.IsDomain(err))

	skeleton, err := RestoreProductSkeleton(id, name, price)
	require.NoError(t, err)
	assert.True(t, skeleton.IsSkeleton())
	assert.True(t, skeleton.CurrentStock().IsZero())
}

func TestSkeletonCompletion(t *testing.T) {
	name, price, quantity := mustProductParts(t)
	skeleton, err := RestoreProductSkeleton(NewProductID(), name, price)
	require.NoError(t, err)

	err = skeleton.ChangeStock(quantity)
	assert.True(t, apperror.IsDomain(err), "changing stock on a skeleton must fail")

	assert.Error(t, skeleton.AttachCategory(nil))
	assert.Error(t, skeleton.AttachStock(nil))

	stock, err := NewStock(quantity)
	require.NoError(t, err)
	require.NoError(t, skeleton.AttachCategory(mustCategory(t, "雑貨")))
	require.NoError(t, skeleton.AttachStock(stock))
	assert.False(t, skeleton.IsSkeleton())

	ten, err := NewStockQuantity(10)
	require.NoError(t, err)
	require.NoError(t, skeleton.ChangeStock(ten))
	assert.Equal(t, 10, skeleton.CurrentStock().Value())
}

func TestProductMutators(t *testing.T) {
	name, price, quantity := mustProductParts(t)
	product, err := NewProduct(name, price, mustCategory(t, "文房具"), quantity)
	require.NoError(t, err)

	newName, err := NewProductName("  万年筆  ")
	require.NoError(t, err)
	require.NoError(t, product.Rename(newName))
	assert.Equal(t, "万年筆", product.Name().String())
	assert.Error(t, product.Rename(ProductName{}))

	newPrice, err := NewProductPrice(1200)
	require.NoError(t, err)
	require.NoError(t, product.Reprice(newPrice))
	assert.Equal(t, 1200, product.Price().Value())
	assert.Error(t, product.Reprice(ProductPrice{}))
}

func TestProductEqualityByID(t *testing.T) {
	name, price, quantity := mustProductParts(t)
	category := mustCategory(t, "文房具")
	id := NewProductID()

	stockA, _ := NewStock(quantity)
	stockB, _ := NewStock(quantity)
	a, err := RestoreProduct(id, name, price, category, stockA)
	require.NoError(t, err)

	otherPrice, _ := NewProductPrice(999)
	b, err := RestoreProduct(id, name, otherPrice, category, stockB)
	require.NoError(t, err)

	assert.True(t, a.Equals(b))

	c, err := NewProduct(name, price, category, quantity)
	require.NoError(t, err)
	assert.False(t, a.Equals(c))
}

func TestCategoryRename(t *testing.T) {
	category := mustCategory(t, "文房具")

	renamed, err := NewCategoryName("事務用品")
	require.NoError(t, err)
	require.NoError(t, category.Rename(renamed))
	assert.Equal(t, "事務用品", category.Name().String())

	assert.True(t, apperror.IsDomain(category.Rename(CategoryName{})))
	assert.Equal(t, "事務用品", category.Name().String())
}

func TestRestoreCategoryRequiresArguments(t *testing.T) {
	name, err := NewCategoryName("文房具")
	require.NoError(t, err)

	_, err = RestoreCategory(CategoryID{}, name)
	assert.True(t, apperror.IsDomain(err))

	_, err = RestoreCategory(NewCategoryID(), CategoryName{})
	assert.True(t, apperror.IsDomain(err))
}
