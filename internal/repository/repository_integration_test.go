package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"product-catalog/internal/apperror"
	"product-catalog/internal/database"
	"product-catalog/internal/domain"
	"product-catalog/internal/logger"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zapcore"
)

var (
	testDB      *sql.DB
	testDBError error
)

func setupTestDB() (teardown func(context.Context, ...testcontainers.TerminateOption) error, err error) {
	var (
		dbName = "testdb"
		dbPwd  = "password"
		dbUser = "user"
	)

	defer func() {
		// testcontainers panics on some hosts without a docker socket
		if p := recover(); p != nil {
			err = fmt.Errorf("docker unavailable: %v", p)
		}
	}()

	ctx := context.Background()
	dbContainer, err := postgres.Run(
		ctx,
		"postgres:15",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, err
	}

	connStr, err := dbContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return dbContainer.Terminate, err
	}

	testDB, err = sql.Open("pgx", connStr)
	if err != nil {
		return dbContainer.Terminate, err
	}

	migrationLogger := logger.NewWithWriter(os.Stderr, zapcore.WarnLevel)
	if err := database.RunMigrations(ctx, testDB, "../../migrations", migrationLogger); err != nil {
		return dbContainer.Terminate, err
	}

	return dbContainer.Terminate, nil
}

func TestMain(m *testing.M) {
	teardown, err := setupTestDB()
	if err != nil {
		log.Printf("postgres container unavailable, integration tests will be skipped: %v", err)
		testDBError = err
	}

	code := m.Run()

	if teardown != nil {
		if err := teardown(context.Background()); err != nil {
			log.Printf("could not teardown postgres container: %v", err)
		}
	}
	os.Exit(code)
}

func requireDB(t *testing.T) {
	t.Helper()
	if testDBError != nil || testDB == nil {
		t.Skipf("postgres not available: %v", testDBError)
	}
}

func newTransactor() database.Transactor {
	return database.NewTransactor(testDB, logger.NewWithWriter(os.Stderr, zapcore.WarnLevel))
}

func stationery(t *testing.T) *domain.Category {
	t.Helper()
	id, err := domain.CategoryIDFromString(stationeryUUID)
	require.NoError(t, err)

	category, ok, err := NewCategoryRepository(testDB).FindByID(context.Background(), id)
	require.NoError(t, err)
	require.True(t, ok)
	return category
}

func newProduct(t *testing.T, category *domain.Category, name string, price, quantity int) *domain.Product {
	t.Helper()
	productName, err := domain.NewProductName(name)
	require.NoError(t, err)
	productPrice, err := domain.NewProductPrice(price)
	require.NoError(t, err)
	initial, err := domain.NewStockQuantity(quantity)
	require.NoError(t, err)

	product, err := domain.NewProduct(productName, productPrice, category, initial)
	require.NoError(t, err)
	return product
}

func TestCategoryRepository_FindAllIsOrderedBySurrogateKey(t *testing.T) {
	requireDB(t)
	repo := NewCategoryRepository(testDB)

	categories, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(categories), 3)

	assert.Equal(t, "文房具", categories[0].Name().String())
	assert.Equal(t, "雑貨", categories[1].Name().String())
	assert.Equal(t, "パソコン周辺機器", categories[2].Name().String())

	again, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, categories, again)
}

func TestCategoryRepository_FindByIDMissing(t *testing.T) {
	requireDB(t)

	_, ok, err := NewCategoryRepository(testDB).FindByID(context.Background(), domain.NewCategoryID())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProductRepository_FindSeededByName(t *testing.T) {
	requireDB(t)
	name, err := domain.NewProductName("蛍光ペン(赤)")
	require.NoError(t, err)

	product, ok, err := NewProductRepository(testDB).FindByName(context.Background(), name)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, 130, product.Price().Value())
	assert.Equal(t, "文房具", product.Category().Name().String())
	assert.Equal(t, 100, product.Stock().Quantity().Value())
}

func TestProductRepository_CreateThenFindInSameTransaction(t *testing.T) {
	requireDB(t)
	repo := NewProductRepository(testDB)
	product := newProduct(t, stationery(t), "万年筆-"+uuid.NewString()[:8], 1200, 10)

	err := newTransactor().WithinTx(context.Background(), database.ReadWrite, func(ctx context.Context) error {
		if err := repo.Create(ctx, product); err != nil {
			return err
		}
		exists, err := repo.ExistsByName(ctx, product.Name())
		require.NoError(t, err)
		assert.True(t, exists)

		found, ok, err := repo.FindByName(ctx, product.Name())
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, found.Equals(product))
		assert.True(t, found.Stock().Equals(product.Stock()))
		return nil
	})
	require.NoError(t, err)

	byID, ok, err := repo.FindByID(context.Background(), product.ID())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, product.Name(), byID.Name())
}

func TestProductRepository_RollbackLeavesNoRows(t *testing.T) {
	requireDB(t)
	repo := NewProductRepository(testDB)
	product := newProduct(t, stationery(t), "rollback-"+uuid.NewString()[:8], 500, 1)
	boom := errors.New("boom")

	err := newTransactor().WithinTx(context.Background(), database.ReadWrite, func(ctx context.Context) error {
		require.NoError(t, repo.Create(ctx, product))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	exists, err := repo.ExistsByName(context.Background(), product.Name())
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestProductRepository_CreateUnknownCategory(t *testing.T) {
	requireDB(t)
	categoryName, err := domain.NewCategoryName("幻")
	require.NoError(t, err)
	ghost, err := domain.NewCategory(categoryName)
	require.NoError(t, err)

	err = NewProductRepository(testDB).Create(context.Background(), newProduct(t, ghost, "ghost-"+uuid.NewString()[:8], 100, 1))
	assert.True(t, apperror.IsDomain(err))
	assert.EqualError(t, err, "category does not exist")
}

func TestProductRepository_CreateDuplicateNameIsConflict(t *testing.T) {
	requireDB(t)

	err := NewProductRepository(testDB).Create(context.Background(), newProduct(t, stationery(t), "蛍光ペン(黄)", 130, 1))
	assert.True(t, apperror.IsConflict(err))
	assert.EqualError(t, err, "product name:[蛍光ペン(黄)] is already registered")
}

func TestProductRepository_CreateRejectsSkeleton(t *testing.T) {
	requireDB(t)
	name, _ := domain.NewProductName("skeleton")
	price, _ := domain.NewProductPrice(100)
	skeleton, err := domain.RestoreProductSkeleton(domain.NewProductID(), name, price)
	require.NoError(t, err)

	err = NewProductRepository(testDB).Create(context.Background(), skeleton)
	assert.True(t, apperror.IsDomain(err))
}

func TestProductRepository_ReadOnlyTransactionRejectsWrites(t *testing.T) {
	requireDB(t)
	repo := NewProductRepository(testDB)
	product := newProduct(t, stationery(t), "readonly-"+uuid.NewString()[:8], 100, 1)

	err := newTransactor().WithinTx(context.Background(), database.ReadOnly, func(ctx context.Context) error {
		return repo.Create(ctx, product)
	})
	assert.Equal(t, apperror.KindInfrastructure, apperror.KindOf(err))
}

// Feature: product-catalog, Property 6: Stored aggregates read back unchanged
func TestProperty_StoredProductsReadBackUnchanged(t *testing.T) {
	requireDB(t)
	repo := NewProductRepository(testDB)
	category := stationery(t)
	ctx := context.Background()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	properties.Property("create then find by id returns the same aggregate", prop.ForAll(
		func(price, quantity int) bool {
			product := newProduct(t, category, "prop-"+uuid.NewString()[:12], price, quantity)
			if err := repo.Create(ctx, product); err != nil {
				t.Logf("Failed to create product: %v", err)
				return false
			}

			found, ok, err := repo.FindByID(ctx, product.ID())
			if err != nil || !ok {
				return false
			}

			return found.Equals(product) &&
				found.Name().Equals(product.Name()) &&
				found.Price().Equals(product.Price()) &&
				found.Category().Equals(category) &&
				found.Stock().Equals(product.Stock()) &&
				found.Stock().Quantity().Equals(product.Stock().Quantity())
		},
		gen.IntRange(domain.ProductPriceMin, domain.ProductPriceMax),
		gen.IntRange(domain.StockQuantityMin, domain.StockQuantityMax),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestDatabaseHealthAndMigrationStatus(t *testing.T) {
	requireDB(t)
	ctx := context.Background()

	service := database.NewFromDB(testDB, logger.NewWithWriter(os.Stderr, zapcore.WarnLevel))
	health := service.Health(ctx)
	assert.Equal(t, "up", health["status"])
	assert.Equal(t, "It's healthy", health["message"])

	require.NoError(t, database.MigrationStatus(ctx, testDB, "../../migrations"))
}
