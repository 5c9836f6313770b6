package repository_test

import (
	"context"
	"testing"

	"github.com/example/freshmart/pkg/models"
	"github.com/example/freshmart/pkg/repository"
	"github.com/example/freshmart/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestCatalogRepository_ListProducts(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	repo := repository.NewCatalogRepository(db)

	fruits := testutil.MustCategory(t, db, "Fruits")
	dairy := testutil.MustCategory(t, db, "Dairy")
	testutil.MustCategory(t, db, "Fruits & Nuts")

	testutil.MustProduct(t, db, "Fresh Organic Bananas", 3.99, fruits)
	testutil.MustProduct(t, db, "Greek Yogurt", 5.99, dairy)
	testutil.MustProduct(t, db, "Fresh Strawberries", 7.99, fruits)
	testutil.MustProduct(t, db, "Fresh Mozzarella", 8.99, dairy)
	testutil.MustProduct(t, db, "100% Juice", 2.50, nil)

	t.Run("no filters", func(t *testing.T) {
		products, total, err := repo.ListProducts(ctx, repository.ProductFilter{}, 10, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 5, total)
		assert.Len(t, products, 5)
		assert.Equal(t, "Fresh Organic Bananas", products[0].Name)
	})

	t.Run("category exact match", func(t *testing.T) {
		products, total, err := repo.ListProducts(ctx, repository.ProductFilter{Category: "Fruits"}, 10, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		assert.Equal(t, []string{"Fresh Organic Bananas", "Fresh Strawberries"}, names(products))
		for _, p := range products {
			require.NotNil(t, p.Category)
			assert.Equal(t, "Fruits", p.Category.Name)
		}
	})

	t.Run("category prefix does not match", func(t *testing.T) {
		_, total, err := repo.ListProducts(ctx, repository.ProductFilter{Category: "Fruit"}, 10, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 0, total)
	})

	t.Run("search substring of name", func(t *testing.T) {
		products, total, err := repo.ListProducts(ctx, repository.ProductFilter{Search: "Fresh"}, 10, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		assert.Equal(t, []string{"Fresh Organic Bananas", "Fresh Strawberries", "Fresh Mozzarella"}, names(products))
	})

	t.Run("search and category conjunctive", func(t *testing.T) {
		products, total, err := repo.ListProducts(ctx, repository.ProductFilter{Category: "Dairy", Search: "Fresh"}, 10, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Equal(t, []string{"Fresh Mozzarella"}, names(products))
	})

	t.Run("wildcards are literal", func(t *testing.T) {
		products, total, err := repo.ListProducts(ctx, repository.ProductFilter{Search: "%"}, 10, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Equal(t, []string{"100% Juice"}, names(products))

		_, total, err = repo.ListProducts(ctx, repository.ProductFilter{Search: "_"}, 10, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 0, total)
	})

	t.Run("pagination", func(t *testing.T) {
		products, total, err := repo.ListProducts(ctx, repository.ProductFilter{}, 2, 2)
		require.NoError(t, err)
		assert.EqualValues(t, 5, total)
		assert.Equal(t, []string{"Fresh Strawberries", "Fresh Mozzarella"}, names(products))
	})

	t.Run("offset past end", func(t *testing.T) {
		products, total, err := repo.ListProducts(ctx, repository.ProductFilter{}, 2, 40)
		require.NoError(t, err)
		assert.EqualValues(t, 5, total)
		assert.Empty(t, products)
		assert.NotNil(t, products)
	})
}

func TestCatalogRepository_ProductCRUD(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	repo := repository.NewCatalogRepository(db)

	p := &models.Product{Name: "Milk", Price: 3.50}
	require.NoError(t, repo.CreateProduct(ctx, p))
	require.NotZero(t, p.ID)

	got, err := repo.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.50, got.Price)
	assert.Equal(t, 0, got.Stock)
	assert.Equal(t, 0.0, got.Rating)
	assert.Nil(t, got.Category)

	updated, err := repo.UpdateProduct(ctx, p.ID, map[string]interface{}{"stock": 7, "brand": "Dairy Co"})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Stock)
	assert.Equal(t, "Dairy Co", updated.Brand)
	assert.Equal(t, "Milk", updated.Name)

	require.NoError(t, repo.DeleteProduct(ctx, p.ID))

	_, err = repo.GetProduct(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteProduct(ctx, p.ID), repository.ErrNotFound)

	_, err = repo.UpdateProduct(ctx, 999, map[string]interface{}{"stock": 1})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCatalogRepository_CategoryCRUD(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	repo := repository.NewCatalogRepository(db)

	bakery := &models.Category{Name: "Bakery"}
	require.NoError(t, repo.CreateCategory(ctx, bakery))
	pantry := &models.Category{Name: "Pantry"}
	require.NoError(t, repo.CreateCategory(ctx, pantry))

	err := repo.CreateCategory(ctx, &models.Category{Name: "Bakery"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	_, err = repo.UpdateCategory(ctx, pantry.ID, map[string]interface{}{"name": "Bakery"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	renamed, err := repo.UpdateCategory(ctx, pantry.ID, map[string]interface{}{"name": "Dry Goods", "description": "shelf stable"})
	require.NoError(t, err)
	assert.Equal(t, "Dry Goods", renamed.Name)
	require.NotNil(t, renamed.Description)
	assert.Equal(t, "shelf stable", *renamed.Description)

	same, err := repo.UpdateCategory(ctx, bakery.ID, map[string]interface{}{"name": "Bakery"})
	require.NoError(t, err)
	assert.Equal(t, "Bakery", same.Name)

	found, err := repo.FindCategoryByName(ctx, "Dry Goods")
	require.NoError(t, err)
	assert.Equal(t, pantry.ID, found.ID)

	categories, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)
	assert.Equal(t, "Bakery", categories[0].Name)
}

func TestCatalogRepository_DeleteCategoryLeavesProducts(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	repo := repository.NewCatalogRepository(db)

	seafood := testutil.MustCategory(t, db, "Seafood")
	salmon := testutil.MustProduct(t, db, "Fresh Salmon Fillet", 18.99, seafood)

	require.NoError(t, repo.DeleteCategory(ctx, seafood.ID))
	assert.ErrorIs(t, repo.DeleteCategory(ctx, seafood.ID), repository.ErrNotFound)

	got, err := repo.GetProduct(ctx, salmon.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CategoryID)
	assert.Equal(t, seafood.ID, *got.CategoryID)
	assert.Nil(t, got.Category)
	assert.Nil(t, got.CategoryName())
}
