package repository_test

import (
	"context"
	"testing"

	"github.com/example/freshmart/pkg/models"
	"github.com/example/freshmart/pkg/repository"
	"github.com/example/freshmart/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestCartRepository_AddItemAccumulates(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	repo := repository.NewCartRepository(db)

	user := testutil.MustUser(t, db, "a@example.com")
	milk := testutil.MustProduct(t, db, "Milk", 3.50, nil)

	first, err := repo.AddItem(ctx, user.ID, milk.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Quantity)

	second, err := repo.AddItem(ctx, user.ID, milk.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Quantity)
	assert.Equal(t, first.ID, second.ID)

	third, err := repo.AddItem(ctx, user.ID, milk.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 7, third.Quantity)

	var rows int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&rows).Error)
	assert.EqualValues(t, 1, rows)
}

func TestCartRepository_ConcurrentAddItem(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	repo := repository.NewCartRepository(db)

	user := testutil.MustUser(t, db, "a@example.com")
	eggs := testutil.MustProduct(t, db, "Free-Range Eggs", 4.99, nil)

	const N = 50
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < N; i++ {
		g.Go(func() error {
			_, err := repo.AddItem(gctx, user.ID, eggs.ID, 1)
			return err
		})
	}
	require.NoError(t, g.Wait())

	items, err := repo.ListItems(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, N, items[0].Quantity)
}

func TestCartRepository_RemoveItemOwnership(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	repo := repository.NewCartRepository(db)

	alice := testutil.MustUser(t, db, "alice@example.com")
	bob := testutil.MustUser(t, db, "bob@example.com")
	bread := testutil.MustProduct(t, db, "Artisan Sourdough Bread", 6.99, nil)

	item, err := repo.AddItem(ctx, alice.ID, bread.ID, 1)
	require.NoError(t, err)

	err = repo.RemoveItem(ctx, item.ID, bob.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	items, err := repo.ListItems(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	require.NoError(t, repo.RemoveItem(ctx, item.ID, alice.ID))
	assert.ErrorIs(t, repo.RemoveItem(ctx, item.ID, alice.ID), repository.ErrNotFound)
}

func TestCartRepository_ListItemsReadsCurrentProduct(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	repo := repository.NewCartRepository(db)
	catalog := repository.NewCatalogRepository(db)

	user := testutil.MustUser(t, db, "a@example.com")
	oil := testutil.MustProduct(t, db, "Extra Virgin Olive Oil", 15.99, nil)
	quinoa := testutil.MustProduct(t, db, "Organic Quinoa", 9.99, nil)

	_, err := repo.AddItem(ctx, user.ID, oil.ID, 1)
	require.NoError(t, err)
	_, err = repo.AddItem(ctx, user.ID, quinoa.ID, 2)
	require.NoError(t, err)

	_, err = catalog.UpdateProduct(ctx, oil.ID, map[string]interface{}{"price": 12.49})
	require.NoError(t, err)
	require.NoError(t, catalog.DeleteProduct(ctx, quinoa.ID))

	items, err := repo.ListItems(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	require.NotNil(t, items[0].Product)
	assert.Equal(t, 12.49, items[0].Product.Price)
	assert.Nil(t, items[1].Product)
}

func TestCartRepository_Clear(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	repo := repository.NewCartRepository(db)

	alice := testutil.MustUser(t, db, "alice@example.com")
	bob := testutil.MustUser(t, db, "bob@example.com")
	p1 := testutil.MustProduct(t, db, "Organic Spinach", 4.49, nil)
	p2 := testutil.MustProduct(t, db, "Fresh Avocados", 4.99, nil)

	for _, p := range []*models.Product{p1, p2} {
		_, err := repo.AddItem(ctx, alice.ID, p.ID, 1)
		require.NoError(t, err)
	}
	_, err := repo.AddItem(ctx, bob.ID, p1.ID, 1)
	require.NoError(t, err)

	removed, err := repo.Clear(ctx, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)

	items, err := repo.ListItems(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
