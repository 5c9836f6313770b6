package cart_test

import (
	"context"
	"testing"

	"github.com/example/freshmart/pkg/cart"
	"github.com/example/freshmart/pkg/models"
	"github.com/example/freshmart/pkg/repository"
	"github.com/example/freshmart/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestService(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := cart.NewService(repository.NewCartRepository(db), repository.NewCatalogRepository(db), zap.NewNop())
	ctx := context.Background()

	alice := testutil.MustUser(t, db, "alice@example.com")
	bob := testutil.MustUser(t, db, "bob@example.com")
	milk := testutil.MustProduct(t, db, "Milk", 3.5, nil)
	bread := testutil.MustProduct(t, db, "Bread", 2.0, nil)

	t.Run("quantity defaults to one and accumulates", func(t *testing.T) {
		item, err := svc.Add(ctx, alice.ID, milk.ID, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, item.Quantity)

		item, err = svc.Add(ctx, alice.ID, milk.ID, 2)
		require.NoError(t, err)
		assert.Equal(t, 3, item.Quantity)
	})

	t.Run("negative quantity rejected", func(t *testing.T) {
		_, err := svc.Add(ctx, alice.ID, milk.ID, -1)
		assert.ErrorIs(t, err, repository.ErrInvalidInput)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := svc.Add(ctx, alice.ID, 999, 1)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("list uses current price and skips deleted products", func(t *testing.T) {
		_, err := svc.Add(ctx, alice.ID, bread.ID, 1)
		require.NoError(t, err)
		require.NoError(t, db.Model(&models.Product{}).Where("id = ?", milk.ID).Update("price", 4.25).Error)

		lines, err := svc.List(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, lines, 2)
		assert.Equal(t, "Milk", lines[0].Product.Name)
		assert.Equal(t, 4.25, lines[0].Product.Price)
		assert.Equal(t, 3, lines[0].Quantity)

		require.NoError(t, db.Delete(&models.Product{}, bread.ID).Error)
		lines, err = svc.List(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, milk.ID, lines[0].Product.ID)
	})

	t.Run("remove honours ownership", func(t *testing.T) {
		lines, err := svc.List(ctx, alice.ID)
		require.NoError(t, err)
		require.NotEmpty(t, lines)
		id := lines[0].ID

		assert.ErrorIs(t, svc.Remove(ctx, bob.ID, id), repository.ErrNotFound)
		require.NoError(t, svc.Remove(ctx, alice.ID, id))
		assert.ErrorIs(t, svc.Remove(ctx, alice.ID, id), repository.ErrNotFound)
	})

	t.Run("clear", func(t *testing.T) {
		_, err := svc.Add(ctx, bob.ID, milk.ID, 5)
		require.NoError(t, err)

		n, err := svc.Clear(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		lines, err := svc.List(ctx, bob.ID)
		require.NoError(t, err)
		assert.Empty(t, lines)
	})
}
