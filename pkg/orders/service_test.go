package orders_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/freshmart/pkg/models"
	"github.com/example/freshmart/pkg/orders"
	"github.com/example/freshmart/pkg/repository"
	"github.com/example/freshmart/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Empty(t *testing.T) {
	svc := orders.NewService(repository.NewOrderRepository(testutil.OpenDB(t)))

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)

	sales, err := svc.Sales(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &orders.Sales{TotalSales: 0, OrderCount: 0}, sales)
}

func TestService_Sales(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := orders.NewService(repository.NewOrderRepository(db))

	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	rows := []models.Order{
		{UserID: 1, TotalAmount: 0.1, CreatedAt: base},
		{UserID: 1, TotalAmount: 0.2, CreatedAt: base.Add(time.Minute)},
		{UserID: 2, TotalAmount: 19.99, CreatedAt: base.Add(2 * time.Minute)},
	}
	require.NoError(t, db.Create(&rows).Error)

	sales, err := svc.Sales(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 20.29, sales.TotalSales)
	assert.Equal(t, int64(3), sales.OrderCount)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, 19.99, list[0].TotalAmount)
	assert.Equal(t, 0.1, list[2].TotalAmount)
}

type failingStore struct{}

func (failingStore) List(context.Context) ([]models.Order, error) { return nil, errors.New("boom") }

func (failingStore) Totals(context.Context) (repository.SalesTotals, error) {
	return repository.SalesTotals{}, errors.New("boom")
}

func TestService_StoreError(t *testing.T) {
	_, err := orders.NewService(failingStore{}).Sales(context.Background())
	assert.EqualError(t, err, "boom")
}
