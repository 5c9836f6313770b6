package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/example/freshmart/pkg/models"
	"github.com/example/freshmart/pkg/repository"
	"github.com/example/freshmart/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepository(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	repo := repository.NewOrderRepository(db)

	totals, err := repo.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.0, totals.Total)
	assert.EqualValues(t, 0, totals.Count)

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	orders := []models.Order{
		{UserID: 1, TotalAmount: 10.25, CreatedAt: base},
		{UserID: 2, TotalAmount: 4.50, CreatedAt: base.Add(time.Hour), ShippingAddress: testutil.Ptr("1 Main St")},
	}
	require.NoError(t, db.Create(&orders).Error)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, uint(2), list[0].UserID)
	assert.Equal(t, models.OrderStatusPending, list[0].Status)

	totals, err = repo.Totals(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 14.75, totals.Total, 1e-9)
	assert.EqualValues(t, 2, totals.Count)
}
