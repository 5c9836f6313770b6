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

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	repo := repository.NewUserRepository(db)

	u := &models.User{Email: "jane@example.com", Name: "Jane", Password: "hash"}
	require.NoError(t, repo.Create(ctx, u))
	require.NotZero(t, u.ID)

	err := repo.Create(ctx, &models.User{Email: "jane@example.com", Name: "Other", Password: "hash"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	found, err := repo.FindByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got, err := repo.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.Name)
}
