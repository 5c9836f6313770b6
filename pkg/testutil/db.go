// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/example/freshmart/pkg/models"
	"github.com/example/freshmart/pkg/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenDB returns a migrated, private in-memory SQLite database that is
// closed when the test ends.
func OpenDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), repository.GormConfig())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, repository.Migrate(context.Background(), db))
	return db
}

func Ptr[T any](v T) *T {
	return &v
}

// MustCategory inserts a category named name.
func MustCategory(t testing.TB, db *gorm.DB, name string) *models.Category {
	t.Helper()
	c := &models.Category{Name: name}
	require.NoError(t, db.Create(c).Error)
	return c
}

// MustProduct inserts a product with the given name, price and category.
func MustProduct(t testing.TB, db *gorm.DB, name string, price float64, category *models.Category) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Price: price}
	if category != nil {
		p.CategoryID = &category.ID
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func MustUser(t testing.TB, db *gorm.DB, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, Name: email, Password: "x"}
	require.NoError(t, db.Create(u).Error)
	return u
}
