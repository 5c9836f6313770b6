package repository

import (
	"context"

	"github.com/example/freshmart/pkg/models"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// List returns all orders, newest first.
func (r *OrderRepository) List(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, translate(err, "list orders")
	}
	return orders, nil
}

type SalesTotals struct {
	Total float64
	Count int64
}

// Totals sums total_amount over every order; an empty table sums to 0.
func (r *OrderRepository) Totals(ctx context.Context) (SalesTotals, error) {
	var totals SalesTotals
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0) AS total, COUNT(id) AS count").
		Scan(&totals).Error
	if err != nil {
		return SalesTotals{}, translate(err, "sales totals")
	}
	return totals, nil
}
