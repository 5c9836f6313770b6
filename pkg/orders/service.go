// Package orders serves the admin order list and sales summary.
package orders

import (
	"context"

	"github.com/example/freshmart/pkg/models"
	"github.com/example/freshmart/pkg/repository"
	"github.com/shopspring/decimal"
)

type Store interface {
	List(ctx context.Context) ([]models.Order, error)
	Totals(ctx context.Context) (repository.SalesTotals, error)
}

type Sales struct {
	TotalSales float64 `json:"total_sales"`
	OrderCount int64   `json:"order_count"`
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns every order, newest first.
func (s *Service) List(ctx context.Context) ([]models.Order, error) {
	return s.store.List(ctx)
}

// Sales sums all order totals, rounded to cents.
func (s *Service) Sales(ctx context.Context) (*Sales, error) {
	totals, err := s.store.Totals(ctx)
	if err != nil {
		return nil, err
	}
	total, _ := decimal.NewFromFloat(totals.Total).Round(2).Float64()
	return &Sales{TotalSales: total, OrderCount: totals.Count}, nil
}
