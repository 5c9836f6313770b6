// Package cart manages per-user shopping carts.
package cart

import (
	"context"
	"fmt"

	"github.com/example/freshmart/pkg/models"
	"github.com/example/freshmart/pkg/repository"
	"go.uber.org/zap"
)

type Store interface {
	AddItem(ctx context.Context, userID, productID uint, quantity int) (*models.CartItem, error)
	RemoveItem(ctx context.Context, itemID, userID uint) error
	ListItems(ctx context.Context, userID uint) ([]models.CartItem, error)
	Clear(ctx context.Context, userID uint) (int64, error)
}

type Products interface {
	ProductExists(ctx context.Context, id uint) (bool, error)
}

type ProductSnapshot struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image *string `json:"image"`
}

// Line is a cart line priced from the product's current row.
type Line struct {
	ID       uint            `json:"id"`
	Product  ProductSnapshot `json:"product"`
	Quantity int             `json:"quantity"`
}

type Service struct {
	store    Store
	products Products
	logger   *zap.Logger
}

func NewService(store Store, products Products, logger *zap.Logger) *Service {
	return &Service{store: store, products: products, logger: logger.Named("cart")}
}

// Add merges quantity into the user's line for productID. A zero quantity
// means one.
func (s *Service) Add(ctx context.Context, userID, productID uint, quantity int) (*models.CartItem, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("quantity must not be negative: %w", repository.ErrInvalidInput)
	}
	if quantity == 0 {
		quantity = 1
	}
	if productID == 0 {
		return nil, fmt.Errorf("product_id required: %w", repository.ErrInvalidInput)
	}

	ok, err := s.products.ProductExists(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("product %d: %w", productID, repository.ErrNotFound)
	}

	item, err := s.store.AddItem(ctx, userID, productID, quantity)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Cart item added",
		zap.Uint("user_id", userID),
		zap.Uint("product_id", productID),
		zap.Int("quantity", item.Quantity))
	return item, nil
}

func (s *Service) Remove(ctx context.Context, userID, itemID uint) error {
	return s.store.RemoveItem(ctx, itemID, userID)
}

func (s *Service) Clear(ctx context.Context, userID uint) (int64, error) {
	return s.store.Clear(ctx, userID)
}

// List returns the user's lines. Lines whose product has been deleted are
// skipped.
func (s *Service) List(ctx context.Context, userID uint) ([]Line, error) {
	items, err := s.store.ListItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines := make([]Line, 0, len(items))
	for _, item := range items {
		if item.Product == nil {
			s.logger.Debug("Skipping orphaned cart line", zap.Uint("item_id", item.ID))
			continue
		}
		lines = append(lines, Line{
			ID: item.ID,
			Product: ProductSnapshot{
				ID:    item.Product.ID,
				Name:  item.Product.Name,
				Price: item.Product.Price,
				Image: item.Product.Image,
			},
			Quantity: item.Quantity,
		})
	}
	return lines, nil
}
