package repository

import (
	"context"

	"github.com/example/freshmart/pkg/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// AddItem inserts a line for (userID, productID) or, when one exists, adds
// quantity to it in the same statement, so concurrent adds never lose an
// increment. The resulting line is returned.
func (r *CartRepository) AddItem(ctx context.Context, userID, productID uint, quantity int) (*models.CartItem, error) {
	item := models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("cart_items.quantity + ?", quantity),
		}),
	}).Create(&item).Error
	if err != nil {
		return nil, translate(err, "add cart item")
	}

	var line models.CartItem
	err = r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&line).Error
	if err != nil {
		return nil, translate(err, "cart item")
	}
	return &line, nil
}

// RemoveItem deletes itemID only when it belongs to userID. A line owned by
// someone else is reported as ErrNotFound, same as a missing one.
func (r *CartRepository) RemoveItem(ctx context.Context, itemID, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return translate(res.Error, "remove cart item")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "cart item")
	}
	return nil
}

// ListItems returns the user's lines ordered by id with the current product
// row preloaded. Product is nil for lines whose product was deleted.
func (r *CartRepository) ListItems(ctx context.Context, userID uint) ([]models.CartItem, error) {
	items := []models.CartItem{}
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, translate(err, "list cart items")
	}
	return items, nil
}

func (r *CartRepository) Clear(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{})
	if res.Error != nil {
		return 0, translate(res.Error, "clear cart")
	}
	return res.RowsAffected, nil
}
