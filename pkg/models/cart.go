package models

import (
	"time"
)

// CartItem lines are unique per (user_id, product_id); adding an existing
// pair increments Quantity instead of inserting a second row.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"-"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
