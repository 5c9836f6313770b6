package models

import (
	"time"
)

const OrderStatusPending = "pending"

type Order struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	TotalAmount     float64   `gorm:"not null" json:"total_amount"`
	Status          string    `gorm:"type:varchar(50);default:'pending'" json:"status"`
	ShippingAddress *string   `gorm:"type:text" json:"shipping_address"`
	CreatedAt       time.Time `json:"created_at"`
}

func (Order) TableName() string {
	return "orders"
}
