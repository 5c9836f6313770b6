package models

import (
	"time"
)

// Product.CategoryID is a weak reference: no foreign key is created, so a
// deleted category leaves the id dangling and Category loads as nil.
type Product struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(200);not null" json:"name"`
	Description   *string   `gorm:"type:text" json:"description"`
	Price         float64   `gorm:"not null" json:"price"`
	OriginalPrice *float64  `json:"original_price"`
	Image         *string   `gorm:"type:varchar(500)" json:"image"`
	CategoryID    *uint     `gorm:"index" json:"category_id"`
	Category      *Category `gorm:"foreignKey:CategoryID" json:"-"`
	Brand         string    `gorm:"type:varchar(100)" json:"brand"`
	Rating        float64   `gorm:"default:0" json:"rating"`
	Stock         int       `gorm:"default:0" json:"stock"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}

// CategoryName returns the joined category name, or nil when the product has
// no category or it no longer exists.
func (p Product) CategoryName() *string {
	if p.Category == nil {
		return nil
	}
	name := p.Category.Name
	return &name
}
