package catalog

import (
	"time"

	"github.com/example/freshmart/pkg/models"
)

type ProductView struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	Price         float64   `json:"price"`
	OriginalPrice *float64  `json:"original_price"`
	Image         *string   `json:"image"`
	Category      *string   `json:"category"`
	CategoryID    *uint     `json:"category_id"`
	Brand         string    `json:"brand"`
	Rating        float64   `json:"rating"`
	Stock         int       `json:"stock"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewProductView(p models.Product) ProductView {
	return ProductView{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Image:         p.Image,
		Category:      p.CategoryName(),
		CategoryID:    p.CategoryID,
		Brand:         p.Brand,
		Rating:        p.Rating,
		Stock:         p.Stock,
		CreatedAt:     p.CreatedAt,
	}
}

type CategoryView struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func NewCategoryView(c models.Category) CategoryView {
	return CategoryView{ID: c.ID, Name: c.Name, Description: c.Description}
}
