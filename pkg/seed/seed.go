// Package seed resets the database to the demo grocery catalog.
package seed

import (
	"context"
	"fmt"

	"github.com/example/freshmart/pkg/models"
	"github.com/example/freshmart/pkg/repository"
	"gorm.io/gorm"
)

var Categories = []string{
	"Fruits", "Meat & Poultry", "Bakery", "Seafood", "Vegetables", "Dairy", "Pantry",
}

type product struct {
	name          string
	description   string
	price         float64
	originalPrice float64
	image         string
	category      string
	brand         string
	rating        float64
	stock         int
}

var products = []product{
	{"Fresh Organic Bananas", "Sweet and nutritious organic bananas, perfect for snacking or smoothies",
		3.99, 4.99, "https://images.unsplash.com/photo-1571771894821-ce9b6c11b08e?w=400", "Fruits", "Fresh Farm", 4.5, 50},
	{"Premium Ground Beef", "Fresh, lean ground beef perfect for burgers, meatballs, and pasta dishes",
		12.99, 15.99, "https://images.unsplash.com/photo-1529692236671-f1f6cf9683ba?w=400", "Meat & Poultry", "Farm Fresh", 4.7, 25},
	{"Artisan Sourdough Bread", "Handcrafted sourdough bread with a crispy crust and soft, tangy interior",
		6.99, 8.99, "https://images.unsplash.com/photo-1509440159596-0249088772ff?w=400", "Bakery", "Bread & Butter", 4.8, 15},
	{"Fresh Salmon Fillet", "Atlantic salmon fillet, rich in omega-3 fatty acids and perfect for grilling",
		18.99, 22.99, "https://images.unsplash.com/photo-1519708227418-c8fd9a32b7a2?w=400", "Seafood", "Ocean Fresh", 4.6, 12},
	{"Organic Spinach", "Fresh, crisp organic spinach leaves, great for salads and cooking",
		4.49, 5.49, "https://images.unsplash.com/photo-1576045057995-568f588f82fb?w=400", "Vegetables", "Green Valley", 4.4, 30},
	{"Greek Yogurt", "Creamy, protein-rich Greek yogurt perfect for breakfast or snacks",
		5.99, 7.99, "https://images.unsplash.com/photo-1571212058562-4b5f4b4b8b8b?w=400", "Dairy", "Creamy Delights", 4.3, 20},
	{"Fresh Strawberries", "Sweet, juicy strawberries perfect for desserts, smoothies, or snacking",
		7.99, 9.99, "https://images.unsplash.com/photo-1464965911861-746a04b4bca6?w=400", "Fruits", "Berry Farm", 4.6, 35},
	{"Free-Range Eggs", "Farm-fresh free-range eggs from happy, healthy chickens",
		4.99, 6.99, "https://images.unsplash.com/photo-1518569656558-1f25e69d93d5?w=400", "Dairy", "Happy Hens", 4.7, 40},
	{"Extra Virgin Olive Oil", "Premium cold-pressed extra virgin olive oil from Mediterranean olives",
		15.99, 19.99, "https://images.unsplash.com/photo-1474979266404-7eaacbcd87c5?w=400", "Pantry", "Mediterranean Gold", 4.8, 18},
	{"Fresh Mozzarella", "Fresh, creamy mozzarella cheese perfect for caprese salad and pizza",
		8.99, 11.99, "https://images.unsplash.com/photo-1486297678162-eb2a19b0a32d?w=400", "Dairy", "Italian Delights", 4.5, 22},
	{"Organic Quinoa", "Nutritious organic quinoa, a complete protein perfect for healthy meals",
		9.99, 12.99, "https://images.unsplash.com/photo-1586201375761-83865001e31c?w=400", "Pantry", "Health Foods", 4.4, 28},
	{"Fresh Avocados", "Creamy, ripe avocados perfect for guacamole, toast, or salads",
		4.99, 6.99, "https://images.unsplash.com/photo-1523049673857-eb18f1d7b578?w=400", "Fruits", "Tropical Fresh", 4.6, 25},
}

type Result struct {
	Categories int
	Products   int
}

// Run drops and recreates every table, then inserts the demo catalog in a
// single transaction. All existing users, carts and orders are lost.
func Run(ctx context.Context, db *gorm.DB) (Result, error) {
	if err := repository.Reset(ctx, db); err != nil {
		return Result{}, err
	}

	var res Result
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		byName := make(map[string]uint, len(Categories))
		for _, name := range Categories {
			c := models.Category{Name: name}
			if err := tx.Create(&c).Error; err != nil {
				return fmt.Errorf("failed to seed category %q: %w", name, err)
			}
			byName[name] = c.ID
			res.Categories++
		}

		for _, p := range products {
			categoryID := byName[p.category]
			row := models.Product{
				Name:          p.name,
				Description:   ptr(p.description),
				Price:         p.price,
				OriginalPrice: ptr(p.originalPrice),
				Image:         ptr(p.image),
				CategoryID:    &categoryID,
				Brand:         p.brand,
				Rating:        p.rating,
				Stock:         p.stock,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to seed product %q: %w", p.name, err)
			}
			res.Products++
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

func ptr[T any](v T) *T {
	return &v
}
