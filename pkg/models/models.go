package models

// All lists every table in creation order.
func All() []interface{} {
	return []interface{}{
		&Category{},
		&Product{},
		&User{},
		&CartItem{},
		&Order{},
	}
}
