// Package menu defines menu items and categories and their storage.
package menu

import (
	"time"
)

// Option is a priced choice on a menu item, such as a size or an extra
// ingredient.
type Option struct {
	Name  string  `firestore:"name" json:"name"`
	Price float64 `firestore:"price" json:"price"`
}

// Item represents a menu item document. IDs are store-generated.
type Item struct {
	ID          string    `firestore:"-" json:"id"`
	Name        string    `firestore:"name" json:"name"`
	Description string    `firestore:"description,omitempty" json:"description,omitempty"`
	Image       string    `firestore:"image,omitempty" json:"image,omitempty"`
	Category    string    `firestore:"category" json:"category"` // Category document ID
	BasePrice   float64   `firestore:"basePrice" json:"basePrice"`
	Sizes       []Option  `firestore:"sizes,omitempty" json:"sizes,omitempty"`
	Extras      []Option  `firestore:"extraIngredientPrices,omitempty" json:"extraIngredientPrices,omitempty"`
	CreatedAt   time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// Category represents a menu category document.
type Category struct {
	ID        string    `firestore:"-" json:"id"`
	Name      string    `firestore:"name" json:"name"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}
