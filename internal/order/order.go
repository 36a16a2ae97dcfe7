// Package order defines customer orders and their storage.
package order

import (
	"time"
)

// Line is a single cart line on an order.
type Line struct {
	MenuItemID string   `firestore:"menuItemId" json:"menuItemId"`
	Name       string   `firestore:"name" json:"name"`
	Size       string   `firestore:"size,omitempty" json:"size,omitempty"`
	Extras     []string `firestore:"extras,omitempty" json:"extras,omitempty"`
	Quantity   int      `firestore:"quantity" json:"quantity"`
	UnitPrice  float64  `firestore:"unitPrice" json:"unitPrice"`
}

// Order represents an order document. IDs are store-generated. UserEmail is
// a soft reference to the profile that placed the order; lookups filter on
// equality, there is no store-enforced foreign key.
type Order struct {
	ID        string    `firestore:"-" json:"id"`
	UserEmail string    `firestore:"userEmail" json:"userEmail"`
	Phone     string    `firestore:"phone,omitempty" json:"phone,omitempty"`
	Address   string    `firestore:"address,omitempty" json:"address,omitempty"`
	Items     []Line    `firestore:"items" json:"items"`
	Paid      bool      `firestore:"paid" json:"paid"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}
