package order

import (
	"context"
)

// Repository defines storage operations for orders. Orders are never
// deleted.
type Repository interface {
	// Create persists a new order under a store-generated ID, stamping
	// createdAt and updatedAt. Paid defaults to false when omitted;
	// caller-supplied timestamps are ignored.
	Create(ctx context.Context, o Order) (*Order, error)

	// Get retrieves an order by ID. Returns (nil, nil) when absent.
	Get(ctx context.Context, id string) (*Order, error)

	// List returns all orders, newest first. Privileged access only.
	List(ctx context.Context) ([]Order, error)

	// ListByUserEmail returns the orders placed under the given email,
	// newest first.
	ListByUserEmail(ctx context.Context, email string) ([]Order, error)

	// Update overlays the given fields onto an existing order and
	// refreshes updatedAt. Returns ErrNotFound if no order exists.
	Update(ctx context.Context, id string, fields map[string]any) error
}
