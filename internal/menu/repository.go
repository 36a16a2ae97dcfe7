package menu

import (
	"context"
)

// ItemRepository defines storage operations for menu items.
//
// Get returns (nil, nil) when no item exists. List and Delete are
// administrative and require privileged access; deleting and mutating items
// is additionally admin-gated at the route level.
type ItemRepository interface {
	// Create persists a new item under a store-generated ID, stamping
	// createdAt and updatedAt. Caller-supplied timestamps are ignored.
	Create(ctx context.Context, item Item) (*Item, error)

	// Get retrieves an item by ID.
	Get(ctx context.Context, id string) (*Item, error)

	// List returns all items in store order. Privileged access only.
	List(ctx context.Context) ([]Item, error)

	// ListByCategory returns items whose category equals the given
	// category ID, in store order.
	ListByCategory(ctx context.Context, categoryID string) ([]Item, error)

	// Update overlays the given fields onto an existing item and
	// refreshes updatedAt. Returns ErrNotFound if no item exists.
	Update(ctx context.Context, id string, fields map[string]any) error

	// Delete removes an item; deleting a missing item is a no-op.
	// Privileged access only.
	Delete(ctx context.Context, id string) error
}

// CategoryRepository defines storage operations for menu categories.
// All mutations are administrative and require privileged access.
type CategoryRepository interface {
	Create(ctx context.Context, name string) (*Category, error)
	List(ctx context.Context) ([]Category, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
}
