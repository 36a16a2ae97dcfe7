package menu

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/forno-app/forno/internal/store"
)

const (
	itemsCollection      = "menuItems"
	categoriesCollection = "categories"
)

// ErrNotFound is returned when an update targets a missing document.
var ErrNotFound = errors.New("menu: document not found")

// ItemFirestoreRepository implements ItemRepository using Firestore.
type ItemFirestoreRepository struct {
	client *store.Client
}

var _ ItemRepository = (*ItemFirestoreRepository)(nil)

// NewItemFirestoreRepository creates an ItemFirestoreRepository.
func NewItemFirestoreRepository(client *store.Client) *ItemFirestoreRepository {
	return &ItemFirestoreRepository{client: client}
}

// Create persists a new item under a store-generated ID.
func (r *ItemFirestoreRepository) Create(ctx context.Context, item Item) (*Item, error) {
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	doc := r.client.Firestore().Collection(itemsCollection).NewDoc()
	item.ID = doc.ID

	if _, err := doc.Create(ctx, itemToData(item)); err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}
	return &item, nil
}

// Get retrieves an item by ID. Returns (nil, nil) when absent.
func (r *ItemFirestoreRepository) Get(ctx context.Context, id string) (*Item, error) {
	doc, err := r.client.Firestore().Collection(itemsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}

	item := itemFromData(doc.Ref.ID, doc.Data())
	return &item, nil
}

// List returns all items in store order.
func (r *ItemFirestoreRepository) List(ctx context.Context) ([]Item, error) {
	if !r.client.Privileged() {
		return nil, store.ErrPermissionDenied
	}

	docs, err := r.client.Firestore().Collection(itemsCollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}

	items := make([]Item, 0, len(docs))
	for _, doc := range docs {
		items = append(items, itemFromData(doc.Ref.ID, doc.Data()))
	}
	return items, nil
}

// ListByCategory returns items with the given category ID.
func (r *ItemFirestoreRepository) ListByCategory(ctx context.Context, categoryID string) ([]Item, error) {
	docs, err := r.client.Firestore().Collection(itemsCollection).
		Where("category", "==", categoryID).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items by category: %w", err)
	}

	items := make([]Item, 0, len(docs))
	for _, doc := range docs {
		items = append(items, itemFromData(doc.Ref.ID, doc.Data()))
	}
	return items, nil
}

// Update overlays fields onto an existing item.
func (r *ItemFirestoreRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	updates := store.UpdatesFromFields(fields, time.Now().UTC())

	_, err := r.client.Firestore().Collection(itemsCollection).Doc(id).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update menu item: %w", err)
	}
	return nil
}

// Delete removes an item. Deletes are idempotent.
func (r *ItemFirestoreRepository) Delete(ctx context.Context, id string) error {
	if !r.client.Privileged() {
		return store.ErrPermissionDenied
	}

	_, err := r.client.Firestore().Collection(itemsCollection).Doc(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	return nil
}

// CategoryFirestoreRepository implements CategoryRepository using Firestore.
type CategoryFirestoreRepository struct {
	client *store.Client
}

var _ CategoryRepository = (*CategoryFirestoreRepository)(nil)

// NewCategoryFirestoreRepository creates a CategoryFirestoreRepository.
func NewCategoryFirestoreRepository(client *store.Client) *CategoryFirestoreRepository {
	return &CategoryFirestoreRepository{client: client}
}

// Create persists a new category under a store-generated ID.
func (r *CategoryFirestoreRepository) Create(ctx context.Context, name string) (*Category, error) {
	if !r.client.Privileged() {
		return nil, store.ErrPermissionDenied
	}

	now := time.Now().UTC()
	doc := r.client.Firestore().Collection(categoriesCollection).NewDoc()
	category := Category{ID: doc.ID, Name: name, CreatedAt: now, UpdatedAt: now}

	_, err := doc.Create(ctx, map[string]any{
		"name":      category.Name,
		"createdAt": category.CreatedAt,
		"updatedAt": category.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

// List returns all categories in store order.
func (r *CategoryFirestoreRepository) List(ctx context.Context) ([]Category, error) {
	docs, err := r.client.Firestore().Collection(categoriesCollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]Category, 0, len(docs))
	for _, doc := range docs {
		categories = append(categories, categoryFromData(doc.Ref.ID, doc.Data()))
	}
	return categories, nil
}

// Update overlays fields onto an existing category.
func (r *CategoryFirestoreRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	if !r.client.Privileged() {
		return store.ErrPermissionDenied
	}

	updates := store.UpdatesFromFields(fields, time.Now().UTC())

	_, err := r.client.Firestore().Collection(categoriesCollection).Doc(id).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

// Delete removes a category. Deletes are idempotent.
func (r *CategoryFirestoreRepository) Delete(ctx context.Context, id string) error {
	if !r.client.Privileged() {
		return store.ErrPermissionDenied
	}

	_, err := r.client.Firestore().Collection(categoriesCollection).Doc(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// itemToData converts an Item to its Firestore field map.
func itemToData(item Item) map[string]any {
	data := map[string]any{
		"name":      item.Name,
		"category":  item.Category,
		"basePrice": item.BasePrice,
		"createdAt": item.CreatedAt,
		"updatedAt": item.UpdatedAt,
	}
	if item.Description != "" {
		data["description"] = item.Description
	}
	if item.Image != "" {
		data["image"] = item.Image
	}
	if len(item.Sizes) > 0 {
		data["sizes"] = optionsToData(item.Sizes)
	}
	if len(item.Extras) > 0 {
		data["extraIngredientPrices"] = optionsToData(item.Extras)
	}
	return data
}

// itemFromData converts a Firestore field map to an Item.
func itemFromData(id string, data map[string]any) Item {
	item := Item{ID: id}

	if name, ok := data["name"].(string); ok {
		item.Name = name
	}
	if description, ok := data["description"].(string); ok {
		item.Description = description
	}
	if image, ok := data["image"].(string); ok {
		item.Image = image
	}
	if category, ok := data["category"].(string); ok {
		item.Category = category
	}
	if basePrice, ok := data["basePrice"].(float64); ok {
		item.BasePrice = basePrice
	}
	if sizes, ok := data["sizes"].([]any); ok {
		item.Sizes = optionsFromData(sizes)
	}
	if extras, ok := data["extraIngredientPrices"].([]any); ok {
		item.Extras = optionsFromData(extras)
	}
	if createdAt, ok := data["createdAt"].(time.Time); ok {
		item.CreatedAt = createdAt
	}
	if updatedAt, ok := data["updatedAt"].(time.Time); ok {
		item.UpdatedAt = updatedAt
	}

	return item
}

// categoryFromData converts a Firestore field map to a Category.
func categoryFromData(id string, data map[string]any) Category {
	c := Category{ID: id}

	if name, ok := data["name"].(string); ok {
		c.Name = name
	}
	if createdAt, ok := data["createdAt"].(time.Time); ok {
		c.CreatedAt = createdAt
	}
	if updatedAt, ok := data["updatedAt"].(time.Time); ok {
		c.UpdatedAt = updatedAt
	}

	return c
}

// optionsToData converts options to Firestore maps.
func optionsToData(options []Option) []map[string]any {
	result := make([]map[string]any, len(options))
	for i, o := range options {
		result[i] = map[string]any{"name": o.Name, "price": o.Price}
	}
	return result
}

// optionsFromData converts Firestore values back to options.
func optionsFromData(values []any) []Option {
	options := make([]Option, 0, len(values))
	for _, v := range values {
		m, ok := v.(map[string]any)
		if !ok {
			continue
		}
		var o Option
		if name, ok := m["name"].(string); ok {
			o.Name = name
		}
		if price, ok := m["price"].(float64); ok {
			o.Price = price
		}
		options = append(options, o)
	}
	return options
}
