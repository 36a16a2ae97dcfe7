package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/forno-app/forno/internal/store"
)

const collectionName = "orders"

// ErrNotFound is returned when an update targets a missing order.
var ErrNotFound = errors.New("order not found")

// FirestoreRepository implements Repository using Firestore.
type FirestoreRepository struct {
	client *store.Client
}

var _ Repository = (*FirestoreRepository)(nil)

// NewFirestoreRepository creates a FirestoreRepository on the given client.
func NewFirestoreRepository(client *store.Client) *FirestoreRepository {
	return &FirestoreRepository{client: client}
}

// Create persists a new order under a store-generated ID.
func (r *FirestoreRepository) Create(ctx context.Context, o Order) (*Order, error) {
	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now

	doc := r.client.Firestore().Collection(collectionName).NewDoc()
	o.ID = doc.ID

	if _, err := doc.Create(ctx, toData(o)); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return &o, nil
}

// Get retrieves an order by ID. Returns (nil, nil) when absent.
func (r *FirestoreRepository) Get(ctx context.Context, id string) (*Order, error) {
	doc, err := r.client.Firestore().Collection(collectionName).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	o := fromData(doc.Ref.ID, doc.Data())
	return &o, nil
}

// List returns all orders, newest first.
func (r *FirestoreRepository) List(ctx context.Context) ([]Order, error) {
	if !r.client.Privileged() {
		return nil, store.ErrPermissionDenied
	}

	docs, err := r.client.Firestore().Collection(collectionName).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := make([]Order, 0, len(docs))
	for _, doc := range docs {
		orders = append(orders, fromData(doc.Ref.ID, doc.Data()))
	}
	return orders, nil
}

// ListByUserEmail returns the orders placed under the given email, newest
// first.
func (r *FirestoreRepository) ListByUserEmail(ctx context.Context, email string) ([]Order, error) {
	docs, err := r.client.Firestore().Collection(collectionName).
		Where("userEmail", "==", email).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query orders by user email: %w", err)
	}

	orders := make([]Order, 0, len(docs))
	for _, doc := range docs {
		orders = append(orders, fromData(doc.Ref.ID, doc.Data()))
	}
	return orders, nil
}

// Update overlays fields onto an existing order.
func (r *FirestoreRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	updates := store.UpdatesFromFields(fields, time.Now().UTC())

	_, err := r.client.Firestore().Collection(collectionName).Doc(id).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update order: %w", err)
	}
	return nil
}

// toData converts an Order to its Firestore field map.
func toData(o Order) map[string]any {
	items := make([]map[string]any, len(o.Items))
	for i, line := range o.Items {
		items[i] = lineToData(line)
	}

	data := map[string]any{
		"userEmail": o.UserEmail,
		"items":     items,
		"paid":      o.Paid,
		"createdAt": o.CreatedAt,
		"updatedAt": o.UpdatedAt,
	}
	if o.Phone != "" {
		data["phone"] = o.Phone
	}
	if o.Address != "" {
		data["address"] = o.Address
	}
	return data
}

// lineToData converts a cart line to a Firestore map.
func lineToData(line Line) map[string]any {
	data := map[string]any{
		"menuItemId": line.MenuItemID,
		"name":       line.Name,
		"quantity":   line.Quantity,
		"unitPrice":  line.UnitPrice,
	}
	if line.Size != "" {
		data["size"] = line.Size
	}
	if len(line.Extras) > 0 {
		data["extras"] = line.Extras
	}
	return data
}

// fromData converts a Firestore field map to an Order.
func fromData(id string, data map[string]any) Order {
	o := Order{ID: id}

	if email, ok := data["userEmail"].(string); ok {
		o.UserEmail = email
	}
	if phone, ok := data["phone"].(string); ok {
		o.Phone = phone
	}
	if address, ok := data["address"].(string); ok {
		o.Address = address
	}
	if paid, ok := data["paid"].(bool); ok {
		o.Paid = paid
	}
	if items, ok := data["items"].([]any); ok {
		o.Items = make([]Line, 0, len(items))
		for _, v := range items {
			if m, ok := v.(map[string]any); ok {
				o.Items = append(o.Items, lineFromData(m))
			}
		}
	}
	if createdAt, ok := data["createdAt"].(time.Time); ok {
		o.CreatedAt = createdAt
	}
	if updatedAt, ok := data["updatedAt"].(time.Time); ok {
		o.UpdatedAt = updatedAt
	}

	return o
}

// lineFromData converts a Firestore map to a cart line.
func lineFromData(data map[string]any) Line {
	var line Line

	if id, ok := data["menuItemId"].(string); ok {
		line.MenuItemID = id
	}
	if name, ok := data["name"].(string); ok {
		line.Name = name
	}
	if size, ok := data["size"].(string); ok {
		line.Size = size
	}
	if extras, ok := data["extras"].([]any); ok {
		for _, e := range extras {
			if s, ok := e.(string); ok {
				line.Extras = append(line.Extras, s)
			}
		}
	}
	// Firestore hands integers back as int64.
	if quantity, ok := data["quantity"].(int64); ok {
		line.Quantity = int(quantity)
	}
	if unitPrice, ok := data["unitPrice"].(float64); ok {
		line.UnitPrice = unitPrice
	}

	return line
}
